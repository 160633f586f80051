package fixture

import (
	"testing"

	"github.com/sebdah/goldie/v2"
)

// AssertGolden compares data against testdata/golden/<name>.golden in the
// calling test's package. Regenerate with:
//
//	go test ./... -update
func AssertGolden(t *testing.T, name string, data []byte) {
	t.Helper()
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, data)
}
