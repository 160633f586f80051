package catalog

import (
	"strings"

	"github.com/roach88/pkgid/internal/ident"
)

// MissingDiagnostic renders the message shown when no stored binary matches
// a computed identifier: the settings and options the identifier was built
// from, the direct dependencies as resolved, the collapsed requirement
// contributions, and the identifier itself. The downstream caller decides
// where it goes; this layer only formats it.
func MissingDiagnostic(ref ident.Ref, packageID string, info *ident.PackageInfo) string {
	var b strings.Builder
	b.WriteString("Missing prebuilt binary for ")
	b.WriteString(ref.String())
	b.WriteByte('\n')

	line := func(label, body string) {
		b.WriteString("- ")
		b.WriteString(label)
		b.WriteString(": ")
		b.WriteString(body)
		b.WriteByte('\n')
	}
	join := func(dumps string) string {
		return strings.Join(strings.Split(dumps, "\n"), ", ")
	}

	line("Settings", join(info.Settings().Dumps()))
	line("Options", join(info.FullOptions().Dumps()))

	var deps []string
	var contributions []string
	for _, entry := range info.Requires().Items() {
		if !entry.Indirect() {
			deps = append(deps, entry.Full().Ref.String())
		}
		if dump := entry.Dumps(); dump != "" {
			contributions = append(contributions, dump)
		}
	}
	line("Dependencies", strings.Join(deps, ", "))
	line("Requirements", strings.Join(contributions, ", "))
	line("Package ID", packageID)
	return b.String()
}
