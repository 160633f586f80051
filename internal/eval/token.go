package eval

import "github.com/google/uuid"

// TokenGenerator produces evaluation tokens. Every Result carries one so the
// catalog can tell which evaluation produced a stored record. Implemented by
// UUIDv7Generator in production and by testutil.TokenSource in tests.
type TokenGenerator interface {
	Generate() string
}

// UUIDv7Generator issues time-sortable UUIDv7 evaluation tokens. Stateless
// and safe for concurrent use.
type UUIDv7Generator struct{}

// Generate returns a new hyphenated UUIDv7 string.
func (UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}
