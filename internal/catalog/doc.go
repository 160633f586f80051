// Package catalog is the local record of built binaries: SQLite rows keyed
// by (reference, package ID), each holding the canonical fingerprint text
// that produced the identifier. The catalog answers three questions the
// engine itself cannot: does a binary exist for this identifier, does a
// stored binary still belong to the current recipe revision, and which
// binaries of a reference match a settings/options query.
//
// Writes are idempotent. Reads that find nothing return ErrNotFound so
// callers can render the missing-binary diagnostic.
package catalog
