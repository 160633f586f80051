// Package ident implements the binary-compatibility fingerprint model: the
// value and version types, the settings/options/requirements aggregates, the
// canonical text serialization, and the digest that turns one evaluated
// configuration into a package ID.
//
// The model keeps two views of every evaluation. The full view is the
// configuration exactly as the resolver handed it over. The collapsed view is
// what the selected compatibility policies kept of it, and only the collapsed
// view reaches the digest. Both views serialize into one canonical text file
// that round-trips through Loads.
//
// Everything here is deterministic by construction: ordering comes from
// declaration and resolver order, never from map iteration, and the canonical
// text is NFC-normalized before hashing.
package ident
