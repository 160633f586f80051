// Package eval computes package identifiers. An Evaluator takes one recipe
// document and the resolver's graph document for it, seeds the fingerprint
// state, applies the configured and recipe-selected compatibility policies,
// and returns the identifier with its canonical text.
//
// One evaluation is a single synchronous computation: seeding, policy
// application and serialization happen in order with no suspension points.
// Evaluations of different graph nodes share nothing but the read-only
// Config, so callers may run them in parallel freely.
//
// The policy surface is closed: Mode and Transform enumerate every operation
// a recipe may select, and an unknown name fails the evaluation instead of
// being ignored.
package eval
