// Package recipe loads the typed CUE documents that feed an evaluation: the
// recipe document (identity, declared configuration surface, declared
// requirements, packageId policy) and the graph document (the resolver's
// output for one node: resolved values, dependency edges, recipe hash,
// environment).
//
// The package is syntax only. It checks document structure and reports
// positions, but it does not know mode names or ordering invariants; those
// are enforced at evaluation time.
package recipe
