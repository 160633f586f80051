// Package binquery is the binary query language: boolean predicates over
// settings and options, like
//
//	os=Windows AND (compiler.version=14 OR compiler.version=15) AND NOT shared=True
//
// A parsed query has two consumers. Match evaluates it in memory against a
// fingerprint's full settings and options, and the catalog compiles it to a
// parameterized SQL predicate over its match table. Both agree on the
// undefined contract: an absent or undefined key compares equal to the
// literal text "None".
//
// The AST is sealed: only types in this package implement Expr, so backend
// compilers can switch exhaustively.
package binquery
