// Package fixture composes recipe and graph documents for tests. The
// builders mirror the CUE document shapes so a test can state an evaluation
// input in a few chained calls instead of hand-assembling structs, and the
// golden helper pins canonical text byte-for-byte.
//
// Builders panic on malformed references. They are test-only constructors;
// production input goes through the recipe loader, which reports errors.
package fixture
