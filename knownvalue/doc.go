// Package knownvalue implements the Known-Values registry: a shared,
// process-wide namespace of well-known small unsigned integers that stand
// in for common envelope predicates and objects ("knows", "salt",
// "signed", ...) so they compare and hash as single integers rather than
// as repeated text literals.
package knownvalue
