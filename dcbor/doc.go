// Package dcbor implements deterministic CBOR (dCBOR): a canonical encoding
// of a tagged value tree, and a validating decoder that rejects any input
// that is not already in that canonical form.
//
// Values are immutable; every transformation produces a new Value. Equality
// is defined by canonical encoding equality, never by identity or the
// insertion order of a map.
package dcbor
