package knownvalue

import (
	"crypto/sha256"

	"github.com/gordian-systems/go-envelope/dcbor"
)

// tagKnownValue marks a dCBOR-encoded known value for digesting, keeping
// its hash input distinct from a Leaf of the same bare integer.
const tagKnownValue uint64 = 201

// Digest is SHA-256 of the value's tagged dCBOR encoding (spec.md §4.3).
func (v Value) Digest() ([32]byte, error) {
	tagged := dcbor.NewTagged(tagKnownValue, dcbor.NewUint(v.n))
	b, err := dcbor.Encode(tagged)
	if err != nil {
		return [32]byte{}, err
	}
	return sha256.Sum256(b), nil
}

// CBOR returns the value's tagged dCBOR encoding, the same bytes Digest
// hashes.
func (v Value) CBOR() dcbor.Value {
	return dcbor.NewTagged(tagKnownValue, dcbor.NewUint(v.n))
}
