package envelope

import (
	"errors"
	"fmt"
)

// Sentinel errors, named after the abstract Envelope.*/Crypto.* error kinds
// in spec.md §7.
var (
	ErrAlreadyEncrypted    = errors.New("envelope: subject is already encrypted")
	ErrNotEncrypted        = errors.New("envelope: subject is not encrypted")
	ErrAeadAuthFail        = errors.New("envelope: AEAD authentication failed")
	ErrNoMatchingRecipient = errors.New("envelope: no recipient entry matches the given private key")
	ErrNoMatchingSignature = errors.New("envelope: no \"signed\" assertion verifies against the given verifier")
	ErrNotCompressed       = errors.New("envelope: subject is not compressed")
	ErrSskrThreshold       = errors.New("envelope: sskrJoin did not receive enough shares to meet the threshold")
	ErrSskrShareMismatch   = errors.New("envelope: sskrJoin shares do not belong to the same split")
	ErrMalformedCBOR       = errors.New("envelope: malformed envelope CBOR encoding")
)

// ErrUnexpectedCase reports that an operator required a specific case and
// found another.
type ErrUnexpectedCase struct {
	Expected, Actual Kind
}

func (e *ErrUnexpectedCase) Error() string {
	return fmt.Sprintf("envelope: expected case %s, found %s", e.Expected, e.Actual)
}

// ErrAssertionMissing reports that no assertion with the given predicate
// digest exists on a Node.
type ErrAssertionMissing struct {
	PredicateDigest Digest
}

func (e *ErrAssertionMissing) Error() string {
	return fmt.Sprintf("envelope: no assertion with predicate digest %s", e.PredicateDigest.Short())
}

// ErrDigestMismatch reports that a transformation's input did not preserve
// the digest it should have.
type ErrDigestMismatch struct {
	Expected, Actual Digest
}

func (e *ErrDigestMismatch) Error() string {
	return fmt.Sprintf("envelope: digest mismatch: expected %s, got %s", e.Expected.Short(), e.Actual.Short())
}

// ErrKeySize reports a symmetric or asymmetric key of the wrong length.
type ErrKeySize struct {
	Expected, Actual int
}

func (e *ErrKeySize) Error() string {
	return fmt.Sprintf("envelope: expected key of %d bytes, got %d", e.Expected, e.Actual)
}
