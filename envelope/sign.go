package envelope

import (
	"bytes"
	"crypto/ed25519"
	"crypto/rand"

	"github.com/veraison/go-cose"

	"github.com/gordian-systems/go-envelope/dcbor"
	"github.com/gordian-systems/go-envelope/internal/xlog"
	"github.com/gordian-systems/go-envelope/knownvalue"
)

// Signer produces a COSE_Sign1 signature over an envelope digest.
type Signer struct {
	key ed25519.PrivateKey
	log xlog.Logger
}

// SignerOption configures a Signer, per teacher's WithX(...) Option idiom
// (massifs/readeroptions.go).
type SignerOption func(*Signer)

// WithSignerLogger injects a Logger that Sign uses to report signature
// construction failures. The default is a no-op logger.
func WithSignerLogger(log xlog.Logger) SignerOption {
	return func(s *Signer) { s.log = log }
}

// NewSigner wraps an Ed25519 private key as a Signer.
func NewSigner(key ed25519.PrivateKey, opts ...SignerOption) Signer {
	s := Signer{key: key, log: xlog.Nop()}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// Verifier checks a COSE_Sign1 signature against an envelope digest.
type Verifier struct {
	key ed25519.PublicKey
	log xlog.Logger
}

// VerifierOption configures a Verifier.
type VerifierOption func(*Verifier)

// WithVerifierLogger injects a Logger that Verify uses to report why no
// assertion matched. The default is a no-op logger.
func WithVerifierLogger(log xlog.Logger) VerifierOption {
	return func(v *Verifier) { v.log = log }
}

// NewVerifier wraps an Ed25519 public key as a Verifier.
func NewVerifier(key ed25519.PublicKey, opts ...VerifierOption) Verifier {
	v := Verifier{key: key, log: xlog.Nop()}
	for _, opt := range opts {
		opt(&v)
	}
	return v
}

// Sign wraps e as Node(Wrapped(e), [signed: Signature]) (spec.md §4.3): the
// signature covers the digest of Wrapped(e), so later elision of e's
// content (once wrapped, e's subtree is opaque to Node.digest()) never
// invalidates it.
func (e *Envelope) Sign(signer Signer) (*Envelope, error) {
	wrapped := e.Wrap()
	digest := wrapped.Digest()

	coseSigner, err := cose.NewSigner(cose.AlgorithmEdDSA, signer.key)
	if err != nil {
		signer.log.Errorf("envelope: sign: building COSE signer: %v", err)
		return nil, err
	}

	msg := cose.NewSign1Message()
	msg.Headers.Protected.SetAlgorithm(cose.AlgorithmEdDSA)
	msg.Payload = digest[:]
	if err := msg.Sign(rand.Reader, nil, coseSigner); err != nil {
		signer.log.Errorf("envelope: sign: COSE sign over digest %s: %v", digest.Short(), err)
		return nil, err
	}
	sigBytes, err := msg.MarshalCBOR()
	if err != nil {
		return nil, err
	}

	signer.log.Debugf("envelope: signed wrapped digest %s", digest.Short())
	return wrapped.AddAssertion(NewKnownValue(knownvalue.Signed), NewLeaf(dcbor.NewBytes(sigBytes))), nil
}

// Verify looks for a "signed" assertion verifying against verifier over
// e's wrapped-subject digest, and returns the unwrapped subject. It fails
// if no assertion verifies.
func (e *Envelope) Verify(verifier Verifier) (*Envelope, error) {
	if e.kind != KindNode {
		return nil, ErrNoMatchingSignature
	}
	inner, err := e.subject.Unwrap()
	if err != nil {
		return nil, ErrNoMatchingSignature
	}
	digest := e.subject.Digest()

	coseVerifier, err := cose.NewVerifier(cose.AlgorithmEdDSA, verifier.key)
	if err != nil {
		return nil, err
	}

	for _, a := range e.assertions {
		pred, obj, ok := a.AsAssertion()
		if !ok {
			continue
		}
		kv, ok := pred.AsKnownValue()
		if !ok || kv != knownvalue.Signed {
			continue
		}
		sigLeaf, ok := obj.AsLeaf()
		if !ok {
			continue
		}
		b, ok := sigLeaf.AsBytes()
		if !ok {
			continue
		}

		var msg cose.Sign1Message
		if err := msg.UnmarshalCBOR(b); err != nil {
			continue
		}
		if !bytes.Equal(msg.Payload, digest[:]) {
			continue
		}
		if err := msg.Verify(nil, coseVerifier); err == nil {
			verifier.log.Debugf("envelope: verified signed assertion over digest %s", digest.Short())
			return inner, nil
		}
	}
	verifier.log.Warnf("envelope: no \"signed\" assertion verified over digest %s", digest.Short())
	return nil, ErrNoMatchingSignature
}
