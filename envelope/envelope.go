package envelope

import (
	"sort"

	"github.com/gordian-systems/go-envelope/dcbor"
	"github.com/gordian-systems/go-envelope/knownvalue"
)

// Kind discriminates the eight envelope cases (spec.md §3.3).
type Kind int

const (
	KindNode Kind = iota
	KindLeaf
	KindWrapped
	KindAssertion
	KindKnownValue
	KindElided
	KindEncrypted
	KindCompressed
)

func (k Kind) String() string {
	switch k {
	case KindNode:
		return "node"
	case KindLeaf:
		return "leaf"
	case KindWrapped:
		return "wrapped"
	case KindAssertion:
		return "assertion"
	case KindKnownValue:
		return "knownValue"
	case KindElided:
		return "elided"
	case KindEncrypted:
		return "encrypted"
	case KindCompressed:
		return "compressed"
	default:
		return "unknown"
	}
}

// Envelope is an immutable node in a Gordian Envelope tree. Every
// transformation returns a new Envelope; nothing mutates an existing one.
type Envelope struct {
	kind Kind

	// Node
	subject    *Envelope
	assertions []*Envelope // KindAssertion, sorted ascending by digest

	// Leaf
	cbor dcbor.Value

	// Wrapped
	inner *Envelope

	// Assertion
	predicate *Envelope
	object    *Envelope

	// KnownValue
	known knownvalue.Value

	// Elided / Encrypted / Compressed
	storedDigest Digest
	message      *EncryptedMessage // Encrypted only
	compressed   []byte            // Compressed only

	digestCache *Digest
}

// Kind reports the envelope's case.
func (e *Envelope) Kind() Kind { return e.kind }

// NewLeaf wraps a single dCBOR value.
func NewLeaf(v dcbor.Value) *Envelope {
	return &Envelope{kind: KindLeaf, cbor: v}
}

// NewKnownValue wraps a well-known predicate/object value.
func NewKnownValue(v knownvalue.Value) *Envelope {
	return &Envelope{kind: KindKnownValue, known: v}
}

// NewAssertion builds a predicate→object pair.
func NewAssertion(predicate, object *Envelope) *Envelope {
	return &Envelope{kind: KindAssertion, predicate: predicate, object: object}
}

// newNode builds a Node from a subject and an already-deduplicated
// assertion list, sorting the assertions by digest so the set semantics
// described in spec.md §3.3 are observable in iteration order and in the
// digest.
func newNode(subject *Envelope, assertions []*Envelope) *Envelope {
	sorted := append([]*Envelope(nil), assertions...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Digest().Less(sorted[j].Digest())
	})
	return &Envelope{kind: KindNode, subject: subject, assertions: sorted}
}

// NewElided builds a redacted envelope carrying only a digest.
func NewElided(d Digest) *Envelope {
	return &Envelope{kind: KindElided, storedDigest: d}
}

// AsLeaf returns the wrapped dCBOR value, if this is a Leaf.
func (e *Envelope) AsLeaf() (dcbor.Value, bool) {
	if e.kind != KindLeaf {
		return dcbor.Value{}, false
	}
	return e.cbor, true
}

// AsKnownValue returns the wrapped known value, if this is a KnownValue.
func (e *Envelope) AsKnownValue() (knownvalue.Value, bool) {
	if e.kind != KindKnownValue {
		return knownvalue.Value{}, false
	}
	return e.known, true
}

// Subject returns a Node's subject, or the envelope itself for any other
// case (the usual meaning of "subject" for a leaf-like envelope).
func (e *Envelope) Subject() *Envelope {
	if e.kind == KindNode {
		return e.subject
	}
	return e
}

// Assertions returns a Node's assertions in ascending digest order, or nil
// for any other case.
func (e *Envelope) Assertions() []*Envelope {
	if e.kind != KindNode {
		return nil
	}
	return append([]*Envelope(nil), e.assertions...)
}

// AsAssertion returns the predicate and object, if this is an Assertion.
func (e *Envelope) AsAssertion() (predicate, object *Envelope, ok bool) {
	if e.kind != KindAssertion {
		return nil, nil, false
	}
	return e.predicate, e.object, true
}

// AsWrapped returns the enclosed envelope, if this is Wrapped.
func (e *Envelope) AsWrapped() (*Envelope, bool) {
	if e.kind != KindWrapped {
		return nil, false
	}
	return e.inner, true
}

// AsElided returns the stored digest, if this is Elided.
func (e *Envelope) AsElided() (Digest, bool) {
	if e.kind != KindElided {
		return Digest{}, false
	}
	return e.storedDigest, true
}

// AsEncrypted returns the sealed message, if this is Encrypted.
func (e *Envelope) AsEncrypted() (*EncryptedMessage, bool) {
	if e.kind != KindEncrypted {
		return nil, false
	}
	return e.message, true
}

// AsCompressed returns the compressed bytes, if this is Compressed.
func (e *Envelope) AsCompressed() ([]byte, bool) {
	if e.kind != KindCompressed {
		return nil, false
	}
	return e.compressed, true
}

// AddAssertion extends e with a predicate→object assertion, building a
// Node (or extending an existing one). A duplicate assertion digest is a
// no-op (spec.md §4.3).
func (e *Envelope) AddAssertion(predicate, object *Envelope) *Envelope {
	return e.AddAssertionEnvelope(NewAssertion(predicate, object))
}

// AddAssertionEnvelope is AddAssertion given a prebuilt Assertion envelope.
func (e *Envelope) AddAssertionEnvelope(a *Envelope) *Envelope {
	subject := e
	existing := []*Envelope(nil)
	if e.kind == KindNode {
		subject = e.subject
		existing = e.assertions
	}
	ad := a.Digest()
	for _, ex := range existing {
		if ex.Digest() == ad {
			return e
		}
	}
	merged := append(append([]*Envelope(nil), existing...), a)
	return newNode(subject, merged)
}

// Wrap returns Wrapped(e), treating the whole envelope as an opaque
// subject for further assertions.
func (e *Envelope) Wrap() *Envelope {
	return &Envelope{kind: KindWrapped, inner: e}
}

// Unwrap returns the enclosed envelope; it fails if e is not Wrapped.
func (e *Envelope) Unwrap() (*Envelope, error) {
	if e.kind != KindWrapped {
		return nil, &ErrUnexpectedCase{Expected: KindWrapped, Actual: e.kind}
	}
	return e.inner, nil
}
