package envelope

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"

	"github.com/gordian-systems/go-envelope/dcbor"
)

// Digest is the 32-byte SHA-256 that addresses an envelope (spec.md §3.2).
// Digests compare equal iff their bytes are equal.
type Digest [32]byte

// Short renders the first 8 hex characters, for display only.
func (d Digest) Short() string {
	return hex.EncodeToString(d[:])[:8]
}

func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// Less orders digests by byte-lexicographic order, the order Node.digest()
// sorts its assertions by.
func (d Digest) Less(o Digest) bool {
	for i := range d {
		if d[i] != o[i] {
			return d[i] < o[i]
		}
	}
	return false
}

func sum(parts ...[]byte) Digest {
	h := sha256.New()
	for _, p := range parts {
		h.Write(p)
	}
	var d Digest
	copy(d[:], h.Sum(nil))
	return d
}

// tagLeaf and tagKnownValue mark the dCBOR content hashed for a Leaf or
// KnownValue case, keeping their hash domains distinct from each other and
// from any bare application-level use of the same dCBOR value.
const tagLeaf uint64 = 200

func sortDigests(ds []Digest) {
	sort.Slice(ds, func(i, j int) bool { return ds[i].Less(ds[j]) })
}

// Digest computes (or returns the cached) digest per spec.md §4.3's
// contract. Elide/encrypt/compress never change it: Elided, Encrypted, and
// Compressed cases simply return the digest stored at construction time.
func (e *Envelope) Digest() Digest {
	if e.digestCache != nil {
		return *e.digestCache
	}
	var d Digest
	switch e.kind {
	case KindLeaf:
		tagged := dcbor.NewTagged(tagLeaf, e.cbor)
		b, err := dcbor.Encode(tagged)
		if err != nil {
			panic("envelope: leaf digest: " + err.Error())
		}
		d = sum(b)
	case KindKnownValue:
		kd, err := e.known.Digest()
		if err != nil {
			panic("envelope: known value digest: " + err.Error())
		}
		d = Digest(kd)
	case KindWrapped:
		inner := e.inner.Digest()
		d = sum(inner[:])
	case KindAssertion:
		pd := e.predicate.Digest()
		od := e.object.Digest()
		d = sum(pd[:], od[:])
	case KindNode:
		sd := e.subject.Digest()
		parts := make([][]byte, 0, len(e.assertions)+1)
		parts = append(parts, sd[:])
		for _, a := range e.assertions {
			ad := a.Digest()
			parts = append(parts, ad[:])
		}
		d = sum(parts...)
	case KindElided:
		d = e.storedDigest
	case KindEncrypted:
		d = e.storedDigest
	case KindCompressed:
		d = e.storedDigest
	}
	e.digestCache = &d
	return d
}
