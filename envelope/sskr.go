package envelope

import (
	"crypto/rand"
	"fmt"

	"github.com/gordian-systems/go-envelope/dcbor"
	"github.com/gordian-systems/go-envelope/knownvalue"
)

// SskrSpec names a single-group Shamir threshold: Total shares are
// generated, any Threshold of which recover the content key. This package
// implements only the minimal single-group operator surface spec.md §4.3
// names (`sskrSplit`/`sskrJoin`), not the full SSKR group-hierarchy format.
type SskrSpec struct {
	Threshold int
	Total     int
}

type sskrShare struct {
	Index     byte
	Threshold byte
	Total     byte
	Value     [32]byte
}

func (s sskrShare) encode() []byte {
	b := make([]byte, 0, 3+32)
	b = append(b, s.Index, s.Threshold, s.Total)
	b = append(b, s.Value[:]...)
	return b
}

func decodeSskrShare(b []byte) (sskrShare, error) {
	if len(b) != 3+32 {
		return sskrShare{}, ErrMalformedCBOR
	}
	var s sskrShare
	s.Index, s.Threshold, s.Total = b[0], b[1], b[2]
	copy(s.Value[:], b[3:])
	return s, nil
}

func evalPoly(secretByte byte, coeffs []byte, x byte) byte {
	result := secretByte
	xPow := byte(1)
	for _, c := range coeffs {
		xPow = gf256Mul(xPow, x)
		result = gf256Add(result, gf256Mul(c, xPow))
	}
	return result
}

func sskrSplitKey(spec SskrSpec, secret [32]byte) ([]sskrShare, error) {
	if spec.Threshold < 1 || spec.Total < spec.Threshold || spec.Total > 255 {
		return nil, fmt.Errorf("envelope: invalid SSKR spec %+v", spec)
	}
	coeffs := make([][]byte, len(secret))
	for i := range secret {
		coeffs[i] = make([]byte, spec.Threshold-1)
		if _, err := rand.Read(coeffs[i]); err != nil {
			return nil, err
		}
	}
	shares := make([]sskrShare, spec.Total)
	for s := 0; s < spec.Total; s++ {
		x := byte(s + 1)
		var y [32]byte
		for i := range secret {
			y[i] = evalPoly(secret[i], coeffs[i], x)
		}
		shares[s] = sskrShare{Index: x, Threshold: byte(spec.Threshold), Total: byte(spec.Total), Value: y}
	}
	return shares, nil
}

// lagrangeAtZero recovers one byte of the secret by Lagrange-interpolating
// to x=0; subtraction is XOR in GF(2^8), so "0 - x" is just "x".
func lagrangeAtZero(shares []sskrShare, byteIdx int) byte {
	var result byte
	for j, sj := range shares {
		num := byte(1)
		den := byte(1)
		for m, sm := range shares {
			if m == j {
				continue
			}
			num = gf256Mul(num, sm.Index)
			den = gf256Mul(den, gf256Add(sj.Index, sm.Index))
		}
		term := gf256Mul(sj.Value[byteIdx], gf256Div(num, den))
		result = gf256Add(result, term)
	}
	return result
}

func sskrJoinKey(shares []sskrShare) ([32]byte, error) {
	var zero [32]byte
	if len(shares) == 0 {
		return zero, ErrSskrThreshold
	}
	threshold := shares[0].Threshold
	for _, s := range shares {
		if s.Threshold != threshold {
			return zero, ErrSskrShareMismatch
		}
	}
	if len(shares) < int(threshold) {
		return zero, ErrSskrThreshold
	}
	use := shares[:threshold]
	var secret [32]byte
	for i := range secret {
		secret[i] = lagrangeAtZero(use, i)
	}
	return secret, nil
}

// SskrSplit splits contentKey into spec.Total envelope shares, any
// spec.Threshold of which recover it. Each share is e with one additional
// `sskrShare` assertion; e's subject must already be Encrypted under
// contentKey.
func (e *Envelope) SskrSplit(spec SskrSpec, contentKey [32]byte) ([]*Envelope, error) {
	if e.Subject().kind != KindEncrypted {
		return nil, ErrNotEncrypted
	}
	shares, err := sskrSplitKey(spec, contentKey)
	if err != nil {
		return nil, err
	}
	out := make([]*Envelope, len(shares))
	for i, s := range shares {
		out[i] = e.AddAssertion(NewKnownValue(knownvalue.SskrShare), NewLeaf(dcbor.NewBytes(s.encode())))
	}
	return out, nil
}

// SskrJoin recovers the content key from a set of shares produced by
// SskrSplit (at least spec.Threshold of them, all from the same split) and
// decrypts their common subject.
func SskrJoin(shares []*Envelope) (*Envelope, error) {
	if len(shares) == 0 {
		return nil, ErrSskrThreshold
	}
	parsed := make([]sskrShare, 0, len(shares))
	for _, share := range shares {
		if share.kind != KindNode {
			return nil, ErrMalformedCBOR
		}
		found := false
		for _, a := range share.assertions {
			pred, obj, ok := a.AsAssertion()
			if !ok {
				continue
			}
			kv, ok := pred.AsKnownValue()
			if !ok || kv != knownvalue.SskrShare {
				continue
			}
			leaf, ok := obj.AsLeaf()
			if !ok {
				continue
			}
			b, ok := leaf.AsBytes()
			if !ok {
				continue
			}
			s, err := decodeSskrShare(b)
			if err != nil {
				return nil, err
			}
			parsed = append(parsed, s)
			found = true
			break
		}
		if !found {
			return nil, ErrMalformedCBOR
		}
	}
	contentKey, err := sskrJoinKey(parsed)
	if err != nil {
		return nil, err
	}

	// Strip the share-specific sskrShare assertion before decrypting, so
	// the recovered envelope carries only the assertions common to every
	// share (and matches the pre-split digest).
	kept := make([]*Envelope, 0, len(shares[0].assertions))
	for _, a := range shares[0].assertions {
		pred, _, ok := a.AsAssertion()
		if ok {
			if kv, ok := pred.AsKnownValue(); ok && kv == knownvalue.SskrShare {
				continue
			}
		}
		kept = append(kept, a)
	}
	if len(kept) == 0 {
		return shares[0].subject.DecryptSubject(contentKey)
	}
	reconstructed := newNode(shares[0].subject, kept)
	return reconstructed.DecryptSubject(contentKey)
}
