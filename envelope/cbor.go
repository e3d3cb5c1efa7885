package envelope

import (
	"fmt"

	"github.com/gordian-systems/go-envelope/dcbor"
	"github.com/gordian-systems/go-envelope/knownvalue"
)

// Tags for the envelope case wrapper dCBOR uses when serializing a whole
// tree (for UR transport, compression, and subject encryption). These are
// internal to this package; they need only be self-consistent, since the
// only consumer of these bytes is this package's own ToCBOR/FromCBOR.
const (
	tagEnvNode       uint64 = 220
	tagEnvWrapped    uint64 = 222
	tagEnvAssertion  uint64 = 223
	tagEnvKnownValue uint64 = 224
	tagEnvElided     uint64 = 225
	tagEnvEncrypted  uint64 = 226
	tagEnvCompressed uint64 = 227
)

// ToCBOR serializes e (recursively) as a dCBOR value.
func ToCBOR(e *Envelope) dcbor.Value {
	switch e.kind {
	case KindLeaf:
		return dcbor.NewTagged(tagLeaf, e.cbor)
	case KindKnownValue:
		return dcbor.NewTagged(tagEnvKnownValue, dcbor.NewUint(e.known.Uint64()))
	case KindWrapped:
		return dcbor.NewTagged(tagEnvWrapped, ToCBOR(e.inner))
	case KindAssertion:
		return dcbor.NewTagged(tagEnvAssertion, dcbor.NewArray([]dcbor.Value{
			ToCBOR(e.predicate), ToCBOR(e.object),
		}))
	case KindNode:
		items := make([]dcbor.Value, len(e.assertions))
		for i, a := range e.assertions {
			items[i] = ToCBOR(a)
		}
		return dcbor.NewTagged(tagEnvNode, dcbor.NewArray([]dcbor.Value{
			ToCBOR(e.subject), dcbor.NewArray(items),
		}))
	case KindElided:
		return dcbor.NewTagged(tagEnvElided, dcbor.NewBytes(e.storedDigest[:]))
	case KindEncrypted:
		return dcbor.NewTagged(tagEnvEncrypted, dcbor.NewArray([]dcbor.Value{
			dcbor.NewBytes(e.storedDigest[:]), encryptedMessageToCBOR(e.message),
		}))
	case KindCompressed:
		return dcbor.NewTagged(tagEnvCompressed, dcbor.NewArray([]dcbor.Value{
			dcbor.NewBytes(e.storedDigest[:]), dcbor.NewBytes(e.compressed),
		}))
	default:
		panic(fmt.Sprintf("envelope: ToCBOR: unknown kind %v", e.kind))
	}
}

// FromCBOR reconstructs an Envelope from ToCBOR's output.
func FromCBOR(v dcbor.Value) (*Envelope, error) {
	tag, content, ok := v.AsTag()
	if !ok {
		return nil, fmt.Errorf("envelope: FromCBOR: expected a tagged value")
	}
	switch tag {
	case tagLeaf:
		return NewLeaf(content), nil
	case tagEnvKnownValue:
		n, ok := content.AsUint()
		if !ok {
			return nil, fmt.Errorf("envelope: FromCBOR: known value content is not a uint")
		}
		return NewKnownValue(knownvalue.New(n)), nil
	case tagEnvWrapped:
		inner, err := FromCBOR(content)
		if err != nil {
			return nil, err
		}
		return inner.Wrap(), nil
	case tagEnvAssertion:
		items, ok := content.AsArray()
		if !ok || len(items) != 2 {
			return nil, fmt.Errorf("envelope: FromCBOR: malformed assertion")
		}
		pred, err := FromCBOR(items[0])
		if err != nil {
			return nil, err
		}
		obj, err := FromCBOR(items[1])
		if err != nil {
			return nil, err
		}
		return NewAssertion(pred, obj), nil
	case tagEnvNode:
		items, ok := content.AsArray()
		if !ok || len(items) != 2 {
			return nil, fmt.Errorf("envelope: FromCBOR: malformed node")
		}
		subject, err := FromCBOR(items[0])
		if err != nil {
			return nil, err
		}
		assertionItems, ok := items[1].AsArray()
		if !ok {
			return nil, fmt.Errorf("envelope: FromCBOR: malformed node assertion list")
		}
		assertions := make([]*Envelope, len(assertionItems))
		for i, ai := range assertionItems {
			a, err := FromCBOR(ai)
			if err != nil {
				return nil, err
			}
			assertions[i] = a
		}
		return newNode(subject, assertions), nil
	case tagEnvElided:
		b, ok := content.AsBytes()
		if !ok || len(b) != 32 {
			return nil, fmt.Errorf("envelope: FromCBOR: malformed elided digest")
		}
		var d Digest
		copy(d[:], b)
		return NewElided(d), nil
	case tagEnvEncrypted:
		items, ok := content.AsArray()
		if !ok || len(items) != 2 {
			return nil, fmt.Errorf("envelope: FromCBOR: malformed encrypted envelope")
		}
		db, ok := items[0].AsBytes()
		if !ok || len(db) != 32 {
			return nil, fmt.Errorf("envelope: FromCBOR: malformed encrypted digest")
		}
		msg, err := encryptedMessageFromCBOR(items[1])
		if err != nil {
			return nil, err
		}
		var d Digest
		copy(d[:], db)
		return &Envelope{kind: KindEncrypted, storedDigest: d, message: msg}, nil
	case tagEnvCompressed:
		items, ok := content.AsArray()
		if !ok || len(items) != 2 {
			return nil, fmt.Errorf("envelope: FromCBOR: malformed compressed envelope")
		}
		db, ok := items[0].AsBytes()
		if !ok || len(db) != 32 {
			return nil, fmt.Errorf("envelope: FromCBOR: malformed compressed digest")
		}
		data, ok := items[1].AsBytes()
		if !ok {
			return nil, fmt.Errorf("envelope: FromCBOR: malformed compressed data")
		}
		var d Digest
		copy(d[:], db)
		return &Envelope{kind: KindCompressed, storedDigest: d, compressed: data}, nil
	default:
		return nil, fmt.Errorf("envelope: FromCBOR: unknown envelope tag %d", tag)
	}
}
