package dcbor

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"sort"
)

const (
	majorUint   = 0
	majorNegInt = 1
	majorBytes  = 2
	majorText   = 3
	majorArray  = 4
	majorMap    = 5
	majorTag    = 6
	majorSimple = 7
	simpleFalse = 20
	simpleTrue  = 21
	simpleNull  = 22
	simpleUndef = 23
	addFloat16  = 25
	addFloat32  = 26
	addFloat64  = 27
)

// Encode produces the canonical dCBOR byte encoding of v.
func Encode(v Value) ([]byte, error) {
	var buf bytes.Buffer
	if err := encodeValue(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeValue(buf *bytes.Buffer, v Value) error {
	switch v.kind {
	case KindUint:
		return encodeUint(buf, v)
	case KindNegInt:
		return encodeNegInt(buf, v)
	case KindBytes:
		encodeHead(buf, majorBytes, uint64(len(v.bstr)))
		buf.Write(v.bstr)
		return nil
	case KindText:
		b := []byte(v.text)
		encodeHead(buf, majorText, uint64(len(b)))
		buf.Write(b)
		return nil
	case KindArray:
		encodeHead(buf, majorArray, uint64(len(v.arr)))
		for _, e := range v.arr {
			if err := encodeValue(buf, e); err != nil {
				return err
			}
		}
		return nil
	case KindMap:
		return encodeMap(buf, v)
	case KindTagged:
		encodeHead(buf, majorTag, v.tagNum)
		return encodeValue(buf, *v.tagContent)
	case KindBool:
		if v.b {
			buf.WriteByte(majorSimple<<5 | simpleTrue)
		} else {
			buf.WriteByte(majorSimple<<5 | simpleFalse)
		}
		return nil
	case KindNull:
		buf.WriteByte(majorSimple<<5 | simpleNull)
		return nil
	case KindUndefined:
		buf.WriteByte(majorSimple<<5 | simpleUndef)
		return nil
	case KindFloat:
		return encodeFloat(buf, v)
	default:
		return fmt.Errorf("dcbor: encode: unknown kind %v", v.kind)
	}
}

// encodeHead writes a major-type/length head in the shortest canonical form.
func encodeHead(buf *bytes.Buffer, major byte, n uint64) {
	switch {
	case n < 24:
		buf.WriteByte(major<<5 | byte(n))
	case n <= 0xff:
		buf.WriteByte(major<<5 | 24)
		buf.WriteByte(byte(n))
	case n <= 0xffff:
		buf.WriteByte(major<<5 | 25)
		var b [2]byte
		binary.BigEndian.PutUint16(b[:], uint16(n))
		buf.Write(b[:])
	case n <= 0xffffffff:
		buf.WriteByte(major<<5 | 26)
		var b [4]byte
		binary.BigEndian.PutUint32(b[:], uint32(n))
		buf.Write(b[:])
	default:
		buf.WriteByte(major<<5 | 27)
		var b [8]byte
		binary.BigEndian.PutUint64(b[:], n)
		buf.Write(b[:])
	}
}

// bigIntTagPositive/Negative are the standard CBOR bignum tags (RFC 8949
// §3.4.3), used only when a magnitude exceeds uint64.
const (
	tagBignumPositive = 2
	tagBignumNegative = 3
)

func encodeUint(buf *bytes.Buffer, v Value) error {
	if v.ubn != nil {
		encodeHead(buf, majorTag, tagBignumPositive)
		b := v.ubn.Bytes()
		encodeHead(buf, majorBytes, uint64(len(b)))
		buf.Write(b)
		return nil
	}
	encodeHead(buf, majorUint, v.u)
	return nil
}

func encodeNegInt(buf *bytes.Buffer, v Value) error {
	if v.nbn != nil {
		encodeHead(buf, majorTag, tagBignumNegative)
		b := v.nbn.Bytes()
		encodeHead(buf, majorBytes, uint64(len(b)))
		buf.Write(b)
		return nil
	}
	encodeHead(buf, majorNegInt, v.n)
	return nil
}

func encodeMap(buf *bytes.Buffer, v Value) error {
	type kv struct{ k, entry []byte }
	items := make([]kv, 0, len(v.mp))
	seen := make(map[string]bool, len(v.mp))
	for _, e := range v.mp {
		kb, err := Encode(e.Key)
		if err != nil {
			return err
		}
		vb, err := Encode(e.Value)
		if err != nil {
			return err
		}
		ks := string(kb)
		if seen[ks] {
			return fmt.Errorf("dcbor: encode: duplicate map key")
		}
		seen[ks] = true
		entry := append(append([]byte{}, kb...), vb...)
		items = append(items, kv{k: kb, entry: entry})
	}
	sort.Slice(items, func(i, j int) bool {
		return bytes.Compare(items[i].k, items[j].k) < 0
	})
	encodeHead(buf, majorMap, uint64(len(items)))
	for _, it := range items {
		buf.Write(it.entry)
	}
	return nil
}

func encodeFloat(buf *bytes.Buffer, v Value) error {
	f := v.f
	if math.IsNaN(f) {
		// Canonical quiet NaN: float16 bit pattern 0x7e00.
		buf.WriteByte(majorSimple<<5 | addFloat16)
		var b [2]byte
		binary.BigEndian.PutUint16(b[:], 0x7e00)
		buf.Write(b[:])
		return nil
	}
	if i, ok := v.foldsToInteger(); ok {
		return encodeValue(buf, NewInt(i))
	}
	// +0.0 and -0.0 both fold to canonical integer 0 via foldsToInteger
	// above. Otherwise emit the shortest float width that round-trips f
	// exactly: float16, then float32, then float64.
	if back, ok := shrinksToFloat16(f); ok && back == f {
		buf.WriteByte(majorSimple<<5 | addFloat16)
		var b [2]byte
		binary.BigEndian.PutUint16(b[:], float64ToFloat16Bits(f))
		buf.Write(b[:])
		return nil
	}
	if f32 := float32(f); float64(f32) == f {
		buf.WriteByte(majorSimple<<5 | addFloat32)
		var b [4]byte
		binary.BigEndian.PutUint32(b[:], math.Float32bits(f32))
		buf.Write(b[:])
		return nil
	}
	buf.WriteByte(majorSimple<<5 | addFloat64)
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], math.Float64bits(f))
	buf.Write(b[:])
	return nil
}
