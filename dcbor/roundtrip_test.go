package dcbor

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTripScalars(t *testing.T) {
	cases := []Value{
		NewUint(0),
		NewUint(23),
		NewUint(24),
		NewUint(255),
		NewUint(256),
		NewUint(65535),
		NewUint(65536),
		NewInt(-1),
		NewInt(-256),
		NewText("hello"),
		NewBytes([]byte{0xde, 0xad, 0xbe, 0xef}),
		NewBool(true),
		NewBool(false),
		NewNull(),
		NewUndefined(),
		NewFloat(1.5),
		NewFloat(math.NaN()),
		NewFloat(math.Inf(1)),
		NewFloat(math.Inf(-1)),
	}
	for _, v := range cases {
		enc, err := Encode(v)
		require.NoError(t, err)
		dec, err := Decode(enc)
		require.NoError(t, err)
		assert.True(t, Equal(v, dec), "round trip mismatch for kind %v", v.Kind())
	}
}

func TestFloatIntegerFolding(t *testing.T) {
	enc, err := Encode(NewFloat(1.0))
	require.NoError(t, err)
	encInt, err := Encode(NewUint(1))
	require.NoError(t, err)
	assert.Equal(t, encInt, enc, "1.0 must fold to canonical integer 1")
}

func TestNegativeZeroFoldsToZero(t *testing.T) {
	enc, err := Encode(NewFloat(math.Copysign(0, -1)))
	require.NoError(t, err)
	zero, err := Encode(NewUint(0))
	require.NoError(t, err)
	assert.Equal(t, zero, enc)
}

func TestMapCanonicalOrdering(t *testing.T) {
	m1 := NewMap([]MapEntry{
		{Key: NewText("b"), Value: NewUint(2)},
		{Key: NewText("a"), Value: NewUint(1)},
	})
	m2 := NewMap([]MapEntry{
		{Key: NewText("a"), Value: NewUint(1)},
		{Key: NewText("b"), Value: NewUint(2)},
	})
	enc1, err := Encode(m1)
	require.NoError(t, err)
	enc2, err := Encode(m2)
	require.NoError(t, err)
	assert.Equal(t, enc2, enc1, "map encoding must not depend on insertion order")
}

func TestDecodeRejectsDuplicateKeys(t *testing.T) {
	// Hand-built map with two identical single-char text keys "a": {0x01: 1, 0x61: 1}? We
	// construct via encode of a valid map then flip nothing; instead directly craft bytes:
	// {"a": 1, "a": 2} — map(2), text("a"), uint(1), text("a"), uint(2)
	b := []byte{
		0xa2,
		0x61, 'a', 0x01,
		0x61, 'a', 0x02,
	}
	_, err := Decode(b)
	require.Error(t, err)
	de, ok := err.(*DecodeError)
	require.True(t, ok)
	assert.Equal(t, reasonDuplicateKey, de.Reason)
}

func TestDecodeRejectsUnsortedKeys(t *testing.T) {
	b := []byte{
		0xa2,
		0x61, 'b', 0x01,
		0x61, 'a', 0x02,
	}
	_, err := Decode(b)
	require.Error(t, err)
}

func TestDecodeRejectsNonShortestInt(t *testing.T) {
	// uint8 head encoding value 5 (should be encoded as 0x05 directly).
	b := []byte{0x18, 0x05}
	_, err := Decode(b)
	require.Error(t, err)
}

func TestDecodeRejectsTrailingInput(t *testing.T) {
	b := []byte{0x01, 0x02}
	_, err := Decode(b)
	require.Error(t, err)
}

func TestTagRoundTrip(t *testing.T) {
	v := NewTagged(200, NewText("hi"))
	enc, err := Encode(v)
	require.NoError(t, err)
	dec, err := Decode(enc)
	require.NoError(t, err)
	tag, content, ok := dec.AsTag()
	require.True(t, ok)
	assert.Equal(t, uint64(200), tag)
	s, _ := content.AsText()
	assert.Equal(t, "hi", s)
}

func TestDiagnosticArray(t *testing.T) {
	v := NewArray([]Value{NewUint(1), NewUint(2), NewUint(3)})
	assert.Equal(t, "[1, 2, 3]", Diagnostic(v, DiagnosticOptions{}))
}
