package bytewords

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTripAllStyles(t *testing.T) {
	data := []byte{0xde, 0xad, 0xbe, 0xef, 0x00, 0x01, 0x02, 0x7f}
	for _, style := range []Style{Standard, Uri, Minimal} {
		enc, err := Encode(data, style)
		require.NoError(t, err)
		dec, err := Decode(enc, style)
		require.NoError(t, err)
		assert.Equal(t, data, dec)
	}
}

func TestDecodeIsCaseInsensitive(t *testing.T) {
	data := []byte("hello, bytewords")
	enc, err := Encode(data, Standard)
	require.NoError(t, err)
	upper := ""
	for _, r := range enc {
		if r >= 'a' && r <= 'z' {
			upper += string(r - 32)
		} else {
			upper += string(r)
		}
	}
	dec, err := Decode(upper, Standard)
	require.NoError(t, err)
	assert.Equal(t, data, dec)
}

func TestDecodeRejectsBadChecksum(t *testing.T) {
	enc, err := Encode([]byte{1, 2, 3}, Minimal)
	require.NoError(t, err)
	lastIdx := minimalToIndex[enc[len(enc)-2:]]
	replacement := words[(int(lastIdx)+1)%256]
	replacementCode := string([]byte{replacement[0], replacement[3]})
	corrupted := enc[:len(enc)-2] + replacementCode
	_, err = Decode(corrupted, Minimal)
	assert.ErrorIs(t, err, ErrChecksum)
}

func TestDecodeRejectsUnknownWord(t *testing.T) {
	_, err := Decode("zzzz", Standard)
	assert.ErrorIs(t, err, ErrUnknownWord)
}

func TestMinimalCodesAreUnique(t *testing.T) {
	assert.Len(t, minimalToIndex, 256)
	assert.Len(t, wordToIndex, 256)
}
