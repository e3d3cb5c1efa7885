package bytewords

import (
	"encoding/binary"
	"hash/crc32"
	"strings"
)

// Style selects how encoded words are joined.
type Style int

const (
	// Standard joins full words with a space, e.g. "aeda beka cera".
	Standard Style = iota
	// Uri joins full words with a hyphen, for use inside a URI path segment.
	Uri
	// Minimal concatenates each word's 2-char minimal code with no separator.
	Minimal
)

func (s Style) separator() (string, bool) {
	switch s {
	case Standard:
		return " ", true
	case Uri:
		return "-", true
	case Minimal:
		return "", false
	default:
		return "", false
	}
}

// Encode appends a CRC-32 (IEEE, as specified by spec.md §4.2) to data and
// renders the result in the given style.
func Encode(data []byte, style Style) (string, error) {
	payload := appendChecksum(data)
	switch style {
	case Standard, Uri:
		sep, _ := style.separator()
		parts := make([]string, len(payload))
		for i, b := range payload {
			parts[i] = words[b]
		}
		return strings.Join(parts, sep), nil
	case Minimal:
		var sb strings.Builder
		sb.Grow(len(payload) * 2)
		for _, b := range payload {
			w := words[b]
			sb.WriteByte(w[0])
			sb.WriteByte(w[3])
		}
		return sb.String(), nil
	default:
		return "", ErrUnknownStyle
	}
}

// Decode parses s (case-insensitively) in the given style, verifies and
// strips the trailing CRC-32, and returns the original payload.
func Decode(s string, style Style) ([]byte, error) {
	s = strings.ToLower(s)
	var payload []byte
	switch style {
	case Standard, Uri:
		sep, _ := style.separator()
		var tokens []string
		if sep == " " {
			tokens = strings.Fields(s)
		} else {
			tokens = strings.Split(s, sep)
		}
		payload = make([]byte, 0, len(tokens))
		for _, tok := range tokens {
			idx, ok := wordToIndex[tok]
			if !ok {
				return nil, ErrUnknownWord
			}
			payload = append(payload, idx)
		}
	case Minimal:
		if len(s)%2 != 0 {
			return nil, ErrBadLength
		}
		payload = make([]byte, 0, len(s)/2)
		for i := 0; i < len(s); i += 2 {
			idx, ok := minimalToIndex[s[i:i+2]]
			if !ok {
				return nil, ErrUnknownWord
			}
			payload = append(payload, idx)
		}
	default:
		return nil, ErrUnknownStyle
	}
	return stripChecksum(payload)
}

func appendChecksum(data []byte) []byte {
	sum := crc32.ChecksumIEEE(data)
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], sum)
	out := make([]byte, 0, len(data)+4)
	out = append(out, data...)
	out = append(out, b[:]...)
	return out
}

func stripChecksum(payload []byte) ([]byte, error) {
	if len(payload) < 4 {
		return nil, ErrTooShort
	}
	n := len(payload) - 4
	want := binary.BigEndian.Uint32(payload[n:])
	got := crc32.ChecksumIEEE(payload[:n])
	if want != got {
		return nil, ErrChecksum
	}
	return payload[:n], nil
}
