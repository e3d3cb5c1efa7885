package ur

import (
	"strings"

	"github.com/gordian-systems/go-envelope/bytewords"
)

const scheme = "ur:"

// Encode renders a single-part UR: "ur:" + type + "/" + Bytewords(payload,
// Minimal).
func Encode(urType string, payload []byte) (string, error) {
	if err := ValidateType(urType); err != nil {
		return "", err
	}
	body, err := bytewords.Encode(payload, bytewords.Minimal)
	if err != nil {
		return "", err
	}
	return scheme + urType + "/" + body, nil
}

// Decode parses a single-part UR string. It rejects input carrying a
// seqNum-seqLen component; use Decoder for multipart input.
func Decode(s string) (*UR, error) {
	rest, ok := strings.CutPrefix(s, scheme)
	if !ok {
		return nil, ErrInvalidScheme
	}
	slash := strings.IndexByte(rest, '/')
	if slash < 0 {
		return nil, ErrTypeUnspecified
	}
	urType := rest[:slash]
	if err := ValidateType(urType); err != nil {
		return nil, err
	}
	body := rest[slash+1:]
	if i := strings.IndexByte(body, '/'); i >= 0 {
		if looksLikeSeq(body[:i]) {
			return nil, ErrNotSinglePart
		}
	}
	payload, err := bytewords.Decode(body, bytewords.Minimal)
	if err != nil {
		return nil, err
	}
	return &UR{Type: urType, Payload: payload}, nil
}

func looksLikeSeq(s string) bool {
	dash := strings.IndexByte(s, '-')
	if dash <= 0 || dash == len(s)-1 {
		return false
	}
	for i, r := range s {
		if i == dash {
			continue
		}
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
