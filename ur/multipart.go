package ur

import (
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"

	"github.com/gordian-systems/go-envelope/bytewords"
	"github.com/gordian-systems/go-envelope/fountain"
)

// Encoder produces an unbounded, deterministic sequence of multipart UR
// parts for a payload too large for a single-part encoding.
type Encoder struct {
	urType string
	fe     *fountain.Encoder
}

// NewEncoder splits payload into fragments of at most maxFragmentLen bytes.
func NewEncoder(urType string, payload []byte, maxFragmentLen int) (*Encoder, error) {
	if err := ValidateType(urType); err != nil {
		return nil, err
	}
	return &Encoder{urType: urType, fe: fountain.NewEncoder(payload, maxFragmentLen)}, nil
}

// SeqLen is the number of pure fragments the payload was split into.
func (e *Encoder) SeqLen() int { return e.fe.SeqLen() }

// Part renders 1-based part seqNum as
// "ur:<type>/<seqNum>-<seqLen>/<bytewords>", where the bytewords payload is
// messageLen (u32 BE) ‖ checksum (u32 BE) ‖ fragment data.
func (e *Encoder) Part(seqNum int) (string, error) {
	frag := e.fe.Fragment(seqNum)
	data := make([]byte, 8+len(frag))
	binary.BigEndian.PutUint32(data[0:4], uint32(e.fe.MessageLen()))
	binary.BigEndian.PutUint32(data[4:8], e.fe.Checksum())
	copy(data[8:], frag)
	body, err := bytewords.Encode(data, bytewords.Minimal)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%s/%d-%d/%s", scheme, e.urType, seqNum, e.fe.SeqLen(), body), nil
}

// Decoder reassembles a message from multipart UR strings received in any
// order, possibly interleaved with duplicates.
type Decoder struct {
	urType   string
	typeSeen bool
	fd       *fountain.Decoder
}

// NewDecoder returns an empty multipart decoder.
func NewDecoder() *Decoder {
	return &Decoder{fd: fountain.NewDecoder()}
}

// Receive ingests one multipart UR string. Every part received by the same
// Decoder must share the same UR type, or Receive returns *ErrUnexpectedType.
func (d *Decoder) Receive(s string) error {
	rest, ok := strings.CutPrefix(s, scheme)
	if !ok {
		return ErrInvalidScheme
	}
	slash := strings.IndexByte(rest, '/')
	if slash < 0 {
		return ErrTypeUnspecified
	}
	urType := rest[:slash]
	if err := ValidateType(urType); err != nil {
		return err
	}
	if !d.typeSeen {
		d.urType = urType
		d.typeSeen = true
	} else if d.urType != urType {
		return &ErrUnexpectedType{Expected: d.urType, Found: urType}
	}

	body := rest[slash+1:]
	slash2 := strings.IndexByte(body, '/')
	if slash2 < 0 {
		return ErrMalformedMultipart
	}
	seqPart, wordsPart := body[:slash2], body[slash2+1:]
	dash := strings.IndexByte(seqPart, '-')
	if dash <= 0 || dash == len(seqPart)-1 {
		return ErrMalformedMultipart
	}
	seqNum, err := strconv.Atoi(seqPart[:dash])
	if err != nil {
		return ErrMalformedMultipart
	}
	seqLen, err := strconv.Atoi(seqPart[dash+1:])
	if err != nil {
		return ErrMalformedMultipart
	}

	data, err := bytewords.Decode(wordsPart, bytewords.Minimal)
	if err != nil {
		return err
	}
	if len(data) < 8 {
		return ErrMalformedMultipart
	}
	messageLen := binary.BigEndian.Uint32(data[0:4])
	checksum := binary.BigEndian.Uint32(data[4:8])
	fragment := data[8:]
	return d.fd.AddPart(seqNum, seqLen, int(messageLen), checksum, fragment)
}

// Type is the UR type shared by every part received so far.
func (d *Decoder) Type() string { return d.urType }

// Done reports whether enough parts have arrived to reconstruct the message.
func (d *Decoder) Done() bool { return d.fd.Done() }

// Message assembles and CRC-verifies the reconstructed payload.
func (d *Decoder) Message() ([]byte, error) { return d.fd.Message() }
