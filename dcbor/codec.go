package dcbor

import (
	"github.com/fxamacker/cbor/v2"

	"github.com/gordian-systems/go-envelope/internal/xlog"
)

// Codec bundles the canonical encode/decode behavior and the tag registry
// they consult, mirroring the teacher's single-constructor codec shape
// (massifs/cborcodec.go) rather than exposing loose encode/decode options.
type Codec struct {
	Tags *TagRegistry
	log  xlog.Logger
}

// Option configures a Codec, per teacher's massifs/readeroptions.go
// WithX(...) Option idiom.
type Option func(*Codec)

// WithLogger injects a Logger that Encode/Decode use to report malformed
// input. The default is a no-op logger.
func WithLogger(log xlog.Logger) Option {
	return func(c *Codec) { c.log = log }
}

// NewCodec returns a Codec backed by tags, or DefaultTags if tags is nil.
func NewCodec(tags *TagRegistry, opts ...Option) Codec {
	if tags == nil {
		tags = DefaultTags
	}
	c := Codec{Tags: tags, log: xlog.Nop()}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Encode produces the canonical dCBOR byte encoding of v.
func (c Codec) Encode(v Value) ([]byte, error) {
	b, err := Encode(v)
	if err != nil {
		c.log.Debugf("dcbor: encode failed: %v", err)
		return nil, err
	}
	return b, nil
}

// Decode parses exactly one canonical dCBOR value from b.
func (c Codec) Decode(b []byte) (Value, error) {
	v, err := Decode(b)
	if err != nil {
		c.log.Debugf("dcbor: decode rejected %d bytes: %v", len(b), err)
		return Value{}, err
	}
	return v, nil
}

// Diagnostic renders v using the codec's tag registry.
func (c Codec) Diagnostic(v Value, summarize bool) string {
	return Diagnostic(v, DiagnosticOptions{Summarize: summarize, Tags: c.Tags})
}

// DiagnoseRFC8949 renders already-encoded dCBOR bytes in the standard
// RFC 8949 §8 extended diagnostic notation, as a cross-check against this
// package's own Diagnostic: every dCBOR encoding is valid CBOR, so any
// third-party CBOR library's diagnostic renderer must agree with ours on
// structure (though not on tag/summary naming, which only our TagRegistry
// knows about). Delegates to fxamacker/cbor/v2 rather than re-implementing
// RFC 8949's diagnostic grammar a second time.
func (c Codec) DiagnoseRFC8949(b []byte) (string, error) {
	s, err := cbor.Diagnose(b)
	if err != nil {
		c.log.Debugf("dcbor: RFC 8949 diagnose rejected %d bytes: %v", len(b), err)
		return "", err
	}
	return s, nil
}
