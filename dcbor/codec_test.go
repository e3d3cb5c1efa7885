package dcbor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodecDiagnoseRFC8949AgreesOnStructure(t *testing.T) {
	c := NewCodec(nil)
	v := NewArray([]Value{NewUint(1), NewText("x"), NewBytes([]byte{0xab})})
	b, err := c.Encode(v)
	require.NoError(t, err)

	diag, err := c.DiagnoseRFC8949(b)
	require.NoError(t, err)
	assert.Contains(t, diag, "1")
	assert.Contains(t, diag, "x")
	assert.Contains(t, diag, "ab")
}

func TestCodecDiagnoseRFC8949RejectsMalformedBytes(t *testing.T) {
	c := NewCodec(nil)
	_, err := c.DiagnoseRFC8949([]byte{0xff, 0xff, 0xff})
	assert.Error(t, err)
}

func TestCodecUsesInjectedLoggerOnDecodeFailure(t *testing.T) {
	var messages []string
	c := NewCodec(nil, WithLogger(recordingLogger{out: &messages}))
	_, err := c.Decode([]byte{0xff, 0xff, 0xff})
	require.Error(t, err)
	assert.NotEmpty(t, messages)
}

type recordingLogger struct {
	out *[]string
}

func (l recordingLogger) Debugf(format string, args ...interface{}) {
	*l.out = append(*l.out, format)
}
func (l recordingLogger) Infof(string, ...interface{})  {}
func (l recordingLogger) Warnf(string, ...interface{})  {}
func (l recordingLogger) Errorf(string, ...interface{}) {}
