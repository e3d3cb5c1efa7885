package pattern

import (
	"math"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gordian-systems/go-envelope/dcbor"
	"github.com/gordian-systems/go-envelope/envelope"
)

func aliceKnowsBob() *envelope.Envelope {
	alice := envelope.NewLeaf(dcbor.NewText("Alice"))
	knows := envelope.NewLeaf(dcbor.NewText("knows"))
	bob := envelope.NewLeaf(dcbor.NewText("Bob"))
	return alice.AddAssertion(knows, bob)
}

func onlyPath(t *testing.T, results []Result) *envelope.Envelope {
	t.Helper()
	require.Len(t, results, 1)
	return results[0].Path.last()
}

func mustText(t *testing.T, e *envelope.Envelope) string {
	t.Helper()
	leaf, ok := e.AsLeaf()
	require.True(t, ok)
	s, ok := leaf.AsText()
	require.True(t, ok)
	return s
}

func TestAnyMatchesEverything(t *testing.T) {
	e := aliceKnowsBob()
	results := Evaluate(NewAny(), e)
	require.Len(t, results, 1)
	assert.Equal(t, e.Digest(), results[0].Path.last().Digest())
}

func TestBoolMatchesExactValue(t *testing.T) {
	e := envelope.NewLeaf(dcbor.NewBool(true))
	assert.Len(t, Evaluate(NewBool(nil), e), 1)
	trueVal := true
	assert.Len(t, Evaluate(NewBool(&trueVal), e), 1)
	falseVal := false
	assert.Len(t, Evaluate(NewBool(&falseVal), e), 0)
}

func TestNumberExactAndRange(t *testing.T) {
	e := envelope.NewLeaf(dcbor.NewInt(42))
	assert.Len(t, Evaluate(NewNumberExact(42), e), 1)
	assert.Len(t, Evaluate(NewNumberExact(43), e), 0)
	assert.Len(t, Evaluate(NewNumberRange(0, 100), e), 1)
	assert.Len(t, Evaluate(NewNumberRange(43, 100), e), 0)
}

func TestNumberComparisons(t *testing.T) {
	e := envelope.NewLeaf(dcbor.NewInt(10))
	assert.Len(t, Evaluate(NewNumberCompare(NumberGT, 5), e), 1)
	assert.Len(t, Evaluate(NewNumberCompare(NumberGT, 10), e), 0)
	assert.Len(t, Evaluate(NewNumberCompare(NumberGTE, 10), e), 1)
	assert.Len(t, Evaluate(NewNumberCompare(NumberLT, 11), e), 1)
	assert.Len(t, Evaluate(NewNumberCompare(NumberLTE, 10), e), 1)
}

func TestNumberSpecialValues(t *testing.T) {
	nan := envelope.NewLeaf(dcbor.NewFloat(math.NaN()))
	assert.Len(t, Evaluate(NewNumberSpecial(NumberNaN), nan), 1)
	assert.Len(t, Evaluate(NewNumberSpecial(NumberPosInf), nan), 0)

	posInf := envelope.NewLeaf(dcbor.NewFloat(math.Inf(1)))
	assert.Len(t, Evaluate(NewNumberSpecial(NumberPosInf), posInf), 1)

	negInf := envelope.NewLeaf(dcbor.NewFloat(math.Inf(-1)))
	assert.Len(t, Evaluate(NewNumberSpecial(NumberNegInf), negInf), 1)
}

func TestTextExactAndRegex(t *testing.T) {
	e := envelope.NewLeaf(dcbor.NewText("hello"))
	assert.Len(t, Evaluate(NewTextExact("hello"), e), 1)
	assert.Len(t, Evaluate(NewTextExact("goodbye"), e), 0)
	assert.Len(t, Evaluate(NewTextRegex(regexp.MustCompile("^he")), e), 1)
	assert.Len(t, Evaluate(NewTextRegex(regexp.MustCompile("^by")), e), 0)
}

func TestByteStringExactAndRegex(t *testing.T) {
	e := envelope.NewLeaf(dcbor.NewBytes([]byte{0xde, 0xad, 0xbe, 0xef}))
	assert.Len(t, Evaluate(NewByteStringExact([]byte{0xde, 0xad, 0xbe, 0xef}), e), 1)
	assert.Len(t, Evaluate(NewByteStringExact([]byte{0x00}), e), 0)
}

func TestDigestExactPrefixAndRegex(t *testing.T) {
	e := aliceKnowsBob()
	d := e.Digest()
	assert.Len(t, Evaluate(NewDigestExact(d[:]), e), 1)
	assert.Len(t, Evaluate(NewDigestPrefix(d[:4]), e), 1)
	other := [32]byte{}
	assert.Len(t, Evaluate(NewDigestExact(other[:]), e), 0)
}

func TestObscuredMatchesElidedEncryptedCompressed(t *testing.T) {
	e := aliceKnowsBob()
	elided := e.Elide()
	assert.Len(t, Evaluate(NewObscured(ObscuredAny), elided), 1)
	assert.Len(t, Evaluate(NewObscured(ObscuredElided), elided), 1)
	assert.Len(t, Evaluate(NewObscured(ObscuredEncrypted), elided), 0)

	compressed, err := e.Compress()
	require.NoError(t, err)
	assert.Len(t, Evaluate(NewObscured(ObscuredCompressed), compressed), 1)
}

func TestWrappedMatchesAndNavigatesInner(t *testing.T) {
	inner := envelope.NewLeaf(dcbor.NewText("secret"))
	wrapped := inner.Wrap()
	assert.Len(t, Evaluate(NewWrapped(WrappedAny, nil), wrapped), 1)
	results := Evaluate(NewWrapped(WrappedUnwrap, NewTextExact("secret")), wrapped)
	require.Len(t, results, 1)
	assert.Equal(t, inner.Digest(), results[0].Path.last().Digest())
}

func TestSubjectPredicateObjectNavigate(t *testing.T) {
	e := aliceKnowsBob()
	subj := onlyPath(t, Evaluate(NewSubject(nil), e))
	assert.Equal(t, "Alice", mustText(t, subj))

	assertion := e.Assertions()[0]
	pred := onlyPath(t, Evaluate(NewPredicate(nil), assertion))
	assert.Equal(t, "knows", mustText(t, pred))

	obj := onlyPath(t, Evaluate(NewObject(nil), assertion))
	assert.Equal(t, "Bob", mustText(t, obj))
}

func TestAssertionMatchesPredicateAndObject(t *testing.T) {
	e := aliceKnowsBob()
	assertion := e.Assertions()[0]
	results := Evaluate(NewAssertion(NewTextExact("knows"), NewTextExact("Bob")), assertion)
	require.Len(t, results, 1)

	assert.Len(t, Evaluate(NewAssertion(NewTextExact("loves"), nil), assertion), 0)
}
