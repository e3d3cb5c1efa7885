package pattern

import (
	"bytes"
	"math"
	"math/big"
	"time"

	"github.com/gordian-systems/go-envelope/dcbor"
	"github.com/gordian-systems/go-envelope/envelope"
	"github.com/gordian-systems/go-envelope/knownvalue"
)

// epochDateTag is CBOR tag 1 (RFC 8949 §3.4.2, epoch-based date/time): a
// date leaf is represented as a dCBOR value tagged 1 over a numeric count
// of seconds since the Unix epoch.
const epochDateTag = 1

// Evaluate matches pat against e and returns every result. Atomic (leaf and
// structure) patterns are matched directly, recursing through Go's own
// call stack — bounded by envelope depth, never by backtracking search
// space. Composite patterns (And/Or/Not/Capture/Search/Traverse/Group)
// route through Compile + the explicit-stack VM, since those are exactly
// the forms whose search space can blow up and must not ride the Go call
// stack (spec.md §9, "Backtracking VM with open recursion").
func Evaluate(pat *Pattern, e *envelope.Envelope) []Result {
	switch pat.Kind {
	case KindAnd, KindOr, KindNot, KindCapture, KindSearch, KindTraverse, KindGroup:
		prog, err := Compile(pat)
		if err != nil {
			return nil
		}
		return prog.Run(e)
	default:
		return matchAtomic(pat, e)
	}
}

func selfResult(e *envelope.Envelope) []Result {
	return []Result{{Path: Path{e}}}
}

func matchAtomic(pat *Pattern, e *envelope.Envelope) []Result {
	switch pat.Kind {
	case KindAny:
		return selfResult(e)
	case KindBool:
		return matchBool(pat, e)
	case KindNumber:
		return matchNumber(pat, e)
	case KindText:
		return matchText(pat, e)
	case KindByteString:
		return matchByteString(pat, e)
	case KindDigest:
		return matchDigest(pat, e)
	case KindObscured:
		return matchObscured(pat, e)
	case KindWrapped:
		return matchWrapped(pat, e)
	case KindSubject:
		return matchNavigate(pat.Inner, e, e.Subject())
	case KindPredicate:
		pred, _, ok := e.AsAssertion()
		if !ok {
			return nil
		}
		return matchNavigate(pat.Inner, e, pred)
	case KindObject:
		_, obj, ok := e.AsAssertion()
		if !ok {
			return nil
		}
		return matchNavigate(pat.Inner, e, obj)
	case KindAssertion:
		return matchAssertion(pat, e)
	case KindKnownValue:
		return matchKnownValue(pat, e)
	case KindDate:
		return matchDate(pat, e)
	case KindArray:
		return matchArray(pat, e)
	case KindMap:
		return matchMap(pat, e)
	case KindTagged:
		return matchTagged(pat, e)
	case KindCBOR:
		return matchCBOR(pat, e)
	case KindNull:
		return matchNull(pat, e)
	case KindLeafStructure:
		return matchLeafStructure(pat, e)
	case KindNode:
		return matchNodeStructure(pat, e)
	case KindAssertions:
		return matchAssertions(pat, e)
	default:
		return nil
	}
}

// matchNavigate matches inner against target (a child of e reached by a
// structural axis), and prepends e to every resulting path. A nil inner
// pattern means "any", matching unconditionally.
func matchNavigate(inner *Pattern, e, target *envelope.Envelope) []Result {
	var sub []Result
	if inner == nil {
		sub = selfResult(target)
	} else {
		sub = Evaluate(inner, target)
	}
	out := make([]Result, len(sub))
	for i, r := range sub {
		out[i] = Result{Path: append(Path{e}, r.Path...), Captures: r.Captures}
	}
	return out
}

func matchBool(pat *Pattern, e *envelope.Envelope) []Result {
	leaf, ok := e.AsLeaf()
	if !ok {
		return nil
	}
	v, ok := leaf.AsBool()
	if !ok {
		return nil
	}
	if pat.BoolValue != nil && *pat.BoolValue != v {
		return nil
	}
	return selfResult(e)
}

func leafFloat(leaf dcbor.Value) (float64, bool) {
	if f, ok := leaf.AsFloat(); ok {
		return f, true
	}
	if bi, ok := leaf.AsBigInt(); ok {
		f, _ := new(big.Float).SetInt(bi).Float64()
		return f, true
	}
	return 0, false
}

func matchNumber(pat *Pattern, e *envelope.Envelope) []Result {
	leaf, ok := e.AsLeaf()
	if !ok {
		return nil
	}
	f, ok := leafFloat(leaf)
	if !ok {
		return nil
	}
	var match bool
	switch pat.NumberKind {
	case NumberExact:
		match = f == pat.NumberExact
	case NumberRange:
		match = f >= pat.NumberMin && f <= pat.NumberMax
	case NumberGT:
		match = f > pat.NumberThreshold
	case NumberGTE:
		match = f >= pat.NumberThreshold
	case NumberLT:
		match = f < pat.NumberThreshold
	case NumberLTE:
		match = f <= pat.NumberThreshold
	case NumberNaN:
		match = math.IsNaN(f)
	case NumberPosInf:
		match = math.IsInf(f, 1)
	case NumberNegInf:
		match = math.IsInf(f, -1)
	}
	if !match {
		return nil
	}
	return selfResult(e)
}

func matchText(pat *Pattern, e *envelope.Envelope) []Result {
	leaf, ok := e.AsLeaf()
	if !ok {
		return nil
	}
	s, ok := leaf.AsText()
	if !ok {
		return nil
	}
	if pat.TextExact != nil && *pat.TextExact != s {
		return nil
	}
	if pat.TextRegex != nil && !pat.TextRegex.MatchString(s) {
		return nil
	}
	return selfResult(e)
}

func matchByteString(pat *Pattern, e *envelope.Envelope) []Result {
	leaf, ok := e.AsLeaf()
	if !ok {
		return nil
	}
	b, ok := leaf.AsBytes()
	if !ok {
		return nil
	}
	if pat.ByteStringExact != nil && !bytes.Equal(pat.ByteStringExact, b) {
		return nil
	}
	if pat.ByteStringRegex != nil && !pat.ByteStringRegex.Match(b) {
		return nil
	}
	return selfResult(e)
}

func matchDigest(pat *Pattern, e *envelope.Envelope) []Result {
	d := e.Digest()
	if pat.DigestRegex != nil {
		if !pat.DigestRegex.Match(d[:]) {
			return nil
		}
		return selfResult(e)
	}
	if pat.DigestExact != nil {
		if pat.DigestPrefix {
			if !bytes.HasPrefix(d[:], pat.DigestExact) {
				return nil
			}
		} else if !bytes.Equal(d[:], pat.DigestExact) {
			return nil
		}
	}
	return selfResult(e)
}

func matchObscured(pat *Pattern, e *envelope.Envelope) []Result {
	var ok bool
	switch e.Kind() {
	case envelope.KindElided:
		ok = pat.ObscuredKind == ObscuredAny || pat.ObscuredKind == ObscuredElided
	case envelope.KindEncrypted:
		ok = pat.ObscuredKind == ObscuredAny || pat.ObscuredKind == ObscuredEncrypted
	case envelope.KindCompressed:
		ok = pat.ObscuredKind == ObscuredAny || pat.ObscuredKind == ObscuredCompressed
	}
	if !ok {
		return nil
	}
	return selfResult(e)
}

func matchWrapped(pat *Pattern, e *envelope.Envelope) []Result {
	inner, ok := e.AsWrapped()
	if !ok {
		return nil
	}
	if pat.WrappedKind == WrappedAny && pat.Inner == nil {
		return selfResult(e)
	}
	return matchNavigate(pat.Inner, e, inner)
}

func matchAssertion(pat *Pattern, e *envelope.Envelope) []Result {
	pred, obj, ok := e.AsAssertion()
	if !ok {
		return nil
	}
	predResults := []Result{{Path: Path{pred}}}
	if pat.PredicatePattern != nil {
		predResults = Evaluate(pat.PredicatePattern, pred)
	}
	if len(predResults) == 0 {
		return nil
	}
	objResults := []Result{{Path: Path{obj}}}
	if pat.ObjectPattern != nil {
		objResults = Evaluate(pat.ObjectPattern, obj)
	}
	if len(objResults) == 0 {
		return nil
	}
	captures := map[string][]Path{}
	for _, pr := range predResults {
		captures = mergeCaptures(captures, pr.Captures)
	}
	for _, or := range objResults {
		captures = mergeCaptures(captures, or.Captures)
	}
	return []Result{{Path: Path{e}, Captures: captures}}
}

func matchKnownValue(pat *Pattern, e *envelope.Envelope) []Result {
	v, ok := e.AsKnownValue()
	if !ok {
		return nil
	}
	switch pat.KnownValueKind {
	case KnownValueAny:
	case KnownValueExact:
		if v.Uint64() != pat.KnownValueExact.Uint64() {
			return nil
		}
	case KnownValueNamed:
		name, ok := knownvalue.DefaultRegistry.Name(v)
		if !ok || name != pat.KnownValueName {
			return nil
		}
	case KnownValueRegex:
		name, ok := knownvalue.DefaultRegistry.Name(v)
		if !ok || pat.KnownValueRegex == nil || !pat.KnownValueRegex.MatchString(name) {
			return nil
		}
	}
	return selfResult(e)
}

// dateFromLeaf extracts the time a date leaf (a dCBOR value tagged
// epochDateTag over a numeric second count) represents.
func dateFromLeaf(leaf dcbor.Value) (time.Time, bool) {
	tag, content, ok := leaf.AsTag()
	if !ok || tag != epochDateTag {
		return time.Time{}, false
	}
	secs, ok := leafFloat(content)
	if !ok {
		return time.Time{}, false
	}
	whole := math.Trunc(secs)
	frac := secs - whole
	return time.Unix(int64(whole), int64(frac*1e9)).UTC(), true
}

func matchDate(pat *Pattern, e *envelope.Envelope) []Result {
	leaf, ok := e.AsLeaf()
	if !ok {
		return nil
	}
	t, ok := dateFromLeaf(leaf)
	if !ok {
		return nil
	}
	switch pat.DateMatchKind {
	case DateAny:
	case DateExactKind:
		if !t.Equal(pat.DateExact) {
			return nil
		}
	case DateRangeKind:
		if t.Before(pat.DateMin) || t.After(pat.DateMax) {
			return nil
		}
	case DateRegexKind:
		if pat.DateRegex == nil || !pat.DateRegex.MatchString(t.Format(time.RFC3339)) {
			return nil
		}
	}
	return selfResult(e)
}

func matchArray(pat *Pattern, e *envelope.Envelope) []Result {
	leaf, ok := e.AsLeaf()
	if !ok {
		return nil
	}
	items, ok := leaf.AsArray()
	if !ok {
		return nil
	}
	switch pat.ArrayMatchKind {
	case ArrayAny:
		return selfResult(e)
	case ArrayLenRange:
		if len(items) < pat.ArrayLenMin {
			return nil
		}
		if pat.ArrayLenMax != nil && len(items) > *pat.ArrayLenMax {
			return nil
		}
		return selfResult(e)
	case ArrayElements:
		if len(items) != len(pat.ArrayElems) {
			return nil
		}
		captures := map[string][]Path{}
		for i, elemPat := range pat.ArrayElems {
			elemEnv := envelope.NewLeaf(items[i])
			res := Evaluate(elemPat, elemEnv)
			if len(res) == 0 {
				return nil
			}
			for _, r := range res {
				captures = mergeCaptures(captures, r.Captures)
			}
		}
		return []Result{{Path: Path{e}, Captures: captures}}
	case ArrayDcborExact:
		if pat.ArrayExact == nil || !dcbor.Equal(leaf, *pat.ArrayExact) {
			return nil
		}
		return selfResult(e)
	}
	return nil
}

func matchMap(pat *Pattern, e *envelope.Envelope) []Result {
	leaf, ok := e.AsLeaf()
	if !ok {
		return nil
	}
	entries, ok := leaf.AsMap()
	if !ok {
		return nil
	}
	if pat.MapMatchKind == MapSizeRange {
		if len(entries) < pat.MapSizeMin {
			return nil
		}
		if pat.MapSizeMax != nil && len(entries) > *pat.MapSizeMax {
			return nil
		}
	}
	return selfResult(e)
}

func matchTagged(pat *Pattern, e *envelope.Envelope) []Result {
	leaf, ok := e.AsLeaf()
	if !ok {
		return nil
	}
	tag, content, ok := leaf.AsTag()
	if !ok {
		return nil
	}
	if pat.TaggedAny {
		return selfResult(e)
	}
	if tag != pat.TaggedTag {
		return nil
	}
	if pat.Inner == nil {
		return selfResult(e)
	}
	contentEnv := envelope.NewLeaf(content)
	sub := Evaluate(pat.Inner, contentEnv)
	if len(sub) == 0 {
		return nil
	}
	captures := map[string][]Path{}
	for _, r := range sub {
		captures = mergeCaptures(captures, r.Captures)
	}
	return []Result{{Path: Path{e}, Captures: captures}}
}

func matchCBOR(pat *Pattern, e *envelope.Envelope) []Result {
	leaf, ok := e.AsLeaf()
	if !ok {
		return nil
	}
	if pat.CBORMatchKind == CBORExact {
		if pat.CBORExact == nil || !dcbor.Equal(leaf, *pat.CBORExact) {
			return nil
		}
	}
	return selfResult(e)
}

func matchNull(pat *Pattern, e *envelope.Envelope) []Result {
	leaf, ok := e.AsLeaf()
	if !ok || leaf.Kind() != dcbor.KindNull {
		return nil
	}
	return selfResult(e)
}

func matchLeafStructure(pat *Pattern, e *envelope.Envelope) []Result {
	if e.Kind() != envelope.KindLeaf {
		return nil
	}
	return selfResult(e)
}

func matchNodeStructure(pat *Pattern, e *envelope.Envelope) []Result {
	if e.Kind() != envelope.KindNode {
		return nil
	}
	return selfResult(e)
}

// matchAssertions quantifies over e's whole assertion collection (unlike
// KindAssertion, which matches a single Assertion envelope directly): it
// succeeds if at least one assertion satisfies both PredicatePattern and
// ObjectPattern (nil meaning "any"), emitting that assertion's path. This
// is a flat loop over a node's children, not a backtracking search, so it
// does not need the explicit-stack VM treatment the composite pattern
// families require.
func matchAssertions(pat *Pattern, e *envelope.Envelope) []Result {
	if e.Kind() != envelope.KindNode {
		return nil
	}
	var out []Result
	for _, a := range e.Assertions() {
		pred, obj, ok := a.AsAssertion()
		if !ok {
			continue
		}
		predResults := []Result{{Path: Path{pred}}}
		if pat.PredicatePattern != nil {
			predResults = Evaluate(pat.PredicatePattern, pred)
		}
		if len(predResults) == 0 {
			continue
		}
		objResults := []Result{{Path: Path{obj}}}
		if pat.ObjectPattern != nil {
			objResults = Evaluate(pat.ObjectPattern, obj)
		}
		if len(objResults) == 0 {
			continue
		}
		captures := map[string][]Path{}
		for _, pr := range predResults {
			captures = mergeCaptures(captures, pr.Captures)
		}
		for _, or := range objResults {
			captures = mergeCaptures(captures, or.Captures)
		}
		out = append(out, Result{Path: Path{e, a}, Captures: captures})
	}
	return out
}
