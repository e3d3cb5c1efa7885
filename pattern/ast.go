// Package pattern implements the envelope pattern DSL: an AST of leaf,
// structure, and meta pattern families, a compiler that lowers the
// backtracking-control-flow families to bytecode, and a VM that executes
// that bytecode against an envelope tree.
package pattern

import (
	"regexp"
	"time"

	"github.com/gordian-systems/go-envelope/dcbor"
	"github.com/gordian-systems/go-envelope/knownvalue"
)

// Kind discriminates every pattern variant. Every pattern, leaf or
// composite, is represented by one Pattern struct distinguished by Kind —
// a tagged union, not an interface hierarchy, so match and compile are
// each a single switch rather than a virtual dispatch table
// wired together at init time.
type Kind int

const (
	KindAny Kind = iota
	KindBool
	KindNumber
	KindText
	KindByteString
	KindDigest
	KindObscured
	KindWrapped
	KindSubject
	KindPredicate
	KindObject
	KindAssertion
	KindAnd
	KindOr
	KindNot
	KindCapture
	KindSearch
	KindTraverse
	KindGroup

	// Leaf families added per spec.md §3.6's full 11-family leaf list.
	KindKnownValue
	KindDate
	KindArray
	KindMap
	KindTagged
	KindCBOR
	KindNull

	// Structure families added per spec.md §3.6.
	KindLeafStructure
	KindNode
	KindAssertions
)

// NumberKind discriminates the numeric leaf pattern's comparison forms.
type NumberKind int

const (
	NumberExact NumberKind = iota
	NumberRange
	NumberGT
	NumberGTE
	NumberLT
	NumberLTE
	NumberNaN
	NumberPosInf
	NumberNegInf
)

// ObscuredKind discriminates which obscured case (or any) an Obscured
// pattern matches.
type ObscuredKind int

const (
	ObscuredAny ObscuredKind = iota
	ObscuredElided
	ObscuredEncrypted
	ObscuredCompressed
)

// WrappedKind discriminates bare `wrapped` from `unwrap`/`unwrap(p)`.
type WrappedKind int

const (
	WrappedAny WrappedKind = iota
	WrappedUnwrap
)

// KnownValueMatchKind discriminates the KnownValue leaf pattern's forms.
type KnownValueMatchKind int

const (
	KnownValueAny KnownValueMatchKind = iota
	KnownValueExact
	KnownValueNamed
	KnownValueRegex
)

// DateMatchKind discriminates the Date leaf pattern's forms.
type DateMatchKind int

const (
	DateAny DateMatchKind = iota
	DateExactKind
	DateRangeKind
	DateRegexKind
)

// ArrayMatchKind discriminates the Array leaf pattern's forms.
type ArrayMatchKind int

const (
	ArrayAny ArrayMatchKind = iota
	ArrayLenRange
	ArrayElements
	ArrayDcborExact
)

// MapMatchKind discriminates the Map leaf pattern's forms.
type MapMatchKind int

const (
	MapAny MapMatchKind = iota
	MapSizeRange
)

// CBORMatchKind discriminates the CBOR leaf pattern's forms.
type CBORMatchKind int

const (
	CBORAny CBORMatchKind = iota
	CBORExact
)

// AssertionsMatchKind discriminates the Assertions collection-quantifying
// structure pattern's forms (spec.md §3.6:
// "Assertions(any|withPred|withObj|withBoth)").
type AssertionsMatchKind int

const (
	AssertionsAny AssertionsMatchKind = iota
	AssertionsWithPred
	AssertionsWithObj
	AssertionsWithBoth
)

// Reluctance controls the order a Repeat/Group quantifier tries candidate
// counts (spec.md §4.4.2).
type Reluctance int

const (
	Greedy Reluctance = iota
	Lazy
	Possessive
)

// Quantifier is a repetition count range plus the order in which counts in
// that range are tried.
type Quantifier struct {
	Min        int
	Max        *int // nil means unbounded
	Reluctance Reluctance
}

// Pattern is one node of the pattern AST.
type Pattern struct {
	Kind Kind

	// Bool
	BoolValue *bool // nil matches either

	// Number
	NumberKind       NumberKind
	NumberExact      float64
	NumberMin        float64
	NumberMax        float64
	NumberThreshold  float64

	// Text / ByteString
	TextExact       *string
	TextRegex       *regexp.Regexp
	ByteStringExact []byte
	ByteStringRegex *regexp.Regexp

	// Digest
	DigestExact  []byte // full 32-byte digest, or prefix bytes
	DigestRegex  *regexp.Regexp
	DigestPrefix bool

	// Obscured
	ObscuredKind ObscuredKind

	// Wrapped
	WrappedKind WrappedKind
	Inner       *Pattern // Wrapped(unwrap(p)), Subject(p), Predicate(p), Object(p), Not(p), Capture(p), Search(p)

	// Assertion
	PredicatePattern *Pattern
	ObjectPattern    *Pattern

	// And / Or / Traverse
	Subs []*Pattern

	// Capture
	CaptureName string

	// Group
	GroupQuantifier Quantifier

	// KnownValue
	KnownValueKind  KnownValueMatchKind
	KnownValueExact knownvalue.Value
	KnownValueName  string
	KnownValueRegex *regexp.Regexp

	// Date
	DateMatchKind DateMatchKind
	DateExact     time.Time
	DateMin       time.Time
	DateMax       time.Time
	DateRegex     *regexp.Regexp

	// Array
	ArrayMatchKind ArrayMatchKind
	ArrayLenMin    int
	ArrayLenMax    *int
	ArrayElems     []*Pattern
	ArrayExact     *dcbor.Value

	// Map
	MapMatchKind MapMatchKind
	MapSizeMin   int
	MapSizeMax   *int

	// Tagged
	TaggedAny bool
	TaggedTag uint64

	// CBOR
	CBORMatchKind CBORMatchKind
	CBORExact     *dcbor.Value

	// Assertions
	AssertionsMatchKind AssertionsMatchKind
}

func NewAny() *Pattern { return &Pattern{Kind: KindAny} }

func NewBool(v *bool) *Pattern { return &Pattern{Kind: KindBool, BoolValue: v} }

func NewNumberExact(v float64) *Pattern {
	return &Pattern{Kind: KindNumber, NumberKind: NumberExact, NumberExact: v}
}

func NewNumberRange(min, max float64) *Pattern {
	return &Pattern{Kind: KindNumber, NumberKind: NumberRange, NumberMin: min, NumberMax: max}
}

func NewNumberCompare(kind NumberKind, threshold float64) *Pattern {
	return &Pattern{Kind: KindNumber, NumberKind: kind, NumberThreshold: threshold}
}

func NewNumberSpecial(kind NumberKind) *Pattern {
	return &Pattern{Kind: KindNumber, NumberKind: kind}
}

func NewTextExact(s string) *Pattern {
	return &Pattern{Kind: KindText, TextExact: &s}
}

func NewTextRegex(re *regexp.Regexp) *Pattern {
	return &Pattern{Kind: KindText, TextRegex: re}
}

func NewByteStringExact(b []byte) *Pattern {
	return &Pattern{Kind: KindByteString, ByteStringExact: b}
}

func NewByteStringRegex(re *regexp.Regexp) *Pattern {
	return &Pattern{Kind: KindByteString, ByteStringRegex: re}
}

func NewDigestExact(d []byte) *Pattern {
	return &Pattern{Kind: KindDigest, DigestExact: d}
}

func NewDigestPrefix(prefix []byte) *Pattern {
	return &Pattern{Kind: KindDigest, DigestExact: prefix, DigestPrefix: true}
}

func NewDigestRegex(re *regexp.Regexp) *Pattern {
	return &Pattern{Kind: KindDigest, DigestRegex: re}
}

func NewObscured(kind ObscuredKind) *Pattern {
	return &Pattern{Kind: KindObscured, ObscuredKind: kind}
}

func NewWrapped(kind WrappedKind, inner *Pattern) *Pattern {
	return &Pattern{Kind: KindWrapped, WrappedKind: kind, Inner: inner}
}

func NewSubject(inner *Pattern) *Pattern { return &Pattern{Kind: KindSubject, Inner: inner} }

func NewPredicate(inner *Pattern) *Pattern { return &Pattern{Kind: KindPredicate, Inner: inner} }

func NewObject(inner *Pattern) *Pattern { return &Pattern{Kind: KindObject, Inner: inner} }

func NewAssertion(pred, obj *Pattern) *Pattern {
	return &Pattern{Kind: KindAssertion, PredicatePattern: pred, ObjectPattern: obj}
}

func NewAnd(subs ...*Pattern) *Pattern { return &Pattern{Kind: KindAnd, Subs: subs} }

func NewOr(subs ...*Pattern) *Pattern { return &Pattern{Kind: KindOr, Subs: subs} }

func NewNot(inner *Pattern) *Pattern { return &Pattern{Kind: KindNot, Inner: inner} }

func NewCapture(name string, inner *Pattern) *Pattern {
	return &Pattern{Kind: KindCapture, CaptureName: name, Inner: inner}
}

func NewSearch(inner *Pattern) *Pattern { return &Pattern{Kind: KindSearch, Inner: inner} }

func NewTraverse(subs ...*Pattern) *Pattern { return &Pattern{Kind: KindTraverse, Subs: subs} }

func NewGroup(inner *Pattern, q Quantifier) *Pattern {
	return &Pattern{Kind: KindGroup, Inner: inner, GroupQuantifier: q}
}

// NewKnownValueAny matches any KnownValue leaf.
func NewKnownValueAny() *Pattern { return &Pattern{Kind: KindKnownValue, KnownValueKind: KnownValueAny} }

// NewKnownValueExact matches a specific known value.
func NewKnownValueExact(v knownvalue.Value) *Pattern {
	return &Pattern{Kind: KindKnownValue, KnownValueKind: KnownValueExact, KnownValueExact: v}
}

// NewKnownValueNamed matches the known value registered under name in
// knownvalue.DefaultRegistry.
func NewKnownValueNamed(name string) *Pattern {
	return &Pattern{Kind: KindKnownValue, KnownValueKind: KnownValueNamed, KnownValueName: name}
}

// NewKnownValueRegex matches a known value whose registered name matches re.
func NewKnownValueRegex(re *regexp.Regexp) *Pattern {
	return &Pattern{Kind: KindKnownValue, KnownValueKind: KnownValueRegex, KnownValueRegex: re}
}

// NewDateAny matches any date leaf (a dCBOR value tagged with the standard
// epoch-date tag).
func NewDateAny() *Pattern { return &Pattern{Kind: KindDate, DateMatchKind: DateAny} }

func NewDateExact(t time.Time) *Pattern {
	return &Pattern{Kind: KindDate, DateMatchKind: DateExactKind, DateExact: t}
}

func NewDateRange(min, max time.Time) *Pattern {
	return &Pattern{Kind: KindDate, DateMatchKind: DateRangeKind, DateMin: min, DateMax: max}
}

// NewDateRegex matches a date leaf whose RFC 3339 string form matches re.
func NewDateRegex(re *regexp.Regexp) *Pattern {
	return &Pattern{Kind: KindDate, DateMatchKind: DateRegexKind, DateRegex: re}
}

func NewArrayAny() *Pattern { return &Pattern{Kind: KindArray, ArrayMatchKind: ArrayAny} }

// NewArrayLenRange matches an array leaf whose element count falls in
// [min, max]; max nil means unbounded.
func NewArrayLenRange(min int, max *int) *Pattern {
	return &Pattern{Kind: KindArray, ArrayMatchKind: ArrayLenRange, ArrayLenMin: min, ArrayLenMax: max}
}

// NewArrayElements matches an array leaf element-for-element against elems,
// requiring equal length.
func NewArrayElements(elems []*Pattern) *Pattern {
	return &Pattern{Kind: KindArray, ArrayMatchKind: ArrayElements, ArrayElems: elems}
}

// NewArrayDcbor matches an array leaf by exact canonical dCBOR equality.
func NewArrayDcbor(v dcbor.Value) *Pattern {
	return &Pattern{Kind: KindArray, ArrayMatchKind: ArrayDcborExact, ArrayExact: &v}
}

func NewMapAny() *Pattern { return &Pattern{Kind: KindMap, MapMatchKind: MapAny} }

// NewMapSizeRange matches a map leaf whose entry count falls in [min, max];
// max nil means unbounded.
func NewMapSizeRange(min int, max *int) *Pattern {
	return &Pattern{Kind: KindMap, MapMatchKind: MapSizeRange, MapSizeMin: min, MapSizeMax: max}
}

// NewTaggedAny matches any tagged leaf, regardless of tag number.
func NewTaggedAny() *Pattern { return &Pattern{Kind: KindTagged, TaggedAny: true} }

// NewTagged matches a tagged leaf with the given tag number, whose content
// matches inner (nil inner means "any content").
func NewTagged(tag uint64, inner *Pattern) *Pattern {
	return &Pattern{Kind: KindTagged, TaggedTag: tag, Inner: inner}
}

func NewCBORAny() *Pattern { return &Pattern{Kind: KindCBOR, CBORMatchKind: CBORAny} }

// NewCBORExact matches a leaf by exact canonical dCBOR equality, independent
// of the value's higher-level Kind (bool/array/tagged/...).
func NewCBORExact(v dcbor.Value) *Pattern {
	return &Pattern{Kind: KindCBOR, CBORMatchKind: CBORExact, CBORExact: &v}
}

// NewNull matches the dCBOR null leaf.
func NewNull() *Pattern { return &Pattern{Kind: KindNull} }

// NewLeafStructure matches any Leaf-case envelope, regardless of its dCBOR
// value (spec.md §3.6's structure-pattern family, distinct from the
// value-inspecting leaf families above).
func NewLeafStructure() *Pattern { return &Pattern{Kind: KindLeafStructure} }

// NewNode matches any Node-case envelope (spec.md §3.6: "Node(any)").
func NewNode() *Pattern { return &Pattern{Kind: KindNode} }

// NewAssertions matches a Node that has at least one assertion satisfying
// pred and obj (either may be nil, meaning "any"); unlike KindAssertion
// (which matches a single Assertion envelope directly), this quantifies
// over the whole assertion collection of its subject.
func NewAssertions(kind AssertionsMatchKind, pred, obj *Pattern) *Pattern {
	return &Pattern{Kind: KindAssertions, AssertionsMatchKind: kind, PredicatePattern: pred, ObjectPattern: obj}
}
