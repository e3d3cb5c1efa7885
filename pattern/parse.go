package pattern

import (
	"encoding/hex"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/gordian-systems/go-envelope/knownvalue"
)

// Parse compiles the textual pattern syntax (spec.md §6) into a Pattern
// AST, covering every leaf, structure, and meta pattern family in
// spec.md §3.6. The one deliberate omission is an exact dCBOR literal:
// only bare `cbor` (no parentheses), matching any leaf regardless of
// higher-level kind, is supported, and `cbor(...)` is a parse error. The
// map key/value form `{k1: v1, ...}` is not parsed either; map patterns
// match on entry count only. For the exact dCBOR literal, spec.md's grammar
// would require a full CBOR diagnostic-notation sub-parser to spell an
// arbitrary value inline, which is out of proportion to what this
// textual syntax is for (ad hoc queries, not data literals); a caller
// needing exact-dCBOR matching constructs it directly with
// NewCBORExact/NewArrayDcbor instead.
func Parse(s string) (*Pattern, error) {
	p := &parser{src: s}
	p.skipSpace()
	pat, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return nil, &ErrParse{Offset: p.pos, Description: "trailing input"}
	}
	return pat, nil
}

type parser struct {
	src string
	pos int
}

func (p *parser) errf(desc string) error {
	return &ErrParse{Offset: p.pos, Description: desc}
}

func (p *parser) skipSpace() {
	for p.pos < len(p.src) && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t' || p.src[p.pos] == '\n') {
		p.pos++
	}
}

func (p *parser) peek() byte {
	if p.pos >= len(p.src) {
		return 0
	}
	return p.src[p.pos]
}

func (p *parser) eat(s string) bool {
	p.skipSpace()
	if strings.HasPrefix(p.src[p.pos:], s) {
		p.pos += len(s)
		return true
	}
	return false
}

func (p *parser) expect(s string) error {
	if !p.eat(s) {
		return p.errf("expected " + strconv.Quote(s))
	}
	return nil
}

// parseOr handles the lowest-precedence `p1 | p2` alternation.
func (p *parser) parseOr() (*Pattern, error) {
	first, err := p.parseTraverse()
	if err != nil {
		return nil, err
	}
	subs := []*Pattern{first}
	for {
		p.skipSpace()
		save := p.pos
		if p.peek() == '|' && !strings.HasPrefix(p.src[p.pos:], "||") {
			p.pos++
			next, err := p.parseTraverse()
			if err != nil {
				return nil, err
			}
			subs = append(subs, next)
			continue
		}
		p.pos = save
		break
	}
	if len(subs) == 1 {
		return subs[0], nil
	}
	return NewOr(subs...), nil
}

// parseTraverse handles `p1 -> p2`.
func (p *parser) parseTraverse() (*Pattern, error) {
	first, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	subs := []*Pattern{first}
	for p.eat("->") {
		next, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		subs = append(subs, next)
	}
	if len(subs) == 1 {
		return subs[0], nil
	}
	return NewTraverse(subs...), nil
}

// parseAnd handles `p1 & p2`.
func (p *parser) parseAnd() (*Pattern, error) {
	first, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	subs := []*Pattern{first}
	for p.eat("&") {
		next, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		subs = append(subs, next)
	}
	if len(subs) == 1 {
		return subs[0], nil
	}
	return NewAnd(subs...), nil
}

// parseUnary handles `!p` and `@name(p)`.
func (p *parser) parseUnary() (*Pattern, error) {
	p.skipSpace()
	if p.eat("!") {
		inner, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return NewNot(inner), nil
	}
	if p.peek() == '@' {
		p.pos++
		name := p.parseIdent()
		if name == "" {
			return nil, p.errf("expected capture name after @")
		}
		if err := p.expect("("); err != nil {
			return nil, err
		}
		inner, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if err := p.expect(")"); err != nil {
			return nil, err
		}
		return NewCapture(name, inner), nil
	}
	return p.parsePostfix()
}

// parsePostfix handles the `(p){n,m}?`/`+` quantifier suffix.
func (p *parser) parsePostfix() (*Pattern, error) {
	prim, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.peek() != '{' {
		return prim, nil
	}
	save := p.pos
	p.pos++
	q, ok, err := p.tryParseQuantifierBody()
	if err != nil {
		return nil, err
	}
	if !ok {
		p.pos = save
		return prim, nil
	}
	return NewGroup(prim, q), nil
}

func (p *parser) tryParseQuantifierBody() (Quantifier, bool, error) {
	p.skipSpace()
	min, ok := p.parseUint()
	if !ok {
		return Quantifier{}, false, nil
	}
	q := Quantifier{Min: min}
	p.skipSpace()
	if p.eat(",") {
		p.skipSpace()
		if p.peek() == '}' {
			q.Max = nil
		} else {
			max, ok := p.parseUint()
			if !ok {
				return Quantifier{}, false, p.errf("expected quantifier max")
			}
			q.Max = &max
		}
	} else {
		max := min
		q.Max = &max
	}
	if err := p.expect("}"); err != nil {
		return Quantifier{}, false, err
	}
	if p.eat("?") {
		q.Reluctance = Lazy
	} else if p.eat("+") {
		q.Reluctance = Possessive
	} else {
		q.Reluctance = Greedy
	}
	return q, true, nil
}

func (p *parser) parseUint() (int, bool) {
	start := p.pos
	for p.pos < len(p.src) && p.src[p.pos] >= '0' && p.src[p.pos] <= '9' {
		p.pos++
	}
	if p.pos == start {
		return 0, false
	}
	n, _ := strconv.Atoi(p.src[start:p.pos])
	return n, true
}

func (p *parser) parseIdent() string {
	start := p.pos
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') {
			p.pos++
			continue
		}
		break
	}
	return p.src[start:p.pos]
}

func (p *parser) parsePrimary() (*Pattern, error) {
	p.skipSpace()
	if p.eat("(") {
		inner, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if err := p.expect(")"); err != nil {
			return nil, err
		}
		return inner, nil
	}
	if p.peek() == '*' {
		p.pos++
		return NewAny(), nil
	}
	if p.peek() == '"' {
		return p.parseQuotedTextPattern()
	}
	if p.peek() == '/' {
		re, err := p.parseRegexLiteral()
		if err != nil {
			return nil, err
		}
		return NewTextRegex(re), nil
	}
	if p.peek() == '\'' {
		return nil, p.errf("bare quote is not a valid pattern start")
	}
	if p.peek() == '[' {
		return p.parseArrayPattern()
	}
	if p.peek() == '{' {
		return p.parseMapPattern()
	}
	if c := p.peek(); c == '>' || c == '<' || strings.HasPrefix(p.src[p.pos:], "-Infinity") {
		return p.parseNumberPrimary()
	}
	if strings.HasPrefix(p.src[p.pos:], "h'") {
		return p.parseHexByteStringOrRegex()
	}

	save := p.pos
	ident := p.parseIdent()
	switch ident {
	case "bool":
		return p.parseBoolPattern()
	case "true":
		v := true
		return NewBool(&v), nil
	case "false":
		v := false
		return NewBool(&v), nil
	case "number":
		return p.parseNumberPattern()
	case "NaN":
		return NewNumberSpecial(NumberNaN), nil
	case "Infinity":
		return NewNumberSpecial(NumberPosInf), nil
	case "text":
		return p.parseTextPattern()
	case "bstr":
		return p.parseByteStringPattern()
	case "digest":
		return p.parseDigestPattern()
	case "obscured":
		return NewObscured(ObscuredAny), nil
	case "elided":
		return NewObscured(ObscuredElided), nil
	case "encrypted":
		return NewObscured(ObscuredEncrypted), nil
	case "compressed":
		return NewObscured(ObscuredCompressed), nil
	case "wrapped":
		return NewWrapped(WrappedAny, nil), nil
	case "unwrap":
		return p.parseWrappedUnwrap()
	case "subj":
		return p.parseStructureWithOptionalArg(KindSubject)
	case "pred":
		return p.parseStructureWithOptionalArg(KindPredicate)
	case "obj":
		return p.parseStructureWithOptionalArg(KindObject)
	case "assert":
		return p.parseAssert()
	case "assertpred":
		return p.parseAssertOneSided(true)
	case "assertobj":
		return p.parseAssertOneSided(false)
	case "search":
		if err := p.expect("("); err != nil {
			return nil, err
		}
		inner, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if err := p.expect(")"); err != nil {
			return nil, err
		}
		return NewSearch(inner), nil
	case "null":
		return NewNull(), nil
	case "leaf":
		return NewLeafStructure(), nil
	case "node":
		return NewNode(), nil
	case "known":
		return p.parseKnownValuePattern()
	case "date":
		return p.parseDatePattern()
	case "tagged":
		return p.parseTaggedPattern()
	case "cbor":
		return p.parseCBORPattern()
	case "assertions":
		return p.parseAssertionsPattern()
	case "assertionspred":
		return p.parseAssertionsOneSided(true)
	case "assertionsobj":
		return p.parseAssertionsOneSided(false)
	}

	p.pos = save
	if n, ok := p.tryParseNumberLiteral(); ok {
		return n, nil
	}
	return nil, p.errf("unrecognized pattern syntax")
}

func (p *parser) parseStructureWithOptionalArg(kind Kind) (*Pattern, error) {
	p.skipSpace()
	var inner *Pattern
	if p.peek() == '(' {
		p.pos++
		var err error
		inner, err = p.parseOr()
		if err != nil {
			return nil, err
		}
		if err := p.expect(")"); err != nil {
			return nil, err
		}
	}
	switch kind {
	case KindSubject:
		return NewSubject(inner), nil
	case KindPredicate:
		return NewPredicate(inner), nil
	default:
		return NewObject(inner), nil
	}
}

func (p *parser) parseWrappedUnwrap() (*Pattern, error) {
	p.skipSpace()
	if p.peek() != '(' {
		return NewWrapped(WrappedUnwrap, nil), nil
	}
	p.pos++
	inner, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if err := p.expect(")"); err != nil {
		return nil, err
	}
	return NewWrapped(WrappedUnwrap, inner), nil
}

func (p *parser) parseAssert() (*Pattern, error) {
	p.skipSpace()
	if p.peek() != '(' {
		return NewAssertion(nil, nil), nil
	}
	p.pos++
	pp, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if err := p.expect(","); err != nil {
		return nil, err
	}
	op, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if err := p.expect(")"); err != nil {
		return nil, err
	}
	return NewAssertion(pp, op), nil
}

func (p *parser) parseAssertOneSided(isPredicate bool) (*Pattern, error) {
	if err := p.expect("("); err != nil {
		return nil, err
	}
	inner, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if err := p.expect(")"); err != nil {
		return nil, err
	}
	if isPredicate {
		return NewAssertion(inner, nil), nil
	}
	return NewAssertion(nil, inner), nil
}

func (p *parser) parseBoolPattern() (*Pattern, error) {
	p.skipSpace()
	if p.peek() != '(' {
		return NewBool(nil), nil
	}
	p.pos++
	ident := p.parseIdent()
	if err := p.expect(")"); err != nil {
		return nil, err
	}
	switch ident {
	case "true":
		v := true
		return NewBool(&v), nil
	case "false":
		v := false
		return NewBool(&v), nil
	default:
		return nil, p.errf("expected true or false inside bool()")
	}
}

func (p *parser) parseTextPattern() (*Pattern, error) {
	p.skipSpace()
	if p.peek() != '|' && p.peek() != '(' {
		return &Pattern{Kind: KindText}, nil // bare `text` matches any text
	}
	if p.peek() == '(' {
		p.pos++
		pat, err := p.parseTextPrimary()
		if err != nil {
			return nil, err
		}
		if err := p.expect(")"); err != nil {
			return nil, err
		}
		return pat, nil
	}
	p.pos++ // '|'
	return p.parseTextPrimary()
}

func (p *parser) parseTextPrimary() (*Pattern, error) {
	p.skipSpace()
	if p.peek() == '"' {
		return p.parseQuotedTextPattern()
	}
	if p.peek() == '/' {
		re, err := p.parseRegexLiteral()
		if err != nil {
			return nil, err
		}
		return NewTextRegex(re), nil
	}
	return nil, p.errf("expected quoted text or /regex/")
}

func (p *parser) parseQuotedTextPattern() (*Pattern, error) {
	s, err := p.parseQuotedString()
	if err != nil {
		return nil, err
	}
	return NewTextExact(s), nil
}

func (p *parser) parseQuotedString() (string, error) {
	if p.peek() != '"' {
		return "", p.errf("expected '\"'")
	}
	p.pos++
	start := p.pos
	for p.pos < len(p.src) && p.src[p.pos] != '"' {
		if p.src[p.pos] == '\\' {
			p.pos++
		}
		p.pos++
	}
	if p.pos >= len(p.src) {
		return "", p.errf("unterminated string literal")
	}
	raw := p.src[start:p.pos]
	p.pos++
	unquoted, err := strconv.Unquote(`"` + raw + `"`)
	if err != nil {
		return raw, nil
	}
	return unquoted, nil
}

func (p *parser) parseRegexLiteral() (*regexp.Regexp, error) {
	if p.peek() != '/' {
		return nil, p.errf("expected '/'")
	}
	p.pos++
	start := p.pos
	for p.pos < len(p.src) && p.src[p.pos] != '/' {
		if p.src[p.pos] == '\\' {
			p.pos++
		}
		p.pos++
	}
	if p.pos >= len(p.src) {
		return nil, p.errf("unterminated regex literal")
	}
	pattern := p.src[start:p.pos]
	p.pos++
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, p.errf("invalid regex: " + err.Error())
	}
	return re, nil
}

func (p *parser) parseByteStringPattern() (*Pattern, error) {
	p.skipSpace()
	if p.peek() != '|' && p.peek() != '(' {
		return &Pattern{Kind: KindByteString}, nil
	}
	wrapped := p.peek() == '('
	if wrapped {
		p.pos++
	} else {
		p.pos++ // '|'
	}
	p.skipSpace()
	var pat *Pattern
	var err error
	switch {
	case p.peek() == 'h' && strings.HasPrefix(p.src[p.pos:], "h'"):
		pat, err = p.parseHexByteStringOrRegex()
	default:
		return nil, p.errf("expected h'...' byte string literal")
	}
	if err != nil {
		return nil, err
	}
	if wrapped {
		if err := p.expect(")"); err != nil {
			return nil, err
		}
	}
	return pat, nil
}

func (p *parser) parseHexByteStringOrRegex() (*Pattern, error) {
	p.pos += 2 // h'
	if p.peek() == '/' {
		re, err := p.parseRegexLiteral()
		if err != nil {
			return nil, err
		}
		if err := p.expect("'"); err != nil {
			return nil, err
		}
		return NewByteStringRegex(re), nil
	}
	start := p.pos
	for p.pos < len(p.src) && p.src[p.pos] != '\'' {
		p.pos++
	}
	if p.pos >= len(p.src) {
		return nil, p.errf("unterminated h'...' literal")
	}
	hexStr := p.src[start:p.pos]
	p.pos++
	b, err := hex.DecodeString(hexStr)
	if err != nil {
		return nil, p.errf("invalid hex in h'...': " + err.Error())
	}
	return NewByteStringExact(b), nil
}

func (p *parser) parseDigestPattern() (*Pattern, error) {
	p.skipSpace()
	if p.peek() != '(' {
		return &Pattern{Kind: KindDigest}, nil
	}
	p.pos++
	p.skipSpace()
	var pat *Pattern
	var err error
	if p.peek() == '/' {
		re, rerr := p.parseRegexLiteral()
		if rerr != nil {
			return nil, rerr
		}
		pat = NewDigestRegex(re)
	} else {
		start := p.pos
		for p.pos < len(p.src) && isHexDigit(p.src[p.pos]) {
			p.pos++
		}
		hexStr := p.src[start:p.pos]
		b, herr := hex.DecodeString(hexStr)
		if herr != nil {
			return nil, p.errf("invalid hex in digest(...): " + herr.Error())
		}
		if len(b) == 32 {
			pat = NewDigestExact(b)
		} else {
			pat = NewDigestPrefix(b)
		}
	}
	if err = p.expect(")"); err != nil {
		return nil, err
	}
	return pat, nil
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func (p *parser) parseNumberPattern() (*Pattern, error) {
	p.skipSpace()
	if p.peek() != '|' && p.peek() != '(' {
		return &Pattern{Kind: KindNumber}, nil
	}
	wrapped := p.peek() == '('
	p.pos++
	p.skipSpace()
	pat, err := p.parseNumberPrimary()
	if err != nil {
		return nil, err
	}
	if wrapped {
		if err := p.expect(")"); err != nil {
			return nil, err
		}
	}
	return pat, nil
}

func (p *parser) parseNumberPrimary() (*Pattern, error) {
	p.skipSpace()
	switch {
	case p.eat("NaN"):
		return NewNumberSpecial(NumberNaN), nil
	case p.eat("-Infinity"):
		return NewNumberSpecial(NumberNegInf), nil
	case p.eat("Infinity"):
		return NewNumberSpecial(NumberPosInf), nil
	case p.eat(">="):
		f, ok := p.parseFloat()
		if !ok {
			return nil, p.errf("expected number after >=")
		}
		return NewNumberCompare(NumberGTE, f), nil
	case p.eat("<="):
		f, ok := p.parseFloat()
		if !ok {
			return nil, p.errf("expected number after <=")
		}
		return NewNumberCompare(NumberLTE, f), nil
	case p.eat(">"):
		f, ok := p.parseFloat()
		if !ok {
			return nil, p.errf("expected number after >")
		}
		return NewNumberCompare(NumberGT, f), nil
	case p.eat("<"):
		f, ok := p.parseFloat()
		if !ok {
			return nil, p.errf("expected number after <")
		}
		return NewNumberCompare(NumberLT, f), nil
	}
	if n, ok := p.tryParseNumberLiteral(); ok {
		return n, nil
	}
	return nil, p.errf("expected a number pattern")
}

// tryParseNumberLiteral parses `42` or `1..10` as a bare literal, used both
// from parseNumberPrimary and as a fallback in parsePrimary for bare
// numeric literals appearing without the `number` keyword.
func (p *parser) tryParseNumberLiteral() (*Pattern, bool) {
	save := p.pos
	f, ok := p.parseFloat()
	if !ok {
		p.pos = save
		return nil, false
	}
	if p.eat("..") {
		f2, ok := p.parseFloat()
		if !ok {
			p.pos = save
			return nil, false
		}
		return NewNumberRange(f, f2), true
	}
	return NewNumberExact(f), true
}

func (p *parser) parseFloat() (float64, bool) {
	p.skipSpace()
	start := p.pos
	if p.peek() == '-' {
		p.pos++
	}
	digitsStart := p.pos
	for p.pos < len(p.src) && p.src[p.pos] >= '0' && p.src[p.pos] <= '9' {
		p.pos++
	}
	if p.pos < len(p.src) && p.src[p.pos] == '.' && p.pos+1 < len(p.src) && p.src[p.pos+1] != '.' {
		p.pos++
		for p.pos < len(p.src) && p.src[p.pos] >= '0' && p.src[p.pos] <= '9' {
			p.pos++
		}
	}
	if p.pos == digitsStart {
		p.pos = start
		return 0, false
	}
	f, err := strconv.ParseFloat(p.src[start:p.pos], 64)
	if err != nil {
		p.pos = start
		return 0, false
	}
	return f, true
}

// parseKnownValuePattern handles `known`, `known(#n)`, `known(name)`, and
// `known(/regex/)` (spec.md §3.6's KnownValue leaf family).
func (p *parser) parseKnownValuePattern() (*Pattern, error) {
	p.skipSpace()
	if p.peek() != '(' {
		return NewKnownValueAny(), nil
	}
	p.pos++
	p.skipSpace()
	var pat *Pattern
	switch {
	case p.peek() == '#':
		p.pos++
		n, ok := p.parseUint()
		if !ok {
			return nil, p.errf("expected a number after # in known(#...)")
		}
		pat = NewKnownValueExact(knownvalue.New(uint64(n)))
	case p.peek() == '/':
		re, err := p.parseRegexLiteral()
		if err != nil {
			return nil, err
		}
		pat = NewKnownValueRegex(re)
	default:
		name := p.parseIdent()
		if name == "" {
			return nil, p.errf("expected #n, name, or /regex/ inside known(...)")
		}
		pat = NewKnownValueNamed(name)
	}
	if err := p.expect(")"); err != nil {
		return nil, err
	}
	return pat, nil
}

// parseDatePattern handles `date`, `date("RFC3339")`,
// `date("RFC3339".."RFC3339")`, and `date(/regex/)` (matched against the
// date's RFC 3339 string form).
func (p *parser) parseDatePattern() (*Pattern, error) {
	p.skipSpace()
	if p.peek() != '(' {
		return NewDateAny(), nil
	}
	p.pos++
	p.skipSpace()
	if p.peek() == '/' {
		re, err := p.parseRegexLiteral()
		if err != nil {
			return nil, err
		}
		if err := p.expect(")"); err != nil {
			return nil, err
		}
		return NewDateRegex(re), nil
	}
	first, err := p.parseQuotedString()
	if err != nil {
		return nil, err
	}
	t1, err := time.Parse(time.RFC3339, first)
	if err != nil {
		return nil, p.errf("invalid RFC 3339 date: " + err.Error())
	}
	p.skipSpace()
	if p.eat("..") {
		second, err := p.parseQuotedString()
		if err != nil {
			return nil, err
		}
		t2, err := time.Parse(time.RFC3339, second)
		if err != nil {
			return nil, p.errf("invalid RFC 3339 date: " + err.Error())
		}
		if err := p.expect(")"); err != nil {
			return nil, err
		}
		return NewDateRange(t1, t2), nil
	}
	if err := p.expect(")"); err != nil {
		return nil, err
	}
	return NewDateExact(t1), nil
}

// parseTaggedPattern handles `tagged`, `tagged(n)`, and `tagged(n, p)`
// (spec.md §3.6's Tagged leaf family).
func (p *parser) parseTaggedPattern() (*Pattern, error) {
	p.skipSpace()
	if p.peek() != '(' {
		return NewTaggedAny(), nil
	}
	p.pos++
	p.skipSpace()
	if p.peek() == '*' {
		p.pos++
		if err := p.expect(")"); err != nil {
			return nil, err
		}
		return NewTaggedAny(), nil
	}
	n, ok := p.parseUint()
	if !ok {
		return nil, p.errf("expected a tag number or * inside tagged(...)")
	}
	var inner *Pattern
	p.skipSpace()
	if p.eat(",") {
		var err error
		inner, err = p.parseOr()
		if err != nil {
			return nil, err
		}
	}
	if err := p.expect(")"); err != nil {
		return nil, err
	}
	return NewTagged(uint64(n), inner), nil
}

// parseCBORPattern handles bare `cbor` (any leaf, regardless of its
// higher-level kind). See Parse's doc comment for why an exact dCBOR
// literal has no textual form.
func (p *parser) parseCBORPattern() (*Pattern, error) {
	p.skipSpace()
	if p.peek() == '(' {
		return nil, p.errf("cbor(...) exact literals are not supported in textual patterns; use NewCBORExact")
	}
	return NewCBORAny(), nil
}

// parseArrayPattern handles `[*]`, `[{n}]`/`[{n,m}]`/`[{n,}]`, and
// `[p1, p2, ...]` (spec.md §3.6's Array leaf family, §6's bracket
// grammar).
func (p *parser) parseArrayPattern() (*Pattern, error) {
	p.pos++ // '['
	p.skipSpace()
	if p.peek() == '*' {
		p.pos++
		if err := p.expect("]"); err != nil {
			return nil, err
		}
		return NewArrayAny(), nil
	}
	if p.peek() == '{' {
		p.pos++
		min, ok := p.parseUint()
		if !ok {
			return nil, p.errf("expected a number inside [{...}]")
		}
		var max *int
		if p.eat(",") {
			p.skipSpace()
			if p.peek() != '}' {
				m, ok := p.parseUint()
				if !ok {
					return nil, p.errf("expected a number or '}' after ',' inside [{...}]")
				}
				max = &m
			}
		} else {
			m := min
			max = &m
		}
		if err := p.expect("}"); err != nil {
			return nil, err
		}
		if err := p.expect("]"); err != nil {
			return nil, err
		}
		return NewArrayLenRange(min, max), nil
	}
	var elems []*Pattern
	p.skipSpace()
	if p.peek() != ']' {
		for {
			elem, err := p.parseOr()
			if err != nil {
				return nil, err
			}
			elems = append(elems, elem)
			p.skipSpace()
			if p.eat(",") {
				continue
			}
			break
		}
	}
	if err := p.expect("]"); err != nil {
		return nil, err
	}
	return NewArrayElements(elems), nil
}

// parseMapPattern handles `{*}` and `{{n}}`/`{{n,m}}`/`{{n,}}` (spec.md
// §3.6's Map leaf family, §6's brace grammar).
func (p *parser) parseMapPattern() (*Pattern, error) {
	p.pos++ // '{'
	p.skipSpace()
	if p.peek() == '*' {
		p.pos++
		if err := p.expect("}"); err != nil {
			return nil, err
		}
		return NewMapAny(), nil
	}
	if err := p.expect("{"); err != nil {
		return nil, p.errf("expected '*' or '{' inside map literal")
	}
	min, ok := p.parseUint()
	if !ok {
		return nil, p.errf("expected a number inside {{...}}")
	}
	var max *int
	if p.eat(",") {
		p.skipSpace()
		if p.peek() != '}' {
			m, ok := p.parseUint()
			if !ok {
				return nil, p.errf("expected a number or '}' after ',' inside {{...}}")
			}
			max = &m
		}
	} else {
		m := min
		max = &m
	}
	if err := p.expect("}"); err != nil {
		return nil, err
	}
	if err := p.expect("}"); err != nil {
		return nil, err
	}
	return NewMapSizeRange(min, max), nil
}

// parseAssertionsPattern handles `assertions`, `assertions(p)`, and
// `assertions(p, o)` (spec.md §3.6's collection-quantifying Assertions
// structure pattern, distinct from the singular `assert(p, o)`).
func (p *parser) parseAssertionsPattern() (*Pattern, error) {
	p.skipSpace()
	if p.peek() != '(' {
		return NewAssertions(AssertionsAny, nil, nil), nil
	}
	p.pos++
	pred, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.eat(",") {
		obj, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if err := p.expect(")"); err != nil {
			return nil, err
		}
		return NewAssertions(AssertionsWithBoth, pred, obj), nil
	}
	if err := p.expect(")"); err != nil {
		return nil, err
	}
	return NewAssertions(AssertionsWithPred, pred, nil), nil
}

func (p *parser) parseAssertionsOneSided(isPredicate bool) (*Pattern, error) {
	if err := p.expect("("); err != nil {
		return nil, err
	}
	inner, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if err := p.expect(")"); err != nil {
		return nil, err
	}
	if isPredicate {
		return NewAssertions(AssertionsWithPred, inner, nil), nil
	}
	return NewAssertions(AssertionsWithObj, nil, inner), nil
}

var _ = math.NaN
