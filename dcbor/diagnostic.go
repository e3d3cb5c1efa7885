package dcbor

import (
	"encoding/hex"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// DiagnosticOptions controls Diagnostic's output.
type DiagnosticOptions struct {
	// Summarize truncates deep arrays and long strings for readability.
	Summarize bool
	// Tags resolves tag numbers to names; DefaultTags is used if nil.
	Tags *TagRegistry

	maxItems int
	maxChars int
}

func (o DiagnosticOptions) withDefaults() DiagnosticOptions {
	if o.Tags == nil {
		o.Tags = DefaultTags
	}
	if o.maxItems == 0 {
		o.maxItems = 10
	}
	if o.maxChars == 0 {
		o.maxChars = 64
	}
	return o
}

// Diagnostic renders v in CBOR diagnostic notation, e.g.
// `[1, 2, {"k": h'ab'}]`. The output is reversible: it is not itself CBOR,
// but every value it can render is uniquely determined by v's structure.
func Diagnostic(v Value, opts DiagnosticOptions) string {
	o := opts.withDefaults()
	var sb strings.Builder
	writeDiagnostic(&sb, v, o, 0)
	return sb.String()
}

func writeDiagnostic(sb *strings.Builder, v Value, o DiagnosticOptions, depth int) {
	switch v.kind {
	case KindUint, KindNegInt:
		bi, _ := v.AsBigInt()
		sb.WriteString(bi.String())
	case KindBytes:
		b := v.bstr
		truncated := false
		if o.Summarize && len(b) > o.maxChars/2 {
			b = b[:o.maxChars/2]
			truncated = true
		}
		sb.WriteString("h'")
		sb.WriteString(hex.EncodeToString(b))
		if truncated {
			sb.WriteString("...")
		}
		sb.WriteString("'")
	case KindText:
		s := v.text
		truncated := false
		if o.Summarize && len(s) > o.maxChars {
			s = s[:o.maxChars]
			truncated = true
		}
		sb.WriteString(strconv.Quote(s))
		if truncated {
			sb.Truncate(sb.Len() - 1)
			sb.WriteString("...\"")
		}
	case KindArray:
		sb.WriteString("[")
		items := v.arr
		n := len(items)
		limit := n
		if o.Summarize && depth > 0 && n > o.maxItems {
			limit = o.maxItems
		}
		for i := 0; i < limit; i++ {
			if i > 0 {
				sb.WriteString(", ")
			}
			writeDiagnostic(sb, items[i], o, depth+1)
		}
		if limit < n {
			fmt.Fprintf(sb, ", ...(%d more)", n-limit)
		}
		sb.WriteString("]")
	case KindMap:
		sb.WriteString("{")
		for i, e := range v.mp {
			if i > 0 {
				sb.WriteString(", ")
			}
			writeDiagnostic(sb, e.Key, o, depth+1)
			sb.WriteString(": ")
			writeDiagnostic(sb, e.Value, o, depth+1)
		}
		sb.WriteString("}")
	case KindTagged:
		name := fmt.Sprintf("%d", v.tagNum)
		if o.Tags != nil {
			if n, ok := o.Tags.Name(v.tagNum); ok {
				name = n
			}
			if s, ok := o.Tags.summarize(v.tagNum, *v.tagContent); ok {
				sb.WriteString(name)
				sb.WriteString("(")
				sb.WriteString(s)
				sb.WriteString(")")
				return
			}
		}
		sb.WriteString(name)
		sb.WriteString("(")
		writeDiagnostic(sb, *v.tagContent, o, depth+1)
		sb.WriteString(")")
	case KindBool:
		if v.b {
			sb.WriteString("true")
		} else {
			sb.WriteString("false")
		}
	case KindNull:
		sb.WriteString("null")
	case KindUndefined:
		sb.WriteString("undefined")
	case KindFloat:
		switch {
		case math.IsNaN(v.f):
			sb.WriteString("NaN")
		case math.IsInf(v.f, 1):
			sb.WriteString("Infinity")
		case math.IsInf(v.f, -1):
			sb.WriteString("-Infinity")
		default:
			sb.WriteString(strconv.FormatFloat(v.f, 'g', -1, 64))
		}
	}
}
