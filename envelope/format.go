package envelope

import (
	"fmt"
	"strings"

	"github.com/gordian-systems/go-envelope/dcbor"
)

// Format renders e in the textual notation used throughout documentation
// and tests, e.g. `"Alice" [ "knows": "Bob" ]`.
func Format(e *Envelope) string {
	var sb strings.Builder
	writeFormat(&sb, e)
	return sb.String()
}

func writeFormat(sb *strings.Builder, e *Envelope) {
	switch e.kind {
	case KindLeaf:
		sb.WriteString(dcbor.Diagnostic(e.cbor, dcbor.DiagnosticOptions{}))
	case KindKnownValue:
		sb.WriteString(e.known.String())
	case KindWrapped:
		sb.WriteString("{")
		writeFormat(sb, e.inner)
		sb.WriteString("}")
	case KindAssertion:
		writeFormat(sb, e.predicate)
		sb.WriteString(": ")
		writeFormat(sb, e.object)
	case KindElided:
		sb.WriteString("ELIDED")
	case KindEncrypted:
		sb.WriteString("ENCRYPTED")
	case KindCompressed:
		sb.WriteString("COMPRESSED")
	case KindNode:
		writeFormat(sb, e.subject)
		if len(e.assertions) > 0 {
			sb.WriteString(" [ ")
			for i, a := range e.assertions {
				if i > 0 {
					sb.WriteString(", ")
				}
				writeFormat(sb, a)
			}
			sb.WriteString(" ]")
		}
	default:
		fmt.Fprintf(sb, "<unknown kind %d>", e.kind)
	}
}
