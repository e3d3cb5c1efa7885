package pattern

import "fmt"

// ErrParse reports a textual pattern that could not be parsed.
type ErrParse struct {
	Offset      int
	Description string
}

func (e *ErrParse) Error() string {
	return fmt.Sprintf("pattern: parse error at offset %d: %s", e.Offset, e.Description)
}

// ErrCompile reports a pattern AST that could not be compiled.
type ErrCompile struct {
	Description string
}

func (e *ErrCompile) Error() string {
	return fmt.Sprintf("pattern: compile error: %s", e.Description)
}

// ErrVMLimitExceeded reports that a Repeat's reachable-state staircase hit
// its configured ceiling before closing naturally (spec.md §5, §7's
// Pattern.VmLimitExceeded): the caller's quantifier, applied to this
// envelope, would keep finding new repetition counts past the limit meant
// to bound pathological input.
type ErrVMLimitExceeded struct {
	Limit int
}

func (e *ErrVMLimitExceeded) Error() string {
	return fmt.Sprintf("pattern: vm repeat-expansion limit exceeded (max %d)", e.Limit)
}
