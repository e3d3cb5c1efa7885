package pattern

import (
	"github.com/gordian-systems/go-envelope/envelope"
	"github.com/gordian-systems/go-envelope/internal/xlog"
)

// Engine runs patterns with a configured, enforced Repeat-expansion
// ceiling and structured logging of compile/match diagnostics — the
// bounded counterpart to the package-level Evaluate/Match convenience
// functions, for callers who must honor spec.md §5's "configurable max
// instructions ceiling" and surface §7's Pattern.VmLimitExceeded rather
// than silently truncate.
//
// The ceiling applies to any pattern Compile accepts (And, Or, Not,
// Capture, Search, Traverse, Group — every family with a backtracking
// search space of its own); every other kind runs through the unbounded
// Evaluate, since it has none to bound.
//
// Scope note: the ceiling is enforced only on the top-level pattern
// passed to Run. A Group nested as a literal inside one of those
// families (e.g. Or's second alternative) is reached at runtime through
// the VM's own Evaluate(literal, env) call on that literal — package-level
// Evaluate, not this Engine — so it runs against defaultMaxRepeatExpansion,
// not this Engine's configured ceiling. Threading a caller-supplied
// ceiling down through nested literal evaluation would require either a
// ceiling parameter on Evaluate itself or a per-goroutine ambient value;
// neither is worth the complexity for what is, in practice, a rare
// shape (a repetition-bounded Engine user nesting a second, independently
// bounded Repeat inside the pattern they hand it).
type Engine struct {
	log                xlog.Logger
	maxRepeatExpansion int
}

// EngineOption configures an Engine, per teacher's WithX(...) Option
// idiom (massifs/readeroptions.go).
type EngineOption func(*Engine)

// WithEngineLogger injects a Logger the Engine uses to report compiled
// program structure and limit violations. Default is a no-op logger.
func WithEngineLogger(log xlog.Logger) EngineOption {
	return func(e *Engine) { e.log = log }
}

// WithMaxRepeatExpansion overrides the default Repeat staircase ceiling
// (256). A Group quantifier without its own Max that keeps finding new
// repetition counts past this ceiling fails with *ErrVMLimitExceeded
// instead of silently stopping at the default.
func WithMaxRepeatExpansion(n int) EngineOption {
	return func(e *Engine) { e.maxRepeatExpansion = n }
}

// NewEngine returns an Engine with the given options applied over the
// package defaults.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{log: xlog.Nop(), maxRepeatExpansion: defaultMaxRepeatExpansion}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run matches pat against root. A top-level pattern Compile accepts (And,
// Or, Not, Capture, Search, Traverse, Group) is run through this Engine's
// configured ceiling and can fail with *ErrVMLimitExceeded; every other
// pattern kind runs through the unbounded Evaluate, since it carries no
// compiled, ceiling-bounded repetition search of its own.
func (e *Engine) Run(pat *Pattern, root *envelope.Envelope) ([]Result, error) {
	e.log.Debugf("pattern: engine run kind=%d ceiling=%d", pat.Kind, e.maxRepeatExpansion)

	switch pat.Kind {
	case KindAnd, KindOr, KindNot, KindCapture, KindSearch, KindTraverse, KindGroup:
		prog, err := Compile(pat)
		if err != nil {
			return nil, err
		}
		results, err := prog.run(root, e.maxRepeatExpansion)
		if err != nil {
			e.log.Warnf("pattern: engine run aborted: %v", err)
			return nil, err
		}
		e.log.Debugf("pattern: engine run produced %d result(s)", len(results))
		return results, nil
	default:
		results := Evaluate(pat, root)
		e.log.Debugf("pattern: engine run produced %d result(s)", len(results))
		return results, nil
	}
}
