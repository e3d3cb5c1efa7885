package pattern

import "github.com/gordian-systems/go-envelope/envelope"

// defaultMaxRepeatExpansion bounds the quantifier staircase when the
// quantifier itself has no Max, so a pathological pattern cannot loop
// forever even though the no-progress rule already prevents most
// divergence. Program.Run uses this default; Engine.Run lets a caller
// configure it and learn when the ceiling, not natural closure, ended the
// staircase (spec.md §5, §7 Pattern.VmLimitExceeded).
const defaultMaxRepeatExpansion = 256

type repeatState struct {
	env      *envelope.Envelope
	path     Path
	captures map[string][]Path
}

// vmThread is one live execution path through a Program: a program
// counter, the envelope all of the next instruction's matching is
// anchored to, the path accumulated from the program's starting
// envelope to that anchor, the captures accumulated so far, and a stack
// of saved paths ExtendTraversal/PushAxis push and CombineTraversal/Pop
// pop. Every thread is self-contained — forking one (Split, a
// multi-result Match/Search/Repeat, PushAxis over several children)
// deep-copies path/captures/bases before the fork, so sibling threads
// never alias or cross-mutate each other's state (spec.md §9's
// clone-on-fork rule).
type vmThread struct {
	pc       int
	env      *envelope.Envelope
	path     Path
	captures map[string][]Path
	bases    []Path
}

func clonePaths(in []Path) []Path {
	out := make([]Path, len(in))
	for i, p := range in {
		out[i] = append(Path(nil), p...)
	}
	return out
}

func (t vmThread) fork(pc int) vmThread {
	return vmThread{
		pc:       pc,
		env:      t.env,
		path:     append(Path(nil), t.path...),
		captures: copyCaptures(t.captures),
		bases:    clonePaths(t.bases),
	}
}

// Run executes prog against root using the default repeat-expansion
// ceiling. A ceiling hit is not surfaced: Run then returns no results. It
// is the convenience path Evaluate/Match use. Callers that need the ceiling
// configured and its violation reported should use Engine.Run instead.
func (prog *Program) Run(root *envelope.Envelope) []Result {
	results, _ := prog.run(root, defaultMaxRepeatExpansion)
	return results
}

// run executes prog's bytecode against root on an explicit thread stack
// (spec.md §4.4.2, §9): every Split/multi-result match/Search/Repeat
// pushes its successor threads onto this stack rather than recursing on
// Go's call stack, so a deep or wide backtracking search scales with
// heap, not stack. It returns an *ErrVMLimitExceeded if any Repeat
// instruction's staircase was still finding new states when it hit
// ceiling (as opposed to closing naturally because no new state
// appeared).
func (prog *Program) run(root *envelope.Envelope, ceiling int) ([]Result, error) {
	var out []Result
	stack := []vmThread{{pc: 0, env: root, path: Path{root}, captures: map[string][]Path{}}}

	for len(stack) > 0 {
		th := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if th.pc < 0 || th.pc >= len(prog.Code) {
			continue
		}
		instr := prog.Code[th.pc]

		switch instr.Op {
		case OpAccept:
			out = append(out, Result{Path: th.path, Captures: th.captures})

		case OpMatchStructure:
			// And: every sub-pattern must match the same current envelope;
			// captures from every result of every sub-pattern are merged, but
			// the thread's anchor and path never move (spec.md §4.4.1).
			subResults := Evaluate(prog.Literals[instr.Literal], th.env)
			if len(subResults) == 0 {
				continue
			}
			nt := th.fork(th.pc + 1)
			for _, r := range subResults {
				nt.captures = mergeCaptures(nt.captures, r.Captures)
			}
			stack = append(stack, nt)

		case OpMatchPredicate:
			// Used for Or's alternatives, Capture's and Traverse's inner
			// steps, and Not's negated pattern (via OpNotMatch below, not
			// this case): matching the literal at the current anchor forks
			// one successor thread per result, replacing path/env with that
			// result's own (spec.md §4.4.1's Split/Capture/Traverse encodings).
			subResults := Evaluate(prog.Literals[instr.Literal], th.env)
			for i := len(subResults) - 1; i >= 0; i-- {
				r := subResults[i]
				nt := th.fork(th.pc + 1)
				nt.env = r.Path.last()
				nt.path = append(Path(nil), r.Path...)
				nt.captures = mergeCaptures(nt.captures, r.Captures)
				stack = append(stack, nt)
			}

		case OpNotMatch:
			if len(Evaluate(prog.Literals[instr.Literal], th.env)) > 0 {
				continue
			}
			stack = append(stack, th.fork(th.pc+1))

		case OpSplit:
			// Try branch A before branch B (spec.md §5's Split.a-before-
			// Split.b ordering): push B first so A pops — and so its whole
			// subtree finishes — before B is even started.
			stack = append(stack, th.fork(instr.B))
			stack = append(stack, th.fork(instr.A))

		case OpJump:
			stack = append(stack, th.fork(instr.A))

		case OpCaptureStart:
			stack = append(stack, th.fork(th.pc+1))

		case OpCaptureEnd:
			name := prog.CaptureNames[instr.CaptureIdx]
			nt := th.fork(th.pc + 1)
			nt.captures[name] = append(nt.captures[name], append(Path(nil), th.path...))
			stack = append(stack, nt)

		case OpExtendTraversal:
			nt := th.fork(th.pc + 1)
			nt.bases = append(nt.bases, append(Path(nil), th.path...))
			stack = append(stack, nt)

		case OpCombineTraversal:
			if len(th.bases) == 0 {
				continue
			}
			base := th.bases[len(th.bases)-1]
			nt := th.fork(th.pc + 1)
			nt.bases = nt.bases[:len(nt.bases)-1]
			nt.path = append(append(Path(nil), base...), th.path[1:]...)
			nt.env = nt.path.last()
			stack = append(stack, nt)

		case OpSearch:
			subResults := runSearch(prog.Literals[instr.Literal], th.env)
			prefix := th.path[:len(th.path)-1]
			for i := len(subResults) - 1; i >= 0; i-- {
				r := subResults[i]
				nt := th.fork(th.pc + 1)
				nt.path = append(append(Path(nil), prefix...), r.Path...)
				nt.env = nt.path.last()
				nt.captures = mergeCaptures(nt.captures, r.Captures)
				stack = append(stack, nt)
			}

		case OpRepeat:
			results, err := runRepeat(prog.Literals[instr.Literal], instr.Quantifier, th.env, ceiling)
			if err != nil {
				return nil, err
			}
			prefix := th.path[:len(th.path)-1]
			for i := len(results) - 1; i >= 0; i-- {
				r := results[i]
				nt := th.fork(th.pc + 1)
				nt.path = append(append(Path(nil), prefix...), r.Path...)
				nt.env = nt.path.last()
				nt.captures = mergeCaptures(nt.captures, r.Captures)
				stack = append(stack, nt)
			}

		case OpPushAxis:
			// Not reachable from Compile today (single-child structural
			// navigation is matched directly in match.go — see compile.go's
			// Axis doc comment); implemented so the full instruction set is
			// genuinely executable, for a future grammar that compiles
			// Subject/Predicate/Object/Assertion navigation carrying a
			// further composite inner pattern.
			targets := axisTargets(instr.Axis, th.env)
			for i := len(targets) - 1; i >= 0; i-- {
				tgt := targets[i]
				nt := th.fork(th.pc + 1)
				nt.bases = append(nt.bases, append(Path(nil), th.path...))
				nt.path = append(nt.path, tgt)
				nt.env = tgt
				stack = append(stack, nt)
			}

		case OpPop:
			if len(th.bases) == 0 {
				continue
			}
			base := th.bases[len(th.bases)-1]
			nt := th.fork(th.pc + 1)
			nt.bases = nt.bases[:len(nt.bases)-1]
			nt.path = append(Path(nil), base...)
			nt.env = nt.path.last()
			stack = append(stack, nt)

		case OpSave:
			out = append(out, Result{Path: append(Path(nil), th.path...), Captures: copyCaptures(th.captures)})
			stack = append(stack, th.fork(th.pc+1))

		case OpNavigateSubject:
			sub := th.env.Subject()
			nt := th.fork(th.pc + 1)
			nt.path = append(nt.path, sub)
			nt.env = sub
			stack = append(stack, nt)
		}
	}
	return out, nil
}

func axisTargets(axis Axis, e *envelope.Envelope) []*envelope.Envelope {
	switch axis {
	case AxisSubject:
		return []*envelope.Envelope{e.Subject()}
	case AxisAssertion:
		return e.Assertions()
	case AxisPredicate:
		if pred, _, ok := e.AsAssertion(); ok {
			return []*envelope.Envelope{pred}
		}
	case AxisObject:
		if _, obj, ok := e.AsAssertion(); ok {
			return []*envelope.Envelope{obj}
		}
	case AxisWrapped:
		if inner, ok := e.AsWrapped(); ok {
			return []*envelope.Envelope{inner}
		}
	}
	return nil
}

// runRepeat builds the reachable-state staircase iteratively (no
// recursion — large or unbounded quantifiers must not ride the Go call
// stack, spec.md §9) and returns one Result per accepted repetition count,
// in the order the quantifier's reluctance dictates. If the quantifier's
// own Max is no higher than ceiling, that Max governs and is never a limit
// violation; only a staircase that reaches the engine's ceiling and could
// still grow past it is reported as *ErrVMLimitExceeded.
func runRepeat(inner *Pattern, q Quantifier, root *envelope.Envelope, ceiling int) ([]Result, error) {
	layers := [][]repeatState{{{env: root, path: Path{root}}}}

	hardCeiling := ceiling
	limitedByQuantifier := false
	if q.Max != nil && *q.Max <= hardCeiling {
		hardCeiling = *q.Max
		limitedByQuantifier = true
	}

	limitHit := false
	for i := 1; i <= hardCeiling; i++ {
		prev := layers[i-1]
		var layer []repeatState
		for _, st := range prev {
			for _, r := range Evaluate(inner, st.env) {
				newEnv := r.Path.last()
				if len(r.Path) <= 1 && newEnv.Digest() == st.env.Digest() {
					continue // no-progress: zero-width match, doesn't extend the staircase
				}
				layer = append(layer, repeatState{
					env:      newEnv,
					path:     append(append(Path{}, st.path...), r.Path[1:]...),
					captures: mergeCaptures(copyCaptures(st.captures), r.Captures),
				})
			}
		}
		if len(layer) == 0 {
			break
		}
		layers = append(layers, layer)
		if i == hardCeiling && !limitedByQuantifier {
			// The ceiling counts as exceeded only if some state in this
			// layer can still take a step that makes progress.
			for _, st := range layer {
				for _, r := range Evaluate(inner, st.env) {
					if len(r.Path) > 1 || r.Path.last().Digest() != st.env.Digest() {
						limitHit = true
					}
				}
			}
		}
	}
	if limitHit {
		return nil, &ErrVMLimitExceeded{Limit: ceiling}
	}

	maxReached := len(layers) - 1
	min := q.Min
	if min == 0 {
		min = 0
	}

	var counts []int
	for c := min; c <= maxReached; c++ {
		if c == 0 && q.Min > 0 {
			continue
		}
		counts = append(counts, c)
	}
	if len(counts) == 0 && q.Min == 0 {
		counts = []int{0}
	}

	switch q.Reluctance {
	case Lazy:
		// ascending, as built
	case Possessive:
		if len(counts) > 0 {
			counts = counts[len(counts)-1:]
		}
	default: // Greedy
		for i, j := 0, len(counts)-1; i < j; i, j = i+1, j-1 {
			counts[i], counts[j] = counts[j], counts[i]
		}
	}

	var out []Result
	for _, c := range counts {
		for _, st := range layers[c] {
			out = append(out, Result{Path: st.path, Captures: st.captures})
		}
	}
	return out, nil
}
