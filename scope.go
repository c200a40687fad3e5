package liquid

// OutputState is a Scope's visibility flag (§3 "Scope"). Enabled statements
// are emitted; Disabled ones are permanently suppressed (e.g. an `if`
// branch that was never taken, or an empty `for` with no `else`); Halted
// suppresses only the remainder of the current iteration pass — it is
// reset to Enabled whether the loop rewinds for its next item or has just
// run its last one (including one cut short by `break`, which stops
// further advancing via the iteration's own `broken` flag rather than
// this field, so everything rendered in earlier passes still shows).
type OutputState int

const (
	StateEnabled OutputState = iota
	StateDisabled
	StateHalted
)

// statement is one entry in a Scope's ordered body (§3): either literal
// output text (already string-coerced — variable evaluation happens once,
// at the point the token is processed, not at final render time) or a
// reference to a child scope.
type statement struct {
	text  string
	child *Scope
}

// Scope is a node of the compiled document tree (§3). It is created when
// a scope-defining tag opens and torn down (conceptually — Go's GC handles
// the actual deallocation) when its closing tag, or EOF, ends it.
type Scope struct {
	Opener      *TagInstance // nil for the root scope
	Parent      *Scope
	Statements  []statement
	OutputState OutputState

	// OpenerTokenIndex is the index, in the parser's token slice, of the
	// token immediately after this scope's opening tag — iteration tags
	// rewind the cursor here to re-enter the scope (§3, §4.3).
	OpenerTokenIndex int

	// TagKindsToSkip suppresses sibling scopes whose opener tag's keyword
	// is in this set — how `if` skips a later `elsif`/`else` once a branch
	// has matched, and `when` skips further `when`/`else` (§4.3 "Compilation").
	TagKindsToSkip map[string]bool

	// Iteration holds the materialized sequence and cursor for a `for` or
	// `tablerow` scope (§4.4 "Iteration protocol"); nil for every other scope.
	Iteration *iterationState

	// CaseValue holds a `case` tag's evaluated expression, stashed on the
	// common parent scope so that sibling `when` branches (whose own scope
	// is pushed and popped per branch) can still compare against it after
	// the `case` scope itself has closed.
	CaseValue *Value
}

func newScope(parent *Scope, opener *TagInstance, openerTokenIndex int) *Scope {
	return &Scope{
		Parent:           parent,
		Opener:           opener,
		OutputState:      StateEnabled,
		OpenerTokenIndex: openerTokenIndex,
	}
}

// appendText appends literal (already-evaluated) text as a statement.
func (s *Scope) appendText(text string) {
	if text == "" {
		return
	}
	s.Statements = append(s.Statements, statement{text: text})
}

// appendChild appends a child scope as a statement.
func (s *Scope) appendChild(child *Scope) {
	s.Statements = append(s.Statements, statement{child: child})
}

// effectivelyEnabled reports whether output appended now would actually be
// visible: this scope and every ancestor must be Enabled (§3's cascade
// invariant — "setting outputState cascades to all descendant scopes").
func (s *Scope) effectivelyEnabled() bool {
	for cur := s; cur != nil; cur = cur.Parent {
		if cur.OutputState != StateEnabled {
			return false
		}
	}
	return true
}

// shouldSkip reports whether a newly-encountered opener tag with the given
// keyword should be skipped because a sibling scope already claimed its
// branch group (the `if`/`elsif`/`else` and `case`/`when`/`else` chains).
func (s *Scope) shouldSkip(keyword string) bool {
	return s.TagKindsToSkip != nil && s.TagKindsToSkip[keyword]
}

// render flattens the scope tree depth-first into an ordered fragment list
// (§2 item 8, §4.3 "Compilation"). A Disabled scope contributes nothing; a
// Halted scope (mid-iteration `continue`) is handled by the parser before
// render ever sees it, but is treated the same as Disabled defensively.
func (s *Scope) render() []string {
	if s.OutputState != StateEnabled {
		return nil
	}
	var frags []string
	for _, st := range s.Statements {
		if st.child != nil {
			frags = append(frags, st.child.render()...)
		} else {
			frags = append(frags, st.text)
		}
	}
	return frags
}
