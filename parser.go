package liquid

import "strings"

// Parser drives the fused single-pass parse-and-render described in §4.3:
// it walks the token list, evaluates Text/Variable tokens directly against
// the live Context, and dispatches Tag tokens to the tag registry, building
// a Scope tree as it goes. Iteration tags re-enter their body by rewinding
// the cursor (Parser.pos) rather than re-walking a persisted node tree.
type Parser struct {
	filename  string
	tokens    []*Token
	pos       int
	root      *Scope
	current   *Scope
	ctx       *Context
	eval      *Evaluator
	tags      *TagRegistry
	filters   *FilterRegistry
	operators *OperatorRegistry
}

// Context returns the render's variable environment, for tag Parse/OnOpen/
// OnClose hooks that need to evaluate sub-expressions or push/pop frames.
func (p *Parser) Context() *Context { return p.ctx }

// Eval returns the expression evaluator bound to this render.
func (p *Parser) Eval() *Evaluator { return p.eval }

// Filename returns the template's source name, for error reporting.
func (p *Parser) Filename() string { return p.filename }

// Parse builds the scope tree for one render from an already-lexed token
// list (see Lex) (§4.3). It
// never aborts on a soft error (those are recorded on ctx); it returns an
// error only for a thrown tag-parse failure (§7 propagation policy).
func Parse(filename string, tokens []*Token, ctx *Context, tags *TagRegistry, filters *FilterRegistry, operators *OperatorRegistry) (*Scope, error) {
	root := newScope(nil, nil, 0)
	p := &Parser{
		filename:  filename,
		tokens:    tokens,
		root:      root,
		current:   root,
		ctx:       ctx,
		tags:      tags,
		filters:   filters,
		operators: operators,
	}
	p.eval = NewEvaluator(ctx, filters, operators)

	for p.pos < len(p.tokens) {
		tok := p.tokens[p.pos]
		switch tok.Kind {
		case TokenText:
			if p.current.effectivelyEnabled() {
				p.current.appendText(tok.Val)
			}
			p.pos++
		case TokenVariable:
			if p.current.effectivelyEnabled() {
				p.current.appendText(p.evalVariableToken(tok.Val).String())
			}
			p.pos++
		case TokenTag:
			if err := p.handleTag(tok); err != nil {
				return nil, err
			}
		}
	}

	if p.current != p.root {
		keyword := "?"
		if p.current.Opener != nil {
			keyword = p.current.Opener.Class.Keyword
		}
		ctx.RecordParseError(newErrorAt(UnbalancedScopes, "parser", filename, tok0Line(tokens), 0,
			"reached EOF with tag %q still open", keyword))
	}

	return root, nil
}

func tok0Line(tokens []*Token) int {
	if len(tokens) == 0 {
		return 0
	}
	return tokens[len(tokens)-1].Line
}

// evalVariableToken implements §4.2's rule for a {{ ... }} payload: a
// filter chain if it contains a top-level pipe, otherwise the (possibly
// comparison/boolean) infix condition evaluator, which itself subsumes a
// bare literal-or-variable payload.
func (p *Parser) evalVariableToken(payload string) *Value {
	if containsTopLevelPipe(payload) {
		return p.eval.EvalExpression(payload)
	}
	return p.eval.EvalCondition(payload)
}

func containsTopLevelPipe(s string) bool {
	parts := splitTopLevel(s, '|')
	return len(parts) > 1
}

// splitKeyword splits a Tag token's payload into its keyword and the
// trimmed remainder of the statement.
func splitKeyword(payload string) (keyword, remainder string) {
	payload = strings.TrimSpace(payload)
	idx := strings.IndexAny(payload, " \t\n")
	if idx < 0 {
		return payload, ""
	}
	return payload[:idx], strings.TrimSpace(payload[idx+1:])
}

func containsStr(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

// handleTag runs one Tag token through the full lifecycle described in
// §4.3: resolve its class, parse its arguments, close the current scope if
// it matches, open a new one if it defines a scope, and advance the
// cursor — unless an iteration scope rewound it first.
func (p *Parser) handleTag(tok *Token) error {
	keyword, remainder := splitKeyword(tok.Val)

	classes, ok := p.tags.Lookup(keyword)
	if !ok {
		log.Warningf("unknown tag %q at line %d, skipping", keyword, tok.Line)
		p.pos++
		return nil
	}

	var inst *TagInstance
	var lastErr error
	for _, tc := range classes {
		candidate := &TagInstance{Class: tc, Token: tok, Remainder: remainder}
		if tc.Parse != nil {
			if err := tc.Parse(candidate, p); err != nil {
				lastErr = err
				continue
			}
		}
		inst = candidate
		break
	}
	if inst == nil {
		if lastErr == nil {
			lastErr = newErrorAt(UnknownTag, "parser", p.filename, tok.Line, tok.Col, "tag %q has no matching class", keyword)
		}
		return lastErr
	}

	rewound, err := p.closeIfMatching(inst)
	if err != nil {
		return err
	}
	if rewound {
		return nil
	}

	// A disabled ambient scope (an untaken if/case branch, a comment body, a
	// loop already ended by break) still has its tokens walked to keep the
	// cursor and scope tree in sync, but none of its tags' OnOpen hooks may
	// run — otherwise a side-effecting plain tag (assign/increment/cycle/
	// break/continue) fires even though its branch was never taken. Text
	// and Variable tokens get the same guard above.
	runHooks := p.current.effectivelyEnabled()

	if inst.Class.DefinesScope {
		child := newScope(p.current, inst, p.pos+1)
		if inst.Class.OnOpen != nil && runHooks {
			if err := inst.Class.OnOpen(inst, child, p); err != nil {
				return err
			}
		}
		p.current.appendChild(child)
		p.current = child
	} else if inst.Class.OnOpen != nil && runHooks {
		if err := inst.Class.OnOpen(inst, p.current, p); err != nil {
			return err
		}
	}

	p.pos++
	return nil
}

// closeIfMatching closes p.current if inst's class declares it closes the
// current scope's opener keyword. rewound is true if closing triggered an
// iteration scope to re-enter its body (cursor already repositioned).
func (p *Parser) closeIfMatching(inst *TagInstance) (rewound bool, err error) {
	if p.current.Opener == nil || !containsStr(inst.Class.Closes, p.current.Opener.Class.Keyword) {
		return false, nil
	}

	scope := p.current
	// Gate on the parent, not the scope itself: an empty `for` disables its
	// own scope at open, and its `else` still needs OnClose to see that.
	if inst.Class.OnClose != nil && scope.Parent.effectivelyEnabled() {
		if err := inst.Class.OnClose(inst, scope, p); err != nil {
			return false, err
		}
	}

	if scope.Iteration != nil {
		if !scope.Iteration.broken && scope.Iteration.advance(p.ctx) {
			scope.OutputState = StateEnabled
			p.pos = scope.OpenerTokenIndex
			return true, nil
		}
		// Iteration is over, whether by exhaustion or `break`: re-enable the
		// scope so everything accumulated across every pass still renders —
		// StateHalted (from a `break`/`continue` on the final pass) must not
		// stick once there is no next pass left to clear it.
		scope.OutputState = StateEnabled
		// A `break` skips advance(), which is what pops the last pass's frame.
		if scope.Iteration.pushed {
			p.ctx.Pop()
			scope.Iteration.pushed = false
		}
	}

	p.current = scope.Parent
	if inst.Class.PopsParentToo && p.current != nil && p.current != p.root {
		p.current = p.current.Parent
	}
	return false, nil
}

// nearestEnclosingFor walks up from scope (inclusive) to find the closest
// scope opened by an iteration tag, for break/continue (§4.4).
func nearestEnclosingFor(scope *Scope) *Scope {
	for cur := scope; cur != nil; cur = cur.Parent {
		if cur.Iteration != nil {
			return cur
		}
	}
	return nil
}
