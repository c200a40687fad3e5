package liquid

import "strings"

// iterationState is the sequence and cursor a `for`/`tablerow` scope walks
// (§3 "Scope", §4.4 "Iteration protocol"). advance binds the loop variable
// (plus, for `for`, the `forloop` helper object) for the next item and
// reports whether there was one.
type iterationState struct {
	varName  string
	items    []*Value
	index    int // next item to emit, 0-based
	pushed   bool
	withLoop bool // true for `for` (injects `forloop`), false for `tablerow`
	onAdvance func(ctx *Context, item *Value, idx int) // tablerow row/col bookkeeping hook

	// broken is set by `break` (tags_loopctl.go) to stop the loop for good.
	// It is distinct from the scope's OutputState, which only tracks
	// whether the *current* pass's remaining output is visible — the loop
	// must still render everything it already emitted in earlier passes.
	broken bool
}

func (it *iterationState) hasMore() bool {
	return it.index < len(it.items)
}

// advance pops the previous iteration's frame (if any) and, if another
// item remains, pushes a fresh frame binding the loop variable (and
// forloop object) for it. It returns false when the sequence is exhausted.
func (it *iterationState) advance(ctx *Context) bool {
	if it.pushed {
		ctx.Pop()
		it.pushed = false
	}
	if !it.hasMore() {
		return false
	}
	item := it.items[it.index]
	frame := map[string]*Value{it.varName: item}
	if it.withLoop {
		frame["forloop"] = DictionaryValue(forloopObject(it.index, len(it.items)))
	}
	ctx.Push(frame)
	it.pushed = true
	if it.onAdvance != nil {
		it.onAdvance(ctx, item, it.index)
	}
	it.index++
	return true
}

func forloopObject(index, length int) *Dictionary {
	d := NewDictionary()
	d.Set("index", IntegerValue(int64(index+1)))
	d.Set("index0", IntegerValue(int64(index)))
	d.Set("rindex", IntegerValue(int64(length-index)))
	d.Set("rindex0", IntegerValue(int64(length-index-1)))
	d.Set("first", BoolValue(index == 0))
	d.Set("last", BoolValue(index == length-1))
	d.Set("length", IntegerValue(int64(length)))
	return d
}

// registerForTags registers `for`/`else`(for)/`endfor`. The `else` keyword
// here is a third class sharing the name with the if-chain and case-chain
// ones in tags_if.go/tags_case.go, disambiguated by Parse checking the
// enclosing opener.
func registerForTags(reg *TagRegistry) {
	reg.Register(&TagClass{
		Keyword:      "for",
		Variant:      VariantIteration,
		DefinesScope: true,
		Parse:        parseForArgs,
		OnOpen:       forOnOpen,
	})
	reg.Register(&TagClass{
		Keyword:      "else",
		Variant:      VariantPlain,
		DefinesScope: true,
		Closes:       []string{"for"},
		Parse:        requireEnclosingOpener("for"),
		OnClose: func(inst *TagInstance, scope *Scope, p *Parser) error {
			empty := scope.Iteration == nil || len(scope.Iteration.items) == 0
			inst.setArg("__was_empty", BoolValue(empty))
			return nil
		},
		OnOpen: func(inst *TagInstance, scope *Scope, p *Parser) error {
			if inst.Arg("__was_empty").Truthy() {
				scope.OutputState = StateEnabled
			} else {
				scope.OutputState = StateDisabled
			}
			return nil
		},
	})
	reg.Register(&TagClass{
		Keyword: "endfor",
		Closes:  []string{"for", "else"},
	})
}

// parseForArgs parses "id in iterable [limit:n] [offset:n] [reversed]"
// (§4.4). Filters/limit/offset/reversed are applied to the materialized
// sequence at OnOpen time, once the iterable expression has a value.
func parseForArgs(inst *TagInstance, p *Parser) error {
	named, rest := extractNamedParams(inst.Remainder, []string{"limit", "offset", "reversed"}, p.ctx)
	inst.Named = named

	toks := strings.Fields(rest)
	if len(toks) < 3 || toks[1] != "in" {
		return newErrorAt(MalformedStatement, "for", p.filename, inst.Token.Line, inst.Token.Col,
			"expected `for <id> in <iterable>`, got %q", inst.Remainder)
	}
	inst.Args = map[string]*Value{"id": StringValue(toks[0])}
	inst.Args["__iterable_expr"] = StringValue(strings.Join(toks[2:], " "))
	return nil
}

func forOnOpen(inst *TagInstance, scope *Scope, p *Parser) error {
	iterableExpr := inst.Arg("__iterable_expr").String()
	items := p.eval.EvalExpression(iterableExpr).AsArray()

	offset := int(inst.NamedOrDefault("offset", IntegerValue(0)).AsInteger())
	if offset < 0 {
		return newErrorAt(InvalidInvocation, "for", p.filename, inst.Token.Line, inst.Token.Col,
			"offset must be >= 0, got %d", offset)
	}
	if offset > 0 && offset <= len(items) {
		items = items[offset:]
	} else if offset > len(items) {
		items = nil
	}

	if inst.HasNamed("limit") {
		limit := int(inst.Named["limit"].AsInteger())
		if limit < 0 {
			return newErrorAt(InvalidInvocation, "for", p.filename, inst.Token.Line, inst.Token.Col,
				"limit must be >= 0, got %d", limit)
		}
		if limit < len(items) {
			items = items[:limit]
		}
	}

	if inst.NamedOrDefault("reversed", BoolValue(false)).Truthy() {
		reversed := make([]*Value, len(items))
		for i, v := range items {
			reversed[len(items)-1-i] = v
		}
		items = reversed
	}

	scope.Iteration = &iterationState{
		varName:  inst.Arg("id").String(),
		items:    items,
		withLoop: true,
	}
	if len(items) == 0 {
		scope.OutputState = StateDisabled
		return nil
	}
	scope.Iteration.advance(p.ctx)
	return nil
}
