package liquid

import (
	"fmt"
	"strings"
)

// tablerow / endtablerow (§4.4): an iteration tag whose body is wrapped in
// a row/col HTML table-row state machine instead of a bare repeat.

func registerTablerowTags(reg *TagRegistry) {
	reg.Register(&TagClass{
		Keyword:      "tablerow",
		Variant:      VariantIteration,
		DefinesScope: true,
		Parse:        parseTablerowArgs,
		OnOpen:       tablerowOnOpen,
	})
	reg.Register(&TagClass{
		Keyword: "endtablerow",
		Closes:  []string{"tablerow"},
		OnClose: func(inst *TagInstance, scope *Scope, p *Parser) error {
			// Only the pass that truly exhausts the sequence closes the
			// final row: every earlier pass still has a next item coming,
			// whose onAdvance hook (not this hook) opens the next cell/row.
			if scope.Iteration != nil && len(scope.Iteration.items) > 0 && !scope.Iteration.hasMore() {
				scope.appendText("</td></tr>")
			}
			return nil
		},
	})
}

func parseTablerowArgs(inst *TagInstance, p *Parser) error {
	named, rest := extractNamedParams(inst.Remainder, []string{"cols", "limit", "offset"}, p.ctx)
	inst.Named = named

	toks := strings.Fields(rest)
	if len(toks) < 3 || toks[1] != "in" {
		return newErrorAt(MalformedStatement, "tablerow", p.filename, inst.Token.Line, inst.Token.Col,
			"expected `tablerow <id> in <iterable>`, got %q", inst.Remainder)
	}
	inst.Args = map[string]*Value{"id": StringValue(toks[0])}
	inst.Args["__iterable_expr"] = StringValue(strings.Join(toks[2:], " "))
	return nil
}

func tablerowOnOpen(inst *TagInstance, scope *Scope, p *Parser) error {
	items := p.eval.EvalExpression(inst.Arg("__iterable_expr").String()).AsArray()

	offset := int(inst.NamedOrDefault("offset", IntegerValue(0)).AsInteger())
	if offset > 0 && offset <= len(items) {
		items = items[offset:]
	} else if offset > len(items) {
		items = nil
	}
	if inst.HasNamed("limit") {
		limit := int(inst.Named["limit"].AsInteger())
		if limit < 0 {
			return newErrorAt(InvalidInvocation, "tablerow", p.filename, inst.Token.Line, inst.Token.Col,
				"limit must be >= 0, got %d", limit)
		}
		if limit < len(items) {
			items = items[:limit]
		}
	}

	cols := len(items)
	if inst.HasNamed("cols") {
		cols = int(inst.Named["cols"].AsInteger())
	}
	if cols < 1 {
		cols = 1
	}

	scope.Iteration = &iterationState{
		varName: inst.Arg("id").String(),
		items:   items,
		onAdvance: func(ctx *Context, item *Value, idx int) {
			emitTablerowMarkup(scope, cols, idx)
		},
	}
	if len(items) == 0 {
		scope.OutputState = StateDisabled
		return nil
	}
	scope.Iteration.advance(p.ctx)
	return nil
}

func emitTablerowMarkup(scope *Scope, cols, idx int) {
	switch {
	case idx == 0:
		scope.appendText(`<tr class="row1">`)
	case idx%cols == 0:
		scope.appendText(fmt.Sprintf(`</td></tr><tr class="row%d">`, idx/cols+1))
	default:
		scope.appendText("</td>")
	}
	scope.appendText(fmt.Sprintf(`<td class="col%d">`, idx%cols+1))
}
