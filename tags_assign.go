package liquid

import "strings"

// assign (§4.4): a plain tag, `assign <id> = <expr>`, binding a variable in
// the Context's innermost frame. Distinct store from increment/decrement's
// counters (§8 property 9).

func registerAssignTags(reg *TagRegistry) {
	reg.Register(&TagClass{
		Keyword: "assign",
		Variant: VariantPlain,
		Parse:   parseAssignArgs,
		OnOpen: func(inst *TagInstance, scope *Scope, p *Parser) error {
			p.ctx.Set(inst.Arg("id").String(), p.eval.EvalExpression(inst.Arg("__expr").String()))
			return nil
		},
	})
}

func parseAssignArgs(inst *TagInstance, p *Parser) error {
	idx := strings.IndexByte(inst.Remainder, '=')
	if idx < 0 {
		return newErrorAt(MalformedStatement, "assign", p.filename, inst.Token.Line, inst.Token.Col,
			"expected `assign <id> = <expr>`, got %q", inst.Remainder)
	}
	id := strings.TrimSpace(inst.Remainder[:idx])
	if id == "" {
		return newErrorAt(MalformedStatement, "assign", p.filename, inst.Token.Line, inst.Token.Col,
			"missing identifier in %q", inst.Remainder)
	}
	inst.Args = map[string]*Value{
		"id":     StringValue(id),
		"__expr": StringValue(strings.TrimSpace(inst.Remainder[idx+1:])),
	}
	return nil
}
