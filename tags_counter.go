package liquid

import "strings"

// increment / decrement (§4.4): plain tags that mutate and emit a named
// counter, disjoint from any `assign`ed variable of the same name.

func registerCounterTags(reg *TagRegistry) {
	reg.Register(&TagClass{
		Keyword: "increment",
		Variant: VariantPlain,
		Parse:   parseCounterName,
		OnOpen: func(inst *TagInstance, scope *Scope, p *Parser) error {
			v := p.ctx.Increment(inst.Arg("id").String())
			scope.appendText(IntegerValue(v).String())
			return nil
		},
	})
	reg.Register(&TagClass{
		Keyword: "decrement",
		Variant: VariantPlain,
		Parse:   parseCounterName,
		OnOpen: func(inst *TagInstance, scope *Scope, p *Parser) error {
			v := p.ctx.Decrement(inst.Arg("id").String())
			scope.appendText(IntegerValue(v).String())
			return nil
		},
	})
}

func parseCounterName(inst *TagInstance, p *Parser) error {
	id := strings.TrimSpace(inst.Remainder)
	if id == "" {
		return newErrorAt(MalformedStatement, inst.Token.Val, p.filename, inst.Token.Line, inst.Token.Col,
			"expected a counter name, got %q", inst.Remainder)
	}
	inst.Args = map[string]*Value{"id": StringValue(id)}
	return nil
}
