package liquid

import "strings"

// cycle (§4.4, §9 "Cycle tag state keying"): a plain tag that emits the
// next value of a named iterator, advancing modulo the value list's length.
// With no `group:name` the iterator is keyed by the canonical (trimmed,
// comma-joined) form of the value list itself, so sibling `cycle` calls
// that repeat the same literal list continue the same rotation.

func registerCycleTags(reg *TagRegistry) {
	reg.Register(&TagClass{
		Keyword: "cycle",
		Variant: VariantPlain,
		Parse:   parseCycleArgs,
		OnOpen: func(inst *TagInstance, scope *Scope, p *Parser) error {
			values := inst.Args["__values"]
			items := values.AsArray()
			if len(items) == 0 {
				return nil
			}
			key := inst.Arg("__key").String()
			idx := p.ctx.CycleIndex(key) % len(items)
			scope.appendText(items[idx].String())
			return nil
		},
	})
}

func parseCycleArgs(inst *TagInstance, p *Parser) error {
	remainder := inst.Remainder
	group := ""
	if idx := strings.Index(remainder, ":"); idx >= 0 {
		candidate := strings.TrimSpace(remainder[:idx])
		// Only treat a leading "name:" as a group key when it precedes the
		// first comma-separated value, i.e. it has no comma of its own.
		if !strings.Contains(candidate, ",") && candidate != "" {
			group = candidate
			remainder = remainder[idx+1:]
		}
	}

	toks := splitTopLevel(remainder, ',')
	values := make([]*Value, 0, len(toks))
	canon := make([]string, 0, len(toks))
	for _, tok := range toks {
		tok = strings.TrimSpace(tok)
		values = append(values, parseLiteralOrVariable(tok, p.ctx))
		canon = append(canon, tok)
	}
	if len(values) == 0 {
		return newErrorAt(MalformedStatement, "cycle", p.filename, inst.Token.Line, inst.Token.Col,
			"expected at least one value, got %q", inst.Remainder)
	}

	key := group
	if key == "" {
		key = strings.Join(canon, ",")
	}
	inst.Args = map[string]*Value{
		"__values": ArrayValue(values),
		"__key":    StringValue(key),
	}
	return nil
}
