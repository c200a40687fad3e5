package liquid

import "strings"

// capture / endcapture (§4.4): buffers its body's rendered output into a
// variable instead of emitting it inline. The body is still appended and
// rendered normally (so nested tags see a live Context as usual); OnClose
// flattens it, binds the variable, then disables the scope so the final
// flatten of the enclosing tree doesn't also emit it inline.

func registerCaptureTags(reg *TagRegistry) {
	reg.Register(&TagClass{
		Keyword:      "capture",
		Variant:      VariantPlain,
		DefinesScope: true,
		Parse: func(inst *TagInstance, p *Parser) error {
			id := strings.TrimSpace(inst.Remainder)
			if id == "" {
				return newErrorAt(MalformedStatement, "capture", p.filename, inst.Token.Line, inst.Token.Col,
					"expected `capture <id>`, got %q", inst.Remainder)
			}
			inst.Args = map[string]*Value{"id": StringValue(id)}
			return nil
		},
	})
	reg.Register(&TagClass{
		Keyword: "endcapture",
		Closes:  []string{"capture"},
		OnClose: func(inst *TagInstance, scope *Scope, p *Parser) error {
			joined := strings.Join(scope.render(), "")
			p.ctx.Set(scope.Opener.Arg("id").String(), StringValue(joined))
			scope.OutputState = StateDisabled
			return nil
		},
	})
}
