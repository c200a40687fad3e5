package liquid

// unless / endunless (§4.4): the inverse of if — output is disabled when
// the condition is truthy, enabled when falsy.

func registerUnlessTags(reg *TagRegistry) {
	reg.Register(&TagClass{
		Keyword:      "unless",
		Variant:      VariantConditional,
		DefinesScope: true,
		OnOpen: func(inst *TagInstance, scope *Scope, p *Parser) error {
			if p.eval.EvalCondition(inst.Remainder).Truthy() {
				scope.OutputState = StateDisabled
			} else {
				scope.OutputState = StateEnabled
			}
			return nil
		},
	})
	reg.Register(&TagClass{
		Keyword: "endunless",
		Closes:  []string{"unless"},
	})
}
