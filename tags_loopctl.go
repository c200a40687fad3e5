package liquid

// break / continue (§4.4): plain tags (no scope of their own) that mutate
// the nearest enclosing iteration scope. Both suppress the rest of the
// current pass via StateHalted; `break` additionally marks the iteration
// itself as broken so closeIfMatching never advances it again. Neither
// one disables the scope outright — that would also hide everything the
// loop already rendered in earlier passes.
func registerLoopControlTags(reg *TagRegistry) {
	reg.Register(&TagClass{
		Keyword: "break",
		Variant: VariantPlain,
		OnOpen: func(inst *TagInstance, scope *Scope, p *Parser) error {
			if loop := nearestEnclosingFor(scope); loop != nil {
				loop.OutputState = StateHalted
				if loop.Iteration != nil {
					loop.Iteration.broken = true
				}
			}
			return nil
		},
	})
	reg.Register(&TagClass{
		Keyword: "continue",
		Variant: VariantPlain,
		OnOpen: func(inst *TagInstance, scope *Scope, p *Parser) error {
			if loop := nearestEnclosingFor(scope); loop != nil {
				loop.OutputState = StateHalted
			}
			return nil
		},
	})
}
