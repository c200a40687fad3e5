package liquid

// comment / endcomment (§4.4): a scope whose body is parsed (so delimiters
// still balance and nested tags don't confuse the cursor) but never
// rendered — it is disabled the instant it opens.

func registerCommentTags(reg *TagRegistry) {
	reg.Register(&TagClass{
		Keyword:      "comment",
		Variant:      VariantPlain,
		DefinesScope: true,
		OnOpen: func(inst *TagInstance, scope *Scope, p *Parser) error {
			scope.OutputState = StateDisabled
			return nil
		},
	})
	reg.Register(&TagClass{
		Keyword: "endcomment",
		Closes:  []string{"comment"},
	})
}
