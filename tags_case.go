package liquid

import "strings"

// case / when / else / endcase (§4.4): structurally the same chained-
// branch pattern as if/elsif/else, except a branch matches by equality
// against the case's expression rather than by truthiness, and `when` can
// take several comma-separated values that match by OR (§9 Open Questions).

func registerCaseTags(reg *TagRegistry) {
	reg.Register(&TagClass{
		Keyword:      "case",
		Variant:      VariantConditional,
		DefinesScope: true,
		OnOpen: func(inst *TagInstance, scope *Scope, p *Parser) error {
			scope.Parent.CaseValue = p.eval.EvalExpression(inst.Remainder)
			if scope.Parent.TagKindsToSkip != nil {
				delete(scope.Parent.TagKindsToSkip, "when")
				delete(scope.Parent.TagKindsToSkip, "else")
			}
			scope.OutputState = StateDisabled
			return nil
		},
	})
	reg.Register(&TagClass{
		Keyword:      "when",
		Variant:      VariantConditional,
		DefinesScope: true,
		Closes:       []string{"case", "when"},
		OnOpen: func(inst *TagInstance, scope *Scope, p *Parser) error {
			parent := scope.Parent
			if parent.shouldSkip("when") {
				scope.OutputState = StateDisabled
				return nil
			}
			matched := false
			for _, tok := range splitTopLevel(inst.Remainder, ',') {
				candidate := p.eval.EvalExpression(strings.TrimSpace(tok))
				if candidate.Equal(parent.CaseValue) {
					matched = true
					break
				}
			}
			if matched {
				scope.OutputState = StateEnabled
				markSkip(parent, "when", "else")
			} else {
				scope.OutputState = StateDisabled
			}
			return nil
		},
	})
	reg.Register(&TagClass{
		Keyword:      "else",
		Variant:      VariantConditional,
		DefinesScope: true,
		Closes:       []string{"case", "when"},
		Parse:        requireEnclosingOpener("case", "when"),
		OnOpen: func(inst *TagInstance, scope *Scope, p *Parser) error {
			if scope.Parent.shouldSkip("else") {
				scope.OutputState = StateDisabled
			} else {
				scope.OutputState = StateEnabled
			}
			return nil
		},
	})
	reg.Register(&TagClass{
		Keyword: "endcase",
		Closes:  []string{"case", "when", "else"},
	})
}
