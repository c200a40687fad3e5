package liquid

// if / elsif / else / endif implement the branch chain described in §4.4.
// `if` always opens; `elsif` and the if-chain `else` both close the
// previous branch in the chain and open their own; `endif` only closes.
// At most one branch in the chain ever ends up Enabled (exactly one when the
// chain has an `else`), enforced by TagKindsToSkip stashed on the chain's
// common parent scope; each new `if` clears those flags before it evaluates.

func registerIfTags(reg *TagRegistry) {
	reg.Register(&TagClass{
		Keyword:      "if",
		Variant:      VariantConditional,
		DefinesScope: true,
		OnOpen:       ifChainOnOpen("if"),
	})
	reg.Register(&TagClass{
		Keyword:      "elsif",
		Variant:      VariantConditional,
		DefinesScope: true,
		Closes:       []string{"if", "elsif"},
		OnOpen:       ifChainOnOpen("elsif"),
	})
	reg.Register(&TagClass{
		Keyword:      "else",
		Variant:      VariantConditional,
		DefinesScope: true,
		Closes:       []string{"if", "elsif"},
		Parse:        requireEnclosingOpener("if", "elsif"),
		OnOpen:       ifChainElseOnOpen,
	})
	reg.Register(&TagClass{
		Keyword: "endif",
		Closes:  []string{"if", "elsif", "else"},
	})
}

// requireEnclosingOpener returns a Parse func that fails unless the scope
// about to be closed was opened by one of the given keywords — this is how
// the shared `else` keyword disambiguates between the if-chain class and
// the case-chain class registered under the same name (§6 "Tag interface":
// "the parser tries each [class] in order and uses the first that parses
// without error").
func requireEnclosingOpener(keywords ...string) func(inst *TagInstance, p *Parser) error {
	return func(inst *TagInstance, p *Parser) error {
		if p.current.Opener == nil || !containsStr(keywords, p.current.Opener.Class.Keyword) {
			return newErrorAt(MalformedStatement, "else", p.filename, inst.Token.Line, inst.Token.Col,
				"no enclosing %v", keywords)
		}
		return nil
	}
}

func ifChainOnOpen(keyword string) func(inst *TagInstance, scope *Scope, p *Parser) error {
	return func(inst *TagInstance, scope *Scope, p *Parser) error {
		parent := scope.Parent
		if keyword == "if" && parent.TagKindsToSkip != nil {
			// A new chain starts: flags left by an earlier chain (or an
			// earlier loop pass) in the same parent no longer apply.
			delete(parent.TagKindsToSkip, "elsif")
			delete(parent.TagKindsToSkip, "else")
		}
		if parent.shouldSkip(keyword) {
			scope.OutputState = StateDisabled
			return nil
		}
		if p.eval.EvalCondition(inst.Remainder).Truthy() {
			scope.OutputState = StateEnabled
			markSkip(parent, "elsif", "else")
		} else {
			scope.OutputState = StateDisabled
		}
		return nil
	}
}

func ifChainElseOnOpen(inst *TagInstance, scope *Scope, p *Parser) error {
	parent := scope.Parent
	if parent.shouldSkip("else") {
		scope.OutputState = StateDisabled
		return nil
	}
	scope.OutputState = StateEnabled
	return nil
}

func markSkip(scope *Scope, keywords ...string) {
	if scope.TagKindsToSkip == nil {
		scope.TagKindsToSkip = make(map[string]bool)
	}
	for _, k := range keywords {
		scope.TagKindsToSkip[k] = true
	}
}
