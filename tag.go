package liquid

import "strings"

// TagVariant classifies a tag's rendering capability (§9 "Tag polymorphism"):
// composition over an inheritance hierarchy of abstract conditional/
// iteration tag base classes. It is a descriptive label only: the parser
// does not read it, and drives every tag through its TagClass hooks.
type TagVariant int

const (
	VariantPlain TagVariant = iota
	VariantConditional
	VariantIteration
)

// TagClass is a registered tag keyword's behavior (§3 "Tag object"): its
// argument grammar is parsed by a hand-written Parse function (the grammar
// itself — literal/identifier/variable/group segments plus named
// parameters — is documented per tag rather than data-driven, matching how
// each control tag's argument shape is genuinely distinct). OnOpen/OnClose
// are the hooks the parser invokes as it drives the scope tree.
type TagClass struct {
	Keyword      string
	Variant      TagVariant
	DefinesScope bool
	// Closes lists the keywords of an open scope's tag that this tag
	// closes when encountered, e.g. endif closes "if"/"elsif"/"else".
	Closes []string
	// PopsParentToo additionally pops the parent scope once this tag's
	// own close has been processed (none of the built-ins need this; kept
	// for embedder tags that close two nested scopes at once).
	PopsParentToo bool

	// Parse fills in a TagInstance's bindings from the trimmed remainder
	// (the payload with the keyword already stripped).
	Parse func(inst *TagInstance, p *Parser) error
	// OnOpen runs when the tag is reached in an enabled scope: with the child
	// scope it pushes if DefinesScope is set, otherwise with the current scope.
	OnOpen func(inst *TagInstance, scope *Scope, p *Parser) error
	// OnClose runs when this tag closes scope (the scope it matched via Closes).
	OnClose func(inst *TagInstance, scope *Scope, p *Parser) error
}

// TagInstance is one parsed occurrence of a tag (§3's "Tag object" runtime
// half): its resolved argument bindings plus a reference back to its class.
type TagInstance struct {
	Class     *TagClass
	Token     *Token
	Remainder string
	Args      map[string]*Value
	Named     map[string]*Value
}

// Arg returns a bound argument value, or Nil if unbound.
func (inst *TagInstance) Arg(name string) *Value {
	if v, ok := inst.Args[name]; ok {
		return v
	}
	return Nil
}

// setArg binds name in the instance's argument map, lazily allocating it.
// Used both by argument-grammar parsing and by a tag's own OnClose hook to
// pass data forward to its OnOpen hook on the same instance (§4.3 — a
// single tag token can both close and open a scope).
func (inst *TagInstance) setArg(name string, v *Value) {
	if inst.Args == nil {
		inst.Args = make(map[string]*Value)
	}
	inst.Args[name] = v
}

// NamedOrDefault returns a named parameter's value, or def if it was not given.
func (inst *TagInstance) NamedOrDefault(name string, def *Value) *Value {
	if v, ok := inst.Named[name]; ok {
		return v
	}
	return def
}

// HasNamed reports whether named parameter name was present at all.
func (inst *TagInstance) HasNamed(name string) bool {
	_, ok := inst.Named[name]
	return ok
}

// TagRegistry is the injected table of tag classes, keyed by keyword (§6
// "Tag interface"). A keyword may carry multiple classes; the parser tries
// each in declaration order and uses the first whose Parse succeeds.
type TagRegistry struct {
	classes map[string][]*TagClass
}

func NewTagRegistry() *TagRegistry {
	return &TagRegistry{classes: make(map[string][]*TagClass)}
}

func (r *TagRegistry) Register(tc *TagClass) {
	r.classes[tc.Keyword] = append(r.classes[tc.Keyword], tc)
}

func (r *TagRegistry) Lookup(keyword string) ([]*TagClass, bool) {
	classes, ok := r.classes[keyword]
	return classes, ok
}

// extractNamedParams peels named parameters off the tail of remainder,
// right-to-left, as long as the trailing whitespace-separated token
// matches one of names either bare ("reversed") or as "name:value" with no
// space around the colon (§4.4's `[limit:n]` style bracketed params). It
// returns the named values found and the remaining front portion of
// remainder for grammar parsing.
func extractNamedParams(remainder string, names []string, ctx *Context) (named map[string]*Value, rest string) {
	named = make(map[string]*Value)
	known := make(map[string]bool, len(names))
	for _, n := range names {
		known[n] = true
	}

	toks := splitWhitespaceTopLevel(remainder)
	end := len(toks)
	for end > 0 {
		tok := toks[end-1]
		key, val, hasVal := tok, "", false
		if idx := strings.IndexByte(tok, ':'); idx >= 0 {
			key, val, hasVal = tok[:idx], tok[idx+1:], true
		}
		if !known[key] {
			break
		}
		if hasVal {
			named[key] = parseLiteralOrVariable(val, ctx)
		} else {
			named[key] = BoolValue(true)
		}
		end--
	}

	rest = strings.Join(toks[:end], " ")
	return named, rest
}
