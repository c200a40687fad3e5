package liquid

// Engine owns the three injected registries (§6 "Tag interface", "Filter
// interface", "Operator interface") that a render is compiled against. Two
// Engines never share mutable registry state unless the caller explicitly
// shares one instance, so concurrent callers each building their own Engine
// never race (§5).
type Engine struct {
	tags      *TagRegistry
	filters   *FilterRegistry
	operators *OperatorRegistry
}

// NewEngine builds an Engine pre-loaded with every built-in control-flow
// tag and comparison operator. Filters are registered separately (the
// filters package is an external collaborator — §2 "Filters") by calling
// RegisterFilter, typically via a generated or hand-written bulk loader.
func NewEngine() *Engine {
	e := &Engine{
		tags:      NewTagRegistry(),
		filters:   NewFilterRegistry(),
		operators: NewOperatorRegistry(),
	}
	RegisterBuiltinTags(e.tags)
	return e
}

// RegisterTag adds or overrides a tag class under its keyword.
func (e *Engine) RegisterTag(tc *TagClass) { e.tags.Register(tc) }

// RegisterFilter adds or overrides a filter function under name.
func (e *Engine) RegisterFilter(name string, fn FilterFunc) { e.filters.Register(name, fn) }

// RegisterOperator adds or overrides an operator function under symbol.
func (e *Engine) RegisterOperator(symbol string, fn OperatorFunc) { e.operators.Register(symbol, fn) }

// Render compiles and renders template against root, returning the
// concatenated output string and the Context the render ran in (so the
// caller can inspect ParseErrors() for soft expression failures).
func (e *Engine) Render(filename, template string, root map[string]*Value) (string, *Context, error) {
	frags, ctx, err := e.RenderFragments(filename, template, root)
	if err != nil {
		return "", ctx, err
	}
	var out string
	for _, f := range frags {
		out += f
	}
	return out, ctx, nil
}

// RenderFragments is Render's lower-level counterpart: it returns the
// renderer's natural pre-join fragment slice, one per processed statement,
// for embedders that want to stream output rather than buffer a whole
// document (§9 "Embedding entry point returning fragments").
func (e *Engine) RenderFragments(filename, template string, root map[string]*Value) ([]string, *Context, error) {
	ctx := NewContext(root)
	tokens := Lex(filename, template)
	scope, err := Parse(filename, tokens, ctx, e.tags, e.filters, e.operators)
	if err != nil {
		return nil, ctx, err
	}
	return scope.render(), ctx, nil
}
