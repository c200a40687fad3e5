package liquid

// FilterFunc is the signature every built-in or embedder-registered filter
// implements (§6 "Filter interface"): it receives the accumulated value and
// the filter's parsed argument list, and returns a value or an error. The
// filter bodies themselves are an external collaborator (§1 Out of scope)
// — this package only defines the registry they plug into.
type FilterFunc func(input *Value, params []*Value) (*Value, error)

// FilterRegistry is the injected table the filter-chain evaluator looks
// filter identifiers up in, built once at engine startup and then treated
// as read-only across concurrent renders (§5).
type FilterRegistry struct {
	fns map[string]FilterFunc
}

// NewFilterRegistry returns an empty registry. Built-in filters live in the
// separate `filters` subpackage and are installed via Register/RegisterFilter.
func NewFilterRegistry() *FilterRegistry {
	return &FilterRegistry{fns: make(map[string]FilterFunc)}
}

// Register installs fn under name, overwriting any previous registration.
func (r *FilterRegistry) Register(name string, fn FilterFunc) {
	r.fns[name] = fn
}

// Lookup returns the filter registered under name, if any.
func (r *FilterRegistry) Lookup(name string) (FilterFunc, bool) {
	fn, ok := r.fns[name]
	return fn, ok
}
