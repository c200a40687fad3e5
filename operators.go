package liquid

import "strings"

// OperatorFunc evaluates a binary operator over two already-resolved
// values, returning (by convention) a Bool Value (§6 "Operator interface").
type OperatorFunc func(lhs, rhs *Value) *Value

// OperatorRegistry is the injected table of comparison/containment
// operators the infix boolean evaluator dispatches through (§6, §9 "Tag
// polymorphism" — composition over inheritance applies equally to
// operators: a flat registry, not a class hierarchy).
type OperatorRegistry struct {
	ops map[string]OperatorFunc
}

// NewOperatorRegistry returns a registry pre-seeded with the seven
// built-in comparison/containment operators (§4.2, §6).
func NewOperatorRegistry() *OperatorRegistry {
	r := &OperatorRegistry{ops: make(map[string]OperatorFunc)}
	r.Register("==", opEqual)
	r.Register("!=", opNotEqual)
	r.Register("<", opLess)
	r.Register("<=", opLessEqual)
	r.Register(">", opGreater)
	r.Register(">=", opGreaterEqual)
	r.Register("contains", opContains)
	return r
}

// Register installs fn under name, overwriting any previous registration —
// this is how an Engine lets an embedder add or replace an operator.
func (r *OperatorRegistry) Register(name string, fn OperatorFunc) {
	r.ops[name] = fn
}

// Lookup returns the operator registered under name, if any.
func (r *OperatorRegistry) Lookup(name string) (OperatorFunc, bool) {
	fn, ok := r.ops[name]
	return fn, ok
}

func opEqual(lhs, rhs *Value) *Value {
	return BoolValue(lhs.Equal(rhs))
}

func opNotEqual(lhs, rhs *Value) *Value {
	return BoolValue(!lhs.Equal(rhs))
}

// compareOrdinal reports the ordering of lhs vs rhs for the numeric and
// string cases §4.2 defines comparisons over; ok is false for any other
// pairing, in which case the comparison yields false rather than erroring.
func compareOrdinal(lhs, rhs *Value) (cmp int, ok bool) {
	if lhs.IsNumber() && rhs.IsNumber() {
		return lhs.AsDecimal().Cmp(rhs.AsDecimal()), true
	}
	if lhs.IsString() && rhs.IsString() {
		return strings.Compare(lhs.strVal, rhs.strVal), true
	}
	return 0, false
}

func opLess(lhs, rhs *Value) *Value {
	cmp, ok := compareOrdinal(lhs, rhs)
	return BoolValue(ok && cmp < 0)
}

func opLessEqual(lhs, rhs *Value) *Value {
	cmp, ok := compareOrdinal(lhs, rhs)
	return BoolValue(ok && cmp <= 0)
}

func opGreater(lhs, rhs *Value) *Value {
	cmp, ok := compareOrdinal(lhs, rhs)
	return BoolValue(ok && cmp > 0)
}

func opGreaterEqual(lhs, rhs *Value) *Value {
	cmp, ok := compareOrdinal(lhs, rhs)
	return BoolValue(ok && cmp >= 0)
}

func opContains(lhs, rhs *Value) *Value {
	return BoolValue(lhs.Contains(rhs))
}
