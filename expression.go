package liquid

import "strings"

// Evaluator parses and evaluates the payload of a Variable token or a tag's
// conditional argument (§4.2). It is created once per render (it closes
// over that render's Context) and shares the engine's filter/operator
// registries, which are read-only for the duration of the render (§5).
type Evaluator struct {
	ctx       *Context
	filters   *FilterRegistry
	operators *OperatorRegistry
}

func NewEvaluator(ctx *Context, filters *FilterRegistry, operators *OperatorRegistry) *Evaluator {
	return &Evaluator{ctx: ctx, filters: filters, operators: operators}
}

// EvalExpression evaluates a literal-or-variable head followed by an
// optional pipe-separated filter chain (§4.2 "Filter chain"). Unknown
// filter identifiers abort the chain and return the last good value.
func (e *Evaluator) EvalExpression(payload string) *Value {
	segments := splitTopLevel(payload, '|')
	value := parseLiteralOrVariable(strings.TrimSpace(segments[0]), e.ctx)

	for _, seg := range segments[1:] {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}
		name, argsPart := splitFilterCall(seg)
		var params []*Value
		if argsPart != "" {
			for _, a := range splitTopLevel(argsPart, ',') {
				params = append(params, parseLiteralOrVariable(strings.TrimSpace(a), e.ctx))
			}
		}
		fn, ok := e.filters.Lookup(name)
		if !ok {
			log.Warningf("unknown filter %q, stopping chain", name)
			break
		}
		result, err := fn(value, params)
		if err != nil {
			e.ctx.RecordParseError(err)
			break
		}
		value = result
	}
	return value
}

// splitFilterCall splits "name: arg1, arg2" into its identifier and raw
// argument-list text (possibly empty, for a bare "name").
func splitFilterCall(seg string) (name, args string) {
	idx := strings.Index(seg, ":")
	if idx < 0 {
		return strings.TrimSpace(seg), ""
	}
	return strings.TrimSpace(seg[:idx]), strings.TrimSpace(seg[idx+1:])
}

// EvalCondition evaluates the infix boolean expression used by a variable
// token with no filters and by if/unless/case/when/elsif arguments (§4.2).
// The payload is split into whitespace-separated clauses joined by `and`/
// `or`: each clause is either a bare value (truthiness) or a value-operator-
// value comparison triple — there is no precedence and no parentheses.
// Clauses are combined right to left: `a or b and c` is `a or (b and c)`.
// A clause that is neither shape is malformed and the whole expression
// evaluates to Nil, with a soft error recorded on the context.
func (e *Evaluator) EvalCondition(payload string) *Value {
	toks := splitWhitespaceTopLevel(payload)
	if len(toks) == 0 {
		return Nil
	}

	var clauses [][]string
	var connectors []string
	cur := []string{}
	for _, t := range toks {
		if t == "and" || t == "or" {
			clauses = append(clauses, cur)
			connectors = append(connectors, t)
			cur = nil
			continue
		}
		cur = append(cur, t)
	}
	clauses = append(clauses, cur)

	result, ok := e.evalClause(clauses[len(clauses)-1])
	if !ok {
		return Nil
	}
	for i := len(connectors) - 1; i >= 0; i-- {
		next, ok := e.evalClause(clauses[i])
		if !ok {
			return Nil
		}
		if connectors[i] == "and" {
			result = BoolValue(next.Truthy() && result.Truthy())
		} else {
			result = BoolValue(next.Truthy() || result.Truthy())
		}
	}
	return result
}

func (e *Evaluator) evalClause(tokens []string) (*Value, bool) {
	switch len(tokens) {
	case 1:
		return parseLiteralOrVariable(tokens[0], e.ctx), true
	case 3:
		opFn, found := e.operators.Lookup(tokens[1])
		if !found {
			e.ctx.RecordParseError(newError(UnknownOperator, "expression", "unknown operator %q", tokens[1]))
			return nil, false
		}
		lhs := parseLiteralOrVariable(tokens[0], e.ctx)
		rhs := parseLiteralOrVariable(tokens[2], e.ctx)
		return opFn(lhs, rhs), true
	default:
		e.ctx.RecordParseError(newError(MalformedExpression, "expression", "malformed boolean clause: %q", strings.Join(tokens, " ")))
		return nil, false
	}
}
