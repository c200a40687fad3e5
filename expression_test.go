package liquid

import (
	"strings"
	"testing"
)

func newTestEvaluator(root map[string]*Value) (*Evaluator, *Context) {
	ctx := NewContext(root)
	filters := NewFilterRegistry()
	filters.Register("upcase", func(v *Value, params []*Value) (*Value, error) {
		return StringValue(strings.ToUpper(v.String())), nil
	})
	filters.Register("append", func(v *Value, params []*Value) (*Value, error) {
		if len(params) == 0 {
			return v, nil
		}
		return StringValue(v.String() + params[0].String()), nil
	})
	ops := NewOperatorRegistry()
	return NewEvaluator(ctx, filters, ops), ctx
}

func TestEvalExpressionLiterals(t *testing.T) {
	e, _ := newTestEvaluator(nil)
	cases := map[string]string{
		"42":        "42",
		"-3.50":     "-3.5",
		"'hi'":      "hi",
		`"hi there"`: "hi there",
		"true":      "",
		"nil":       "",
	}
	for expr, want := range cases {
		got := e.EvalExpression(expr).String()
		if got != want {
			t.Errorf("EvalExpression(%q) = %q, want %q", expr, got, want)
		}
	}
}

func TestEvalExpressionVariablePath(t *testing.T) {
	users := ArrayValue([]*Value{
		DictionaryValue(func() *Dictionary {
			d := NewDictionary()
			d.Set("name", StringValue("John"))
			d.Set("email", StringValue("john@x"))
			return d
		}()),
		DictionaryValue(func() *Dictionary {
			d := NewDictionary()
			d.Set("name", StringValue("Sarah"))
			d.Set("email", StringValue("sarah@x"))
			return d
		}()),
	})
	e, _ := newTestEvaluator(map[string]*Value{"users": users})
	if got := e.EvalExpression("users[1].email").String(); got != "sarah@x" {
		t.Errorf("users[1].email = %q, want sarah@x", got)
	}
	if got := e.EvalExpression("users.first.name").String(); got != "John" {
		t.Errorf("users.first.name = %q, want John", got)
	}
	if got := e.EvalExpression("users.size").String(); got != "2" {
		t.Errorf("users.size = %q, want 2", got)
	}
}

func TestEvalExpressionFilterChain(t *testing.T) {
	e, _ := newTestEvaluator(map[string]*Value{"name": StringValue("ada")})
	got := e.EvalExpression("name | upcase | append: '!'").String()
	if got != "ADA!" {
		t.Errorf("got %q, want ADA!", got)
	}
}

func TestEvalExpressionUnknownFilterStopsChain(t *testing.T) {
	e, _ := newTestEvaluator(map[string]*Value{"name": StringValue("ada")})
	got := e.EvalExpression("name | bogus | upcase").String()
	if got != "ada" {
		t.Errorf("got %q, want ada (chain should abort at unknown filter)", got)
	}
}

func TestEvalConditionComparison(t *testing.T) {
	e, _ := newTestEvaluator(nil)
	if !e.EvalCondition("650 > 100").Truthy() {
		t.Error("650 > 100 should be truthy")
	}
	if e.EvalCondition("650 < 100").Truthy() {
		t.Error("650 < 100 should be falsy")
	}
}

func TestEvalConditionBooleanConnectors(t *testing.T) {
	e, ctx := newTestEvaluator(nil)
	ctx.Set("a", BoolValue(true))
	ctx.Set("b", BoolValue(false))
	if e.EvalCondition("a and b").Truthy() {
		t.Error("a and b should be falsy")
	}
	if !e.EvalCondition("a or b").Truthy() {
		t.Error("a or b should be truthy")
	}
}

func TestEvalConditionMalformedRecordsError(t *testing.T) {
	e, ctx := newTestEvaluator(nil)
	result := e.EvalCondition("a == b == c")
	if !result.IsNil() {
		t.Errorf("malformed condition should evaluate to Nil, got %v", result)
	}
	if len(ctx.ParseErrors()) == 0 {
		t.Error("expected a parse error to be recorded")
	}
}
