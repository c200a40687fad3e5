package filters_test

import (
	"testing"

	"github.com/gotemplates/liquid"
	"github.com/gotemplates/liquid/filters"
)

func render(t *testing.T, tmpl string, root map[string]*liquid.Value) string {
	t.Helper()
	e := liquid.NewEngine()
	filters.Register(e)
	out, ctx, err := e.Render("test", tmpl, root)
	if err != nil {
		t.Fatalf("render error: %v", err)
	}
	if errs := ctx.ParseErrors(); len(errs) > 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	return out
}

func TestStringFilters(t *testing.T) {
	cases := []struct{ tmpl, want string }{
		{`{{ "abc" | upcase }}`, "ABC"},
		{`{{ "ABC" | downcase }}`, "abc"},
		{`{{ "abc" | append: "def" }}`, "abcdef"},
		{`{{ "abc" | prepend: "def" }}`, "defabc"},
		{`{{ "  abc  " | strip }}`, "abc"},
		{`{{ "hello world" | replace: "world", "liquid" }}`, "hello liquid"},
		{`{{ "hello" | truncate: 3 }}`, "..."},
		{`{{ "one two three" | truncatewords: 2 }}`, "one two..."},
		{`{{ "hello" | slice: 1, 3 }}`, "ell"},
	}
	for _, c := range cases {
		if got := render(t, c.tmpl, nil); got != c.want {
			t.Errorf("%s: got %q want %q", c.tmpl, got, c.want)
		}
	}
}

func TestNumericFilters(t *testing.T) {
	cases := []struct{ tmpl, want string }{
		{`{{ -5 | abs }}`, "5"},
		{`{{ 4 | plus: 2 }}`, "6"},
		{`{{ 10 | minus: 3 }}`, "7"},
		{`{{ 3 | times: 4 }}`, "12"},
		{`{{ 10 | divided_by: 3 }}`, "3"},
		{`{{ 10 | modulo: 3 }}`, "1"},
		{`{{ 1.2 | round }}`, "1"},
		{`{{ 1.2 | ceil }}`, "2"},
		{`{{ 1.8 | floor }}`, "1"},
		{`{{ 3 | at_least: 5 }}`, "5"},
		{`{{ 3 | at_most: 1 }}`, "1"},
	}
	for _, c := range cases {
		if got := render(t, c.tmpl, nil); got != c.want {
			t.Errorf("%s: got %q want %q", c.tmpl, got, c.want)
		}
	}
}

func TestCollectionFilters(t *testing.T) {
	root := map[string]*liquid.Value{
		"nums": liquid.ArrayValue([]*liquid.Value{
			liquid.IntegerValue(3), liquid.IntegerValue(1), liquid.IntegerValue(2),
		}),
	}
	if got := render(t, `{{ nums | sort | join: "," }}`, root); got != "1,2,3" {
		t.Errorf("sort|join: got %q", got)
	}
	if got := render(t, `{{ nums | reverse | join: "," }}`, root); got != "2,1,3" {
		t.Errorf("reverse|join: got %q", got)
	}
	if got := render(t, `{{ nums | first }}`, root); got != "3" {
		t.Errorf("first: got %q", got)
	}
	if got := render(t, `{{ nums | size }}`, root); got != "3" {
		t.Errorf("size: got %q", got)
	}
}

func TestDefaultFilter(t *testing.T) {
	if got := render(t, `{{ nil | default: "fallback" }}`, nil); got != "fallback" {
		t.Errorf("default: got %q", got)
	}
	if got := render(t, `{{ "set" | default: "fallback" }}`, nil); got != "set" {
		t.Errorf("default: got %q", got)
	}
}
