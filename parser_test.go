package liquid

import "testing"

func renderStr(t *testing.T, tmpl string, root map[string]*Value) (string, *Context) {
	t.Helper()
	e := NewEngine()
	out, ctx, err := e.Render("test", tmpl, root)
	if err != nil {
		t.Fatalf("render error: %v", err)
	}
	return out, ctx
}

func TestTextPassthrough(t *testing.T) {
	out, _ := renderStr(t, "plain text, no tags", nil)
	if out != "plain text, no tags" {
		t.Errorf("got %q", out)
	}
}

func TestVariableOutput(t *testing.T) {
	root := map[string]*Value{"name": StringValue("world")}
	out, _ := renderStr(t, "hello {{ name }}!", root)
	if out != "hello world!" {
		t.Errorf("got %q", out)
	}
}

func TestIfElsifElse(t *testing.T) {
	tmpl := "{% if a %}A{% elsif b %}B{% else %}C{% endif %}"
	cases := []struct {
		a, b bool
		want string
	}{
		{true, false, "A"},
		{false, true, "B"},
		{false, false, "C"},
	}
	for _, c := range cases {
		root := map[string]*Value{"a": BoolValue(c.a), "b": BoolValue(c.b)}
		out, _ := renderStr(t, tmpl, root)
		if out != c.want {
			t.Errorf("a=%v b=%v: got %q want %q", c.a, c.b, out, c.want)
		}
	}
}

func TestUnless(t *testing.T) {
	out, _ := renderStr(t, "{% unless a %}no{% else %}yes{% endunless %}", map[string]*Value{"a": BoolValue(true)})
	if out != "yes" {
		t.Errorf("got %q", out)
	}
}

func TestCaseWhen(t *testing.T) {
	tmpl := "{% case x %}{% when 1, 2 %}low{% when 3 %}mid{% else %}hi{% endcase %}"
	for _, tc := range []struct {
		x    int64
		want string
	}{{1, "low"}, {2, "low"}, {3, "mid"}, {9, "hi"}} {
		out, _ := renderStr(t, tmpl, map[string]*Value{"x": IntegerValue(tc.x)})
		if out != tc.want {
			t.Errorf("x=%d: got %q want %q", tc.x, out, tc.want)
		}
	}
}

func TestForLoop(t *testing.T) {
	root := map[string]*Value{"items": ArrayValue([]*Value{
		IntegerValue(1), IntegerValue(2), IntegerValue(3),
	})}
	out, _ := renderStr(t, "{% for i in items %}{{ i }}{% endfor %}", root)
	if out != "123" {
		t.Errorf("got %q", out)
	}
}

func TestForElseEmpty(t *testing.T) {
	root := map[string]*Value{"items": ArrayValue(nil)}
	out, _ := renderStr(t, "{% for i in items %}{{ i }}{% else %}empty{% endfor %}", root)
	if out != "empty" {
		t.Errorf("got %q", out)
	}
}

func TestForLimitOffsetReversed(t *testing.T) {
	root := map[string]*Value{"items": ArrayValue([]*Value{
		IntegerValue(1), IntegerValue(2), IntegerValue(3), IntegerValue(4),
	})}
	out, _ := renderStr(t, "{% for i in items limit:2 offset:1 %}{{ i }}{% endfor %}", root)
	if out != "23" {
		t.Errorf("limit/offset: got %q", out)
	}
	out, _ = renderStr(t, "{% for i in items reversed %}{{ i }}{% endfor %}", root)
	if out != "4321" {
		t.Errorf("reversed: got %q", out)
	}
}

func TestForloopObject(t *testing.T) {
	root := map[string]*Value{"items": ArrayValue([]*Value{StringValue("a"), StringValue("b")})}
	out, _ := renderStr(t, "{% for i in items %}{{ forloop.index }}:{{ forloop.first }} {% endfor %}", root)
	if out != "1: 2: " {
		t.Errorf("got %q", out)
	}
}

func TestBreakContinue(t *testing.T) {
	root := map[string]*Value{"items": ArrayValue([]*Value{
		IntegerValue(1), IntegerValue(2), IntegerValue(3), IntegerValue(4),
	})}
	out, _ := renderStr(t, "{% for i in items %}{% if i == 3 %}{% break %}{% endif %}{{ i }}{% endfor %}", root)
	if out != "12" {
		t.Errorf("break: got %q", out)
	}
	out, _ = renderStr(t, "{% for i in items %}{% if i == 2 %}{% continue %}{% endif %}{{ i }}{% endfor %}", root)
	if out != "134" {
		t.Errorf("continue: got %q", out)
	}
}

func TestTablerow(t *testing.T) {
	root := map[string]*Value{"items": ArrayValue([]*Value{
		IntegerValue(1), IntegerValue(2), IntegerValue(3),
	})}
	out, _ := renderStr(t, `{% tablerow i in items cols:2 %}{{ i }}{% endtablerow %}`, root)
	want := `<tr class="row1"><td class="col1">1</td><td class="col2">2</td></tr><tr class="row2"><td class="col1">3</td></tr>`
	if out != want {
		t.Errorf("got %q want %q", out, want)
	}
}

func TestAssign(t *testing.T) {
	out, _ := renderStr(t, `{% assign x = 1 %}{{ x }}`, nil)
	if out != "1" {
		t.Errorf("got %q", out)
	}
}

func TestCapture(t *testing.T) {
	out, _ := renderStr(t, `{% capture greeting %}hello {{ "world" }}{% endcapture %}{{ greeting }}!`, nil)
	if out != "hello world!" {
		t.Errorf("got %q", out)
	}
}

func TestIncrementDecrement(t *testing.T) {
	out, _ := renderStr(t, `{% increment abc %}{% increment abc %}`, nil)
	if out != "01" {
		t.Errorf("increment: got %q", out)
	}
	out, _ = renderStr(t, `{% decrement abc %}{% decrement abc %}`, nil)
	if out != "-1-2" {
		t.Errorf("decrement: got %q", out)
	}
}

func TestCycle(t *testing.T) {
	out, _ := renderStr(t, `{% cycle "a", "b" %}{% cycle "a", "b" %}{% cycle "a", "b" %}`, nil)
	if out != "aba" {
		t.Errorf("got %q", out)
	}
}

func TestCycleGroup(t *testing.T) {
	out, _ := renderStr(t, `{% cycle group: "a", "b" %}{% cycle group: "a", "b" %}`, nil)
	if out != "ab" {
		t.Errorf("got %q", out)
	}
}

func TestCommentSuppressesBody(t *testing.T) {
	out, _ := renderStr(t, `a{% comment %}{% if true %}x{% endif %}{% endcomment %}b`, nil)
	if out != "ab" {
		t.Errorf("got %q", out)
	}
}

func TestRawPassesDelimitersThrough(t *testing.T) {
	out, _ := renderStr(t, `{% raw %}{{ not evaluated }}{% endraw %}`, nil)
	if out != "{{ not evaluated }}" {
		t.Errorf("got %q", out)
	}
}

func TestParseErrorsAccumulate(t *testing.T) {
	_, ctx := renderStr(t, `{{ a b c d }}`, nil)
	if len(ctx.ParseErrors()) == 0 {
		t.Errorf("expected a soft parse error to be recorded")
	}
}

func TestNestedForInIf(t *testing.T) {
	root := map[string]*Value{
		"show":  BoolValue(false),
		"items": ArrayValue([]*Value{IntegerValue(1), IntegerValue(2)}),
	}
	out, _ := renderStr(t, `{% if show %}{% for i in items %}{{ i }}{% endfor %}{% endif %}`, root)
	if out != "" {
		t.Errorf("disabled ancestor should suppress nested iteration output, got %q", out)
	}
}
