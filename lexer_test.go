package liquid

import "testing"

func tokenStrings(toks []*Token) []string {
	out := make([]string, len(toks))
	for i, t := range toks {
		out[i] = t.Kind.String() + ":" + t.Val
	}
	return out
}

func TestLexBasic(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  []string
	}{
		{"plain text", "hello world", []string{"text:hello world"}},
		{"variable", "hi {{ name }}!", []string{"text:hi ", "variable:name", "text:!"}},
		{"tag", "{% if a %}x{% endif %}", []string{"tag:if a", "text:x", "tag:endif"}},
		{"adjacent delimiters", "{{a}}{{b}}", []string{"variable:a", "variable:b"}},
		{"empty text dropped", "{{a}}{{b}}{{c}}", []string{"variable:a", "variable:b", "variable:c"}},
		{"no delimiters", "", nil},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := tokenStrings(Lex("test", c.input))
			if len(got) != len(c.want) {
				t.Fatalf("Lex(%q) = %v, want %v", c.input, got, c.want)
			}
			for i := range got {
				if got[i] != c.want[i] {
					t.Errorf("Lex(%q)[%d] = %q, want %q", c.input, i, got[i], c.want[i])
				}
			}
		})
	}
}

func TestLexUnterminatedCollapses(t *testing.T) {
	toks := Lex("test", "before {{ broken")
	if len(toks) != 2 {
		t.Fatalf("want 2 tokens, got %d: %v", len(toks), tokenStrings(toks))
	}
	if toks[0].Kind != TokenText || toks[0].Val != "before " {
		t.Errorf("tokens[0] = %+v", toks[0])
	}
	if toks[1].Kind != TokenText || toks[1].Val != "" {
		t.Errorf("tokens[1] = %+v, want empty text token", toks[1])
	}
}

func TestLexUnterminatedTagCollapses(t *testing.T) {
	toks := Lex("test", "{% if a")
	if len(toks) != 1 || toks[0].Kind != TokenText || toks[0].Val != "" {
		t.Fatalf("want single empty text token, got %v", tokenStrings(toks))
	}
}

func TestLexRawPassesThroughDelimiters(t *testing.T) {
	toks := Lex("test", "a{% raw %}{{ not a var }}{% endraw %}b")
	want := []string{"text:a", "tag:raw", "text:{{ not a var }}", "text:b"}
	got := tokenStrings(toks)
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Errorf("[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestLexRawNestedNonEndrawTagIsLiteral(t *testing.T) {
	toks := Lex("test", "{% raw %}{% if x %}{% endraw %}")
	want := []string{"tag:raw", "text:{% if x %}"}
	got := tokenStrings(toks)
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Errorf("[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestLexTracksLineAndColumn(t *testing.T) {
	toks := Lex("test", "line one\n{{ v }}")
	if len(toks) != 2 {
		t.Fatalf("got %v", tokenStrings(toks))
	}
	tag := toks[1]
	if tag.Line != 2 {
		t.Errorf("Line = %d, want 2", tag.Line)
	}
	if tag.Col != 1 {
		t.Errorf("Col = %d, want 1", tag.Col)
	}
}
