package liquid

import (
	"testing"

	"gopkg.in/check.v1"
)

// Hook up gocheck's suite runner to go test. Regression-style scenarios for previously-diagnosed
// bugs live here as Suite methods rather than table-driven test functions.
func TestGocheck(t *testing.T) { check.TestingT(t) }

type IssuesSuite struct{}

var _ = check.Suite(&IssuesSuite{})

// A for-loop's `else` clause must still see the loop's own parse-time
// `limit`/`offset` narrowing when deciding whether the sequence was empty —
// narrowing to zero items via limit:0 must trigger `else`, not a silent
// empty body.
func (s *IssuesSuite) TestForElseHonorsLimitZero(c *check.C) {
	root := map[string]*Value{"items": ArrayValue([]*Value{IntegerValue(1), IntegerValue(2)})}
	e := NewEngine()
	out, _, err := e.Render("t", "{% for i in items limit:0 %}{{ i }}{% else %}none{% endfor %}", root)
	c.Assert(err, check.IsNil)
	c.Check(out, check.Equals, "none")
}

// A `when` clause's comma-separated values must OR-match rather than
// requiring every value to match (easy off-by-one: treating the list as an
// AND-chain instead of alternatives).
func (s *IssuesSuite) TestWhenCommaValuesOrMatch(c *check.C) {
	e := NewEngine()
	tmpl := `{% case x %}{% when "a", "b" %}hit{% else %}miss{% endcase %}`
	for _, x := range []string{"a", "b"} {
		out, _, err := e.Render("t", tmpl, map[string]*Value{"x": StringValue(x)})
		c.Assert(err, check.IsNil)
		c.Check(out, check.Equals, "hit")
	}
	out, _, err := e.Render("t", tmpl, map[string]*Value{"x": StringValue("c")})
	c.Assert(err, check.IsNil)
	c.Check(out, check.Equals, "miss")
}

// break inside a nested if must stop the *enclosing* for loop, not just
// suppress the if-branch's own output.
func (s *IssuesSuite) TestBreakInNestedIfStopsOuterLoop(c *check.C) {
	root := map[string]*Value{"items": ArrayValue([]*Value{
		IntegerValue(1), IntegerValue(2), IntegerValue(3),
	})}
	e := NewEngine()
	out, _, err := e.Render("t", "{% for i in items %}{% if i == 2 %}{% break %}{% endif %}{{ i }}{% endfor %}", root)
	c.Assert(err, check.IsNil)
	c.Check(out, check.Equals, "1")
}
