package liquid

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// parseLiteralOrVariable implements the literal parser (§4.2, §6 "Template
// surface"): quoted strings, true/false, nil/null, empty, integers,
// decimals, range literals, and — falling through all of those — a
// dotted/bracketed variable path resolved against ctx.
func parseLiteralOrVariable(tok string, ctx *Context) *Value {
	tok = strings.TrimSpace(tok)
	if tok == "" {
		return Nil
	}

	if len(tok) >= 2 && (tok[0] == '\'' || tok[0] == '"') && tok[len(tok)-1] == tok[0] {
		return StringValue(tok[1 : len(tok)-1])
	}

	switch tok {
	case "true":
		return BoolValue(true)
	case "false":
		return BoolValue(false)
	case "nil", "null":
		return Nil
	case "empty":
		return Empty
	}

	if len(tok) >= 2 && tok[0] == '(' && tok[len(tok)-1] == ')' {
		if lo, hi, ok := parseRangeLiteral(tok[1 : len(tok)-1], ctx); ok {
			return RangeValue(lo, hi)
		}
	}

	if isIntegerLiteral(tok) {
		return IntegerValue(parseIntLiteral(tok))
	}
	if isDecimalLiteral(tok) {
		d, err := decimal.NewFromString(tok)
		if err == nil {
			return DecimalValue(d)
		}
	}

	return resolvePath(tok, ctx)
}

// parseRangeLiteral parses the interior of a `(expr..expr)` range literal.
// Each endpoint is itself a literal-or-variable, coerced to an integer.
func parseRangeLiteral(inner string, ctx *Context) (lo, hi int64, ok bool) {
	idx := strings.Index(inner, "..")
	if idx < 0 {
		return 0, 0, false
	}
	loTok := strings.TrimSpace(inner[:idx])
	hiTok := strings.TrimSpace(inner[idx+2:])
	if loTok == "" || hiTok == "" {
		return 0, 0, false
	}
	loVal := parseLiteralOrVariable(loTok, ctx)
	hiVal := parseLiteralOrVariable(hiTok, ctx)
	return loVal.AsInteger(), hiVal.AsInteger(), true
}

func isIntegerLiteral(s string) bool {
	if s == "" {
		return false
	}
	i := 0
	if s[0] == '-' || s[0] == '+' {
		i = 1
	}
	if i == len(s) {
		return false
	}
	for ; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func isDecimalLiteral(s string) bool {
	if s == "" {
		return false
	}
	i := 0
	if s[0] == '-' || s[0] == '+' {
		i = 1
	}
	digitsBeforeDot := 0
	for ; i < len(s) && s[i] >= '0' && s[i] <= '9'; i++ {
		digitsBeforeDot++
	}
	if i >= len(s) || s[i] != '.' {
		return false
	}
	i++
	digitsAfterDot := 0
	for ; i < len(s) && s[i] >= '0' && s[i] <= '9'; i++ {
		digitsAfterDot++
	}
	return i == len(s) && digitsBeforeDot > 0 && digitsAfterDot > 0
}

func parseIntLiteral(s string) int64 {
	i, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return i
}
