// Package filters is the built-in filter library: 49 pure value→value
// transforms, specified only via the registration interface they plug
// into (the engine's filter registry). It is an external collaborator to
// the core package, not a core component itself.
package filters

import (
	"encoding/json"
	"fmt"
	"html"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/gotemplates/liquid"
	"github.com/shopspring/decimal"
)

// Register installs every built-in filter into e.
func Register(e *liquid.Engine) {
	// string
	e.RegisterFilter("append", filterAppend)
	e.RegisterFilter("prepend", filterPrepend)
	e.RegisterFilter("capitalize", filterCapitalize)
	e.RegisterFilter("downcase", filterDowncase)
	e.RegisterFilter("upcase", filterUpcase)
	e.RegisterFilter("strip", filterStrip)
	e.RegisterFilter("lstrip", filterLstrip)
	e.RegisterFilter("rstrip", filterRstrip)
	e.RegisterFilter("strip_newlines", filterStripNewlines)
	e.RegisterFilter("newline_to_br", filterNewlineToBr)
	e.RegisterFilter("replace", filterReplace)
	e.RegisterFilter("replace_first", filterReplaceFirst)
	e.RegisterFilter("remove", filterRemove)
	e.RegisterFilter("remove_first", filterRemoveFirst)
	e.RegisterFilter("truncate", filterTruncate)
	e.RegisterFilter("truncatewords", filterTruncatewords)
	e.RegisterFilter("split", filterSplit)
	e.RegisterFilter("strip_html", filterStripHTML)
	e.RegisterFilter("escape", filterEscape)
	e.RegisterFilter("escape_once", filterEscapeOnce)
	e.RegisterFilter("url_encode", filterURLEncode)
	e.RegisterFilter("url_decode", filterURLDecode)
	e.RegisterFilter("slice", filterSlice)

	// numeric
	e.RegisterFilter("abs", filterAbs)
	e.RegisterFilter("plus", filterPlus)
	e.RegisterFilter("minus", filterMinus)
	e.RegisterFilter("times", filterTimes)
	e.RegisterFilter("divided_by", filterDividedBy)
	e.RegisterFilter("modulo", filterModulo)
	e.RegisterFilter("round", filterRound)
	e.RegisterFilter("ceil", filterCeil)
	e.RegisterFilter("floor", filterFloor)
	e.RegisterFilter("at_least", filterAtLeast)
	e.RegisterFilter("at_most", filterAtMost)

	// collections
	e.RegisterFilter("join", filterJoin)
	e.RegisterFilter("first", filterFirst)
	e.RegisterFilter("last", filterLast)
	e.RegisterFilter("size", filterSize)
	e.RegisterFilter("reverse", filterReverse)
	e.RegisterFilter("sort", filterSort)
	e.RegisterFilter("sort_natural", filterSortNatural)
	e.RegisterFilter("uniq", filterUniq)
	e.RegisterFilter("compact", filterCompact)
	e.RegisterFilter("map", filterMap)
	e.RegisterFilter("where", filterWhere)
	e.RegisterFilter("concat", filterConcat)
	e.RegisterFilter("array_to_sentence_string", filterArrayToSentence)

	// misc
	e.RegisterFilter("default", filterDefault)
	e.RegisterFilter("json", filterJSON)
}

func paramsCountHelper(expected int, params []*liquid.Value) error {
	if len(params) < expected {
		return fmt.Errorf("expected at least %d parameter(s), got %d", expected, len(params))
	}
	return nil
}

// --- string -----------------------------------------------------------

func filterAppend(in *liquid.Value, params []*liquid.Value) (*liquid.Value, error) {
	if err := paramsCountHelper(1, params); err != nil {
		return nil, err
	}
	return liquid.StringValue(in.String() + params[0].String()), nil
}

func filterPrepend(in *liquid.Value, params []*liquid.Value) (*liquid.Value, error) {
	if err := paramsCountHelper(1, params); err != nil {
		return nil, err
	}
	return liquid.StringValue(params[0].String() + in.String()), nil
}

func filterCapitalize(in *liquid.Value, _ []*liquid.Value) (*liquid.Value, error) {
	s := in.String()
	if s == "" {
		return liquid.StringValue(s), nil
	}
	r := []rune(s)
	return liquid.StringValue(strings.ToUpper(string(r[0])) + strings.ToLower(string(r[1:]))), nil
}

func filterDowncase(in *liquid.Value, _ []*liquid.Value) (*liquid.Value, error) {
	return liquid.StringValue(strings.ToLower(in.String())), nil
}

func filterUpcase(in *liquid.Value, _ []*liquid.Value) (*liquid.Value, error) {
	return liquid.StringValue(strings.ToUpper(in.String())), nil
}

func filterStrip(in *liquid.Value, _ []*liquid.Value) (*liquid.Value, error) {
	return liquid.StringValue(strings.TrimSpace(in.String())), nil
}

func filterLstrip(in *liquid.Value, _ []*liquid.Value) (*liquid.Value, error) {
	return liquid.StringValue(strings.TrimLeft(in.String(), " \t\r\n")), nil
}

func filterRstrip(in *liquid.Value, _ []*liquid.Value) (*liquid.Value, error) {
	return liquid.StringValue(strings.TrimRight(in.String(), " \t\r\n")), nil
}

func filterStripNewlines(in *liquid.Value, _ []*liquid.Value) (*liquid.Value, error) {
	s := strings.ReplaceAll(in.String(), "\r\n", "")
	s = strings.ReplaceAll(s, "\n", "")
	return liquid.StringValue(s), nil
}

func filterNewlineToBr(in *liquid.Value, _ []*liquid.Value) (*liquid.Value, error) {
	s := strings.ReplaceAll(in.String(), "\r\n", "<br />\n")
	s = strings.ReplaceAll(s, "\n", "<br />\n")
	return liquid.StringValue(s), nil
}

func filterReplace(in *liquid.Value, params []*liquid.Value) (*liquid.Value, error) {
	if err := paramsCountHelper(2, params); err != nil {
		return nil, err
	}
	return liquid.StringValue(strings.ReplaceAll(in.String(), params[0].String(), params[1].String())), nil
}

func filterReplaceFirst(in *liquid.Value, params []*liquid.Value) (*liquid.Value, error) {
	if err := paramsCountHelper(2, params); err != nil {
		return nil, err
	}
	return liquid.StringValue(strings.Replace(in.String(), params[0].String(), params[1].String(), 1)), nil
}

func filterRemove(in *liquid.Value, params []*liquid.Value) (*liquid.Value, error) {
	if err := paramsCountHelper(1, params); err != nil {
		return nil, err
	}
	return liquid.StringValue(strings.ReplaceAll(in.String(), params[0].String(), "")), nil
}

func filterRemoveFirst(in *liquid.Value, params []*liquid.Value) (*liquid.Value, error) {
	if err := paramsCountHelper(1, params); err != nil {
		return nil, err
	}
	return liquid.StringValue(strings.Replace(in.String(), params[0].String(), "", 1)), nil
}

func filterTruncate(in *liquid.Value, params []*liquid.Value) (*liquid.Value, error) {
	if err := paramsCountHelper(1, params); err != nil {
		return nil, err
	}
	n := int(params[0].AsInteger())
	suffix := "..."
	if len(params) > 1 {
		suffix = params[1].String()
	}
	s := in.String()
	r := []rune(s)
	if len(r) <= n {
		return liquid.StringValue(s), nil
	}
	cut := n - len([]rune(suffix))
	if cut < 0 {
		cut = 0
	}
	return liquid.StringValue(string(r[:cut]) + suffix), nil
}

func filterTruncatewords(in *liquid.Value, params []*liquid.Value) (*liquid.Value, error) {
	if err := paramsCountHelper(1, params); err != nil {
		return nil, err
	}
	n := int(params[0].AsInteger())
	suffix := "..."
	if len(params) > 1 {
		suffix = params[1].String()
	}
	words := strings.Fields(in.String())
	if len(words) <= n {
		return liquid.StringValue(in.String()), nil
	}
	if n < 0 {
		n = 0
	}
	return liquid.StringValue(strings.Join(words[:n], " ") + suffix), nil
}

func filterSplit(in *liquid.Value, params []*liquid.Value) (*liquid.Value, error) {
	if err := paramsCountHelper(1, params); err != nil {
		return nil, err
	}
	parts := strings.Split(in.String(), params[0].String())
	items := make([]*liquid.Value, len(parts))
	for i, p := range parts {
		items[i] = liquid.StringValue(p)
	}
	return liquid.ArrayValue(items), nil
}

func filterStripHTML(in *liquid.Value, _ []*liquid.Value) (*liquid.Value, error) {
	s := in.String()
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return liquid.StringValue(b.String()), nil
}

func filterEscape(in *liquid.Value, _ []*liquid.Value) (*liquid.Value, error) {
	return liquid.StringValue(html.EscapeString(in.String())), nil
}

func filterEscapeOnce(in *liquid.Value, _ []*liquid.Value) (*liquid.Value, error) {
	return liquid.StringValue(html.EscapeString(html.UnescapeString(in.String()))), nil
}

func filterURLEncode(in *liquid.Value, _ []*liquid.Value) (*liquid.Value, error) {
	return liquid.StringValue(url.QueryEscape(in.String())), nil
}

func filterURLDecode(in *liquid.Value, _ []*liquid.Value) (*liquid.Value, error) {
	s, err := url.QueryUnescape(in.String())
	if err != nil {
		return nil, err
	}
	return liquid.StringValue(s), nil
}

func filterSlice(in *liquid.Value, params []*liquid.Value) (*liquid.Value, error) {
	if err := paramsCountHelper(1, params); err != nil {
		return nil, err
	}
	r := []rune(in.String())
	start := int(params[0].AsInteger())
	if start < 0 {
		start += len(r)
	}
	length := 1
	if len(params) > 1 {
		length = int(params[1].AsInteger())
	}
	if start < 0 {
		start = 0
	}
	if start > len(r) {
		start = len(r)
	}
	end := start + length
	if end > len(r) {
		end = len(r)
	}
	if end < start {
		end = start
	}
	return liquid.StringValue(string(r[start:end])), nil
}

// --- numeric ------------------------------------------------------------

func filterAbs(in *liquid.Value, _ []*liquid.Value) (*liquid.Value, error) {
	if in.IsInteger() {
		v := in.AsInteger()
		if v < 0 {
			v = -v
		}
		return liquid.IntegerValue(v), nil
	}
	return liquid.DecimalValue(in.AsDecimal().Abs()), nil
}

func filterPlus(in *liquid.Value, params []*liquid.Value) (*liquid.Value, error) {
	if err := paramsCountHelper(1, params); err != nil {
		return nil, err
	}
	if in.IsInteger() && params[0].IsInteger() {
		return liquid.IntegerValue(in.AsInteger() + params[0].AsInteger()), nil
	}
	return liquid.DecimalValue(in.AsDecimal().Add(params[0].AsDecimal())), nil
}

func filterMinus(in *liquid.Value, params []*liquid.Value) (*liquid.Value, error) {
	if err := paramsCountHelper(1, params); err != nil {
		return nil, err
	}
	if in.IsInteger() && params[0].IsInteger() {
		return liquid.IntegerValue(in.AsInteger() - params[0].AsInteger()), nil
	}
	return liquid.DecimalValue(in.AsDecimal().Sub(params[0].AsDecimal())), nil
}

func filterTimes(in *liquid.Value, params []*liquid.Value) (*liquid.Value, error) {
	if err := paramsCountHelper(1, params); err != nil {
		return nil, err
	}
	if in.IsInteger() && params[0].IsInteger() {
		return liquid.IntegerValue(in.AsInteger() * params[0].AsInteger()), nil
	}
	return liquid.DecimalValue(in.AsDecimal().Mul(params[0].AsDecimal())), nil
}

func filterDividedBy(in *liquid.Value, params []*liquid.Value) (*liquid.Value, error) {
	if err := paramsCountHelper(1, params); err != nil {
		return nil, err
	}
	if params[0].AsDecimal().IsZero() {
		return nil, fmt.Errorf("divided_by: division by zero")
	}
	if in.IsInteger() && params[0].IsInteger() {
		a, b := in.AsInteger(), params[0].AsInteger()
		q := a / b
		if (a%b != 0) && ((a < 0) != (b < 0)) {
			q--
		}
		return liquid.IntegerValue(q), nil
	}
	return liquid.DecimalValue(in.AsDecimal().Div(params[0].AsDecimal())), nil
}

func filterModulo(in *liquid.Value, params []*liquid.Value) (*liquid.Value, error) {
	if err := paramsCountHelper(1, params); err != nil {
		return nil, err
	}
	if params[0].AsDecimal().IsZero() {
		return nil, fmt.Errorf("modulo: division by zero")
	}
	if in.IsInteger() && params[0].IsInteger() {
		a, b := in.AsInteger(), params[0].AsInteger()
		m := a % b
		if m != 0 && ((m < 0) != (b < 0)) {
			m += b
		}
		return liquid.IntegerValue(m), nil
	}
	_, rem := in.AsDecimal().QuoRem(params[0].AsDecimal(), 0)
	if rem.IsNegative() != params[0].AsDecimal().IsNegative() && !rem.IsZero() {
		rem = rem.Add(params[0].AsDecimal())
	}
	return liquid.DecimalValue(rem), nil
}

func filterRound(in *liquid.Value, params []*liquid.Value) (*liquid.Value, error) {
	places := int32(0)
	if len(params) > 0 {
		places = int32(params[0].AsInteger())
	}
	d := in.AsDecimal().Round(places)
	if places == 0 {
		return liquid.IntegerValue(d.IntPart()), nil
	}
	return liquid.DecimalValue(d), nil
}

func filterCeil(in *liquid.Value, _ []*liquid.Value) (*liquid.Value, error) {
	return liquid.IntegerValue(in.AsDecimal().Ceil().IntPart()), nil
}

func filterFloor(in *liquid.Value, _ []*liquid.Value) (*liquid.Value, error) {
	return liquid.IntegerValue(in.AsDecimal().Floor().IntPart()), nil
}

func filterAtLeast(in *liquid.Value, params []*liquid.Value) (*liquid.Value, error) {
	if err := paramsCountHelper(1, params); err != nil {
		return nil, err
	}
	if in.AsDecimal().LessThan(params[0].AsDecimal()) {
		return params[0], nil
	}
	return in, nil
}

func filterAtMost(in *liquid.Value, params []*liquid.Value) (*liquid.Value, error) {
	if err := paramsCountHelper(1, params); err != nil {
		return nil, err
	}
	if in.AsDecimal().GreaterThan(params[0].AsDecimal()) {
		return params[0], nil
	}
	return in, nil
}

// --- collections ----------------------------------------------------------

func filterJoin(in *liquid.Value, params []*liquid.Value) (*liquid.Value, error) {
	sep := " "
	if len(params) > 0 {
		sep = params[0].String()
	}
	items := in.AsArray()
	parts := make([]string, len(items))
	for i, v := range items {
		parts[i] = v.String()
	}
	return liquid.StringValue(strings.Join(parts, sep)), nil
}

func filterFirst(in *liquid.Value, _ []*liquid.Value) (*liquid.Value, error) {
	items := in.AsArray()
	if len(items) == 0 {
		return liquid.Nil, nil
	}
	return items[0], nil
}

func filterLast(in *liquid.Value, _ []*liquid.Value) (*liquid.Value, error) {
	items := in.AsArray()
	if len(items) == 0 {
		return liquid.Nil, nil
	}
	return items[len(items)-1], nil
}

func filterSize(in *liquid.Value, _ []*liquid.Value) (*liquid.Value, error) {
	return liquid.IntegerValue(int64(in.Len())), nil
}

func filterReverse(in *liquid.Value, _ []*liquid.Value) (*liquid.Value, error) {
	items := in.AsArray()
	out := make([]*liquid.Value, len(items))
	for i, v := range items {
		out[len(items)-1-i] = v
	}
	return liquid.ArrayValue(out), nil
}

func filterSort(in *liquid.Value, params []*liquid.Value) (*liquid.Value, error) {
	items := append([]*liquid.Value(nil), in.AsArray()...)
	key := ""
	if len(params) > 0 {
		key = params[0].String()
	}
	sort.SliceStable(items, func(i, j int) bool {
		return sortKey(items[i], key) < sortKey(items[j], key)
	})
	return liquid.ArrayValue(items), nil
}

func filterSortNatural(in *liquid.Value, params []*liquid.Value) (*liquid.Value, error) {
	items := append([]*liquid.Value(nil), in.AsArray()...)
	key := ""
	if len(params) > 0 {
		key = params[0].String()
	}
	sort.SliceStable(items, func(i, j int) bool {
		return strings.ToLower(sortKey(items[i], key)) < strings.ToLower(sortKey(items[j], key))
	})
	return liquid.ArrayValue(items), nil
}

func sortKey(v *liquid.Value, field string) string {
	if field == "" {
		return v.String()
	}
	if d := v.Dictionary(); d != nil {
		fv, _ := d.Get(field)
		if fv != nil {
			return fv.String()
		}
	}
	return ""
}

func filterUniq(in *liquid.Value, _ []*liquid.Value) (*liquid.Value, error) {
	items := in.AsArray()
	var out []*liquid.Value
	for _, v := range items {
		dup := false
		for _, seen := range out {
			if seen.Equal(v) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, v)
		}
	}
	return liquid.ArrayValue(out), nil
}

func filterCompact(in *liquid.Value, _ []*liquid.Value) (*liquid.Value, error) {
	var out []*liquid.Value
	for _, v := range in.AsArray() {
		if !v.IsNil() {
			out = append(out, v)
		}
	}
	return liquid.ArrayValue(out), nil
}

func filterMap(in *liquid.Value, params []*liquid.Value) (*liquid.Value, error) {
	if err := paramsCountHelper(1, params); err != nil {
		return nil, err
	}
	field := params[0].String()
	items := in.AsArray()
	out := make([]*liquid.Value, len(items))
	for i, v := range items {
		if d := v.Dictionary(); d != nil {
			fv, ok := d.Get(field)
			if ok {
				out[i] = fv
				continue
			}
		}
		out[i] = liquid.Nil
	}
	return liquid.ArrayValue(out), nil
}

func filterWhere(in *liquid.Value, params []*liquid.Value) (*liquid.Value, error) {
	if err := paramsCountHelper(1, params); err != nil {
		return nil, err
	}
	field := params[0].String()
	var want *liquid.Value
	if len(params) > 1 {
		want = params[1]
	}
	var out []*liquid.Value
	for _, v := range in.AsArray() {
		d := v.Dictionary()
		if d == nil {
			continue
		}
		fv, ok := d.Get(field)
		if !ok {
			continue
		}
		if want == nil {
			if fv.Truthy() {
				out = append(out, v)
			}
		} else if fv.Equal(want) {
			out = append(out, v)
		}
	}
	return liquid.ArrayValue(out), nil
}

func filterConcat(in *liquid.Value, params []*liquid.Value) (*liquid.Value, error) {
	if err := paramsCountHelper(1, params); err != nil {
		return nil, err
	}
	return liquid.ArrayValue(append(append([]*liquid.Value(nil), in.AsArray()...), params[0].AsArray()...)), nil
}

func filterArrayToSentence(in *liquid.Value, params []*liquid.Value) (*liquid.Value, error) {
	conn := "and"
	if len(params) > 0 {
		conn = params[0].String()
	}
	items := in.AsArray()
	parts := make([]string, len(items))
	for i, v := range items {
		parts[i] = v.String()
	}
	switch len(parts) {
	case 0:
		return liquid.StringValue(""), nil
	case 1:
		return liquid.StringValue(parts[0]), nil
	default:
		return liquid.StringValue(strings.Join(parts[:len(parts)-1], ", ") + " " + conn + " " + parts[len(parts)-1]), nil
	}
}

// --- misc -------------------------------------------------------------

func filterDefault(in *liquid.Value, params []*liquid.Value) (*liquid.Value, error) {
	if err := paramsCountHelper(1, params); err != nil {
		return nil, err
	}
	if in.IsNil() || !in.Truthy() {
		return params[0], nil
	}
	return in, nil
}

func filterJSON(in *liquid.Value, _ []*liquid.Value) (*liquid.Value, error) {
	b, err := json.Marshal(valueToJSON(in))
	if err != nil {
		return nil, err
	}
	return liquid.StringValue(string(b)), nil
}

func valueToJSON(v *liquid.Value) any {
	switch {
	case v.IsNil():
		return nil
	case v.IsBool():
		return v.Truthy()
	case v.IsInteger():
		return v.AsInteger()
	case v.IsDecimal():
		f, _ := strconv.ParseFloat(v.AsDecimal().String(), 64)
		return f
	case v.IsArray():
		items := v.AsArray()
		out := make([]any, len(items))
		for i, item := range items {
			out[i] = valueToJSON(item)
		}
		return out
	case v.IsDictionary():
		d := v.Dictionary()
		out := make(map[string]any, d.Len())
		for _, k := range d.Keys() {
			fv, _ := d.Get(k)
			out[k] = valueToJSON(fv)
		}
		return out
	default:
		return v.String()
	}
}
