package liquid

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ValueKind discriminates the variants of the Liquid value tagged union (§3).
type ValueKind int

const (
	KindNil ValueKind = iota
	KindBool
	KindInteger
	KindDecimal
	KindString
	KindArray
	KindDictionary
	KindRange
	// KindEmpty is the sentinel produced by the `empty` literal keyword.
	// It is not itself a collection; it compares equal to any empty
	// Array, Dictionary, or String (§9 Open Questions).
	KindEmpty
)

// Value is the tagged union of all Liquid runtime values: Nil, Bool,
// Integer, Decimal, String, Array, Dictionary, and Range (§3). Exactly one
// of the typed fields is meaningful, selected by Kind; callers should use
// the coercion accessors (AsInteger, AsDecimal, String, ...) rather than
// reaching into the fields directly.
type Value struct {
	Kind ValueKind

	boolVal bool
	intVal  int64
	decVal  decimal.Decimal
	strVal  string
	arrVal  []*Value
	dictVal *Dictionary
	rangeLo int64
	rangeHi int64
}

// Nil is the shared Nil value. Missing variables, failed lookups, and the
// `nil`/`null` literal keywords all resolve to it.
var Nil = &Value{Kind: KindNil}

// Empty is the shared sentinel produced by the `empty` literal keyword.
var Empty = &Value{Kind: KindEmpty}

func BoolValue(b bool) *Value { return &Value{Kind: KindBool, boolVal: b} }

func IntegerValue(i int64) *Value { return &Value{Kind: KindInteger, intVal: i} }

func DecimalValue(d decimal.Decimal) *Value { return &Value{Kind: KindDecimal, decVal: d} }

func StringValue(s string) *Value { return &Value{Kind: KindString, strVal: s} }

func ArrayValue(items []*Value) *Value { return &Value{Kind: KindArray, arrVal: items} }

func DictionaryValue(d *Dictionary) *Value { return &Value{Kind: KindDictionary, dictVal: d} }

func RangeValue(lo, hi int64) *Value { return &Value{Kind: KindRange, rangeLo: lo, rangeHi: hi} }

// FromInterface converts an embedder-supplied Go value (the "tree of
// dynamically-typed values" the context is built from) into a Value. Maps
// become Dictionary in Go's (unspecified, but stable per-call) map
// iteration order — callers that need deterministic key order should
// build the context with a *Dictionary directly instead of a plain map.
func FromInterface(i any) *Value {
	switch v := i.(type) {
	case nil:
		return Nil
	case *Value:
		return v
	case bool:
		return BoolValue(v)
	case int:
		return IntegerValue(int64(v))
	case int8:
		return IntegerValue(int64(v))
	case int16:
		return IntegerValue(int64(v))
	case int32:
		return IntegerValue(int64(v))
	case int64:
		return IntegerValue(v)
	case uint:
		return IntegerValue(int64(v))
	case uint8:
		return IntegerValue(int64(v))
	case uint16:
		return IntegerValue(int64(v))
	case uint32:
		return IntegerValue(int64(v))
	case uint64:
		return IntegerValue(int64(v))
	case float32:
		return DecimalValue(decimal.NewFromFloat32(v))
	case float64:
		return DecimalValue(decimal.NewFromFloat(v))
	case decimal.Decimal:
		return DecimalValue(v)
	case string:
		return StringValue(v)
	case []any:
		items := make([]*Value, len(v))
		for idx, item := range v {
			items[idx] = FromInterface(item)
		}
		return ArrayValue(items)
	case []string:
		items := make([]*Value, len(v))
		for idx, item := range v {
			items[idx] = StringValue(item)
		}
		return ArrayValue(items)
	case []int:
		items := make([]*Value, len(v))
		for idx, item := range v {
			items[idx] = IntegerValue(int64(item))
		}
		return ArrayValue(items)
	case map[string]any:
		d := NewDictionary()
		for k, item := range v {
			d.Set(k, FromInterface(item))
		}
		return DictionaryValue(d)
	case *Dictionary:
		return DictionaryValue(v)
	default:
		log.Warningf("FromInterface: unsupported type %T, treating as nil", i)
		return Nil
	}
}

func (v *Value) IsNil() bool        { return v.Kind == KindNil }
func (v *Value) IsBool() bool       { return v.Kind == KindBool }
func (v *Value) IsInteger() bool    { return v.Kind == KindInteger }
func (v *Value) IsDecimal() bool    { return v.Kind == KindDecimal }
func (v *Value) IsNumber() bool     { return v.Kind == KindInteger || v.Kind == KindDecimal }
func (v *Value) IsString() bool     { return v.Kind == KindString }
func (v *Value) IsArray() bool      { return v.Kind == KindArray }
func (v *Value) IsDictionary() bool { return v.Kind == KindDictionary }
func (v *Value) IsRange() bool      { return v.Kind == KindRange }

// Truthy implements Liquid truthiness (§3, §8 property 2): only Nil and
// Bool(false) are falsy; every other value, including 0, "", and [], is truthy.
func (v *Value) Truthy() bool {
	if v == nil {
		return false
	}
	switch v.Kind {
	case KindNil:
		return false
	case KindBool:
		return v.boolVal
	default:
		return true
	}
}

// AsInteger coerces v to an int64 where that is meaningful.
func (v *Value) AsInteger() int64 {
	switch v.Kind {
	case KindInteger:
		return v.intVal
	case KindDecimal:
		return v.decVal.IntPart()
	case KindString:
		i, err := strconv.ParseInt(strings.TrimSpace(v.strVal), 10, 64)
		if err != nil {
			return 0
		}
		return i
	case KindBool:
		if v.boolVal {
			return 1
		}
		return 0
	default:
		return 0
	}
}

// AsDecimal coerces v to a decimal.Decimal where that is meaningful.
func (v *Value) AsDecimal() decimal.Decimal {
	switch v.Kind {
	case KindDecimal:
		return v.decVal
	case KindInteger:
		return decimal.NewFromInt(v.intVal)
	case KindString:
		d, err := decimal.NewFromString(strings.TrimSpace(v.strVal))
		if err != nil {
			return decimal.Zero
		}
		return d
	default:
		return decimal.Zero
	}
}

// AsDouble coerces v to a float64 view, for callers (e.g. legacy filters)
// that need binary floating point rather than exact decimal arithmetic.
func (v *Value) AsDouble() float64 {
	switch v.Kind {
	case KindInteger:
		return float64(v.intVal)
	case KindDecimal:
		f, _ := v.decVal.Float64()
		return f
	case KindString:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.strVal), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// String renders the string coercion rules in §3: numerics use their
// natural printing, arrays concatenate their elements' String() with no
// separator, ranges print "lo..hi", and Nil/Bool/Dictionary print as "".
func (v *Value) String() string {
	if v == nil {
		return ""
	}
	switch v.Kind {
	case KindString:
		return v.strVal
	case KindInteger:
		return strconv.FormatInt(v.intVal, 10)
	case KindDecimal:
		return v.decVal.String()
	case KindArray:
		var b strings.Builder
		for _, item := range v.arrVal {
			b.WriteString(item.String())
		}
		return b.String()
	case KindRange:
		return fmt.Sprintf("%d..%d", v.rangeLo, v.rangeHi)
	case KindNil, KindBool, KindDictionary, KindEmpty:
		return ""
	default:
		return ""
	}
}

// Len reports the element/character count for the collection-ish kinds.
func (v *Value) Len() int {
	switch v.Kind {
	case KindString:
		return len([]rune(v.strVal))
	case KindArray:
		return len(v.arrVal)
	case KindDictionary:
		return v.dictVal.Len()
	case KindRange:
		if v.rangeHi < v.rangeLo {
			return 0
		}
		return int(v.rangeHi-v.rangeLo) + 1
	default:
		return 0
	}
}

// AsArray materializes v as a slice of Values: Array is returned as-is,
// Range is expanded to its inclusive integer sequence, Nil yields an empty
// slice, and everything else yields a single-element slice (used by
// for-loops over a scalar, which Liquid treats as iterating the one item).
func (v *Value) AsArray() []*Value {
	switch v.Kind {
	case KindArray:
		return v.arrVal
	case KindRange:
		n := v.Len()
		items := make([]*Value, n)
		for i := 0; i < n; i++ {
			items[i] = IntegerValue(v.rangeLo + int64(i))
		}
		return items
	case KindNil:
		return nil
	default:
		return []*Value{v}
	}
}

// Dictionary returns the underlying *Dictionary, or nil if v is not one.
func (v *Value) Dictionary() *Dictionary {
	if v.Kind != KindDictionary {
		return nil
	}
	return v.dictVal
}

// isEmptyCollection reports whether v is an empty string, empty array, or
// empty dictionary — used by the `empty` sentinel's equality rule.
func (v *Value) isEmptyCollection() bool {
	switch v.Kind {
	case KindString:
		return v.strVal == ""
	case KindArray:
		return len(v.arrVal) == 0
	case KindDictionary:
		return v.dictVal.Len() == 0
	default:
		return false
	}
}

// Equal implements structural equality (§3, §8 property 3): identical
// variants compare by value/contents; Integer and Decimal additionally
// compare across kinds by mathematical equality; every other cross-kind
// pairing is unequal. The `empty` sentinel is equal to itself and to any
// empty String/Array/Dictionary.
func (v *Value) Equal(other *Value) bool {
	if v == nil || other == nil {
		return v == other
	}
	if v.Kind == KindEmpty || other.Kind == KindEmpty {
		if v.Kind == KindEmpty && other.Kind == KindEmpty {
			return true
		}
		if v.Kind == KindEmpty {
			return other.isEmptyCollection()
		}
		return v.isEmptyCollection()
	}

	if v.IsNumber() && other.IsNumber() {
		return v.AsDecimal().Equal(other.AsDecimal())
	}

	if v.Kind != other.Kind {
		return false
	}

	switch v.Kind {
	case KindNil:
		return true
	case KindBool:
		return v.boolVal == other.boolVal
	case KindString:
		return v.strVal == other.strVal
	case KindRange:
		return v.rangeLo == other.rangeLo && v.rangeHi == other.rangeHi
	case KindArray:
		if len(v.arrVal) != len(other.arrVal) {
			return false
		}
		for i := range v.arrVal {
			if !v.arrVal[i].Equal(other.arrVal[i]) {
				return false
			}
		}
		return true
	case KindDictionary:
		if v.dictVal.Len() != other.dictVal.Len() {
			return false
		}
		for _, k := range v.dictVal.Keys() {
			vv, _ := v.dictVal.Get(k)
			ov, ok := other.dictVal.Get(k)
			if !ok || !vv.Equal(ov) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Contains implements the `contains` operator's LHS semantics (§4.2):
// array membership by element equality, substring containment for two
// strings, false otherwise.
func (v *Value) Contains(other *Value) bool {
	switch v.Kind {
	case KindArray:
		for _, item := range v.arrVal {
			if item.Equal(other) {
				return true
			}
		}
		return false
	case KindString:
		if other.Kind != KindString {
			return false
		}
		return strings.Contains(v.strVal, other.strVal)
	default:
		return false
	}
}
