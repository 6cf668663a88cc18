package exprlang

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ValueKind is the tag of a Value's variant, grounded on graft's ValueType
// enum (pkg/graft/value_types.go), narrowed to the closed set spec.md §3
// names for the runtime Value model.
type ValueKind int

const (
	KindNone ValueKind = iota
	KindNumber
	KindBool
	KindString
	KindList
	KindMap
)

func (k ValueKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	default:
		return "unknown"
	}
}

// Pair is one (key, value) entry of a Map, in declared order — spec.md §3
// requires map key ordering to be preserved as declared.
type Pair struct {
	Key   Value
	Value Value
}

// Value is the tagged union every expression evaluates to: spec.md §3's
// Number | Bool | String | List | Map | None. Numbers are exact decimals,
// never binary floats, per spec.md §9's Design Notes.
type Value struct {
	kind ValueKind
	num  decimal.Decimal
	b    bool
	s    string
	list []Value
	m    []Pair
}

// None is the empty value, returned by an empty Chain and by a Setter
// binary operator.
var None = Value{kind: KindNone}

// NumberValue wraps a decimal.Decimal as a Value.
func NumberValue(d decimal.Decimal) Value { return Value{kind: KindNumber, num: d} }

// IntValue is a convenience constructor for small integer literals, used
// pervasively by tests.
func IntValue(i int64) Value { return Value{kind: KindNumber, num: decimal.NewFromInt(i)} }

// BoolValue wraps a bool as a Value.
func BoolValue(b bool) Value { return Value{kind: KindBool, b: b} }

// StringValue wraps a string as a Value.
func StringValue(s string) Value { return Value{kind: KindString, s: s} }

// ListValue wraps an ordered slice of Values as a Value.
func ListValue(items []Value) Value { return Value{kind: KindList, list: items} }

// MapValue wraps an ordered slice of Pairs as a Value.
func MapValue(pairs []Pair) Value { return Value{kind: KindMap, m: pairs} }

// Kind returns the Value's variant tag.
func (v Value) Kind() ValueKind { return v.kind }

// IsNone reports whether v is the None value.
func (v Value) IsNone() bool { return v.kind == KindNone }

// Number returns the underlying decimal and whether v is a Number.
func (v Value) Number() (decimal.Decimal, bool) {
	if v.kind != KindNumber {
		return decimal.Decimal{}, false
	}
	return v.num, true
}

// Bool returns the underlying bool and whether v is a Bool.
func (v Value) Bool() (bool, bool) {
	if v.kind != KindBool {
		return false, false
	}
	return v.b, true
}

// Str returns the underlying string and whether v is a String.
// (Named Str to avoid colliding with fmt.Stringer below.)
func (v Value) Str() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.s, true
}

// List returns the underlying slice and whether v is a List.
func (v Value) List() ([]Value, bool) {
	if v.kind != KindList {
		return nil, false
	}
	return v.list, true
}

// Map returns the underlying pairs and whether v is a Map.
func (v Value) Map() ([]Pair, bool) {
	if v.kind != KindMap {
		return nil, false
	}
	return v.m, true
}

// String renders v for debug/log output (fmt.Stringer). It is not the
// canonical source-text form — AST.Expr() is — it mirrors the informal
// rendering graft's Value.String() (pkg/graft/value_types.go) gives.
func (v Value) String() string {
	switch v.kind {
	case KindNone:
		return "none"
	case KindNumber:
		return v.num.String()
	case KindBool:
		if v.b {
			return "true"
		}
		return "false"
	case KindString:
		return v.s
	case KindList:
		parts := make([]string, len(v.list))
		for i, item := range v.list {
			parts[i] = item.String()
		}
		return "[" + strings.Join(parts, ",") + "]"
	case KindMap:
		parts := make([]string, len(v.m))
		for i, p := range v.m {
			parts[i] = fmt.Sprintf("%s:%s", p.Key.String(), p.Value.String())
		}
		return "{" + strings.Join(parts, ",") + "}"
	default:
		return "<unknown>"
	}
}

// Equal reports deep equality between two Values. Map equality compares
// pairs positionally — spec.md §9 Open Question 3 explicitly does not
// require maps with the same pairs in different orders to compare equal.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNone:
		return true
	case KindNumber:
		return v.num.Equal(other.num)
	case KindBool:
		return v.b == other.b
	case KindString:
		return v.s == other.s
	case KindList:
		if len(v.list) != len(other.list) {
			return false
		}
		for i := range v.list {
			if !v.list[i].Equal(other.list[i]) {
				return false
			}
		}
		return true
	case KindMap:
		if len(v.m) != len(other.m) {
			return false
		}
		for i := range v.m {
			if !v.m[i].Key.Equal(other.m[i].Key) || !v.m[i].Value.Equal(other.m[i].Value) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
