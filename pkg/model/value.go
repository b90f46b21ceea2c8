package model

import (
	"math"
	"strconv"
	"strings"
)

// ValueKind tags the variant held by a Value.
type ValueKind int

const (
	ValueNull ValueKind = iota
	ValueString
	ValueNumber
	ValueBool
	ValueList
)

func (k ValueKind) String() string {
	switch k {
	case ValueNull:
		return "null"
	case ValueString:
		return "string"
	case ValueNumber:
		return "number"
	case ValueBool:
		return "bool"
	case ValueList:
		return "list"
	default:
		return "unknown"
	}
}

// Value is a tagged union over the value shapes a form can produce: string,
// number, checkbox boolean, or the rows of a repeater. The zero Value is null.
type Value struct {
	kind ValueKind
	str  string
	num  float64
	b    bool
	list []Record
}

// Null returns the absent value.
func Null() Value { return Value{} }

// String wraps a string value.
func String(s string) Value { return Value{kind: ValueString, str: s} }

// Number wraps a numeric value.
func Number(n float64) Value { return Value{kind: ValueNumber, num: n} }

// Bool wraps a checkbox value.
func Bool(b bool) Value { return Value{kind: ValueBool, b: b} }

// List wraps repeater rows. The slice is copied.
func List(rows ...Record) Value {
	out := make([]Record, len(rows))
	copy(out, rows)
	return Value{kind: ValueList, list: out}
}

// Kind reports the variant held by v.
func (v Value) Kind() ValueKind { return v.kind }

// IsNull reports whether v carries no value.
func (v Value) IsNull() bool { return v.kind == ValueNull }

// Str returns the string payload and whether v is a string.
func (v Value) Str() (string, bool) { return v.str, v.kind == ValueString }

// Num returns the numeric payload and whether v is a number.
func (v Value) Num() (float64, bool) { return v.num, v.kind == ValueNumber }

// Boolean returns the boolean payload and whether v is a bool.
func (v Value) Boolean() (bool, bool) { return v.b, v.kind == ValueBool }

// Rows returns the repeater rows and whether v is a list.
func (v Value) Rows() ([]Record, bool) { return v.list, v.kind == ValueList }

// Text returns the plain string form used for non-numeric substitution.
// Numbers use the shortest representation that round-trips ("5", "2.5"),
// booleans render as "true"/"false", and null and lists render empty.
func (v Value) Text() string {
	switch v.kind {
	case ValueString:
		return v.str
	case ValueNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case ValueBool:
		return strconv.FormatBool(v.b)
	case ValueNull, ValueList:
		return ""
	default:
		return ""
	}
}

// Float coerces v to a number: numbers pass through, strings are parsed as
// floating point and anything that fails to parse becomes 0. Booleans, lists
// and null also coerce to 0, so "abc" and true both yield 0.
func (v Value) Float() float64 {
	switch v.kind {
	case ValueNumber:
		if math.IsNaN(v.num) {
			return 0
		}
		return v.num
	case ValueString:
		return ParseNumber(v.str)
	case ValueNull, ValueBool, ValueList:
		return 0
	default:
		return 0
	}
}

// Truthy reports whether v counts as set for conditional blocks: a non-empty
// string, a non-zero number, true, or a list with at least one row.
func (v Value) Truthy() bool {
	switch v.kind {
	case ValueString:
		return v.str != ""
	case ValueNumber:
		return v.num != 0 && !math.IsNaN(v.num)
	case ValueBool:
		return v.b
	case ValueList:
		return len(v.list) > 0
	case ValueNull:
		return false
	default:
		return false
	}
}

// Empty reports whether v should be treated as unanswered by required-field
// checks. Whitespace-only strings, false checkboxes and row-less lists are
// empty; numbers are never empty, zero included.
func (v Value) Empty() bool {
	switch v.kind {
	case ValueString:
		return strings.TrimSpace(v.str) == ""
	case ValueNumber:
		return false
	case ValueBool:
		return !v.b
	case ValueList:
		return len(v.list) == 0
	case ValueNull:
		return true
	default:
		return true
	}
}

// Interface converts v back into plain Go values suitable for JSON encoding.
func (v Value) Interface() any {
	switch v.kind {
	case ValueString:
		return v.str
	case ValueNumber:
		return v.num
	case ValueBool:
		return v.b
	case ValueList:
		rows := make([]any, 0, len(v.list))
		for _, row := range v.list {
			rows = append(rows, row.Map())
		}
		return rows
	default:
		return nil
	}
}

// ParseNumber reads the leading floating-point literal of s, mirroring the
// lenient parse a browser form applies ("12px" reads as 12). Input without a
// numeric prefix returns 0.
func ParseNumber(s string) float64 {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return 0
	}
	if n, err := strconv.ParseFloat(trimmed, 64); err == nil {
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0
		}
		return n
	}
	end := numericPrefix(trimmed)
	if end == 0 {
		return 0
	}
	n, err := strconv.ParseFloat(trimmed[:end], 64)
	if err != nil {
		return 0
	}
	return n
}

func numericPrefix(s string) int {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		j := i + 1
		frac := 0
		for j < len(s) && s[j] >= '0' && s[j] <= '9' {
			j++
			frac++
		}
		if frac > 0 || digits > 0 {
			i = j
			digits += frac
		}
	}
	if digits == 0 {
		return 0
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		exp := 0
		for j < len(s) && s[j] >= '0' && s[j] <= '9' {
			j++
			exp++
		}
		if exp > 0 {
			i = j
		}
	}
	return i
}
