package techconf

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies the type stored in a [Value].
type Kind int

const (
	KindInvalid Kind = iota
	KindString
	KindInt
	KindReal
	KindIntTable
	KindStringTable
	KindSection
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindReal:
		return "real"
	case KindIntTable:
		return "int_table"
	case KindStringTable:
		return "string_table"
	case KindSection:
		return "section"
	default:
		return "invalid"
	}
}

// Value is a single typed configuration entry. The zero Value is invalid.
// Accessors return false when the stored kind does not match.
type Value struct {
	kind    Kind
	str     string
	num     int
	real    float64
	ints    []int
	strs    []string
	section *Section
}

// StringValue returns a string Value.
func StringValue(s string) Value { return Value{kind: KindString, str: s} }

// IntValue returns an int Value.
func IntValue(n int) Value { return Value{kind: KindInt, num: n} }

// RealValue returns a real Value.
func RealValue(f float64) Value { return Value{kind: KindReal, real: f} }

// IntTableValue returns an int table Value holding a copy of ns.
func IntTableValue(ns ...int) Value {
	return Value{kind: KindIntTable, ints: append([]int(nil), ns...)}
}

// StringTableValue returns a string table Value holding a copy of ss.
func StringTableValue(ss ...string) Value {
	return Value{kind: KindStringTable, strs: append([]string(nil), ss...)}
}

func sectionValue(s *Section) Value { return Value{kind: KindSection, section: s} }

// Kind returns the kind of the stored value.
func (v Value) Kind() Kind { return v.kind }

// Str returns the value of a string entry.
func (v Value) Str() (string, bool) {
	return v.str, v.kind == KindString
}

// Int returns the value of an int entry.
func (v Value) Int() (int, bool) {
	return v.num, v.kind == KindInt
}

// Float returns the value of a real entry. Int entries are promoted.
func (v Value) Float() (float64, bool) {
	switch v.kind {
	case KindReal:
		return v.real, true
	case KindInt:
		return float64(v.num), true
	}
	return 0, false
}

// Ints returns a copy of an int table entry.
func (v Value) Ints() ([]int, bool) {
	if v.kind != KindIntTable {
		return nil, false
	}
	return append([]int(nil), v.ints...), true
}

// Strings returns a copy of a string table entry.
func (v Value) Strings() ([]string, bool) {
	if v.kind != KindStringTable {
		return nil, false
	}
	return append([]string(nil), v.strs...), true
}

// Section returns the nested section of a section entry.
func (v Value) Section() (*Section, bool) {
	return v.section, v.kind == KindSection
}

// Format renders the value the way it would appear in a .conf file.
func (v Value) Format() string {
	switch v.kind {
	case KindString:
		return strconv.Quote(v.str)
	case KindInt:
		return strconv.Itoa(v.num)
	case KindReal:
		return strconv.FormatFloat(v.real, 'g', -1, 64)
	case KindIntTable:
		parts := make([]string, len(v.ints))
		for i, n := range v.ints {
			parts[i] = strconv.Itoa(n)
		}
		return strings.Join(parts, " ")
	case KindStringTable:
		parts := make([]string, len(v.strs))
		for i, s := range v.strs {
			parts[i] = strconv.Quote(s)
		}
		return strings.Join(parts, " ")
	case KindSection:
		return fmt.Sprintf("<section %d keys>", v.section.Len())
	}
	return "<invalid>"
}
