package table

import (
	"strconv"
	"strings"
)

// Kind identifies the dynamic type held by a Value.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindReal
	KindBool
	KindMissing
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindReal:
		return "real"
	case KindBool:
		return "bool"
	case KindMissing:
		return "missing"
	default:
		return "string"
	}
}

// Value is a single cell of a Table.
type Value struct {
	kind Kind
	s    string
	i    int64
	f    float64
	b    bool
}

func Str(s string) Value { return Value{kind: KindString, s: s} }
func Int(i int64) Value { return Value{kind: KindInt, i: i} }
func Real(f float64) Value { return Value{kind: KindReal, f: f} }
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Missing marks an absent cell. Cleaned tables contain no missing values.
func Missing() Value { return Value{kind: KindMissing} }

func (v Value) Kind() Kind { return v.kind }
func (v Value) IsMissing() bool { return v.kind == KindMissing }
func (v Value) IsEmpty() bool { return v.kind == KindString && v.s == "" }

// Parse infers the narrowest kind for a raw spreadsheet cell: int, then real,
// then bool, falling back to string. Surrounding spaces are ignored for the
// numeric checks but preserved for strings.
func Parse(raw string) Value {
	t := strings.TrimSpace(raw)
	if t == "" {
		return Str(raw)
	}
	if i, err := strconv.ParseInt(t, 10, 64); err == nil {
		return Int(i)
	}
	if f, err := strconv.ParseFloat(t, 64); err == nil {
		return Real(f)
	}
	switch strings.ToLower(t) {
	case "true":
		return Bool(true)
	case "false":
		return Bool(false)
	}
	return Str(raw)
}

// Float returns the numeric form of v. Bools map to 0/1; strings are not numeric.
func (v Value) Float() (float64, bool) {
	switch v.kind {
	case KindInt:
		return float64(v.i), true
	case KindReal:
		return v.f, true
	case KindBool:
		if v.b {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}

func (v Value) String() string {
	switch v.kind {
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindReal:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	default:
		return v.s
	}
}

// Equal reports whether a and b hold the same value. Numeric kinds compare by
// value so Int(1) equals Real(1).
func Equal(a, b Value) bool { return Compare(a, b) == 0 }

// Compare orders values: numerically when both are numeric, numbers before
// strings, and lexicographically otherwise.
func Compare(a, b Value) int {
	af, aok := a.Float()
	bf, bok := b.Float()
	switch {
	case aok && bok:
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		}
		return 0
	case aok:
		return -1
	case bok:
		return 1
	}
	return strings.Compare(a.s, b.s)
}
