package runtime

import (
	"math"
	"strconv"
	"strings"
)

// FormatNumber renders a float the way scripts observe it: integral values
// keep a trailing ".0", very large or very small magnitudes switch to
// exponent notation.
func FormatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	if f != 0 {
		sci := strconv.FormatFloat(f, 'e', -1, 64)
		exp, _ := strconv.Atoi(sci[strings.IndexByte(sci, 'e')+1:])
		if exp < -4 || exp >= 16 {
			return sci
		}
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}

// Format renders a value as puts prints it.
func Format(v Value) string {
	switch val := v.(type) {
	case nil, NullValue:
		return "null"
	case BoolValue:
		if val.Val {
			return "true"
		}
		return "false"
	case NumberValue:
		return FormatNumber(val.Val)
	case StringValue:
		return val.Val
	default:
		return "<unknown>"
	}
}

// Inspect is like Format but quotes strings, for REPL echo and debug dumps.
func Inspect(v Value) string {
	if s, ok := v.(StringValue); ok {
		return strconv.Quote(s.Val)
	}
	return Format(v)
}
