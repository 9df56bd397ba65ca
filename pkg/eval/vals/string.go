package vals

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ToString converts a value to the text substituted for it in display
// statements and naive expression substitution.
func ToString(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case float64:
		return formatFloat64(v)
	case bool:
		if v {
			return "True"
		}
		return "False"
	case fmt.Stringer:
		return v.String()
	default:
		return Repr(v)
	}
}

// Floats use the shortest representation that round-trips. Integral values
// keep a trailing ".0" so that they are distinguishable from integers, and
// scientific notation kicks in for decimal exponents below -4 or from 16 up.
func formatFloat64(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	sci := strconv.FormatFloat(f, 'e', -1, 64)
	exp, _ := strconv.Atoi(sci[strings.LastIndexByte(sci, 'e')+1:])
	if exp < -4 || exp >= 16 {
		return sci
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}

func goTypeName(v any) string {
	return fmt.Sprintf("%T", v)
}
