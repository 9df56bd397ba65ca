package expr

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"src.litecode.dev/pkg/eval/vals"
)

type builtin func(args []any) (any, error)

var builtins map[string]builtin

func init() {
	builtins = map[string]builtin{
		"abs":   abs,
		"float": toFloat,
		"int":   toInt,
		"len":   length,
		"max":   extremum("max", 1),
		"min":   extremum("min", -1),
		"round": round,
		"str":   str,
	}
}

// Builtins returns the names of all builtin functions, sorted.
func Builtins() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func checkArity(name string, args []any, lower, upper int) error {
	if len(args) < lower || len(args) > upper {
		var want string
		switch {
		case lower == upper:
			want = strconv.Itoa(lower)
		case upper == math.MaxInt:
			want = fmt.Sprintf("at least %d", lower)
		default:
			want = fmt.Sprintf("%d to %d", lower, upper)
		}
		return fmt.Errorf("%s() takes %s arguments, got %d", name, want, len(args))
	}
	return nil
}

func abs(args []any) (any, error) {
	if err := checkArity("abs", args, 1, 1); err != nil {
		return nil, err
	}
	switch n := args[0].(type) {
	case int:
		if n < 0 {
			return -n, nil
		}
		return n, nil
	case float64:
		return math.Abs(n), nil
	case bool:
		return vals.UnifyNums(n).([]int)[0], nil
	}
	return nil, fmt.Errorf("bad operand type for abs(): %s", vals.Kind(args[0]))
}

func toFloat(args []any) (any, error) {
	if err := checkArity("float", args, 0, 1); err != nil {
		return nil, err
	}
	if len(args) == 0 {
		return 0.0, nil
	}
	switch v := args[0].(type) {
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil, fmt.Errorf("could not convert string to float: %q", v)
		}
		return f, nil
	default:
		return vals.ToFloat(v), nil
	}
}

func toInt(args []any) (any, error) {
	if err := checkArity("int", args, 0, 1); err != nil {
		return nil, err
	}
	if len(args) == 0 {
		return 0, nil
	}
	switch v := args[0].(type) {
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return nil, fmt.Errorf("invalid literal for int(): %q", v)
		}
		return i, nil
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("cannot convert float %s to integer", vals.ToString(v))
		}
		return int(v), nil
	default:
		return vals.UnifyNums(v).([]int)[0], nil
	}
}

func length(args []any) (any, error) {
	if err := checkArity("len", args, 1, 1); err != nil {
		return nil, err
	}
	s, ok := args[0].(string)
	if !ok {
		return nil, fmt.Errorf("object of kind %s has no len()", vals.Kind(args[0]))
	}
	return utf8.RuneCountInString(s), nil
}

func str(args []any) (any, error) {
	if err := checkArity("str", args, 0, 1); err != nil {
		return nil, err
	}
	if len(args) == 0 {
		return "", nil
	}
	return vals.ToString(args[0]), nil
}

// Returns max when sign is 1 and min when sign is -1. With a single String
// argument, the characters of the string are compared.
func extremum(name string, sign int) builtin {
	return func(args []any) (any, error) {
		if err := checkArity(name, args, 1, math.MaxInt); err != nil {
			return nil, err
		}
		if len(args) == 1 {
			s, ok := args[0].(string)
			if !ok {
				return nil, fmt.Errorf("%s() of a single %s", name, vals.Kind(args[0]))
			}
			if s == "" {
				return nil, fmt.Errorf("%s() of an empty string", name)
			}
			args = nil
			for _, r := range s {
				args = append(args, string(r))
			}
		}
		best := args[0]
		for _, arg := range args[1:] {
			c, err := order(arg, best)
			if err != nil {
				return nil, fmt.Errorf("%s() of %s and %s", name, vals.Kind(arg), vals.Kind(best))
			}
			if c == sign {
				best = arg
			}
		}
		return best, nil
	}
}

var errRoundDigits = errors.New("round() digits must be an Integer")

// Largest n such that 10**n fits in an int.
const maxPow10 = 9 * (strconv.IntSize / 32)

var errRoundRange = errors.New("round() result is out of range")

// Rounds half to even, like the rounding of floats in arithmetic.
func round(args []any) (any, error) {
	if err := checkArity("round", args, 1, 2); err != nil {
		return nil, err
	}
	if !vals.IsNum(args[0]) {
		return nil, fmt.Errorf("bad operand type for round(): %s", vals.Kind(args[0]))
	}
	if len(args) == 1 {
		switch n := args[0].(type) {
		case float64:
			r := math.RoundToEven(n)
			if math.IsNaN(r) || math.IsInf(r, 0) {
				return nil, fmt.Errorf("cannot convert float %s to integer", vals.ToString(n))
			}
			return int(r), nil
		default:
			return vals.UnifyNums(n).([]int)[0], nil
		}
	}
	if !isIntLike(args[1]) {
		return nil, errRoundDigits
	}
	digits := vals.UnifyNums(args[1]).([]int)[0]
	switch n := args[0].(type) {
	case float64:
		scale := math.Pow(10, float64(digits))
		switch {
		case math.IsInf(n, 0) || math.IsNaN(n):
			return n, nil
		case scale == 0:
			return math.Copysign(0, n), nil
		case math.IsInf(scale, 0) || math.IsInf(n*scale, 0):
			// Already more precise than requested.
			return n, nil
		}
		return math.RoundToEven(n*scale) / scale, nil
	default:
		i := vals.UnifyNums(n).([]int)[0]
		if digits >= 0 {
			return i, nil
		}
		if digits < -maxPow10 {
			// The unit does not fit in an int. Only magnitudes above half of
			// the smallest such unit round away from 0, and the result
			// overflows.
			half := 5 * intPow(10, maxPow10)
			if digits == -maxPow10-1 && (i > half || i < -half) {
				return nil, errRoundRange
			}
			return 0, nil
		}
		unit := intPow(10, -digits)
		q := floorDiv(i, unit)
		if r := i - q*unit; 2*r > unit || (2*r == unit && q%2 != 0) {
			q++
		}
		return q * unit, nil
	}
}
