package expr

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"src.litecode.dev/pkg/eval/vals"
)

func unaryOp(op string, v any) (any, error) {
	if op == "not" {
		return !vals.Truthy(v), nil
	}
	if !vals.IsNum(v) {
		return nil, fmt.Errorf("bad operand type for unary %s: %s", op, vals.Kind(v))
	}
	switch n := vals.UnifyNums(v).(type) {
	case []int:
		if op == "-" {
			return -n[0], nil
		}
		return n[0], nil
	case []float64:
		if op == "-" {
			return -n[0], nil
		}
		return n[0], nil
	}
	panic("unreachable")
}

func binaryOp(op string, left, right any) (any, error) {
	if vals.IsNum(left) && vals.IsNum(right) {
		return arith(op, left, right)
	}
	ls, lIsString := left.(string)
	rs, rIsString := right.(string)
	switch {
	case op == "+" && lIsString && rIsString:
		return ls + rs, nil
	case op == "*" && lIsString && isIntLike(right):
		return repeat(ls, right)
	case op == "*" && isIntLike(left) && rIsString:
		return repeat(rs, left)
	}
	return nil, unsupported(op, left, right)
}

func isIntLike(v any) bool {
	switch v.(type) {
	case int, bool:
		return true
	}
	return false
}

// MaxStringLen is the length limit of strings built by repetition.
const MaxStringLen = 1 << 24

// ErrStringTooLong is the cause of errors from repeating a string beyond
// MaxStringLen bytes.
var ErrStringTooLong = errors.New("repeated string is too long")

func repeat(s string, n any) (any, error) {
	count := vals.UnifyNums(n).([]int)[0]
	if count <= 0 || s == "" {
		return "", nil
	}
	if count > MaxStringLen/len(s) {
		return nil, ErrStringTooLong
	}
	return strings.Repeat(s, count), nil
}

func unsupported(op string, left, right any) error {
	return fmt.Errorf("unsupported operand types for %s: %s and %s",
		op, vals.Kind(left), vals.Kind(right))
}

func arith(op string, left, right any) (any, error) {
	if op == "/" {
		a, b := vals.ToFloat(left), vals.ToFloat(right)
		if b == 0 {
			return nil, ErrDivisionByZero
		}
		return a / b, nil
	}
	switch nums := vals.UnifyNums(left, right).(type) {
	case []int:
		return intArith(op, nums[0], nums[1])
	case []float64:
		return floatArith(op, nums[0], nums[1])
	}
	panic("unreachable")
}

func intArith(op string, a, b int) (any, error) {
	switch op {
	case "+":
		return a + b, nil
	case "-":
		return a - b, nil
	case "*":
		return a * b, nil
	case "//":
		if b == 0 {
			return nil, ErrDivisionByZero
		}
		return floorDiv(a, b), nil
	case "%":
		if b == 0 {
			return nil, ErrDivisionByZero
		}
		return a - floorDiv(a, b)*b, nil
	case "**":
		if b < 0 {
			if a == 0 {
				return nil, ErrDivisionByZero
			}
			return math.Pow(float64(a), float64(b)), nil
		}
		return intPow(a, b), nil
	}
	return nil, fmt.Errorf("unknown operator %s", op)
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func intPow(base, exp int) int {
	result := 1
	for exp > 0 {
		if exp&1 == 1 {
			result *= base
		}
		base *= base
		exp >>= 1
	}
	return result
}

func floatArith(op string, a, b float64) (any, error) {
	switch op {
	case "+":
		return a + b, nil
	case "-":
		return a - b, nil
	case "*":
		return a * b, nil
	case "//":
		if b == 0 {
			return nil, ErrDivisionByZero
		}
		return math.Floor(a / b), nil
	case "%":
		if b == 0 {
			return nil, ErrDivisionByZero
		}
		r := math.Mod(a, b)
		if r != 0 && (r < 0) != (b < 0) {
			r += b
		}
		return r, nil
	case "**":
		if a == 0 && b < 0 {
			return nil, ErrDivisionByZero
		}
		return math.Pow(a, b), nil
	}
	return nil, fmt.Errorf("unknown operator %s", op)
}

func compareOp(op string, left, right any) (bool, error) {
	switch op {
	case "==":
		return vals.Equal(left, right), nil
	case "!=":
		return !vals.Equal(left, right), nil
	}
	c, err := order(left, right)
	if err != nil {
		return false, fmt.Errorf("%s not supported between %s and %s",
			op, vals.Kind(left), vals.Kind(right))
	} else if c == unordered {
		return false, nil
	}
	switch op {
	case "<":
		return c < 0, nil
	case "<=":
		return c <= 0, nil
	case ">":
		return c > 0, nil
	case ">=":
		return c >= 0, nil
	}
	return false, fmt.Errorf("unknown operator %s", op)
}

var errUnordered = errors.New("values are not ordered")

// Returned by order when either operand is NaN.
const unordered = 2

// Returns -1, 0 or 1, or unordered.
func order(left, right any) (int, error) {
	if vals.IsNum(left) && vals.IsNum(right) {
		switch nums := vals.UnifyNums(left, right).(type) {
		case []int:
			return cmpOrdered(nums[0], nums[1]), nil
		case []float64:
			if math.IsNaN(nums[0]) || math.IsNaN(nums[1]) {
				return unordered, nil
			}
			return cmpOrdered(nums[0], nums[1]), nil
		}
	}
	ls, lok := left.(string)
	rs, rok := right.(string)
	if lok && rok {
		return strings.Compare(ls, rs), nil
	}
	return 0, errUnordered
}

func cmpOrdered[T int | float64](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
