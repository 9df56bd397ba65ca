package vals

import "math"

// Num is an Integer or Float value. Booleans are accepted wherever a Num is
// expected and act as 1 and 0.
type Num any

// NumSlice is either []int or []float64.
type NumSlice any

// NumType identifies the type of a Num.
type NumType uint8

// Precedence used for unifying number types.
const (
	IntType NumType = iota
	FloatType
)

// IsNum returns whether v can take part in arithmetic.
func IsNum(v any) bool {
	switch v.(type) {
	case int, float64, bool:
		return true
	}
	return false
}

// UnifyNums converts numbers to the widest of their types, returning []int if
// all of them are Integers (or Booleans), and []float64 otherwise. It panics
// if any argument is not a Num.
func UnifyNums(nums ...Num) NumSlice {
	typ := IntType
	for _, num := range nums {
		if getNumType(num) > typ {
			typ = FloatType
		}
	}
	switch typ {
	case IntType:
		unified := make([]int, len(nums))
		for i, num := range nums {
			unified[i] = toInt(num)
		}
		return unified
	default:
		unified := make([]float64, len(nums))
		for i, num := range nums {
			switch num := num.(type) {
			case float64:
				unified[i] = num
			default:
				unified[i] = float64(toInt(num))
			}
		}
		return unified
	}
}

// ToFloat converts a Num to float64.
func ToFloat(n Num) float64 {
	if f, ok := n.(float64); ok {
		return f
	}
	return float64(toInt(n))
}

// IsIntegral returns whether a float64 has no fractional part and fits in an
// int.
func IsIntegral(f float64) bool {
	return f == math.Trunc(f) && f >= math.MinInt64 && f < math.MaxInt64
}

func getNumType(n Num) NumType {
	switch n.(type) {
	case int, bool:
		return IntType
	case float64:
		return FloatType
	default:
		panic("invalid num type " + goTypeName(n))
	}
}

func toInt(n Num) int {
	switch n := n.(type) {
	case int:
		return n
	case bool:
		if n {
			return 1
		}
		return 0
	default:
		panic("not an int " + goTypeName(n))
	}
}
