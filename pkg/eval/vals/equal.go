package vals

// Equal returns whether two values are equal. Numbers compare by value across
// Integer, Float and Boolean; strings compare with strings; values of other
// kinds are never equal.
func Equal(x, y any) bool {
	if IsNum(x) && IsNum(y) {
		switch nums := UnifyNums(x, y).(type) {
		case []int:
			return nums[0] == nums[1]
		case []float64:
			return nums[0] == nums[1]
		}
	}
	if xs, ok := x.(string); ok {
		ys, ok := y.(string)
		return ok && xs == ys
	}
	return false
}
