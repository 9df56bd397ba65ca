package vals

import (
	"fmt"
	"strconv"
)

// Repr returns a representation of the value as it would be written in a
// LiteCode expression. Strings are quoted; other values are shown the same
// way as ToString.
func Repr(v any) string {
	switch v := v.(type) {
	case string:
		return strconv.Quote(v)
	case int, float64, bool:
		return ToString(v)
	case nil:
		return "<nil>"
	default:
		return fmt.Sprintf("<unknown %v>", v)
	}
}
