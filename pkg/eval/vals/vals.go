// Package vals contains basic facilities for manipulating LiteCode values.
//
// LiteCode values are represented by plain Go values: string (String), int
// (Integer), float64 (Float) and bool (Boolean). Boolean values only arise
// from comparison and logical operators; declarations never produce them.
package vals

// Kind names of values, as used in declarations and diagnostics.
const (
	String  = "String"
	Integer = "Integer"
	Float   = "Float"
	Boolean = "Boolean"
)

// Kind returns the kind of the value. For values that are not LiteCode
// values, it returns the Go type name preceded by "!!".
func Kind(v any) string {
	switch v.(type) {
	case string:
		return String
	case int:
		return Integer
	case float64:
		return Float
	case bool:
		return Boolean
	default:
		return "!!" + goTypeName(v)
	}
}

// ZeroValue returns the value a typed declaration assigns for the given kind
// name, and whether the kind name is one that can be declared.
func ZeroValue(kind string) (any, bool) {
	switch kind {
	case String:
		return "", true
	case Integer:
		return 0, true
	case Float:
		return 0.0, true
	default:
		return nil, false
	}
}

// Truthy returns whether a value counts as true in logical operators. Empty
// strings and numeric zeros are false; everything else is true.
func Truthy(v any) bool {
	switch v := v.(type) {
	case bool:
		return v
	case int:
		return v != 0
	case float64:
		return v != 0
	case string:
		return v != ""
	default:
		return v != nil
	}
}
