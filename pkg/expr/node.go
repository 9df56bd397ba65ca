package expr

import "src.litecode.dev/pkg/diag"

// Node is a node in an expression tree.
type Node interface {
	diag.Ranger
	isNode()
}

// Literal is an Integer, Float, String or Boolean literal.
type Literal struct {
	diag.Ranging
	Value any
}

// Name is a reference to a variable.
type Name struct {
	diag.Ranging
	Name string
}

// Call is a call to a builtin function.
type Call struct {
	diag.Ranging
	Func      string
	FuncRange diag.Ranging
	Args      []Node
}

// Unary is a unary operation: "-", "+" or "not".
type Unary struct {
	diag.Ranging
	Op      string
	Operand Node
}

// Binary is an arithmetic operation, or one of the short-circuiting logical
// operations "and" and "or".
type Binary struct {
	diag.Ranging
	Op          string
	Left, Right Node
	OpRange     diag.Ranging
}

// Compare is a possibly chained comparison, such as a < b <= c. There is
// always one more operand than operators.
type Compare struct {
	diag.Ranging
	Ops      []string
	Operands []Node
}

func (*Literal) isNode() {}
func (*Name) isNode()    {}
func (*Call) isNode()    {}
func (*Unary) isNode()   {}
func (*Binary) isNode()  {}
func (*Compare) isNode() {}
