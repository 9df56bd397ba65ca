package eval

import (
	"fmt"

	"src.litecode.dev/pkg/diag"
	"src.litecode.dev/pkg/expr"
)

// ErrorKind distinguishes the ways a statement can fail.
type ErrorKind int

// Kinds of errors.
const (
	// A reassignment targets a name that was never declared.
	UndeclaredVariable ErrorKind = iota + 1
	// The right-hand side of a reassignment cannot be evaluated.
	InvalidExpression
	// The line matches no statement shape.
	UnrecognizedStatement
)

var errorKindNames = map[ErrorKind]string{
	UndeclaredVariable:    "UndeclaredVariable",
	InvalidExpression:     "InvalidExpression",
	UnrecognizedStatement: "UnrecognizedStatement",
}

func (k ErrorKind) String() string {
	if name, ok := errorKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Error is an interpretation failure. All failures of a run are of this
// type, distinguished by Kind.
type Error struct {
	Kind ErrorKind
	// 1-based line number.
	Line int
	// Text of the line with surrounding whitespace removed.
	Text string
	// Target name of a reassignment, for UndeclaredVariable and
	// InvalidExpression.
	Name string
	// The expression text that failed to evaluate, for InvalidExpression. When
	// substitution is naive, this is the text after substitution.
	Expr string
	// An *expr.Error for InvalidExpression, or a *parse.Error for
	// UnrecognizedStatement.
	Cause error
	// Where in the source the error happened.
	Context diag.Context
}

// Error returns the message reported to the user.
func (e *Error) Error() string {
	if e.Kind == UndeclaredVariable {
		return fmt.Sprintf(
			"Syntax Error: Variable '%s' not declared before assignment, caused at line %d",
			e.Name, e.Line)
	}
	return fmt.Sprintf("Syntax Error: %s, caused at line %d", e.Text, e.Line)
}

// Unwrap returns the cause.
func (e *Error) Unwrap() error { return e.Cause }

// Range returns the range of the culprit within the line.
func (e *Error) Range() diag.Ranging { return e.Context.Range() }

// Reason returns a short description of the error, without position
// information.
func (e *Error) Reason() string {
	switch e.Kind {
	case UndeclaredVariable:
		return fmt.Sprintf("variable '%s' not declared before assignment", e.Name)
	case InvalidExpression:
		msg := "invalid expression: " + e.Expr
		if exprErr, ok := e.Cause.(*expr.Error); ok {
			msg += " (" + exprErr.Reason() + ")"
		}
		return msg
	default:
		return "unrecognized statement"
	}
}

// Show shows the message, followed by the line with the culprit highlighted.
func (e *Error) Show(indent string) string {
	return "\033[31;1m" + e.Error() + "\033[m\n" + indent + "  " + e.Context.ShowCompact()
}
