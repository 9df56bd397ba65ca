package expr

import (
	"errors"
	"fmt"

	"src.litecode.dev/pkg/diag"
)

// Error is the single kind of failure from parsing or evaluating an
// expression.
type Error struct {
	// Text of the expression that was evaluated.
	Expr string
	// Underlying reason.
	Cause error
	// Position of the culprit within Expr.
	diag.Ranging
}

// Error returns "Invalid expression: " followed by the expression text.
func (e *Error) Error() string { return "Invalid expression: " + e.Expr }

// Unwrap returns the cause.
func (e *Error) Unwrap() error { return e.Cause }

// Reason returns the message of the cause.
func (e *Error) Reason() string {
	if e.Cause == nil {
		return "invalid expression"
	}
	return e.Cause.Error()
}

// ErrDivisionByZero is the cause of errors from dividing by zero.
var ErrDivisionByZero = errors.New("division by zero")

func errorf(r diag.Ranger, format string, args ...any) *Error {
	return &Error{Cause: fmt.Errorf(format, args...), Ranging: r.Range()}
}

func causeAt(r diag.Ranger, cause error) *Error {
	return &Error{Cause: cause, Ranging: r.Range()}
}

// Fills in the expression text. Errors that are not *Error are wrapped, with
// the whole expression as the culprit.
func withExpr(err error, text string) error {
	var e *Error
	if errors.As(err, &e) {
		e.Expr = text
		return e
	}
	return &Error{Expr: text, Cause: err, Ranging: diag.Ranging{From: 0, To: len(text)}}
}
