// Package eval executes LiteCode statements.
//
// An Evaler holds the variable environment of one run. Lines are fed to it one
// at a time in source order; the first failure ends the run.
package eval

import (
	"fmt"
	"io"
	"strings"

	"src.litecode.dev/pkg/diag"
	"src.litecode.dev/pkg/eval/vals"
	"src.litecode.dev/pkg/expr"
	"src.litecode.dev/pkg/logutil"
	"src.litecode.dev/pkg/parse"
)

var logger = logutil.GetLogger("[eval] ")

// Undefined is the text shown by display statements for arguments that are
// not declared.
const Undefined = "undefined"

// Evaler executes statements against a variable environment.
type Evaler struct {
	Env *Env
	// Destination of display statements.
	Output io.Writer
	// How reassignment expressions resolve variables.
	Substitution Substitution
}

// NewEvaler returns an Evaler with an empty environment, writing display
// output to out.
func NewEvaler(out io.Writer) *Evaler {
	return &Evaler{Env: NewEnv(), Output: out}
}

// Run executes all lines of src in order, stopping at the first failure.
// Interpretation failures are always *Error.
func (ev *Evaler) Run(src parse.Source) error {
	logger.Printf("running %s with %s substitution", src.Name, ev.Substitution)
	for i, line := range src.Lines() {
		if err := ev.Exec(src.Name, i+1, line); err != nil {
			return err
		}
	}
	return nil
}

// Exec executes one line. The name of the source and the 1-based line number
// are used in errors. Blank lines are no-ops.
func (ev *Evaler) Exec(name string, lineNo int, line string) error {
	stmt, err := parse.Parse(name, lineNo, line)
	if err != nil {
		perr := err.(*parse.Error)
		return &Error{
			Kind: UnrecognizedStatement, Line: lineNo, Text: strings.TrimSpace(line),
			Cause: perr, Context: perr.Context}
	}
	if stmt == nil {
		return nil
	}
	return ev.ExecStmt(stmt, diag.Context{Name: name, Line: lineNo, Source: line})
}

// ExecStmt executes a recognized statement. The context identifies the line
// the statement was recognized from; its range is ignored.
func (ev *Evaler) ExecStmt(stmt parse.Stmt, ctx diag.Context) error {
	switch stmt := stmt.(type) {
	case *parse.TypedDecl:
		zero, _ := vals.ZeroValue(stmt.Type)
		logger.Printf("line %d: declare %s as %s", ctx.Line, stmt.Name.Name, stmt.Type)
		ev.Env.Declare(stmt.Name.Name, zero)
	case *parse.LetInit:
		v, err := expr.Evaluate(stmt.Expr.Text, expr.NoVars)
		if err != nil {
			logger.Printf("line %d: initializer of %s kept as text: %v",
				ctx.Line, stmt.Name.Name, err.(*expr.Error).Reason())
			v = stmt.Expr.Text
		}
		ev.Env.Declare(stmt.Name.Name, v)
	case *parse.Assign:
		return ev.assign(stmt, ctx)
	case *parse.Display:
		return ev.display(stmt)
	default:
		panic(fmt.Sprintf("unknown statement type %T", stmt))
	}
	return nil
}

func (ev *Evaler) assign(stmt *parse.Assign, ctx diag.Context) error {
	name := stmt.Name.Name
	text := strings.TrimSpace(ctx.Source)
	if !ev.Env.IsDeclared(name) {
		ctx.Ranging = stmt.Name.Ranging
		return &Error{
			Kind: UndeclaredVariable, Line: ctx.Line, Text: text, Name: name,
			Context: ctx}
	}
	v, err := evalExpr(stmt.Expr.Text, ev.Env, ev.Substitution)
	if err != nil {
		exprErr := err.(*expr.Error)
		ctx.Ranging = stmt.Expr.Ranging
		if ev.Substitution == ExactSubstitution {
			// The expression text is the source text, so the culprit can be
			// pinned down.
			ctx.Ranging = exprErr.Ranging.Shift(stmt.Expr.From)
		}
		return &Error{
			Kind: InvalidExpression, Line: ctx.Line, Text: text, Name: name,
			Expr: exprErr.Expr, Cause: exprErr, Context: ctx}
	}
	logger.Printf("line %d: %s = %s", ctx.Line, name, vals.Repr(v))
	ev.Env.Set(name, v)
	return nil
}

func (ev *Evaler) display(stmt *parse.Display) error {
	texts := make([]string, len(stmt.Args))
	for i, arg := range stmt.Args {
		if v, ok := ev.Env.Get(arg.Name); ok {
			texts[i] = vals.ToString(v)
		} else {
			texts[i] = Undefined
		}
	}
	_, err := fmt.Fprintln(ev.Output, FormatDisplay(stmt.Template, texts))
	return err
}

// EvalExpr evaluates an expression against the environment, the same way the
// right-hand side of a reassignment is evaluated. Failures are *expr.Error.
func (ev *Evaler) EvalExpr(text string) (any, error) {
	return evalExpr(text, ev.Env, ev.Substitution)
}
