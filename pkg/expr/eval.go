package expr

import (
	"src.litecode.dev/pkg/eval/vals"
)

// Resolver resolves variable names to values.
type Resolver interface {
	Resolve(name string) (any, bool)
}

// NoVars is a Resolver that resolves no names.
var NoVars Resolver = noVars{}

type noVars struct{}

func (noVars) Resolve(string) (any, bool) { return nil, false }

// ResolverFunc adapts a function to a Resolver.
type ResolverFunc func(name string) (any, bool)

// Resolve calls f.
func (f ResolverFunc) Resolve(name string) (any, bool) { return f(name) }

// Evaluate parses and evaluates an expression. Names are resolved with r as
// whole tokens. The returned error, if not nil, is always an *Error with the
// Expr field set to text.
func Evaluate(text string, r Resolver) (any, error) {
	n, err := Parse(text)
	if err != nil {
		return nil, err
	}
	v, err := Eval(n, r)
	if err != nil {
		return nil, withExpr(err, text)
	}
	return v, nil
}

// Eval evaluates an expression tree. The returned error, if not nil, is an
// *Error whose Expr field is empty.
func Eval(n Node, r Resolver) (any, error) {
	if r == nil {
		r = NoVars
	}
	v, err := (&evaler{r}).eval(n)
	if err != nil {
		return nil, err
	}
	return v, nil
}

type evaler struct {
	r Resolver
}

func (ev *evaler) eval(n Node) (any, *Error) {
	switch n := n.(type) {
	case *Literal:
		return n.Value, nil
	case *Name:
		v, ok := ev.r.Resolve(n.Name)
		if !ok {
			return nil, errorf(n, "name %q is not defined", n.Name)
		}
		return v, nil
	case *Call:
		return ev.call(n)
	case *Unary:
		operand, err := ev.eval(n.Operand)
		if err != nil {
			return nil, err
		}
		v, cause := unaryOp(n.Op, operand)
		if cause != nil {
			return nil, causeAt(n, cause)
		}
		return v, nil
	case *Binary:
		return ev.binary(n)
	case *Compare:
		return ev.compare(n)
	default:
		return nil, errorf(n, "unknown node type %T", n)
	}
}

func (ev *evaler) binary(n *Binary) (any, *Error) {
	left, err := ev.eval(n.Left)
	if err != nil {
		return nil, err
	}
	switch n.Op {
	case "and":
		if !vals.Truthy(left) {
			return left, nil
		}
		return ev.eval(n.Right)
	case "or":
		if vals.Truthy(left) {
			return left, nil
		}
		return ev.eval(n.Right)
	}
	right, err := ev.eval(n.Right)
	if err != nil {
		return nil, err
	}
	v, cause := binaryOp(n.Op, left, right)
	if cause != nil {
		return nil, causeAt(n, cause)
	}
	return v, nil
}

func (ev *evaler) compare(n *Compare) (any, *Error) {
	left, err := ev.eval(n.Operands[0])
	if err != nil {
		return nil, err
	}
	for i, op := range n.Ops {
		right, err := ev.eval(n.Operands[i+1])
		if err != nil {
			return nil, err
		}
		ok, cause := compareOp(op, left, right)
		if cause != nil {
			return nil, causeAt(n, cause)
		}
		if !ok {
			return false, nil
		}
		left = right
	}
	return true, nil
}

func (ev *evaler) call(n *Call) (any, *Error) {
	fn, ok := builtins[n.Func]
	if !ok {
		return nil, errorf(n.FuncRange, "name %q is not defined", n.Func)
	}
	args := make([]any, len(n.Args))
	for i, argNode := range n.Args {
		arg, err := ev.eval(argNode)
		if err != nil {
			return nil, err
		}
		args[i] = arg
	}
	v, cause := fn(args)
	if cause != nil {
		return nil, causeAt(n, cause)
	}
	return v, nil
}
