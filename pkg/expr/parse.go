package expr

import (
	"src.litecode.dev/pkg/diag"
)

// Parse parses an expression into a tree. The returned error, if not nil,
// is always an *Error.
func Parse(text string) (Node, error) {
	tokens, err := Lex(text)
	if err != nil {
		return nil, withExpr(err, text)
	}
	ps := &parser{tokens: tokens}
	n, err := ps.expr()
	if err == nil && ps.peek().Type != EOF {
		tok := ps.peek()
		err = errorf(tok, "unexpected %s %q", tok.Type, tok.Text)
	}
	if err != nil {
		return nil, withExpr(err, text)
	}
	return n, nil
}

type parser struct {
	tokens []Token
	pos    int
}

func (ps *parser) peek() Token { return ps.tokens[ps.pos] }

func (ps *parser) next() Token {
	tok := ps.tokens[ps.pos]
	if tok.Type != EOF {
		ps.pos++
	}
	return tok
}

// Reports whether the next token is the given operator or keyword.
func (ps *parser) at(texts ...string) bool {
	tok := ps.peek()
	if tok.Type != Op && tok.Type != Ident {
		return false
	}
	for _, text := range texts {
		if tok.Text == text {
			return true
		}
	}
	return false
}

func (ps *parser) expect(text string) (Token, error) {
	if !ps.at(text) {
		tok := ps.peek()
		if tok.Type == EOF {
			return tok, errorf(tok, "expected %q, got end of expression", text)
		}
		return tok, errorf(tok, "expected %q, got %q", text, tok.Text)
	}
	return ps.next(), nil
}

func (ps *parser) expr() (Node, error) { return ps.or() }

func (ps *parser) or() (Node, error) { return ps.logical("or", ps.and) }

func (ps *parser) and() (Node, error) { return ps.logical("and", ps.not) }

func (ps *parser) logical(op string, operand func() (Node, error)) (Node, error) {
	left, err := operand()
	if err != nil {
		return nil, err
	}
	for ps.at(op) {
		opTok := ps.next()
		right, err := operand()
		if err != nil {
			return nil, err
		}
		left = &Binary{diag.MixedRanging(left, right), op, left, right, opTok.Ranging}
	}
	return left, nil
}

func (ps *parser) not() (Node, error) {
	if ps.at("not") {
		opTok := ps.next()
		operand, err := ps.not()
		if err != nil {
			return nil, err
		}
		return &Unary{diag.MixedRanging(opTok, operand), "not", operand}, nil
	}
	return ps.compare()
}

var compareOps = []string{"<", "<=", ">", ">=", "==", "!="}

func (ps *parser) compare() (Node, error) {
	first, err := ps.sum()
	if err != nil {
		return nil, err
	}
	if !ps.at(compareOps...) {
		return first, nil
	}
	n := &Compare{Operands: []Node{first}}
	for ps.at(compareOps...) {
		n.Ops = append(n.Ops, ps.next().Text)
		operand, err := ps.sum()
		if err != nil {
			return nil, err
		}
		n.Operands = append(n.Operands, operand)
	}
	n.Ranging = diag.MixedRanging(first, n.Operands[len(n.Operands)-1])
	return n, nil
}

func (ps *parser) sum() (Node, error) {
	return ps.binary([]string{"+", "-"}, ps.term)
}

func (ps *parser) term() (Node, error) {
	return ps.binary([]string{"*", "/", "//", "%"}, ps.unary)
}

func (ps *parser) binary(ops []string, operand func() (Node, error)) (Node, error) {
	left, err := operand()
	if err != nil {
		return nil, err
	}
	for ps.at(ops...) {
		opTok := ps.next()
		right, err := operand()
		if err != nil {
			return nil, err
		}
		left = &Binary{diag.MixedRanging(left, right), opTok.Text, left, right, opTok.Ranging}
	}
	return left, nil
}

func (ps *parser) unary() (Node, error) {
	if ps.at("-", "+") {
		opTok := ps.next()
		operand, err := ps.unary()
		if err != nil {
			return nil, err
		}
		return &Unary{diag.MixedRanging(opTok, operand), opTok.Text, operand}, nil
	}
	return ps.power()
}

// "**" binds tighter than unary operators on its left but looser on its
// right, so -2**2 is -(2**2) and 2**-1 is 2**(-1).
func (ps *parser) power() (Node, error) {
	base, err := ps.primary()
	if err != nil {
		return nil, err
	}
	if ps.at("**") {
		opTok := ps.next()
		exp, err := ps.unary()
		if err != nil {
			return nil, err
		}
		return &Binary{diag.MixedRanging(base, exp), "**", base, exp, opTok.Ranging}, nil
	}
	return base, nil
}

var keywords = map[string]bool{"and": true, "or": true, "not": true}

func (ps *parser) primary() (Node, error) {
	tok := ps.next()
	switch tok.Type {
	case IntLit, FloatLit, StringLit:
		return &Literal{tok.Ranging, tok.Value}, nil
	case Ident:
		switch {
		case tok.Text == "True":
			return &Literal{tok.Ranging, true}, nil
		case tok.Text == "False":
			return &Literal{tok.Ranging, false}, nil
		case keywords[tok.Text]:
			return nil, errorf(tok, "unexpected keyword %q", tok.Text)
		case ps.at("("):
			return ps.call(tok)
		}
		return &Name{tok.Ranging, tok.Text}, nil
	case Op:
		if tok.Text == "(" {
			inner, err := ps.expr()
			if err != nil {
				return nil, err
			}
			if _, err := ps.expect(")"); err != nil {
				return nil, err
			}
			return inner, nil
		}
		return nil, errorf(tok, "unexpected %q", tok.Text)
	default:
		return nil, errorf(tok, "unexpected end of expression")
	}
}

func (ps *parser) call(fn Token) (Node, error) {
	ps.next() // (
	n := &Call{Func: fn.Text, FuncRange: fn.Ranging}
	if !ps.at(")") {
		for {
			arg, err := ps.expr()
			if err != nil {
				return nil, err
			}
			n.Args = append(n.Args, arg)
			if !ps.at(",") {
				break
			}
			ps.next()
		}
	}
	closing, err := ps.expect(")")
	if err != nil {
		return nil, err
	}
	n.Ranging = diag.MixedRanging(fn, closing)
	return n, nil
}
