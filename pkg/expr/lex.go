package expr

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"src.litecode.dev/pkg/diag"
)

// TokenType identifies the type of a Token.
type TokenType int

// Token types.
const (
	EOF TokenType = iota
	IntLit
	FloatLit
	StringLit
	Ident
	Op
)

var tokenTypeNames = [...]string{
	EOF: "end of expression", IntLit: "integer", FloatLit: "float",
	StringLit: "string", Ident: "identifier", Op: "operator",
}

func (t TokenType) String() string {
	if int(t) < len(tokenTypeNames) {
		return tokenTypeNames[t]
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

// Token is a lexical unit of an expression.
type Token struct {
	Type TokenType
	// Source text of the token.
	Text string
	// Decoded value of literal tokens; nil for other tokens.
	Value any
	diag.Ranging
}

// Operators, longest first so that the lexer can match greedily.
var operators = []string{
	"**", "//", "<=", ">=", "==", "!=",
	"+", "-", "*", "/", "%", "<", ">", "(", ")", ",",
}

// Lex splits an expression into tokens. The last token is always of type EOF.
func Lex(text string) ([]Token, error) {
	lx := &lexer{src: text}
	for {
		tok, err := lx.next()
		if err != nil {
			return nil, err
		}
		lx.tokens = append(lx.tokens, tok)
		if tok.Type == EOF {
			return lx.tokens, nil
		}
	}
}

type lexer struct {
	src    string
	pos    int
	tokens []Token
}

func (lx *lexer) next() (Token, error) {
	for lx.pos < len(lx.src) && isSpace(lx.src[lx.pos]) {
		lx.pos++
	}
	begin := lx.pos
	if begin == len(lx.src) {
		return Token{Type: EOF, Ranging: diag.PointRanging(begin)}, nil
	}

	c := lx.src[begin]
	r, size := utf8.DecodeRuneInString(lx.src[begin:])
	switch {
	case isDigit(c) || (c == '.' && begin+1 < len(lx.src) && isDigit(lx.src[begin+1])):
		return lx.number()
	case c == '"' || c == '\'':
		return lx.string(c)
	case isIdentStart(r):
		lx.skipIdentChars()
		return lx.token(Ident, begin, nil), nil
	}
	for _, op := range operators {
		if strings.HasPrefix(lx.src[begin:], op) {
			lx.pos += len(op)
			return lx.token(Op, begin, nil), nil
		}
	}
	return Token{}, errorf(diag.Ranging{From: begin, To: begin + size},
		"unexpected character %q", r)
}

func (lx *lexer) token(typ TokenType, begin int, value any) Token {
	return Token{typ, lx.src[begin:lx.pos], value, diag.Ranging{From: begin, To: lx.pos}}
}

func (lx *lexer) number() (Token, error) {
	begin := lx.pos
	isFloat := false
	lx.digits()
	if lx.pos < len(lx.src) && lx.src[lx.pos] == '.' {
		isFloat = true
		lx.pos++
		lx.digits()
	}
	if lx.pos < len(lx.src) && (lx.src[lx.pos] == 'e' || lx.src[lx.pos] == 'E') {
		save := lx.pos
		lx.pos++
		if lx.pos < len(lx.src) && (lx.src[lx.pos] == '+' || lx.src[lx.pos] == '-') {
			lx.pos++
		}
		if lx.pos < len(lx.src) && isDigit(lx.src[lx.pos]) {
			isFloat = true
			lx.digits()
		} else {
			lx.pos = save
		}
	}
	if lx.skipIdentChars() {
		return Token{}, errorf(diag.Ranging{From: begin, To: lx.pos},
			"invalid number literal %q", lx.src[begin:lx.pos])
	}

	text := strings.ReplaceAll(lx.src[begin:lx.pos], "_", "")
	if isFloat {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return Token{}, errorf(diag.Ranging{From: begin, To: lx.pos},
				"invalid number literal %q", lx.src[begin:lx.pos])
		}
		return lx.token(FloatLit, begin, f), nil
	}
	i, err := strconv.Atoi(text)
	if err != nil {
		return Token{}, errorf(diag.Ranging{From: begin, To: lx.pos},
			"integer literal %q out of range", lx.src[begin:lx.pos])
	}
	return lx.token(IntLit, begin, i), nil
}

// Consumes a run of digits, allowing single underscores between them.
func (lx *lexer) digits() {
	for lx.pos < len(lx.src) {
		c := lx.src[lx.pos]
		if isDigit(c) {
			lx.pos++
		} else if c == '_' && lx.pos > 0 && isDigit(lx.src[lx.pos-1]) &&
			lx.pos+1 < len(lx.src) && isDigit(lx.src[lx.pos+1]) {
			lx.pos++
		} else {
			return
		}
	}
}

func (lx *lexer) string(quote byte) (Token, error) {
	begin := lx.pos
	lx.pos++
	var sb strings.Builder
	for lx.pos < len(lx.src) {
		c := lx.src[lx.pos]
		switch c {
		case quote:
			lx.pos++
			return lx.token(StringLit, begin, sb.String()), nil
		case '\\':
			if lx.pos+1 == len(lx.src) {
				lx.pos++
				continue
			}
			esc := lx.src[lx.pos+1]
			if r, ok := escapes[esc]; ok {
				sb.WriteByte(r)
			} else {
				// Unknown escapes are kept as is.
				sb.WriteByte('\\')
				sb.WriteByte(esc)
			}
			lx.pos += 2
		default:
			sb.WriteByte(c)
			lx.pos++
		}
	}
	return Token{}, errorf(diag.Ranging{From: begin, To: lx.pos}, "unterminated string literal")
}

var escapes = map[byte]byte{
	'\\': '\\', '\'': '\'', '"': '"', 'n': '\n', 't': '\t', 'r': '\r', '0': 0,
}

func isSpace(c byte) bool { return c == ' ' || c == '\t' || c == '\r' || c == '\n' }
func isDigit(c byte) bool { return '0' <= c && c <= '9' }

func isIdentStart(r rune) bool { return r == '_' || unicode.IsLetter(r) }
func isIdentChar(r rune) bool  { return isIdentStart(r) || unicode.IsDigit(r) }

// Advances past identifier characters, reporting whether there were any.
func (lx *lexer) skipIdentChars() bool {
	begin := lx.pos
	for lx.pos < len(lx.src) {
		r, size := utf8.DecodeRuneInString(lx.src[lx.pos:])
		if !isIdentChar(r) {
			break
		}
		lx.pos += size
	}
	return lx.pos > begin
}
