// Package parse implements the statement recognizer of LiteCode.
//
// LiteCode has no block structure: every line is recognized on its own as
// one of four statement shapes, tried in a fixed order because the shapes
// overlap. The expressions embedded in statements are kept as text and
// handled by the expr package.
package parse

import (
	"regexp"
	"strings"

	"src.litecode.dev/pkg/diag"
)

// Source describes a piece of LiteCode source.
type Source struct {
	Name string
	Code string
}

// Lines splits the source into lines, without line terminators. A trailing
// newline does not start another line.
func (src Source) Lines() []string {
	code := strings.TrimSuffix(src.Code, "\n")
	if code == "" && src.Code == "" {
		return nil
	}
	lines := strings.Split(code, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// Error is a statement recognition error.
type Error = diag.Error[ErrorTag]

// ErrorTag parameterizes [diag.Error] to define [Error].
type ErrorTag struct{}

func (ErrorTag) ErrorTag() string { return "Syntax Error" }

// Word characters include non-ASCII letters and digits.
const word = `[\p{L}\p{N}_]+`

// The order of these patterns is significant: a line is classified by the
// first one that matches its beginning.
var (
	typedDeclPattern = regexp.MustCompile(`^let\s+(` + word + `)\s+be\s+(a|an)\s+(String|Integer|Float)`)
	letInitPattern   = regexp.MustCompile(`^let\s+(` + word + `)\s+be\s+(.+)`)
	assignPattern    = regexp.MustCompile(`^(` + word + `)\s*=\s*(.+)`)
	displayPattern   = regexp.MustCompile(`^display\s*\(\s*"([^"]*)"\s*(,.*)?\)`)
	argPattern       = regexp.MustCompile(word)
)

// ErrUnrecognized is the message of errors for lines that match no statement
// shape.
const ErrUnrecognized = "unrecognized statement"

// Parse recognizes the statement on one line. It returns nil, nil for a
// blank line. The name and lineNo are only used for error contexts. Ranges
// in the returned statement and error are byte offsets into line.
func Parse(name string, lineNo int, line string) (Stmt, error) {
	text := strings.TrimSpace(line)
	if text == "" {
		return nil, nil
	}
	offset := strings.Index(line, text)
	at := func(m []int, i int) diag.Ranging {
		return diag.Ranging{From: m[2*i], To: m[2*i+1]}.Shift(offset)
	}
	whole := diag.Ranging{From: 0, To: len(text)}.Shift(offset)

	if m := typedDeclPattern.FindStringSubmatchIndex(text); m != nil {
		return &TypedDecl{
			Ranging: whole,
			Name:    Ident{at(m, 1), text[m[2]:m[3]]},
			Type:    text[m[6]:m[7]],
		}, nil
	}
	if m := letInitPattern.FindStringSubmatchIndex(text); m != nil {
		return &LetInit{
			Ranging: whole,
			Name:    Ident{at(m, 1), text[m[2]:m[3]]},
			Expr:    ExprText{at(m, 2), text[m[4]:m[5]]},
		}, nil
	}
	if m := assignPattern.FindStringSubmatchIndex(text); m != nil {
		return &Assign{
			Ranging: whole,
			Name:    Ident{at(m, 1), text[m[2]:m[3]]},
			Expr:    ExprText{at(m, 2), text[m[4]:m[5]]},
		}, nil
	}
	if m := displayPattern.FindStringSubmatchIndex(text); m != nil {
		d := &Display{Ranging: whole, Template: text[m[2]:m[3]], TemplateRange: at(m, 1)}
		if m[4] != -1 {
			argsOffset := m[4]
			for _, am := range argPattern.FindAllStringIndex(text[m[4]:m[5]], -1) {
				d.Args = append(d.Args, Ident{
					diag.Ranging{From: am[0], To: am[1]}.Shift(offset + argsOffset),
					text[argsOffset+am[0] : argsOffset+am[1]]})
			}
		}
		return d, nil
	}
	return nil, &Error{Message: ErrUnrecognized, Context: *diag.NewContext(name, lineNo, line, whole)}
}

// ParseSource recognizes every line of the source. The returned slice has
// one entry per line, nil for blank and unrecognized lines. If any line is
// not recognized, the error contains one *Error per such line; use
// [diag.UnpackErrors] to get them.
func ParseSource(src Source) ([]Stmt, error) {
	lines := src.Lines()
	stmts := make([]Stmt, len(lines))
	var errs []*Error
	for i, line := range lines {
		stmt, err := Parse(src.Name, i+1, line)
		if err != nil {
			errs = append(errs, err.(*Error))
			continue
		}
		stmts[i] = stmt
	}
	return stmts, diag.PackErrors(errs)
}
