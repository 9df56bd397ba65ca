// Package evaltest provides a framework for testing LiteCode programs.
//
// The entry point for the framework is the Test function, which accepts a
// *testing.T and any number of test cases.
//
// Test cases are constructed using the That function, followed by method calls
// that add additional information to it.
//
// Example:
//
//	Test(t,
//	    That("let x be 5", `display("(%var1)", x)`).Prints("5\n"),
//	    That("y = 1").FailsWith("Syntax Error: Variable 'y' not declared before assignment, caused at line 1"))
//
// If some setup is needed, use the TestWithSetup function instead.
package evaltest

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"src.litecode.dev/pkg/eval"
	"src.litecode.dev/pkg/parse"
)

// Case is a test case that can be used in Test.
type Case struct {
	codes []string
	setup func(ev *eval.Evaler)
	want  result
}

type result struct {
	Out  []byte
	Vars map[string]any
	Err  *errMatcher // nil for success
}

type errMatcher struct {
	kind    eval.ErrorKind
	message string
}

// That returns a new Case with the specified source code. Multiple arguments
// are joined with newlines. To specify multiple pieces of code that are
// executed separately against the same variables, use the Then method.
func That(lines ...string) Case {
	return Case{codes: []string{strings.Join(lines, "\n")}}
}

// Then returns a new Case that executes the given code in addition. Multiple
// arguments are joined with newlines. Line numbers restart from 1 in each
// piece.
func (c Case) Then(lines ...string) Case {
	c.codes = append(c.codes, strings.Join(lines, "\n"))
	return c
}

// WithSetup returns a new Case with the given setup function executed on the
// Evaler before the code is executed.
func (c Case) WithSetup(f func(*eval.Evaler)) Case {
	c.setup = f
	return c
}

// Naive returns a new Case that runs with naive substitution.
func (c Case) Naive() Case {
	return c.WithSetup(func(ev *eval.Evaler) { ev.Substitution = eval.NaiveSubstitution })
}

// DoesNothing returns c unchanged. It is useful to mark tests that produce no
// output and don't fail.
func (c Case) DoesNothing() Case {
	return c
}

// Prints returns an altered Case that requires the code to produce the given
// display output.
func (c Case) Prints(s string) Case {
	c.want.Out = []byte(s)
	return c
}

// Sets returns an altered Case that requires the variable to hold the given
// value after the run. It can be called multiple times.
func (c Case) Sets(name string, v any) Case {
	vars := make(map[string]any, len(c.want.Vars)+1)
	for k, v := range c.want.Vars {
		vars[k] = v
	}
	vars[name] = v
	c.want.Vars = vars
	return c
}

// Fails returns an altered Case that requires the run to fail with an
// *eval.Error of the given kind.
func (c Case) Fails(kind eval.ErrorKind) Case {
	c.want.Err = &errMatcher{kind: kind}
	return c
}

// FailsWith returns an altered Case that requires the run to fail with an
// error with the given message.
func (c Case) FailsWith(message string) Case {
	c.want.Err = &errMatcher{message: message}
	return c
}

// Test runs test cases. For each test case, a new Evaler is created with
// NewEvaler.
func Test(t *testing.T, tests ...Case) {
	t.Helper()
	TestWithSetup(t, func(*eval.Evaler) {}, tests...)
}

// TestWithSetup runs test cases. For each test case, a new Evaler is created
// with NewEvaler and passed to the setup function.
func TestWithSetup(t *testing.T, setup func(*eval.Evaler), tests ...Case) {
	t.Helper()
	for _, tc := range tests {
		t.Run(strings.Join(tc.codes, "\n"), func(t *testing.T) {
			t.Helper()
			var out bytes.Buffer
			ev := eval.NewEvaler(&out)
			setup(ev)
			if tc.setup != nil {
				tc.setup(ev)
			}

			var err error
			for _, code := range tc.codes {
				err = ev.Run(parse.Source{Name: "[test]", Code: code})
				if err != nil {
					break
				}
			}

			if !bytes.Equal(tc.want.Out, out.Bytes()) {
				t.Errorf("got output %q, want %q", out.Bytes(), tc.want.Out)
			}
			for name, want := range tc.want.Vars {
				got, ok := ev.Env.Get(name)
				if !ok {
					t.Errorf("variable %s not declared", name)
				} else if !cmp.Equal(want, got) {
					t.Errorf("variable %s = %#v, want %#v", name, got, want)
				}
			}
			if !tc.want.Err.match(err) {
				t.Errorf("got error %v, want %v", describeErr(err), tc.want.Err)
			}
		})
	}
}

func (m *errMatcher) match(err error) bool {
	if m == nil {
		return err == nil
	}
	if err == nil {
		return false
	}
	if m.message != "" {
		return err.Error() == m.message
	}
	e, ok := err.(*eval.Error)
	return ok && e.Kind == m.kind
}

func (m *errMatcher) String() string {
	switch {
	case m == nil:
		return "no error"
	case m.message != "":
		return "error with message " + m.message
	default:
		return "error of kind " + m.kind.String()
	}
}

func describeErr(err error) string {
	if e, ok := err.(*eval.Error); ok {
		return e.Kind.String() + ": " + e.Error()
	}
	if err == nil {
		return "no error"
	}
	return err.Error()
}
