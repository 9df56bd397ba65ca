// Package tt supports table-driven tests with little boilerplate.
//
// A test table is a list of cases built with Args and Rets:
//
//	tt.Test(t, tt.Fn("ToString", ToString), tt.Table{
//		tt.Args(1).Rets("1"),
//		tt.Args(0.5).Rets("0.5"),
//	})
package tt

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/google/go-cmp/cmp"
)

// Table represents a test table.
type Table []*Case

// Case represents a test case. It is created by the Args function, and the
// Rets method can be chained onto it.
type Case struct {
	args         []any
	retsMatchers [][]any
}

// Args returns a new Case with the given arguments.
func Args(args ...any) *Case {
	return &Case{args: args}
}

// Rets modifies the test case so that it requires the return values to match
// the given values. It returns the receiver. Arguments implementing Matcher
// are matched by calling Match; other values are compared with cmp.Equal.
func (c *Case) Rets(matchers ...any) *Case {
	c.retsMatchers = append(c.retsMatchers, matchers)
	return c
}

// FnToTest describes a function to test.
type FnToTest struct {
	name    string
	body    any
	argsFmt string
}

// Fn makes a new FnToTest with the given function name and body.
func Fn(name string, body any) *FnToTest {
	return &FnToTest{name: name, body: body}
}

// ArgsFmt sets the string for formatting arguments in test error messages,
// and returns fn itself.
func (fn *FnToTest) ArgsFmt(s string) *FnToTest {
	fn.argsFmt = s
	return fn
}

// T is the subset of testing.TB used by Test.
type T interface {
	Helper()
	Errorf(format string, args ...any)
}

// Test tests a function against test cases.
func Test(t T, fn *FnToTest, tests Table) {
	t.Helper()
	for _, test := range tests {
		rets := call(fn.body, test.args)
		for _, retsMatcher := range test.retsMatchers {
			if match(retsMatcher, rets) {
				continue
			}
			var args string
			if fn.argsFmt == "" {
				args = sprintCommaDelimited(test.args...)
			} else {
				args = fmt.Sprintf(fn.argsFmt, test.args...)
			}
			if hasMatcher(retsMatcher) {
				t.Errorf("%s(%s) -> %s, want %s", fn.name, args,
					sprintRets(rets...), sprintRets(retsMatcher...))
			} else {
				t.Errorf("%s(%s) returns (-want +got):\n%s", fn.name, args,
					cmp.Diff(retsMatcher, rets, cmpOpts))
			}
		}
	}
}

// Return values often carry errors with unexported fields, which cmp refuses
// to look into by default.
var cmpOpts = cmp.Exporter(func(reflect.Type) bool { return true })

// Matcher wraps the Match method.
type Matcher interface {
	// Match reports whether a return value is considered a match.
	Match(any) bool
}

// Any is a Matcher that matches any value.
var Any Matcher = anyMatcher{}

type anyMatcher struct{}

func (anyMatcher) Match(any) bool { return true }
func (anyMatcher) String() string { return "<any>" }

// AnyError is a Matcher that matches any non-nil error.
var AnyError Matcher = anyErrorMatcher{}

type anyErrorMatcher struct{}

func (anyErrorMatcher) Match(v any) bool {
	err, ok := v.(error)
	return ok && err != nil
}
func (anyErrorMatcher) String() string { return "<any error>" }

// ErrorWithMessage returns a Matcher that matches any non-nil error whose
// Error method returns msg.
func ErrorWithMessage(msg string) Matcher { return errorWithMessage(msg) }

type errorWithMessage string

func (m errorWithMessage) Match(v any) bool {
	err, ok := v.(error)
	return ok && err != nil && err.Error() == string(m)
}
func (m errorWithMessage) String() string { return fmt.Sprintf("<error %q>", string(m)) }

func hasMatcher(matchers []any) bool {
	for _, m := range matchers {
		if _, ok := m.(Matcher); ok {
			return true
		}
	}
	return false
}

func match(matchers, actual []any) bool {
	if len(matchers) != len(actual) {
		return false
	}
	for i, matcher := range matchers {
		if m, ok := matcher.(Matcher); ok {
			if !m.Match(actual[i]) {
				return false
			}
		} else if !cmp.Equal(matcher, actual[i], cmpOpts) {
			return false
		}
	}
	return true
}

func sprintRets(rets ...any) string {
	if len(rets) == 1 {
		return fmt.Sprint(rets[0])
	}
	return "(" + sprintCommaDelimited(rets...) + ")"
}

func sprintCommaDelimited(args ...any) string {
	var sb strings.Builder
	for i, arg := range args {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprint(&sb, arg)
	}
	return sb.String()
}

func call(fn any, args []any) []any {
	fnType := reflect.TypeOf(fn)
	argsReflect := make([]reflect.Value, len(args))
	for i, arg := range args {
		if arg == nil {
			// reflect.ValueOf(nil) is the zero Value; use a typed zero
			// instead.
			var t reflect.Type
			if fnType.IsVariadic() && i >= fnType.NumIn()-1 {
				t = fnType.In(fnType.NumIn() - 1).Elem()
			} else {
				t = fnType.In(i)
			}
			argsReflect[i] = reflect.Zero(t)
		} else {
			argsReflect[i] = reflect.ValueOf(arg)
		}
	}
	retsReflect := reflect.ValueOf(fn).Call(argsReflect)
	rets := make([]any, len(retsReflect))
	for i, retReflect := range retsReflect {
		rets[i] = retReflect.Interface()
	}
	return rets
}
