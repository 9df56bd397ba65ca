// Package progtest contains utilities for testing [prog.Program] instances.
//
// Test cases are constructed with ThatLiteCode, which takes the command-line
// arguments, followed by method calls describing the expected effect:
//
//	Test(t, program,
//	    ThatLiteCode("-version").WritesStdout("v0.1.0\n"),
//	    ThatLiteCode("no-such-file").ExitsWith(2))
package progtest

import (
	"io"
	"os"
	"strings"
	"testing"

	"src.litecode.dev/pkg/prog"
)

// Case is a test case for Test.
type Case struct {
	args  []string
	stdin string
	want  result
}

type result struct {
	exitCode int
	stdout   output
	stderr   output
}

type output struct {
	content string
	partial bool
}

func (o output) String() string {
	if o.partial {
		return "text containing " + quote(o.content)
	}
	return quote(o.content)
}

// ThatLiteCode returns a new Case with the specified CLI arguments. The
// program name is supplied automatically.
func ThatLiteCode(args ...string) Case {
	return Case{args: append([]string{"litecode"}, args...)}
}

// WithStdin returns an altered Case that provides the given input on stdin.
func (c Case) WithStdin(s string) Case {
	c.stdin = s
	return c
}

// DoesNothing returns c unchanged. It is used to mark that a piece of code
// should exit with 0 and write nothing.
func (c Case) DoesNothing() Case {
	return c
}

// ExitsWith returns an altered Case that requires the program to return with
// the given exit code.
func (c Case) ExitsWith(code int) Case {
	c.want.exitCode = code
	return c
}

// WritesStdout returns an altered Case that requires the program to write
// exactly the given text to stdout.
func (c Case) WritesStdout(s string) Case {
	c.want.stdout = output{content: s}
	return c
}

// WritesStdoutContaining returns an altered Case that requires the program to
// write output to stdout that contains the given text as a substring.
func (c Case) WritesStdoutContaining(s string) Case {
	c.want.stdout = output{content: s, partial: true}
	return c
}

// WritesStderr returns an altered Case that requires the program to write
// exactly the given text to stderr.
func (c Case) WritesStderr(s string) Case {
	c.want.stderr = output{content: s}
	return c
}

// WritesStderrContaining returns an altered Case that requires the program to
// write output to stderr that contains the given text as a substring.
func (c Case) WritesStderrContaining(s string) Case {
	c.want.stderr = output{content: s, partial: true}
	return c
}

// Test runs test cases against a given program.
func Test(t *testing.T, p prog.Program, cases ...Case) {
	t.Helper()
	for _, c := range cases {
		t.Run(strings.Join(c.args, " "), func(t *testing.T) {
			t.Helper()
			r := run(t, p, c.args, c.stdin)
			if r.exitCode != c.want.exitCode {
				t.Errorf("got exit code %v, want %v", r.exitCode, c.want.exitCode)
			}
			if !matchOutput(r.stdout.content, c.want.stdout) {
				t.Errorf("got stdout %v, want %v", r.stdout, c.want.stdout)
			}
			if !matchOutput(r.stderr.content, c.want.stderr) {
				t.Errorf("got stderr %v, want %v", r.stderr, c.want.stderr)
			}
		})
	}
}

// Run runs a Program with the given arguments. It returns the Program's exit
// code and output to stdout and stderr.
func Run(t *testing.T, p prog.Program, args ...string) (exit int, stdout, stderr string) {
	t.Helper()
	r := run(t, p, append([]string{"litecode"}, args...), "")
	return r.exitCode, r.stdout.content, r.stderr.content
}

func run(t *testing.T, p prog.Program, args []string, stdin string) result {
	t.Helper()
	r0, w0 := pipe(t)
	r1, w1 := pipe(t)
	r2, w2 := pipe(t)
	go func() {
		io.WriteString(w0, stdin)
		w0.Close()
	}()
	stdout := collect(r1)
	stderr := collect(r2)

	exitCode := prog.Run([3]*os.File{r0, w1, w2}, args, p)
	w1.Close()
	w2.Close()
	r0.Close()
	return result{exitCode, output{content: <-stdout}, output{content: <-stderr}}
}

func pipe(t *testing.T) (*os.File, *os.File) {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("create pipe: %v", err)
	}
	t.Cleanup(func() {
		r.Close()
		w.Close()
	})
	return r, w
}

func collect(r io.Reader) <-chan string {
	ch := make(chan string, 1)
	go func() {
		b, _ := io.ReadAll(r)
		ch <- string(b)
	}()
	return ch
}

func matchOutput(got string, want output) bool {
	if want.partial {
		return strings.Contains(got, want.content)
	}
	return got == want.content
}

func quote(s string) string {
	return "`" + strings.ReplaceAll(s, "`", "`+\"`\"+`") + "`"
}
