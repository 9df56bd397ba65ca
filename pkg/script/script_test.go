package script_test

import (
	"os"
	"strings"
	"testing"

	"src.litecode.dev/pkg/env"
	"src.litecode.dev/pkg/prog/progtest"
	. "src.litecode.dev/pkg/script"
	"src.litecode.dev/pkg/testutil"
)

var (
	Test         = progtest.Test
	ThatLiteCode = progtest.ThatLiteCode
)

func setup(t *testing.T) string {
	dir := testutil.InTempDir(t)
	testutil.Unsetenv(t, env.LITECODE_CONFIG)
	testutil.Setenv(t, env.XDG_CONFIG_HOME, dir)
	testutil.Setenv(t, env.XDG_STATE_HOME, dir)
	return dir
}

func TestScript(t *testing.T) {
	setup(t)
	testutil.ApplyDir(testutil.Dir{
		"hello.lc": testutil.Dedent(`
			let name be "world"
			let n be an Integer

			n = n + 41 + 1
			display("Hello, (%var1)! (%var2)", name, n)
			`),
		"fail.lc": testutil.Dedent(`
			display("before")
			x = 1
			display("after")
			`),
		"bad-expr.lc": "let x be 1\nx = x +\n",
		"compat.lc":   "let x be 5\nlet y be 0\ny = max(1, 2)\ndisplay(\"(%var1)\", y)\n",
		"latin1.lc":   "display(\"\xe9\")\n",
		"naive.yaml":  "substitution: naive\n",
	})

	Test(t, Program{},
		ThatLiteCode("hello.lc").WritesStdout("Hello, world! 42\n"),
		ThatLiteCode("-e", "hello.lc").WritesStdout("Hello, world! 42\n"),

		ThatLiteCode("fail.lc").
			ExitsWith(1).
			WritesStdout("before\n").
			WritesStderrContaining(
				"Syntax Error: Variable 'x' not declared before assignment, caused at line 2"),
		ThatLiteCode("bad-expr.lc").
			ExitsWith(1).
			WritesStderrContaining("Syntax Error: x = x +, caused at line 2"),

		ThatLiteCode("compat.lc").WritesStdout("2\n"),
		ThatLiteCode("-compat", "compat.lc").
			ExitsWith(1).
			WritesStderrContaining("Syntax Error: y = max(1, 2), caused at line 3"),
		ThatLiteCode("-config", "naive.yaml", "compat.lc").ExitsWith(1),
		ThatLiteCode("-norc", "-config", "naive.yaml", "compat.lc").WritesStdout("2\n"),
		ThatLiteCode("-config", "missing.yaml", "compat.lc").
			ExitsWith(2).
			WritesStderrContaining("Error: config: open missing.yaml"),

		ThatLiteCode("nope.lc").
			ExitsWith(2).
			WritesStderr("Error: File 'nope.lc' not found.\n"),
		ThatLiteCode("latin1.lc").
			ExitsWith(2).
			WritesStderr("Error: cannot read file 'latin1.lc': source is not UTF-8\n"),
		ThatLiteCode("hello.lc", "fail.lc").
			ExitsWith(2).
			WritesStderrContaining("only one file can be run at a time"),
		ThatLiteCode("-e").
			ExitsWith(2).
			WritesStderrContaining("-e requires a file argument"),
	)
}

func TestScript_Stdin(t *testing.T) {
	setup(t)
	Test(t, Program{},
		ThatLiteCode().
			WithStdin("let a be 2\na = a * 21\ndisplay(\"(%var1)\", a)\n").
			WritesStdout("42\n"),
		ThatLiteCode().
			WithStdin("garbage\n").
			ExitsWith(1).
			WritesStderrContaining("[stdin], line 1:"),
	)
}

func TestCompileOnly(t *testing.T) {
	setup(t)
	testutil.ApplyDir(testutil.Dir{
		"ok.lc":      "let a be 1\ndisplay(\"(%var1)\", a)\n",
		"unrec.lc":   "let a be 1\nwhat\nb = 2\nnope\n",
		"runtime.lc": "let a be 1\na = a / 0\n",
	})

	Test(t, Program{},
		ThatLiteCode("-compileonly", "ok.lc").DoesNothing(),
		ThatLiteCode("-compileonly", "ok.lc", "unrec.lc").
			ExitsWith(1).
			WritesStderrContaining("Multiple syntax errors:"),
		ThatLiteCode("-compileonly", "-json", "ok.lc").WritesStdout("[]\n"),
		ThatLiteCode("-compileonly", "-json", "unrec.lc", "runtime.lc").
			ExitsWith(1).
			WritesStdout(`[` +
				`{"fileName":"unrec.lc","line":2,"start":0,"end":4,"message":"unrecognized statement"},` +
				`{"fileName":"unrec.lc","line":4,"start":0,"end":4,"message":"unrecognized statement"},` +
				`{"fileName":"unrec.lc","line":3,"start":0,"end":1,"message":"Syntax Error: Variable 'b' not declared before assignment, caused at line 3"},` +
				`{"fileName":"runtime.lc","line":2,"start":4,"end":9,"message":"Syntax Error: a = a / 0, caused at line 2"}` +
				"]\n"),
		ThatLiteCode("-compileonly", "ok.lc", "missing.lc").
			ExitsWith(2).
			WritesStderr("Error: File 'missing.lc' not found.\n"),
		ThatLiteCode("-compileonly").
			ExitsWith(2).
			WritesStderrContaining("-compileonly requires at least one file"),
	)
}

func TestCompileOnly_OutputIsSilent(t *testing.T) {
	setup(t)
	os.WriteFile("a.lc", []byte(strings.Repeat("display(\"x\")\n", 10)), 0644)
	Test(t, Program{},
		ThatLiteCode("-compileonly", "a.lc").DoesNothing(),
	)
}
