package eval

import (
	"testing"

	"src.litecode.dev/pkg/diag"
	"src.litecode.dev/pkg/parse"
)

func TestCheck(t *testing.T) {
	src := parse.Source{Name: "a.lc", Code: "let a be 1\nhuh\na = a + 1\n\nwhat\nb = 2\na = 100\n"}
	env, parseErr, runErr := Check(src, ExactSubstitution)

	parseErrs := diag.UnpackErrors[parse.ErrorTag](parseErr)
	if len(parseErrs) != 2 || parseErrs[0].Context.Line != 2 || parseErrs[1].Context.Line != 5 {
		t.Errorf("got parse errors %v, want errors on lines 2 and 5", parseErr)
	}
	err, ok := runErr.(*Error)
	if !ok || err.Kind != UndeclaredVariable || err.Line != 6 {
		t.Errorf("got run error %v, want UndeclaredVariable on line 6", runErr)
	}
	// The dry run stops at the first failure.
	if v, _ := env.Get("a"); v != 2 {
		t.Errorf("a = %v, want 2", v)
	}
}

func TestCheck_NoOutput(t *testing.T) {
	_, parseErr, runErr := Check(parse.Source{Name: "a.lc", Code: `display("x")`}, ExactSubstitution)
	if parseErr != nil || runErr != nil {
		t.Errorf("got errors %v, %v", parseErr, runErr)
	}
}

func TestCheckUpto(t *testing.T) {
	src := parse.Source{Name: "a.lc", Code: "let a be 1\na = a + 1\nb = 1\n"}
	env, _, runErr := CheckUpto(src, 2, ExactSubstitution)
	if runErr != nil {
		t.Errorf("got run error %v", runErr)
	}
	if v, _ := env.Get("a"); v != 2 {
		t.Errorf("a = %v, want 2", v)
	}
	if env, _, _ := CheckUpto(src, 0, ExactSubstitution); env.Len() != 0 {
		t.Errorf("CheckUpto 0 lines declared %v", env.Names())
	}
	if _, _, runErr := CheckUpto(src, 10, ExactSubstitution); runErr == nil {
		t.Errorf("CheckUpto past the end did not check the last line")
	}
}
