package diag

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type testErrorTag struct{}

func (testErrorTag) ErrorTag() string { return "Test Error" }

type testError = Error[testErrorTag]

func setCulpritMarkers(t *testing.T, begin, end string) {
	t.Helper()
	saveBegin, saveEnd := culpritLineBegin, culpritLineEnd
	t.Cleanup(func() { culpritLineBegin, culpritLineEnd = saveBegin, saveEnd })
	culpritLineBegin, culpritLineEnd = begin, end
}

func TestContextShow(t *testing.T) {
	setCulpritMarkers(t, "<", ">")
	c := NewContext("a.lc", 3, "  x = 1 +  ", Ranging{6, 9})

	if got, want := c.ShowCompact(), "a.lc, line 3: x = <1 +>"; got != want {
		t.Errorf("ShowCompact -> %q, want %q", got, want)
	}
	if got, want := c.Show("    "), "a.lc, line 3:\n    x = <1 +>"; got != want {
		t.Errorf("Show -> %q, want %q", got, want)
	}
}

func TestContextShow_EmptyCulprit(t *testing.T) {
	setCulpritMarkers(t, "<", ">")
	c := NewContext("a.lc", 1, "let", PointRanging(3))
	if got, want := c.ShowCompact(), "a.lc, line 1: let<^>"; got != want {
		t.Errorf("ShowCompact -> %q, want %q", got, want)
	}
}

func TestContextShow_BadPosition(t *testing.T) {
	c := NewContext("a.lc", 2, "abc", Ranging{2, 10})
	if got, want := c.ShowCompact(), "a.lc, line 2, invalid position 2-10"; got != want {
		t.Errorf("ShowCompact -> %q, want %q", got, want)
	}
	c = NewContext("a.lc", 2, "abc", Ranging{-1, -1})
	if got, want := c.ShowCompact(), "a.lc, line 2, unknown position"; got != want {
		t.Errorf("ShowCompact -> %q, want %q", got, want)
	}
}

func TestError(t *testing.T) {
	setCulpritMarkers(t, "<", ">")
	err := &testError{"bad thing", *NewContext("a.lc", 4, "foo bar", Ranging{4, 7})}

	if got, want := err.Error(), "Test Error: a.lc:4:5: bad thing"; got != want {
		t.Errorf("Error -> %q, want %q", got, want)
	}
	if got, want := err.Range(), (Ranging{4, 7}); got != want {
		t.Errorf("Range -> %v, want %v", got, want)
	}
	wantShow := "Test Error: \033[31;1mbad thing\033[m\n  a.lc, line 4: foo <bar>"
	if got := err.Show(""); got != wantShow {
		t.Errorf("Show -> %q, want %q", got, wantShow)
	}
}

func TestPackAndUnpackErrors(t *testing.T) {
	e1 := &testError{"one", Context{Name: "a", Line: 1}}
	e2 := &testError{"two", Context{Name: "a", Line: 2}}

	if err := PackErrors[testErrorTag](nil); err != nil {
		t.Errorf("PackErrors(nil) -> %v, want nil", err)
	}
	if err := PackErrors([]*testError{e1}); err != e1 {
		t.Errorf("PackErrors of one error -> %v, want the error itself", err)
	}
	packed := PackErrors([]*testError{e1, e2})
	if got, want := packed.Error(), "multiple test errors: a:1:1: one; a:2:1: two"; got != want {
		t.Errorf("packed.Error() -> %q, want %q", got, want)
	}
	unpacked := UnpackErrors[testErrorTag](packed)
	if !cmp.Equal(unpacked, []*testError{e1, e2}) {
		t.Errorf("UnpackErrors -> %v", unpacked)
	}
	if got := UnpackErrors[testErrorTag](errors.New("x")); got != nil {
		t.Errorf("UnpackErrors of foreign error -> %v, want nil", got)
	}
}

func TestShowError(t *testing.T) {
	setCulpritMarkers(t, "", "")
	var buf bytes.Buffer
	ShowError(&buf, errors.New("plain"))
	if got, want := buf.String(), "\033[31;1mplain\033[m\n"; got != want {
		t.Errorf("ShowError of plain error wrote %q, want %q", got, want)
	}

	buf.Reset()
	ShowError(&buf, &testError{"shown", *NewContext("a", 1, "xy", Ranging{0, 1})})
	if got, want := buf.String(), "Test Error: \033[31;1mshown\033[m\n  a, line 1: xy\n"; got != want {
		t.Errorf("ShowError of Shower wrote %q, want %q", got, want)
	}
}
