package sys

import (
	"os"
	"testing"

	"github.com/creack/pty"
)

func TestIsATTY(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	defer w.Close()
	if IsFileATTY(r) || IsFileATTY(w) {
		t.Errorf("pipe is reported as a terminal")
	}
	if IsFileATTY(nil) {
		t.Errorf("nil file is reported as a terminal")
	}

	ptmx, tty, err := pty.Open()
	if err != nil {
		t.Skipf("cannot open pty: %v", err)
	}
	defer ptmx.Close()
	defer tty.Close()
	if !IsATTY(tty.Fd()) {
		t.Errorf("pty is not reported as a terminal")
	}
}

func TestWinSize(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	defer w.Close()
	if row, col := WinSize(w); row != -1 || col != -1 {
		t.Errorf("WinSize(pipe) -> %d, %d, want -1, -1", row, col)
	}

	ptmx, tty, err := pty.Open()
	if err != nil {
		t.Skipf("cannot open pty: %v", err)
	}
	defer ptmx.Close()
	defer tty.Close()
	err = pty.Setsize(ptmx, &pty.Winsize{Rows: 30, Cols: 100})
	if err != nil {
		t.Skipf("cannot set pty size: %v", err)
	}
	if row, col := WinSize(tty); row != 30 || col != 100 {
		t.Errorf("WinSize(pty) -> %d, %d, want 30, 100", row, col)
	}
}
