package logutil

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLogger(t *testing.T) {
	t.Cleanup(func() { SetOutput(io.Discard) })
	logger := GetLogger("[test] ")

	logger.Println("dropped")

	var buf bytes.Buffer
	SetOutput(&buf)
	logger.Println("kept")
	if !strings.Contains(buf.String(), "[test] ") || !strings.Contains(buf.String(), "kept") {
		t.Errorf("got log output %q, want a [test] line with kept", buf.String())
	}
	if strings.Contains(buf.String(), "dropped") {
		t.Errorf("message logged before SetOutput was written")
	}

	fname := filepath.Join(t.TempDir(), "log")
	if err := SetOutputFile(fname); err != nil {
		t.Fatal(err)
	}
	GetLogger("[later] ").Println("to file")
	SetOutputFile("")
	content, err := os.ReadFile(fname)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(content), "[later] ") {
		t.Errorf("log file has %q, want a [later] line", content)
	}
}

func TestSetOutputFile_Error(t *testing.T) {
	if err := SetOutputFile(filepath.Join(t.TempDir(), "no", "such", "dir")); err == nil {
		t.Errorf("SetOutputFile of a file in a missing directory succeeded")
	}
}
