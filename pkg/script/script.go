// Package script is the entry point for running LiteCode, either a script
// file or an interactive session.
package script

import (
	"errors"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"src.litecode.dev/pkg/config"
	"src.litecode.dev/pkg/diag"
	"src.litecode.dev/pkg/eval"
	"src.litecode.dev/pkg/logutil"
	"src.litecode.dev/pkg/parse"
	"src.litecode.dev/pkg/prog"
	"src.litecode.dev/pkg/sys"
)

var logger = logutil.GetLogger("[script] ")

// Program is the script subprogram. It always runs, so it should be the last
// one in a composite.
type Program struct{}

func (Program) Run(fds [3]*os.File, f *prog.Flags, args []string) error {
	cfg := config.Default()
	if !f.NoRc {
		var err error
		cfg, err = config.Load(f.Config)
		if err != nil {
			return prog.ExitWithMessage(2, "Error: "+err.Error())
		}
	}
	if f.Compat {
		cfg.Substitution = eval.NaiveSubstitution
	}
	if f.DB != "" {
		cfg.DB = f.DB
	}
	logger.Printf("substitution %s, history %v", cfg.Substitution, cfg.History)

	if f.CompileOnly {
		if len(args) == 0 {
			return prog.BadUsage("-compileonly requires at least one file")
		}
		return compileOnly(fds, args, cfg.Substitution, f.JSON)
	}
	switch {
	case len(args) > 1:
		return prog.BadUsage("only one file can be run at a time")
	case len(args) == 1:
		return RunFile(fds, args[0], cfg.Substitution)
	case f.File:
		return prog.BadUsage("-e requires a file argument")
	case !sys.IsFileATTY(fds[0]):
		code, err := io.ReadAll(fds[0])
		if err != nil {
			return prog.ExitWithMessage(2, "Error: cannot read stdin: "+err.Error())
		}
		return run(fds, parse.Source{Name: "[stdin]", Code: string(code)}, cfg.Substitution)
	default:
		Interact(fds, &InteractConfig{Config: cfg})
		return nil
	}
}

// RunFile runs the script in the named file, writing output to fds[1] and
// errors to fds[2]. The returned error is suitable for returning from
// prog.Program.Run: it causes exit status 2 if the file cannot be read and 1
// if the script fails.
func RunFile(fds [3]*os.File, fname string, s eval.Substitution) error {
	code, err := readFileUTF8(fname)
	if err != nil {
		return prog.ExitWithMessage(2, readError(fname, err))
	}
	return run(fds, parse.Source{Name: fname, Code: code}, s)
}

func run(fds [3]*os.File, src parse.Source, s eval.Substitution) error {
	ev := eval.NewEvaler(fds[1])
	ev.Substitution = s
	if err := ev.Run(src); err != nil {
		diag.ShowError(fds[2], err)
		return prog.Exit(1)
	}
	return nil
}

var errSourceNotUTF8 = errors.New("source is not UTF-8")

func readFileUTF8(fname string) (string, error) {
	bytes, err := os.ReadFile(fname)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(bytes) {
		return "", errSourceNotUTF8
	}
	return string(bytes), nil
}

func readError(fname string, err error) string {
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Sprintf("Error: File '%s' not found.", fname)
	}
	return fmt.Sprintf("Error: cannot read file '%s': %v", fname, err)
}
