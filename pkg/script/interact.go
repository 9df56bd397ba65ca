package script

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"src.litecode.dev/pkg/config"
	"src.litecode.dev/pkg/diag"
	"src.litecode.dev/pkg/eval"
	"src.litecode.dev/pkg/eval/vals"
	"src.litecode.dev/pkg/store"
	"src.litecode.dev/pkg/sys"
)

// InteractConfig keeps configuration for the interactive mode.
type InteractConfig struct {
	Config config.Config
	// If not nil, used as the history store instead of opening one as
	// configured. It is not closed by Interact.
	Store store.Store
}

// Name of the source of lines entered interactively.
const interactSourceName = "[repl]"

// Interact runs an interactive session. Lines are read from fds[0], with the
// prompt and errors written to fds[2] and display output to fds[1]. Errors
// are shown and do not end the session; EOF does.
func Interact(fds [3]*os.File, cfg *InteractConfig) {
	st := cfg.Store
	if st == nil && cfg.Config.History {
		opened, err := openStore(cfg.Config.DB)
		if err != nil {
			fmt.Fprintln(fds[2], "Warning:", err)
			fmt.Fprintln(fds[2], "History will not be saved.")
		} else {
			st = opened
			defer opened.Close()
		}
	}

	ev := eval.NewEvaler(fds[1])
	ev.Substitution = cfg.Config.Substitution
	in := bufio.NewReader(fds[0])
	lineNo := 0
	for {
		fmt.Fprint(fds[2], cfg.Config.Prompt)
		line, err := in.ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			if err != io.EOF {
				fmt.Fprintln(fds[2], "Error reading input:", err)
			}
			fmt.Fprintln(fds[2])
			return
		}
		line = strings.TrimRight(line, "\r\n")
		if cmd := strings.TrimSpace(line); strings.HasPrefix(cmd, ":") {
			replCommand(fds, cmd, ev, st)
			continue
		}

		lineNo++
		if st != nil && strings.TrimSpace(line) != "" {
			if _, err := st.AddCmd(line); err != nil {
				logger.Println("failed to add to history:", err)
			}
		}
		if err := ev.Exec(interactSourceName, lineNo, line); err != nil {
			diag.ShowError(fds[2], err)
		}
	}
}

func openStore(path string) (store.DBStore, error) {
	if path == "" {
		var err error
		path, err = store.DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	return store.Open(path)
}

// Runs a command of the interactive mode. These are not LiteCode statements
// and are not recorded in history.
func replCommand(fds [3]*os.File, cmd string, ev *eval.Evaler, st store.Store) {
	switch cmd {
	case ":history":
		if st == nil {
			fmt.Fprintln(fds[2], "History is not available.")
			return
		}
		next, err := st.NextCmdSeq()
		if err == nil {
			var cmds []store.Cmd
			cmds, err = st.Cmds(0, next)
			_, width := sys.WinSize(fds[1])
			for _, c := range cmds {
				fmt.Fprintln(fds[1], fitWidth(fmt.Sprintf("%5d  %s", c.Seq, c.Text), width))
			}
		}
		if err != nil {
			fmt.Fprintln(fds[2], "Error reading history:", err)
		}
	case ":vars":
		for _, name := range ev.Env.Names() {
			v, _ := ev.Env.Get(name)
			fmt.Fprintf(fds[1], "%s: %s = %s\n", name, vals.Kind(v), vals.Repr(v))
		}
	case ":help":
		fmt.Fprintln(fds[1], ":history  list entered lines")
		fmt.Fprintln(fds[1], ":vars     list variables")
		fmt.Fprintln(fds[1], ":help     show this help")
	default:
		diag.Complainf(fds[2], "unknown command %s; try :help", cmd)
	}
}

// Truncates line to width runes, marking the cut with an ellipsis. A
// non-positive width disables truncation.
func fitWidth(line string, width int) string {
	if width <= 0 || utf8.RuneCountInString(line) <= width {
		return line
	}
	runes := []rune(line)
	return string(runes[:width-1]) + "…"
}
