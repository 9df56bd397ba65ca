package eval

import (
	"io"
	"strings"

	"src.litecode.dev/pkg/diag"
	"src.litecode.dev/pkg/parse"
)

// Check checks src without producing output.
//
// The returned parseErr reports every unrecognized line, packed as described
// in [parse.ParseSource]. The recognized lines are then executed in order
// with display output discarded, and runErr is the first failure among them.
// The returned Env holds the variables as of the end of the dry run.
func Check(src parse.Source, s Substitution) (env *Env, parseErr, runErr error) {
	stmts, parseErr := parse.ParseSource(src)
	ev := &Evaler{Env: NewEnv(), Output: io.Discard, Substitution: s}
	lines := src.Lines()
	for i, stmt := range stmts {
		if stmt == nil {
			continue
		}
		err := ev.ExecStmt(stmt, diag.Context{Name: src.Name, Line: i + 1, Source: lines[i]})
		if err != nil {
			return ev.Env, parseErr, err
		}
	}
	return ev.Env, parseErr, nil
}

// CheckUpto is like Check, but only considers the first n lines of src.
func CheckUpto(src parse.Source, n int, s Substitution) (env *Env, parseErr, runErr error) {
	lines := src.Lines()
	if n < len(lines) {
		lines = lines[:n]
	}
	return Check(parse.Source{Name: src.Name, Code: strings.Join(lines, "\n")}, s)
}
