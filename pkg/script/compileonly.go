package script

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"
	"src.litecode.dev/pkg/diag"
	"src.litecode.dev/pkg/eval"
	"src.litecode.dev/pkg/parse"
	"src.litecode.dev/pkg/prog"
)

type checkResult struct {
	parseErr, runErr error
}

// Checks the files in parallel, and reports the results in argument order.
// Each file gets its own Evaler.
func compileOnly(fds [3]*os.File, fnames []string, s eval.Substitution, jsonOut bool) error {
	results := make([]checkResult, len(fnames))
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, fname := range fnames {
		i, fname := i, fname
		g.Go(func() error {
			code, err := readFileUTF8(fname)
			if err != nil {
				return prog.ExitWithMessage(2, readError(fname, err))
			}
			_, parseErr, runErr := eval.Check(parse.Source{Name: fname, Code: code}, s)
			results[i] = checkResult{parseErr, runErr}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	failed := false
	for _, r := range results {
		if r.parseErr != nil || r.runErr != nil {
			failed = true
		}
	}
	if jsonOut {
		fmt.Fprintf(fds[1], "%s\n", errorsToJSON(results))
	} else {
		for _, r := range results {
			if r.parseErr != nil {
				diag.ShowError(fds[2], r.parseErr)
			}
			if r.runErr != nil {
				diag.ShowError(fds[2], r.runErr)
			}
		}
	}
	if failed {
		return prog.Exit(1)
	}
	return nil
}

// An auxiliary struct for converting errors with diagnostics information to
// JSON.
type errorInJSON struct {
	FileName string `json:"fileName"`
	Line     int    `json:"line"`
	Start    int    `json:"start"`
	End      int    `json:"end"`
	Message  string `json:"message"`
}

// Converts recognition and dry-run errors into JSON. The result is always an
// array, empty when there are no errors.
func errorsToJSON(results []checkResult) []byte {
	converted := []errorInJSON{}
	for _, r := range results {
		for _, e := range diag.UnpackErrors[parse.ErrorTag](r.parseErr) {
			converted = append(converted, errorInJSON{
				e.Context.Name, e.Context.Line, e.Context.From, e.Context.To, e.Message})
		}
		if e, ok := r.runErr.(*eval.Error); ok {
			converted = append(converted, errorInJSON{
				e.Context.Name, e.Line, e.Context.From, e.Context.To, e.Error()})
		}
	}

	jsonError, errMarshal := json.Marshal(converted)
	if errMarshal != nil {
		return []byte(`[{"message":"Unable to convert the errors to JSON"}]`)
	}
	return jsonError
}
