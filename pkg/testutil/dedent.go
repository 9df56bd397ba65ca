package testutil

import "strings"

// Dedent removes an initial newline from text, and then the longest run of
// leading spaces and tabs common to all non-blank lines. Blank lines become
// empty.
//
// This makes it possible to write a multi-line raw string indented along with
// the surrounding code:
//
//	Dedent(`
//	    let x be 1
//	    display("(%var1)", x)
//	    `)
func Dedent(text string) string {
	text = strings.TrimPrefix(text, "\n")
	lines := strings.Split(text, "\n")
	margin := ""
	found := false
	for i, line := range lines {
		if strings.TrimLeft(line, " \t") == "" {
			lines[i] = ""
			continue
		}
		indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
		if !found {
			margin, found = indent, true
			continue
		}
		for !strings.HasPrefix(indent, margin) {
			margin = margin[:len(margin)-1]
		}
	}
	for i, line := range lines {
		lines[i] = strings.TrimPrefix(line, margin)
	}
	return strings.Join(lines, "\n")
}
