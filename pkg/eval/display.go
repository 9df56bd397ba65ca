package eval

import (
	"strconv"
	"strings"
)

// FormatDisplay replaces the placeholder (%varN) in template with texts[N-1],
// for N from 1 up to len(texts) in turn. Placeholders without a matching text
// are left as they are. Text substituted for one placeholder is subject to
// the replacement of later ones.
func FormatDisplay(template string, texts []string) string {
	for i, text := range texts {
		template = strings.ReplaceAll(template, "(%var"+strconv.Itoa(i+1)+")", text)
	}
	return template
}
