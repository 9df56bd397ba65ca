package diag

import (
	"fmt"
	"strings"
)

// Context is a range of text on one line of a source. It is used for errors
// that can be associated with a part of a line, like an unrecognized statement
// or the right-hand side of a failed assignment.
type Context struct {
	// Name of the source, typically a file name.
	Name string
	// 1-based line number.
	Line int
	// Full text of the line, without the trailing newline.
	Source string
	// Byte range of the culprit within Source.
	Ranging
}

// NewContext creates a new Context.
func NewContext(name string, line int, source string, r Ranger) *Context {
	return &Context{name, line, source, r.Range()}
}

// Variables controlling the style of the culprit.
var (
	culpritLineBegin   = "\033[1;4m"
	culpritLineEnd     = "\033[m"
	culpritPlaceHolder = "^"
)

// Show shows a Context, with the position on the first line and the relevant
// source on the second line, indented by sourceIndent.
func (c *Context) Show(sourceIndent string) string {
	if err := c.checkPosition(); err != nil {
		return err.Error()
	}
	return c.describe() + "\n" + sourceIndent + c.relevantSource()
}

// ShowCompact shows a Context, with no line break between the position and
// the relevant source.
func (c *Context) ShowCompact() string {
	if err := c.checkPosition(); err != nil {
		return err.Error()
	}
	return c.describe() + " " + c.relevantSource()
}

func (c *Context) describe() string {
	return fmt.Sprintf("%s, line %d:", c.Name, c.Line)
}

func (c *Context) checkPosition() error {
	if c.From == -1 {
		return fmt.Errorf("%s, line %d, unknown position", c.Name, c.Line)
	} else if c.From < 0 || c.To > len(c.Source) || c.From > c.To {
		return fmt.Errorf("%s, line %d, invalid position %d-%d", c.Name, c.Line, c.From, c.To)
	}
	return nil
}

func (c *Context) relevantSource() string {
	head := strings.TrimLeft(c.Source[:c.From], " \t")
	culprit := c.Source[c.From:c.To]
	if culprit == "" {
		culprit = culpritPlaceHolder
	}
	tail := strings.TrimRight(c.Source[c.To:], " \t")
	return head + culpritLineBegin + culprit + culpritLineEnd + tail
}
