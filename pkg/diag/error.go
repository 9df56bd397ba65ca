package diag

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorTag is used to parameterize [Error] into different concrete types.
type ErrorTag interface {
	ErrorTag() string
}

// Error represents an error with context that can be shown.
type Error[T ErrorTag] struct {
	Message string
	Context Context
}

// Error returns a plain text representation of the error.
func (e *Error[T]) Error() string {
	return fmt.Sprintf("%s: %s:%d:%d: %s",
		errorTag[T](), e.Context.Name, e.Context.Line, e.Context.From+1, e.Message)
}

// Range returns the range of the error.
func (e *Error[T]) Range() Ranging {
	return e.Context.Range()
}

// Show shows the error.
func (e *Error[T]) Show(indent string) string {
	header := fmt.Sprintf("%s: \033[31;1m%s\033[m\n", errorTag[T](), e.Message)
	return header + indent + "  " + e.Context.ShowCompact()
}

func errorTag[T ErrorTag]() string {
	var t T
	return t.ErrorTag()
}

// PackErrors packs multiple instances of [Error] with the same tag into one
// error. It returns nil when given no errors, and the only error when given
// one.
func PackErrors[T ErrorTag](errs []*Error[T]) error {
	switch len(errs) {
	case 0:
		return nil
	case 1:
		return errs[0]
	default:
		return append(multiError[T](nil), errs...)
	}
}

// UnpackErrors returns the constituent [Error] instances in an error if it is
// built from [PackErrors]. Otherwise it returns nil.
func UnpackErrors[T ErrorTag](err error) []*Error[T] {
	switch err := err.(type) {
	case nil:
		return nil
	case *Error[T]:
		return []*Error[T]{err}
	case multiError[T]:
		return append([]*Error[T](nil), err...)
	default:
		var single *Error[T]
		if errors.As(err, &single) {
			return []*Error[T]{single}
		}
		return nil
	}
}

type multiError[T ErrorTag] []*Error[T]

func (me multiError[T]) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "multiple %ss: ", strings.ToLower(errorTag[T]()))
	for i, e := range me {
		if i > 0 {
			sb.WriteString("; ")
		}
		fmt.Fprintf(&sb, "%s:%d:%d: %s", e.Context.Name, e.Context.Line, e.Context.From+1, e.Message)
	}
	return sb.String()
}

func (me multiError[T]) Show(indent string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Multiple %ss:", strings.ToLower(errorTag[T]()))
	for _, e := range me {
		sb.WriteString("\n" + indent + "  ")
		sb.WriteString(e.Show(indent + "  "))
	}
	return sb.String()
}
