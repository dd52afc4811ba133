package wrapfn

import (
	"errors"
	"fmt"

	"github.com/roach88/remap/internal/ast"
)

// UnsupportedError reports a function shape the wrapper cannot rewrite
// without changing its meaning, such as an update expression on a `super`
// property that would end up inside a plain generator function.
type UnsupportedError struct {
	Kind   ast.Kind
	Reason string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("cannot wrap %s: %s", e.Kind, e.Reason)
}

// IsUnsupported returns true if err is or wraps an *UnsupportedError.
func IsUnsupported(err error) bool {
	var ue *UnsupportedError
	return errors.As(err, &ue)
}
