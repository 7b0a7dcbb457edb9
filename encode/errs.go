package encode

import (
	"errors"
	"fmt"

	"github.com/signadot/go-dagcbor/ipld"
)

var (
	ErrDisallowedFloat = errors.New("disallowed float value")
	ErrInvalidString   = errors.New("string is not valid utf-8")
	ErrDuplicateKey    = errors.New("duplicate map key")
	ErrUndefinedLink   = errors.New("undefined link")
	ErrNestingLimit    = errors.New("nesting limit exceeded")
)

// Error qualifies an encoding failure with the path of the value that
// caused it.
type Error struct {
	Err  error
	Path ipld.Path
}

func (e *Error) Error() string {
	if e.Path.Len() == 0 {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s at %s", e.Err, e.Path)
}

func (e *Error) Unwrap() error {
	return e.Err
}
