package ipld

import "errors"

var (
	ErrIntRange     = errors.New("integer out of range")
	ErrDuplicateKey = errors.New("duplicate map key")
	ErrKeyType      = errors.New("map key is not a string")
	ErrUnsupported  = errors.New("unsupported value")

	ErrPathSyntax = errors.New("bad path syntax")
	ErrNotFound   = errors.New("not found")
	ErrWrongKind  = errors.New("wrong kind")
)
