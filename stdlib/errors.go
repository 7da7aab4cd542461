package stdlib

import "errors"

var (
	ErrOutOfRange      = errors.New("index out of range")
	ErrInvalidNumber   = errors.New("text is not a number")
	ErrUnknownDateUnit = errors.New("unknown date unit")
	ErrNotOrderable    = errors.New("type has no ordering")
)
