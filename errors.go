package formula

import "errors"

var (
	ErrUnknownFunction = errors.New("unknown function")
	ErrUnknownConstant = errors.New("unknown constant")
	ErrInvalidNode     = errors.New("invalid expression node")
)
