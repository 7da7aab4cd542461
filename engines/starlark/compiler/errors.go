package compiler

import "errors"

var (
	ErrContentNil       = errors.New("starlark content is nil")
	ErrValidationFailed = errors.New("starlark script validation error")
	ErrInitFailed       = errors.New("starlark script initialization failed")
	ErrFunctionNotFound = errors.New("starlark function not found")
	ErrCallFailed       = errors.New("starlark function call failed")
)
