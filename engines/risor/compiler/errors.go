package compiler

import "errors"

var (
	ErrContentNil       = errors.New("risor content is nil")
	ErrNoInstructions   = errors.New("risor bytecode has zero instructions")
	ErrValidationFailed = errors.New("risor script validation error")
	ErrFunctionNotFound = errors.New("risor function not found")
	ErrCallFailed       = errors.New("risor function call failed")
)
