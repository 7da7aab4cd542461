package compiler

import "errors"

var (
	ErrBytecodeNil      = errors.New("wasm bytecode is nil")
	ErrContentNil       = errors.New("wasm content is nil")
	ErrValidationFailed = errors.New("wasm module validation error")
	ErrFunctionNotFound = errors.New("wasm function not found")
	ErrCallFailed       = errors.New("wasm function call failed")
	ErrExecutableClosed = errors.New("executable is closed")
)
