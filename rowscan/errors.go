package rowscan

import "errors"

var (
	ErrNilSource    = errors.New("row source is nil")
	ErrNilEvaluator = errors.New("evaluator is nil")
	ErrOpenFailed   = errors.New("failed to open row source")
	ErrReadFailed   = errors.New("failed to read row")
	ErrSinkFailed   = errors.New("row sink failed")
)
