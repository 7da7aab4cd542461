package expression

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownType        = errors.New("unknown expression type")
	ErrWrongAccessor      = errors.New("accessor does not match evaluator type")
	ErrNilEvaluator       = errors.New("input evaluator is nil")
	ErrNilModule          = errors.New("module must not be nil")
	ErrInvalidModule      = errors.New("invalid module")
	ErrInvalidDescription = errors.New("invalid function description")
	ErrMissingValue       = errors.New("missing value")
	ErrUnsupportedValue   = errors.New("unsupported value")
)

// Kind classifies an error by the phase in which it was raised.
type Kind int

const (
	KindUnknown Kind = iota
	// KindArity is an argument count outside the accepted bounds.
	KindArity
	// KindType is a set of input types that cannot be unified.
	KindType
	// KindConstantFolding is a failure while evaluating an all-constant
	// sub-expression at construction time.
	KindConstantFolding
	// KindRowEvaluation is a failure of a non-constant accessor for one row.
	KindRowEvaluation
	// KindRegistration is an invalid module registration.
	KindRegistration
)

func (k Kind) String() string {
	switch k {
	case KindArity:
		return "arity"
	case KindType:
		return "type"
	case KindConstantFolding:
		return "constant folding"
	case KindRowEvaluation:
		return "row evaluation"
	case KindRegistration:
		return "registration"
	default:
		return "unknown"
	}
}

// ArityError reports an argument count outside a function's bounds. Max is
// UnboundedArgs when the function has no upper limit.
type ArityError struct {
	Function string
	Min      int
	Max      int
	Actual   int
}

func (e *ArityError) Error() string {
	if e.Max == UnboundedArgs {
		return fmt.Sprintf(
			"function '%s' expects at least %d arguments, got %d",
			e.Function, e.Min, e.Actual,
		)
	}
	if e.Min == e.Max {
		return fmt.Sprintf(
			"function '%s' expects %d arguments, got %d",
			e.Function, e.Min, e.Actual,
		)
	}
	return fmt.Sprintf(
		"function '%s' expects %d to %d arguments, got %d",
		e.Function, e.Min, e.Max, e.Actual,
	)
}

// TypeError reports input types that cannot be unified into a result type.
type TypeError struct {
	Function string
	Inputs   []Type
	Reason   string
}

func (e *TypeError) Error() string {
	names := make([]string, len(e.Inputs))
	for i, t := range e.Inputs {
		names[i] = t.String()
	}
	msg := fmt.Sprintf("invalid input types (%s)", strings.Join(names, ", "))
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Function != "" {
		return fmt.Sprintf("function '%s': %s", e.Function, msg)
	}
	return msg
}

// ConstantFoldingError wraps a failure raised while a constant sub-expression
// was evaluated during construction.
type ConstantFoldingError struct {
	Function string
	Err      error
}

func (e *ConstantFoldingError) Error() string {
	return fmt.Sprintf("'%s': constant evaluation failed: %v", e.Function, e.Err)
}

func (e *ConstantFoldingError) Unwrap() error {
	return e.Err
}

// RowEvaluationError wraps a failure raised by a non-constant accessor.
// Function names the function or column leaf that failed first.
type RowEvaluationError struct {
	Function string
	Err      error
}

func (e *RowEvaluationError) Error() string {
	return fmt.Sprintf("'%s': row evaluation failed: %v", e.Function, e.Err)
}

func (e *RowEvaluationError) Unwrap() error {
	return e.Err
}

// KindOf returns the Kind of the outermost classified error in err's chain.
func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	var arityErr *ArityError
	var typeErr *TypeError
	var foldErr *ConstantFoldingError
	var rowErr *RowEvaluationError
	switch {
	case errors.As(err, &rowErr):
		return KindRowEvaluation
	case errors.As(err, &foldErr):
		return KindConstantFolding
	case errors.As(err, &arityErr):
		return KindArity
	case errors.As(err, &typeErr):
		return KindType
	case errors.Is(err, ErrNilModule), errors.Is(err, ErrInvalidModule):
		return KindRegistration
	}
	return KindUnknown
}

// IsConstructionError reports whether err was raised while an expression tree
// was being built. Such errors abort the whole compilation.
func IsConstructionError(err error) bool {
	switch KindOf(err) {
	case KindArity, KindType, KindConstantFolding:
		return true
	}
	return false
}

// RowError wraps err as a row evaluation failure of function unless it
// already carries one from a child node.
func RowError(function string, err error) error {
	var rowErr *RowEvaluationError
	if errors.As(err, &rowErr) {
		return err
	}
	return &RowEvaluationError{Function: function, Err: err}
}

// FoldError wraps err as a constant folding failure of function unless it
// already is one.
func FoldError(function string, err error) error {
	var foldErr *ConstantFoldingError
	if errors.As(err, &foldErr) {
		return err
	}
	return &ConstantFoldingError{Function: function, Err: err}
}

// withFunction attaches the function name to type errors raised by shared
// result-type rules.
func withFunction(function string, err error) error {
	var typeErr *TypeError
	if errors.As(err, &typeErr) && typeErr.Function == "" {
		return &TypeError{Function: function, Inputs: typeErr.Inputs, Reason: typeErr.Reason}
	}
	return err
}
