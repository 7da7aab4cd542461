package expression

import (
	"context"
	"fmt"
	"time"
)

// UntypedAccessor produces a Go value that is coerced to the declared type of
// the evaluator wrapping it.
type UntypedAccessor func(ctx context.Context) (any, error)

// ConstantOf coerces v to t and returns a constant evaluator yielding it.
func ConstantOf(t Type, v any) (*Evaluator, error) {
	c, err := Coerce(t, v)
	if err != nil {
		return nil, err
	}
	switch x := c.(type) {
	case float64:
		return Constant(t, x)
	case string:
		return Constant(t, x)
	case bool:
		return Constant(t, x)
	case time.Time:
		return Constant(t, x)
	}
	return nil, fmt.Errorf("%w: %T", ErrUnsupportedValue, c)
}

// FoldValue runs fn once and returns its coerced result as a constant
// evaluator. Failures are reported as constant folding errors of function.
func FoldValue(function string, t Type, fn UntypedAccessor) (*Evaluator, error) {
	v, err := fn(foldCtx)
	if err != nil {
		return nil, FoldError(function, err)
	}
	ev, err := ConstantOf(t, v)
	if err != nil {
		return nil, FoldError(function, err)
	}
	return ev, nil
}

// Dynamic wraps fn as a non-constant evaluator of type t. Every result is
// coerced to t; failures are reported as row evaluation errors of function.
func Dynamic(function string, t Type, fn UntypedAccessor) (*Evaluator, error) {
	if fn == nil {
		return nil, fmt.Errorf("%w: nil accessor for '%s'", ErrWrongAccessor, function)
	}
	switch t {
	case Double, Integer:
		return NewEvaluator(t, dynamicAccessor[float64](function, t, fn), false)
	case String:
		return NewEvaluator(t, dynamicAccessor[string](function, t, fn), false)
	case Boolean:
		return NewEvaluator(t, dynamicAccessor[bool](function, t, fn), false)
	case Date:
		return NewEvaluator(t, dynamicAccessor[time.Time](function, t, fn), false)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownType, t)
}

func dynamicAccessor[T Value](function string, t Type, fn UntypedAccessor) Accessor[T] {
	return func(ctx context.Context) (T, error) {
		var zero T
		v, err := fn(ctx)
		if err != nil {
			return zero, RowError(function, err)
		}
		c, err := Coerce(t, v)
		if err != nil {
			return zero, RowError(function, err)
		}
		return c.(T), nil
	}
}

// Retype returns ev declared as t. Only Integer and Double can be exchanged;
// any other change is a TypeError.
func Retype(ev *Evaluator, t Type) (*Evaluator, error) {
	if ev == nil {
		return nil, ErrNilEvaluator
	}
	if ev.typ == t {
		return ev, nil
	}
	if !ev.typ.IsNumeric() || !t.IsNumeric() {
		return nil, &TypeError{Inputs: []Type{ev.typ}, Reason: "cannot be used as " + t.String()}
	}
	out := *ev
	out.typ = t
	return &out, nil
}
