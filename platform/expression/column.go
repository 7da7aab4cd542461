package expression

import (
	"context"
	"fmt"
	"math"

	"github.com/robbyt/go-formula/platform/data"
)

// NewColumn returns a non-constant leaf reading the value named column from
// the row that getter finds in the evaluation context. A missing or nil
// numeric value reads as NaN; for the other domains it is ErrMissingValue.
func NewColumn(column string, typ Type, getter data.Getter) (*Evaluator, error) {
	if column == "" {
		return nil, fmt.Errorf("%w: column name is empty", ErrUnsupportedValue)
	}
	if getter == nil {
		return nil, fmt.Errorf("%w: column '%s' has no row getter", ErrUnsupportedValue, column)
	}

	lookup := func(ctx context.Context) (any, error) {
		v, _, err := data.LookupValue(ctx, getter, column)
		return v, err
	}

	switch typ {
	case Double, Integer:
		return NewEvaluator(typ, columnAccessor(column, lookup, func(v any) (float64, error) {
			f, err := Coerce(typ, v)
			if err != nil {
				return math.NaN(), err
			}
			return f.(float64), nil
		}), false)
	case String:
		return NewEvaluator(typ, columnAccessor(column, lookup, ToText), false)
	case Boolean:
		return NewEvaluator(typ, columnAccessor(column, lookup, ToBool), false)
	case Date:
		return NewEvaluator(typ, columnAccessor(column, lookup, ToDate), false)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownType, typ)
}

func columnAccessor[T Value](
	column string,
	lookup func(context.Context) (any, error),
	convert func(any) (T, error),
) Accessor[T] {
	return func(ctx context.Context) (T, error) {
		var zero T
		v, err := lookup(ctx)
		if err != nil {
			return zero, &RowEvaluationError{Function: column, Err: err}
		}
		out, err := convert(v)
		if err != nil {
			return zero, &RowEvaluationError{Function: column, Err: err}
		}
		return out, nil
	}
}
