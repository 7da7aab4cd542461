package stdlib

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/robbyt/go-formula/platform/expression"
)

// ifResult requires a Boolean condition and branches that promote to one
// type.
func ifResult(inputs []expression.Type) (expression.Type, error) {
	if len(inputs) != 3 || inputs[0] != expression.Boolean {
		return 0, &expression.TypeError{Inputs: inputs, Reason: "condition must be boolean"}
	}
	return expression.Promote(inputs[1], inputs[2])
}

// choose returns an accessor that evaluates only the selected branch.
func choose[T expression.Value](
	cond expression.Accessor[bool],
	whenTrue, whenFalse *expression.Evaluator,
) (expression.Accessor[T], error) {
	a, err := expression.AccessorOf[T](whenTrue)
	if err != nil {
		return nil, err
	}
	b, err := expression.AccessorOf[T](whenFalse)
	if err != nil {
		return nil, err
	}
	return func(ctx context.Context) (T, error) {
		var zero T
		ok, err := cond(ctx)
		if err != nil {
			return zero, expression.RowError("if", err)
		}
		branch := b
		if ok {
			branch = a
		}
		v, err := branch(ctx)
		if err != nil {
			return zero, expression.RowError("if", err)
		}
		return v, nil
	}, nil
}

func computeIf(result expression.Type, inputs []*expression.Evaluator) (*expression.Evaluator, error) {
	whenTrue, err := expression.Retype(inputs[1], result)
	if err != nil {
		return nil, err
	}
	whenFalse, err := expression.Retype(inputs[2], result)
	if err != nil {
		return nil, err
	}

	condition := inputs[0]
	if condition.IsConstant() {
		ok, err := condition.Bool(context.Background())
		if err != nil {
			return nil, expression.FoldError("if", err)
		}
		if ok {
			return whenTrue, nil
		}
		return whenFalse, nil
	}

	cond, err := condition.BooleanFunc()
	if err != nil {
		return nil, err
	}
	switch result {
	case expression.Double, expression.Integer:
		return newChoice[float64](result, cond, whenTrue, whenFalse)
	case expression.String:
		return newChoice[string](result, cond, whenTrue, whenFalse)
	case expression.Boolean:
		return newChoice[bool](result, cond, whenTrue, whenFalse)
	default:
		return newChoice[time.Time](result, cond, whenTrue, whenFalse)
	}
}

func newChoice[T expression.Value](
	result expression.Type,
	cond expression.Accessor[bool],
	whenTrue, whenFalse *expression.Evaluator,
) (*expression.Evaluator, error) {
	fn, err := choose[T](cond, whenTrue, whenFalse)
	if err != nil {
		return nil, err
	}
	return expression.NewEvaluator(result, fn, false)
}

// missingProbe reports whether in has no value for the bound row. Numeric
// values are missing when NaN, the other domains when no value is present.
func missingProbe(in *expression.Evaluator) expression.UntypedAccessor {
	return func(ctx context.Context) (any, error) {
		v, err := in.Value(ctx)
		if err != nil {
			if errors.Is(err, expression.ErrMissingValue) {
				return true, nil
			}
			return nil, err
		}
		if f, ok := v.(float64); ok {
			return math.IsNaN(f), nil
		}
		return false, nil
	}
}

func logicalFunctions() []expression.Function {
	return []expression.Function{
		expression.NewFunction(describe(GroupLogical, "if", 3, 3, ifResult), computeIf),
		expression.NewFunction(
			describe(GroupLogical, "missing", 1, 1, expression.FixedResult(expression.Boolean)),
			func(result expression.Type, inputs []*expression.Evaluator) (*expression.Evaluator, error) {
				probe := missingProbe(inputs[0])
				if inputs[0].IsConstant() {
					return expression.FoldValue("missing", result, probe)
				}
				return expression.Dynamic("missing", result, probe)
			},
		),
	}
}
