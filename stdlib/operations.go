package stdlib

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/robbyt/go-formula/platform/expression"
)

// plusResult concatenates when either side is text and adds otherwise.
func plusResult(inputs []expression.Type) (expression.Type, error) {
	for _, t := range inputs {
		if t == expression.String {
			return expression.String, nil
		}
	}
	return expression.NumericResult(inputs)
}

func computePlus(result expression.Type, inputs []*expression.Evaluator) (*expression.Evaluator, error) {
	if result != expression.String {
		return expression.Binary("+", result, inputs[0], inputs[1],
			expression.Safe2(func(a, b float64) float64 { return a + b }))
	}
	left, err := expression.AsText(inputs[0])
	if err != nil {
		return nil, err
	}
	right, err := expression.AsText(inputs[1])
	if err != nil {
		return nil, err
	}
	return expression.Binary("+", result, left, right,
		expression.Safe2(func(a, b string) string { return a + b }))
}

// order builds a comparison operator over the promoted type of both inputs.
// cmp receives the result of comparing left with right.
func order(name string, cmp func(int) bool) expression.ComputeFunc {
	return func(result expression.Type, inputs []*expression.Evaluator) (*expression.Evaluator, error) {
		common, err := expression.Promote(inputs[0].Type(), inputs[1].Type())
		if err != nil {
			return nil, err
		}
		left, right := inputs[0], inputs[1]
		switch common {
		case expression.Double, expression.Integer:
			return expression.Binary(name, result, left, right, expression.Safe2(func(a, b float64) bool {
				if math.IsNaN(a) || math.IsNaN(b) {
					return false
				}
				switch {
				case a < b:
					return cmp(-1)
				case a > b:
					return cmp(1)
				}
				return cmp(0)
			}))
		case expression.String:
			return expression.Binary(name, result, left, right, expression.Safe2(func(a, b string) bool {
				return cmp(strings.Compare(a, b))
			}))
		case expression.Date:
			return expression.Binary(name, result, left, right, expression.Safe2(func(a, b time.Time) bool {
				return cmp(a.Compare(b))
			}))
		}
		return nil, &expression.TypeError{
			Function: name,
			Inputs:   []expression.Type{left.Type(), right.Type()},
			Reason:   fmt.Sprintf("%v: %s", ErrNotOrderable, common),
		}
	}
}

// equality builds == or != over the promoted type of both inputs. NaN is
// never equal to anything.
func equality(name string, want bool) expression.ComputeFunc {
	return func(result expression.Type, inputs []*expression.Evaluator) (*expression.Evaluator, error) {
		common, err := expression.Promote(inputs[0].Type(), inputs[1].Type())
		if err != nil {
			return nil, err
		}
		left, right := inputs[0], inputs[1]
		switch common {
		case expression.Double, expression.Integer:
			return expression.Binary(name, result, left, right,
				expression.Safe2(func(a, b float64) bool { return (a == b) == want }))
		case expression.String:
			return expression.Binary(name, result, left, right,
				expression.Safe2(func(a, b string) bool { return (a == b) == want }))
		case expression.Boolean:
			return expression.Binary(name, result, left, right,
				expression.Safe2(func(a, b bool) bool { return (a == b) == want }))
		default:
			return expression.Binary(name, result, left, right,
				expression.Safe2(func(a, b time.Time) bool { return a.Equal(b) == want }))
		}
	}
}

func operator(name, key string, minArgs, maxArgs int, result expression.ResultTypeFunc) expression.FunctionDescription {
	return describe(GroupOperators, name, minArgs, maxArgs, result, expression.WithKey(key))
}

func newOperations() *expression.SimpleModule {
	numeric := expression.NumericResult
	compare := expression.ComparisonResult
	logic := expression.BooleanResult

	functions := []expression.Function{
		expression.NewFunction(operator("+", "addition", 2, 2, plusResult), computePlus),
		expression.MustOneOrTwo("-", numeric,
			expression.Safe1(func(v float64) float64 { return -v }),
			expression.Safe2(func(a, b float64) float64 { return a - b }),
			expression.WithKey("subtraction"),
			expression.WithGroup(GroupOperators),
		),
		expression.BinaryFunction(operator("*", "multiplication", 2, 2, numeric),
			expression.Safe2(func(a, b float64) float64 { return a * b })),
		expression.BinaryFunction(operator("/", "division", 2, 2, expression.DoubleResult),
			expression.Safe2(func(a, b float64) float64 { return a / b })),
		expression.BinaryFunction(operator("%", "modulus", 2, 2, numeric), expression.Safe2(math.Mod)),
		expression.BinaryFunction(operator("^", "power", 2, 2, expression.DoubleResult), expression.Safe2(math.Pow)),
		expression.NewFunction(operator("<", "less_than", 2, 2, compare), order("<", func(c int) bool { return c < 0 })),
		expression.NewFunction(operator(">", "greater_than", 2, 2, compare), order(">", func(c int) bool { return c > 0 })),
		expression.NewFunction(operator("<=", "less_equals", 2, 2, compare), order("<=", func(c int) bool { return c <= 0 })),
		expression.NewFunction(operator(">=", "greater_equals", 2, 2, compare), order(">=", func(c int) bool { return c >= 0 })),
		expression.NewFunction(operator("==", "equals", 2, 2, compare), equality("==", true)),
		expression.NewFunction(operator("!=", "not_equals", 2, 2, compare), equality("!=", false)),
		expression.BinaryFunction(operator("&&", "and", 2, 2, logic),
			expression.Safe2(func(a, b bool) bool { return a && b })),
		expression.BinaryFunction(operator("||", "or", 2, 2, logic),
			expression.Safe2(func(a, b bool) bool { return a || b })),
		expression.UnaryFunction(operator("!", "not", 1, 1, logic),
			expression.Safe1(func(a bool) bool { return !a })),
	}
	return expression.MustModule(OperationsKey, functions, nil)
}
