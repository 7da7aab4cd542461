package stdlib

import (
	"math"

	"github.com/robbyt/go-formula/platform/expression"
)

func unaryDouble(name string, f func(float64) float64) expression.Function {
	return expression.UnaryFunction(
		describe(GroupMath, name, 1, 1, expression.DoubleResult),
		expression.Safe1(f),
	)
}

func binaryDouble(name string, f func(float64, float64) float64) expression.Function {
	return expression.BinaryFunction(
		describe(GroupMath, name, 2, 2, expression.DoubleResult),
		expression.Safe2(f),
	)
}

func signum(v float64) float64 {
	switch {
	case math.IsNaN(v):
		return v
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// aggregate folds values with f. A NaN input makes the result NaN.
func aggregate(f func(a, b float64) float64) func([]float64) float64 {
	return func(values []float64) float64 {
		acc := values[0]
		for _, v := range values[1:] {
			if math.IsNaN(v) {
				return v
			}
			acc = f(acc, v)
		}
		return acc
	}
}

func average(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func mathFunctions() []expression.Function {
	return []expression.Function{
		unaryDouble("sqrt", math.Sqrt),
		expression.UnaryFunction(
			describe(GroupMath, "abs", 1, 1, expression.NumericResult),
			expression.Safe1(math.Abs),
		),
		unaryDouble("exp", math.Exp),
		unaryDouble("ln", math.Log),
		unaryDouble("log", math.Log10),
		unaryDouble("ld", math.Log2),
		expression.UnaryFunction(
			describe(GroupMath, "sgn", 1, 1, expression.FixedResult(expression.Integer, expression.Double)),
			expression.Safe1(signum),
		),
		binaryDouble("pow", math.Pow),
		expression.BinaryFunction(
			describe(GroupMath, "mod", 2, 2, expression.NumericResult),
			expression.Safe2(math.Mod),
		),
		unaryDouble("sin", math.Sin),
		unaryDouble("cos", math.Cos),
		unaryDouble("tan", math.Tan),
		unaryDouble("asin", math.Asin),
		unaryDouble("acos", math.Acos),
		unaryDouble("atan", math.Atan),
		binaryDouble("atan2", math.Atan2),
		unaryDouble("sinh", math.Sinh),
		unaryDouble("cosh", math.Cosh),
		unaryDouble("tanh", math.Tanh),
		expression.VariadicFunction(
			describe(GroupMath, "min", 1, expression.UnboundedArgs, expression.NumericResult),
			expression.SafeN(aggregate(math.Min)),
		),
		expression.VariadicFunction(
			describe(GroupMath, "max", 1, expression.UnboundedArgs, expression.NumericResult),
			expression.SafeN(aggregate(math.Max)),
		),
		expression.VariadicFunction(
			describe(GroupMath, "avg", 1, expression.UnboundedArgs, expression.DoubleResult),
			expression.SafeN(average),
		),
	}
}
