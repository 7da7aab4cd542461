package stdlib

import (
	"math"

	"github.com/robbyt/go-formula/platform/expression"
)

// roundingResult yields Integer for one argument and Double when a number of
// decimal digits is given.
func roundingResult(inputs []expression.Type) (expression.Type, error) {
	if _, err := expression.NumericResult(inputs); err != nil {
		return 0, err
	}
	if len(inputs) == 1 {
		return expression.Integer, nil
	}
	return expression.Double, nil
}

// roundHalfUp rounds halves towards positive infinity. The fraction is
// compared after flooring since v+0.5 can round up in float64.
func roundHalfUp(v float64) float64 {
	r := math.Floor(v)
	if v-r >= 0.5 {
		r++
	}
	return r
}

func atDigits(round func(float64) float64) func(v, digits float64) float64 {
	return func(v, digits float64) float64 {
		scale := math.Pow(10, math.Trunc(digits))
		return round(v*scale) / scale
	}
}

func roundingFunctions() []expression.Function {
	toInteger := expression.FixedResult(expression.Integer, expression.Double)
	return []expression.Function{
		expression.MustOneOrTwo("round", roundingResult,
			expression.Safe1(roundHalfUp),
			expression.Safe2(atDigits(roundHalfUp)),
			expression.WithGroup(GroupRounding),
		),
		expression.MustOneOrTwo("rint", roundingResult,
			expression.Safe1(math.RoundToEven),
			expression.Safe2(atDigits(math.RoundToEven)),
			expression.WithGroup(GroupRounding),
		),
		expression.UnaryFunction(describe(GroupRounding, "floor", 1, 1, toInteger), expression.Safe1(math.Floor)),
		expression.UnaryFunction(describe(GroupRounding, "ceil", 1, 1, toInteger), expression.Safe1(math.Ceil)),
	}
}
