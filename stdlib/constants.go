package stdlib

import (
	"math"

	"github.com/robbyt/go-formula/platform/expression"
)

func newConstants() *expression.SimpleModule {
	return expression.MustModule(ConstantsKey, nil, []expression.NamedConstant{
		{Name: "true", Evaluator: expression.ConstantBoolean(true)},
		{Name: "false", Evaluator: expression.ConstantBoolean(false)},
		{Name: "e", Evaluator: expression.ConstantDouble(math.E)},
		{Name: "pi", Evaluator: expression.ConstantDouble(math.Pi)},
		{Name: "INFINITY", Key: "infinity", Evaluator: expression.ConstantDouble(math.Inf(1))},
		{Name: "MISSING_NUMERIC", Key: "missing_numeric", Evaluator: expression.ConstantDouble(math.NaN())},
	})
}
