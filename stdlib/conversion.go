package stdlib

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/robbyt/go-formula/platform/expression"
)

func parseNumber(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNumber, s)
	}
	return v, nil
}

func formatDate(t time.Time) string {
	return t.Format(time.RFC3339)
}

func formatDateLayout(t time.Time, layout string) string {
	return t.Format(layout)
}

func conversionFunctions() []expression.Function {
	return []expression.Function{
		expression.NewFunction(
			describe(GroupConversion, "str", 1, 1, expression.FixedResult(text)),
			func(_ expression.Type, inputs []*expression.Evaluator) (*expression.Evaluator, error) {
				return expression.AsText(inputs[0])
			},
		),
		expression.UnaryFunction(
			describe(GroupConversion, "parse", 1, 1, expression.FixedResult(expression.Double, text)),
			parseNumber,
		),
		expression.UnaryFunction(
			describe(GroupConversion, "date_parse", 1, 1, expression.FixedResult(expression.Date, text)),
			expression.ParseDate,
		),
		expression.NewFunction(
			describe(GroupConversion, "date_str", 1, 2, expression.FixedResult(text, expression.Date, text)),
			func(result expression.Type, inputs []*expression.Evaluator) (*expression.Evaluator, error) {
				if len(inputs) == 1 {
					return expression.Unary("date_str", result, inputs[0], expression.Safe1(formatDate))
				}
				return expression.Binary("date_str", result, inputs[0], inputs[1], expression.Safe2(formatDateLayout))
			},
		),
	}
}
