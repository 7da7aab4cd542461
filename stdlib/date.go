package stdlib

import (
	"context"
	"fmt"
	"time"

	"github.com/robbyt/go-formula/platform/expression"
)

// Date units accepted by date_add and date_get.
const (
	UnitYear        = "year"
	UnitMonth       = "month"
	UnitWeek        = "week"
	UnitDay         = "day"
	UnitHour        = "hour"
	UnitMinute      = "minute"
	UnitSecond      = "second"
	UnitMillisecond = "millisecond"
)

var date = expression.Date

func dateUnitConstants() []expression.NamedConstant {
	units := []struct{ name, unit string }{
		{"DATE_UNIT_YEAR", UnitYear},
		{"DATE_UNIT_MONTH", UnitMonth},
		{"DATE_UNIT_WEEK", UnitWeek},
		{"DATE_UNIT_DAY", UnitDay},
		{"DATE_UNIT_HOUR", UnitHour},
		{"DATE_UNIT_MINUTE", UnitMinute},
		{"DATE_UNIT_SECOND", UnitSecond},
		{"DATE_UNIT_MILLISECOND", UnitMillisecond},
	}
	out := make([]expression.NamedConstant, len(units))
	for i, u := range units {
		out[i] = expression.NamedConstant{Name: u.name, Evaluator: expression.ConstantString(u.unit)}
	}
	return out
}

func dateAdd(t time.Time, amount float64, unit string) (time.Time, error) {
	n := int(amount)
	switch unit {
	case UnitYear:
		return t.AddDate(n, 0, 0), nil
	case UnitMonth:
		return t.AddDate(0, n, 0), nil
	case UnitWeek:
		return t.AddDate(0, 0, 7*n), nil
	case UnitDay:
		return t.AddDate(0, 0, n), nil
	case UnitHour:
		return t.Add(time.Duration(n) * time.Hour), nil
	case UnitMinute:
		return t.Add(time.Duration(n) * time.Minute), nil
	case UnitSecond:
		return t.Add(time.Duration(n) * time.Second), nil
	case UnitMillisecond:
		return t.Add(time.Duration(n) * time.Millisecond), nil
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrUnknownDateUnit, unit)
}

func dateGet(t time.Time, unit string) (float64, error) {
	switch unit {
	case UnitYear:
		return float64(t.Year()), nil
	case UnitMonth:
		return float64(t.Month()), nil
	case UnitWeek:
		_, week := t.ISOWeek()
		return float64(week), nil
	case UnitDay:
		return float64(t.Day()), nil
	case UnitHour:
		return float64(t.Hour()), nil
	case UnitMinute:
		return float64(t.Minute()), nil
	case UnitSecond:
		return float64(t.Second()), nil
	case UnitMillisecond:
		return float64(t.Nanosecond() / int(time.Millisecond)), nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownDateUnit, unit)
}

func now(context.Context) (time.Time, error) {
	return time.Now(), nil
}

func dateFunctions() []expression.Function {
	datesToBool := expression.FixedResult(expression.Boolean, date)
	return []expression.Function{
		expression.NewFunction(
			describe(GroupDate, "date_now", 0, 0, expression.FixedResult(date)),
			func(result expression.Type, _ []*expression.Evaluator) (*expression.Evaluator, error) {
				return expression.Nullary("date_now", result, false, now)
			},
		),
		expression.BinaryFunction(describe(GroupDate, "date_before", 2, 2, datesToBool),
			expression.Safe2(time.Time.Before)),
		expression.BinaryFunction(describe(GroupDate, "date_after", 2, 2, datesToBool),
			expression.Safe2(time.Time.After)),
		expression.BinaryFunction(describe(GroupDate, "date_diff", 2, 2, expression.FixedResult(integer, date)),
			expression.Safe2(func(from, to time.Time) float64 { return float64(to.Sub(from).Milliseconds()) })),
		expression.TernaryFunction(
			describe(GroupDate, "date_add", 3, 3, expression.FixedResult(date, date, integer, text)),
			dateAdd,
		),
		expression.BinaryFunction(
			describe(GroupDate, "date_get", 2, 2, expression.FixedResult(integer, date, text)),
			dateGet,
		),
		expression.UnaryFunction(describe(GroupDate, "date_millis", 1, 1, expression.FixedResult(integer, date)),
			expression.Safe1(func(t time.Time) float64 { return float64(t.UnixMilli()) })),
	}
}
