package stdlib

import (
	"math"
	"testing"
	"time"

	"github.com/robbyt/go-formula/platform/expression"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArithmetic(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		op       string
		inputs   []*expression.Evaluator
		want     any
		wantType expression.Type
	}{
		{"integer addition", "+", []*expression.Evaluator{intc(2), intc(3)}, 5.0, expression.Integer},
		{"mixed addition", "+", []*expression.Evaluator{intc(2), num(0.5)}, 2.5, expression.Double},
		{"concatenation", "+", []*expression.Evaluator{str("n="), intc(3)}, "n=3", expression.String},
		{"negation", "-", []*expression.Evaluator{intc(4)}, -4.0, expression.Integer},
		{"subtraction", "-", []*expression.Evaluator{num(4), intc(6)}, -2.0, expression.Double},
		{"multiplication", "*", []*expression.Evaluator{intc(4), intc(6)}, 24.0, expression.Integer},
		{"division", "/", []*expression.Evaluator{intc(7), intc(2)}, 3.5, expression.Double},
		{"modulus", "%", []*expression.Evaluator{intc(7), intc(4)}, 3.0, expression.Integer},
		{"power", "^", []*expression.Evaluator{intc(2), intc(3)}, 8.0, expression.Double},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ev, err := call(t, tt.op, tt.inputs...)
			require.NoError(t, err)
			assert.True(t, ev.IsConstant())
			assert.Equal(t, tt.wantType, ev.Type())
			v, err := ev.Value(t.Context())
			require.NoError(t, err)
			assert.Equal(t, tt.want, v)
		})
	}
}

func TestDivisionByZero(t *testing.T) {
	t.Parallel()

	assert.True(t, math.IsInf(value(t, "/", num(1), num(0)).(float64), 1))
	assert.True(t, math.IsNaN(value(t, "/", num(0), num(0)).(float64)))
}

func TestMinus_Arity(t *testing.T) {
	t.Parallel()

	_, err := call(t, "-")
	var arityErr *expression.ArityError
	require.ErrorAs(t, err, &arityErr)
	assert.Equal(t, "function '-' expects 1 to 2 arguments, got 0", arityErr.Error())
}

func TestComparisons(t *testing.T) {
	t.Parallel()

	early := expression.ConstantDate(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC))
	late := expression.ConstantDate(time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC))
	nan := num(math.NaN())

	tests := []struct {
		name   string
		op     string
		inputs []*expression.Evaluator
		want   bool
	}{
		{"less numbers", "<", []*expression.Evaluator{intc(1), num(1.5)}, true},
		{"greater numbers", ">", []*expression.Evaluator{intc(1), num(1.5)}, false},
		{"less equals", "<=", []*expression.Evaluator{intc(2), num(2)}, true},
		{"greater equals", ">=", []*expression.Evaluator{intc(1), num(2)}, false},
		{"nan never compares", "<", []*expression.Evaluator{nan, num(1)}, false},
		{"strings", "<", []*expression.Evaluator{str("apple"), str("banana")}, true},
		{"dates", ">", []*expression.Evaluator{late, early}, true},
		{"equal numbers", "==", []*expression.Evaluator{intc(2), num(2)}, true},
		{"nan is not equal to itself", "==", []*expression.Evaluator{nan, nan}, false},
		{"nan differs from itself", "!=", []*expression.Evaluator{nan, nan}, true},
		{"equal strings", "==", []*expression.Evaluator{str("a"), str("a")}, true},
		{"different booleans", "!=", []*expression.Evaluator{boolean(true), boolean(false)}, true},
		{"equal dates", "==", []*expression.Evaluator{early, early}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, value(t, tt.op, tt.inputs...))
		})
	}
}

func TestComparisons_TypeErrors(t *testing.T) {
	t.Parallel()

	var typeErr *expression.TypeError

	_, err := call(t, "<", intc(1), str("1"))
	require.ErrorAs(t, err, &typeErr)

	_, err = call(t, "<", boolean(true), boolean(false))
	require.ErrorAs(t, err, &typeErr)
	assert.Contains(t, typeErr.Error(), ErrNotOrderable.Error())
}

func TestLogicalOperators(t *testing.T) {
	t.Parallel()

	assert.Equal(t, false, value(t, "&&", boolean(true), boolean(false)))
	assert.Equal(t, true, value(t, "||", boolean(true), boolean(false)))
	assert.Equal(t, false, value(t, "!", boolean(true)))

	_, err := call(t, "&&", boolean(true), intc(1))
	var typeErr *expression.TypeError
	require.ErrorAs(t, err, &typeErr)
}

func TestOperators_RowEvaluation(t *testing.T) {
	t.Parallel()

	// price * (1 + rate) > 100
	price := column(t, "price", expression.Double)
	rate := column(t, "rate", expression.Double)
	factor, err := call(t, "+", intc(1), rate)
	require.NoError(t, err)
	total, err := call(t, "*", price, factor)
	require.NoError(t, err)
	expensive, err := call(t, ">", total, intc(100))
	require.NoError(t, err)
	assert.False(t, expensive.IsConstant())

	cases := []struct {
		row  map[string]any
		want bool
	}{
		{map[string]any{"price": 90.0, "rate": 0.2}, true},
		{map[string]any{"price": 80.0, "rate": 0.2}, false},
		{map[string]any{"price": 80.0}, false},
	}
	for _, r := range cases {
		got, err := expensive.Bool(rowCtx(r.row))
		require.NoError(t, err)
		assert.Equal(t, r.want, got, "row %v", r.row)
	}
}
