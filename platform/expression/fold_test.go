package expression

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errKernel = errors.New("kernel failed")

func TestUnary_Folding(t *testing.T) {
	t.Parallel()

	kernelCalls := 0
	kernel := func(v float64) (float64, error) {
		kernelCalls++
		return v + 1, nil
	}

	ev, err := Unary("inc", Double, ConstantDouble(41), kernel)
	require.NoError(t, err)
	require.True(t, ev.IsConstant())
	assert.Equal(t, 1, kernelCalls, "kernel runs once at construction")

	for range 5 {
		v, err := ev.Double(t.Context())
		require.NoError(t, err)
		assert.Equal(t, 42.0, v)
	}
	assert.Equal(t, 1, kernelCalls, "constant accessor never re-runs the kernel")
}

func TestUnary_NonConstant(t *testing.T) {
	t.Parallel()

	childCalls := 0
	child := countingAccessor(t, 2, &childCalls)

	ev, err := Unary("square", Double, child, Safe1(func(v float64) float64 { return v * v }))
	require.NoError(t, err)
	assert.False(t, ev.IsConstant())
	assert.Zero(t, childCalls, "non-constant children are not read at construction")

	for i := 1; i <= 3; i++ {
		v, err := ev.Double(t.Context())
		require.NoError(t, err)
		assert.Equal(t, 4.0, v)
		assert.Equal(t, i, childCalls)
	}
}

func TestUnary_RowError(t *testing.T) {
	t.Parallel()

	ev, err := Unary("fail", Double, column(t, "x", Double), func(float64) (float64, error) {
		return 0, errKernel
	})
	require.NoError(t, err, "row failures are not raised at construction")

	_, err = ev.Double(rowCtx(t, map[string]any{"x": 1.0}))
	var rowErr *RowEvaluationError
	require.ErrorAs(t, err, &rowErr)
	require.ErrorIs(t, err, errKernel)
	assert.Equal(t, "fail", rowErr.Function)
	assert.Equal(t, KindRowEvaluation, KindOf(err))
	assert.False(t, IsConstructionError(err))
}

func TestRowError_NotDoubleWrapped(t *testing.T) {
	t.Parallel()

	inner, err := Unary("inner", Double, column(t, "x", Double), func(float64) (float64, error) {
		return 0, errKernel
	})
	require.NoError(t, err)
	outer, err := Unary("outer", Double, inner, Safe1(func(v float64) float64 { return v }))
	require.NoError(t, err)

	_, err = outer.Double(rowCtx(t, map[string]any{"x": 1.0}))
	var rowErr *RowEvaluationError
	require.ErrorAs(t, err, &rowErr)
	assert.Equal(t, "inner", rowErr.Function, "the first failing node is reported")
	assert.Equal(t, errKernel, rowErr.Unwrap())
}

func TestBinary(t *testing.T) {
	t.Parallel()

	concat := Safe2(func(a string, b float64) string {
		return a + strings.Repeat("!", int(b))
	})

	t.Run("both constant", func(t *testing.T) {
		ev, err := Binary("shout", String, ConstantString("hi"), ConstantInteger(2), concat)
		require.NoError(t, err)
		assert.True(t, ev.IsConstant())
		v, err := ev.Str(t.Context())
		require.NoError(t, err)
		assert.Equal(t, "hi!!", v)
	})

	t.Run("one column", func(t *testing.T) {
		ev, err := Binary("shout", String, column(t, "s", String), ConstantInteger(1), concat)
		require.NoError(t, err)
		assert.False(t, ev.IsConstant())
		v, err := ev.Str(rowCtx(t, map[string]any{"s": "hey"}))
		require.NoError(t, err)
		assert.Equal(t, "hey!", v)
	})

	t.Run("wrong operand type", func(t *testing.T) {
		_, err := Binary("shout", String, ConstantBoolean(true), ConstantInteger(1), concat)
		var typeErr *TypeError
		require.ErrorAs(t, err, &typeErr)
		assert.Equal(t, "shout", typeErr.Function)
	})

	t.Run("folding failure", func(t *testing.T) {
		_, err := Binary("div", Double, ConstantDouble(1), ConstantDouble(0),
			func(a, b float64) (float64, error) {
				if b == 0 {
					return 0, errKernel
				}
				return a / b, nil
			})
		require.ErrorIs(t, err, errKernel)
		assert.Equal(t, KindConstantFolding, KindOf(err))
	})
}

func TestTernary(t *testing.T) {
	t.Parallel()

	kernel := func(cond bool, a, b float64) (float64, error) {
		if cond {
			return a, nil
		}
		return b, nil
	}

	ev, err := Ternary("if", Double, ConstantBoolean(false), ConstantDouble(1), ConstantDouble(2), kernel)
	require.NoError(t, err)
	assert.True(t, ev.IsConstant())
	v, err := ev.Double(t.Context())
	require.NoError(t, err)
	assert.Equal(t, 2.0, v)

	ev, err = Ternary("if", Double, column(t, "c", Boolean), ConstantDouble(1), ConstantDouble(2), kernel)
	require.NoError(t, err)
	assert.False(t, ev.IsConstant())
	v, err = ev.Double(rowCtx(t, map[string]any{"c": true}))
	require.NoError(t, err)
	assert.Equal(t, 1.0, v)

	_, err = ev.Double(rowCtx(t, map[string]any{}))
	require.ErrorIs(t, err, ErrMissingValue)
}

func TestVariadic(t *testing.T) {
	t.Parallel()

	sum := SafeN(func(values []float64) float64 {
		total := 0.0
		for _, v := range values {
			total += v
		}
		return total
	})

	ev, err := Variadic("sum", Double, []*Evaluator{ConstantDouble(1), ConstantInteger(2), ConstantDouble(3)}, sum)
	require.NoError(t, err)
	assert.True(t, ev.IsConstant())
	v, err := ev.Double(t.Context())
	require.NoError(t, err)
	assert.Equal(t, 6.0, v)

	ev, err = Variadic("sum", Double, []*Evaluator{ConstantDouble(1), column(t, "x", Double)}, sum)
	require.NoError(t, err)
	assert.False(t, ev.IsConstant())
	v, err = ev.Double(rowCtx(t, map[string]any{"x": 10}))
	require.NoError(t, err)
	assert.Equal(t, 11.0, v)

	ev, err = Variadic("sum", Double, nil, sum)
	require.NoError(t, err)
	assert.True(t, ev.IsConstant(), "no inputs is constant")
}

func TestNullary(t *testing.T) {
	t.Parallel()

	calls := 0
	now := func(context.Context) (time.Time, error) {
		calls++
		return time.Unix(int64(calls), 0), nil
	}

	ev, err := Nullary("now", Date, false, now)
	require.NoError(t, err)
	assert.False(t, ev.IsConstant())
	assert.Zero(t, calls)

	first, err := ev.Time(t.Context())
	require.NoError(t, err)
	second, err := ev.Time(t.Context())
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	folded, err := Nullary("answer", Integer, true, func(context.Context) (float64, error) { return 42, nil })
	require.NoError(t, err)
	assert.True(t, folded.IsConstant())

	_, err = Nullary("broken", Double, true, func(context.Context) (float64, error) { return 0, errKernel })
	require.ErrorIs(t, err, errKernel)
	assert.Equal(t, KindConstantFolding, KindOf(err))
}

func TestNestedFoldingIsPostOrder(t *testing.T) {
	t.Parallel()

	add := BinaryFunction(MustDescription("+", 2, 2, NumericResult), Safe2(func(a, b float64) float64 { return a + b }))
	sqrt := UnaryFunction(MustDescription("sqrt", 1, 1, DoubleResult), func(v float64) (float64, error) {
		if v < 0 {
			return 0, errKernel
		}
		return math.Sqrt(v), nil
	})

	// sqrt(7 + 9) is fully constant
	sum, err := add.Compute(ConstantInteger(7), ConstantInteger(9))
	require.NoError(t, err)
	assert.Equal(t, Integer, sum.Type())
	root, err := sqrt.Compute(sum)
	require.NoError(t, err)
	assert.True(t, root.IsConstant())
	v, err := root.Double(t.Context())
	require.NoError(t, err)
	assert.Equal(t, 4.0, v)

	// sqrt(-7 + 1) fails while compiling
	neg, err := add.Compute(ConstantInteger(-7), ConstantInteger(1))
	require.NoError(t, err)
	_, err = sqrt.Compute(neg)
	require.ErrorIs(t, err, errKernel)
	assert.True(t, IsConstructionError(err))

	// sqrt(x + 9) stays non-constant and fails only for the offending row
	withColumn, err := add.Compute(column(t, "x", Double), ConstantInteger(9))
	require.NoError(t, err)
	root, err = sqrt.Compute(withColumn)
	require.NoError(t, err)
	assert.False(t, root.IsConstant())

	v, err = root.Double(rowCtx(t, map[string]any{"x": 16}))
	require.NoError(t, err)
	assert.Equal(t, 5.0, v)

	_, err = root.Double(rowCtx(t, map[string]any{"x": -100}))
	require.ErrorIs(t, err, errKernel)
	assert.Equal(t, KindRowEvaluation, KindOf(err))
}

func TestFunction_ArityEnforcement(t *testing.T) {
	t.Parallel()

	f := VariadicFunction(MustDescription("bounded", 2, 4, DoubleResult),
		SafeN(func(values []float64) float64 { return float64(len(values)) }))

	for n := 0; n <= 6; n++ {
		inputs := make([]*Evaluator, n)
		for i := range inputs {
			inputs[i] = ConstantDouble(float64(i))
		}
		ev, err := f.Compute(inputs...)
		if n < 2 || n > 4 {
			var arityErr *ArityError
			require.ErrorAs(t, err, &arityErr, "count %d", n)
			assert.Equal(t, 2, arityErr.Min)
			assert.Equal(t, 4, arityErr.Max)
			assert.Equal(t, n, arityErr.Actual)
			continue
		}
		require.NoError(t, err, "count %d", n)
		v, err := ev.Double(t.Context())
		require.NoError(t, err)
		assert.Equal(t, float64(n), v)
	}

	_, err := f.Compute(ConstantDouble(1), nil)
	require.ErrorIs(t, err, ErrNilEvaluator)
}
