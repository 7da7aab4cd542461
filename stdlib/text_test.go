package stdlib

import (
	"testing"

	"github.com/robbyt/go-formula/platform/expression"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextFunctions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		fn     string
		inputs []*expression.Evaluator
		want   any
	}{
		{"length counts characters", "length", []*expression.Evaluator{str("héllo")}, 5.0},
		{"lower", "lower", []*expression.Evaluator{str("MiXeD")}, "mixed"},
		{"upper", "upper", []*expression.Evaluator{str("MiXeD")}, "MIXED"},
		{"trim", "trim", []*expression.Evaluator{str("  pad \t")}, "pad"},
		{"concat", "concat", []*expression.Evaluator{str("a"), str("b"), str("c")}, "abc"},
		{"contains", "contains", []*expression.Evaluator{str("formula"), str("rmu")}, true},
		{"starts", "starts", []*expression.Evaluator{str("formula"), str("form")}, true},
		{"ends", "ends", []*expression.Evaluator{str("formula"), str("form")}, false},
		{"index", "index", []*expression.Evaluator{str("ünïcode"), str("code")}, 3.0},
		{"index absent", "index", []*expression.Evaluator{str("abc"), str("z")}, -1.0},
		{"replace", "replace", []*expression.Evaluator{str("a-b-c"), str("-"), str("+")}, "a+b+c"},
		{"cut", "cut", []*expression.Evaluator{str("abcdef"), intc(1), intc(3)}, "bcd"},
		{"prefix", "prefix", []*expression.Evaluator{str("abcdef"), intc(2)}, "ab"},
		{"prefix longer than text", "prefix", []*expression.Evaluator{str("ab"), intc(5)}, "ab"},
		{"suffix", "suffix", []*expression.Evaluator{str("abcdef"), intc(2)}, "ef"},
		{"char", "char", []*expression.Evaluator{str("äbc"), intc(0)}, "ä"},
		{"compare", "compare", []*expression.Evaluator{str("a"), str("b")}, -1.0},
		{"equals", "equals", []*expression.Evaluator{str("x"), str("x")}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, value(t, tt.fn, tt.inputs...))
		})
	}
}

func TestText_OutOfRange(t *testing.T) {
	t.Parallel()

	_, err := call(t, "cut", str("abc"), intc(2), intc(5))
	require.ErrorIs(t, err, ErrOutOfRange)
	assert.Equal(t, expression.KindConstantFolding, expression.KindOf(err))

	ev, err := call(t, "char", column(t, "s", expression.String), intc(3))
	require.NoError(t, err)
	_, err = ev.Str(rowCtx(map[string]any{"s": "ab"}))
	require.ErrorIs(t, err, ErrOutOfRange)
	assert.Equal(t, expression.KindRowEvaluation, expression.KindOf(err))
}

func TestText_TypeChecks(t *testing.T) {
	t.Parallel()

	_, err := call(t, "cut", str("abc"), num(0.5), intc(1))
	var typeErr *expression.TypeError
	require.ErrorAs(t, err, &typeErr)
	assert.Contains(t, typeErr.Reason, "argument 2")

	_, err = call(t, "lower", intc(1))
	require.ErrorAs(t, err, &typeErr)
}
