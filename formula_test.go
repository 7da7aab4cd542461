package formula

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"math"
	"strings"
	"sync"
	"testing"

	"github.com/robbyt/go-formula/options"
	"github.com/robbyt/go-formula/platform/expression"
	"github.com/robbyt/go-formula/platform/registry"
	"github.com/robbyt/go-formula/stdlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discard() slog.Handler {
	return slog.NewTextHandler(io.Discard, nil)
}

// pairModule holds double_or_pair: twice its argument, or the sum of two.
func pairModule(t *testing.T) expression.Module {
	t.Helper()
	f, err := expression.NewOneOrTwo("double_or_pair", nil,
		expression.Safe1(func(x float64) float64 { return 2 * x }),
		expression.Safe2(func(x, y float64) float64 { return x + y }),
	)
	require.NoError(t, err)
	m, err := expression.NewModule("test.pair", []expression.Function{f}, nil)
	require.NoError(t, err)
	return m
}

func newEnv(t *testing.T, opts ...options.Option) *Environment {
	t.Helper()
	env, err := New(append([]options.Option{options.WithLogHandler(discard())}, opts...)...)
	require.NoError(t, err)
	return env
}

func bind(t *testing.T, env *Environment, row map[string]any) context.Context {
	t.Helper()
	ctx, err := env.BindRow(t.Context(), row)
	require.NoError(t, err)
	return ctx
}

func TestNew_Defaults(t *testing.T) {
	t.Parallel()

	env := newEnv(t)
	keys := make([]string, 0)
	for _, m := range env.Modules() {
		keys = append(keys, m.Key())
	}
	assert.Equal(t, []string{stdlib.ConstantsKey, stdlib.FunctionsKey, stdlib.OperationsKey}, keys)

	_, err := env.Function("round")
	require.NoError(t, err)
	pi, err := env.Constant("pi")
	require.NoError(t, err)
	assert.True(t, pi.IsConstant())
	assert.Contains(t, env.String(), "formula.Environment")
}

func TestNew_InvalidOption(t *testing.T) {
	t.Parallel()

	_, err := New(options.WithRegistry(nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error applying option")
}

func TestScenarios(t *testing.T) {
	t.Parallel()

	env := newEnv(t, options.WithModules(pairModule(t)))

	t.Run("A folds a single constant argument", func(t *testing.T) {
		t.Parallel()
		ev, err := env.Compile(Fn("double_or_pair", Num(3)))
		require.NoError(t, err)
		assert.True(t, ev.IsConstant())
		assert.Equal(t, expression.Double, ev.Type())
		v, err := ev.Double(t.Context())
		require.NoError(t, err)
		assert.InDelta(t, 6.0, v, 1e-12)
	})

	t.Run("B evaluates per row", func(t *testing.T) {
		t.Parallel()
		ev, err := env.Compile(Fn("double_or_pair", Num(2), Column{Name: "y", Type: expression.Double}))
		require.NoError(t, err)
		assert.False(t, ev.IsConstant())

		get, err := ev.DoubleFunc()
		require.NoError(t, err)

		v, err := get(bind(t, env, map[string]any{"y": 5.0}))
		require.NoError(t, err)
		assert.InDelta(t, 7.0, v, 1e-12)

		v, err = get(bind(t, env, map[string]any{"y": -2.0}))
		require.NoError(t, err)
		assert.InDelta(t, 0.0, v, 1e-12)
	})

	t.Run("C rejects zero arguments", func(t *testing.T) {
		t.Parallel()
		_, err := env.Compile(Fn("double_or_pair"))
		var arity *expression.ArityError
		require.ErrorAs(t, err, &arity)
		assert.Equal(t, 1, arity.Min)
		assert.Equal(t, 2, arity.Max)
		assert.Equal(t, 0, arity.Actual)
		assert.Equal(t, expression.KindArity, expression.KindOf(err))
	})
}

func TestCompile(t *testing.T) {
	t.Parallel()

	env := newEnv(t)
	price := Column{Name: "price", Type: expression.Double}

	tests := []struct {
		name     string
		node     Node
		constant bool
		row      map[string]any
		want     any
	}{
		{
			name:     "constant arithmetic",
			node:     Fn("*", Fn("+", Num(1), Num(2)), Ref{Name: "pi"}),
			constant: true,
			want:     3 * math.Pi,
		},
		{
			name: "row arithmetic",
			node: Fn("round", Fn("*", price, Num(1.2)), Int(1)),
			row:  map[string]any{"price": 10.04},
			want: 12.0,
		},
		{
			name:     "text",
			node:     Fn("upper", Fn("concat", Text("a"), Text("b"))),
			constant: true,
			want:     "AB",
		},
		{
			name: "condition on row",
			node: Fn("if", Fn(">", price, Int(5)), Text("high"), Text("low")),
			row:  map[string]any{"price": 2},
			want: "low",
		},
		{
			name:     "boolean literal",
			node:     Fn("!", Bool(false)),
			constant: true,
			want:     true,
		},
		{
			name:     "leaf",
			node:     Fn("-", Leaf{Evaluator: expression.ConstantDouble(4)}),
			constant: true,
			want:     -4.0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ev, err := env.Compile(tt.node)
			require.NoError(t, err)
			assert.Equal(t, tt.constant, ev.IsConstant())

			ctx := t.Context()
			if tt.row != nil {
				ctx = bind(t, env, tt.row)
			}
			got, err := ev.Value(ctx)
			require.NoError(t, err)
			if f, ok := tt.want.(float64); ok {
				assert.InDelta(t, f, got, 1e-9)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCompile_Errors(t *testing.T) {
	t.Parallel()

	env := newEnv(t)

	tests := []struct {
		name string
		node Node
		want error
	}{
		{"unknown function", Fn("nope", Num(1)), ErrUnknownFunction},
		{"unknown constant", Fn("+", Ref{Name: "tau"}, Num(1)), ErrUnknownConstant},
		{"nil node", nil, ErrInvalidNode},
		{"nil leaf", Leaf{}, ErrInvalidNode},
		{"bad literal", Literal{Type: expression.Double, Value: "x"}, ErrInvalidNode},
		{"nested unknown", Fn("abs", Fn("missing_fn")), ErrUnknownFunction},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := env.Compile(tt.node)
			require.ErrorIs(t, err, tt.want)
		})
	}

	t.Run("type error", func(t *testing.T) {
		t.Parallel()
		_, err := env.Compile(Fn("*", Text("a"), Num(1)))
		require.Error(t, err)
		assert.Equal(t, expression.KindType, expression.KindOf(err))
	})

	t.Run("folding error", func(t *testing.T) {
		t.Parallel()
		_, err := env.Compile(Fn("date_parse", Text("not a date")))
		require.Error(t, err)
		assert.Equal(t, expression.KindConstantFolding, expression.KindOf(err))
	})

	t.Run("row error", func(t *testing.T) {
		t.Parallel()
		ev, err := env.Compile(Fn("upper", Column{Name: "name", Type: expression.String}))
		require.NoError(t, err)
		_, err = ev.Str(bind(t, env, map[string]any{}))
		require.Error(t, err)
		assert.Equal(t, expression.KindRowEvaluation, expression.KindOf(err))
	})
}

func TestApply(t *testing.T) {
	t.Parallel()

	env := newEnv(t)
	ev, err := env.Apply("max", expression.ConstantInteger(3), expression.ConstantDouble(4.5))
	require.NoError(t, err)
	v, err := ev.Double(t.Context())
	require.NoError(t, err)
	assert.InDelta(t, 4.5, v, 1e-12)

	_, err = env.Apply("unknown")
	require.ErrorIs(t, err, ErrUnknownFunction)
}

func TestSelection(t *testing.T) {
	t.Parallel()

	t.Run("operations only", func(t *testing.T) {
		t.Parallel()
		env := newEnv(t, options.WithOperationsOnly(pairModule(t)))
		_, err := env.Function("+")
		require.NoError(t, err)
		_, err = env.Function("double_or_pair")
		require.NoError(t, err)
		_, err = env.Function("round")
		require.ErrorIs(t, err, ErrUnknownFunction)
		_, err = env.Constant("pi")
		require.ErrorIs(t, err, ErrUnknownConstant)
	})

	t.Run("all registered", func(t *testing.T) {
		t.Parallel()
		reg := registry.New(discard())
		require.NoError(t, reg.Register(pairModule(t)))
		env := newEnv(t, options.WithRegistry(reg), options.WithAllRegistered())
		_, err := env.Function("double_or_pair")
		require.NoError(t, err)
		_, err = env.Function("round")
		require.NoError(t, err)
	})
}

func TestShadowing(t *testing.T) {
	t.Parallel()

	custom, err := expression.NewModule("test.shadow", []expression.Function{
		expression.UnaryFunction(
			expression.MustDescription("abs", 1, 1, expression.DoubleResult),
			expression.Safe1(func(x float64) float64 { return 100 }),
		),
	}, []expression.NamedConstant{{Name: "pi", Evaluator: expression.ConstantDouble(3)}})
	require.NoError(t, err)

	var buf bytes.Buffer
	env, err := New(
		options.WithLogHandler(slog.NewTextHandler(&buf, nil)),
		options.WithModules(custom),
	)
	require.NoError(t, err)

	ev, err := env.Compile(Fn("abs", Ref{Name: "pi"}))
	require.NoError(t, err)
	v, err := ev.Double(t.Context())
	require.NoError(t, err)
	assert.InDelta(t, 100.0, v, 1e-12)

	out := buf.String()
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "function=abs")
	assert.Contains(t, out, "constant=pi")
	assert.Equal(t, 2, strings.Count(out, "shadows an earlier definition"))
}

func TestDescribe(t *testing.T) {
	t.Parallel()

	bundle := expression.Bundle{
		"gui.dialog.function.addition.name":       "Addition",
		"gui.dialog.function.addition.parameters": "a + b",
		"gui.dialog.function.infinity.name":       "Infinity",
		"gui.dialog.function.round.help":          "Rounds a number",
	}
	env := newEnv(t, options.WithMetadata(bundle.Lookup))

	md, err := env.Describe("+")
	require.NoError(t, err)
	assert.Equal(t, "Addition", md.Name)
	assert.Equal(t, "a + b", md.Parameters)

	md, err = env.Describe("INFINITY")
	require.NoError(t, err)
	assert.Equal(t, "Infinity", md.Parameters)

	md, err = env.Describe("round")
	require.NoError(t, err)
	assert.Equal(t, "Rounds a number", md.Help)

	_, err = env.Describe("unknown")
	require.ErrorIs(t, err, ErrUnknownFunction)
}

func TestConcurrentEvaluation(t *testing.T) {
	t.Parallel()

	env := newEnv(t, options.WithModules(pairModule(t)))
	ev, err := env.Compile(Fn("double_or_pair", Column{Name: "x", Type: expression.Double}, Column{Name: "y", Type: expression.Double}))
	require.NoError(t, err)
	get, err := ev.DoubleFunc()
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := range 32 {
		wg.Go(func() {
			ctx, err := env.BindRow(context.Background(), map[string]any{"x": float64(i), "y": 1.0})
			if !assert.NoError(t, err) {
				return
			}
			v, err := get(ctx)
			assert.NoError(t, err)
			assert.InDelta(t, float64(i)+1, v, 1e-12)
		})
	}
	wg.Wait()
}

func TestNodeString(t *testing.T) {
	t.Parallel()

	n := Fn("+", Num(1.5), Column{Name: "x", Type: expression.Double}, Ref{Name: "pi"}, Text("s"))
	assert.Equal(t, "+(1.5, [x], pi, s)", n.String())
}

func TestParameters(t *testing.T) {
	t.Parallel()

	env := newEnv(t, options.WithParameters(map[string]any{"rate": 0.5, "price": 1.0}))
	ev, err := env.Compile(Fn("*",
		Column{Name: "price", Type: expression.Double},
		Column{Name: "rate", Type: expression.Double},
	))
	require.NoError(t, err)

	v, err := ev.Double(bind(t, env, map[string]any{"price": 10.0}))
	require.NoError(t, err)
	assert.InDelta(t, 5.0, v, 1e-12)

	v, err = ev.Double(bind(t, env, map[string]any{}))
	require.NoError(t, err)
	assert.InDelta(t, 0.5, v, 1e-12)
}
