package stdlib

import (
	"context"
	"testing"

	"github.com/robbyt/go-formula/platform/constants"
	"github.com/robbyt/go-formula/platform/data"
	"github.com/robbyt/go-formula/platform/expression"
	"github.com/stretchr/testify/require"
)

var rows = data.NewContextProvider(constants.RowData)

// lookup returns the function called name in m
func lookup(t *testing.T, m expression.Module, name string) expression.Function {
	t.Helper()
	for _, f := range m.Functions() {
		if f.Description().Name() == name {
			return f
		}
	}
	require.FailNow(t, "function not found", name)
	return nil
}

// call applies the standard function or operator name to inputs
func call(t *testing.T, name string, inputs ...*expression.Evaluator) (*expression.Evaluator, error) {
	t.Helper()
	for _, m := range All() {
		for _, f := range m.Functions() {
			if f.Description().Name() == name {
				return f.Compute(inputs...)
			}
		}
	}
	require.FailNow(t, "function not found", name)
	return nil, nil
}

// value applies name to inputs and reads the result for an empty row
func value(t *testing.T, name string, inputs ...*expression.Evaluator) any {
	t.Helper()
	ev, err := call(t, name, inputs...)
	require.NoError(t, err)
	v, err := ev.Value(t.Context())
	require.NoError(t, err)
	return v
}

func num(v float64) *expression.Evaluator { return expression.ConstantDouble(v) }
func intc(v int64) *expression.Evaluator { return expression.ConstantInteger(v) }
func str(v string) *expression.Evaluator { return expression.ConstantString(v) }
func boolean(v bool) *expression.Evaluator { return expression.ConstantBoolean(v) }

func column(t *testing.T, name string, typ expression.Type) *expression.Evaluator {
	t.Helper()
	ev, err := expression.NewColumn(name, typ, rows)
	require.NoError(t, err)
	return ev
}

func rowCtx(row map[string]any) context.Context {
	return rows.Bind(context.Background(), row)
}
