package expression

import (
	"context"
	"testing"

	"github.com/robbyt/go-formula/platform/constants"
	"github.com/robbyt/go-formula/platform/data"
	"github.com/stretchr/testify/require"
)

// rows binds row values to contexts for column leaves in tests
var rows = data.NewContextProvider(constants.RowData)

// rowCtx returns a context carrying row
func rowCtx(t *testing.T, row map[string]any) context.Context {
	t.Helper()
	ctx, err := rows.AddDataToContext(t.Context(), row)
	require.NoError(t, err)
	return ctx
}

// column returns a non-constant leaf reading name from the row
func column(t *testing.T, name string, typ Type) *Evaluator {
	t.Helper()
	ev, err := NewColumn(name, typ, rows)
	require.NoError(t, err)
	return ev
}

// countingAccessor returns a non-constant double evaluator that records how
// often it was invoked
func countingAccessor(t *testing.T, value float64, calls *int) *Evaluator {
	t.Helper()
	ev, err := NewEvaluator(Double, func(context.Context) (float64, error) {
		*calls++
		return value, nil
	}, false)
	require.NoError(t, err)
	return ev
}
