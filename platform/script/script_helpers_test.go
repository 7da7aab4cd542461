package script

import (
	"context"
	"testing"

	"github.com/robbyt/go-formula/platform/constants"
	"github.com/robbyt/go-formula/platform/data"
	"github.com/robbyt/go-formula/platform/expression"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// mockCaller is a testify mock of Caller.
type mockCaller struct {
	mock.Mock
}

func (m *mockCaller) Call(ctx context.Context, name string, args []any) (any, error) {
	a := m.Called(ctx, name, args)
	return a.Get(0), a.Error(1)
}

var rows = data.NewContextProvider(constants.RowData)

func column(t *testing.T, name string, typ expression.Type) *expression.Evaluator {
	t.Helper()
	ev, err := expression.NewColumn(name, typ, rows)
	require.NoError(t, err)
	return ev
}

func rowCtx(t *testing.T, row map[string]any) context.Context {
	t.Helper()
	return rows.Bind(t.Context(), row)
}
