package options

import (
	"io"
	"log/slog"
	"testing"

	"github.com/robbyt/go-formula/platform/constants"
	"github.com/robbyt/go-formula/platform/data"
	"github.com/robbyt/go-formula/platform/expression"
	"github.com/robbyt/go-formula/platform/registry"
	"github.com/robbyt/go-formula/stdlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testModule(t *testing.T, key string) expression.Module {
	t.Helper()
	m, err := expression.NewModule(key, nil, nil)
	require.NoError(t, err)
	return m
}

func moduleKeys(modules []expression.Module) []string {
	keys := make([]string, len(modules))
	for i, m := range modules {
		keys[i] = m.Key()
	}
	return keys
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.NotNil(t, cfg.GetHandler())
	assert.NotNil(t, cfg.GetRegistry())
	assert.NotNil(t, cfg.GetRowProvider())
	assert.NotNil(t, cfg.GetMetadata())
	assert.Equal(t, SelectStandard, cfg.GetSelection())
	assert.Equal(t,
		[]string{stdlib.ConstantsKey, stdlib.FunctionsKey, stdlib.OperationsKey},
		moduleKeys(cfg.Modules()),
	)
}

func TestWithOptions(t *testing.T) {
	t.Parallel()

	handler := slog.NewTextHandler(io.Discard, nil)
	reg := registry.New(handler)
	rows := data.NewContextProvider(constants.ContextKey("rows"))
	bundle := expression.Bundle{"k": "v"}

	cfg := &Config{}
	for _, opt := range []Option{
		WithLogHandler(handler),
		WithRegistry(reg),
		WithRowProvider(rows),
		WithMetadata(bundle.Lookup),
		WithDefaults(),
	} {
		require.NoError(t, opt(cfg))
	}

	require.NoError(t, cfg.Validate())
	assert.Equal(t, handler, cfg.GetHandler())
	assert.Same(t, reg, cfg.GetRegistry())
	assert.Equal(t, rows, cfg.GetRowProvider())
	v, ok := cfg.GetMetadata()("k")
	assert.True(t, ok)
	assert.Equal(t, "v", v)
}

func TestNilOptions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		opt  Option
	}{
		{"log handler", WithLogHandler(nil)},
		{"registry", WithRegistry(nil)},
		{"row provider", WithRowProvider(nil)},
		{"metadata", WithMetadata(nil)},
		{"custom module", WithModules(nil)},
		{"parameters", WithParameters(nil)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Error(t, tt.opt(DefaultConfig()))
		})
	}

	err := WithOperationsOnly(testModule(t, "ok"), nil)(DefaultConfig())
	require.ErrorIs(t, err, expression.ErrNilModule)

	var typedNil *expression.SimpleModule
	err = WithOperationsOnly(typedNil)(DefaultConfig())
	require.ErrorIs(t, err, expression.ErrNilModule)
}

func TestSelection(t *testing.T) {
	t.Parallel()

	handler := slog.NewTextHandler(io.Discard, nil)

	t.Run("standard plus custom", func(t *testing.T) {
		cfg := DefaultConfig()
		require.NoError(t, WithModules(testModule(t, "custom.a"))(cfg))
		assert.Equal(t,
			[]string{stdlib.ConstantsKey, stdlib.FunctionsKey, stdlib.OperationsKey, "custom.a"},
			moduleKeys(cfg.Modules()),
		)
	})

	t.Run("operations only", func(t *testing.T) {
		cfg := DefaultConfig()
		require.NoError(t, WithOperationsOnly(testModule(t, "custom.a"))(cfg))
		assert.Equal(t, SelectOperationsOnly, cfg.GetSelection())
		assert.Equal(t, []string{stdlib.OperationsKey, "custom.a"}, moduleKeys(cfg.Modules()))
	})

	t.Run("all registered", func(t *testing.T) {
		reg := registry.New(handler)
		require.NoError(t, reg.Register(testModule(t, "registered.b")))

		cfg := DefaultConfig()
		require.NoError(t, WithRegistry(reg)(cfg))
		require.NoError(t, WithAllRegistered()(cfg))
		assert.Equal(t,
			[]string{stdlib.ConstantsKey, stdlib.FunctionsKey, stdlib.OperationsKey, "registered.b"},
			moduleKeys(cfg.Modules()),
		)
	})

	t.Run("unknown selection", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.selection = Selection(9)
		require.Error(t, cfg.Validate())
		assert.Equal(t, "Selection(9)", cfg.selection.String())
	})
}

func TestValidate_Empty(t *testing.T) {
	t.Parallel()

	err := (&Config{}).Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no log handler specified")
	assert.Contains(t, err.Error(), "no registry specified")
	assert.Contains(t, err.Error(), "no row provider specified")
}

func TestWithParameters(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	params := map[string]any{"rate": 0.2, "price": 1.0}
	require.NoError(t, WithParameters(params)(cfg))
	params["rate"] = 0.9

	provider := cfg.GetRowProvider()
	ctx, err := provider.AddDataToContext(t.Context(), map[string]any{"price": 10.0})
	require.NoError(t, err)

	row, err := provider.GetData(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0.2, row["rate"])
	assert.Equal(t, 10.0, row["price"])
}
