package compiler

import (
	"context"

	extismSDK "github.com/extism/go-sdk"
	"github.com/robbyt/go-formula/engines/extism/adapters"
	"github.com/stretchr/testify/mock"
)

type mockPlugin struct {
	mock.Mock
}

func (m *mockPlugin) Instance(
	ctx context.Context,
	config extismSDK.PluginInstanceConfig,
) (adapters.PluginInstance, error) {
	args := m.Called(ctx, config)
	instance, _ := args.Get(0).(adapters.PluginInstance)
	return instance, args.Error(1)
}

func (m *mockPlugin) Close(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type mockInstance struct {
	mock.Mock
}

func (m *mockInstance) CallWithContext(ctx context.Context, name string, data []byte) (uint32, []byte, error) {
	args := m.Called(ctx, name, data)
	out, _ := args.Get(1).([]byte)
	return args.Get(0).(uint32), out, args.Error(2)
}

func (m *mockInstance) FunctionExists(name string) bool {
	return m.Called(name).Bool(0)
}

func (m *mockInstance) Close(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
