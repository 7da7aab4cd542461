// Package adapters wraps the Extism SDK plugin types behind small
// interfaces so the compiler and executable can be tested with mocks.
package adapters

import (
	"context"
	"crypto/rand"

	extismSDK "github.com/extism/go-sdk"
	"github.com/tetratelabs/wazero"
)

// NewPluginInstanceConfig returns the configuration used for every plugin
// instance: wall and monotonic clocks plus a secure random source.
func NewPluginInstanceConfig() extismSDK.PluginInstanceConfig {
	moduleConfig := wazero.NewModuleConfig().
		WithSysWalltime().
		WithSysNanotime().
		WithRandSource(rand.Reader)

	return extismSDK.PluginInstanceConfig{
		ModuleConfig: moduleConfig,
	}
}

// sdkCompiledPlugin adapts extismSDK.CompiledPlugin to CompiledPlugin
type sdkCompiledPlugin struct {
	plugin *extismSDK.CompiledPlugin
}

// NewCompiledPluginAdapter creates a new adapter for extismSDK.CompiledPlugin
func NewCompiledPluginAdapter(plugin *extismSDK.CompiledPlugin) CompiledPlugin {
	if plugin == nil {
		return nil
	}
	return &sdkCompiledPlugin{plugin: plugin}
}

// Instance creates a new instance of the plugin
func (a *sdkCompiledPlugin) Instance(
	ctx context.Context,
	config extismSDK.PluginInstanceConfig,
) (PluginInstance, error) {
	instance, err := a.plugin.Instance(ctx, config)
	if err != nil {
		return nil, err
	}
	return &sdkPluginAdapter{instance: instance}, nil
}

func (a *sdkCompiledPlugin) Close(ctx context.Context) error {
	return a.plugin.Close(ctx)
}

// sdkPluginAdapter adapts extismSDK.Plugin to PluginInstance
type sdkPluginAdapter struct {
	instance *extismSDK.Plugin
}

func (a *sdkPluginAdapter) CallWithContext(
	ctx context.Context,
	name string,
	data []byte,
) (uint32, []byte, error) {
	return a.instance.CallWithContext(ctx, name, data)
}

func (a *sdkPluginAdapter) FunctionExists(name string) bool {
	return a.instance.FunctionExists(name)
}

func (a *sdkPluginAdapter) Close(ctx context.Context) error {
	return a.instance.Close(ctx)
}
