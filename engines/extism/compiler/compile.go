package compiler

import (
	"context"

	extismSDK "github.com/extism/go-sdk"
	"github.com/robbyt/go-formula/engines/extism/adapters"
	"github.com/tetratelabs/wazero"
)

// settings holds configuration for compiling a WASM module
type settings struct {
	EnableWASI    bool
	RuntimeConfig wazero.RuntimeConfig
	HostFunctions []extismSDK.HostFunction
}

func defaultSettings() *settings {
	return &settings{
		EnableWASI:    true,
		RuntimeConfig: wazero.NewRuntimeConfig(),
		HostFunctions: []extismSDK.HostFunction{},
	}
}

// compileBytes creates a compiled Extism plugin from raw WASM bytes
func compileBytes(
	ctx context.Context,
	wasmBytes []byte,
	opts *settings,
) (adapters.CompiledPlugin, error) {
	if len(wasmBytes) == 0 {
		return nil, ErrContentNil
	}
	if opts == nil {
		opts = defaultSettings()
	}

	manifest := extismSDK.Manifest{
		Wasm: []extismSDK.Wasm{
			extismSDK.WasmData{Data: wasmBytes},
		},
	}
	config := extismSDK.PluginConfig{
		EnableWasi:    opts.EnableWASI,
		RuntimeConfig: opts.RuntimeConfig,
	}

	plugin, err := extismSDK.NewCompiledPlugin(ctx, manifest, config, opts.HostFunctions)
	if err != nil {
		return nil, err
	}
	return adapters.NewCompiledPluginAdapter(plugin), nil
}
