package compiler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	extismSDK "github.com/extism/go-sdk"
	"github.com/robbyt/go-formula/engines/extism/adapters"
	"github.com/robbyt/go-formula/engines/extism/internal"
)

// Executable is a compiled WASM module. It implements script.Caller: each
// call runs on a fresh plugin instance, receiving its arguments as a JSON
// array and returning one JSON value.
type Executable struct {
	checksum       string
	plugin         adapters.CompiledPlugin
	instanceConfig extismSDK.PluginInstanceConfig
	logger         *slog.Logger

	closed atomic.Bool
	mu     sync.RWMutex
}

func newExecutable(
	checksum string,
	plugin adapters.CompiledPlugin,
	instanceConfig extismSDK.PluginInstanceConfig,
	handler slog.Handler,
) *Executable {
	return &Executable{
		checksum:       checksum,
		plugin:         plugin,
		instanceConfig: instanceConfig,
		logger:         slog.New(handler.WithGroup("Executable")),
	}
}

func (e *Executable) String() string {
	id := e.checksum
	if len(id) > 8 {
		id = id[:8]
	}
	return fmt.Sprintf("extism.Executable{SHA256: %s}", id)
}

// HasFunction reports whether the module exports name.
func (e *Executable) HasFunction(name string) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.closed.Load() {
		return false
	}

	ctx := context.Background()
	instance, err := e.plugin.Instance(ctx, e.instanceConfig)
	if err != nil {
		e.logger.Warn("Failed to create plugin instance", "error", err)
		return false
	}
	defer e.closeInstance(ctx, instance)
	return instance.FunctionExists(name)
}

// Call invokes the exported function name with args.
func (e *Executable) Call(ctx context.Context, name string, args []any) (any, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.closed.Load() {
		return nil, ErrExecutableClosed
	}

	input, err := internal.EncodeArgs(args)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrCallFailed, name, err)
	}

	instance, err := e.plugin.Instance(ctx, e.instanceConfig)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: failed to create plugin instance: %w", ErrCallFailed, name, err)
	}
	defer e.closeInstance(ctx, instance)

	if !instance.FunctionExists(name) {
		return nil, fmt.Errorf("%w: %s", ErrFunctionNotFound, name)
	}

	start := time.Now()
	exit, output, err := instance.CallWithContext(ctx, name, input)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: %s: execution cancelled: %w", ErrCallFailed, name, ctx.Err())
		}
		return nil, fmt.Errorf("%w: %s: %w", ErrCallFailed, name, err)
	}
	if exit != 0 {
		return nil, fmt.Errorf("%w: %s: non-zero exit code %d: %s", ErrCallFailed, name, exit, output)
	}

	result := internal.DecodeResult(output)
	e.logger.DebugContext(ctx, "call complete",
		"function", name,
		"result", result,
		"execTime", time.Since(start),
	)
	return result, nil
}

func (e *Executable) closeInstance(ctx context.Context, instance adapters.PluginInstance) {
	if err := instance.Close(ctx); err != nil {
		e.logger.Warn("Failed to close Extism plugin instance", "error", err)
	}
}

// Close releases the compiled module. Later calls fail with
// ErrExecutableClosed.
func (e *Executable) Close(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed.CompareAndSwap(false, true) {
		return e.plugin.Close(ctx)
	}
	return nil
}
