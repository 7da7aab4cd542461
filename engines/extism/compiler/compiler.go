package compiler

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/robbyt/go-formula/engines/extism/adapters"
	"github.com/robbyt/go-formula/internal/helpers"
)

// Compiler turns a WASM module into an Executable whose exports can be
// called from formulas.
type Compiler struct {
	ctx        context.Context
	settings   *settings
	logHandler slog.Handler
	logger     *slog.Logger
}

// New creates an Extism Compiler with the provided options.
func New(opts ...FunctionalOption) (*Compiler, error) {
	c := &Compiler{}
	c.applyDefaults()

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, fmt.Errorf("error applying compiler option: %w", err)
		}
	}

	if err := c.validate(); err != nil {
		return nil, fmt.Errorf("invalid compiler configuration: %w", err)
	}

	if c.logger != nil {
		c.logHandler = c.logger.Handler()
	} else {
		c.logHandler, c.logger = helpers.SetupLogger(c.logHandler, "extism", "Compiler")
	}
	return c, nil
}

func (c *Compiler) String() string {
	return "extism.Compiler"
}

// Compile reads and closes scriptReader and compiles the WASM module it
// holds.
func (c *Compiler) Compile(scriptReader io.ReadCloser) (*Executable, error) {
	logger := c.logger.WithGroup("compile")

	if scriptReader == nil {
		return nil, ErrContentNil
	}
	wasmBytes, err := io.ReadAll(scriptReader)
	if err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}
	if err := scriptReader.Close(); err != nil {
		return nil, fmt.Errorf("failed to close reader: %w", err)
	}
	if len(wasmBytes) == 0 {
		logger.Error("Compile called with empty module")
		return nil, ErrContentNil
	}

	logger.Debug("Starting WASM compilation", "size", len(wasmBytes))
	plugin, err := compileBytes(c.ctx, wasmBytes, c.settings)
	if err != nil {
		logger.Warn("WASM compilation failed", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}
	if plugin == nil {
		return nil, ErrBytecodeNil
	}

	exec := newExecutable(helpers.SHA256(wasmBytes), plugin, adapters.NewPluginInstanceConfig(), c.logHandler)
	logger.Debug("WASM compilation completed", "executable", exec.String())
	return exec, nil
}
