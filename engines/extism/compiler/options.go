package compiler

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	extismSDK "github.com/extism/go-sdk"
	"github.com/tetratelabs/wazero"
)

// FunctionalOption is a function that configures a Compiler instance
type FunctionalOption func(*Compiler) error

// WithLogHandler sets the log handler for the compiler and its executables.
func WithLogHandler(handler slog.Handler) FunctionalOption {
	return func(c *Compiler) error {
		if handler == nil {
			return fmt.Errorf("log handler cannot be nil")
		}
		c.logHandler = handler
		c.logger = nil
		return nil
	}
}

// WithLogger sets a specific logger for the compiler.
func WithLogger(logger *slog.Logger) FunctionalOption {
	return func(c *Compiler) error {
		if logger == nil {
			return fmt.Errorf("logger cannot be nil")
		}
		c.logger = logger
		c.logHandler = nil
		return nil
	}
}

// WithWASIEnabled enables or disables WASI support
func WithWASIEnabled(enabled bool) FunctionalOption {
	return func(c *Compiler) error {
		c.settings.EnableWASI = enabled
		return nil
	}
}

// WithRuntimeConfig sets a custom wazero runtime configuration
func WithRuntimeConfig(config wazero.RuntimeConfig) FunctionalOption {
	return func(c *Compiler) error {
		if config == nil {
			return fmt.Errorf("runtime config cannot be nil")
		}
		c.settings.RuntimeConfig = config
		return nil
	}
}

// WithHostFunctions registers host functions the module may import.
func WithHostFunctions(funcs []extismSDK.HostFunction) FunctionalOption {
	return func(c *Compiler) error {
		c.settings.HostFunctions = funcs
		return nil
	}
}

// WithContext sets the context used while compiling the module.
func WithContext(ctx context.Context) FunctionalOption {
	return func(c *Compiler) error {
		if ctx == nil {
			return fmt.Errorf("context cannot be nil")
		}
		c.ctx = ctx
		return nil
	}
}

func (c *Compiler) applyDefaults() {
	if c.logHandler == nil && c.logger == nil {
		c.logHandler = slog.NewTextHandler(os.Stderr, nil)
	}
	if c.ctx == nil {
		c.ctx = context.Background()
	}
	c.settings = defaultSettings()
}

func (c *Compiler) validate() error {
	if c.logHandler == nil && c.logger == nil {
		return fmt.Errorf("either log handler or logger must be specified")
	}
	if c.settings.RuntimeConfig == nil {
		return fmt.Errorf("runtime config cannot be nil")
	}
	return nil
}
