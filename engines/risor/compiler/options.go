package compiler

import (
	"fmt"
	"log/slog"
	"maps"
	"os"
	"slices"
	"strings"

	risorLib "github.com/risor-io/risor"
)

// FunctionalOption is a function that configures a Compiler instance
type FunctionalOption func(*Compiler) error

// WithGlobals makes values available to the script as globals on every call.
func WithGlobals(globals map[string]any) FunctionalOption {
	return func(c *Compiler) error {
		builtins := risorLib.NewConfig().GlobalNames()
		for name := range globals {
			if slices.Contains(builtins, name) {
				return fmt.Errorf("global %q shadows a builtin", name)
			}
			if strings.HasPrefix(name, "formula_arg") {
				return fmt.Errorf("global %q uses a reserved prefix", name)
			}
		}
		c.globals = maps.Clone(globals)
		return nil
	}
}

// WithLogHandler creates an option to set the log handler for Risor compiler.
func WithLogHandler(handler slog.Handler) FunctionalOption {
	return func(c *Compiler) error {
		if handler == nil {
			return fmt.Errorf("log handler cannot be nil")
		}
		c.logHandler = handler
		// Clear logger if handler is explicitly set
		c.logger = nil
		return nil
	}
}

// WithLogger creates an option to set a specific logger for Risor compiler.
func WithLogger(logger *slog.Logger) FunctionalOption {
	return func(c *Compiler) error {
		if logger == nil {
			return fmt.Errorf("logger cannot be nil")
		}
		c.logger = logger
		// Clear handler if logger is explicitly set
		c.logHandler = nil
		return nil
	}
}

// validate checks if the compiler configuration is valid
func (c *Compiler) validate() error {
	if c.logHandler == nil && c.logger == nil {
		return fmt.Errorf("either log handler or logger must be specified")
	}
	return nil
}

// applyDefaults sets the default values for a compiler
func (c *Compiler) applyDefaults() {
	if c.logHandler == nil && c.logger == nil {
		c.logHandler = slog.NewTextHandler(os.Stderr, nil)
	}
	if c.globals == nil {
		c.globals = map[string]any{}
	}
}
