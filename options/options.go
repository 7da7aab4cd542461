package options

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"

	"github.com/robbyt/go-formula/platform/data"
	"github.com/robbyt/go-formula/platform/expression"
	"github.com/robbyt/go-formula/platform/registry"
)

// Selection chooses which registered modules an environment loads.
type Selection int

const (
	// SelectStandard loads the standard modules plus the custom ones.
	SelectStandard Selection = iota
	// SelectOperationsOnly loads only the operators plus the custom modules.
	SelectOperationsOnly
	// SelectAllRegistered loads every module of the registry.
	SelectAllRegistered
)

func (s Selection) String() string {
	switch s {
	case SelectStandard:
		return "standard"
	case SelectOperationsOnly:
		return "operations-only"
	case SelectAllRegistered:
		return "all-registered"
	}
	return fmt.Sprintf("Selection(%d)", int(s))
}

// Config holds all configuration for creating a formula environment
type Config struct {
	// Logger for the environment
	handler slog.Handler
	// Registry the modules are taken from
	registry *registry.Registry
	// Which registry modules to load
	selection Selection
	// Modules loaded after the selected registry modules
	custom []expression.Module
	// Provider binding rows to contexts for column leaves
	rows data.Provider
	// Values visible to column leaves on every row
	params map[string]any
	// Documentation lookup
	metadata expression.LookupFunc
}

// Option is a function that modifies Config
type Option func(*Config) error

// WithLogHandler sets the log handler for the environment
func WithLogHandler(handler slog.Handler) Option {
	return func(c *Config) error {
		if handler == nil {
			return fmt.Errorf("log handler cannot be nil")
		}
		c.handler = handler
		return nil
	}
}

// WithRegistry sets the registry the environment takes its modules from
func WithRegistry(r *registry.Registry) Option {
	return func(c *Config) error {
		if r == nil {
			return fmt.Errorf("registry cannot be nil")
		}
		c.registry = r
		return nil
	}
}

// WithModules loads the standard modules followed by custom.
func WithModules(custom ...expression.Module) Option {
	return withSelection(SelectStandard, custom)
}

// WithOperationsOnly loads the operators followed by custom, leaving out
// the standard constants and functions.
func WithOperationsOnly(custom ...expression.Module) Option {
	return withSelection(SelectOperationsOnly, custom)
}

// WithAllRegistered loads every module of the registry, standard and custom,
// in registration order.
func WithAllRegistered() Option {
	return withSelection(SelectAllRegistered, nil)
}

func withSelection(selection Selection, custom []expression.Module) Option {
	return func(c *Config) error {
		var errz []error
		for i, m := range custom {
			if expression.IsNilModule(m) {
				errz = append(errz, fmt.Errorf("custom module %d: %w", i, expression.ErrNilModule))
			}
		}
		if err := errors.Join(errz...); err != nil {
			return err
		}
		c.selection = selection
		c.custom = append(c.custom, custom...)
		return nil
	}
}

// WithRowProvider sets the provider column leaves read rows from
func WithRowProvider(provider data.Provider) Option {
	return func(c *Config) error {
		if provider == nil {
			return fmt.Errorf("row provider cannot be nil")
		}
		c.rows = provider
		return nil
	}
}

// WithParameters makes values visible to column leaves on every row. A row
// value of the same name takes precedence.
func WithParameters(params map[string]any) Option {
	return func(c *Config) error {
		if len(params) == 0 {
			return fmt.Errorf("parameters cannot be empty")
		}
		c.params = maps.Clone(params)
		return nil
	}
}

// WithMetadata sets the documentation lookup, for example Bundle.Lookup of a
// bundle read with expression.LoadBundle
func WithMetadata(lookup expression.LookupFunc) Option {
	return func(c *Config) error {
		if lookup == nil {
			return fmt.Errorf("metadata lookup cannot be nil")
		}
		c.metadata = lookup
		return nil
	}
}

// Validate performs basic validation on the configuration
func (c *Config) Validate() error {
	var errz []error
	if c.handler == nil {
		errz = append(errz, fmt.Errorf("no log handler specified"))
	}
	if c.registry == nil {
		errz = append(errz, fmt.Errorf("no registry specified"))
	}
	if c.rows == nil {
		errz = append(errz, fmt.Errorf("no row provider specified"))
	}
	switch c.selection {
	case SelectStandard, SelectOperationsOnly, SelectAllRegistered:
	default:
		errz = append(errz, fmt.Errorf("unknown module selection: %s", c.selection))
	}
	return errors.Join(errz...)
}

// Modules resolves the modules to load, in load order.
func (c *Config) Modules() []expression.Module {
	var out []expression.Module
	switch c.selection {
	case SelectOperationsOnly:
		out = append(out, c.registry.Operations())
	case SelectAllRegistered:
		out = append(out, c.registry.GetAll()...)
	default:
		out = append(out, c.registry.StandardModules()...)
	}
	return append(out, c.custom...)
}

// GetHandler returns the configured log handler
func (c *Config) GetHandler() slog.Handler {
	return c.handler
}

// GetRegistry returns the configured registry
func (c *Config) GetRegistry() *registry.Registry {
	return c.registry
}

// GetSelection returns the configured module selection
func (c *Config) GetSelection() Selection {
	return c.selection
}

// GetRowProvider returns the configured row provider. With parameters it is
// a composite of the parameters and the configured provider.
func (c *Config) GetRowProvider() data.Provider {
	if len(c.params) == 0 || c.rows == nil {
		return c.rows
	}
	return data.NewCompositeProvider(data.NewStaticProvider(maps.Clone(c.params)), c.rows)
}

// GetMetadata returns the configured documentation lookup
func (c *Config) GetMetadata() expression.LookupFunc {
	return c.metadata
}
