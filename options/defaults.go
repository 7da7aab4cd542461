package options

import (
	"log/slog"
	"os"

	"github.com/robbyt/go-formula/platform/constants"
	"github.com/robbyt/go-formula/platform/data"
	"github.com/robbyt/go-formula/platform/expression"
	"github.com/robbyt/go-formula/platform/registry"
)

// DefaultConfig initializes a Config with sensible defaults
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.handler = DefaultHandler()
	cfg.registry = registry.New(cfg.handler)
	cfg.rows = DefaultRowProvider()
	cfg.metadata = DefaultMetadata()
	return cfg
}

// DefaultHandler returns the default logging handler
func DefaultHandler() slog.Handler {
	return slog.NewTextHandler(os.Stdout, nil)
}

// DefaultRowProvider returns the default row provider, which reads rows
// bound to the context under constants.RowData
func DefaultRowProvider() data.Provider {
	return data.NewContextProvider(constants.RowData)
}

// DefaultMetadata returns a lookup without any documentation entries
func DefaultMetadata() expression.LookupFunc {
	return expression.Bundle{}.Lookup
}

// WithDefaults applies default values to any config properties that are nil
func WithDefaults() Option {
	return func(c *Config) error {
		if c.handler == nil {
			c.handler = DefaultHandler()
		}
		if c.registry == nil {
			c.registry = registry.New(c.handler)
		}
		if c.rows == nil {
			c.rows = DefaultRowProvider()
		}
		if c.metadata == nil {
			c.metadata = DefaultMetadata()
		}
		return nil
	}
}
