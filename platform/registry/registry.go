// Package registry keeps the function and constant modules known to a
// formula environment, grouped by module key.
package registry

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/robbyt/go-formula/internal/helpers"
	"github.com/robbyt/go-formula/platform/expression"
	"github.com/robbyt/go-formula/stdlib"
)

// Registry maps module keys to the modules registered under them. Modules
// are only ever added. Registration normally happens during setup, but all
// methods are safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	modules map[string][]expression.Module
	keys    []string

	constants  expression.Module
	functions  expression.Module
	operations expression.Module

	logHandler slog.Handler
	logger     *slog.Logger
}

// New creates a Registry with the standard modules registered in the order
// constants, functions, operations.
func New(handler slog.Handler) *Registry {
	handler, logger := helpers.SetupLogger(handler, "registry", "Registry")
	r := &Registry{
		modules:    make(map[string][]expression.Module),
		constants:  stdlib.Constants(),
		functions:  stdlib.Functions(),
		operations: stdlib.Operations(),
		logHandler: handler,
		logger:     logger,
	}
	for _, m := range r.StandardModules() {
		r.add(m)
	}
	return r
}

func (r *Registry) String() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return fmt.Sprintf("registry.Registry{Keys: %d}", len(r.keys))
}

// Register appends m to the modules stored under its key.
func (r *Registry) Register(m expression.Module) error {
	if expression.IsNilModule(m) {
		return expression.ErrNilModule
	}
	if m.Key() == "" {
		return fmt.Errorf("%w: module key is empty", expression.ErrInvalidModule)
	}
	r.add(m)
	r.logger.Debug("module registered",
		"key", m.Key(),
		"functions", len(m.Functions()),
		"constants", len(m.Constants()),
	)
	return nil
}

func (r *Registry) add(m expression.Module) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := m.Key()
	if _, ok := r.modules[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.modules[key] = append(r.modules[key], m)
}

// Get returns the modules registered under key in registration order. The
// result is empty, never nil, for unknown keys.
func (r *Registry) Get(key string) []expression.Module {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := slices.Clone(r.modules[key])
	if out == nil {
		out = []expression.Module{}
	}
	return out
}

// GetAll returns every registered module, grouped by key in the order the
// keys were first registered.
func (r *Registry) GetAll() []expression.Module {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]expression.Module, 0, len(r.keys))
	for _, key := range r.keys {
		out = append(out, r.modules[key]...)
	}
	return out
}

// Keys returns the registered module keys in registration order.
func (r *Registry) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.keys)
}

// StandardModules returns the constants, functions and operations modules.
func (r *Registry) StandardModules() []expression.Module {
	return []expression.Module{r.constants, r.functions, r.operations}
}

// Operations returns the operator module.
func (r *Registry) Operations() expression.Module {
	return r.operations
}
