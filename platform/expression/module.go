package expression

import (
	"fmt"
	"reflect"
)

// Module is a named bundle of functions and constants. Several modules may
// share a key.
type Module interface {
	Key() string
	Functions() []Function
	Constants() []NamedConstant
}

// NamedConstant is a constant value addressable by name in an expression.
type NamedConstant struct {
	Name string
	// Key is the metadata base key. Empty means Name.
	Key       string
	Evaluator *Evaluator
}

// MetadataKey returns the base key used to look up documentation.
func (c NamedConstant) MetadataKey() string {
	if c.Key != "" {
		return c.Key
	}
	return c.Name
}

// SimpleModule is a Module backed by fixed slices.
type SimpleModule struct {
	key       string
	functions []Function
	constants []NamedConstant
}

// NewModule creates a SimpleModule. Constants must be constant evaluators.
func NewModule(key string, functions []Function, constants []NamedConstant) (*SimpleModule, error) {
	if key == "" {
		return nil, fmt.Errorf("%w: module key is empty", ErrInvalidDescription)
	}
	for _, c := range constants {
		if c.Evaluator == nil || !c.Evaluator.IsConstant() {
			return nil, fmt.Errorf("%w: constant '%s' in module '%s' is not constant",
				ErrInvalidDescription, c.Name, key)
		}
	}
	for i, f := range functions {
		if f == nil {
			return nil, fmt.Errorf("%w: function %d in module '%s' is nil",
				ErrInvalidDescription, i, key)
		}
	}
	return &SimpleModule{key: key, functions: functions, constants: constants}, nil
}

// MustModule is NewModule for package-level declarations.
func MustModule(key string, functions []Function, constants []NamedConstant) *SimpleModule {
	m, err := NewModule(key, functions, constants)
	if err != nil {
		panic(err)
	}
	return m
}

func (m *SimpleModule) Key() string {
	if m == nil {
		return ""
	}
	return m.key
}

func (m *SimpleModule) Functions() []Function {
	if m == nil {
		return nil
	}
	return m.functions
}

func (m *SimpleModule) Constants() []NamedConstant {
	if m == nil {
		return nil
	}
	return m.constants
}

// IsNilModule reports whether m is nil or wraps a nil pointer.
func IsNilModule(m Module) bool {
	if m == nil {
		return true
	}
	rv := reflect.ValueOf(m)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

func (m *SimpleModule) String() string {
	return fmt.Sprintf("expression.Module{Key: %s, Functions: %d, Constants: %d}",
		m.key, len(m.functions), len(m.constants))
}
