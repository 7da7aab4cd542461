// Package formula compiles parsed formulas into typed evaluators computed
// once per row. An Environment resolves function, operator and constant
// names against a set of modules and folds every all-constant sub-tree while
// compiling.
package formula

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robbyt/go-formula/internal/helpers"
	"github.com/robbyt/go-formula/options"
	"github.com/robbyt/go-formula/platform/data"
	"github.com/robbyt/go-formula/platform/expression"
)

// Environment is the set of functions and constants visible to a formula.
// It is immutable once created and safe for concurrent use.
type Environment struct {
	modules   []expression.Module
	functions map[string]expression.Function
	constants map[string]expression.NamedConstant
	rows      data.Provider
	metadata  expression.LookupFunc

	logHandler slog.Handler
	logger     *slog.Logger
}

// New creates an Environment. Without options it loads the standard
// constants, functions and operations from a fresh registry.
func New(opts ...options.Option) (*Environment, error) {
	cfg := options.DefaultConfig()

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("error applying option: %w", err)
		}
	}

	if err := options.WithDefaults()(cfg); err != nil {
		return nil, fmt.Errorf("error applying defaults: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	handler, logger := helpers.SetupLogger(cfg.GetHandler(), "formula", "Environment")
	env := &Environment{
		functions:  make(map[string]expression.Function),
		constants:  make(map[string]expression.NamedConstant),
		rows:       cfg.GetRowProvider(),
		metadata:   cfg.GetMetadata(),
		logHandler: handler,
		logger:     logger,
	}
	for _, m := range cfg.Modules() {
		env.load(m)
	}
	logger.Debug("environment created",
		"modules", len(env.modules),
		"functions", len(env.functions),
		"constants", len(env.constants))
	return env, nil
}

// load adds the names of m. A name already defined by an earlier module is
// replaced.
func (e *Environment) load(m expression.Module) {
	logger := e.logger.With("module", m.Key())
	e.modules = append(e.modules, m)
	for _, f := range m.Functions() {
		name := f.Description().Name()
		if _, ok := e.functions[name]; ok {
			logger.Warn("function shadows an earlier definition", "function", name)
		}
		e.functions[name] = f
	}
	for _, c := range m.Constants() {
		if _, ok := e.constants[c.Name]; ok {
			logger.Warn("constant shadows an earlier definition", "constant", c.Name)
		}
		e.constants[c.Name] = c
	}
}

func (e *Environment) String() string {
	return fmt.Sprintf("formula.Environment{Modules: %d, Functions: %d, Constants: %d}",
		len(e.modules), len(e.functions), len(e.constants))
}

// Modules returns the loaded modules in load order.
func (e *Environment) Modules() []expression.Module {
	out := make([]expression.Module, len(e.modules))
	copy(out, e.modules)
	return out
}

// Function returns the function or operator called name.
func (e *Environment) Function(name string) (expression.Function, error) {
	f, ok := e.functions[name]
	if !ok {
		return nil, fmt.Errorf("%w: '%s'", ErrUnknownFunction, name)
	}
	return f, nil
}

// Constant returns the evaluator of the constant called name.
func (e *Environment) Constant(name string) (*expression.Evaluator, error) {
	c, ok := e.constants[name]
	if !ok {
		return nil, fmt.Errorf("%w: '%s'", ErrUnknownConstant, name)
	}
	return c.Evaluator, nil
}

// Apply resolves name and computes it over inputs.
func (e *Environment) Apply(name string, inputs ...*expression.Evaluator) (*expression.Evaluator, error) {
	f, err := e.Function(name)
	if err != nil {
		return nil, err
	}
	return f.Compute(inputs...)
}

// Column returns a leaf reading name from the row bound through the
// environment's row provider.
func (e *Environment) Column(name string, typ expression.Type) (*expression.Evaluator, error) {
	return expression.NewColumn(name, typ, e.rows)
}

// BindRow returns a context carrying row for column leaves of this
// environment.
func (e *Environment) BindRow(ctx context.Context, row map[string]any) (context.Context, error) {
	return e.rows.AddDataToContext(ctx, row)
}

// RowProvider returns the provider column leaves read rows from.
func (e *Environment) RowProvider() data.Provider {
	return e.rows
}

// Describe returns the documentation of a function or constant. Functions
// take precedence when a name is both.
func (e *Environment) Describe(name string) (expression.Metadata, error) {
	if f, ok := e.functions[name]; ok {
		return expression.ResolveMetadata(f.Description().Key(), e.metadata), nil
	}
	if c, ok := e.constants[name]; ok {
		return expression.ResolveMetadata(c.MetadataKey(), e.metadata), nil
	}
	return expression.Metadata{}, fmt.Errorf("%w: '%s'", ErrUnknownFunction, name)
}

// Compile turns a node tree into an Evaluator. Children are compiled before
// their parent, so constant sub-trees are folded from the leaves up and the
// first construction error aborts the walk.
func (e *Environment) Compile(n Node) (*expression.Evaluator, error) {
	switch n := n.(type) {
	case Literal:
		ev, err := expression.ConstantOf(n.Type, n.Value)
		if err != nil {
			return nil, fmt.Errorf("%w: literal %v: %w", ErrInvalidNode, n.Value, err)
		}
		return ev, nil
	case Column:
		return e.Column(n.Name, n.Type)
	case Ref:
		return e.Constant(n.Name)
	case Leaf:
		if n.Evaluator == nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidNode, expression.ErrNilEvaluator)
		}
		return n.Evaluator, nil
	case Call:
		f, err := e.Function(n.Function)
		if err != nil {
			return nil, err
		}
		inputs := make([]*expression.Evaluator, len(n.Args))
		for i, arg := range n.Args {
			inputs[i], err = e.Compile(arg)
			if err != nil {
				return nil, err
			}
		}
		return f.Compute(inputs...)
	case nil:
		return nil, fmt.Errorf("%w: nil node", ErrInvalidNode)
	}
	return nil, fmt.Errorf("%w: %T", ErrInvalidNode, n)
}
