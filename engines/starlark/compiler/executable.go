package compiler

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/robbyt/go-formula/engines/starlark/internal"
	starlarkLib "go.starlark.net/starlark"
)

// Executable is a Starlark script whose global functions have been defined.
// It implements script.Caller; every call runs on its own thread.
type Executable struct {
	source   string
	globals  starlarkLib.StringDict
	maxSteps uint64
	logger   *slog.Logger
}

func newExecutable(source string, globals starlarkLib.StringDict, maxSteps uint64, handler slog.Handler) *Executable {
	return &Executable{
		source:   source,
		globals:  globals,
		maxSteps: maxSteps,
		logger:   slog.New(handler.WithGroup("Executable")),
	}
}

func (e *Executable) String() string {
	return fmt.Sprintf("starlark.Executable{Functions: %v}", e.Functions())
}

// GetSource returns the script source.
func (e *Executable) GetSource() string {
	return e.source
}

// Functions lists the callable globals of the script in sorted order.
func (e *Executable) Functions() []string {
	var names []string
	for name, v := range e.globals {
		if _, ok := v.(starlarkLib.Callable); ok {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}

// HasFunction reports whether the script defines a callable global name.
func (e *Executable) HasFunction(name string) bool {
	_, ok := e.globals[name].(starlarkLib.Callable)
	return ok
}

// Call invokes the global function name. The call is cancelled when ctx is
// done.
func (e *Executable) Call(ctx context.Context, name string, args []any) (any, error) {
	fn, ok := e.globals[name].(starlarkLib.Callable)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrFunctionNotFound, name)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tuple, err := internal.ToTuple(args)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrCallFailed, name, err)
	}

	thread := &starlarkLib.Thread{
		Name: name,
		Print: func(_ *starlarkLib.Thread, msg string) {
			e.logger.InfoContext(ctx, msg, "function", name)
		},
	}
	if e.maxSteps > 0 {
		thread.SetMaxExecutionSteps(e.maxSteps)
	}
	stop := context.AfterFunc(ctx, func() {
		thread.Cancel(context.Cause(ctx).Error())
	})
	defer stop()

	v, err := starlarkLib.Call(thread, fn, tuple, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrCallFailed, name, err)
	}
	out, err := internal.FromValue(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrCallFailed, name, err)
	}
	return out, nil
}
