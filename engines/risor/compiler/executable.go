package compiler

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/robbyt/go-formula/engines/risor/internal"
	risorLib "github.com/risor-io/risor"
	risorCompiler "github.com/risor-io/risor/compiler"
)

type callSite struct {
	name string
	argc int
}

// Executable is a compiled Risor script. It implements script.Caller: each
// call evaluates the script followed by one call expression, with the
// arguments bound as globals. Call sites are compiled once per function
// name and argument count.
type Executable struct {
	source  string
	globals map[string]any
	logger  *slog.Logger

	mu    sync.Mutex
	sites map[callSite]*risorCompiler.Code
}

func newExecutable(source string, globals map[string]any, handler slog.Handler) *Executable {
	return &Executable{
		source:  source,
		globals: globals,
		logger:  slog.New(handler.WithGroup("Executable")),
		sites:   make(map[callSite]*risorCompiler.Code),
	}
}

func (e *Executable) String() string {
	return fmt.Sprintf("risor.Executable{Chars: %d}", len(e.source))
}

// GetSource returns the script source.
func (e *Executable) GetSource() string {
	return e.source
}

// HasFunction reports whether name is defined by the script.
func (e *Executable) HasFunction(name string) bool {
	if !isIdentifier(name) {
		return false
	}
	_, err := compileSource(e.source+"\n"+name, e.globalNames(0))
	return err == nil
}

// Call invokes the script function name with args.
func (e *Executable) Call(ctx context.Context, name string, args []any) (any, error) {
	code, err := e.callSite(name, len(args))
	if err != nil {
		return nil, err
	}

	result, err := risorLib.EvalCode(ctx, code, internal.ToOptions(e.globals, args)...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrCallFailed, name, err)
	}
	out, err := internal.FromObject(result)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrCallFailed, name, err)
	}
	return out, nil
}

func (e *Executable) callSite(name string, argc int) (*risorCompiler.Code, error) {
	key := callSite{name: name, argc: argc}

	e.mu.Lock()
	defer e.mu.Unlock()
	if code, ok := e.sites[key]; ok {
		return code, nil
	}

	if !isIdentifier(name) {
		return nil, fmt.Errorf("%w: %q", ErrFunctionNotFound, name)
	}
	argNames := internal.ArgNames(argc)
	src := e.source + "\n" + name + "(" + strings.Join(argNames, ", ") + ")\n"
	code, err := compileSource(src, e.globalNames(argc))
	if err != nil {
		e.logger.Debug("call site compilation failed", "function", name, "error", err)
		return nil, fmt.Errorf("%w: %s: %w", ErrFunctionNotFound, name, err)
	}
	e.sites[key] = code
	return code, nil
}

func (e *Executable) globalNames(argc int) []string {
	names := slices.Sorted(maps.Keys(e.globals))
	return append(names, internal.ArgNames(argc)...)
}

func isIdentifier(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}
