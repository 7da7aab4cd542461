package compiler

import (
	"fmt"
	"io"
	"log/slog"
	"maps"

	"github.com/robbyt/go-formula/engines/starlark/internal"
	"github.com/robbyt/go-formula/internal/helpers"
	starlarkLib "go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Compiler turns Starlark source into an Executable whose top-level
// functions can be called from formulas.
type Compiler struct {
	globals    map[string]any
	maxSteps   uint64
	logHandler slog.Handler
	logger     *slog.Logger
}

// New creates a Starlark Compiler with the provided options.
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

	c.setupLogger()
	return c, nil
}

func (c *Compiler) setupLogger() {
	if c.logger != nil {
		c.logHandler = c.logger.Handler()
		return
	}
	c.logHandler, c.logger = helpers.SetupLogger(c.logHandler, "starlark", "Compiler")
}

func (c *Compiler) String() string {
	return "starlark.Compiler"
}

// Compile reads and closes scriptReader, then runs the script once to
// define its functions. The resulting globals are frozen.
func (c *Compiler) Compile(scriptReader io.ReadCloser) (*Executable, error) {
	if scriptReader == nil {
		return nil, ErrContentNil
	}

	body, err := io.ReadAll(scriptReader)
	if err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}
	if err := scriptReader.Close(); err != nil {
		return nil, fmt.Errorf("failed to close reader: %w", err)
	}
	return c.compile(body)
}

func (c *Compiler) compile(body []byte) (*Executable, error) {
	logger := c.logger.WithGroup("compile")
	if len(body) == 0 {
		logger.Error("Compile called with empty script")
		return nil, ErrContentNil
	}

	predeclared := universe()
	user, err := internal.ToStringDict(c.globals)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}
	maps.Copy(predeclared, user)

	opts := &syntax.FileOptions{
		Set:             true,
		While:           true,
		TopLevelControl: true,
		Recursion:       true,
	}
	f, err := opts.Parse("formula.star", body, 0)
	if err != nil {
		logger.Warn("Parsing failed", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}
	program, err := starlarkLib.FileProgram(f, predeclared.Has)
	if err != nil {
		logger.Warn("Compilation failed", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}

	thread := &starlarkLib.Thread{
		Name: "init",
		Print: func(_ *starlarkLib.Thread, msg string) {
			logger.Info(msg, "thread", "init")
		},
	}
	globals, err := program.Init(thread, predeclared)
	if err != nil {
		logger.Warn("Initialization failed", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrInitFailed, err)
	}
	globals.Freeze()

	exec := newExecutable(string(body), globals, c.maxSteps, c.logHandler)
	logger.Debug("Compilation completed", "functions", exec.Functions())
	return exec, nil
}
