package compiler

import (
	"fmt"
	"io"
	"log/slog"
	"maps"
	"slices"
	"strings"

	"github.com/robbyt/go-formula/internal/helpers"
)

// Compiler turns Risor source into an Executable whose functions can be
// called from formulas.
type Compiler struct {
	globals    map[string]any
	logHandler slog.Handler
	logger     *slog.Logger
}

// New creates a Risor Compiler with the provided options.
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

	if c.logger != nil {
		c.logHandler = c.logger.Handler()
	} else {
		c.logHandler, c.logger = helpers.SetupLogger(c.logHandler, "risor", "Compiler")
	}
	return c, nil
}

func (c *Compiler) String() string {
	return "risor.Compiler"
}

// Compile reads and closes scriptReader and checks that the script compiles.
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
	return c.compile(string(body))
}

func (c *Compiler) compile(source string) (*Executable, error) {
	logger := c.logger.WithGroup("compile")
	if len(source) == 0 {
		return nil, ErrContentNil
	}
	if isCommentOnly(source) {
		logger.Warn("Script contains no code")
		return nil, ErrNoInstructions
	}

	globals := slices.Sorted(maps.Keys(c.globals))
	code, err := compileSource(source, globals)
	if err != nil {
		logger.Warn("Compilation failed", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}
	if code.InstructionCount() < 1 {
		logger.Warn("Bytecode has zero instructions")
		return nil, ErrNoInstructions
	}

	logger.Debug("Compilation successful", "instructionCount", code.InstructionCount())
	return newExecutable(source, c.globals, c.logHandler), nil
}

// isCommentOnly reports whether source holds nothing but blank lines and
// comments.
func isCommentOnly(source string) bool {
	for line := range strings.SplitSeq(source, "\n") {
		line = strings.TrimSpace(line)
		if line != "" && !strings.HasPrefix(line, "#") && !strings.HasPrefix(line, "//") {
			return false
		}
	}
	return true
}
