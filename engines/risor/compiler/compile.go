package compiler

import (
	"context"
	"errors"
	"fmt"

	risorLib "github.com/risor-io/risor"
	risorCompiler "github.com/risor-io/risor/compiler"
	risorErrors "github.com/risor-io/risor/errz"
	risorParser "github.com/risor-io/risor/parser"
)

// compileSource parses and compiles source with the builtin globals plus
// extra global names.
func compileSource(source string, extra []string) (*risorCompiler.Code, error) {
	ast, err := risorParser.Parse(context.Background(), source)
	if err != nil {
		msg := err.Error()
		var friendly risorErrors.FriendlyError
		if errors.As(err, &friendly) {
			msg = friendly.FriendlyErrorMessage()
		}
		return nil, fmt.Errorf("parse: %s", msg)
	}

	names := append(risorLib.NewConfig().GlobalNames(), extra...)
	return risorCompiler.Compile(ast, risorCompiler.WithGlobalNames(names))
}
