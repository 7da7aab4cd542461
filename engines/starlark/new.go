// Package starlark provides formula functions written in Starlark.
//
// A script defines plain top-level functions:
//
//	def discount(price, tier):
//	    return price * (1 - 0.05 * tier)
//
// and a Signature declares each one to the expression engine.
package starlark

import (
	"fmt"
	"log/slog"

	"github.com/robbyt/go-formula/engines/starlark/compiler"
	"github.com/robbyt/go-formula/platform/expression"
	"github.com/robbyt/go-formula/platform/script"
	"github.com/robbyt/go-formula/platform/script/loader"
)

// NewCompiler creates a new Starlark compiler using the functional options pattern.
func NewCompiler(opts ...compiler.FunctionalOption) (*compiler.Compiler, error) {
	return compiler.New(opts...)
}

// Compile loads and compiles the script behind ldr.
func Compile(logHandler slog.Handler, ldr loader.Loader, opts ...compiler.FunctionalOption) (*compiler.Executable, error) {
	if ldr == nil {
		return nil, fmt.Errorf("loader is nil")
	}
	if logHandler != nil {
		opts = append([]compiler.FunctionalOption{compiler.WithLogHandler(logHandler)}, opts...)
	}
	c, err := NewCompiler(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Starlark compiler: %w", err)
	}

	r, err := ldr.GetReader()
	if err != nil {
		return nil, fmt.Errorf("failed to load script %s: %w", ldr.GetSourceURL(), err)
	}
	return c.Compile(r)
}

// FromStarlarkLoader compiles the script behind ldr and returns a module
// exposing the functions declared by sigs under key. Every signature must
// name a function defined by the script.
func FromStarlarkLoader(
	logHandler slog.Handler,
	ldr loader.Loader,
	key string,
	sigs ...script.Signature,
) (*expression.SimpleModule, error) {
	return FromStarlarkLoaderWithGlobals(logHandler, ldr, nil, key, sigs...)
}

// FromStarlarkLoaderWithGlobals is FromStarlarkLoader with values
// predeclared for the script.
func FromStarlarkLoaderWithGlobals(
	logHandler slog.Handler,
	ldr loader.Loader,
	globals map[string]any,
	key string,
	sigs ...script.Signature,
) (*expression.SimpleModule, error) {
	var opts []compiler.FunctionalOption
	if globals != nil {
		opts = append(opts, compiler.WithGlobals(globals))
	}
	exec, err := Compile(logHandler, ldr, opts...)
	if err != nil {
		return nil, err
	}
	for _, sig := range sigs {
		if !exec.HasFunction(sig.Name) {
			return nil, fmt.Errorf("%w: %s", compiler.ErrFunctionNotFound, sig.Name)
		}
	}
	return script.NewModule(key, exec, sigs...)
}

// FromStarlarkManifest is FromStarlarkLoader with the module key and
// signatures read from a manifest.
func FromStarlarkManifest(
	logHandler slog.Handler,
	ldr loader.Loader,
	manifest *script.Manifest,
) (*expression.SimpleModule, error) {
	if manifest == nil {
		return nil, script.ErrInvalidManifest
	}
	return FromStarlarkLoader(logHandler, ldr, manifest.Module, manifest.Functions...)
}
