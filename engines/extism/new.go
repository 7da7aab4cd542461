// Package extism provides formula functions exported by WebAssembly
// modules through the Extism plugin runtime.
//
// Each exported function reads its arguments as a JSON array from the
// plugin input and writes one JSON value as its output. A Signature
// declares each export to the expression engine.
package extism

import (
	"fmt"
	"log/slog"

	"github.com/robbyt/go-formula/engines/extism/compiler"
	"github.com/robbyt/go-formula/platform/expression"
	"github.com/robbyt/go-formula/platform/script"
	"github.com/robbyt/go-formula/platform/script/loader"
)

// NewCompiler creates a new Extism compiler using the functional options pattern.
func NewCompiler(opts ...compiler.FunctionalOption) (*compiler.Compiler, error) {
	return compiler.New(opts...)
}

// Compile loads and compiles the WASM module behind ldr.
func Compile(logHandler slog.Handler, ldr loader.Loader, opts ...compiler.FunctionalOption) (*compiler.Executable, error) {
	if ldr == nil {
		return nil, fmt.Errorf("loader is nil")
	}
	if logHandler != nil {
		opts = append([]compiler.FunctionalOption{compiler.WithLogHandler(logHandler)}, opts...)
	}
	c, err := NewCompiler(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Extism compiler: %w", err)
	}

	r, err := ldr.GetReader()
	if err != nil {
		return nil, fmt.Errorf("failed to load module %s: %w", ldr.GetSourceURL(), err)
	}
	return c.Compile(r)
}

// FromExtismLoader compiles the module behind ldr and returns a module
// exposing the exports declared by sigs under key.
func FromExtismLoader(
	logHandler slog.Handler,
	ldr loader.Loader,
	key string,
	sigs ...script.Signature,
) (*expression.SimpleModule, error) {
	exec, err := Compile(logHandler, ldr)
	if err != nil {
		return nil, err
	}
	return bind(exec, key, sigs...)
}

// FromExtismManifest is FromExtismLoader with the module key and signatures
// read from a manifest.
func FromExtismManifest(
	logHandler slog.Handler,
	ldr loader.Loader,
	manifest *script.Manifest,
	opts ...compiler.FunctionalOption,
) (*expression.SimpleModule, error) {
	if manifest == nil {
		return nil, script.ErrInvalidManifest
	}
	exec, err := Compile(logHandler, ldr, opts...)
	if err != nil {
		return nil, err
	}
	return bind(exec, manifest.Module, manifest.Functions...)
}

// caller is the part of compiler.Executable needed to expose its exports.
type caller interface {
	script.Caller
	HasFunction(name string) bool
}

func bind(exec caller, key string, sigs ...script.Signature) (*expression.SimpleModule, error) {
	for _, sig := range sigs {
		if !exec.HasFunction(sig.Name) {
			return nil, fmt.Errorf("%w: %s", compiler.ErrFunctionNotFound, sig.Name)
		}
	}
	return script.NewModule(key, exec, sigs...)
}
