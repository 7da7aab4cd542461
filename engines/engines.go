// Package engines builds script-backed formula modules for whichever engine
// a manifest names.
package engines

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/robbyt/go-formula/engines/extism"
	"github.com/robbyt/go-formula/engines/risor"
	"github.com/robbyt/go-formula/engines/starlark"
	"github.com/robbyt/go-formula/engines/types"
	"github.com/robbyt/go-formula/platform/expression"
	"github.com/robbyt/go-formula/platform/script"
	"github.com/robbyt/go-formula/platform/script/loader"
)

// FromManifest compiles the script behind ldr with the engine named by
// manifest.Engine and returns the module the manifest declares.
func FromManifest(
	logHandler slog.Handler,
	ldr loader.Loader,
	manifest *script.Manifest,
) (*expression.SimpleModule, error) {
	if manifest == nil {
		return nil, script.ErrInvalidManifest
	}
	engine, err := types.Parse(manifest.Engine)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", script.ErrInvalidManifest, err)
	}

	switch engine {
	case types.Starlark:
		return starlark.FromStarlarkManifest(logHandler, ldr, manifest)
	case types.Risor:
		return risor.FromRisorManifest(logHandler, ldr, manifest)
	case types.Extism:
		return extism.FromExtismManifest(logHandler, ldr, manifest)
	}
	return nil, fmt.Errorf("%w: unsupported engine %s", script.ErrInvalidManifest, engine)
}

// FromManifestReader parses the YAML manifest in r and calls FromManifest.
func FromManifestReader(
	logHandler slog.Handler,
	ldr loader.Loader,
	r io.Reader,
) (*expression.SimpleModule, error) {
	manifest, err := script.ParseManifest(r)
	if err != nil {
		return nil, err
	}
	return FromManifest(logHandler, ldr, manifest)
}
