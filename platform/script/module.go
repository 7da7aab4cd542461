package script

import (
	"errors"
	"fmt"

	"github.com/robbyt/go-formula/platform/expression"
)

// NewModule builds a module of script functions, one per signature, all
// served by caller.
func NewModule(key string, caller Caller, sigs ...Signature) (*expression.SimpleModule, error) {
	if caller == nil {
		return nil, ErrNilCaller
	}

	functions := make([]expression.Function, 0, len(sigs))
	seen := make(map[string]struct{}, len(sigs))
	var errz []error
	for _, sig := range sigs {
		if _, dup := seen[sig.Name]; dup {
			errz = append(errz, fmt.Errorf("%w: '%s' is declared twice", ErrInvalidSignature, sig.Name))
			continue
		}
		seen[sig.Name] = struct{}{}

		f, err := NewFunction(caller, sig)
		if err != nil {
			errz = append(errz, err)
			continue
		}
		functions = append(functions, f)
	}
	if err := errors.Join(errz...); err != nil {
		return nil, err
	}
	return expression.NewModule(key, functions, nil)
}

// NewModuleFromManifest builds the module a manifest describes.
func NewModuleFromManifest(caller Caller, m *Manifest) (*expression.SimpleModule, error) {
	if m == nil {
		return nil, fmt.Errorf("%w: manifest is nil", ErrInvalidManifest)
	}
	return NewModule(m.Module, caller, m.Functions...)
}
