package script

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Manifest lists the functions a script exports to formulas.
//
// Example:
//
//	module: pricing
//	engine: starlark
//	functions:
//	  - name: discount
//	    params: [double, integer]
//	    result: double
//	  - name: label
//	    params: [string]
//	    variadic: true
//	    result: string
type Manifest struct {
	Module string `yaml:"module"`
	// Engine names the script engine the manifest is meant for. Loaders
	// bound to one engine ignore it.
	Engine    string      `yaml:"engine,omitempty"`
	Functions []Signature `yaml:"functions"`
}

// ParseManifest reads a YAML manifest and validates every signature.
func ParseManifest(r io.Reader) (*Manifest, error) {
	var m Manifest
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrInvalidManifest)
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidManifest, err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks the module key and every signature.
func (m *Manifest) Validate() error {
	var errz []error
	if m.Module == "" {
		errz = append(errz, fmt.Errorf("%w: module key is empty", ErrInvalidManifest))
	}
	if len(m.Functions) == 0 {
		errz = append(errz, fmt.Errorf("%w: no functions declared", ErrInvalidManifest))
	}
	for _, sig := range m.Functions {
		if err := sig.Validate(); err != nil {
			errz = append(errz, err)
		}
	}
	return errors.Join(errz...)
}
