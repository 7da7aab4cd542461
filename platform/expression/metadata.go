package expression

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// MetadataPrefix is prepended to every function and constant key when
// documentation is looked up.
const MetadataPrefix = "gui.dialog.function."

// Suffixes appended to a metadata base key.
const (
	SuffixName        = ".name"
	SuffixHelp        = ".help"
	SuffixGroup       = ".group"
	SuffixDescription = ".description"
	SuffixParameters  = ".parameters"
)

// Keys holds the fully qualified documentation keys of one function.
type Keys struct {
	Name        string
	Help        string
	Group       string
	Description string
	Parameters  string
}

// MetadataKeys derives the documentation keys for a base key.
func MetadataKeys(base string) Keys {
	full := MetadataPrefix + base
	return Keys{
		Name:        full + SuffixName,
		Help:        full + SuffixHelp,
		Group:       full + SuffixGroup,
		Description: full + SuffixDescription,
		Parameters:  full + SuffixParameters,
	}
}

// Metadata is the resolved human-readable documentation of a function.
type Metadata struct {
	Name        string
	Help        string
	Group       string
	Description string
	// Parameters is the function written with its parameters, for example
	// "round(value, digits)". Falls back to Name.
	Parameters string
}

// LookupFunc resolves a documentation key.
type LookupFunc func(key string) (string, bool)

// ResolveMetadata looks up the documentation of base. Absent keys resolve to
// empty strings, except Parameters which falls back to Name.
func ResolveMetadata(base string, lookup LookupFunc) Metadata {
	keys := MetadataKeys(base)
	get := func(key string) string {
		v, _ := lookup(key)
		return v
	}
	md := Metadata{
		Name:        get(keys.Name),
		Help:        get(keys.Help),
		Group:       get(keys.Group),
		Description: get(keys.Description),
	}
	if params, ok := lookup(keys.Parameters); ok {
		md.Parameters = params
	} else {
		md.Parameters = md.Name
	}
	return md
}

// Bundle is a flat key to text map of documentation entries.
type Bundle map[string]string

// Lookup implements LookupFunc.
func (b Bundle) Lookup(key string) (string, bool) {
	v, ok := b[key]
	return v, ok
}

// LoadBundle reads a flat YAML mapping of documentation keys to text.
func LoadBundle(r io.Reader) (Bundle, error) {
	bundle := make(Bundle)
	if err := yaml.NewDecoder(r).Decode(&bundle); err != nil {
		if errors.Is(err, io.EOF) {
			return bundle, nil
		}
		return nil, fmt.Errorf("failed to decode metadata bundle: %w", err)
	}
	return bundle, nil
}
