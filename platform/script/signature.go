package script

import (
	"fmt"

	"github.com/robbyt/go-formula/platform/expression"
)

// Signature declares a script function to the expression engine.
//
// Example manifest entry:
//
//	- name: discount
//	  params: [double, integer]
//	  result: double
type Signature struct {
	// Name the function is called by in formulas, and in the script.
	Name string `yaml:"name"`
	// Key is the metadata base key. Empty means Name.
	Key   string `yaml:"key,omitempty"`
	Group string `yaml:"group,omitempty"`

	Params []expression.Type `yaml:"params"`
	Result expression.Type   `yaml:"result"`

	// Variadic lets the last parameter repeat any number of times.
	Variadic bool `yaml:"variadic,omitempty"`

	// Volatile functions are never folded, even over constant arguments.
	Volatile bool `yaml:"volatile,omitempty"`
}

// Validate checks that the signature can be turned into a function.
func (s Signature) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("%w: name is empty", ErrInvalidSignature)
	}
	if s.Variadic && len(s.Params) == 0 {
		return fmt.Errorf("%w: variadic function '%s' declares no parameters", ErrInvalidSignature, s.Name)
	}
	for i, p := range s.Params {
		if !p.Valid() {
			return fmt.Errorf("%w: '%s' parameter %d: %w: %s",
				ErrInvalidSignature, s.Name, i+1, expression.ErrUnknownType, p)
		}
	}
	if !s.Result.Valid() {
		return fmt.Errorf("%w: '%s' result: %w: %s",
			ErrInvalidSignature, s.Name, expression.ErrUnknownType, s.Result)
	}
	return nil
}

// Description returns the function contract of the signature.
func (s Signature) Description() (expression.FunctionDescription, error) {
	if err := s.Validate(); err != nil {
		return expression.FunctionDescription{}, err
	}
	minArgs, maxArgs := len(s.Params), len(s.Params)
	if s.Variadic {
		maxArgs = expression.UnboundedArgs
	}

	var opts []expression.DescriptionOption
	if s.Key != "" {
		opts = append(opts, expression.WithKey(s.Key))
	}
	if s.Group != "" {
		opts = append(opts, expression.WithGroup(s.Group))
	}
	return expression.NewDescription(s.Name, minArgs, maxArgs,
		expression.FixedResult(s.Result, s.Params...), opts...)
}

func (s Signature) String() string {
	return fmt.Sprintf("script.Signature{Name: %s, Params: %v, Result: %s}", s.Name, s.Params, s.Result)
}
