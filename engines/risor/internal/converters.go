// Package internal converts values between Go and Risor.
package internal

import (
	"fmt"
	"maps"
	"slices"

	risorLib "github.com/risor-io/risor"
	"github.com/risor-io/risor/object"
)

// ArgName is the global holding the argument at index i of a call site.
func ArgName(i int) string {
	return fmt.Sprintf("formula_arg%d", i)
}

// ArgNames lists the globals of a call site with n arguments.
func ArgNames(n int) []string {
	names := make([]string, n)
	for i := range n {
		names[i] = ArgName(i)
	}
	return names
}

// ToOptions converts shared globals and call arguments to Risor options.
// Risor converts the Go values itself.
func ToOptions(globals map[string]any, args []any) []risorLib.Option {
	opts := make([]risorLib.Option, 0, len(globals)+len(args))
	for _, name := range slices.Sorted(maps.Keys(globals)) {
		opts = append(opts, risorLib.WithGlobal(name, globals[name]))
	}
	for i, arg := range args {
		opts = append(opts, risorLib.WithGlobal(ArgName(i), arg))
	}
	return opts
}

// FromObject converts a Risor result to a Go value. Error and function
// results are errors.
func FromObject(obj object.Object) (any, error) {
	if obj == nil {
		return nil, nil
	}
	switch obj.Type() {
	case "error":
		return nil, fmt.Errorf("error returned from script: %s", obj.Inspect())
	case "function", "builtin":
		return nil, fmt.Errorf("function object returned from script: %s", obj.Inspect())
	}
	return obj.Interface(), nil
}
