// Package types names the script engines that can back formula functions.
package types

import "fmt"

// Type is the name of a script engine.
type Type string

const (
	// Starlark runs Starlark scripts with go.starlark.net.
	Starlark Type = "starlark"
	// Risor runs Risor scripts.
	Risor Type = "risor"
	// Extism runs WebAssembly modules through the Extism plugin runtime.
	Extism Type = "extism"
)

// All returns every engine type.
func All() []Type {
	return []Type{Starlark, Risor, Extism}
}

func (t Type) String() string {
	return string(t)
}

// Parse returns the engine type named s.
func Parse(s string) (Type, error) {
	for _, t := range All() {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown engine type: %q", s)
}
