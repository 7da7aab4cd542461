package compiler

import (
	"maps"

	starlarkJSON "go.starlark.net/lib/json"
	starlarkMath "go.starlark.net/lib/math"
	starlarkTime "go.starlark.net/lib/time"
	starlarkLib "go.starlark.net/starlark"
)

// Module names predeclared for every script.
const (
	namespaceJSON = "json"
	namespaceMath = "math"
	namespaceTime = "time"
)

// universe returns a copy of the Starlark universe with the json, math and
// time modules added.
func universe() starlarkLib.StringDict {
	u := maps.Clone(starlarkLib.Universe)
	u[namespaceJSON] = starlarkJSON.Module
	u[namespaceMath] = starlarkMath.Module
	u[namespaceTime] = starlarkTime.Module
	return u
}
