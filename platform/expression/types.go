package expression

import (
	"fmt"
	"strings"
)

// Type is the value domain of an Evaluator. The order of the constants is
// significant and used when types are listed or sorted.
type Type int

const (
	// Double is the numeric domain. Values are float64.
	Double Type = iota
	// Integer is the whole-number subtype of Double. Values are float64 without a
	// fractional part and share the double accessor.
	Integer
	Boolean
	String
	Date
)

var typeNames = map[Type]string{
	Double:  "double",
	Integer: "integer",
	Boolean: "boolean",
	String:  "string",
	Date:    "date",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// Valid reports whether t is one of the declared types.
func (t Type) Valid() bool {
	_, ok := typeNames[t]
	return ok
}

// IsNumeric reports whether t belongs to the numeric family.
func (t Type) IsNumeric() bool {
	return t == Double || t == Integer
}

// ParseType converts a type name (case-insensitive) to a Type.
func ParseType(name string) (Type, error) {
	lowered := strings.ToLower(strings.TrimSpace(name))
	for t, n := range typeNames {
		if n == lowered {
			return t, nil
		}
	}
	// common aliases used in script signatures
	switch lowered {
	case "float", "number", "numeric", "real":
		return Double, nil
	case "int":
		return Integer, nil
	case "bool":
		return Boolean, nil
	case "str", "text", "nominal":
		return String, nil
	case "time", "datetime", "date_time":
		return Date, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownType, name)
}

// UnmarshalText implements encoding.TextUnmarshaler so types can be read from
// configuration files.
func (t *Type) UnmarshalText(text []byte) error {
	parsed, err := ParseType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Promote returns the least common supertype of a and b. Integer widens to
// Double; identical types promote to themselves. Any other combination is a
// *TypeError.
func Promote(a, b Type) (Type, error) {
	switch {
	case a == b:
		return a, nil
	case a.IsNumeric() && b.IsNumeric():
		return Double, nil
	default:
		return 0, &TypeError{Inputs: []Type{a, b}, Reason: "incompatible domains"}
	}
}

// PromoteAll folds Promote over all types. An empty list is an error.
func PromoteAll(types []Type) (Type, error) {
	if len(types) == 0 {
		return 0, &TypeError{Reason: "no input types"}
	}
	result := types[0]
	for _, t := range types[1:] {
		next, err := Promote(result, t)
		if err != nil {
			return 0, &TypeError{Inputs: types, Reason: "incompatible domains"}
		}
		result = next
	}
	return result, nil
}

// IsCompatible reports whether a value of type actual can be used where
// declared is expected. Only numeric widening is allowed.
func IsCompatible(declared, actual Type) bool {
	return declared == actual || (declared == Double && actual == Integer)
}
