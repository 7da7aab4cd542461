package expression

import "fmt"

// UnboundedArgs marks a FunctionDescription without an upper argument limit.
const UnboundedArgs = -1

// ResultTypeFunc derives the result type of a function from its input types.
type ResultTypeFunc func(inputs []Type) (Type, error)

// FunctionDescription is the immutable contract of a function: its name, the
// metadata key used for documentation, the accepted argument count, and the
// rule that derives its result type.
type FunctionDescription struct {
	name       string
	key        string
	group      string
	minArgs    int
	maxArgs    int
	resultType ResultTypeFunc
}

// NewDescription validates and creates a FunctionDescription. The metadata
// key defaults to the name. maxArgs may be UnboundedArgs.
func NewDescription(
	name string,
	minArgs, maxArgs int,
	resultType ResultTypeFunc,
	opts ...DescriptionOption,
) (FunctionDescription, error) {
	d := FunctionDescription{
		name:       name,
		key:        name,
		minArgs:    minArgs,
		maxArgs:    maxArgs,
		resultType: resultType,
	}
	for _, opt := range opts {
		opt(&d)
	}

	switch {
	case name == "":
		return FunctionDescription{}, fmt.Errorf("%w: name is empty", ErrInvalidDescription)
	case minArgs < 0:
		return FunctionDescription{}, fmt.Errorf(
			"%w: '%s' has negative minimum argument count %d",
			ErrInvalidDescription, name, minArgs,
		)
	case maxArgs != UnboundedArgs && maxArgs < minArgs:
		return FunctionDescription{}, fmt.Errorf(
			"%w: '%s' has maximum %d below minimum %d",
			ErrInvalidDescription, name, maxArgs, minArgs,
		)
	case resultType == nil:
		return FunctionDescription{}, fmt.Errorf(
			"%w: '%s' has no result type rule",
			ErrInvalidDescription, name,
		)
	}
	return d, nil
}

// MustDescription is NewDescription for package-level declarations of built-in
// functions. It panics on an invalid description.
func MustDescription(
	name string,
	minArgs, maxArgs int,
	resultType ResultTypeFunc,
	opts ...DescriptionOption,
) FunctionDescription {
	d, err := NewDescription(name, minArgs, maxArgs, resultType, opts...)
	if err != nil {
		panic(err)
	}
	return d
}

// DescriptionOption customizes optional fields of a FunctionDescription.
type DescriptionOption func(*FunctionDescription)

// WithKey sets the metadata base key (see MetadataKeys).
func WithKey(key string) DescriptionOption {
	return func(d *FunctionDescription) {
		if key != "" {
			d.key = key
		}
	}
}

// WithGroup sets the documentation group of the function.
func WithGroup(group string) DescriptionOption {
	return func(d *FunctionDescription) {
		d.group = group
	}
}

func (d FunctionDescription) Name() string  { return d.name }
func (d FunctionDescription) Key() string   { return d.key }
func (d FunctionDescription) Group() string { return d.group }
func (d FunctionDescription) MinArgs() int  { return d.minArgs }
func (d FunctionDescription) MaxArgs() int  { return d.maxArgs }

// IsUnbounded reports whether the function accepts any number of arguments
// above its minimum.
func (d FunctionDescription) IsUnbounded() bool {
	return d.maxArgs == UnboundedArgs
}

// CheckArity returns an *ArityError when n lies outside the declared bounds.
func (d FunctionDescription) CheckArity(n int) error {
	if n < d.minArgs || (d.maxArgs != UnboundedArgs && n > d.maxArgs) {
		return &ArityError{Function: d.name, Min: d.minArgs, Max: d.maxArgs, Actual: n}
	}
	return nil
}

// ResultType derives the result type for the given input types.
func (d FunctionDescription) ResultType(inputs []Type) (Type, error) {
	t, err := d.resultType(inputs)
	if err != nil {
		return 0, withFunction(d.name, err)
	}
	return t, nil
}

func (d FunctionDescription) String() string {
	upper := "*"
	if d.maxArgs != UnboundedArgs {
		upper = fmt.Sprint(d.maxArgs)
	}
	return fmt.Sprintf("%s[%d..%s]", d.name, d.minArgs, upper)
}

// NumericResult accepts numeric inputs only. The result is Integer when every
// input is Integer, otherwise Double.
func NumericResult(inputs []Type) (Type, error) {
	result := Integer
	for _, t := range inputs {
		if !t.IsNumeric() {
			return 0, &TypeError{Inputs: inputs, Reason: "numeric arguments expected"}
		}
		if t == Double {
			result = Double
		}
	}
	return result, nil
}

// DoubleResult accepts numeric inputs only and always yields Double.
func DoubleResult(inputs []Type) (Type, error) {
	if _, err := NumericResult(inputs); err != nil {
		return 0, err
	}
	return Double, nil
}

// FixedResult returns a rule that yields result when every input is
// compatible with the accepted type at the same position. The last accepted
// type repeats for variadic functions. No accepted types means any input.
func FixedResult(result Type, accepted ...Type) ResultTypeFunc {
	return func(inputs []Type) (Type, error) {
		if len(accepted) == 0 {
			return result, nil
		}
		for i, t := range inputs {
			want := accepted[min(i, len(accepted)-1)]
			if !IsCompatible(want, t) {
				return 0, &TypeError{
					Inputs: inputs,
					Reason: fmt.Sprintf("argument %d must be %s", i+1, want),
				}
			}
		}
		return result, nil
	}
}

// SameTypeResult promotes all inputs to a single type and returns it.
func SameTypeResult(inputs []Type) (Type, error) {
	return PromoteAll(inputs)
}

// ComparisonResult accepts inputs that promote to one type and yields
// Boolean.
func ComparisonResult(inputs []Type) (Type, error) {
	if _, err := PromoteAll(inputs); err != nil {
		return 0, err
	}
	return Boolean, nil
}

// BooleanResult accepts Boolean inputs only and yields Boolean.
var BooleanResult = FixedResult(Boolean, Boolean)
