package expression

// operands selects the scalar computation of a OneOrTwo function. It is
// resolved once when the function is applied, so the accessor built for the
// selected variant carries no arity branching.
type operands int

const (
	unaryOperands  operands = 1
	binaryOperands operands = 2
)

// OneOrTwo is a function over doubles with an optional second argument. One
// argument selects the unary computation and two arguments the binary one.
type OneOrTwo struct {
	desc   FunctionDescription
	unary  func(float64) (float64, error)
	binary func(float64, float64) (float64, error)
}

// NewOneOrTwo creates a OneOrTwo function accepting one or two numeric
// arguments. The result type is derived by resultType, or DoubleResult when
// resultType is nil.
func NewOneOrTwo(
	name string,
	resultType ResultTypeFunc,
	unary func(float64) (float64, error),
	binary func(float64, float64) (float64, error),
	opts ...DescriptionOption,
) (*OneOrTwo, error) {
	if resultType == nil {
		resultType = DoubleResult
	}
	desc, err := NewDescription(name, 1, 2, resultType, opts...)
	if err != nil {
		return nil, err
	}
	return NewOneOrTwoFromDescription(desc, unary, binary)
}

// NewOneOrTwoFromDescription creates a OneOrTwo function with a caller
// supplied contract. The contract may be wider than one or two arguments;
// counts outside {1, 2} are still rejected when the function is applied.
func NewOneOrTwoFromDescription(
	desc FunctionDescription,
	unary func(float64) (float64, error),
	binary func(float64, float64) (float64, error),
) (*OneOrTwo, error) {
	if unary == nil || binary == nil {
		return nil, ErrInvalidDescription
	}
	return &OneOrTwo{desc: desc, unary: unary, binary: binary}, nil
}

// MustOneOrTwo is NewOneOrTwo for package-level declarations.
func MustOneOrTwo(
	name string,
	resultType ResultTypeFunc,
	unary func(float64) (float64, error),
	binary func(float64, float64) (float64, error),
	opts ...DescriptionOption,
) *OneOrTwo {
	f, err := NewOneOrTwo(name, resultType, unary, binary, opts...)
	if err != nil {
		panic(err)
	}
	return f
}

func (f *OneOrTwo) Description() FunctionDescription {
	return f.desc
}

// Compute checks the declared bounds, derives the result type from all
// inputs and builds the accessor chain for the selected variant.
func (f *OneOrTwo) Compute(inputs ...*Evaluator) (*Evaluator, error) {
	result, err := prepare(f.desc, inputs)
	if err != nil {
		return nil, err
	}

	name := f.desc.Name()
	switch operands(len(inputs)) {
	case unaryOperands:
		return Unary(name, result, inputs[0], f.unary)
	case binaryOperands:
		return Binary(name, result, inputs[0], inputs[1], f.binary)
	}
	return nil, &ArityError{Function: name, Min: 1, Max: 2, Actual: len(inputs)}
}

func (f *OneOrTwo) String() string {
	return "expression.OneOrTwo{" + f.desc.String() + "}"
}
