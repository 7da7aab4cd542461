package expression

// Function is a stateless unit of computation. Compute validates the inputs,
// derives the result type and builds the output Evaluator, folding it when
// every input is constant.
type Function interface {
	Description() FunctionDescription
	Compute(inputs ...*Evaluator) (*Evaluator, error)
}

// ComputeFunc builds the output Evaluator once the argument count has been
// checked and the result type derived.
type ComputeFunc func(result Type, inputs []*Evaluator) (*Evaluator, error)

type function struct {
	desc    FunctionDescription
	compute ComputeFunc
}

// NewFunction returns a Function that checks arity and derives the result
// type from desc before delegating to compute.
func NewFunction(desc FunctionDescription, compute ComputeFunc) Function {
	return &function{desc: desc, compute: compute}
}

func (f *function) Description() FunctionDescription {
	return f.desc
}

func (f *function) Compute(inputs ...*Evaluator) (*Evaluator, error) {
	result, err := prepare(f.desc, inputs)
	if err != nil {
		return nil, err
	}
	return f.compute(result, inputs)
}

func (f *function) String() string {
	return "expression.Function{" + f.desc.String() + "}"
}

// prepare runs the checks shared by every function: arity first, then the
// result type.
func prepare(desc FunctionDescription, inputs []*Evaluator) (Type, error) {
	if err := desc.CheckArity(len(inputs)); err != nil {
		return 0, err
	}
	ts, err := inputTypes(inputs)
	if err != nil {
		return 0, err
	}
	return desc.ResultType(ts)
}

// UnaryFunction lifts a one-operand kernel into a Function.
func UnaryFunction[A, R Value](desc FunctionDescription, kernel func(A) (R, error)) Function {
	return NewFunction(desc, func(result Type, inputs []*Evaluator) (*Evaluator, error) {
		return Unary(desc.Name(), result, inputs[0], kernel)
	})
}

// BinaryFunction lifts a two-operand kernel into a Function.
func BinaryFunction[A, B, R Value](desc FunctionDescription, kernel func(A, B) (R, error)) Function {
	return NewFunction(desc, func(result Type, inputs []*Evaluator) (*Evaluator, error) {
		return Binary(desc.Name(), result, inputs[0], inputs[1], kernel)
	})
}

// TernaryFunction lifts a three-operand kernel into a Function.
func TernaryFunction[A, B, C, R Value](desc FunctionDescription, kernel func(A, B, C) (R, error)) Function {
	return NewFunction(desc, func(result Type, inputs []*Evaluator) (*Evaluator, error) {
		return Ternary(desc.Name(), result, inputs[0], inputs[1], inputs[2], kernel)
	})
}

// VariadicFunction lifts a kernel over any number of same-typed operands.
func VariadicFunction[A, R Value](desc FunctionDescription, kernel func([]A) (R, error)) Function {
	return NewFunction(desc, func(result Type, inputs []*Evaluator) (*Evaluator, error) {
		return Variadic(desc.Name(), result, inputs, kernel)
	})
}

// Safe1 adapts a kernel that cannot fail.
func Safe1[A, R Value](f func(A) R) func(A) (R, error) {
	return func(a A) (R, error) { return f(a), nil }
}

// Safe2 adapts a two-operand kernel that cannot fail.
func Safe2[A, B, R Value](f func(A, B) R) func(A, B) (R, error) {
	return func(a A, b B) (R, error) { return f(a, b), nil }
}

// SafeN adapts a variadic kernel that cannot fail.
func SafeN[A, R Value](f func([]A) R) func([]A) (R, error) {
	return func(a []A) (R, error) { return f(a), nil }
}

// Safe3 adapts a three-operand kernel that cannot fail.
func Safe3[A, B, C, R Value](f func(A, B, C) R) func(A, B, C) (R, error) {
	return func(a A, b B, c C) (R, error) { return f(a, b, c), nil }
}
