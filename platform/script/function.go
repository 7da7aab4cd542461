package script

import (
	"context"
	"fmt"
	"math"

	"github.com/robbyt/go-formula/platform/expression"
)

// Function is an expression function computed by a script. Calls over
// constant arguments are made once while the expression is built, unless
// the signature is volatile.
type Function struct {
	sig    Signature
	desc   expression.FunctionDescription
	caller Caller
}

// NewFunction binds sig to the script function of the same name in caller.
func NewFunction(caller Caller, sig Signature) (*Function, error) {
	if caller == nil {
		return nil, ErrNilCaller
	}
	desc, err := sig.Description()
	if err != nil {
		return nil, err
	}
	return &Function{sig: sig, desc: desc, caller: caller}, nil
}

func (f *Function) Description() expression.FunctionDescription {
	return f.desc
}

// Signature returns the declaration the function was built from.
func (f *Function) Signature() Signature {
	return f.sig
}

func (f *Function) String() string {
	return "script.Function{" + f.desc.String() + "}"
}

// Compute checks arity and argument types, then returns a folded constant
// or a per-row evaluator calling the script.
func (f *Function) Compute(inputs ...*expression.Evaluator) (*expression.Evaluator, error) {
	if err := f.desc.CheckArity(len(inputs)); err != nil {
		return nil, err
	}
	types := make([]expression.Type, len(inputs))
	constant := !f.sig.Volatile
	for i, in := range inputs {
		if in == nil {
			return nil, fmt.Errorf("%w: argument %d", expression.ErrNilEvaluator, i+1)
		}
		types[i] = in.Type()
		constant = constant && in.IsConstant()
	}
	result, err := f.desc.ResultType(types)
	if err != nil {
		return nil, err
	}

	name := f.desc.Name()
	call := func(ctx context.Context) (any, error) {
		args := make([]any, len(inputs))
		for i, in := range inputs {
			v, err := in.Value(ctx)
			if err != nil {
				return nil, err
			}
			args[i] = argument(in.Type(), v)
		}
		return f.caller.Call(ctx, name, args)
	}

	if constant {
		return expression.FoldValue(name, result, call)
	}
	return expression.Dynamic(name, result, call)
}

// argument hands integers to scripts as int64. Missing or infinite integers
// stay float64.
func argument(t expression.Type, v any) any {
	if t != expression.Integer {
		return v
	}
	f, ok := v.(float64)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return v
	}
	return int64(f)
}
