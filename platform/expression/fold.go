package expression

import (
	"context"
)

// The helpers in this file build output evaluators from typed kernels. When
// every input is constant the kernel runs immediately and the result is
// captured; otherwise the returned accessor calls the children and the kernel
// on every invocation.

// foldCtx is used to read constant children during construction. Constant
// accessors never consult the row binding.
var foldCtx = context.Background()

func accessorFor[T Value](function string, in *Evaluator) (Accessor[T], error) {
	fn, err := AccessorOf[T](in)
	if err != nil {
		if in == nil {
			return nil, err
		}
		return nil, &TypeError{Function: function, Inputs: []Type{in.Type()}, Reason: err.Error()}
	}
	return fn, nil
}

func folded[R Value](function string, result Type, r R, err error) (*Evaluator, error) {
	if err != nil {
		return nil, FoldError(function, err)
	}
	return Constant(result, r)
}

// Nullary builds an evaluator from a kernel without operands. constant
// controls whether the kernel runs once now or on every invocation.
func Nullary[R Value](
	function string,
	result Type,
	constant bool,
	kernel func(ctx context.Context) (R, error),
) (*Evaluator, error) {
	if constant {
		r, err := kernel(foldCtx)
		return folded(function, result, r, err)
	}
	return NewEvaluator(result, func(ctx context.Context) (R, error) {
		r, err := kernel(ctx)
		if err != nil {
			return r, RowError(function, err)
		}
		return r, nil
	}, false)
}

// Unary builds the evaluator of kernel applied to in.
func Unary[A, R Value](
	function string,
	result Type,
	in *Evaluator,
	kernel func(A) (R, error),
) (*Evaluator, error) {
	get, err := accessorFor[A](function, in)
	if err != nil {
		return nil, err
	}

	if in.IsConstant() {
		a, err := get(foldCtx)
		if err != nil {
			return nil, FoldError(function, err)
		}
		r, err := kernel(a)
		return folded(function, result, r, err)
	}

	return NewEvaluator(result, func(ctx context.Context) (R, error) {
		var zero R
		a, err := get(ctx)
		if err != nil {
			return zero, RowError(function, err)
		}
		r, err := kernel(a)
		if err != nil {
			return zero, RowError(function, err)
		}
		return r, nil
	}, false)
}

// Binary builds the evaluator of kernel applied to left and right.
func Binary[A, B, R Value](
	function string,
	result Type,
	left, right *Evaluator,
	kernel func(A, B) (R, error),
) (*Evaluator, error) {
	getLeft, err := accessorFor[A](function, left)
	if err != nil {
		return nil, err
	}
	getRight, err := accessorFor[B](function, right)
	if err != nil {
		return nil, err
	}

	if left.IsConstant() && right.IsConstant() {
		a, err := getLeft(foldCtx)
		if err != nil {
			return nil, FoldError(function, err)
		}
		b, err := getRight(foldCtx)
		if err != nil {
			return nil, FoldError(function, err)
		}
		r, err := kernel(a, b)
		return folded(function, result, r, err)
	}

	return NewEvaluator(result, func(ctx context.Context) (R, error) {
		var zero R
		a, err := getLeft(ctx)
		if err != nil {
			return zero, RowError(function, err)
		}
		b, err := getRight(ctx)
		if err != nil {
			return zero, RowError(function, err)
		}
		r, err := kernel(a, b)
		if err != nil {
			return zero, RowError(function, err)
		}
		return r, nil
	}, false)
}

// Ternary builds the evaluator of kernel applied to three operands.
func Ternary[A, B, C, R Value](
	function string,
	result Type,
	first, second, third *Evaluator,
	kernel func(A, B, C) (R, error),
) (*Evaluator, error) {
	getFirst, err := accessorFor[A](function, first)
	if err != nil {
		return nil, err
	}
	getSecond, err := accessorFor[B](function, second)
	if err != nil {
		return nil, err
	}
	getThird, err := accessorFor[C](function, third)
	if err != nil {
		return nil, err
	}

	call := func(ctx context.Context) (R, error) {
		var zero R
		a, err := getFirst(ctx)
		if err != nil {
			return zero, err
		}
		b, err := getSecond(ctx)
		if err != nil {
			return zero, err
		}
		c, err := getThird(ctx)
		if err != nil {
			return zero, err
		}
		return kernel(a, b, c)
	}

	if allConstant([]*Evaluator{first, second, third}) {
		r, err := call(foldCtx)
		return folded(function, result, r, err)
	}

	return NewEvaluator(result, func(ctx context.Context) (R, error) {
		r, err := call(ctx)
		if err != nil {
			return r, RowError(function, err)
		}
		return r, nil
	}, false)
}

// Variadic builds the evaluator of kernel applied to all inputs. Every input
// must provide an accessor of type A.
func Variadic[A, R Value](
	function string,
	result Type,
	inputs []*Evaluator,
	kernel func([]A) (R, error),
) (*Evaluator, error) {
	getters := make([]Accessor[A], len(inputs))
	for i, in := range inputs {
		get, err := accessorFor[A](function, in)
		if err != nil {
			return nil, err
		}
		getters[i] = get
	}

	call := func(ctx context.Context) (R, error) {
		values := make([]A, len(getters))
		for i, get := range getters {
			v, err := get(ctx)
			if err != nil {
				var zero R
				return zero, err
			}
			values[i] = v
		}
		return kernel(values)
	}

	if allConstant(inputs) {
		r, err := call(foldCtx)
		return folded(function, result, r, err)
	}

	return NewEvaluator(result, func(ctx context.Context) (R, error) {
		r, err := call(ctx)
		if err != nil {
			return r, RowError(function, err)
		}
		return r, nil
	}, false)
}
