package script

import "context"

// Caller invokes a function defined by a compiled script. Arguments arrive
// as float64, int64, string, bool or time.Time values, in declaration order.
// Implementations must be safe for concurrent use.
type Caller interface {
	Call(ctx context.Context, name string, args []any) (any, error)
}

// CallerFunc adapts a plain function to the Caller interface.
type CallerFunc func(ctx context.Context, name string, args []any) (any, error)

// Call implements Caller.
func (f CallerFunc) Call(ctx context.Context, name string, args []any) (any, error) {
	return f(ctx, name, args)
}
