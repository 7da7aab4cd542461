package data

import (
	"context"
	"errors"
)

var (
	ErrEmptyContextKey                = errors.New("context key is empty")
	ErrStaticProviderNoRuntimeUpdates = errors.New("static provider does not accept runtime rows")
)

// Getter returns the row bound to a context.
type Getter interface {
	GetData(ctx context.Context) (map[string]any, error)
}

// ValueGetter reads a single value of the row bound to a context without
// building the whole row.
type ValueGetter interface {
	GetValue(ctx context.Context, key string) (any, bool, error)
}

// LookupValue returns the value named key in the row g finds in ctx, and
// whether the row has it. Getters that are not ValueGetters are read
// through GetData.
func LookupValue(ctx context.Context, g Getter, key string) (any, bool, error) {
	if vg, ok := g.(ValueGetter); ok {
		return vg.GetValue(ctx, key)
	}
	row, err := g.GetData(ctx)
	if err != nil {
		return nil, false, err
	}
	v, found := row[key]
	return v, found, nil
}

// Setter binds row values to a context so that column leaves can read them
// during evaluation.
type Setter interface {
	// AddDataToContext returns a context carrying the given rows. Later maps
	// override earlier ones for duplicate keys.
	//
	// Example:
	//  ctx, err := provider.AddDataToContext(ctx, map[string]any{"price": 9.5})
	//  if err != nil {
	//      return err
	//  }
	//  v, err := evaluator.Double(ctx)
	AddDataToContext(ctx context.Context, data ...map[string]any) (context.Context, error)
}

// Provider gives column leaves access to the row being evaluated.
type Provider interface {
	Getter
	Setter
}
