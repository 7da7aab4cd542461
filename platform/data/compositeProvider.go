package data

import (
	"context"
	"errors"
	"fmt"
)

// CompositeProvider combines multiple providers, with later providers
// overriding values from earlier ones in the chain. A common setup is a
// StaticProvider for shared parameters followed by a ContextProvider for the
// current row.
type CompositeProvider struct {
	providers []Provider
}

// NewCompositeProvider creates a provider that queries given providers in order.
func NewCompositeProvider(providers ...Provider) *CompositeProvider {
	return &CompositeProvider{
		providers: providers,
	}
}

// GetData merges the data of every provider into one map. Nested maps are
// merged key by key; any other value from a later provider replaces the
// earlier one. The first provider failure is returned.
func (p *CompositeProvider) GetData(ctx context.Context) (map[string]any, error) {
	result := make(map[string]any)
	for i, provider := range p.providers {
		if provider == nil {
			continue
		}
		data, err := provider.GetData(ctx)
		if err != nil {
			return nil, fmt.Errorf("error from provider %d: %w", i, err)
		}
		for k, v := range data {
			mergeIntoMap(result, k, v)
		}
	}
	return result, nil
}

// GetValue returns the value of key from the last provider that has it,
// without merging rows. Providers are consulted from the end of the chain, so
// a failing provider only fails the lookup when it is reached. Nested maps
// fall back to the merge of GetData.
func (p *CompositeProvider) GetValue(ctx context.Context, key string) (any, bool, error) {
	for i := len(p.providers) - 1; i >= 0; i-- {
		provider := p.providers[i]
		if provider == nil {
			continue
		}
		v, found, err := LookupValue(ctx, provider, key)
		if err != nil {
			return nil, false, fmt.Errorf("error from provider %d: %w", i, err)
		}
		if !found {
			continue
		}
		if _, nested := v.(map[string]any); nested {
			row, err := p.GetData(ctx)
			if err != nil {
				return nil, false, err
			}
			v, found = row[key]
			return v, found, nil
		}
		return v, true, nil
	}
	return nil, false, nil
}

// AddDataToContext hands the rows to every provider in the chain. Static
// providers are skipped; the call fails only when every other provider
// failed.
func (p *CompositeProvider) AddDataToContext(
	ctx context.Context,
	data ...map[string]any,
) (context.Context, error) {
	finalCtx := ctx
	var errs []error
	attempted := 0

	for i, provider := range p.providers {
		if provider == nil {
			continue
		}
		if _, isStatic := provider.(*StaticProvider); isStatic {
			continue
		}
		attempted++

		nextCtx, err := provider.AddDataToContext(finalCtx, data...)
		if err != nil {
			errs = append(errs, fmt.Errorf("error from provider %d: %w", i, err))
			continue
		}
		finalCtx = nextCtx
	}

	if attempted == 0 {
		return ctx, ErrStaticProviderNoRuntimeUpdates
	}
	if len(errs) == attempted {
		return ctx, errors.Join(errs...)
	}
	return finalCtx, nil
}
