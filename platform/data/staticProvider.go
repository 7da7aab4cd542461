package data

import (
	"context"
	"maps"
)

// StaticProvider returns a fixed row regardless of the context. It is useful
// for values shared by every row and for tests.
type StaticProvider struct {
	data map[string]any
}

// NewStaticProvider creates a new StaticProvider with the provided data map
func NewStaticProvider(data map[string]any) *StaticProvider {
	if data == nil {
		data = make(map[string]any)
	}
	return &StaticProvider{
		data: data,
	}
}

// GetData returns a copy of the static data
func (p *StaticProvider) GetData(ctx context.Context) (map[string]any, error) {
	return maps.Clone(p.data), nil
}

// GetValue reads key from the static data without copying it.
func (p *StaticProvider) GetValue(_ context.Context, key string) (any, bool, error) {
	v, found := p.data[key]
	return v, found, nil
}

// AddDataToContext always fails: static rows cannot change per call.
func (p *StaticProvider) AddDataToContext(
	ctx context.Context,
	data ...map[string]any,
) (context.Context, error) {
	return ctx, ErrStaticProviderNoRuntimeUpdates
}
