package data

import (
	"context"
	"errors"
	"fmt"
	"maps"

	"github.com/robbyt/go-formula/platform/constants"
)

// ContextProvider reads and stores rows in the context under a specified key.
// Because the row travels with the context, one compiled expression can be
// evaluated for different rows from several goroutines at once.
type ContextProvider struct {
	contextKey constants.ContextKey
}

// NewContextProvider creates a new ContextProvider with the given context key.
func NewContextProvider(contextKey constants.ContextKey) *ContextProvider {
	return &ContextProvider{
		contextKey: contextKey,
	}
}

// GetData returns the row stored in the context. A context without a row
// yields an empty map.
func (p *ContextProvider) GetData(ctx context.Context) (map[string]any, error) {
	if p.contextKey == "" {
		return nil, ErrEmptyContextKey
	}

	value := ctx.Value(p.contextKey)
	if value == nil {
		return make(map[string]any), nil
	}

	d, ok := value.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("invalid row data type: expected map[string]any, got %T", value)
	}

	return d, nil
}

// GetValue reads key from the row stored in the context.
func (p *ContextProvider) GetValue(ctx context.Context, key string) (any, bool, error) {
	if p.contextKey == "" {
		return nil, false, ErrEmptyContextKey
	}
	value := ctx.Value(p.contextKey)
	if value == nil {
		return nil, false, nil
	}
	d, ok := value.(map[string]any)
	if !ok {
		return nil, false, fmt.Errorf("invalid row data type: expected map[string]any, got %T", value)
	}
	v, found := d[key]
	return v, found, nil
}

// AddDataToContext merges the provided maps with any row already stored in
// the context. Later values override earlier ones for duplicate keys and
// nested maps are merged recursively.
func (p *ContextProvider) AddDataToContext(
	ctx context.Context,
	data ...map[string]any,
) (context.Context, error) {
	if p.contextKey == "" {
		return ctx, ErrEmptyContextKey
	}

	var errz []error
	toStore := make(map[string]any)

	if existingData := ctx.Value(p.contextKey); existingData != nil {
		if existingMap, ok := existingData.(map[string]any); ok {
			maps.Copy(toStore, existingMap)
		}
	}

	for _, dataMap := range data {
		for key, value := range dataMap {
			if key == "" {
				errz = append(errz, fmt.Errorf("empty keys are not allowed"))
				continue
			}
			mergeIntoMap(toStore, key, value)
		}
	}

	return context.WithValue(ctx, p.contextKey, toStore), errors.Join(errz...)
}

// Bind stores row in the context as-is, replacing any previous row. It is
// the allocation-free path used when scanning many rows.
func (p *ContextProvider) Bind(ctx context.Context, row map[string]any) context.Context {
	return context.WithValue(ctx, p.contextKey, row)
}

// mergeIntoMap recursively merges value into target under key
func mergeIntoMap(target map[string]any, key string, value any) {
	if newMap, ok := value.(map[string]any); ok {
		if existingMap, ok := target[key].(map[string]any); ok {
			merged := maps.Clone(existingMap)
			for k, v := range newMap {
				mergeIntoMap(merged, k, v)
			}
			target[key] = merged
			return
		}
	}

	// Non-map values simply replace existing values
	target[key] = value
}
