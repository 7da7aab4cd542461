// Package internal converts values between Go and Starlark.
package internal

import (
	"errors"
	"fmt"
	"time"

	starlarkTime "go.starlark.net/lib/time"
	starlarkLib "go.starlark.net/starlark"
)

// ToTuple converts call arguments to a Starlark tuple.
func ToTuple(args []any) (starlarkLib.Tuple, error) {
	tuple := make(starlarkLib.Tuple, len(args))
	for i, arg := range args {
		v, err := ToValue(arg)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i+1, err)
		}
		tuple[i] = v
	}
	return tuple, nil
}

// ToStringDict converts named Go values to Starlark globals.
func ToStringDict(values map[string]any) (starlarkLib.StringDict, error) {
	dict := make(starlarkLib.StringDict, len(values))
	var errz []error
	for k, v := range values {
		sv, err := ToValue(v)
		if err != nil {
			errz = append(errz, fmt.Errorf("global %q: %w", k, err))
			continue
		}
		dict[k] = sv
	}
	if err := errors.Join(errz...); err != nil {
		return nil, err
	}
	return dict, nil
}

// ToValue converts a Go value to a Starlark value.
func ToValue(v any) (starlarkLib.Value, error) {
	switch val := v.(type) {
	case nil:
		return starlarkLib.None, nil
	case bool:
		return starlarkLib.Bool(val), nil
	case int:
		return starlarkLib.MakeInt(val), nil
	case int64:
		return starlarkLib.MakeInt64(val), nil
	case float64:
		return starlarkLib.Float(val), nil
	case string:
		return starlarkLib.String(val), nil
	case time.Time:
		return starlarkTime.Time(val), nil
	case []any:
		elems := make([]starlarkLib.Value, len(val))
		for i, e := range val {
			sv, err := ToValue(e)
			if err != nil {
				return nil, fmt.Errorf("list element %d: %w", i, err)
			}
			elems[i] = sv
		}
		return starlarkLib.NewList(elems), nil
	case map[string]any:
		dict := starlarkLib.NewDict(len(val))
		for k, e := range val {
			sv, err := ToValue(e)
			if err != nil {
				return nil, fmt.Errorf("dict value %q: %w", k, err)
			}
			if err := dict.SetKey(starlarkLib.String(k), sv); err != nil {
				return nil, fmt.Errorf("dict key %q: %w", k, err)
			}
		}
		return dict, nil
	}
	return nil, fmt.Errorf("unsupported type %T", v)
}

// FromValue converts a Starlark result to a Go value. Integers outside the
// int64 range are returned as float64.
func FromValue(v starlarkLib.Value) (any, error) {
	switch val := v.(type) {
	case nil, starlarkLib.NoneType:
		return nil, nil
	case starlarkLib.Bool:
		return bool(val), nil
	case starlarkLib.Int:
		if i, ok := val.Int64(); ok {
			return i, nil
		}
		return float64(val.Float()), nil
	case starlarkLib.Float:
		return float64(val), nil
	case starlarkLib.String:
		return string(val), nil
	case starlarkTime.Time:
		return time.Time(val), nil
	case *starlarkLib.List:
		out := make([]any, 0, val.Len())
		for i := range val.Len() {
			e, err := FromValue(val.Index(i))
			if err != nil {
				return nil, fmt.Errorf("list element %d: %w", i, err)
			}
			out = append(out, e)
		}
		return out, nil
	case *starlarkLib.Dict:
		out := make(map[string]any, val.Len())
		for _, item := range val.Items() {
			key, ok := item[0].(starlarkLib.String)
			if !ok {
				key = starlarkLib.String(item[0].String())
			}
			e, err := FromValue(item[1])
			if err != nil {
				return nil, fmt.Errorf("dict value %q: %w", string(key), err)
			}
			out[string(key)] = e
		}
		return out, nil
	}
	return nil, fmt.Errorf("unsupported Starlark type %s", v.Type())
}
