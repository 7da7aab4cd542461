package expression

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"
)

// DateLayouts are the layouts tried, in order, when text is read as a Date.
var DateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	time.DateTime,
	time.DateOnly,
}

// ToDouble converts a Go value to the double domain. nil becomes NaN, the
// numeric missing value.
func ToDouble(v any) (float64, error) {
	switch n := v.(type) {
	case nil:
		return math.NaN(), nil
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int8:
		return float64(n), nil
	case int16:
		return float64(n), nil
	case int32:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint:
		return float64(n), nil
	case uint8:
		return float64(n), nil
	case uint16:
		return float64(n), nil
	case uint32:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	case json.Number:
		return n.Float64()
	case *float64:
		if n == nil {
			return math.NaN(), nil
		}
		return *n, nil
	}
	return 0, fmt.Errorf("%w: %T is not numeric", ErrUnsupportedValue, v)
}

// ToBool converts a Go value to the boolean domain.
func ToBool(v any) (bool, error) {
	switch b := v.(type) {
	case bool:
		return b, nil
	case *bool:
		if b != nil {
			return *b, nil
		}
	case nil:
	default:
		return false, fmt.Errorf("%w: %T is not boolean", ErrUnsupportedValue, v)
	}
	return false, ErrMissingValue
}

// ToText converts a Go value to the string domain. Only strings and byte
// slices are accepted; use FormatValue for display conversion.
func ToText(v any) (string, error) {
	switch s := v.(type) {
	case string:
		return s, nil
	case []byte:
		return string(s), nil
	case *string:
		if s != nil {
			return *s, nil
		}
	case fmt.Stringer:
		return s.String(), nil
	case nil:
	default:
		return "", fmt.Errorf("%w: %T is not text", ErrUnsupportedValue, v)
	}
	return "", ErrMissingValue
}

// ToDate converts a Go value to the date domain. Text is parsed with
// DateLayouts and numbers are read as Unix milliseconds.
func ToDate(v any) (time.Time, error) {
	switch d := v.(type) {
	case time.Time:
		return d, nil
	case *time.Time:
		if d != nil {
			return *d, nil
		}
	case string:
		return ParseDate(d)
	case int64:
		return time.UnixMilli(d).UTC(), nil
	case float64:
		return time.UnixMilli(int64(d)).UTC(), nil
	case nil:
	default:
		return time.Time{}, fmt.Errorf("%w: %T is not a date", ErrUnsupportedValue, v)
	}
	return time.Time{}, ErrMissingValue
}

// ParseDate parses text with the first matching layout in DateLayouts.
func ParseDate(text string) (time.Time, error) {
	for _, layout := range DateLayouts {
		if t, err := time.Parse(layout, text); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: cannot parse %q as date", ErrUnsupportedValue, text)
}

// Coerce converts v to the Go representation of t.
func Coerce(t Type, v any) (any, error) {
	switch t {
	case Double:
		return ToDouble(v)
	case Integer:
		f, err := ToDouble(v)
		if err != nil {
			return nil, err
		}
		if !math.IsNaN(f) && f != math.Trunc(f) {
			return nil, fmt.Errorf("%w: %v is not an integer", ErrUnsupportedValue, f)
		}
		return f, nil
	case Boolean:
		return ToBool(v)
	case String:
		return ToText(v)
	case Date:
		return ToDate(v)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownType, t)
}

// FormatValue renders a value of type t as text the way str() does.
func FormatValue(t Type, v any) string {
	switch x := v.(type) {
	case float64:
		switch {
		case math.IsNaN(x):
			return "?"
		case math.IsInf(x, 0) || math.Abs(x) >= 1<<63:
			return strconv.FormatFloat(x, 'g', -1, 64)
		case t == Integer || (x == math.Trunc(x) && math.Abs(x) < 1e15):
			return strconv.FormatInt(int64(x), 10)
		default:
			return strconv.FormatFloat(x, 'g', -1, 64)
		}
	case bool:
		return strconv.FormatBool(x)
	case time.Time:
		return x.Format(time.RFC3339)
	case string:
		return x
	}
	return fmt.Sprint(v)
}

// TextAccessor returns an accessor rendering ev as text in any domain. String
// evaluators are returned unchanged.
func TextAccessor(ev *Evaluator) (Accessor[string], error) {
	if ev == nil {
		return nil, ErrNilEvaluator
	}
	if ev.Type() == String {
		return ev.StringFunc()
	}
	typ := ev.Type()
	return func(ctx context.Context) (string, error) {
		v, err := ev.Value(ctx)
		if err != nil {
			return "", err
		}
		return FormatValue(typ, v), nil
	}, nil
}

// AsText wraps ev as a String evaluator, keeping its constancy.
func AsText(ev *Evaluator) (*Evaluator, error) {
	fn, err := TextAccessor(ev)
	if err != nil {
		return nil, err
	}
	if ev.Type() == String {
		return ev, nil
	}
	if ev.IsConstant() {
		s, err := fn(foldCtx)
		if err != nil {
			return nil, err
		}
		return ConstantString(s), nil
	}
	return NewEvaluator(String, fn, false)
}
