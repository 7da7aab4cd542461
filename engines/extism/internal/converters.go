package internal

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
)

// EncodeArgs marshals call arguments as a JSON array. Missing numbers
// (NaN) become null and infinities are rejected by encoding/json.
func EncodeArgs(args []any) ([]byte, error) {
	out := make([]any, len(args))
	for i, a := range args {
		if f, ok := a.(float64); ok && math.IsNaN(f) {
			continue
		}
		out[i] = a
	}
	return json.Marshal(out)
}

// DecodeResult reads plugin output as JSON, keeping integral numbers as
// int64. Output that is not JSON is returned as a string.
func DecodeResult(output []byte) any {
	if len(bytes.TrimSpace(output)) == 0 {
		return nil
	}
	var result any
	d := json.NewDecoder(bytes.NewReader(output))
	d.UseNumber()
	if err := d.Decode(&result); err != nil || d.More() {
		return string(output)
	}
	return FixJSONNumberTypes(result)
}

// FixJSONNumberTypes replaces json.Number values, recursively, with int64
// when integral and float64 otherwise.
func FixJSONNumberTypes(v any) any {
	switch x := v.(type) {
	case json.Number:
		if i, err := strconv.ParseInt(x.String(), 10, 64); err == nil {
			return i
		}
		if f, err := x.Float64(); err == nil {
			return f
		}
		return x.String()
	case map[string]any:
		for k, item := range x {
			x[k] = FixJSONNumberTypes(item)
		}
		return x
	case []any:
		for i, item := range x {
			x[i] = FixJSONNumberTypes(item)
		}
		return x
	}
	return v
}
