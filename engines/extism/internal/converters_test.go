package internal

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeArgs(t *testing.T) {
	t.Parallel()

	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	got, err := EncodeArgs([]any{1.5, int64(2), "x", true, math.NaN(), day})
	require.NoError(t, err)
	assert.JSONEq(t, `[1.5, 2, "x", true, null, "2024-03-01T00:00:00Z"]`, string(got))

	got, err = EncodeArgs(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(got))

	_, err = EncodeArgs([]any{math.Inf(1)})
	require.Error(t, err)
}

func TestDecodeResult(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		output string
		want   any
	}{
		{"integer", "42", int64(42)},
		{"float", "4.25", 4.25},
		{"string", `"hi"`, "hi"},
		{"bool", "true", true},
		{"null", "null", nil},
		{"empty", "  ", nil},
		{"nested", `{"n": [1, 2.5]}`, map[string]any{"n": []any{int64(1), 2.5}}},
		{"not json", "hello world", "hello world"},
		{"trailing data", "1 2", "1 2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, DecodeResult([]byte(tt.output)))
		})
	}
}

func TestFixJSONNumberTypes(t *testing.T) {
	t.Parallel()

	assert.Nil(t, FixJSONNumberTypes(nil))
	assert.Equal(t, "s", FixJSONNumberTypes("s"))
	assert.Equal(t, int64(-7), FixJSONNumberTypes(json.Number("-7")))
	assert.Equal(t, 1e300, FixJSONNumberTypes(json.Number("1e300")))
	assert.Equal(t, "abc", FixJSONNumberTypes(json.Number("abc")))
}
