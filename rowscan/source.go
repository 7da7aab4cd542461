// Package rowscan drives a compiled expression over a stream of rows.
package rowscan

import (
	"context"
	"io"
	"maps"
)

// Source yields rows one at a time. Next returns io.EOF after the last row.
type Source interface {
	Next(ctx context.Context) (map[string]any, error)
}

// SliceSource is a Source over rows held in memory.
type SliceSource struct {
	rows []map[string]any
	pos  int
}

// NewSliceSource returns a Source yielding rows in order.
func NewSliceSource(rows ...map[string]any) *SliceSource {
	return &SliceSource{rows: rows}
}

func (s *SliceSource) Next(ctx context.Context) (map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.pos >= len(s.rows) {
		return nil, io.EOF
	}
	row := s.rows[s.pos]
	s.pos++
	return maps.Clone(row), nil
}

// Reset rewinds the source to its first row.
func (s *SliceSource) Reset() {
	s.pos = 0
}
