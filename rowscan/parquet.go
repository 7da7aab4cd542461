package rowscan

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/parquet-go/parquet-go"
)

// ParquetSource reads the rows of a parquet file as generic maps keyed by
// column name.
type ParquetSource struct {
	file   *parquet.File
	reader *parquet.Reader
}

// NewParquetSource opens the parquet file held by r.
func NewParquetSource(r io.ReaderAt, size int64) (*ParquetSource, error) {
	f, err := parquet.OpenFile(r, size)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpenFailed, err)
	}
	return &ParquetSource{file: f, reader: parquet.NewReader(f)}, nil
}

func (s *ParquetSource) String() string {
	return fmt.Sprintf("rowscan.ParquetSource{Rows: %d, Columns: %v}", s.NumRows(), s.Columns())
}

// NumRows returns the number of rows in the file.
func (s *ParquetSource) NumRows() int64 {
	return s.file.NumRows()
}

// Columns returns the top-level column names of the file schema.
func (s *ParquetSource) Columns() []string {
	fields := s.file.Schema().Fields()
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name()
	}
	return names
}

func (s *ParquetSource) Next(ctx context.Context) (map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	row := make(map[string]any)
	if err := s.reader.Read(&row); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("%w: %w", ErrReadFailed, err)
	}
	return row, nil
}

// Close releases the row reader.
func (s *ParquetSource) Close() error {
	return s.reader.Close()
}
