package rowscan

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/robbyt/go-formula/internal/helpers"
	"github.com/robbyt/go-formula/platform/data"
	"github.com/robbyt/go-formula/platform/expression"
)

// Result is the outcome of a scan.
type Result struct {
	// Rows is the number of rows read from the source.
	Rows uint32
	// Values holds one value per row when no sink is set. Failed rows
	// hold nil.
	Values []any
	// Failed holds the indexes of rows skipped under the Skip policy.
	Failed *roaring.Bitmap
}

// Succeeded returns the number of rows evaluated without error.
func (r *Result) Succeeded() uint32 {
	return r.Rows - uint32(r.Failed.GetCardinality())
}

// FailedRows returns the indexes of failed rows in ascending order.
func (r *Result) FailedRows() []uint32 {
	return r.Failed.ToArray()
}

// Scan evaluates ev once per row of src. Each row is bound into ctx
// through the configured row provider before the accessor runs.
func Scan(ctx context.Context, src Source, ev *expression.Evaluator, opts ...Option) (*Result, error) {
	if src == nil {
		return nil, ErrNilSource
	}
	if ev == nil {
		return nil, ErrNilEvaluator
	}
	cfg := defaultConfig()
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("error applying scan option: %w", err)
		}
	}
	_, logger := helpers.SetupLogger(cfg.handler, "rowscan", "Scan")

	res := &Result{Failed: roaring.New()}
	for cfg.limit == 0 || res.Rows < cfg.limit {
		row, err := src.Next(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return res, err
		}
		index := res.Rows
		res.Rows++

		rowCtx, err := bind(ctx, cfg.rows, row)
		if err != nil {
			return res, fmt.Errorf("row %d: %w", index, err)
		}
		v, err := ev.Value(rowCtx)
		if err != nil {
			if cfg.policy == Abort {
				logger.DebugContext(ctx, "scan aborted", "row", index, "error", err)
				return res, fmt.Errorf("row %d: %w", index, err)
			}
			res.Failed.Add(index)
			v = nil
		}

		if cfg.sink != nil {
			if err == nil {
				if sinkErr := cfg.sink(index, v); sinkErr != nil {
					return res, fmt.Errorf("%w: row %d: %w", ErrSinkFailed, index, sinkErr)
				}
			}
			continue
		}
		res.Values = append(res.Values, v)
	}

	logger.DebugContext(ctx, "scan complete",
		"rows", res.Rows,
		"failed", res.Failed.GetCardinality(),
		"policy", cfg.policy.String(),
	)
	return res, nil
}

// binder is implemented by providers that can store a row without copying.
type binder interface {
	Bind(ctx context.Context, row map[string]any) context.Context
}

func bind(ctx context.Context, rows data.Setter, row map[string]any) (context.Context, error) {
	if b, ok := rows.(binder); ok {
		return b.Bind(ctx, row), nil
	}
	return rows.AddDataToContext(ctx, row)
}
