package rowscan

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/robbyt/go-formula/platform/constants"
	"github.com/robbyt/go-formula/platform/data"
)

// Policy decides what a scan does with a row whose evaluation fails.
type Policy int

const (
	// Abort stops the scan at the first failing row and returns its error.
	Abort Policy = iota
	// Skip records the failing row in Result.Failed and carries on.
	Skip
)

func (p Policy) String() string {
	switch p {
	case Abort:
		return "abort"
	case Skip:
		return "skip"
	}
	return fmt.Sprintf("Policy(%d)", int(p))
}

// Sink receives the value computed for each successful row, in order.
type Sink func(index uint32, value any) error

// Option configures a scan.
type Option func(*config) error

type config struct {
	policy  Policy
	rows    data.Setter
	sink    Sink
	limit   uint32
	handler slog.Handler
}

// WithPolicy sets the failure policy. The default is Abort.
func WithPolicy(p Policy) Option {
	return func(c *config) error {
		if p != Abort && p != Skip {
			return fmt.Errorf("unknown policy: %s", p)
		}
		c.policy = p
		return nil
	}
}

// WithRowProvider sets where rows are bound for column leaves. It must be
// the provider the evaluator's columns read from.
func WithRowProvider(p data.Setter) Option {
	return func(c *config) error {
		if p == nil {
			return fmt.Errorf("row provider cannot be nil")
		}
		c.rows = p
		return nil
	}
}

// WithSink streams values to fn instead of collecting them in
// Result.Values. An error from fn stops the scan.
func WithSink(fn Sink) Option {
	return func(c *config) error {
		if fn == nil {
			return fmt.Errorf("sink cannot be nil")
		}
		c.sink = fn
		return nil
	}
}

// WithLimit stops the scan after n rows.
func WithLimit(n uint32) Option {
	return func(c *config) error {
		if n == 0 {
			return fmt.Errorf("limit must be positive")
		}
		c.limit = n
		return nil
	}
}

// WithLogHandler sets the handler for scan summaries.
func WithLogHandler(h slog.Handler) Option {
	return func(c *config) error {
		if h == nil {
			return fmt.Errorf("log handler cannot be nil")
		}
		c.handler = h
		return nil
	}
}

func defaultConfig() *config {
	return &config{
		policy:  Abort,
		rows:    data.NewContextProvider(constants.RowData),
		handler: slog.NewTextHandler(os.Stdout, nil),
	}
}
