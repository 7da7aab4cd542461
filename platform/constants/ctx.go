// Description: This file contains constants used for binding row values to context objects.
package constants

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	// RowData is the key used to store the current row in the context
	RowData ContextKey = "row_data" // map[string]any bound per evaluation call, load with ctx.Value()

	// StaticData is the key used for values shared by every row, such as
	// parameters supplied when an expression is compiled.
	StaticData ContextKey = "static_data"
)
