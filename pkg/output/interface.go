// Package output renders parsed section batches in the formats consumers
// ask for: human-readable text, JSON, CSV, an iCalendar feed, or a Postgres
// table.
package output

import "io"

// Formatter renders one batch to a writer.
type Formatter interface {
	Format(w io.Writer, batch *Batch) error
	Name() string
}
