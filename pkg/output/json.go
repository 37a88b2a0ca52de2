package output

import (
	"encoding/json"
	"fmt"
	"io"
)

// JSONFormatter emits the batch as indented JSON, nulls preserved.
type JSONFormatter struct{}

func NewJSON() *JSONFormatter {
	return &JSONFormatter{}
}

func (f *JSONFormatter) Name() string {
	return "json"
}

func (f *JSONFormatter) Format(w io.Writer, batch *Batch) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(batch); err != nil {
		return fmt.Errorf("encoding batch: %w", err)
	}
	return nil
}
