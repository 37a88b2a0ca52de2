package listing

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Field identifies one fixed-width column of a listing page.
type Field int

// Canonical column order. Every listing page carries these ten columns.
const (
	FieldNumber Field = iota
	FieldSection
	FieldCallNumber
	FieldPoints
	FieldTitle
	FieldDay
	FieldTime
	FieldRoom
	FieldBuilding
	FieldFaculty
	numFields
)

// fieldNames are the header labels, in canonical column order.
var fieldNames = [numFields]string{
	"Number", "Sec", "Call#", "Pts", "Title",
	"Day", "Time", "Room", "Building", "Faculty",
}

func (f Field) String() string {
	if f < 0 || f >= numFields {
		return fmt.Sprintf("Field(%d)", int(f))
	}
	return fieldNames[f]
}

// HeaderError reports a header line missing a required column name. It is
// fatal for the enclosing page: without a complete layout no row can be
// sliced, so no partial results are produced.
type HeaderError struct {
	Missing string
}

func (e *HeaderError) Error() string {
	return fmt.Sprintf("listing header is missing the %q column", e.Missing)
}

// ColumnLayout maps each field to a half-open character-offset range derived
// from one page's header line. Ranges are contiguous: each field runs from
// its own offset to the next field's offset, and the last field runs to
// end-of-line. Immutable after construction.
type ColumnLayout struct {
	starts [numFields]int
}

// NewColumnLayout locates each canonical field name in the header line and
// records its character offset. Each name is searched from the previous
// field's offset onward, which keeps the ranges monotonically increasing.
// Returns a *HeaderError when any name is absent.
func NewColumnLayout(header string) (*ColumnLayout, error) {
	layout := &ColumnLayout{}
	from := 0
	for f := FieldNumber; f < numFields; f++ {
		idx := strings.Index(header[from:], fieldNames[f])
		if idx < 0 {
			return nil, &HeaderError{Missing: fieldNames[f]}
		}
		byteStart := from + idx
		layout.starts[f] = utf8.RuneCountInString(header[:byteStart])
		from = byteStart + len(fieldNames[f])
	}
	return layout, nil
}

// Start returns the character offset where a field's range begins.
func (l *ColumnLayout) Start(f Field) int {
	return l.starts[f]
}

// Slice cuts one listing line into its ten raw field values, trimmed of
// exterior whitespace. Lines shorter than a field's range yield empty values
// for the fields they do not reach.
func (l *ColumnLayout) Slice(line string) [numFields]string {
	runes := []rune(line)
	var out [numFields]string
	for f := FieldNumber; f < numFields; f++ {
		start := l.starts[f]
		if start >= len(runes) {
			continue
		}
		end := len(runes)
		if f+1 < numFields && l.starts[f+1] < end {
			end = l.starts[f+1]
		}
		out[f] = strings.TrimSpace(string(runes[start:end]))
	}
	return out
}
