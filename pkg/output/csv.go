package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/lectern-project/lectern/pkg/listing"
)

// csvHeader is the column order of CSV output. Days are joined with ";"
// inside one cell; nil fields become empty cells.
var csvHeader = []string{
	"subject", "number", "section", "call_number", "title", "instructor",
	"days", "start_time", "end_time", "component", "credit_min", "credit_max",
	"building", "room", "is_subordinate", "parent_course_code", "detail_url",
}

type CSVFormatter struct{}

func NewCSV() *CSVFormatter {
	return &CSVFormatter{}
}

func (f *CSVFormatter) Name() string {
	return "csv"
}

func (f *CSVFormatter) Format(w io.Writer, batch *Batch) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	for _, sec := range batch.Sections {
		if err := cw.Write(csvRow(sec)); err != nil {
			return fmt.Errorf("writing csv row for %s %s: %w", sec.Subject, sec.Number, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func csvRow(sec *listing.Section) []string {
	return []string{
		sec.Subject,
		sec.Number,
		sec.SectionCode,
		sec.CallNumber,
		sec.Title,
		orEmpty(sec.Instructor),
		strings.Join(sec.Days, ";"),
		orEmpty(sec.StartTime),
		orEmpty(sec.EndTime),
		orEmpty(sec.Component),
		floatOrEmpty(sec.CreditMin),
		floatOrEmpty(sec.CreditMax),
		orEmpty(sec.Building),
		orEmpty(sec.Room),
		strconv.FormatBool(sec.Subordinate),
		orEmpty(sec.ParentCourseCode),
		orEmpty(sec.DetailURL),
	}
}

func orEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func floatOrEmpty(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
