package commands

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/lectern-project/lectern/pkg/output"
)

// ExitCode is set by commands to indicate the result
var ExitCode = 0

// newFormatter maps an --output flag value to a formatter.
func newFormatter(format string, opts output.Options) (output.Formatter, error) {
	switch format {
	case "text":
		return output.NewText(opts), nil
	case "json":
		return output.NewJSON(), nil
	case "csv":
		return output.NewCSV(), nil
	case "ical":
		return output.NewICal(opts), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (text|json|csv|ical)", format)
	}
}

// openOutput returns the destination writer for --out. "-" or empty means
// stdout; the returned closer is a no-op for stdout.
func openOutput(path string) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path) // #nosec G304 -- user-provided output path is expected
	if err != nil {
		return nil, nil, fmt.Errorf("creating output file: %w", err)
	}
	return f, f.Close, nil
}

// currentWeekMonday returns the Monday of the week containing now.
func currentWeekMonday(now time.Time) time.Time {
	offset := (int(now.Weekday()) + 6) % 7
	day := now.AddDate(0, 0, -offset)
	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, now.Location())
}
