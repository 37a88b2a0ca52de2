package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/lectern-project/lectern/pkg/listing"
)

// TextFormatter renders a batch for terminal reading.
type TextFormatter struct {
	verbose bool
}

func NewText(opts Options) *TextFormatter {
	return &TextFormatter{verbose: opts.Verbose}
}

func (f *TextFormatter) Name() string {
	return "text"
}

func (f *TextFormatter) Format(w io.Writer, batch *Batch) error {
	fmt.Fprintf(w, "%s  term %s  %d sections  scraped %s\n\n",
		batch.Source, batch.Term, len(batch.Sections),
		batch.ScrapedAt.Format("2006-01-02 15:04"))

	for _, sec := range batch.Sections {
		if _, err := fmt.Fprintln(w, f.renderSection(sec)); err != nil {
			return err
		}
	}
	return nil
}

func (f *TextFormatter) renderSection(sec *listing.Section) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s sec %s (call %s)  %s",
		sec.Subject, sec.Number, sec.SectionCode, sec.CallNumber, sec.Title)
	if sec.Subordinate {
		b.WriteString("  [subordinate]")
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "    %s %s  %s", renderDays(sec.Days), renderTime(sec), renderLocation(sec))
	if sec.Instructor != nil {
		fmt.Fprintf(&b, "  with %s", *sec.Instructor)
	}
	if sec.CreditMin != nil && sec.CreditMax != nil {
		if *sec.CreditMin == *sec.CreditMax {
			fmt.Fprintf(&b, "  %g pts", *sec.CreditMin)
		} else {
			fmt.Fprintf(&b, "  %g-%g pts", *sec.CreditMin, *sec.CreditMax)
		}
	}
	if f.verbose {
		b.WriteString("\n")
		if sec.ParentCourseCode != nil {
			fmt.Fprintf(&b, "    parent: %s", *sec.ParentCourseCode)
		} else if sec.Subordinate {
			b.WriteString("    parent: unresolved")
		}
		if sec.DetailURL != nil {
			fmt.Fprintf(&b, "    %s", *sec.DetailURL)
		}
	}
	return b.String()
}

func renderDays(days []string) string {
	if len(days) == 0 {
		return "no fixed meeting"
	}
	return strings.Join(days, "/")
}

func renderTime(sec *listing.Section) string {
	if sec.StartTime == nil || sec.EndTime == nil {
		return "TBA"
	}
	return *sec.StartTime + "-" + *sec.EndTime
}

func renderLocation(sec *listing.Section) string {
	switch {
	case sec.Building != nil && sec.Room != nil:
		return *sec.Room + " " + *sec.Building
	case sec.Building != nil:
		return *sec.Building
	case sec.Room != nil:
		return "room " + *sec.Room
	}
	return "location TBA"
}
