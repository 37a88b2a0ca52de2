package listing

import (
	"regexp"
	"strings"

	"github.com/lectern-project/lectern/pkg/timespan"
)

// footerMarker opens the legend block that ends every listing page. Rows
// past it are footnotes, not sections.
const footerMarker = "L Code"

// componentKeywords, in match order. "INDEPENDENT STUDY" sits first so its
// "STUDY" suffix is never shadowed by a shorter keyword.
var componentKeywords = []string{
	"INDEPENDENT STUDY",
	"LECTURE",
	"SEMINAR",
	"LAB",
	"RECITATION",
	"PRACTICUM",
	"WORKSHOP",
	"STUDIO",
}

// subordinateSection matches the registrar's recitation-style section codes.
var subordinateSection = regexp.MustCompile(`^R\d+$`)

// ParsePage derives the column layout from a page's header line and parses
// the body lines that follow it. The only error is a *HeaderError: a header
// missing a column makes the whole page unparsable, and no partial results
// are returned for it.
func ParsePage(header string, body []string, subject string) ([]*Section, error) {
	layout, err := NewColumnLayout(header)
	if err != nil {
		return nil, err
	}
	return ParseRows(layout, body, subject), nil
}

// ParseRows scans the lines following a header and produces one Section per
// admissible row. The scan is a pure function of its inputs: no state
// survives between calls, so reparsing the same lines yields identical
// records.
//
// Lines that carry none of the content fields are dropped silently, and a
// row whose time, day or points text fails to parse still produces a record
// with those fields nil. Only the header failure in ParsePage is fatal.
func ParseRows(layout *ColumnLayout, lines []string, subject string) []*Section {
	var sections []*Section
	for i := 0; i < len(lines); i++ {
		line := lines[i]
		if strings.TrimSpace(line) == "" {
			continue
		}
		if strings.Contains(line, footerMarker) {
			break
		}
		fields := layout.Slice(line)

		// A roster wrapped across rows: the prior record's instructor
		// ends with a comma and this line carries nothing but names.
		if len(sections) > 0 && continuationLine(fields) {
			prev := sections[len(sections)-1]
			if prev.Instructor != nil && strings.HasSuffix(*prev.Instructor, ",") {
				extra := fields[FieldFaculty]
				if extra == "" {
					extra = strings.TrimSpace(line)
				}
				joined := *prev.Instructor + " " + extra
				prev.Instructor = &joined
				continue
			}
		}

		if !admissible(fields) {
			continue
		}

		sec := &Section{
			Subject:     subject,
			Number:      fields[FieldNumber],
			SectionCode: fields[FieldSection],
			CallNumber:  fields[FieldCallNumber],
			Title:       fields[FieldTitle],
		}
		if fac := fields[FieldFaculty]; fac != "" {
			sec.Instructor = &fac
		}

		span := timespan.Normalize(fields[FieldTime])
		if !span.Resolved() && !timespan.ExplicitTBA(fields[FieldTime]) {
			// Shifted columns can push the time out of its slice;
			// retry against the whole line. An explicit TBA is a
			// resolution, not a miss, so it gets no retry.
			span = timespan.Normalize(line)
		}
		if span.Resolved() {
			start, end := span.Start.Label, span.End.Label
			sec.StartTime, sec.EndTime = &start, &end
		}

		sec.Days = ExpandDays(fields[FieldDay])
		sec.CreditMin, sec.CreditMax = ResolveCredits(fields[FieldPoints])

		// The legend text mentions activity words ("lab fee"), so the
		// footer line is never consumed as a component.
		if i+1 < len(lines) && !strings.Contains(lines[i+1], footerMarker) {
			if kw, ok := componentOf(lines[i+1]); ok {
				sec.Component = &kw
				i++
			}
		}

		sec.Subordinate = subordinateSection.MatchString(sec.SectionCode) ||
			(sec.Component != nil && *sec.Component == "RECITATION" && zeroCredit(sec))

		building, room := fields[FieldBuilding], fields[FieldRoom]
		if building == "To be" && i+1 < len(lines) {
			// "To be / announced" wrapped onto the next row. The
			// orphan row carries no content field and is dropped on
			// its own turn.
			next := layout.Slice(lines[i+1])
			if strings.EqualFold(next[FieldBuilding], "announced") {
				building = "To be announced"
			}
		}
		sec.Building, sec.Room = RepairLocation(building, room)

		sections = append(sections, sec)
	}
	return sections
}

// admissible reports whether a sliced line carries at least one of the six
// content fields. Decorative or ruler lines carry none and are skipped.
func admissible(fields [numFields]string) bool {
	for _, f := range []Field{FieldNumber, FieldSection, FieldTitle, FieldDay, FieldTime, FieldFaculty} {
		if fields[f] != "" {
			return true
		}
	}
	return false
}

// continuationLine reports whether a sliced line could extend the previous
// record's instructor roster: everything but the title and faculty columns
// is blank.
func continuationLine(fields [numFields]string) bool {
	for _, f := range []Field{FieldNumber, FieldSection, FieldCallNumber, FieldPoints, FieldDay, FieldTime} {
		if fields[f] != "" {
			return false
		}
	}
	return true
}

// componentOf scans a line for an activity keyword. The source emits the
// classification as its own row below the section row.
func componentOf(line string) (string, bool) {
	upper := strings.ToUpper(line)
	for _, kw := range componentKeywords {
		if strings.Contains(upper, kw) {
			return kw, true
		}
	}
	return "", false
}

func zeroCredit(sec *Section) bool {
	return sec.CreditMin == nil || *sec.CreditMin == 0
}
