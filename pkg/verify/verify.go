// Package verify checks parsed section batches for internal consistency.
// Issues are data quality findings, not parse errors: the parser emits its
// best-effort record and this layer reports what is off about it.
package verify

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/lectern-project/lectern/pkg/listing"
)

// IssueType identifies one consistency rule.
type IssueType string

const (
	// IssueTimePair flags a record with only one side of its time range.
	IssueTimePair IssueType = "time_pair"
	// IssueTimeOrder flags an end time before the start time.
	IssueTimeOrder IssueType = "time_order"
	// IssueSubordinateCredits flags a subordinate section that carries
	// credit without being a recitation-kind component.
	IssueSubordinateCredits IssueType = "subordinate_credits"
	// IssueMissingIdentity flags a record with no course number and no
	// call number.
	IssueMissingIdentity IssueType = "missing_identity"
	// IssueUnresolvedParent flags a subordinate the linker left
	// unlinked. A warning: expected when detail pages are unreachable.
	IssueUnresolvedParent IssueType = "unresolved_parent"
)

// Issue is one finding against one section.
type Issue struct {
	Type    IssueType `json:"type"`
	Warning bool      `json:"warning"`
	Section string    `json:"section"`
	Detail  string    `json:"detail"`
}

// Report summarizes one verification pass.
type Report struct {
	Checked int     `json:"checked"`
	Passed  int     `json:"passed"`
	Issues  []Issue `json:"issues"`
}

// Errors reports how many non-warning issues the pass found.
func (r *Report) Errors() int {
	n := 0
	for _, issue := range r.Issues {
		if !issue.Warning {
			n++
		}
	}
	return n
}

// Check runs every consistency rule over a batch of sections.
func Check(sections []*listing.Section) *Report {
	report := &Report{Checked: len(sections)}
	for _, sec := range sections {
		issues := checkSection(sec)
		if len(issues) == 0 {
			report.Passed++
		}
		report.Issues = append(report.Issues, issues...)
	}
	return report
}

func checkSection(sec *listing.Section) []Issue {
	var issues []Issue
	id := sectionID(sec)

	if (sec.StartTime == nil) != (sec.EndTime == nil) {
		issues = append(issues, Issue{
			Type: IssueTimePair, Section: id,
			Detail: fmt.Sprintf("start %s, end %s", orNull(sec.StartTime), orNull(sec.EndTime)),
		})
	}
	if sec.StartTime != nil && sec.EndTime != nil && clockMinutes(*sec.EndTime) < clockMinutes(*sec.StartTime) {
		issues = append(issues, Issue{
			Type: IssueTimeOrder, Section: id,
			Detail: fmt.Sprintf("%s ends before it starts (%s)", *sec.EndTime, *sec.StartTime),
		})
	}
	if sec.Subordinate && sec.CreditMin != nil && *sec.CreditMin > 0 && !recitationKind(sec) {
		issues = append(issues, Issue{
			Type: IssueSubordinateCredits, Section: id,
			Detail: fmt.Sprintf("subordinate section carries %g credits", *sec.CreditMin),
		})
	}
	if sec.Number == "" && sec.CallNumber == "" {
		issues = append(issues, Issue{
			Type: IssueMissingIdentity, Section: id,
			Detail: "record has neither course number nor call number",
		})
	}
	if sec.Subordinate && sec.ParentCourseCode == nil {
		issues = append(issues, Issue{
			Type: IssueUnresolvedParent, Warning: true, Section: id,
			Detail: "no parent section could be resolved",
		})
	}
	return issues
}

// Render writes the report for terminal reading.
func (r *Report) Render(w io.Writer) error {
	fmt.Fprintf(w, "checked %d sections, %d passed, %d errors, %d warnings\n",
		r.Checked, r.Passed, r.Errors(), len(r.Issues)-r.Errors())
	for _, issue := range r.Issues {
		level := "error"
		if issue.Warning {
			level = "warning"
		}
		if _, err := fmt.Fprintf(w, "%s [%s] %s: %s\n", level, issue.Type, issue.Section, issue.Detail); err != nil {
			return err
		}
	}
	return nil
}

func recitationKind(sec *listing.Section) bool {
	return sec.Component != nil && (*sec.Component == "RECITATION" || *sec.Component == "LAB")
}

func sectionID(sec *listing.Section) string {
	id := strings.TrimSpace(sec.Subject + " " + sec.Number + " sec " + sec.SectionCode)
	if sec.CallNumber != "" {
		id += " (call " + sec.CallNumber + ")"
	}
	return id
}

func orNull(s *string) string {
	if s == nil {
		return "null"
	}
	return *s
}

// clockMinutes converts a canonical "HH:MM" label to minutes since
// midnight. Labels are produced by the parser, so a malformed one counts as
// zero rather than failing the whole report.
func clockMinutes(clock string) int {
	hs, ms, ok := strings.Cut(clock, ":")
	if !ok {
		return 0
	}
	h, _ := strconv.Atoi(hs)
	m, _ := strconv.Atoi(ms)
	return h*60 + m
}
