package listing

import (
	"reflect"
	"strings"
	"testing"
)

func testLayout(t *testing.T) *ColumnLayout {
	t.Helper()
	layout, err := NewColumnLayout(testHeader)
	if err != nil {
		t.Fatal(err)
	}
	return layout
}

func TestParsePage(t *testing.T) {
	layout := testLayout(t)
	body := []string{
		makeRow(t, layout, map[Field]string{
			FieldNumber:     "W4701",
			FieldSection:    "001",
			FieldCallNumber: "12345",
			FieldPoints:     "3",
			FieldTitle:      "Intro to AI",
			FieldDay:        "MW",
			FieldTime:       "11:40am-12:55pm",
			FieldRoom:       "301",
			FieldBuilding:   "Mudd",
			FieldFaculty:    "Smith, J.",
		}),
	}
	sections, err := ParsePage(testHeader, body, "COMS")
	if err != nil {
		t.Fatalf("ParsePage() error: %v", err)
	}
	if len(sections) != 1 {
		t.Fatalf("got %d sections, want 1", len(sections))
	}
	sec := sections[0]
	if sec.Subject != "COMS" || sec.Number != "W4701" || sec.SectionCode != "001" {
		t.Errorf("identity = %s %s %s", sec.Subject, sec.Number, sec.SectionCode)
	}
	if sec.CallNumber != "12345" {
		t.Errorf("CallNumber = %q", sec.CallNumber)
	}
	if sec.Title != "Intro to AI" {
		t.Errorf("Title = %q", sec.Title)
	}
	if want := []string{"Monday", "Wednesday"}; !reflect.DeepEqual(sec.Days, want) {
		t.Errorf("Days = %v, want %v", sec.Days, want)
	}
	if deref(sec.StartTime) != "11:40" || deref(sec.EndTime) != "12:55" {
		t.Errorf("times = %q-%q, want 11:40-12:55", deref(sec.StartTime), deref(sec.EndTime))
	}
	if sec.CreditMin == nil || *sec.CreditMin != 3.0 || sec.CreditMax == nil || *sec.CreditMax != 3.0 {
		t.Errorf("credits = (%v, %v), want (3, 3)", sec.CreditMin, sec.CreditMax)
	}
	if deref(sec.Building) != "Mudd" || deref(sec.Room) != "301" {
		t.Errorf("location = %q %q", deref(sec.Building), deref(sec.Room))
	}
	if deref(sec.Instructor) != "Smith, J." {
		t.Errorf("Instructor = %q", deref(sec.Instructor))
	}
	if sec.Subordinate {
		t.Error("plain lecture row classified subordinate")
	}
}

func TestParsePageBadHeader(t *testing.T) {
	_, err := ParsePage("Number Sec Call# Pts Title Day Time Room Building", nil, "COMS")
	if err == nil {
		t.Fatal("expected header error")
	}
}

func TestParseRowsAdmission(t *testing.T) {
	layout := testLayout(t)
	lines := []string{
		"",
		"   ",
		makeRow(t, layout, map[Field]string{FieldBuilding: "Mudd", FieldRoom: "301"}),
		makeRow(t, layout, map[Field]string{FieldNumber: "W4701", FieldTitle: "Intro to AI"}),
	}
	sections := ParseRows(layout, lines, "COMS")
	if len(sections) != 1 {
		t.Fatalf("got %d sections, want 1", len(sections))
	}
	if sections[0].Number != "W4701" {
		t.Errorf("Number = %q", sections[0].Number)
	}
}

func TestParseRowsFooterStops(t *testing.T) {
	layout := testLayout(t)
	lines := []string{
		makeRow(t, layout, map[Field]string{FieldNumber: "W4701", FieldTitle: "Intro to AI"}),
		"L Code: E=exam only  L=lab fee",
		makeRow(t, layout, map[Field]string{FieldNumber: "W4995", FieldTitle: "Topics"}),
	}
	sections := ParseRows(layout, lines, "COMS")
	if len(sections) != 1 {
		t.Fatalf("got %d sections, want 1 (rows past footer must be dropped)", len(sections))
	}
	// The legend's "lab fee" must not be mistaken for an activity line.
	if sections[0].Component != nil {
		t.Errorf("Component = %q, footer legend consumed as component", *sections[0].Component)
	}
}

func TestParseRowsInstructorContinuation(t *testing.T) {
	layout := testLayout(t)
	lines := []string{
		makeRow(t, layout, map[Field]string{
			FieldNumber:  "W4701",
			FieldSection: "001",
			FieldTitle:   "Intro to AI",
			FieldFaculty: "Smith, J.,",
		}),
		makeRow(t, layout, map[Field]string{FieldFaculty: "Jones, A."}),
	}
	sections := ParseRows(layout, lines, "COMS")
	if len(sections) != 1 {
		t.Fatalf("got %d sections, want 1 (roster line must merge)", len(sections))
	}
	if got := deref(sections[0].Instructor); got != "Smith, J., Jones, A." {
		t.Errorf("Instructor = %q, want %q", got, "Smith, J., Jones, A.")
	}
}

func TestParseRowsContinuationNeedsTrailingComma(t *testing.T) {
	layout := testLayout(t)
	lines := []string{
		makeRow(t, layout, map[Field]string{
			FieldNumber:  "W4701",
			FieldSection: "001",
			FieldTitle:   "Intro to AI",
			FieldFaculty: "Smith, J.",
		}),
		makeRow(t, layout, map[Field]string{FieldFaculty: "Jones, A."}),
	}
	sections := ParseRows(layout, lines, "COMS")
	if len(sections) != 2 {
		t.Fatalf("got %d sections, want 2 (no trailing comma, no merge)", len(sections))
	}
}

func TestParseRowsContinuationOffColumn(t *testing.T) {
	layout := testLayout(t)
	lines := []string{
		makeRow(t, layout, map[Field]string{
			FieldNumber:  "W4701",
			FieldSection: "001",
			FieldTitle:   "Intro to AI",
			FieldFaculty: "Smith, J.,",
		}),
		// Roster text drifted out of the faculty column; the whole
		// trimmed line is appended instead.
		strings.Repeat(" ", 24) + "Jones, A.",
	}
	sections := ParseRows(layout, lines, "COMS")
	if len(sections) != 1 {
		t.Fatalf("got %d sections, want 1", len(sections))
	}
	if got := deref(sections[0].Instructor); got != "Smith, J., Jones, A." {
		t.Errorf("Instructor = %q, want %q", got, "Smith, J., Jones, A.")
	}
}

func TestParseRowsComponentLookahead(t *testing.T) {
	layout := testLayout(t)
	lines := []string{
		makeRow(t, layout, map[Field]string{
			FieldNumber:  "W4701",
			FieldSection: "R01",
			FieldTitle:   "Intro to AI",
			FieldPoints:  "0",
		}),
		"        RECITATION",
		makeRow(t, layout, map[Field]string{
			FieldNumber:  "W4995",
			FieldSection: "001",
			FieldTitle:   "Topics in CS",
			FieldPoints:  "3",
		}),
		"        independent study",
	}
	sections := ParseRows(layout, lines, "COMS")
	if len(sections) != 2 {
		t.Fatalf("got %d sections, want 2 (keyword lines must be consumed)", len(sections))
	}
	if got := deref(sections[0].Component); got != "RECITATION" {
		t.Errorf("Component = %q, want RECITATION", got)
	}
	if !sections[0].Subordinate {
		t.Error("zero-credit recitation not classified subordinate")
	}
	if got := deref(sections[1].Component); got != "INDEPENDENT STUDY" {
		t.Errorf("Component = %q, want INDEPENDENT STUDY", got)
	}
	if sections[1].Subordinate {
		t.Error("independent study wrongly classified subordinate")
	}
}

func TestParseRowsSubordinateBySectionCode(t *testing.T) {
	layout := testLayout(t)
	lines := []string{
		makeRow(t, layout, map[Field]string{
			FieldNumber:  "W1201",
			FieldSection: "R04",
			FieldTitle:   "Calculus II",
			FieldPoints:  "3",
		}),
	}
	sections := ParseRows(layout, lines, "MATH")
	if len(sections) != 1 {
		t.Fatal("expected one section")
	}
	if !sections[0].Subordinate {
		t.Error("R-coded section not classified subordinate")
	}
}

func TestParseRowsTimeFallback(t *testing.T) {
	layout := testLayout(t)
	// The time text shifted out of its column; the parser retries against
	// the full line.
	lines := []string{
		makeRow(t, layout, map[Field]string{
			FieldNumber: "W4701",
			FieldTitle:  "Intro to AI",
			FieldRoom:   "11:40",
		}) + "am-12:55pm",
	}
	sections := ParseRows(layout, lines, "COMS")
	if len(sections) != 1 {
		t.Fatal("expected one section")
	}
	if deref(sections[0].StartTime) != "11:40" || deref(sections[0].EndTime) != "12:55" {
		t.Errorf("times = %q-%q, want 11:40-12:55",
			deref(sections[0].StartTime), deref(sections[0].EndTime))
	}
}

func TestParseRowsTimeFallbackWithCreditRange(t *testing.T) {
	layout := testLayout(t)
	// A variable-credit row: the points range "1-3" sits ahead of the
	// shifted time text, and must not eat the retry.
	lines := []string{
		makeRow(t, layout, map[Field]string{
			FieldNumber: "W4995",
			FieldPoints: "1-3",
			FieldTitle:  "Topics in CS",
			FieldRoom:   "4:10pm",
		}) + "-5:25pm",
	}
	sections := ParseRows(layout, lines, "COMS")
	if len(sections) != 1 {
		t.Fatal("expected one section")
	}
	if deref(sections[0].StartTime) != "16:10" || deref(sections[0].EndTime) != "17:25" {
		t.Errorf("times = %q-%q, want 16:10-17:25",
			deref(sections[0].StartTime), deref(sections[0].EndTime))
	}
	if sections[0].CreditMin == nil || *sections[0].CreditMin != 1 ||
		sections[0].CreditMax == nil || *sections[0].CreditMax != 3 {
		t.Errorf("credits = (%v, %v), want (1, 3)", sections[0].CreditMin, sections[0].CreditMax)
	}
}

func TestParseRowsExplicitTBA(t *testing.T) {
	layout := testLayout(t)
	// An explicit TBA is a resolution: the whole-line retry is skipped
	// even though the line carries range-like digits elsewhere.
	lines := []string{
		makeRow(t, layout, map[Field]string{
			FieldNumber: "W4701",
			FieldTitle:  "Intro to AI",
			FieldTime:   "TBA",
			FieldRoom:   "1410",
		}) + "-1525",
	}
	sections := ParseRows(layout, lines, "COMS")
	if len(sections) != 1 {
		t.Fatal("expected one section")
	}
	if sections[0].StartTime != nil || sections[0].EndTime != nil {
		t.Errorf("times = %v-%v, want nil for TBA", sections[0].StartTime, sections[0].EndTime)
	}
}

func TestParseRowsToBeAnnounced(t *testing.T) {
	layout := testLayout(t)
	lines := []string{
		makeRow(t, layout, map[Field]string{
			FieldNumber:   "W4701",
			FieldTitle:    "Intro to AI",
			FieldBuilding: "To be",
		}),
		makeRow(t, layout, map[Field]string{FieldBuilding: "announced"}),
	}
	sections := ParseRows(layout, lines, "COMS")
	if len(sections) != 1 {
		t.Fatalf("got %d sections, want 1 (orphan line must be dropped)", len(sections))
	}
	if got := deref(sections[0].Building); got != "To be announced" {
		t.Errorf("Building = %q, want %q", got, "To be announced")
	}
	if sections[0].Room != nil {
		t.Errorf("Room = %q, want nil", *sections[0].Room)
	}
}

func TestParseRowsIdempotent(t *testing.T) {
	layout := testLayout(t)
	lines := []string{
		makeRow(t, layout, map[Field]string{
			FieldNumber:  "W4701",
			FieldSection: "001",
			FieldPoints:  "3",
			FieldTitle:   "Intro to AI",
			FieldDay:     "MW",
			FieldTime:    "1:10 pm-2:25 pm",
			FieldFaculty: "Smith, J.,",
		}),
		"        LECTURE",
		makeRow(t, layout, map[Field]string{FieldFaculty: "Jones, A."}),
	}
	first := ParseRows(layout, lines, "COMS")
	second := ParseRows(layout, lines, "COMS")
	if !reflect.DeepEqual(first, second) {
		t.Error("reparsing the same lines produced different records")
	}
}
