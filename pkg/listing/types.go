// Package listing parses fixed-width registrar course listings into typed
// section records.
package listing

// Section is one normalized course offering row.
//
// Fields the source may leave blank or garbled are pointers; nil means the
// information is absent from the row, never that it was guessed at. The
// registrar does not guarantee uniqueness of any identity field, so none of
// them may be used as a key on their own.
type Section struct {
	// Identity
	Subject     string `json:"subject"`
	Number      string `json:"number"`
	SectionCode string `json:"section"`
	CallNumber  string `json:"call_number"`

	// Descriptive
	Title      string  `json:"title"`
	Instructor *string `json:"instructor"`

	// Schedule. Days is the ordered weekday set; empty means no fixed
	// meeting. A nil start/end pair means the time is to be announced.
	Days      []string `json:"days"`
	StartTime *string  `json:"start_time"`
	EndTime   *string  `json:"end_time"`
	Component *string  `json:"component"`

	// Credits. Min and Max are equal for fixed-credit sections.
	CreditMin *float64 `json:"credit_min"`
	CreditMax *float64 `json:"credit_max"`

	// Location
	Building *string `json:"building"`
	Room     *string `json:"room"`

	// Linkage. ParentCourseCode and DetailURL are populated by the linker
	// after the page parse; the record is immutable afterwards.
	Subordinate      bool    `json:"is_subordinate"`
	ParentCourseCode *string `json:"parent_course_code"`
	DetailURL        *string `json:"detail_url"`
}

// CourseCode returns the "SUBJECT NUMBER" form used for parent references.
func (s *Section) CourseCode() string {
	return s.Subject + " " + s.Number
}
