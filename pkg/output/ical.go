package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/lectern-project/lectern/pkg/listing"
)

// weekdayOffset maps weekday names to days after Monday, matching the
// Monday-anchored WeekStart option.
var weekdayOffset = map[string]int{
	"Monday":    0,
	"Tuesday":   1,
	"Wednesday": 2,
	"Thursday":  3,
	"Friday":    4,
	"Saturday":  5,
	"Sunday":    6,
}

// ICalFormatter emits one weekly recurring VEVENT per section meeting day.
// Sections without both a resolved time and at least one weekday have no
// calendar representation and are skipped.
type ICalFormatter struct {
	weekStart time.Time
}

func NewICal(opts Options) *ICalFormatter {
	return &ICalFormatter{weekStart: opts.WeekStart}
}

func (f *ICalFormatter) Name() string {
	return "ical"
}

func (f *ICalFormatter) Format(w io.Writer, batch *Batch) error {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//lectern//course listings//EN")

	for _, sec := range batch.Sections {
		if sec.StartTime == nil || sec.EndTime == nil {
			continue
		}
		for _, day := range sec.Days {
			if err := f.addMeeting(cal, batch, sec, day); err != nil {
				return err
			}
		}
	}

	if _, err := io.WriteString(w, cal.Serialize()); err != nil {
		return fmt.Errorf("writing calendar: %w", err)
	}
	return nil
}

func (f *ICalFormatter) addMeeting(cal *ics.Calendar, batch *Batch, sec *listing.Section, day string) error {
	offset, ok := weekdayOffset[day]
	if !ok {
		return fmt.Errorf("unknown weekday %q for %s %s", day, sec.Subject, sec.Number)
	}
	date := f.weekStart.AddDate(0, 0, offset)

	start, err := atClock(date, *sec.StartTime)
	if err != nil {
		return fmt.Errorf("section %s %s: %w", sec.Subject, sec.Number, err)
	}
	end, err := atClock(date, *sec.EndTime)
	if err != nil {
		return fmt.Errorf("section %s %s: %w", sec.Subject, sec.Number, err)
	}

	uid := fmt.Sprintf("%s-%s-%s-%s-%s@lectern", batch.Term, sec.Subject, sec.Number, sec.SectionCode, day)
	event := cal.AddEvent(uid)
	event.SetDtStampTime(batch.ScrapedAt)
	event.SetStartAt(start)
	event.SetEndAt(end)
	event.SetSummary(fmt.Sprintf("%s %s: %s", sec.Subject, sec.Number, sec.Title))
	event.AddRrule("FREQ=WEEKLY")
	if loc := renderLocation(sec); loc != "" {
		event.SetLocation(loc)
	}
	if sec.Instructor != nil {
		event.SetDescription("Instructor: " + *sec.Instructor)
	}
	return nil
}

// atClock combines a calendar date with an "HH:MM" label.
func atClock(date time.Time, clock string) (time.Time, error) {
	hs, ms, ok := strings.Cut(clock, ":")
	if !ok {
		return time.Time{}, fmt.Errorf("malformed clock value %q", clock)
	}
	h, err := strconv.Atoi(hs)
	if err != nil {
		return time.Time{}, fmt.Errorf("malformed clock value %q", clock)
	}
	m, err := strconv.Atoi(ms)
	if err != nil {
		return time.Time{}, fmt.Errorf("malformed clock value %q", clock)
	}
	return time.Date(date.Year(), date.Month(), date.Day(), h, m, 0, 0, date.Location()), nil
}
