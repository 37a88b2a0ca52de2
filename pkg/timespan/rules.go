package timespan

import (
	"regexp"
	"strconv"
)

// A rule inspects a preprocessed string and either claims it, returning the
// resolved span, or passes. Rules run in cascade order: once a rule claims
// the input, later rules never see it, so specific notations must sit above
// the notations they could be mistaken for.
type rule struct {
	name  string
	apply func(s string) (Span, bool)
}

var cascade = []rule{
	{"meridiem-range", matchMeridiemRange},
	{"digital-24h-range", matchDigital24Range},
	{"compact-range", matchCompactRange},
	{"single-time", matchSingle},
	{"tba", matchTBA},
}

// meridiemRangeRE tolerates a missing meridiem on either side and a missing
// minutes group ("1 pm-2:15 pm"). A truncated marker ("12:55p") simply fails
// the meridiem group and is treated as inferred.
var meridiemRangeRE = regexp.MustCompile(`(?i)\b(\d{1,2})(?::(\d{2}))?\s*([ap]m)?\s*-\s*(\d{1,2})(?::(\d{2}))?\s*([ap]m)?`)

// matchMeridiemRange handles clock-12 ranges where at least one side carries
// an explicit am/pm marker. A side with no marker inherits the other side's
// meridiem; when that still yields a non-increasing range, the inferred side
// flips to the opposite meridiem ("11:40am-12:55" reads as ending 12:55 pm).
// A range that is non-increasing with both markers explicit is rejected
// rather than guessed at.
//
// Every hyphen-joined digit pair in the input is a candidate: on a whole
// line, a credit range ("1-3") sits ahead of the real meeting time, so a
// candidate that fails this rule is skipped, not fatal.
func matchMeridiemRange(s string) (Span, bool) {
	for _, m := range meridiemRangeRE.FindAllStringSubmatch(s, -1) {
		startMer, endMer := lowerMer(m[3]), lowerMer(m[6])
		if startMer == "" && endMer == "" {
			continue
		}
		sh, sm, ok := clock12(m[1], m[2])
		if !ok {
			continue
		}
		eh, em, ok := clock12(m[4], m[5])
		if !ok {
			continue
		}

		startInferred := startMer == ""
		endInferred := endMer == ""
		if startInferred {
			startMer = endMer
		}
		if endInferred {
			endMer = startMer
		}

		start := to24(sh, startMer)*60 + sm
		end := to24(eh, endMer)*60 + em
		if end <= start {
			switch {
			case startInferred:
				start = to24(sh, flipMer(startMer))*60 + sm
			case endInferred:
				end = to24(eh, flipMer(endMer))*60 + em
			default:
				continue
			}
			if end <= start {
				continue
			}
		}
		return Span{Start: newPoint(start/60, start%60), End: newPoint(end/60, end%60)}, true
	}
	return Span{}, false
}

var digital24RangeRE = regexp.MustCompile(`\b(\d{1,2}):(\d{2})\s*-\s*(\d{1,2}):(\d{2})\b`)

// matchDigital24Range handles literal 24-hour colon ranges ("14:10-15:25").
// The range must increase; with neither side carrying a meridiem there is no
// marker to flip, so a non-increasing pair is not this notation. Candidates
// that fail are skipped in favor of later pairs in the input.
func matchDigital24Range(s string) (Span, bool) {
	for _, m := range digital24RangeRE.FindAllStringSubmatch(s, -1) {
		sh, sm, ok := clock24(m[1], m[2])
		if !ok {
			continue
		}
		eh, em, ok := clock24(m[3], m[4])
		if !ok {
			continue
		}
		if eh*60+em <= sh*60+sm {
			continue
		}
		return Span{Start: newPoint(sh, sm), End: newPoint(eh, em)}, true
	}
	return Span{}, false
}

var compactRangeRE = regexp.MustCompile(`\b(\d{3,4})\s*-\s*(\d{3,4})\b`)

// matchCompactRange handles colonless military ranges ("1410-1525"). The
// trailing two digits are minutes. Candidates that fail are skipped in favor
// of later pairs in the input.
func matchCompactRange(s string) (Span, bool) {
	for _, m := range compactRangeRE.FindAllStringSubmatch(s, -1) {
		sh, sm, ok := splitCompact(m[1])
		if !ok {
			continue
		}
		eh, em, ok := splitCompact(m[2])
		if !ok {
			continue
		}
		if eh*60+em <= sh*60+sm {
			continue
		}
		return Span{Start: newPoint(sh, sm), End: newPoint(eh, em)}, true
	}
	return Span{}, false
}

var (
	singleClockRE   = regexp.MustCompile(`(?i)^(\d{1,2})(?::(\d{2}))?\s*([ap]m)?$`)
	singleCompactRE = regexp.MustCompile(`^(\d{3,4})$`)
)

// matchSingle handles a field that is exactly one time, which the source
// emits for zero-length administrative meetings. Both sides of the span get
// the same value. Unlike the range rules this one requires a full-field
// match: a lone time embedded in other text is not a meeting time. A bare
// one- or two-digit number with neither colon nor meridiem is too ambiguous
// to accept.
func matchSingle(s string) (Span, bool) {
	if m := singleClockRE.FindStringSubmatch(s); m != nil {
		mer := lowerMer(m[3])
		if mer == "" && m[2] == "" {
			return Span{}, false
		}
		var h, mn int
		var ok bool
		if mer != "" {
			h, mn, ok = clock12(m[1], m[2])
			if !ok {
				return Span{}, false
			}
			h = to24(h, mer)
		} else {
			h, mn, ok = clock24(m[1], m[2])
			if !ok {
				return Span{}, false
			}
		}
		return Span{Start: newPoint(h, mn), End: newPoint(h, mn)}, true
	}
	if m := singleCompactRE.FindStringSubmatch(s); m != nil {
		h, mn, ok := splitCompact(m[1])
		if !ok {
			return Span{}, false
		}
		return Span{Start: newPoint(h, mn), End: newPoint(h, mn)}, true
	}
	return Span{}, false
}

// matchTBA claims explicit unscheduled markers so they terminate the cascade
// as a deliberate null rather than an unparsed leftover.
func matchTBA(s string) (Span, bool) {
	if tbaRE.MatchString(s) {
		return Span{}, true
	}
	return Span{}, false
}

func lowerMer(s string) string {
	switch s {
	case "am", "AM", "Am", "aM":
		return "am"
	case "pm", "PM", "Pm", "pM":
		return "pm"
	}
	return ""
}

func flipMer(mer string) string {
	if mer == "am" {
		return "pm"
	}
	return "am"
}

func to24(hour int, mer string) int {
	switch {
	case mer == "pm" && hour != 12:
		return hour + 12
	case mer == "am" && hour == 12:
		return 0
	}
	return hour
}

// clock12 parses an hour/minutes pair in clock-12 notation. An absent
// minutes group reads as :00.
func clock12(hourS, minS string) (hour, min int, ok bool) {
	hour, _ = strconv.Atoi(hourS)
	if hour < 1 || hour > 12 {
		return 0, 0, false
	}
	if minS != "" {
		min, _ = strconv.Atoi(minS)
		if min > 59 {
			return 0, 0, false
		}
	}
	return hour, min, true
}

func clock24(hourS, minS string) (hour, min int, ok bool) {
	hour, _ = strconv.Atoi(hourS)
	if hour > 23 {
		return 0, 0, false
	}
	if minS != "" {
		min, _ = strconv.Atoi(minS)
		if min > 59 {
			return 0, 0, false
		}
	}
	return hour, min, true
}

// splitCompact splits a 3- or 4-digit military time into hour and minutes.
func splitCompact(s string) (hour, min int, ok bool) {
	n, _ := strconv.Atoi(s)
	hour, min = n/100, n%100
	if hour > 23 || min > 59 {
		return 0, 0, false
	}
	return hour, min, true
}
