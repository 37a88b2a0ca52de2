// Package timespan normalizes free-form registrar time-range strings into
// canonical 24-hour clock pairs.
//
// The source mixes several time notations across eras of the underlying
// system (meridiem ranges, literal 24-hour ranges, compact digit ranges,
// single times and TBA markers), sometimes within one listing page. Input is
// resolved against an ordered cascade of pattern rules, most specific first,
// so the precedence stays auditable rule by rule.
package timespan

import (
	"fmt"
	"regexp"
	"strings"
)

// Point is one resolved side of a time range.
type Point struct {
	// Label is the canonical 24-hour "HH:MM" form.
	Label string
	// Minutes is the sortable minutes-since-midnight value.
	Minutes int
}

// Span is a normalized time range. A nil side means the source carried no
// usable clock value, "to be announced". Both sides are nil or both are set.
type Span struct {
	Start *Point
	End   *Point
}

// Resolved reports whether both sides carry a clock value.
func (s Span) Resolved() bool {
	return s.Start != nil && s.End != nil
}

// Normalize parses an arbitrary time-range string. Unicode dash variants,
// the word "to", meridiem periods and stray whitespace are normalized away
// before the rule cascade runs. Input that matches no rule resolves to the
// null span, which downstream consumers read as "to be announced".
func Normalize(raw string) Span {
	s := preprocess(raw)
	for _, r := range cascade {
		if span, ok := r.apply(s); ok {
			return span
		}
	}
	return Span{}
}

// ExplicitTBA reports whether the input carries a literal TBA/TBD marker.
// Callers use this to tell "the field says the time is unscheduled" apart
// from "the field failed to parse", which may warrant a broader search.
func ExplicitTBA(raw string) bool {
	return tbaRE.MatchString(preprocess(raw))
}

var (
	// All unicode dash variants the source has been seen to emit.
	dashRE   = regexp.MustCompile("[‐‑‒–—―⁃−]")
	toWordRE = regexp.MustCompile(`(?i)\bto\b`)
	spaceRE  = regexp.MustCompile(`\s+`)
	tbaRE    = regexp.MustCompile(`(?i)\b(?:TBA|TBD)\b`)
)

func preprocess(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	s = dashRE.ReplaceAllString(s, "-")
	s = toWordRE.ReplaceAllString(s, "-")
	s = strings.ReplaceAll(s, ".", "")
	s = spaceRE.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

func newPoint(hour, minute int) *Point {
	return &Point{
		Label:   fmt.Sprintf("%02d:%02d", hour, minute),
		Minutes: hour*60 + minute,
	}
}
