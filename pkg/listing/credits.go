package listing

import (
	"strconv"
	"strings"
)

// ResolveCredits parses the Points column into a (min, max) credit range.
// A hyphen splits the value into two bounds; if either bound fails to parse
// the whole range is unresolved: downstream consumers read nil as "unknown"
// but a number as "known", so a half-resolved range would smuggle a wrong
// value in as a known one. A single token doubles as both bounds.
func ResolveCredits(points string) (min, max *float64) {
	points = strings.TrimSpace(points)
	if points == "" {
		return nil, nil
	}

	if lo, hi, found := strings.Cut(points, "-"); found {
		a, errLo := strconv.ParseFloat(strings.TrimSpace(lo), 64)
		b, errHi := strconv.ParseFloat(strings.TrimSpace(hi), 64)
		if errLo != nil || errHi != nil {
			return nil, nil
		}
		return &a, &b
	}

	v, err := strconv.ParseFloat(points, 64)
	if err != nil {
		return nil, nil
	}
	lo, hi := v, v
	return &lo, &hi
}
