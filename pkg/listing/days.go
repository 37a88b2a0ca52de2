package listing

import "unicode"

// dayNames maps the registrar's single-letter day codes to weekday names.
// R is Thursday and U is Sunday in this encoding.
var dayNames = map[rune]string{
	'M': "Monday",
	'T': "Tuesday",
	'W': "Wednesday",
	'R': "Thursday",
	'F': "Friday",
	'S': "Saturday",
	'U': "Sunday",
}

// ExpandDays expands a compact day-letter code such as "MWF" into weekday
// names. Emission order follows order of appearance in the input, not week
// order; duplicates and unrecognized letters are dropped silently, and case
// and internal whitespace are ignored.
func ExpandDays(code string) []string {
	var days []string
	for _, r := range code {
		name, ok := dayNames[unicode.ToUpper(r)]
		if !ok {
			continue
		}
		if !containsDay(days, name) {
			days = append(days, name)
		}
	}
	return days
}

func containsDay(days []string, name string) bool {
	for _, d := range days {
		if d == name {
			return true
		}
	}
	return false
}
