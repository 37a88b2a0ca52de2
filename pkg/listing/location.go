package listing

import (
	"regexp"
	"strings"
	"unicode"
)

// misSplitRoom matches a room token that swallowed the first letter of the
// building name: digits followed by exactly one trailing letter.
var misSplitRoom = regexp.MustCompile(`^[0-9]{1,4}[A-Za-z]$`)

// RepairLocation fixes the two building/room corruptions the source's
// fixed-width line-wrapping produces.
//
// The first is the wrapped "To be" / "announced" pair, rejoined into the
// single building value "To be announced". The second is a column boundary
// that split one composite token: a room ending in exactly one trailing
// letter next to a building starting with a lowercase letter means the
// letter belongs to the front of the building name.
//
// Empty values come back nil.
func RepairLocation(building, room string) (b, r *string) {
	building = strings.TrimSpace(building)
	room = strings.TrimSpace(room)

	if building == "To be" && strings.EqualFold(room, "announced") {
		building = "To be announced"
		room = ""
	}

	if misSplitRoom.MatchString(room) && startsLower(building) {
		building = room[len(room)-1:] + building
		room = room[:len(room)-1]
	}

	if building != "" {
		b = &building
	}
	if room != "" {
		r = &room
	}
	return b, r
}

func startsLower(s string) bool {
	for _, r := range s {
		return unicode.IsLower(r)
	}
	return false
}
