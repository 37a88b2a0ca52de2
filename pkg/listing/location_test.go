package listing

import "testing"

func TestRepairLocation(t *testing.T) {
	tests := []struct {
		name     string
		building string
		room     string
		wantB    string
		wantR    string
	}{
		{"plain", "Mudd", "833", "Mudd", "833"},
		{"to be announced join", "To be", "announced", "To be announced", ""},
		{"to be announced case", "To be", "Announced", "To be announced", ""},
		{"mis-split boundary", "udd", "833M", "Mudd", "833"},
		{"mis-split single digit room", "upin", "3P", "Pupin", "3"},
		{"uppercase building untouched", "Mudd", "833M", "Mudd", "833M"},
		{"plain room untouched", "athrop", "833", "athrop", "833"},
		{"both empty", "", "", "", ""},
		{"room only", "", "417", "", "417"},
		{"padded input", "  Mudd  ", " 833 ", "Mudd", "833"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, r := RepairLocation(tt.building, tt.room)
			if got := deref(b); got != tt.wantB {
				t.Errorf("building = %q, want %q", got, tt.wantB)
			}
			if got := deref(r); got != tt.wantR {
				t.Errorf("room = %q, want %q", got, tt.wantR)
			}
		})
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
