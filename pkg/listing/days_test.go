package listing

import (
	"reflect"
	"testing"
)

func TestExpandDays(t *testing.T) {
	tests := []struct {
		name string
		code string
		want []string
	}{
		{"mwf", "MWF", []string{"Monday", "Wednesday", "Friday"}},
		{"tr", "TR", []string{"Tuesday", "Thursday"}},
		{"lowercase", "mwf", []string{"Monday", "Wednesday", "Friday"}},
		{"internal whitespace", "M W F", []string{"Monday", "Wednesday", "Friday"}},
		{"weekend codes", "SU", []string{"Saturday", "Sunday"}},
		{"appearance order kept", "FM", []string{"Friday", "Monday"}},
		{"duplicates dropped", "MM", []string{"Monday"}},
		{"unknown letters dropped", "MXW", []string{"Monday", "Wednesday"}},
		{"all unknown", "XYZ", nil},
		{"empty", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExpandDays(tt.code); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExpandDays(%q) = %v, want %v", tt.code, got, tt.want)
			}
		})
	}
}
