package detect

import (
	"reflect"
	"testing"
)

func TestPANDetectorFindMatch(t *testing.T) {
	tests := []struct {
		name  string
		chunk string
		want  map[string][]string
	}{
		{
			name:  "visa with spaces",
			chunk: "card on file: 4893 0133 3538 6137",
			want:  map[string][]string{"visa": {"4893 01** **** 6137"}},
		},
		{
			name:  "visa with hyphens",
			chunk: "card on file: 48930133-35386137",
			want:  map[string][]string{"visa": {"489301**-****6137"}},
		},
		{
			name:  "amex no separators",
			chunk: "amex: 371449635398431",
			want:  map[string][]string{"amex": {"371449*****8431"}},
		},
		{
			name:  "fails luhn check",
			chunk: "not a pan: 4893 0133 3538 6130",
			want:  map[string][]string{},
		},
		{
			name:  "no candidates",
			chunk: "nothing to see here",
			want:  map[string][]string{},
		},
	}

	d := NewPANDetector()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := d.FindMatch(tc.chunk)
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("FindMatch(%q) = %v, want %v", tc.chunk, got, tc.want)
			}
		})
	}
}

func TestPANDetectorName(t *testing.T) {
	if got := NewPANDetector().Name(); got != PANDetectorName {
		t.Errorf("Name() = %q, want %q", got, PANDetectorName)
	}
}
