package ranking

import (
	"testing"

	"clubhub/internal/apperrors"
)

func TestParseLapTime(t *testing.T) {
	tests := []struct {
		input string
		want  int64
		ok    bool
	}{
		{"07:23.456", 443456, true},
		{"00:00.000", 0, true},
		{"01:23.456", 83456, true},
		{"99:59.999", 5999999, true},
		{"7:23.456", 0, false},
		{"07:23.45", 0, false},
		{"07-23.456", 0, false},
		{"07:23,456", 0, false},
		{"", 0, false},
		{"abc", 0, false},
	}

	for _, tt := range tests {
		got, err := ParseLapTime(tt.input)
		if tt.ok {
			if err != nil {
				t.Errorf("ParseLapTime(%q) unexpected error: %v", tt.input, err)
				continue
			}
			if got != tt.want {
				t.Errorf("ParseLapTime(%q) = %d, want %d", tt.input, got, tt.want)
			}
			continue
		}

		if err == nil {
			t.Errorf("ParseLapTime(%q) should fail", tt.input)
			continue
		}
		if !apperrors.HasCode(err, apperrors.CodeValidation) {
			t.Errorf("ParseLapTime(%q) error code = %v, want validation", tt.input, err)
		}
	}
}

func TestFormatLapTime(t *testing.T) {
	if got := FormatLapTime(83456); got != "01:23.456" {
		t.Errorf("FormatLapTime(83456) = %q, want %q", got, "01:23.456")
	}
	if got := FormatLapTime(0); got != "00:00.000" {
		t.Errorf("FormatLapTime(0) = %q, want %q", got, "00:00.000")
	}
}

func TestLapTimeRoundTrip(t *testing.T) {
	for _, s := range []string{"07:23.456", "00:00.001", "59:59.999", "10:00.000"} {
		millis, err := ParseLapTime(s)
		if err != nil {
			t.Fatalf("ParseLapTime(%q): %v", s, err)
		}
		if got := FormatLapTime(millis); got != s {
			t.Errorf("round trip of %q produced %q", s, got)
		}
	}
}
