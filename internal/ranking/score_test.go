package ranking

import "testing"

func TestParseScore(t *testing.T) {
	tests := []struct {
		input string
		want  int64
		ok    bool
	}{
		{"500000", 500000, true},
		{"500.000", 500000, true},
		{"1,500,000", 1500000, true},
		{"1.500.000", 1500000, true},
		{" 42 ", 42, true},
		{"0", 0, true},
		{"", 0, false},
		{"  ", 0, false},
		{"-5", 0, false},
		{"12a3", 0, false},
		{"..,,", 0, false},
	}

	for _, tt := range tests {
		got, err := ParseScore(tt.input)
		if tt.ok != (err == nil) {
			t.Errorf("ParseScore(%q) error = %v, want ok=%v", tt.input, err, tt.ok)
			continue
		}
		if tt.ok && got != tt.want {
			t.Errorf("ParseScore(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}
