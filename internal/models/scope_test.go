package models

import "testing"

func TestParseGroup(t *testing.T) {
	for _, s := range []string{"prime", "prime_id"} {
		if _, err := ParseGroup(s); err != nil {
			t.Errorf("ParseGroup(%q): %v", s, err)
		}
	}
	for _, s := range []string{"", "Prime", "prime-id", "other"} {
		if _, err := ParseGroup(s); err == nil {
			t.Errorf("ParseGroup(%q) should fail", s)
		}
	}
}

func TestParseEventType(t *testing.T) {
	if e, err := ParseEventType("dual-team"); err != nil || e != EventDualTeam {
		t.Errorf("ParseEventType(\"dual-team\") = %v, %v", e, err)
	}
	if e, err := ParseEventType("endurance"); err != nil || e != EventEndurance {
		t.Errorf("ParseEventType(\"endurance\") = %v, %v", e, err)
	}
	if _, err := ParseEventType("sprint"); err == nil {
		t.Error("ParseEventType(\"sprint\") should fail")
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct{ in, want string }{
		{"PRIME ID • UKAR", "UKAR"},
		{"UKAR", "UKAR"},
		{"  padded  ", "padded"},
	}
	for _, tt := range tests {
		if got := DisplayName(tt.in); got != tt.want {
			t.Errorf("DisplayName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
