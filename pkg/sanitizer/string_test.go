package sanitizer

import "testing"

func TestTrimAndNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"only spaces", "   ", ""},
		{"leading and trailing", "  Meeting Room 1  ", "Meeting Room 1"},
		{"internal runs", "Meeting \t\n Room", "Meeting Room"},
		{"already clean", "Projector", "Projector"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TrimAndNormalize(tt.in); got != tt.want {
				t.Errorf("TrimAndNormalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeEmail(t *testing.T) {
	if got := NormalizeEmail("  Alice@Example.COM "); got != "alice@example.com" {
		t.Errorf("NormalizeEmail = %q", got)
	}
}

func TestNormalizeResourceID(t *testing.T) {
	if got := NormalizeResourceID(" Room-1 "); got != "room-1" {
		t.Errorf("NormalizeResourceID = %q", got)
	}
}
