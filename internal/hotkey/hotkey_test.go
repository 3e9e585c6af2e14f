package hotkey

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"bare id", "42", "notice-42"},
		{"already canonical", "notice-42", "notice-42"},
		{"display prefixed", "hot-notice-42", "notice-42"},
		{"display on bare", "hot-42", "notice-42"},
		{"surrounding space", "  42  ", "notice-42"},
		{"blank", "   ", ""},
		{"event id", "evt-2024-001", "notice-evt-2024-001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.raw); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{"42", "notice-42", "hot-notice-42", "hot-42", "", "x"}
	for _, in := range inputs {
		once := Normalize(in)
		if twice := Normalize(once); twice != once {
			t.Errorf("Normalize(Normalize(%q)) = %q, want %q", in, twice, once)
		}
	}
}

func TestNormalize_Collision(t *testing.T) {
	a := Normalize("hot-notice-42")
	b := Normalize("42")
	c := Normalize("notice-42")
	if a != b || b != c {
		t.Errorf("expected one canonical id, got %q %q %q", a, b, c)
	}
}

func TestDisplay_RoundTrip(t *testing.T) {
	canonical := Normalize("42")
	if got := Normalize(Display(canonical)); got != canonical {
		t.Errorf("Normalize(Display(%q)) = %q, want %q", canonical, got, canonical)
	}
}
