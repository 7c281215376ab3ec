package icons

import "testing"

func TestEveryIconHasNameAndGlyph(t *testing.T) {
	seen := map[string]bool{}
	for _, i := range All() {
		if i.Name() == "" || i.Glyph() == "" {
			t.Errorf("icon %d is missing a name or glyph", int(i))
		}
		if seen[i.Name()] {
			t.Errorf("duplicate icon name %q", i.Name())
		}
		seen[i.Name()] = true
		if Parse(i.Name()) != i {
			t.Errorf("Parse(%q) did not round-trip", i.Name())
		}
	}
}

func TestParseFallsBackToDatabase(t *testing.T) {
	tests := []struct {
		name string
		want Icon
	}{
		{"Brain", Brain},
		{"gamepad2", Gamepad},
		{" cloud ", Cloud},
		{"", Database},
		{"Rocket", Database},
	}
	for _, tt := range tests {
		if got := Parse(tt.name); got != tt.want {
			t.Errorf("Parse(%q) = %s, want %s", tt.name, got, tt.want)
		}
	}
	if Known("Rocket") || !Known("Fish") {
		t.Error("Known() disagrees with the icon table")
	}
}

func TestOutOfRangeIcon(t *testing.T) {
	if Icon(999).Name() != "Database" || Icon(-1).Glyph() != Database.Glyph() {
		t.Error("out-of-range icons must render as Database")
	}
}
