package layout

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Layout
		wantErr bool
	}{
		{"qwerty lowercase", "qwerty", Qwerty, false},
		{"dvorak lowercase", "dvorak", Dvorak, false},
		{"colemak lowercase", "colemak", Colemak, false},
		{"russian lowercase", "russian", Russian, false},
		{"mixed case", "DvOrAk", Dvorak, false},
		{"all caps", "QWERTY", Qwerty, false},
		{"unknown layout", "azerty", 0, true},
		{"empty name", "", 0, true},
		{"whitespace not trimmed", " qwerty", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Parse(%q) = %v, want error", tt.input, got)
				}
				var unknownErr *UnknownLayoutError
				if !errors.As(err, &unknownErr) {
					t.Fatalf("Parse(%q) error = %T, want *UnknownLayoutError", tt.input, err)
				}
				if unknownErr.Name != tt.input {
					t.Errorf("error carries name %q, want %q", unknownErr.Name, tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestString(t *testing.T) {
	for _, l := range Layouts() {
		name := l.String()
		if name == "" {
			t.Errorf("layout %d has empty name", int(l))
		}
		back, err := Parse(name)
		if err != nil {
			t.Errorf("Parse(%q) error: %v", name, err)
		}
		if back != l {
			t.Errorf("Parse(%q) = %v, want %v", name, back, l)
		}
	}
}

func TestLayoutsHubFirst(t *testing.T) {
	all := Layouts()
	if len(all) != 4 {
		t.Fatalf("Layouts() returned %d layouts, want 4", len(all))
	}
	if all[0] != Qwerty {
		t.Errorf("Layouts()[0] = %v, want Qwerty", all[0])
	}
	for _, p := range Peripherals() {
		if p == Qwerty {
			t.Error("Peripherals() includes the hub layout")
		}
	}
}
