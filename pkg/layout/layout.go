package layout

import (
	"fmt"
	"strings"
)

// Layout identifies a supported keyboard layout.
type Layout int

const (
	// Qwerty is the hub layout. Every peripheral-to-peripheral conversion
	// is composed through it.
	Qwerty Layout = iota
	Dvorak
	Colemak
	Russian
)

// layoutNames maps each layout to its canonical lowercase name.
var layoutNames = map[Layout]string{
	Qwerty:  "qwerty",
	Dvorak:  "dvorak",
	Colemak: "colemak",
	Russian: "russian",
}

// String returns the canonical lowercase name of the layout.
func (l Layout) String() string {
	if name, ok := layoutNames[l]; ok {
		return name
	}
	return fmt.Sprintf("layout(%d)", int(l))
}

// Layouts returns all supported layouts, hub first.
func Layouts() []Layout {
	return []Layout{Qwerty, Dvorak, Colemak, Russian}
}

// Peripherals returns the supported non-hub layouts.
func Peripherals() []Layout {
	return []Layout{Dvorak, Colemak, Russian}
}

// UnknownLayoutError reports a layout name that matches no supported layout.
type UnknownLayoutError struct {
	Name string
}

// Error implements the error interface.
func (e *UnknownLayoutError) Error() string {
	return fmt.Sprintf("unknown layout %q", e.Name)
}

// Parse resolves a layout name to its identifier. Matching is
// case-insensitive. Returns an *UnknownLayoutError carrying the offending
// input when the name matches no supported layout.
func Parse(name string) (Layout, error) {
	switch strings.ToLower(name) {
	case "qwerty":
		return Qwerty, nil
	case "dvorak":
		return Dvorak, nil
	case "colemak":
		return Colemak, nil
	case "russian":
		return Russian, nil
	default:
		return 0, &UnknownLayoutError{Name: name}
	}
}
