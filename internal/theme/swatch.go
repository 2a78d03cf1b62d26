package theme

import "math"

// HSLColor represents a color in HSL space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees
	S int `json:"s"` // Saturation: 0-100 percent
	L int `json:"l"` // Lightness: 0-100 percent
}

// Swatch is one theme color in the formats clients usually want.
type Swatch struct {
	Hex string   `json:"hex"` // Six lowercase hex digits, no '#'
	RGB RGB      `json:"rgb"`
	HSL HSLColor `json:"hsl"`
}

// NewSwatch describes c as a Swatch.
func NewSwatch(c RGB) Swatch {
	h, s, l := c.colorful().Hsl()
	if math.IsNaN(h) {
		h = 0
	}
	return Swatch{
		Hex: c.Hex(),
		RGB: c,
		HSL: HSLColor{H: int(h), S: int(s * 100), L: int(l * 100)},
	}
}

// Assignment binds a desktop theme property to a theme color.
type Assignment struct {
	Property string `json:"property"`
	Color    RGB    `json:"color"`
}

// Property names understood by awesome-style theme files.
const (
	PropBgNormal = "bg_normal"
	PropBgFocus  = "bg_focus"
	PropFgNormal = "fg_normal"
	PropFgFocus  = "fg_focus"
)

// Assignments returns the theme's colors keyed by the theme property each
// one drives, in a fixed order.
func (t *Theme) Assignments() []Assignment {
	return []Assignment{
		{Property: PropBgNormal, Color: t.Primary},
		{Property: PropBgFocus, Color: t.Secondary},
		{Property: PropFgFocus, Color: t.ActiveText},
		{Property: PropFgNormal, Color: t.NormalText},
	}
}

// Report is a Theme expanded into swatches, as returned by the server.
type Report struct {
	Centrality  string       `json:"centrality,omitempty"`
	Primary     Swatch       `json:"primary"`
	Secondary   Swatch       `json:"secondary"`
	ActiveText  Swatch       `json:"active_text"`
	NormalText  Swatch       `json:"normal_text"`
	Assignments []Assignment `json:"assignments"`
}

// Report expands t into swatches. mode is recorded as given.
func (t *Theme) Report(mode string) *Report {
	return &Report{
		Centrality:  mode,
		Primary:     NewSwatch(t.Primary),
		Secondary:   NewSwatch(t.Secondary),
		ActiveText:  NewSwatch(t.ActiveText),
		NormalText:  NewSwatch(t.NormalText),
		Assignments: t.Assignments(),
	}
}
