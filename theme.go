package chessground

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Theme holds the colors used to render the board, the highlights, and the
// annotation brushes. The zero value is not usable; start from DefaultTheme
// or LoadTheme.
type Theme struct {
	// Board surface.
	LightSquare Color `yaml:"lightSquare"`
	DarkSquare  Color `yaml:"darkSquare"`
	Border      Color `yaml:"border"`
	Coord       Color `yaml:"coord"`

	// Highlights. Selected fills the selected square, DragTarget the valid
	// square currently hovered during a drag, LastMove the two squares of
	// the most recent move, and Hint the legal-move dots and capture
	// notches.
	Selected   Color `yaml:"selected"`
	DragTarget Color `yaml:"dragTarget"`
	LastMove   Color `yaml:"lastMove"`
	Hint       Color `yaml:"hint"`

	// Check colors the radial gradient drawn under a checked king: Check at
	// the center, CheckMid at 25%, and transparent CheckOuter at 89% of the
	// square's half-diagonal.
	Check      Color `yaml:"check"`
	CheckMid   Color `yaml:"checkMid"`
	CheckOuter Color `yaml:"checkOuter"`

	// Promotion dialog.
	PromotionDim        Color `yaml:"promotionDim"`
	PromotionLightField Color `yaml:"promotionLightField"`
	PromotionDarkField  Color `yaml:"promotionDarkField"`
	PromotionRing       Color `yaml:"promotionRing"`
	PromotionRingHover  Color `yaml:"promotionRingHover"`

	// Annotation brushes, indexed by Brush.
	Brushes [numBrushes]Color `yaml:"brushes"`
}

// DefaultTheme returns the built-in color scheme.
func DefaultTheme() Theme {
	return Theme{
		LightSquare: Color{0.87, 0.89, 0.90, 1},
		DarkSquare:  Color{0.55, 0.64, 0.68, 1},
		Border:      Color{0.2, 0.2, 0.5, 1},
		Coord:       Color{0.8, 0.8, 0.8, 1},

		Selected:   Color{0.08, 0.47, 0.11, 0.5},
		DragTarget: Color{0.08, 0.47, 0.11, 0.25},
		LastMove:   Color{0.61, 0.78, 0.0, 0.41},
		Hint:       Color{0.08, 0.47, 0.11, 0.5},

		Check:      Color{1, 0, 0, 1},
		CheckMid:   Color{0.91, 0, 0, 1},
		CheckOuter: Color{0.66, 0, 0, 0},

		PromotionDim:        Color{0, 0, 0, 0.5},
		PromotionLightField: Color{0.25, 0.25, 0.25, 1},
		PromotionDarkField:  Color{0.18, 0.18, 0.18, 1},
		PromotionRing:       Color{0.69, 0.69, 0.69, 1},
		PromotionRingHover:  Color{1, 0.65, 0, 1},

		Brushes: [numBrushes]Color{
			BrushGreen:  {0.08, 0.47, 0.11, 0.5},
			BrushRed:    {0.53, 0.13, 0.13, 0.5},
			BrushBlue:   {0.0, 0.19, 0.53, 0.5},
			BrushYellow: {0.90, 0.94, 0.0, 0.5},
		},
	}
}

// LoadTheme parses a YAML theme. Colors are hex strings ("#rrggbb" or
// "#rrggbbaa"). Omitted fields keep their DefaultTheme values, so a theme
// file only needs to list the colors it changes.
func LoadTheme(data []byte) (Theme, error) {
	t := DefaultTheme()
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Theme{}, fmt.Errorf("chessground: parse theme: %w", err)
	}
	return t, nil
}

// UnmarshalYAML parses a "#rrggbb" or "#rrggbbaa" hex string.
func (c *Color) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := parseHexColor(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// MarshalYAML renders the color as a "#rrggbbaa" hex string.
func (c Color) MarshalYAML() (interface{}, error) {
	return fmt.Sprintf("#%02x%02x%02x%02x",
		uint8(clamp01(c.R)*255+0.5),
		uint8(clamp01(c.G)*255+0.5),
		uint8(clamp01(c.B)*255+0.5),
		uint8(clamp01(c.A)*255+0.5)), nil
}

func parseHexColor(s string) (Color, error) {
	if len(s) == 0 || s[0] != '#' {
		return Color{}, fmt.Errorf("chessground: color %q: want #rrggbb or #rrggbbaa", s)
	}
	hex := s[1:]
	if len(hex) != 6 && len(hex) != 8 {
		return Color{}, fmt.Errorf("chessground: color %q: want #rrggbb or #rrggbbaa", s)
	}
	var comps [4]float64
	comps[3] = 1
	for i := 0; i*2 < len(hex); i++ {
		hi, ok1 := hexDigit(hex[i*2])
		lo, ok2 := hexDigit(hex[i*2+1])
		if !ok1 || !ok2 {
			return Color{}, fmt.Errorf("chessground: color %q: invalid hex digit", s)
		}
		comps[i] = float64(hi*16+lo) / 255
	}
	return Color{comps[0], comps[1], comps[2], comps[3]}, nil
}

func hexDigit(b byte) (int, bool) {
	switch {
	case b >= '0' && b <= '9':
		return int(b - '0'), true
	case b >= 'a' && b <= 'f':
		return int(b-'a') + 10, true
	case b >= 'A' && b <= 'F':
		return int(b-'A') + 10, true
	}
	return 0, false
}
