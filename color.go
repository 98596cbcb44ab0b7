package lsys

import (
	"errors"
	"fmt"
	"image/color"
	"strings"

	"golang.org/x/image/colornames"
)

// ErrInvalidColor is returned by ParseColor for text that is neither a hex
// color nor a known color name.
var ErrInvalidColor = errors.New("lsys: invalid color")

// RGB represents an opaque color. Each component is in the range [0, 1].
type RGB struct {
	R, G, B float64
}

// Color converts RGB to the standard color.Color interface.
func (c RGB) Color() color.NRGBA {
	return color.NRGBA{
		R: uint8(clamp255(c.R*255 + 0.5)),
		G: uint8(clamp255(c.G*255 + 0.5)),
		B: uint8(clamp255(c.B*255 + 0.5)),
		A: 255,
	}
}

// FromColor converts a standard color.Color to RGB, dropping alpha.
func FromColor(c color.Color) RGB {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGB{
		R: float64(n.R) / 255,
		G: float64(n.G) / 255,
		B: float64(n.B) / 255,
	}
}

// Hex returns the color formatted as "#rrggbb".
func (c RGB) Hex() string {
	n := c.Color()
	return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B)
}

// Lerp performs linear interpolation between two colors.
func (c RGB) Lerp(other RGB, t float64) RGB {
	return RGB{
		R: c.R + (other.R-c.R)*t,
		G: c.G + (other.G-c.G)*t,
		B: c.B + (other.B-c.B)*t,
	}
}

// Hex creates a color from a hex string.
// Supports formats: "RGB" and "RRGGBB", with an optional leading '#'.
// Anything else yields black; use ParseColor to detect bad input.
func Hex(hex string) RGB {
	c, ok := parseHexColor(hex)
	if !ok {
		return RGB{}
	}
	return c
}

// ParseColor parses a hex color ("#8b5a2b", "8b5a2b", "#fa0") or an SVG
// color name ("saddlebrown", "ForestGreen").
func ParseColor(s string) (RGB, error) {
	s = strings.TrimSpace(s)
	if c, ok := parseHexColor(s); ok {
		return c, nil
	}
	if named, ok := colornames.Map[strings.ToLower(s)]; ok {
		return FromColor(named), nil
	}
	return RGB{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
}

func parseHexColor(hex string) (RGB, bool) {
	hex = strings.TrimPrefix(hex, "#")

	var r, g, b uint32
	switch len(hex) {
	case 3:
		ok := parseHex(hex[0:1], &r) && parseHex(hex[1:2], &g) && parseHex(hex[2:3], &b)
		if !ok {
			return RGB{}, false
		}
		r, g, b = r*17, g*17, b*17
	case 6:
		ok := parseHex(hex[0:2], &r) && parseHex(hex[2:4], &g) && parseHex(hex[4:6], &b)
		if !ok {
			return RGB{}, false
		}
	default:
		return RGB{}, false
	}

	return RGB{
		R: float64(r) / 255,
		G: float64(g) / 255,
		B: float64(b) / 255,
	}, true
}

// parseHex is a helper for hex parsing
func parseHex(s string, val *uint32) bool {
	*val = 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		*val *= 16
		switch {
		case '0' <= c && c <= '9':
			*val += uint32(c - '0')
		case 'a' <= c && c <= 'f':
			*val += uint32(c - 'a' + 10)
		case 'A' <= c && c <= 'F':
			*val += uint32(c - 'A' + 10)
		default:
			return false
		}
	}
	return true
}

// clamp255 restricts a value to [0, 255] range.
func clamp255(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 255 {
		return 255
	}
	return x
}

// Default colors.
var (
	DefaultBranchColor = Hex("#8b5a2b")
	DefaultLeafColor   = Hex("#3cb043")
)
