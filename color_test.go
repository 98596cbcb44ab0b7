package lsys

import (
	"errors"
	"image/color"
	"testing"
)

func TestHex(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want color.NRGBA
	}{
		{"six digits", "#8b5a2b", color.NRGBA{0x8b, 0x5a, 0x2b, 255}},
		{"no hash", "3cb043", color.NRGBA{0x3c, 0xb0, 0x43, 255}},
		{"short form", "#fa0", color.NRGBA{0xff, 0xaa, 0x00, 255}},
		{"upper case", "#FFFFFF", color.NRGBA{255, 255, 255, 255}},
		{"invalid length", "#12345", color.NRGBA{0, 0, 0, 255}},
		{"invalid digit", "#zz0000", color.NRGBA{0, 0, 0, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Hex(tt.in).Color()
			if got != tt.want {
				t.Errorf("Hex(%q).Color() = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestRGB_HexRoundtrip(t *testing.T) {
	for _, s := range []string{"#8b5a2b", "#3cb043", "#000000", "#ffffff", "#0a0b0c"} {
		if got := Hex(s).Hex(); got != s {
			t.Errorf("Hex(%q).Hex() = %q", s, got)
		}
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{"hex", "#8b5a2b", "#8b5a2b", false},
		{"padded hex", "  #fff ", "#ffffff", false},
		{"name", "saddlebrown", "#8b4513", false},
		{"mixed case name", "ForestGreen", "#228b22", false},
		{"unknown name", "treebark", "", true},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidColor) {
					t.Fatalf("ParseColor(%q) error = %v, want ErrInvalidColor", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseColor(%q) unexpected error: %v", tt.in, err)
			}
			if got.Hex() != tt.want {
				t.Errorf("ParseColor(%q) = %s, want %s", tt.in, got.Hex(), tt.want)
			}
		})
	}
}

func TestRGB_Lerp(t *testing.T) {
	black, white := RGB{}, RGB{1, 1, 1}
	mid := black.Lerp(white, 0.5)
	if absDiff(mid.R, 0.5) > 1e-12 || absDiff(mid.G, 0.5) > 1e-12 || absDiff(mid.B, 0.5) > 1e-12 {
		t.Errorf("Lerp(0.5) = %v, want gray", mid)
	}
}

func absDiff(a, b float64) float64 {
	if a > b {
		return a - b
	}
	return b - a
}
