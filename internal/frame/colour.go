package frame

import (
	"fmt"
	"strconv"
	"strings"
)

// RGBA is a parsed "r,g,b,a" colour string.
type RGBA struct {
	R, G, B, A uint8
}

// ParseColour parses "r,g,b,a" with components in [0,255]. Whitespace
// around components is ignored.
func ParseColour(s string) (RGBA, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return RGBA{}, fmt.Errorf("colour %q: want 4 components, got %d", s, len(parts))
	}
	var vals [4]uint8
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return RGBA{}, fmt.Errorf("colour %q: component %d: %w", s, i, err)
		}
		if n < 0 || n > 255 {
			return RGBA{}, fmt.Errorf("colour %q: component %d out of range: %d", s, i, n)
		}
		vals[i] = uint8(n)
	}
	return RGBA{R: vals[0], G: vals[1], B: vals[2], A: vals[3]}, nil
}

// MustColour parses s and falls back to the parse of fallback on error.
func MustColour(s, fallback string) RGBA {
	c, err := ParseColour(s)
	if err != nil {
		c, _ = ParseColour(fallback)
	}
	return c
}

// Hex returns "#rrggbb"; alpha is dropped.
func (c RGBA) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func (c RGBA) String() string {
	return fmt.Sprintf("%d, %d, %d, %d", c.R, c.G, c.B, c.A)
}
