package sink

import (
	"fmt"
	"image/color"
	"strings"
)

// Palette holds the frame colours as #rgb or #rrggbb strings.
type Palette struct {
	Background string
	Fog        string // glow at the centre of the sky
	Line       string
	Star       string
}

// DefaultPalette is a violet night sky with white stars and lines.
func DefaultPalette() Palette {
	return Palette{
		Background: "#07021a",
		Fog:        "#350089",
		Line:       "#ffffff",
		Star:       "#ffffff",
	}
}

func (p Palette) withDefaults() Palette {
	d := DefaultPalette()
	if p.Background == "" {
		p.Background = d.Background
	}
	if p.Fog == "" {
		p.Fog = d.Fog
	}
	if p.Line == "" {
		p.Line = d.Line
	}
	if p.Star == "" {
		p.Star = d.Star
	}
	return p
}

// parseHex reads #rgb or #rrggbb. Anything else is opaque black.
func parseHex(s string) color.NRGBA {
	s = strings.TrimPrefix(s, "#")
	c := color.NRGBA{A: 0xff}
	switch len(s) {
	case 3:
		if _, err := fmt.Sscanf(s, "%1x%1x%1x", &c.R, &c.G, &c.B); err == nil {
			c.R, c.G, c.B = c.R*0x11, c.G*0x11, c.B*0x11
			return c
		}
	case 6:
		if _, err := fmt.Sscanf(s, "%02x%02x%02x", &c.R, &c.G, &c.B); err == nil {
			return c
		}
	}
	return color.NRGBA{A: 0xff}
}

func withAlpha(c color.NRGBA, alpha float64) color.NRGBA {
	c.A = uint8(max(0, min(1, alpha)) * 0xff)
	return c
}
