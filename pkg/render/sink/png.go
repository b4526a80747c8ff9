package sink

import (
	"bytes"
	"image/color"

	"github.com/fogleman/gg"

	"github.com/matzehuels/stargaze/pkg/render"
)

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	palette   Palette
	lineWidth float64
	scale     float64
}

// WithPNGPalette sets the frame colours.
func WithPNGPalette(p Palette) PNGOption { return func(r *pngRenderer) { r.palette = p } }

// WithPNGLineWidth sets the edge stroke width in unscaled pixels.
func WithPNGLineWidth(w float64) PNGOption { return func(r *pngRenderer) { r.lineWidth = w } }

// WithScale sets the PNG scale factor (default 1; 2 for high-DPI output).
func WithScale(s float64) PNGOption { return func(r *pngRenderer) { r.scale = s } }

// RenderPNG rasterizes d.
func RenderPNG(d render.Drawing, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{palette: DefaultPalette(), lineWidth: 1, scale: 1}
	for _, opt := range opts {
		opt(&r)
	}
	if r.scale <= 0 {
		r.scale = 1
	}
	p := r.palette.withDefaults()

	w, h := int(d.Width*r.scale+0.5), int(d.Height*r.scale+0.5)
	dc := gg.NewContext(max(w, 1), max(h, 1))
	dc.Scale(r.scale, r.scale)

	sky := gg.NewRadialGradient(d.Width/2, d.Height/2, 0, d.Width/2, d.Height/2, 0.75*max(d.Width, d.Height))
	sky.AddColorStop(0, parseHex(p.Fog))
	sky.AddColorStop(1, parseHex(p.Background))
	dc.SetFillStyle(sky)
	dc.DrawRectangle(0, 0, d.Width, d.Height)
	dc.Fill()

	star := parseHex(p.Star)
	for _, s := range d.Stars {
		fillDot(dc, s, star)
	}

	line := parseHex(p.Line)
	dc.SetLineWidth(r.lineWidth)
	for _, l := range d.Lines {
		dc.SetColor(withAlpha(line, l.Alpha))
		dc.DrawLine(l.X1, l.Y1, l.X2, l.Y2)
		dc.Stroke()
	}

	for _, a := range d.Anchors {
		fillDot(dc, a, star)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func fillDot(dc *gg.Context, d render.Dot, c color.NRGBA) {
	dc.SetColor(withAlpha(c, d.Alpha))
	dc.DrawCircle(d.X, d.Y, d.R)
	dc.Fill()
}
