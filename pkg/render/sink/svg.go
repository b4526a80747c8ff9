package sink

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/stargaze/pkg/render"
)

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	palette   Palette
	lineWidth float64
}

// WithPalette sets the frame colours.
func WithPalette(p Palette) SVGOption { return func(r *svgRenderer) { r.palette = p } }

// WithLineWidth sets the edge stroke width in pixels (default 1).
func WithLineWidth(w float64) SVGOption { return func(r *svgRenderer) { r.lineWidth = w } }

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{palette: DefaultPalette(), lineWidth: 1}
	for _, opt := range opts {
		opt(&r)
	}
	r.palette = r.palette.withDefaults()
	return r
}

// RenderSVG draws d as a standalone SVG document. Edges carry their reveal
// as stroke-opacity, so a frame with zero reveal has no <line> elements.
func RenderSVG(d render.Drawing, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)
	p := r.palette

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.0f %.0f" width="%.0f" height="%.0f">`+"\n",
		d.Width, d.Height, d.Width, d.Height)
	fmt.Fprintf(&buf, "  <defs>\n    <radialGradient id=\"sky\" cx=\"50%%\" cy=\"50%%\" r=\"75%%\">\n")
	fmt.Fprintf(&buf, "      <stop offset=\"0%%\" stop-color=\"%s\"/>\n", p.Fog)
	fmt.Fprintf(&buf, "      <stop offset=\"100%%\" stop-color=\"%s\"/>\n", p.Background)
	buf.WriteString("    </radialGradient>\n  </defs>\n")
	buf.WriteString(`  <rect width="100%" height="100%" fill="url(#sky)"/>` + "\n")

	buf.WriteString(`  <g class="stars">` + "\n")
	for _, s := range d.Stars {
		writeDot(&buf, s, p.Star)
	}
	buf.WriteString("  </g>\n")

	fmt.Fprintf(&buf, `  <g class="edges" data-reveal="%.4f">`+"\n", d.Reveal)
	for _, l := range d.Lines {
		fmt.Fprintf(&buf, `    <line id="edge-%d" x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="%.2f" stroke-opacity="%.4f"/>`+"\n",
			l.Edge, l.X1, l.Y1, l.X2, l.Y2, p.Line, r.lineWidth, l.Alpha)
	}
	buf.WriteString("  </g>\n")

	buf.WriteString(`  <g class="anchors">` + "\n")
	for _, a := range d.Anchors {
		writeDot(&buf, a, p.Star)
	}
	buf.WriteString("  </g>\n")

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func writeDot(buf *bytes.Buffer, d render.Dot, fill string) {
	id := ""
	if d.Anchor >= 0 {
		id = fmt.Sprintf(` id="anchor-%d"`, d.Anchor)
	}
	fmt.Fprintf(buf, `    <circle%s cx="%.2f" cy="%.2f" r="%.2f" fill="%s" fill-opacity="%.3f"/>`+"\n",
		id, d.X, d.Y, d.R, fill, d.Alpha)
}
