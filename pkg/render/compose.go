package render

import (
	"cmp"
	"math"
	"slices"

	"github.com/matzehuels/stargaze/pkg/scene"
)

// Frame is everything needed to draw one image.
type Frame struct {
	Scene  *scene.Scene
	Camera scene.Camera // the current view, not the setup camera
	Stars  []scene.Star
	Width  int
	Height int
}

// Dot is a filled circle in pixel space.
type Dot struct {
	X, Y   float64
	R      float64
	Alpha  float64
	Depth  float64
	Anchor int // index in Scene.Anchors, or -1 for background stars
}

// Line is a segment in pixel space.
type Line struct {
	X1, Y1, X2, Y2 float64
	Alpha          float64
	Edge           int
}

// Drawing is a composed frame. Stars and Anchors are sorted far to near.
type Drawing struct {
	Width, Height float64
	Reveal        float64
	Stars         []Dot
	Anchors       []Dot
	Lines         []Line
}

// Compose projects f into screen space. Points outside the camera's
// near/far range are dropped, as are edges with an endpoint dropped or a
// zero reveal. Background stars ignore the far plane.
func Compose(f Frame) Drawing {
	w, h := float64(f.Width), float64(f.Height)
	d := Drawing{Width: w, Height: h}
	unit := h / 300

	sky := f.Camera
	sky.Far = math.Inf(1)
	for _, st := range f.Stars {
		p, depth, ok := sky.Project(st.Position, w, h)
		if !ok || !inside(p.X, p.Y, w, h) {
			continue
		}
		d.Stars = append(d.Stars, Dot{
			X: p.X, Y: p.Y,
			R:      clamp(unit*0.8*st.Brightness, 0.3, 2),
			Alpha:  st.Brightness,
			Depth:  depth,
			Anchor: -1,
		})
	}

	if f.Scene == nil {
		sortFarToNear(d.Stars)
		return d
	}
	d.Reveal = f.Scene.Reveal()

	cam := f.Camera
	anchors := f.Scene.Anchors()
	screen := make([]*Dot, len(anchors))
	for i, a := range anchors {
		p, depth, ok := cam.Project(a.Position, w, h)
		if !ok {
			continue
		}
		fog := clamp((depth-cam.Near)/(cam.Far-cam.Near), 0, 1)
		dot := Dot{
			X: p.X, Y: p.Y,
			R:      clamp(unit*3.6/depth, 0.4, 6),
			Alpha:  1 - 0.7*fog,
			Depth:  depth,
			Anchor: i,
		}
		d.Anchors = append(d.Anchors, dot)
		screen[i] = &dot
	}

	for i, e := range f.Scene.Edges() {
		a, b := screen[e.From], screen[e.To]
		if a == nil || b == nil || e.Reveal <= 0 {
			continue
		}
		d.Lines = append(d.Lines, Line{X1: a.X, Y1: a.Y, X2: b.X, Y2: b.Y, Alpha: e.Reveal, Edge: i})
	}

	sortFarToNear(d.Stars)
	sortFarToNear(d.Anchors)
	return d
}

func sortFarToNear(dots []Dot) {
	slices.SortStableFunc(dots, func(a, b Dot) int { return cmp.Compare(b.Depth, a.Depth) })
}

func inside(x, y, w, h float64) bool {
	return x >= 0 && x <= w && y >= 0 && y <= h
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
