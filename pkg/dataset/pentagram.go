package dataset

import (
	"math"

	"github.com/matzehuels/stargaze/pkg/geom"
)

// DefaultSamples is the size of the built-in pentagram. With the default
// stride of 15 it yields 150 stars.
const DefaultSamples = 2250

// Pentagram returns samples points traced along a five-pointed star, drawn
// the way it is by hand: tip to every second tip until the path closes.
// Coordinates are in a 0..1000 design space with y pointing down, like the
// pixel data the original outline was digitised from.
func Pentagram(samples int) []geom.Vec2 {
	if samples <= 0 {
		return nil
	}

	const (
		center = 500.0
		radius = 450.0
	)
	tips := make([]geom.Vec2, 5)
	for i := range tips {
		// Start at the top tip and step 144° (two tips) each time.
		a := -math.Pi/2 + float64(i)*4*math.Pi/5
		tips[i] = geom.Vec2{X: center + radius*math.Cos(a), Y: center + radius*math.Sin(a)}
	}

	pts := make([]geom.Vec2, samples)
	for i := range pts {
		// Position along the closed path, measured in chords.
		t := float64(i) * 5 / float64(samples)
		chord := int(t)
		f := t - float64(chord)
		a, b := tips[chord], tips[(chord+1)%5]
		pts[i] = geom.Vec2{X: a.X + (b.X-a.X)*f, Y: a.Y + (b.Y-a.Y)*f}
	}
	return pts
}
