package scene

import (
	"math"

	"github.com/matzehuels/stargaze/pkg/geom"
	"github.com/matzehuels/stargaze/pkg/project"
)

// Starfield shell, in world units from the origin. It sits inside the far
// plane of the default camera so the background survives zooming out.
const (
	StarfieldInner = 5.0
	StarfieldOuter = 9.0
)

// Star is a background point.
type Star struct {
	Position   geom.Vec3
	Brightness float64 // 0.2..1
}

// Starfield returns n background stars scattered uniformly over directions
// on a shell around the origin. The same seed yields the same sky.
func Starfield(n int, seed uint64) []Star {
	rng := project.NewSource(seed)
	stars := make([]Star, n)
	for i := range stars {
		// Uniform direction: z uniform in [-1, 1], angle uniform.
		z := 2*rng.Float64() - 1
		a := 2 * math.Pi * rng.Float64()
		rxy := math.Sqrt(1 - z*z)
		r := StarfieldInner + (StarfieldOuter-StarfieldInner)*rng.Float64()
		stars[i] = Star{
			Position:   geom.Vec3{X: r * rxy * math.Cos(a), Y: r * rxy * math.Sin(a), Z: r * z},
			Brightness: 0.2 + 0.8*rng.Float64(),
		}
	}
	return stars
}
