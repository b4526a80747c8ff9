// Package reveal computes how visible the constellation lines are for a
// given camera orientation.
//
// The lines fade in as the viewer's look direction approaches [Canonical].
// Visibility falls off linearly with the Euclidean distance between the two
// unit vectors: [Peak] when they coincide, zero once the distance reaches
// [Threshold].
package reveal

import "github.com/matzehuels/stargaze/pkg/geom"

// Canonical is the look direction that fully reveals the constellation.
var Canonical = geom.Vec3{X: 0, Y: 0, Z: -1}

const (
	// Threshold is the direction distance at and beyond which nothing is shown.
	Threshold = 0.5

	// Peak is the intensity when looking exactly along Canonical.
	Peak = 0.2
)

// Evaluate returns the reveal intensity for the camera look direction.
// It is a pure function of its argument.
func Evaluate(look geom.Vec3) float64 {
	return Falloff(look.Dist(Canonical))
}

// Falloff maps a direction distance to an intensity in [0, Peak].
func Falloff(distance float64) float64 {
	if distance < Threshold {
		return 2 * (Threshold - distance) * Peak
	}
	return 0
}
