package scene

import (
	"math"

	"github.com/matzehuels/stargaze/pkg/geom"
)

// DefaultDamping is the fraction of a pending rotation applied per Step.
const DefaultDamping = 0.05

// polarEpsilon keeps the camera off the pole, where the up vector and the
// look direction would be parallel.
const polarEpsilon = 1e-6

// Orbit is a camera circling Target in spherical coordinates. Azimuth turns
// around the world Y axis; Polar is measured from +Y, so π/2 is the
// horizon.
//
// Rotations requested with Rotate are not applied at once: each Step moves
// Damping of the remaining way, which gives the camera inertia. A Damping of
// 0 or 1 applies rotations immediately.
type Orbit struct {
	Target      geom.Vec3
	Azimuth     float64
	Polar       float64
	Distance    float64
	Damping     float64
	MinDistance float64
	MaxDistance float64
	MaxPolar    float64

	lens Camera // FOV, Near, Far and Up copied into each snapshot

	pendingAzimuth float64
	pendingPolar   float64
}

// NewOrbit returns an orbit rig reproducing cam's position around its
// target, with the default damping and clamps.
func NewOrbit(cam Camera) *Orbit {
	offset := cam.Position.Sub(cam.Target)
	r := offset.Len()
	o := &Orbit{
		Target:      cam.Target,
		Distance:    r,
		Damping:     DefaultDamping,
		MinDistance: cam.Near,
		MaxDistance: cam.Far,
		MaxPolar:    math.Pi / 2,
		lens:        cam,
	}
	if r > 0 {
		o.Azimuth = math.Atan2(offset.X, offset.Z)
		o.Polar = math.Acos(max(-1, min(1, offset.Y/r)))
	} else {
		o.Polar = math.Pi / 2
	}
	o.clamp()
	return o
}

// Rotate queues a change of azimuth and polar angle, in radians.
func (o *Orbit) Rotate(dAzimuth, dPolar float64) {
	o.pendingAzimuth += dAzimuth
	o.pendingPolar += dPolar
}

// Zoom multiplies the distance to the target by factor (less than 1 moves
// closer). The result is clamped to [MinDistance, MaxDistance].
func (o *Orbit) Zoom(factor float64) {
	if factor <= 0 {
		return
	}
	o.Distance *= factor
	o.clamp()
}

// Step advances the rig by one tick and reports whether a rotation is
// still pending.
func (o *Orbit) Step() bool {
	k := o.Damping
	if k <= 0 || k >= 1 {
		k = 1
	}
	o.Azimuth += o.pendingAzimuth * k
	o.Polar += o.pendingPolar * k
	o.pendingAzimuth *= 1 - k
	o.pendingPolar *= 1 - k
	if math.Abs(o.pendingAzimuth) < 1e-9 {
		o.pendingAzimuth = 0
	}
	if math.Abs(o.pendingPolar) < 1e-9 {
		o.pendingPolar = 0
	}
	o.clamp()
	return o.pendingAzimuth != 0 || o.pendingPolar != 0
}

// Settle applies all pending rotation immediately.
func (o *Orbit) Settle() {
	o.Azimuth += o.pendingAzimuth
	o.Polar += o.pendingPolar
	o.pendingAzimuth, o.pendingPolar = 0, 0
	o.clamp()
}

// Camera returns the current camera snapshot.
func (o *Orbit) Camera() Camera {
	s := math.Sin(o.Polar)
	offset := geom.Vec3{
		X: o.Distance * s * math.Sin(o.Azimuth),
		Y: o.Distance * math.Cos(o.Polar),
		Z: o.Distance * s * math.Cos(o.Azimuth),
	}
	cam := o.lens
	cam.Target = o.Target
	cam.Position = o.Target.Add(offset)
	return cam
}

func (o *Orbit) clamp() {
	maxPolar := o.MaxPolar
	if maxPolar <= 0 || maxPolar > math.Pi-polarEpsilon {
		maxPolar = math.Pi - polarEpsilon
	}
	o.Polar = max(polarEpsilon, min(o.Polar, maxPolar))
	if o.MaxDistance > 0 {
		o.Distance = min(o.Distance, o.MaxDistance)
	}
	o.Distance = max(o.Distance, o.MinDistance)
}
