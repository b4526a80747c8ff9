package scene

import (
	"math"

	"github.com/matzehuels/stargaze/pkg/geom"
)

// Camera defaults.
const (
	DefaultFOV  = 70.0 // vertical field of view in degrees
	DefaultNear = 0.1
	DefaultFar  = 10.0
)

// DefaultPosition is where the camera starts: three units in front of the
// origin, looking down -Z.
var DefaultPosition = geom.Vec3{X: 0, Y: 0, Z: 3}

// Camera is a snapshot of the viewer's state.
type Camera struct {
	Position geom.Vec3
	Target   geom.Vec3
	Up       geom.Vec3
	FOV      float64 // degrees
	Near     float64
	Far      float64
}

// DefaultCamera returns the camera the scene is set up with.
func DefaultCamera() Camera {
	return Camera{
		Position: DefaultPosition,
		Up:       geom.Vec3{Y: 1},
		FOV:      DefaultFOV,
		Near:     DefaultNear,
		Far:      DefaultFar,
	}
}

// LookDirection returns the unit vector the camera faces. A camera sitting
// on its own target looks down -Z.
func (c Camera) LookDirection() geom.Vec3 {
	d, ok := c.Target.Sub(c.Position).Normalize()
	if !ok {
		return geom.Vec3{Z: -1}
	}
	return d
}

// Basis returns the camera's right, up and forward unit vectors.
func (c Camera) Basis() (right, up, forward geom.Vec3) {
	forward = c.LookDirection()
	worldUp := c.Up
	if worldUp == (geom.Vec3{}) {
		worldUp = geom.Vec3{Y: 1}
	}
	right, ok := forward.Cross(worldUp).Normalize()
	if !ok {
		// Looking straight along the up axis; pick any perpendicular.
		right = geom.Vec3{X: 1}
	}
	up = right.Cross(forward)
	return right, up, forward
}

// View transforms a world point into camera space: x right, y up, z the
// distance in front of the camera.
func (c Camera) View(p geom.Vec3) geom.Vec3 {
	right, up, forward := c.Basis()
	d := p.Sub(c.Position)
	return geom.Vec3{X: d.Dot(right), Y: d.Dot(up), Z: d.Dot(forward)}
}

// Project maps a world point to pixel coordinates on a width×height
// viewport. The second result is false when the point lies outside the
// near/far range.
func (c Camera) Project(p geom.Vec3, width, height float64) (geom.Vec2, float64, bool) {
	v := c.View(p)
	if v.Z < c.Near || v.Z > c.Far {
		return geom.Vec2{}, v.Z, false
	}
	f := 1 / math.Tan(c.FOV*math.Pi/360)
	aspect := width / height
	ndcX := v.X * f / (v.Z * aspect)
	ndcY := v.Y * f / v.Z
	return geom.Vec2{
		X: (ndcX + 1) * width / 2,
		Y: (1 - ndcY) * height / 2,
	}, v.Z, true
}
