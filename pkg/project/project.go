// Package project places normalized 2D samples in 3D space.
//
// A [Policy] turns one target point into one anchor. Policies are applied
// once, at scene setup, with the camera position captured at that moment;
// anchors never move afterwards.
//
// Three policies are available:
//
//   - [FixedDepth]: (x, y, r) with r drawn from [0, 1). Ignores the camera.
//   - [BidirectionalRay]: the target pushed one unit towards or away from
//     the camera along the camera ray.
//   - [RayWithJitter]: a point 2 to 4 units from the camera on the ray
//     through the target.
//
// The ray policies fail with [*DegenerateRayError] when the camera sits
// exactly on the target.
package project

import (
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/matzehuels/stargaze/pkg/errors"
	"github.com/matzehuels/stargaze/pkg/geom"
)

// Policy names accepted by New.
const (
	NameFixedDepth       = "fixed-depth"
	NameBidirectionalRay = "bidirectional-ray"
	NameRayWithJitter    = "ray-jitter"
)

// DefaultName is the policy used when none is configured.
const DefaultName = NameRayWithJitter

// Names lists every policy name in a stable order.
var Names = []string{NameFixedDepth, NameBidirectionalRay, NameRayWithJitter}

// Source supplies uniform random numbers in [0, 1).
// *rand.Rand from math/rand/v2 satisfies it.
type Source interface {
	Float64() float64
}

// Policy projects a 2D target into 3D relative to a camera position.
type Policy interface {
	Project(camera geom.Vec3, target geom.Vec2) (geom.Vec3, error)
	Name() string
}

// DegenerateRayError is returned when the camera coincides with the target,
// so no direction can be derived.
type DegenerateRayError struct {
	Camera geom.Vec3
	Target geom.Vec3
}

func (e *DegenerateRayError) Error() string {
	return fmt.Sprintf("degenerate ray: camera %v coincides with target %v", e.Camera, e.Target)
}

// Code returns the error code for this error type.
func (e *DegenerateRayError) Code() errors.Code {
	return errors.ErrCodeDegenerateRay
}

// NewSource returns a deterministic PCG source for seed.
func NewSource(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}

// New returns the policy registered under name, drawing randomness from rng.
func New(name string, rng Source) (Policy, error) {
	switch name {
	case NameFixedDepth:
		return FixedDepth{Rand: rng}, nil
	case NameBidirectionalRay:
		return BidirectionalRay{Rand: rng}, nil
	case NameRayWithJitter:
		return RayWithJitter{Rand: rng}, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidPolicy, "unknown projection policy %q (must be one of: %v)", name, Names)
}

// Validate checks that name is a known policy.
func Validate(name string) error {
	if !slices.Contains(Names, name) {
		return errors.New(errors.ErrCodeInvalidPolicy, "unknown projection policy %q (must be one of: %v)", name, Names)
	}
	return nil
}

// FixedDepth keeps x and y and draws a random depth in [0, 1).
type FixedDepth struct {
	Rand Source
}

// Name implements Policy.
func (FixedDepth) Name() string { return NameFixedDepth }

// Project implements Policy. The camera is ignored.
func (p FixedDepth) Project(_ geom.Vec3, target geom.Vec2) (geom.Vec3, error) {
	return geom.Vec3{X: target.X, Y: target.Y, Z: p.Rand.Float64()}, nil
}

// BidirectionalRay moves the target one unit along the camera ray, towards
// or away from the camera with equal probability.
type BidirectionalRay struct {
	Rand Source
}

// Name implements Policy.
func (BidirectionalRay) Name() string { return NameBidirectionalRay }

// Project implements Policy.
func (p BidirectionalRay) Project(camera geom.Vec3, target geom.Vec2) (geom.Vec3, error) {
	t := target.Lift()
	u, err := rayDirection(camera, t)
	if err != nil {
		return geom.Vec3{}, err
	}
	if p.Rand.Float64() < 0.5 {
		u = u.Neg()
	}
	return t.Add(u), nil
}

// RayWithJitter places the anchor on the ray from the camera through the
// target, at a distance drawn from [2, 4].
type RayWithJitter struct {
	Rand Source
}

// Ray segment used by RayWithJitter: Depth ± Jitter/2 units from the camera.
const (
	Depth  = 3.0
	Jitter = 2.0
)

// Name implements Policy.
func (RayWithJitter) Name() string { return NameRayWithJitter }

// Project implements Policy.
func (p RayWithJitter) Project(camera geom.Vec3, target geom.Vec2) (geom.Vec3, error) {
	u, err := rayDirection(camera, target.Lift())
	if err != nil {
		return geom.Vec3{}, err
	}
	d := Depth + Jitter*(p.Rand.Float64()-0.5)
	return camera.Add(u.Scale(d)), nil
}

func rayDirection(camera, target geom.Vec3) (geom.Vec3, error) {
	u, ok := target.Sub(camera).Normalize()
	if !ok {
		return geom.Vec3{}, &DegenerateRayError{Camera: camera, Target: target}
	}
	return u, nil
}
