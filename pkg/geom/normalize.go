package geom

import (
	"fmt"
	"math"

	"github.com/matzehuels/stargaze/pkg/errors"
)

// Axis names used in DegenerateInputError.
const (
	AxisX = "x"
	AxisY = "y"
)

// DegenerateInputError is returned by Normalize when every point shares the
// same coordinate on an axis, leaving nothing to scale against.
type DegenerateInputError struct {
	Axis  string  // "x" or "y"
	Value float64 // the shared coordinate
}

func (e *DegenerateInputError) Error() string {
	return fmt.Sprintf("degenerate input: all points have %s = %g", e.Axis, e.Value)
}

// Code returns the error code for this error type.
func (e *DegenerateInputError) Code() errors.Code {
	return errors.ErrCodeDegenerateInput
}

// Bounds is the axis-aligned extent of a point set.
type Bounds struct {
	MinX, MaxX float64
	MinY, MaxY float64
}

// BoundsOf returns the extent of points. The zero Bounds is returned for an
// empty slice.
func BoundsOf(points []Vec2) Bounds {
	if len(points) == 0 {
		return Bounds{}
	}
	b := Bounds{
		MinX: math.Inf(1), MaxX: math.Inf(-1),
		MinY: math.Inf(1), MaxY: math.Inf(-1),
	}
	for _, p := range points {
		b.MinX = min(b.MinX, p.X)
		b.MaxX = max(b.MaxX, p.X)
		b.MinY = min(b.MinY, p.Y)
		b.MaxY = max(b.MaxY, p.Y)
	}
	return b
}

// Width returns the x extent.
func (b Bounds) Width() float64 { return b.MaxX - b.MinX }

// Height returns the y extent.
func (b Bounds) Height() float64 { return b.MaxY - b.MinY }

// Normalize rescales points so each axis spans exactly [-1, 1].
//
// The axes are scaled independently; aspect ratio is not preserved. Output
// order and length match the input. An empty input yields an empty result.
// If either axis has zero extent Normalize returns a *DegenerateInputError
// and no points.
func Normalize(points []Vec2) ([]Vec2, error) {
	out := make([]Vec2, len(points))
	if len(points) == 0 {
		return out, nil
	}

	b := BoundsOf(points)
	if b.Width() == 0 {
		return nil, &DegenerateInputError{Axis: AxisX, Value: b.MinX}
	}
	if b.Height() == 0 {
		return nil, &DegenerateInputError{Axis: AxisY, Value: b.MinY}
	}

	for i, p := range points {
		out[i] = Vec2{
			X: rescale(p.X, b.MinX, b.MaxX),
			Y: rescale(p.Y, b.MinY, b.MaxY),
		}
	}
	return out, nil
}

func rescale(v, lo, hi float64) float64 {
	return 2 * ((v-lo)/(hi-lo) - 0.5)
}
