package geom

import (
	"errors"
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	stargazeerrors "github.com/matzehuels/stargaze/pkg/errors"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   []Vec2
		want []Vec2
	}{
		{
			name: "unit square corners",
			in:   []Vec2{{0, 0}, {10, 0}, {10, 10}, {0, 10}},
			want: []Vec2{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}},
		},
		{
			name: "anisotropic scaling stretches the short axis",
			in:   []Vec2{{0, 0}, {100, 10}, {50, 5}},
			want: []Vec2{{-1, -1}, {1, 1}, {0, 0}},
		},
		{
			name: "negative coordinates",
			in:   []Vec2{{-4, -2}, {4, 2}},
			want: []Vec2{{-1, -1}, {1, 1}},
		},
		{
			name: "empty",
			in:   nil,
			want: []Vec2{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.in)
			if err != nil {
				t.Fatalf("Normalize: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("len = %d, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if !got[i].ApproxEqual(tt.want[i]) {
					t.Errorf("[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestNormalizeDegenerate(t *testing.T) {
	tests := []struct {
		name string
		in   []Vec2
		axis string
	}{
		{"shared x", []Vec2{{5, 0}, {5, 1}}, AxisX},
		{"shared y", []Vec2{{0, 3}, {1, 3}}, AxisY},
		{"single point reports x first", []Vec2{{2, 2}}, AxisX},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.in)
			if got != nil {
				t.Errorf("expected no points, got %v", got)
			}
			var de *DegenerateInputError
			if !errors.As(err, &de) {
				t.Fatalf("error = %v, want *DegenerateInputError", err)
			}
			if de.Axis != tt.axis {
				t.Errorf("Axis = %q, want %q", de.Axis, tt.axis)
			}
			if !stargazeerrors.Is(err, stargazeerrors.ErrCodeDegenerateInput) {
				t.Errorf("code = %v, want %v", stargazeerrors.GetCode(err), stargazeerrors.ErrCodeDegenerateInput)
			}
		})
	}
}

func TestNormalizeDoesNotMutateInput(t *testing.T) {
	in := []Vec2{{0, 0}, {2, 4}}
	if _, err := Normalize(in); err != nil {
		t.Fatal(err)
	}
	if in[1] != (Vec2{2, 4}) {
		t.Errorf("input mutated: %v", in)
	}
}

func zipPoints(xs, ys []float64) []Vec2 {
	pts := make([]Vec2, len(xs))
	for i := range xs {
		pts[i] = Vec2{X: xs[i], Y: ys[i]}
	}
	return pts
}

func TestNormalizeProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	coords := gen.SliceOfN(12, gen.Float64Range(-1e4, 1e4))

	properties.Property("output spans exactly [-1, 1] on both axes", prop.ForAll(
		func(xs, ys []float64) bool {
			pts := zipPoints(xs, ys)
			b := BoundsOf(pts)
			if b.Width() == 0 || b.Height() == 0 {
				return true
			}
			out, err := Normalize(pts)
			if err != nil {
				return false
			}
			nb := BoundsOf(out)
			return math.Abs(nb.MinX+1) < Epsilon && math.Abs(nb.MaxX-1) < Epsilon &&
				math.Abs(nb.MinY+1) < Epsilon && math.Abs(nb.MaxY-1) < Epsilon
		},
		coords, coords,
	))

	properties.Property("order and length preserved", prop.ForAll(
		func(xs, ys []float64) bool {
			pts := zipPoints(xs, ys)
			out, err := Normalize(pts)
			if err != nil {
				return true
			}
			if len(out) != len(pts) {
				return false
			}
			// Rescaling is monotonic per axis, so relative order survives.
			for i := 1; i < len(pts); i++ {
				if (pts[i].X < pts[0].X) != (out[i].X < out[0].X) {
					return false
				}
				if (pts[i].Y < pts[0].Y) != (out[i].Y < out[0].Y) {
					return false
				}
			}
			return true
		},
		coords, coords,
	))

	properties.Property("idempotent on normalized input", prop.ForAll(
		func(xs, ys []float64) bool {
			once, err := Normalize(zipPoints(xs, ys))
			if err != nil {
				return true
			}
			twice, err := Normalize(once)
			if err != nil {
				return false
			}
			for i := range once {
				if math.Abs(once[i].X-twice[i].X) > 1e-9 || math.Abs(once[i].Y-twice[i].Y) > 1e-9 {
					return false
				}
			}
			return true
		},
		coords, coords,
	))

	properties.TestingRun(t)
}
