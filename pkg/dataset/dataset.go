// Package dataset loads the 2D sample points a constellation is built from.
//
// Datasets are JSON arrays of {"x": ..., "y": ...} objects, in drawing
// order:
//
//	[{"x": 12.5, "y": 40}, {"x": 13.1, "y": 39.2}, ...]
//
// When no file is given the built-in [Pentagram] outline is used.
package dataset

import (
	"encoding/json"
	"io"
	"os"

	"github.com/matzehuels/stargaze/pkg/errors"
	"github.com/matzehuels/stargaze/pkg/geom"
)

// point is the on-disk representation of one sample.
type point struct {
	X *float64 `json:"x"`
	Y *float64 `json:"y"`
}

// Read decodes a dataset from r. Every element must carry both x and y, and
// the set must not be empty.
func Read(r io.Reader) ([]geom.Vec2, error) {
	var raw []point
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode dataset")
	}
	if len(raw) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "dataset is empty")
	}

	pts := make([]geom.Vec2, len(raw))
	for i, p := range raw {
		if p.X == nil || p.Y == nil {
			return nil, errors.New(errors.ErrCodeInvalidInput, "point %d: both x and y are required", i)
		}
		pts[i] = geom.Vec2{X: *p.X, Y: *p.Y}
	}
	return pts, nil
}

// ReadFile loads a dataset from path.
func ReadFile(path string) ([]geom.Vec2, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "dataset %s", path)
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	pts, err := Read(f)
	if err != nil {
		return nil, err
	}
	return pts, nil
}

// Write encodes points in the dataset format.
func Write(w io.Writer, points []geom.Vec2) error {
	out := make([]map[string]float64, len(points))
	for i, p := range points {
		out[i] = map[string]float64{"x": p.X, "y": p.Y}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// Sample returns every stride-th element starting with the first.
// A stride below 1 is treated as 1.
func Sample[T any](points []T, stride int) []T {
	stride = max(stride, 1)
	out := make([]T, 0, (len(points)+stride-1)/stride)
	for i := 0; i < len(points); i += stride {
		out = append(out, points[i])
	}
	return out
}
