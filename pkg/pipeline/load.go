package pipeline

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/stargaze/pkg/cache"
	"github.com/matzehuels/stargaze/pkg/dataset"
	"github.com/matzehuels/stargaze/pkg/geom"
)

// Load returns the points a run should use: opts.Points if set, else the
// dataset file, else the built-in pentagram.
func Load(opts Options) ([]geom.Vec2, error) {
	switch {
	case len(opts.Points) > 0:
		return opts.Points, nil
	case opts.Dataset != "":
		return dataset.ReadFile(opts.Dataset)
	default:
		n := opts.Samples
		if n == 0 {
			n = dataset.DefaultSamples
		}
		return dataset.Pentagram(n), nil
	}
}

// HashPoints returns a content hash of points for cache keys.
func HashPoints(points []geom.Vec2) (string, error) {
	var buf bytes.Buffer
	if err := dataset.Write(&buf, points); err != nil {
		return "", fmt.Errorf("hash dataset: %w", err)
	}
	return cache.Hash(buf.Bytes()), nil
}
