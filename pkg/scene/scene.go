package scene

import (
	"fmt"

	"github.com/matzehuels/stargaze/pkg/dataset"
	"github.com/matzehuels/stargaze/pkg/errors"
	"github.com/matzehuels/stargaze/pkg/geom"
	"github.com/matzehuels/stargaze/pkg/project"
	"github.com/matzehuels/stargaze/pkg/reveal"
)

// Topology decides how consecutive anchors are joined.
type Topology string

const (
	// ClosedLoop joins the last anchor back to the first.
	ClosedLoop Topology = "closed"
	// OpenPath joins anchors in order and leaves the ends unconnected.
	OpenPath Topology = "open"
)

// DefaultStride is the sampling interval applied to the raw dataset.
const DefaultStride = 15

// ParseTopology converts a flag or config value into a Topology.
func ParseTopology(s string) (Topology, error) {
	switch Topology(s) {
	case ClosedLoop, "":
		return ClosedLoop, nil
	case OpenPath:
		return OpenPath, nil
	}
	return "", errors.New(errors.ErrCodeInvalidInput, "invalid topology %q (must be 'closed' or 'open')", s)
}

// Anchor is a static star position.
type Anchor struct {
	Index    int       // position in the raw dataset
	Source   geom.Vec2 // normalized 2D sample it was projected from
	Position geom.Vec3
}

// Edge joins two anchors by their index in Scene.Anchors. Reveal is the
// opacity to draw it with this frame.
type Edge struct {
	From, To int
	Reveal   float64
}

// Options configures Build.
type Options struct {
	Stride   int
	Topology Topology
	Policy   project.Policy
}

// Scene is the constellation plus its per-frame reveal state.
type Scene struct {
	camera   Camera
	topology Topology
	policy   string
	anchors  []Anchor
	edges    []Edge
	reveal   float64
}

// Build normalizes raw, samples every Stride-th point, projects each sample
// into 3D with the camera position as it is now, and joins the anchors
// according to Topology.
//
// Errors from normalization (*geom.DegenerateInputError) and projection
// (*project.DegenerateRayError) are returned unchanged apart from context
// wrapping; either aborts setup.
func Build(raw []geom.Vec2, cam Camera, opts Options) (*Scene, error) {
	if err := errors.ValidateStride(opts.Stride); err != nil {
		return nil, err
	}
	if opts.Policy == nil {
		return nil, errors.New(errors.ErrCodeInvalidPolicy, "projection policy is required")
	}
	topology, err := ParseTopology(string(opts.Topology))
	if err != nil {
		return nil, err
	}

	normalized, err := geom.Normalize(raw)
	if err != nil {
		return nil, fmt.Errorf("normalize: %w", err)
	}

	s := &Scene{
		camera:   cam,
		topology: topology,
		policy:   opts.Policy.Name(),
	}

	indices := dataset.Sample(rangeOf(len(normalized)), opts.Stride)
	s.anchors = make([]Anchor, 0, len(indices))
	for _, i := range indices {
		pos, err := opts.Policy.Project(cam.Position, normalized[i])
		if err != nil {
			return nil, fmt.Errorf("project point %d: %w", i, err)
		}
		s.anchors = append(s.anchors, Anchor{Index: i, Source: normalized[i], Position: pos})
	}

	s.edges = connect(len(s.anchors), topology)
	return s, nil
}

func rangeOf(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

// connect joins n anchors in order. A closed loop over n >= 3 anchors has n
// edges; an open path has n-1. Two anchors share a single edge whatever the
// topology, and fewer than two have none.
func connect(n int, topology Topology) []Edge {
	if n < 2 {
		return nil
	}
	edges := make([]Edge, 0, n)
	for i := 0; i+1 < n; i++ {
		edges = append(edges, Edge{From: i, To: i + 1})
	}
	if topology == ClosedLoop && n > 2 {
		edges = append(edges, Edge{From: n - 1, To: 0})
	}
	return edges
}

// UpdateReveal evaluates camera alignment for this tick and writes the
// result to every edge. It returns the intensity applied.
func (s *Scene) UpdateReveal(look geom.Vec3) float64 {
	v := reveal.Evaluate(look)
	s.reveal = v
	for i := range s.edges {
		s.edges[i].Reveal = v
	}
	return v
}

// Reveal returns the intensity written by the last UpdateReveal.
func (s *Scene) Reveal() float64 { return s.reveal }

// Anchors returns the anchors in sampling order. The slice must not be
// modified.
func (s *Scene) Anchors() []Anchor { return s.anchors }

// Edges returns the edges. The slice must not be modified; use UpdateReveal.
func (s *Scene) Edges() []Edge { return s.edges }

// Segment returns the endpoints of edge i.
func (s *Scene) Segment(i int) (geom.Vec3, geom.Vec3) {
	e := s.edges[i]
	return s.anchors[e.From].Position, s.anchors[e.To].Position
}

// Camera returns the camera snapshot the anchors were projected from.
func (s *Scene) Camera() Camera { return s.camera }

// Topology returns how the anchors are joined.
func (s *Scene) Topology() Topology { return s.topology }

// Policy returns the name of the projection policy used.
func (s *Scene) Policy() string { return s.policy }
