package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/stargaze/pkg/geom"
	"github.com/matzehuels/stargaze/pkg/observability"
	"github.com/matzehuels/stargaze/pkg/project"
	"github.com/matzehuels/stargaze/pkg/scene"
)

// Build projects points into a scene using the policy, stride and topology
// in opts. Setup errors (degenerate input or rays) abort the run.
func Build(ctx context.Context, points []geom.Vec2, opts Options) (*scene.Scene, error) {
	if err := opts.ValidateForBuild(); err != nil {
		return nil, err
	}

	rng := opts.Rand
	if rng == nil {
		rng = project.NewSource(opts.Seed)
	}
	policy, err := project.New(opts.Policy, rng)
	if err != nil {
		return nil, err
	}

	hooks := observability.Scene()
	hooks.OnBuildStart(ctx, policy.Name(), len(points))
	start := time.Now()

	s, err := scene.Build(points, opts.Camera, scene.Options{
		Stride:   opts.Stride,
		Topology: scene.Topology(opts.Topology),
		Policy:   policy,
	})

	var anchors, edges int
	if s != nil {
		anchors, edges = len(s.Anchors()), len(s.Edges())
	}
	hooks.OnBuildComplete(ctx, policy.Name(), anchors, edges, time.Since(start), err)
	if err != nil {
		return nil, err
	}

	opts.Logger.Debug("built scene",
		"policy", policy.Name(),
		"stride", opts.Stride,
		"anchors", anchors,
		"edges", edges)
	return s, nil
}

// Reveal places the view camera and updates the scene's edges for it.
func Reveal(ctx context.Context, s *scene.Scene, view scene.Camera) float64 {
	v := s.UpdateReveal(view.LookDirection())
	observability.Scene().OnReveal(ctx, v)
	return v
}
