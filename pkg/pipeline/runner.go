package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stargaze/pkg/cache"
	"github.com/matzehuels/stargaze/pkg/geom"
	"github.com/matzehuels/stargaze/pkg/scene"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger; it doesn't
// store pipeline results.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete load → build → reveal → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{}

	// Stage 1: Load
	loadStart := time.Now()
	points, err := Load(opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	hash, err := HashPoints(points)
	if err != nil {
		return nil, err
	}
	result.DatasetHash = hash
	result.Stats.Points = len(points)
	result.Stats.LoadTime = time.Since(loadStart)

	r.Logger.Info("loaded dataset",
		"points", len(points),
		"duration", result.Stats.LoadTime)

	// Stage 2: Build
	buildStart := time.Now()
	s, err := Build(ctx, points, opts)
	if err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}
	result.Scene = s
	result.Stats.Anchors = len(s.Anchors())
	result.Stats.Edges = len(s.Edges())
	result.Stats.BuildTime = time.Since(buildStart)

	r.Logger.Info("built scene",
		"policy", opts.Policy,
		"anchors", result.Stats.Anchors,
		"edges", result.Stats.Edges,
		"duration", result.Stats.BuildTime)

	// Stage 3: Reveal
	result.View = opts.View()
	result.Reveal = Reveal(ctx, s, result.View)

	r.Logger.Debug("evaluated reveal",
		"look", result.View.LookDirection(),
		"intensity", result.Reveal)

	// Stage 4: Render
	opts.SceneKey = r.Keyer.SceneKey(hash, opts.SceneKeyOpts())
	renderStart := time.Now()
	artifacts, hit, err := r.RenderWithCacheInfo(ctx, s, result.View, hash, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = hit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", hit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// RenderWithCacheInfo renders every format in opts, serving all of them from
// cache when possible, and reports whether that happened.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, s *scene.Scene, view scene.Camera, datasetHash string, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	sceneOpts := opts.SceneKeyOpts()

	if !opts.Refresh {
		artifacts := make(map[string][]byte, len(opts.Formats))
		for _, format := range opts.Formats {
			key := r.Keyer.FrameKey(datasetHash, sceneOpts, opts.FrameKeyOpts(format))
			data, hit, err := r.Cache.Get(ctx, key)
			if err != nil || !hit {
				break
			}
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			return artifacts, true, nil
		}
	}

	rendered, err := Render(ctx, s, view, opts)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		key := r.Keyer.FrameKey(datasetHash, sceneOpts, opts.FrameKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, cache.FrameTTL); err != nil {
			r.Logger.Warn("cache write failed", "format", format, "error", err)
		}
	}
	return rendered, false, nil
}

// Normalize loads the dataset in opts and returns it normalized to
// [-1, 1] on both axes.
func (r *Runner) Normalize(opts Options) ([]geom.Vec2, error) {
	points, err := Load(opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	return geom.Normalize(points)
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
