// Package metrics records scene, frame and cache activity in Prometheus
// collectors.
//
// The CLI is short-lived, so nothing is scraped: at exit the registry is
// written in the node_exporter textfile format with [Registry.WriteFile].
package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/matzehuels/stargaze/pkg/observability"
)

// Registry holds the stargaze collectors. It implements
// observability.SceneHooks and observability.CacheHooks.
type Registry struct {
	SceneBuildsTotal     *prometheus.CounterVec
	SceneBuildDuration   prometheus.Histogram
	SceneAnchors         prometheus.Gauge
	SceneEdges           prometheus.Gauge
	FramesTotal          prometheus.Counter
	RevealIntensity      prometheus.Gauge
	RevealHistogram      prometheus.Histogram
	RendersTotal         *prometheus.CounterVec
	RenderDuration       *prometheus.HistogramVec
	RenderBytes          *prometheus.HistogramVec
	CacheOperationsTotal *prometheus.CounterVec

	registry *prometheus.Registry
}

// NewRegistry creates a registry with every collector registered.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()
	r := &Registry{registry: reg}
	f := promauto.With(reg)

	r.SceneBuildsTotal = f.NewCounterVec(prometheus.CounterOpts{
		Name: "stargaze_scene_builds_total",
		Help: "Scene setups by projection policy and outcome",
	}, []string{"policy", "status"})
	r.SceneBuildDuration = f.NewHistogram(prometheus.HistogramOpts{
		Name:    "stargaze_scene_build_duration_seconds",
		Help:    "Time to normalize, sample and project a dataset",
		Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
	})
	r.SceneAnchors = f.NewGauge(prometheus.GaugeOpts{
		Name: "stargaze_scene_anchors",
		Help: "Anchors in the most recently built scene",
	})
	r.SceneEdges = f.NewGauge(prometheus.GaugeOpts{
		Name: "stargaze_scene_edges",
		Help: "Edges in the most recently built scene",
	})
	r.FramesTotal = f.NewCounter(prometheus.CounterOpts{
		Name: "stargaze_frames_total",
		Help: "Reveal updates performed",
	})
	r.RevealIntensity = f.NewGauge(prometheus.GaugeOpts{
		Name: "stargaze_reveal_intensity",
		Help: "Edge opacity applied on the last frame",
	})
	r.RevealHistogram = f.NewHistogram(prometheus.HistogramOpts{
		Name:    "stargaze_reveal_intensity_distribution",
		Help:    "Edge opacity across frames",
		Buckets: prometheus.LinearBuckets(0, 0.025, 9),
	})
	r.RendersTotal = f.NewCounterVec(prometheus.CounterOpts{
		Name: "stargaze_renders_total",
		Help: "Frames encoded by format and outcome",
	}, []string{"format", "status"})
	r.RenderDuration = f.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "stargaze_render_duration_seconds",
		Help:    "Frame encoding time by format",
		Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0},
	}, []string{"format"})
	r.RenderBytes = f.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "stargaze_render_bytes",
		Help:    "Encoded frame size by format",
		Buckets: prometheus.ExponentialBuckets(1024, 4, 8),
	}, []string{"format"})
	r.CacheOperationsTotal = f.NewCounterVec(prometheus.CounterOpts{
		Name: "stargaze_cache_operations_total",
		Help: "Cache lookups and writes by key type and result",
	}, []string{"key_type", "result"})

	return r
}

// Gatherer returns the underlying Prometheus registry.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}

// WriteFile writes all collected metrics to path in the text exposition
// format, replacing the file atomically.
func (r *Registry) WriteFile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// OnBuildStart implements observability.SceneHooks.
func (r *Registry) OnBuildStart(context.Context, string, int) {}

// OnBuildComplete implements observability.SceneHooks.
func (r *Registry) OnBuildComplete(_ context.Context, policy string, anchors, edges int, d time.Duration, err error) {
	r.SceneBuildsTotal.WithLabelValues(policy, status(err)).Inc()
	if err != nil {
		return
	}
	r.SceneBuildDuration.Observe(d.Seconds())
	r.SceneAnchors.Set(float64(anchors))
	r.SceneEdges.Set(float64(edges))
}

// OnReveal implements observability.SceneHooks.
func (r *Registry) OnReveal(_ context.Context, intensity float64) {
	r.FramesTotal.Inc()
	r.RevealIntensity.Set(intensity)
	r.RevealHistogram.Observe(intensity)
}

// OnRender implements observability.SceneHooks.
func (r *Registry) OnRender(_ context.Context, format string, size int, d time.Duration, err error) {
	r.RendersTotal.WithLabelValues(format, status(err)).Inc()
	if err != nil {
		return
	}
	r.RenderDuration.WithLabelValues(format).Observe(d.Seconds())
	r.RenderBytes.WithLabelValues(format).Observe(float64(size))
}

// OnCacheHit implements observability.CacheHooks.
func (r *Registry) OnCacheHit(_ context.Context, keyType string) {
	r.CacheOperationsTotal.WithLabelValues(keyType, "hit").Inc()
}

// OnCacheMiss implements observability.CacheHooks.
func (r *Registry) OnCacheMiss(_ context.Context, keyType string) {
	r.CacheOperationsTotal.WithLabelValues(keyType, "miss").Inc()
}

// OnCacheSet implements observability.CacheHooks.
func (r *Registry) OnCacheSet(_ context.Context, keyType string, _ int) {
	r.CacheOperationsTotal.WithLabelValues(keyType, "set").Inc()
}

var (
	_ observability.SceneHooks = (*Registry)(nil)
	_ observability.CacheHooks = (*Registry)(nil)
)
