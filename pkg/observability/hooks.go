// Package observability provides hooks for metrics and tracing.
//
// Library code emits events through the registered hooks; the defaults do
// nothing. The CLI registers the Prometheus-backed hooks from pkg/metrics
// when --metrics-file is given:
//
//	observability.SetSceneHooks(reg)
//	observability.SetCacheHooks(reg)
//
// Libraries call hooks to emit events:
//
//	observability.Scene().OnBuildStart(ctx, policy, len(points))
//	s, err := scene.Build(points, cam, opts)
//	observability.Scene().OnBuildComplete(ctx, policy, anchors, edges, time.Since(start), err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Scene Hooks
// =============================================================================

// SceneHooks receives events from scene setup, the per-frame reveal update
// and frame rendering.
type SceneHooks interface {
	// Setup events
	OnBuildStart(ctx context.Context, policy string, points int)
	OnBuildComplete(ctx context.Context, policy string, anchors, edges int, duration time.Duration, err error)

	// OnReveal is called once per tick with the intensity applied to edges.
	OnReveal(ctx context.Context, intensity float64)

	// OnRender is called after a frame has been encoded.
	OnRender(ctx context.Context, format string, size int, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopSceneHooks is a no-op implementation of SceneHooks.
type NoopSceneHooks struct{}

func (NoopSceneHooks) OnBuildStart(context.Context, string, int) {}
func (NoopSceneHooks) OnBuildComplete(context.Context, string, int, int, time.Duration, error) {
}
func (NoopSceneHooks) OnReveal(context.Context, float64)                           {}
func (NoopSceneHooks) OnRender(context.Context, string, int, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	sceneHooks SceneHooks = NoopSceneHooks{}
	cacheHooks CacheHooks = NoopCacheHooks{}
	hooksMu    sync.RWMutex
)

// SetSceneHooks registers custom scene hooks. Nil is ignored.
func SetSceneHooks(h SceneHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		sceneHooks = h
	}
}

// SetCacheHooks registers custom cache hooks. Nil is ignored.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Scene returns the registered scene hooks.
func Scene() SceneHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return sceneHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores all hooks to their no-op defaults.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	sceneHooks = NoopSceneHooks{}
	cacheHooks = NoopCacheHooks{}
}
