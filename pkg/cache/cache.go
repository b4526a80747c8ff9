// Package cache stores rendered frames so re-running a render with the same
// dataset, scene options and camera is instant.
//
// Two implementations are provided: [FileCache] for the CLI (entries live
// under the XDG cache directory) and [NullCache] when caching is disabled.
// Keys are produced by a [Keyer]; [NewScopedKeyer] prefixes them with the
// build version so a new release never serves frames drawn by an old one.
package cache

import (
	"context"
	"time"
)

// Default lifetimes for cached entries.
const (
	// FrameTTL is how long a rendered frame stays valid.
	FrameTTL = 7 * 24 * time.Hour
)

// Cache is a byte-oriented key/value store with expiry.
type Cache interface {
	// Get returns the stored value and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases resources held by the cache.
	Close() error
}

// NullCache is a cache that never stores anything.
type NullCache struct{}

// NewNullCache creates a null cache.
func NewNullCache() Cache {
	return NullCache{}
}

// Get always misses.
func (NullCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

// Set discards data.
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }

// Delete is a no-op.
func (NullCache) Delete(context.Context, string) error { return nil }

// Close is a no-op.
func (NullCache) Close() error { return nil }

var _ Cache = NullCache{}
