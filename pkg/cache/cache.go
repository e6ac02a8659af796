// Package cache provides pluggable byte caches for computed layouts.
//
// Backends share the [Cache] interface:
//   - memory: In-process map for development/testing
//   - redis: Redis-backed cache for multi-instance deployments
//   - file: Directory-backed cache for CLI usage
//   - null: No-op cache for disabling caching entirely
//
// Keys are derived through a [Keyer], which hashes the graph content and the
// layout options together so that any input change produces a distinct key.
package cache

import (
	"context"
	"time"
)

// Cache is the interface all cache backends implement.
//
// Get reports a miss with (nil, false, nil); errors are reserved for backend
// failures. A ttl of zero means the entry never expires.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// LayoutKeyOpts captures the option fields that affect a computed layout.
// Two layouts share a cache entry only when every field matches.
type LayoutKeyOpts struct {
	Direction           string   `json:"direction"`
	Ranking             string   `json:"ranking"`
	Crossing            string   `json:"crossing"`
	Coordinates         string   `json:"coordinates"`
	LevelSeparation     float64  `json:"level_separation"`
	NodeSeparation      float64  `json:"node_separation"`
	CrossingIterations  int      `json:"crossing_iterations"`
	TightTreePasses     int      `json:"tight_tree_passes"`
	AlignmentIterations int      `json:"alignment_iterations"`
	GridSize            float64  `json:"grid_size"`
	Margin              float64  `json:"margin"`
	RootNodes           []string `json:"root_nodes"`
	AlignToGrid         bool     `json:"align_to_grid"`
	Compact             bool     `json:"compact"`
}

// Keyer derives cache keys for computed layouts.
type Keyer interface {
	// LayoutKey generates a key from a graph content hash and the layout
	// options that shaped the result.
	LayoutKey(graphHash string, opts LayoutKeyOpts) string
}

// DefaultKeyer is the standard key derivation: a namespaced SHA-256 over the
// graph hash and options.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// LayoutKey generates a key for layout caching.
func (k *DefaultKeyer) LayoutKey(graphHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", graphHash, opts)
}
