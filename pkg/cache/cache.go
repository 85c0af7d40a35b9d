// Package cache stores generated scenes and rendered artifacts.
//
// # Backends
//
//   - [FileCache]: JSON entries under a directory, for the CLI
//   - [RedisCache]: a shared Redis instance, for the HTTP server
//   - [NullCache]: stores nothing, for --no-cache and tests
//
// # Keys
//
// A [Keyer] maps generation inputs to cache keys. Keys hash the JSON
// encoding of every input that affects the output, so any change to the
// parameters, seed or render settings yields a new key:
//
//	keyer := cache.NewDefaultKeyer()
//	sceneKey := keyer.SceneKey(cache.SceneKeyOpts{Seed: 42, ...})
//	svgKey := keyer.ArtifactKey(sceneHash, cache.ArtifactKeyOpts{Format: "svg"})
//
// [NewScopedKeyer] prefixes every key, which keeps several deployments apart
// on one Redis instance.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key-value store with expiry.
type Cache interface {
	// Get returns the value for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl <= 0 means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Default lifetimes of cache entries.
const (
	TTLScene    = 7 * 24 * time.Hour
	TTLArtifact = 30 * 24 * time.Hour
)

// Keyer builds cache keys.
type Keyer interface {
	// SceneKey keys the instruction list produced by one set of resolved
	// generation parameters.
	SceneKey(opts SceneKeyOpts) string
	// ArtifactKey keys one rendered format of a scene.
	ArtifactKey(sceneHash string, opts ArtifactKeyOpts) string
}

// SceneKeyOpts are the inputs that determine a scene.
type SceneKeyOpts struct {
	Seed         uint64  `json:"seed"`
	Width        int     `json:"width"`
	Height       int     `json:"height"`
	Border       float64 `json:"border"`
	MinDepth     int     `json:"min_depth"`
	MaxDepth     int     `json:"max_depth"`
	SplitChance  int     `json:"split_chance"`
	MaxLines     float64 `json:"max_lines"`
	LineSpacing  float64 `json:"line_spacing"`
	StrokeWeight float64 `json:"stroke_weight"`
	Foreground   string  `json:"foreground"`
	Background   string  `json:"background"`
	Rotation     float64 `json:"rotation"`
	Parallel     bool    `json:"parallel"`
}

// ArtifactKeyOpts are the render settings that affect one artifact.
type ArtifactKeyOpts struct {
	Format    string  `json:"format"`
	Precision int     `json:"precision,omitempty"`
	Scale     float64 `json:"scale,omitempty"`
}

// DefaultKeyer is the standard [Keyer].
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// SceneKey implements [Keyer].
func (DefaultKeyer) SceneKey(opts SceneKeyOpts) string {
	return hashKey("scene", opts)
}

// ArtifactKey implements [Keyer].
func (DefaultKeyer) ArtifactKey(sceneHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", sceneHash, opts)
}
