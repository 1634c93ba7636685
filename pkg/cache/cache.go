// Package cache provides caching abstractions for expensive pipeline stages.
//
// The analyze-layout-export pipeline recomputes everything from scratch on
// each run; for large workspaces the layout and render stages dominate. The
// Cache interface lets the pipeline memoize intermediate artifacts keyed by a
// content hash of their inputs, so unchanged workspaces render instantly.
//
// Two implementations ship with the CLI:
//   - FileCache: persistent, stored under the user's cache directory
//   - NullCache: disables caching entirely
package cache

import (
	"context"
	"time"
)

// Cache is the storage interface for memoized pipeline artifacts.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key was
	// present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with an optional TTL. A zero TTL means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// Keyer derives cache keys for the pipeline's stages. Keys are content
// hashes: the same inputs always produce the same key, and any semantic
// change to the inputs produces a different one.
type Keyer interface {
	// LayoutKey derives a key for a computed layout, from the hash of the
	// workspace it was computed for plus the layout options.
	LayoutKey(workspaceHash string, opts LayoutKeyOpts) string

	// ArtifactKey derives a key for a rendered artifact, from the hash of
	// the layout it renders plus the render options.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts captures every input that changes a layout result.
type LayoutKeyOpts struct {
	TuningHash string // hash of the tuning profile, empty for defaults
}

// ArtifactKeyOpts captures every input that changes a rendered artifact.
type ArtifactKeyOpts struct {
	Format string // output format: dot, svg, png, pdf
}

// Default TTLs per artifact class. Layouts are cheap to recompute relative
// to rendered images, so they expire sooner.
const (
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 30 * 24 * time.Hour
)

// DefaultKeyer is the standard key derivation used by the CLI and server.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// LayoutKey generates a key for layout caching.
func (k *DefaultKeyer) LayoutKey(workspaceHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", workspaceHash, opts)
}

// ArtifactKey generates a key for rendered artifact caching.
func (k *DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)
