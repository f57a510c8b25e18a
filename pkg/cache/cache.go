// Package cache provides content-addressed caching for pipeline stages.
//
// Cache keys are derived from the content they cache: a decoded tree is keyed
// by the hash of its input bytes, a layout by the tree hash plus the render
// options, an artifact by the layout hash plus the output format. Identical
// inputs therefore hit across runs without any invalidation bookkeeping.
package cache

import (
	"context"
	"time"
)

// Default TTLs per pipeline stage. Content-addressed entries never go stale,
// so these only bound disk usage; zero means no expiration.
const (
	TreeTTL     = 7 * 24 * time.Hour
	LayoutTTL   = 7 * 24 * time.Hour
	ArtifactTTL = 24 * time.Hour
)

// Cache is the storage backend for pipeline results. Implementations must be
// safe for concurrent use.
type Cache interface {
	// Get retrieves a value. A miss is (nil, false, nil); errors are
	// reserved for backend failures.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. A zero TTL stores forever.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Keyer generates cache keys for the pipeline stages.
type Keyer interface {
	// TreeKey keys a decoded tree by its raw input bytes.
	TreeKey(input []byte) string

	// LayoutKey keys a drawing program by the tree hash and render options.
	LayoutKey(treeHash string, opts LayoutKeyOpts) string

	// ArtifactKey keys a rendered artifact by the layout hash and format.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts are the option values that change a computed layout.
// Avail matters because proportional dimensions resolve against the ambient
// space; two runs differing only in ambient size must not share an entry.
type LayoutKeyOpts struct {
	Style    string // serialized style bundle
	Width    string
	Height   string
	Avail    string // serialized ambient dimensions
	ScaleBar string // serialized scale bar settings
}

// ArtifactKeyOpts are the option values that change a rendered artifact.
type ArtifactKeyOpts struct {
	Format     string
	FontFamily string
	Background string
}
