// Package cache memoizes rendered scene artifacts.
//
// Only seeded generations are cacheable: the same configuration and seed
// always produce the same scene, so the artifact bytes can be reused. The
// cache is a TTL'd memo and never a store of record.
//
// Backends:
//   - [FileCache]: one JSON file per entry under the XDG cache directory (CLI)
//   - [RedisCache]: shared entries for a fleet of servers
//   - [NullCache]: caching disabled
//
// Keys come from a [Keyer] so servers can namespace them with [NewScopedKeyer].
package cache

import (
	"context"
	"fmt"
	"time"
)

// TTLArtifact is how long a rendered artifact is kept.
const TTLArtifact = 7 * 24 * time.Hour

// Cache stores opaque byte values by key.
type Cache interface {
	// Get returns the value and true on a hit. A miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// ArtifactKeyOpts are the render options that change artifact bytes.
type ArtifactKeyOpts struct {
	Format       string
	Seed         uint64
	SprinkleSeed *uint64
	Scale        float64
	Title        string
	NoSprinkles  bool
	SurfaceLine  string
}

// Keyer derives cache keys.
type Keyer interface {
	// ArtifactKey returns the key of one rendered artifact. configHash is
	// the content hash of the scene configuration.
	ArtifactKey(configHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes every option into the key.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(configHash string, opts ArtifactKeyOpts) string {
	return hashKey(fmt.Sprintf("artifact:%s", opts.Format), configHash, opts)
}
