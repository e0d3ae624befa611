package pipeline

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/frosting/pkg/cache"
	"github.com/matzehuels/frosting/pkg/core/rng"
	"github.com/matzehuels/frosting/pkg/core/scene"
	"github.com/matzehuels/frosting/pkg/observability"
)

const keyTypeArtifact = "artifact"

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger, so several
// goroutines can share one.
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
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Execute generates the scene and renders every requested format.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	src, seed := source(opts.Seed)
	result := &Result{
		ID:           uuid.New(),
		Seed:         seed,
		SprinkleSeed: opts.SprinkleSeed,
	}
	logger := opts.Logger.With("id", result.ID.String()[:8])
	if !opts.Seeded() {
		logger.Info("drew system seed", "seed", seed)
	}

	genStart := time.Now()
	s := generate(opts.Config, src, opts.SprinkleSeed)
	result.Scene = s
	result.Stats.GenerateTime = time.Since(genStart)
	result.Stats.Layers = len(s.Surface.Layers)
	result.Stats.Sprinkles = len(s.Sprinkles)
	result.Stats.Target = s.Target

	observability.Pipeline().OnGenerate(ctx, observability.GenerateEvent{
		Layers:    result.Stats.Layers,
		Sprinkles: result.Stats.Sprinkles,
		Target:    result.Stats.Target,
		Seeded:    opts.Seeded(),
		Duration:  result.Stats.GenerateTime,
	})
	logger.Info("generated scene",
		"layers", result.Stats.Layers,
		"sprinkles", result.Stats.Sprinkles,
		"target", result.Stats.Target,
		"duration", result.Stats.GenerateTime)
	if starved := s.Starved(); starved > 0 {
		logger.Debug("sprinkle slots starved", "count", starved)
	}

	renderStart := time.Now()
	artifacts, hit, err := r.RenderWithCacheInfo(ctx, s, seed, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.Cacheable = opts.Seeded()
	result.CacheInfo.RenderHit = hit

	logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", hit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// RenderWithCacheInfo renders s, reusing cached artifacts for seeded runs.
// The bool reports whether every artifact came from the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, s scene.Scene, seed uint64, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}
	if !opts.Seeded() {
		artifacts, err := Render(ctx, s, seed, opts)
		return artifacts, false, err
	}

	configHash := ConfigHash(s.Config)
	key := func(format string) string {
		return r.Keyer.ArtifactKey(configHash, opts.ArtifactKeyOpts(format, seed))
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	var missing []string
	for _, format := range opts.Formats {
		if !opts.Refresh {
			if data, hit, err := r.Cache.Get(ctx, key(format)); err == nil && hit {
				observability.Cache().OnCacheHit(ctx, keyTypeArtifact)
				artifacts[format] = data
				continue
			} else if err != nil {
				opts.Logger.Warn("cache lookup failed", "format", format, "err", err)
			}
		}
		observability.Cache().OnCacheMiss(ctx, keyTypeArtifact)
		missing = append(missing, format)
	}
	if len(missing) == 0 {
		return artifacts, true, nil
	}

	sub := opts
	sub.Formats = missing
	rendered, err := Render(ctx, s, seed, sub)
	if err != nil {
		return nil, false, err
	}
	for format, data := range rendered {
		artifacts[format] = data
		if err := r.Cache.Set(ctx, key(format), data, cache.TTLArtifact); err != nil {
			opts.Logger.Warn("cache write failed", "format", format, "err", err)
			continue
		}
		observability.Cache().OnCacheSet(ctx, keyTypeArtifact, len(data))
	}
	return artifacts, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// generate draws the scene from src, or only its frosting when a sprinkle
// seed is given.
func generate(cfg scene.Config, src rng.Source, sprinkleSeed *uint64) scene.Scene {
	if sprinkleSeed == nil {
		return scene.Generate(cfg, src)
	}
	return scene.Frost(cfg, src).Rescatter(rng.New(*sprinkleSeed))
}

func source(seed *uint64) (*rand.Rand, uint64) {
	if seed != nil {
		return rng.New(*seed), *seed
	}
	return rng.NewSystem()
}
