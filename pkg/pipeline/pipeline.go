// Package pipeline runs a scene generation end to end: validate the
// configuration, pick the random source, generate, and render every
// requested format.
//
// The CLI and the HTTP server both go through a [Runner], so seeding,
// caching, and logging behave the same for both.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	seed := uint64(42)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Config:  scene.Default(),
//	    Seed:    &seed,
//	    Formats: []string{"svg", "png"},
//	})
//	if err != nil {
//	    return err
//	}
//	svg := result.Artifacts["svg"]
//
// # Seeds and caching
//
// Without a seed the runner draws one from the system source and reports it
// in [Result.Seed], so any scene can be reproduced later. Artifacts are
// cached only when the caller supplied the seed; a fresh system seed would
// never be asked for again.
package pipeline

import (
	"encoding/json"
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/frosting/pkg/cache"
	"github.com/matzehuels/frosting/pkg/core/palette"
	"github.com/matzehuels/frosting/pkg/core/render"
	"github.com/matzehuels/frosting/pkg/core/scene"
	ferrors "github.com/matzehuels/frosting/pkg/errors"
)

// DefaultScale is the PNG scale factor when none is given.
const DefaultScale = 1.0

// MaxScale bounds the PNG scale factor.
const MaxScale = 8.0

// MaxRasterPixels bounds the pixel count of a PNG (width·height·scale²).
const MaxRasterPixels = 1 << 26

// MaxSprinkles bounds the sprinkles one scene may request. Each slot scans
// everything placed so far, so the cost grows with the square of the target.
const MaxSprinkles = 20000

// Options contains everything one pipeline run needs.
type Options struct {
	Config  scene.Config
	Seed    *uint64  // nil draws a system seed
	Formats []string // defaults to svg
	Scale   float64  // PNG scale factor
	Title   string   // optional SVG <title>
	Refresh bool     // ignore cached artifacts

	// NoSprinkles drops the sprinkle layer from drawn formats; SurfaceLine
	// outlines the height map in a #RRGGBB color. Both leave the scene
	// itself, and so the JSON and heightmap outputs, untouched.
	NoSprinkles bool
	SurfaceLine palette.Color

	// SprinkleSeed, when set, keeps the frosting of Seed and scatters the
	// sprinkles from a source of their own. It requires Seed.
	SprinkleSeed *uint64

	Logger *log.Logger

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// ID identifies this run in logs and response headers.
	ID uuid.UUID

	// Seed reproduces the scene; it is set even for unseeded runs.
	Seed uint64

	// SprinkleSeed echoes Options.SprinkleSeed.
	SprinkleSeed *uint64

	Scene scene.Scene

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Layers       int
	Sprinkles    int
	Target       int
	GenerateTime time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks whether the cache took part in a run.
type CacheInfo struct {
	Cacheable bool // the run was seeded by the caller
	RenderHit bool // every artifact came from the cache
}

// ValidateFormats checks that every format is known.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := render.ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndSetDefaults checks the options and fills in defaults. It is
// idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.Config.Validate(); err != nil {
		return err
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{render.FormatSVG}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Scale < 0 || o.Scale > MaxScale {
		return ferrors.New(ferrors.ErrCodeInvalidConfig, "scale must be in (0, %g], got %g", MaxScale, o.Scale)
	}
	if err := o.checkLimits(); err != nil {
		return err
	}
	if o.SprinkleSeed != nil && o.Seed == nil {
		return ferrors.New(ferrors.ErrCodeInvalidConfig, "a sprinkle seed needs a seed for the frosting")
	}
	if o.SurfaceLine != "" {
		c, err := palette.Parse(o.SurfaceLine.String())
		if err != nil {
			return err
		}
		o.SurfaceLine = c
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

func (o *Options) checkLimits() error {
	if target := o.Config.Scatter().Target(); target > MaxSprinkles {
		return ferrors.New(ferrors.ErrCodeInvalidConfig,
			"scene requests %d sprinkles, at most %d allowed; lower density or canvas size", target, MaxSprinkles)
	}
	if slices.Contains(o.Formats, render.FormatPNG) {
		pixels := float64(o.Config.Width) * float64(o.Config.Height) * o.Scale * o.Scale
		if pixels > MaxRasterPixels {
			return ferrors.New(ferrors.ErrCodeInvalidConfig,
				"png would have %.0f pixels, at most %d allowed; lower scale or canvas size", pixels, MaxRasterPixels)
		}
	}
	return nil
}

// Seeded reports whether the caller fixed the seed.
func (o *Options) Seeded() bool { return o.Seed != nil }

// ArtifactKeyOpts returns cache key options for one format.
func (o *Options) ArtifactKeyOpts(format string, seed uint64) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{Format: format, Seed: seed, SprinkleSeed: o.SprinkleSeed}
	switch format {
	case render.FormatSVG, render.FormatPNG, render.FormatPDF:
		opts.Title = o.Title
		opts.NoSprinkles = o.NoSprinkles
		opts.SurfaceLine = o.SurfaceLine.String()
	}
	if format == render.FormatPNG {
		opts.Scale = o.Scale
	}
	return opts
}

// ConfigHash returns the content hash of a scene configuration, including
// the sprinkle palette.
func ConfigHash(cfg scene.Config) string {
	data, _ := json.Marshal(struct {
		scene.Config
		Sprinkles []string `json:"sprinkles"`
	}{cfg, cfg.Sprinkles.Strings()})
	return cache.Hash(data)
}
