package server

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/matzehuels/frosting/pkg/core/palette"
	"github.com/matzehuels/frosting/pkg/core/scene"
	ferrors "github.com/matzehuels/frosting/pkg/errors"
	"github.com/matzehuels/frosting/pkg/pipeline"
	"github.com/matzehuels/frosting/pkg/presets"
)

// parseSceneQuery layers the query over base: the preset first, then each
// individual parameter. Unknown parameters are ignored.
func parseSceneQuery(ctx context.Context, q url.Values, base scene.Config, store presets.Store) (pipeline.Options, error) {
	cfg := base
	if name := q.Get("preset"); name != "" {
		p, err := presets.Get(ctx, store, name)
		if err != nil {
			return pipeline.Options{}, err
		}
		if cfg, err = p.Apply(cfg); err != nil {
			return pipeline.Options{}, err
		}
	}

	p := queryParser{q: q}
	p.int("width", &cfg.Width)
	p.int("height", &cfg.Height)
	p.int("layers", &cfg.Layers)
	p.int("complexity", &cfg.Complexity)
	p.float("drip", &cfg.DripHeight)
	p.float("overlap", &cfg.Overlap)
	p.float("density", &cfg.Density)
	p.bool("allow_overlap", &cfg.AllowOverlap)
	p.color("bg", &cfg.Background)
	p.color("top", &cfg.FrostingTop)
	p.color("bottom", &cfg.FrostingBottom)
	p.palette("sprinkles", &cfg.Sprinkles)

	opts := pipeline.Options{Config: cfg, Title: q.Get("title")}
	p.float("scale", &opts.Scale)
	if q.Has("seed") {
		var seed uint64
		p.uint("seed", &seed)
		opts.Seed = &seed
	}
	if q.Has("sprinkle_seed") {
		var seed uint64
		p.uint("sprinkle_seed", &seed)
		opts.SprinkleSeed = &seed
	}
	p.bool("refresh", &opts.Refresh)
	p.bool("bare", &opts.NoSprinkles)
	p.color("outline", &opts.SurfaceLine)

	if p.err != nil {
		return pipeline.Options{}, p.err
	}
	return opts, nil
}

// queryParser keeps the first parse error.
type queryParser struct {
	q   url.Values
	err error
}

func (p *queryParser) value(key string) (string, bool) {
	if p.err != nil || !p.q.Has(key) {
		return "", false
	}
	return p.q.Get(key), true
}

func (p *queryParser) fail(key, v, want string) {
	p.err = ferrors.New(ferrors.ErrCodeInvalidConfig, "query parameter %s=%q is not %s", key, v, want)
}

func (p *queryParser) int(key string, dst *int) {
	if v, ok := p.value(key); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			p.fail(key, v, "an integer")
			return
		}
		*dst = n
	}
}

func (p *queryParser) uint(key string, dst *uint64) {
	if v, ok := p.value(key); ok {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			p.fail(key, v, "an unsigned integer")
			return
		}
		*dst = n
	}
}

func (p *queryParser) float(key string, dst *float64) {
	if v, ok := p.value(key); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			p.fail(key, v, "a number")
			return
		}
		*dst = f
	}
}

func (p *queryParser) bool(key string, dst *bool) {
	if v, ok := p.value(key); ok {
		if v == "" {
			*dst = true
			return
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			p.fail(key, v, "a boolean")
			return
		}
		*dst = b
	}
}

// color accepts the hex digits with or without the leading '#', since a
// bare '#' starts the URL fragment.
func (p *queryParser) color(key string, dst *palette.Color) {
	if v, ok := p.value(key); ok {
		c, err := palette.Parse(withHash(v))
		if err != nil {
			p.err = err
			return
		}
		*dst = c
	}
}

func (p *queryParser) palette(key string, dst *palette.Palette) {
	if v, ok := p.value(key); ok {
		parts := strings.Split(v, ",")
		for i := range parts {
			parts[i] = withHash(strings.TrimSpace(parts[i]))
		}
		pal, err := palette.New(parts...)
		if err != nil {
			p.err = err
			return
		}
		*dst = pal
	}
}

func withHash(s string) string {
	if strings.HasPrefix(s, "#") {
		return s
	}
	return "#" + s
}
