// Package scene combines the frosting synthesizer and the sprinkle
// scatterer into a single generation pass.
//
// A pass reads one immutable [Config] and one random source and returns a
// [Scene] it owns outright; nothing is shared between passes. The renderers
// in render/sink only ever read a Scene.
//
//	cfg := scene.Default()
//	if err := cfg.Validate(); err != nil {
//	    return err
//	}
//	s := scene.Generate(cfg, rng.New(42))
//	fmt.Println(len(s.Sprinkles), "of", s.Target)
package scene

import (
	"github.com/matzehuels/frosting/pkg/core/frosting"
	"github.com/matzehuels/frosting/pkg/core/rng"
	"github.com/matzehuels/frosting/pkg/core/sprinkles"
)

// Scene is the output of one generation pass.
type Scene struct {
	Config    Config
	Surface   frosting.Surface
	Sprinkles []sprinkles.Sprinkle
	Target    int // sprinkles requested; len(Sprinkles) may be lower
}

// Generate synthesizes the frosting surface and scatters sprinkles on it.
// cfg is not validated here; see [Config.Validate].
func Generate(cfg Config, src rng.Source) Scene {
	return Frost(cfg, src).Rescatter(src)
}

// Frost synthesizes the frosting surface only. The frosting depends on the
// frosting fields of cfg and the first draws of src, so a seed gives the
// same surface whatever the sprinkle settings.
func Frost(cfg Config, src rng.Source) Scene {
	return Scene{Config: cfg, Surface: frosting.Synthesize(cfg.Frosting(), src)}
}

// Rescatter keeps the frosting of s and replaces its sprinkles with a new
// pass drawn from src.
func (s Scene) Rescatter(src rng.Source) Scene {
	sp := s.Config.Scatter()
	s.Sprinkles = sprinkles.Scatter(sp, s.Surface.HeightMap, src)
	s.Target = sp.Target()
	return s
}

// Starved reports how many requested sprinkles could not be placed.
func (s Scene) Starved() int {
	return s.Target - len(s.Sprinkles)
}
