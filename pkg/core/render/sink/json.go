package sink

import (
	"encoding/json"

	"github.com/matzehuels/frosting/pkg/core/geom"
	"github.com/matzehuels/frosting/pkg/core/scene"
	"github.com/matzehuels/frosting/pkg/core/sprinkles"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	seed      uint64
	seeded    bool
	heightMap bool
}

// WithJSONSeed records the seed the scene was generated from, so the JSON
// is enough to regenerate it.
func WithJSONSeed(seed uint64) JSONOption {
	return func(r *jsonRenderer) { r.seed = seed; r.seeded = true }
}

// WithJSONHeightMap includes the per-column surface values.
func WithJSONHeightMap() JSONOption { return func(r *jsonRenderer) { r.heightMap = true } }

type jsonOutput struct {
	Seed      *uint64              `json:"seed,omitempty"`
	Config    jsonConfig           `json:"config"`
	Layers    []jsonLayer          `json:"layers"`
	HeightMap []float64            `json:"height_map,omitempty"`
	Target    int                  `json:"target"`
	Sprinkles []sprinkles.Sprinkle `json:"sprinkles"`
}

type jsonConfig struct {
	scene.Config
	Sprinkles []string `json:"sprinkles"`
}

type jsonLayer struct {
	Index int          `json:"index"`
	BaseY float64      `json:"base_y"`
	Color string       `json:"color"`
	Knots []geom.Point `json:"knots"`
	Path  string       `json:"path"`
}

// RenderJSON exports the scene as a pretty-printed JSON document: the
// configuration, every layer with its knots and path, and every sprinkle.
func RenderJSON(s scene.Scene, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		Config:    jsonConfig{Config: s.Config, Sprinkles: s.Config.Sprinkles.Strings()},
		Layers:    make([]jsonLayer, 0, len(s.Surface.Layers)),
		Target:    s.Target,
		Sprinkles: s.Sprinkles,
	}
	if out.Sprinkles == nil {
		out.Sprinkles = []sprinkles.Sprinkle{}
	}
	if r.seeded {
		out.Seed = &r.seed
	}
	if r.heightMap {
		out.HeightMap = s.Surface.HeightMap.Values()
	}
	for _, l := range s.Surface.Layers {
		out.Layers = append(out.Layers, jsonLayer{
			Index: l.Index,
			BaseY: l.BaseY,
			Color: l.Color.String(),
			Knots: l.Knots,
			Path:  l.Path.String(),
		})
	}

	return json.MarshalIndent(out, "", "  ")
}
