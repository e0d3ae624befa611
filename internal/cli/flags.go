package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/frosting/pkg/config"
)

// sceneFlags are the scene overrides shared by render and serve. Only flags
// the user actually set are applied, so unset flags never mask the file.
type sceneFlags struct {
	preset       string
	width        int
	height       int
	layers       int
	complexity   int
	drip         float64
	overlap      float64
	density      float64
	allowOverlap bool
	bg           string
	top          string
	bottom       string
	sprinkles    []string
}

func (f *sceneFlags) register(cmd *cobra.Command) {
	def := config.Default()
	fs := cmd.Flags()
	fs.StringVarP(&f.preset, "preset", "p", "", "color preset (see 'frosting presets')")
	fs.IntVar(&f.width, "width", def.Width, "canvas width in pixels")
	fs.IntVar(&f.height, "height", def.Height, "canvas height in pixels")
	fs.IntVar(&f.layers, "layers", def.Layers, "number of frosting layers")
	fs.IntVar(&f.complexity, "complexity", def.Complexity, "knots per layer edge")
	fs.Float64Var(&f.drip, "drip", def.DripHeight, "drip height in percent of the canvas height")
	fs.Float64Var(&f.overlap, "overlap", def.Overlap, "layer overlap from 0 to 1")
	fs.Float64Var(&f.density, "density", def.Density, "sprinkle density in percent")
	fs.BoolVar(&f.allowOverlap, "allow-overlap", def.AllowOverlap, "let sprinkles overlap")
	fs.StringVar(&f.bg, "bg", "", "background color (#RRGGBB)")
	fs.StringVar(&f.top, "top", "", "frosting top color (#RRGGBB)")
	fs.StringVar(&f.bottom, "bottom", "", "frosting bottom color (#RRGGBB)")
	fs.StringSliceVar(&f.sprinkles, "sprinkles", nil, "sprinkle colors (comma-separated #RRGGBB)")
}

// apply writes the changed flags into file. A --preset flag drops the
// file's own colors so the preset shows through.
func (f *sceneFlags) apply(cmd *cobra.Command, file *config.File) {
	fs := cmd.Flags()
	if fs.Changed("preset") {
		usePreset(file, f.preset)
	}
	if fs.Changed("width") {
		file.Width = &f.width
	}
	if fs.Changed("height") {
		file.Height = &f.height
	}
	if fs.Changed("layers") {
		file.Layers = &f.layers
	}
	if fs.Changed("complexity") {
		file.Complexity = &f.complexity
	}
	if fs.Changed("drip") {
		file.DripHeight = &f.drip
	}
	if fs.Changed("overlap") {
		file.Overlap = &f.overlap
	}
	if fs.Changed("density") {
		file.Density = &f.density
	}
	if fs.Changed("allow-overlap") {
		file.AllowOverlap = &f.allowOverlap
	}
	if fs.Changed("bg") {
		file.Background = &f.bg
	}
	if fs.Changed("top") {
		file.FrostingTop = &f.top
	}
	if fs.Changed("bottom") {
		file.FrostingBottom = &f.bottom
	}
	if fs.Changed("sprinkles") {
		file.Sprinkles = f.sprinkles
	}
}
