package scene

import (
	"github.com/matzehuels/frosting/pkg/core/frosting"
	"github.com/matzehuels/frosting/pkg/core/palette"
	"github.com/matzehuels/frosting/pkg/core/sprinkles"
	ferrors "github.com/matzehuels/frosting/pkg/errors"
)

// Limits enforced by [Config.Validate].
const (
	MaxSide       = 8192
	MaxLayers     = 64
	MaxComplexity = 256
	MaxDensity    = 1000
)

// Config is one snapshot of everything a generation pass reads. It is
// passed by value; callers build a new one for every change.
type Config struct {
	Width      int     `toml:"width" json:"width"`
	Height     int     `toml:"height" json:"height"`
	Layers     int     `toml:"layers" json:"layers"`
	DripHeight float64 `toml:"drip_height" json:"drip_height"` // percent of Height
	Overlap    float64 `toml:"overlap" json:"overlap"`         // 0..1
	Complexity int     `toml:"complexity" json:"complexity"`

	Density      float64 `toml:"density" json:"density"` // percent
	AllowOverlap bool    `toml:"allow_overlap" json:"allow_overlap"`

	Background     palette.Color   `toml:"background" json:"background"`
	FrostingTop    palette.Color   `toml:"frosting_top" json:"frosting_top"`
	FrostingBottom palette.Color   `toml:"frosting_bottom" json:"frosting_bottom"`
	Sprinkles      palette.Palette `toml:"-" json:"-"`
}

// Default returns the configuration the app starts with: an 800×600 pink
// frosted donut with rainbow sprinkles.
func Default() Config {
	return Config{
		Width:          800,
		Height:         600,
		Layers:         5,
		DripHeight:     80,
		Overlap:        0.5,
		Complexity:     8,
		Density:        20,
		AllowOverlap:   false,
		Background:     "#CCA995",
		FrostingTop:    "#FC86D1",
		FrostingBottom: "#F4499C",
		Sprinkles:      Rainbow,
	}
}

// Rainbow is the default sprinkle palette.
var Rainbow = palette.MustNew(
	"#FF6B6B", "#4ECDC4", "#FFE66D", "#FF9F1C",
	"#F7FFF7", "#FF006E", "#8338EC", "#3A86FF",
)

// Validate rejects values the engine cannot render. Colors are also checked
// for normalized form so a Config built by hand behaves like a parsed one.
func (c Config) Validate() error {
	if err := ferrors.ValidateDimensions(c.Width, c.Height, MaxSide); err != nil {
		return err
	}
	if c.Layers < 1 || c.Layers > MaxLayers {
		return ferrors.New(ferrors.ErrCodeInvalidConfig, "layers must be between 1 and %d, got %d", MaxLayers, c.Layers)
	}
	if c.Complexity < 1 || c.Complexity > MaxComplexity {
		return ferrors.New(ferrors.ErrCodeInvalidConfig, "complexity must be between 1 and %d, got %d", MaxComplexity, c.Complexity)
	}
	if err := ferrors.ValidateRange("drip height", c.DripHeight, 0, 100); err != nil {
		return err
	}
	if err := ferrors.ValidateRange("overlap", c.Overlap, 0, 1); err != nil {
		return err
	}
	if err := ferrors.ValidateRange("density", c.Density, 0, MaxDensity); err != nil {
		return err
	}

	for _, f := range []struct {
		name string
		c    palette.Color
	}{
		{"background", c.Background},
		{"frosting top", c.FrostingTop},
		{"frosting bottom", c.FrostingBottom},
	} {
		if err := ferrors.ValidateHexColor(f.name, string(f.c)); err != nil {
			return err
		}
	}

	if c.Sprinkles.Len() == 0 {
		return ferrors.New(ferrors.ErrCodeInvalidConfig, "sprinkle palette must hold at least one color")
	}
	for i, col := range c.Sprinkles.Colors() {
		if err := ferrors.ValidateHexColor("sprinkle color", string(col)); err != nil {
			return ferrors.Wrap(ferrors.ErrCodeInvalidColor, err, "sprinkle %d", i)
		}
	}
	return nil
}

// Frosting returns the synthesizer parameters.
func (c Config) Frosting() frosting.Params {
	return frosting.Params{
		Width:      c.Width,
		Height:     c.Height,
		Layers:     c.Layers,
		DripHeight: c.DripHeight,
		Overlap:    c.Overlap,
		Complexity: c.Complexity,
		Top:        c.FrostingTop,
		Bottom:     c.FrostingBottom,
	}
}

// Scatter returns the scatterer parameters.
func (c Config) Scatter() sprinkles.Params {
	return sprinkles.Params{
		Width:        c.Width,
		Height:       c.Height,
		Density:      c.Density,
		AllowOverlap: c.AllowOverlap,
		Colors:       c.Sprinkles,
	}
}
