package scene

import (
	"slices"
	"testing"

	"github.com/matzehuels/frosting/pkg/core/palette"
	"github.com/matzehuels/frosting/pkg/core/rng"
	ferrors "github.com/matzehuels/frosting/pkg/errors"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() error: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		code   ferrors.Code
	}{
		{"zero width", func(c *Config) { c.Width = 0 }, ferrors.ErrCodeInvalidConfig},
		{"negative height", func(c *Config) { c.Height = -1 }, ferrors.ErrCodeInvalidConfig},
		{"oversized", func(c *Config) { c.Width = MaxSide + 1 }, ferrors.ErrCodeInvalidConfig},
		{"no layers", func(c *Config) { c.Layers = 0 }, ferrors.ErrCodeInvalidConfig},
		{"zero complexity", func(c *Config) { c.Complexity = 0 }, ferrors.ErrCodeInvalidConfig},
		{"drip over 100", func(c *Config) { c.DripHeight = 101 }, ferrors.ErrCodeInvalidConfig},
		{"overlap over 1", func(c *Config) { c.Overlap = 1.5 }, ferrors.ErrCodeInvalidConfig},
		{"negative density", func(c *Config) { c.Density = -5 }, ferrors.ErrCodeInvalidConfig},
		{"bad background", func(c *Config) { c.Background = "pink" }, ferrors.ErrCodeInvalidColor},
		{"short top", func(c *Config) { c.FrostingTop = "#FFF" }, ferrors.ErrCodeInvalidColor},
		{"bad bottom", func(c *Config) { c.FrostingBottom = "" }, ferrors.ErrCodeInvalidColor},
		{"empty palette", func(c *Config) { c.Sprinkles = palette.Palette{} }, ferrors.ErrCodeInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() should fail")
			}
			if got := ferrors.GetCode(err); got != tt.code {
				t.Errorf("code = %v, want %v", got, tt.code)
			}
		})
	}
}

func TestValidateEdges(t *testing.T) {
	cfg := Default()
	cfg.Layers = 1
	cfg.Complexity = 1
	cfg.DripHeight = 0
	cfg.Overlap = 1
	cfg.Density = 0
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() at range edges: %v", err)
	}
}

func TestGenerate(t *testing.T) {
	cfg := Default()
	s := Generate(cfg, rng.New(42))

	if len(s.Surface.Layers) != cfg.Layers {
		t.Errorf("layers = %d, want %d", len(s.Surface.Layers), cfg.Layers)
	}
	if s.Surface.HeightMap.Len() != cfg.Width {
		t.Errorf("height map length = %d, want %d", s.Surface.HeightMap.Len(), cfg.Width)
	}
	if s.Target != cfg.Scatter().Target() {
		t.Errorf("Target = %d, want %d", s.Target, cfg.Scatter().Target())
	}
	if len(s.Sprinkles) == 0 || len(s.Sprinkles) > s.Target {
		t.Errorf("placed %d sprinkles, target %d", len(s.Sprinkles), s.Target)
	}
	if s.Starved() != s.Target-len(s.Sprinkles) {
		t.Errorf("Starved() = %d", s.Starved())
	}
	for i, sp := range s.Sprinkles {
		if !s.Surface.HeightMap.Above(sp.X, sp.Y) {
			t.Errorf("sprinkle %d is off the frosting", i)
		}
	}
}

func TestGenerateSeeded(t *testing.T) {
	cfg := Default()
	a := Generate(cfg, rng.New(7))
	b := Generate(cfg, rng.New(7))
	c := Generate(cfg, rng.New(8))

	if !slices.Equal(a.Surface.HeightMap.Values(), b.Surface.HeightMap.Values()) {
		t.Error("same seed produced different height maps")
	}
	if !slices.Equal(a.Sprinkles, b.Sprinkles) {
		t.Error("same seed produced different sprinkles")
	}
	if slices.Equal(a.Surface.HeightMap.Values(), c.Surface.HeightMap.Values()) {
		t.Error("different seeds produced identical height maps")
	}
}

func TestGenerateOwnsItsData(t *testing.T) {
	cfg := Default()
	src := rng.New(1)
	a := Generate(cfg, src)
	before := a.Surface.HeightMap.Values()

	Generate(cfg, src)
	if !slices.Equal(before, a.Surface.HeightMap.Values()) {
		t.Error("second pass modified the first pass's height map")
	}
}

func TestRescatter(t *testing.T) {
	cfg := Default()
	a := Generate(cfg, rng.New(5))
	b := a.Rescatter(rng.New(6))

	if !slices.Equal(a.Surface.HeightMap.Values(), b.Surface.HeightMap.Values()) {
		t.Error("Rescatter changed the frosting")
	}
	if slices.Equal(a.Sprinkles, b.Sprinkles) {
		t.Error("Rescatter kept the same sprinkles")
	}
	for i, sp := range b.Sprinkles {
		if !b.Surface.HeightMap.Above(sp.X, sp.Y) {
			t.Errorf("sprinkle %d is off the frosting", i)
		}
	}
}

func TestFrostThenRescatterMatchesGenerate(t *testing.T) {
	cfg := Default()
	want := Generate(cfg, rng.New(12))

	src := rng.New(12)
	got := Frost(cfg, src)
	if len(got.Sprinkles) != 0 || got.Target != 0 {
		t.Fatalf("Frost placed sprinkles: %d of %d", len(got.Sprinkles), got.Target)
	}
	got = got.Rescatter(src)
	if !slices.Equal(want.Sprinkles, got.Sprinkles) {
		t.Error("Frost followed by Rescatter should draw like Generate")
	}
}

func TestRescatterWithNewPalette(t *testing.T) {
	cfg := Default()
	base := Frost(cfg, rng.New(3))

	edited := cfg
	edited.Sprinkles = palette.MustNew("#000000")
	again := Frost(edited, rng.New(3)).Rescatter(rng.New(4))

	if !slices.Equal(base.Surface.HeightMap.Values(), again.Surface.HeightMap.Values()) {
		t.Error("palette edit changed the frosting")
	}
	for i, sp := range again.Sprinkles {
		if sp.Color != "#000000" {
			t.Errorf("sprinkle %d color = %s, want #000000", i, sp.Color)
		}
	}
}

func TestParamMapping(t *testing.T) {
	cfg := Default()
	fp := cfg.Frosting()
	if fp.Width != cfg.Width || fp.Layers != cfg.Layers || fp.Top != cfg.FrostingTop || fp.Bottom != cfg.FrostingBottom {
		t.Errorf("Frosting() = %+v", fp)
	}
	sp := cfg.Scatter()
	if sp.Density != cfg.Density || sp.AllowOverlap != cfg.AllowOverlap || !sp.Colors.Equal(cfg.Sprinkles) {
		t.Errorf("Scatter() = %+v", sp)
	}
}
