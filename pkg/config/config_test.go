package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/frosting/pkg/core/palette"
	"github.com/matzehuels/frosting/pkg/core/scene"
	ferrors "github.com/matzehuels/frosting/pkg/errors"
	"github.com/matzehuels/frosting/pkg/presets"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMissing(t *testing.T) {
	f, err := Load(filepath.Join(t.TempDir(), "none.toml"))
	if err != nil {
		t.Fatal(err)
	}
	cfg, err := f.Resolve(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	def := scene.Default()
	if cfg.Width != def.Width || cfg.Density != def.Density || !cfg.Sprinkles.Equal(def.Sprinkles) {
		t.Errorf("empty file resolved to %+v, want defaults", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"syntax", "width = "},
		{"unknown key", "widht = 10"},
		{"wrong type", `width = "wide"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.body))
			if !ferrors.Is(err, ferrors.ErrCodeInvalidConfig) {
				t.Errorf("Load = %v, want INVALID_CONFIG", err)
			}
		})
	}
}

func TestResolvePrecedence(t *testing.T) {
	path := writeFile(t, `
preset = "Chocolate Frosted Donut"
width = 1200
density = 35.5
allow_overlap = true
frosting_top = "#abcdef"
`)
	f, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	cfg, err := f.Resolve(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Width != 1200 || cfg.Height != 600 {
		t.Errorf("size = %dx%d, want 1200x600", cfg.Width, cfg.Height)
	}
	if cfg.Density != 35.5 || !cfg.AllowOverlap {
		t.Errorf("density/overlap = %g/%v", cfg.Density, cfg.AllowOverlap)
	}
	if cfg.FrostingTop != "#ABCDEF" {
		t.Errorf("FrostingTop = %s, want the file's color over the preset", cfg.FrostingTop)
	}
	if cfg.FrostingBottom != "#4E342E" {
		t.Errorf("FrostingBottom = %s, want the preset's", cfg.FrostingBottom)
	}
}

func TestResolveUserPreset(t *testing.T) {
	ctx := context.Background()
	store := presets.NewFileStore(filepath.Join(t.TempDir(), PresetsName))
	err := store.Put(ctx, presets.Preset{
		Name:           "Lemon",
		Background:     "#CCA995",
		FrostingTop:    "#FFF59D",
		FrostingBottom: "#FBC02D",
		Sprinkles:      []string{"#FFFFFF"},
	})
	if err != nil {
		t.Fatal(err)
	}

	cfg, err := (&File{Preset: "Lemon"}).Resolve(ctx, store)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.FrostingTop != "#FFF59D" || cfg.Sprinkles.Len() != 1 {
		t.Errorf("resolved = %+v", cfg)
	}

	if _, err := (&File{Preset: "Nope"}).Resolve(ctx, store); !ferrors.Is(err, ferrors.ErrCodePresetNotFound) {
		t.Errorf("unknown preset = %v, want PRESET_NOT_FOUND", err)
	}
}

func TestResolveBadColor(t *testing.T) {
	bad := "pink"
	_, err := (&File{Background: &bad}).Resolve(context.Background(), nil)
	if !ferrors.Is(err, ferrors.ErrCodeInvalidColor) {
		t.Errorf("Resolve = %v, want INVALID_COLOR", err)
	}
}

func TestSaveLoadPinsEverything(t *testing.T) {
	cfg := scene.Default()
	cfg.Width, cfg.Layers, cfg.Overlap = 640, 2, 0.25
	cfg.Sprinkles = palette.MustNew("#000000", "#FFFFFF")

	path := filepath.Join(t.TempDir(), "sub", FileName)
	if err := Save(path, FromConfig(cfg)); err != nil {
		t.Fatal(err)
	}
	f, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	got, err := f.Resolve(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if got.Width != 640 || got.Layers != 2 || got.Overlap != 0.25 {
		t.Errorf("shape = %+v", got)
	}
	if !got.Sprinkles.Equal(cfg.Sprinkles) {
		t.Errorf("sprinkles = %v", got.Sprinkles.Strings())
	}
}

func TestEditPalette(t *testing.T) {
	ctx := context.Background()
	f := &File{Preset: "Mint Frosted Chocolate Donut"}

	pal, err := f.EditPalette(ctx, nil, func(p palette.Palette) (palette.Palette, error) {
		return p.With(palette.DefaultAddition), nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if pal.Len() != 6 || len(f.Sprinkles) != 6 {
		t.Fatalf("len = %d/%d, want 6", pal.Len(), len(f.Sprinkles))
	}

	cfg, err := f.Resolve(ctx, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.Sprinkles.Equal(pal) {
		t.Errorf("edited palette lost after resolve: %v", cfg.Sprinkles.Strings())
	}

	one := &File{Sprinkles: []string{"#FFFFFF"}}
	_, err = one.EditPalette(ctx, nil, func(p palette.Palette) (palette.Palette, error) {
		return p.Remove(0)
	})
	if err == nil {
		t.Error("removing the last color succeeded")
	}
	if len(one.Sprinkles) != 1 {
		t.Errorf("failed edit changed the file: %v", one.Sprinkles)
	}
}

func TestDirHonorsXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	dir, err := Dir()
	if err != nil {
		t.Fatal(err)
	}
	if dir != filepath.Join("/tmp/xdg", "frosting") {
		t.Errorf("Dir() = %q", dir)
	}
	p, _ := PresetsPath()
	if p != filepath.Join("/tmp/xdg", "frosting", PresetsName) {
		t.Errorf("PresetsPath() = %q", p)
	}
}
