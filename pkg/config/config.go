// Package config reads and writes the frosting.toml scene file.
//
// Every field of the file is optional. A scene configuration is resolved in
// layers: the built-in defaults, then the colors of the named preset, then
// the fields set in the file. Command-line flags and query parameters are
// applied on top by the caller.
//
//	# frosting.toml
//	preset = "Chocolate Frosted Donut"
//	width = 1200
//	height = 800
//	density = 35
//	allow_overlap = true
package config

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/frosting/pkg/core/palette"
	"github.com/matzehuels/frosting/pkg/core/scene"
	ferrors "github.com/matzehuels/frosting/pkg/errors"
	"github.com/matzehuels/frosting/pkg/presets"
)

const appName = "frosting"

// File names below [Dir].
const (
	FileName    = "frosting.toml"
	PresetsName = "presets.toml"
)

// File mirrors frosting.toml. Nil fields fall through to the defaults.
type File struct {
	Preset string `toml:"preset,omitempty"`

	Width        *int     `toml:"width,omitempty"`
	Height       *int     `toml:"height,omitempty"`
	Layers       *int     `toml:"layers,omitempty"`
	DripHeight   *float64 `toml:"drip_height,omitempty"`
	Overlap      *float64 `toml:"overlap,omitempty"`
	Complexity   *int     `toml:"complexity,omitempty"`
	Density      *float64 `toml:"density,omitempty"`
	AllowOverlap *bool    `toml:"allow_overlap,omitempty"`

	Background     *string  `toml:"background,omitempty"`
	FrostingTop    *string  `toml:"frosting_top,omitempty"`
	FrostingBottom *string  `toml:"frosting_bottom,omitempty"`
	Sprinkles      []string `toml:"sprinkles,omitempty"`
}

// Dir returns the configuration directory, honoring XDG_CONFIG_HOME.
func Dir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// DefaultPath returns the path of frosting.toml.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, FileName), nil
}

// PresetsPath returns the path of the user preset file.
func PresetsPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, PresetsName), nil
}

// Load reads path. A missing file yields an empty File.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &File{}, nil
	}
	if err != nil {
		return nil, err
	}
	var f File
	md, err := toml.Decode(string(data), &f)
	if err != nil {
		return nil, ferrors.Wrap(ferrors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, ferrors.New(ferrors.ErrCodeInvalidConfig, "%s: unknown key %q", path, undecoded[0].String())
	}
	return &f, nil
}

// Save writes f to path, creating parent directories.
func Save(path string, f *File) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(f); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

// Default returns the resolved default scene configuration.
func Default() scene.Config { return scene.Default() }

// FromConfig returns a File that pins every field of cfg.
func FromConfig(cfg scene.Config) *File {
	bg, top, bottom := string(cfg.Background), string(cfg.FrostingTop), string(cfg.FrostingBottom)
	return &File{
		Width:          &cfg.Width,
		Height:         &cfg.Height,
		Layers:         &cfg.Layers,
		DripHeight:     &cfg.DripHeight,
		Overlap:        &cfg.Overlap,
		Complexity:     &cfg.Complexity,
		Density:        &cfg.Density,
		AllowOverlap:   &cfg.AllowOverlap,
		Background:     &bg,
		FrostingTop:    &top,
		FrostingBottom: &bottom,
		Sprinkles:      cfg.Sprinkles.Strings(),
	}
}

// Resolve layers the preset and the file over the defaults. The store may
// be nil, in which case only built-in presets are known. The result is not
// validated.
func (f *File) Resolve(ctx context.Context, store presets.Store) (scene.Config, error) {
	cfg := scene.Default()
	if f.Preset != "" {
		p, err := presets.Get(ctx, store, f.Preset)
		if err != nil {
			return cfg, err
		}
		if cfg, err = p.Apply(cfg); err != nil {
			return cfg, err
		}
	}
	if err := f.Overlay(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Overlay copies the fields set in f onto cfg.
func (f *File) Overlay(cfg *scene.Config) error {
	setInt(&cfg.Width, f.Width)
	setInt(&cfg.Height, f.Height)
	setInt(&cfg.Layers, f.Layers)
	setFloat(&cfg.DripHeight, f.DripHeight)
	setFloat(&cfg.Overlap, f.Overlap)
	setInt(&cfg.Complexity, f.Complexity)
	setFloat(&cfg.Density, f.Density)
	if f.AllowOverlap != nil {
		cfg.AllowOverlap = *f.AllowOverlap
	}

	for _, c := range []struct {
		dst *palette.Color
		src *string
	}{
		{&cfg.Background, f.Background},
		{&cfg.FrostingTop, f.FrostingTop},
		{&cfg.FrostingBottom, f.FrostingBottom},
	} {
		if c.src == nil {
			continue
		}
		col, err := palette.Parse(*c.src)
		if err != nil {
			return err
		}
		*c.dst = col
	}

	if len(f.Sprinkles) > 0 {
		pal, err := palette.New(f.Sprinkles...)
		if err != nil {
			return err
		}
		cfg.Sprinkles = pal
	}
	return nil
}

// EditPalette resolves the current sprinkle palette, applies edit, and pins
// the result in f.Sprinkles.
func (f *File) EditPalette(ctx context.Context, store presets.Store, edit func(palette.Palette) (palette.Palette, error)) (palette.Palette, error) {
	cfg, err := f.Resolve(ctx, store)
	if err != nil {
		return palette.Palette{}, err
	}
	pal, err := edit(cfg.Sprinkles)
	if err != nil {
		return palette.Palette{}, err
	}
	f.Sprinkles = pal.Strings()
	return pal, nil
}

func setInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}

func setFloat(dst *float64, src *float64) {
	if src != nil {
		*dst = *src
	}
}
