// Package presets holds named color schemes for the frosting, the
// background, and the sprinkle palette.
//
// Four presets are built in. User presets live in a [Store]: a TOML file for
// the CLI ([FileStore]) or a MongoDB collection for servers ([MongoStore]).
// A user preset with the same name as a built-in one shadows it.
package presets

import (
	"context"
	"slices"
	"strings"

	"github.com/matzehuels/frosting/pkg/core/palette"
	"github.com/matzehuels/frosting/pkg/core/scene"
	ferrors "github.com/matzehuels/frosting/pkg/errors"
)

// Preset is a named color scheme.
type Preset struct {
	Name           string        `toml:"name" json:"name" bson:"_id"`
	Background     palette.Color `toml:"background" json:"background" bson:"background"`
	FrostingTop    palette.Color `toml:"frosting_top" json:"frosting_top" bson:"frosting_top"`
	FrostingBottom palette.Color `toml:"frosting_bottom" json:"frosting_bottom" bson:"frosting_bottom"`
	Sprinkles      []string      `toml:"sprinkles" json:"sprinkles" bson:"sprinkles"`
}

// Store persists user presets.
type Store interface {
	List(ctx context.Context) ([]Preset, error)
	// Get returns PRESET_NOT_FOUND for unknown names.
	Get(ctx context.Context, name string) (Preset, error)
	Put(ctx context.Context, p Preset) error
	Delete(ctx context.Context, name string) error
	Close() error
}

// MintChip is chocolate chips and white flakes.
var MintChip = palette.MustNew("#5D4037", "#301E1B", "#8D6E63", "#FFFFFF", "#F0F0F0")

var builtin = []Preset{
	{"Pink Frosted Donut", "#CCA995", "#FC86D1", "#F4499C", scene.Rainbow.Strings()},
	{"White Frosted Donut", "#CCA995", "#FFFFFF", "#F0F0F0", scene.Rainbow.Strings()},
	{"Chocolate Frosted Donut", "#CCA995", "#795548", "#4E342E", scene.Rainbow.Strings()},
	{"Mint Frosted Chocolate Donut", "#3E2723", "#76D0AC", "#4DB6AC", MintChip.Strings()},
}

// DefaultName is the preset matching [scene.Default].
const DefaultName = "Pink Frosted Donut"

// Builtin returns the built-in presets in display order.
func Builtin() []Preset {
	out := make([]Preset, len(builtin))
	for i, p := range builtin {
		p.Sprinkles = slices.Clone(p.Sprinkles)
		out[i] = p
	}
	return out
}

// IsBuiltin reports whether name is a built-in preset.
func IsBuiltin(name string) bool {
	return slices.ContainsFunc(builtin, func(p Preset) bool { return p.Name == name })
}

// Validate checks the name and every color.
func (p Preset) Validate() error {
	if err := ferrors.ValidatePresetName(p.Name); err != nil {
		return err
	}
	if _, err := p.Palette(); err != nil {
		return err
	}
	for _, c := range []struct {
		field string
		c     palette.Color
	}{
		{"background", p.Background},
		{"frosting top", p.FrostingTop},
		{"frosting bottom", p.FrostingBottom},
	} {
		if err := ferrors.ValidateHexColor(c.field, string(c.c)); err != nil {
			return err
		}
	}
	return nil
}

// Palette returns the sprinkle palette.
func (p Preset) Palette() (palette.Palette, error) {
	if len(p.Sprinkles) == 0 {
		return palette.Palette{}, ferrors.New(ferrors.ErrCodeInvalidPreset, "preset %q has no sprinkle colors", p.Name)
	}
	return palette.New(p.Sprinkles...)
}

// Apply returns cfg with the preset's colors. Shape parameters are kept.
func (p Preset) Apply(cfg scene.Config) (scene.Config, error) {
	pal, err := p.Palette()
	if err != nil {
		return cfg, err
	}
	cfg.Background = normalize(p.Background)
	cfg.FrostingTop = normalize(p.FrostingTop)
	cfg.FrostingBottom = normalize(p.FrostingBottom)
	cfg.Sprinkles = pal
	return cfg, nil
}

// FromConfig captures the colors of cfg as a preset.
func FromConfig(name string, cfg scene.Config) Preset {
	return Preset{
		Name:           name,
		Background:     cfg.Background,
		FrostingTop:    cfg.FrostingTop,
		FrostingBottom: cfg.FrostingBottom,
		Sprinkles:      cfg.Sprinkles.Strings(),
	}
}

func normalize(c palette.Color) palette.Color {
	return palette.Color(strings.ToUpper(string(c)))
}

// Get looks name up in store, falling back to the built-in presets. A nil
// store means built-ins only.
func Get(ctx context.Context, store Store, name string) (Preset, error) {
	if store != nil {
		p, err := store.Get(ctx, name)
		if err == nil {
			return p, nil
		}
		if !ferrors.Is(err, ferrors.ErrCodePresetNotFound) {
			return Preset{}, err
		}
	}
	for _, p := range Builtin() {
		if p.Name == name {
			return p, nil
		}
	}
	return Preset{}, notFound(name)
}

// All lists built-in presets followed by user presets. A user preset with a
// built-in name replaces it in place.
func All(ctx context.Context, store Store) ([]Preset, error) {
	all := Builtin()
	if store == nil {
		return all, nil
	}
	user, err := store.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range user {
		if i := slices.IndexFunc(all, func(b Preset) bool { return b.Name == p.Name }); i >= 0 {
			all[i] = p
			continue
		}
		all = append(all, p)
	}
	return all, nil
}

func notFound(name string) error {
	return ferrors.New(ferrors.ErrCodePresetNotFound, "preset %q not found", name)
}
