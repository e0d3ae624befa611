// Package palette holds the color values used by a scene: validated hex
// colors, linear interpolation between frosting colors, and the ordered
// sprinkle palette.
//
// A [Palette] is never modified in place. Editing operations return a new
// palette so a renderer holding the old one is unaffected.
package palette

import (
	"slices"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	ferrors "github.com/matzehuels/frosting/pkg/errors"
)

// Color is a normalized "#RRGGBB" color with upper-case hex digits.
type Color string

// DefaultAddition is the color appended when the user adds a sprinkle color
// without choosing one.
const DefaultAddition Color = "#FFFFFF"

// Parse validates s as #RRGGBB and normalizes it.
func Parse(s string) (Color, error) {
	if err := ferrors.ValidateHexColor("color", s); err != nil {
		return "", err
	}
	return Color(strings.ToUpper(s)), nil
}

// MustParse is like Parse but panics on malformed input. It is intended for
// package-level tables.
func MustParse(s string) Color {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

// String returns the #RRGGBB form.
func (c Color) String() string { return string(c) }

// RGB returns the color's channels in [0, 1].
func (c Color) RGB() colorful.Color {
	col, err := colorful.Hex(string(c))
	if err != nil {
		return colorful.Color{}
	}
	return col
}

// RGBA8 returns 8-bit channels with full opacity.
func (c Color) RGBA8() (r, g, b, a uint8) {
	r, g, b = c.RGB().RGB255()
	return r, g, b, 0xff
}

// Interpolate blends a toward b by t in [0, 1]; t is clamped. The result is
// exact at both endpoints and each channel moves monotonically with t.
func Interpolate(a, b Color, t float64) Color {
	t = max(0, min(1, t))
	mixed := a.RGB().BlendRgb(b.RGB(), t)
	return Color(strings.ToUpper(mixed.Hex()))
}

// Palette is an ordered, index-addressable list of sprinkle colors.
type Palette struct {
	colors []Color
}

// New builds a palette from hex strings.
func New(hex ...string) (Palette, error) {
	colors := make([]Color, 0, len(hex))
	for i, h := range hex {
		c, err := Parse(h)
		if err != nil {
			return Palette{}, ferrors.Wrap(ferrors.ErrCodeInvalidColor, err, "sprinkle color %d", i)
		}
		colors = append(colors, c)
	}
	return Palette{colors: colors}, nil
}

// MustNew is like New but panics on malformed input.
func MustNew(hex ...string) Palette {
	p, err := New(hex...)
	if err != nil {
		panic(err)
	}
	return p
}

// Len returns the number of colors.
func (p Palette) Len() int { return len(p.colors) }

// At returns the color at index i.
func (p Palette) At(i int) Color { return p.colors[i] }

// Colors returns a copy of the colors.
func (p Palette) Colors() []Color { return slices.Clone(p.colors) }

// Strings returns the colors as hex strings.
func (p Palette) Strings() []string {
	out := make([]string, len(p.colors))
	for i, c := range p.colors {
		out[i] = string(c)
	}
	return out
}

// Equal reports whether both palettes hold the same colors in the same order.
func (p Palette) Equal(q Palette) bool { return slices.Equal(p.colors, q.colors) }

// With returns a new palette with c appended.
func (p Palette) With(c Color) Palette {
	return Palette{colors: append(slices.Clone(p.colors), c)}
}

// Set returns a new palette with index i replaced by c.
func (p Palette) Set(i int, c Color) (Palette, error) {
	if err := p.checkIndex(i); err != nil {
		return p, err
	}
	colors := slices.Clone(p.colors)
	colors[i] = c
	return Palette{colors: colors}, nil
}

// Remove returns a new palette without index i. The last remaining color
// cannot be removed.
func (p Palette) Remove(i int) (Palette, error) {
	if err := p.checkIndex(i); err != nil {
		return p, err
	}
	if len(p.colors) == 1 {
		return p, ferrors.New(ferrors.ErrCodeInvalidIndex, "cannot remove the last sprinkle color")
	}
	return Palette{colors: slices.Delete(slices.Clone(p.colors), i, i+1)}, nil
}

func (p Palette) checkIndex(i int) error {
	if i < 0 || i >= len(p.colors) {
		return ferrors.New(ferrors.ErrCodeInvalidIndex, "color index %d out of range [0, %d)", i, len(p.colors))
	}
	return nil
}
