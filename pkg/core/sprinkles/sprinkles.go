// Package sprinkles scatters sprinkles over a frosting surface.
//
// Placement is rejection sampling: each requested sprinkle gets up to
// [MaxAttempts] random candidates. A candidate must lie strictly above the
// height map and, unless overlap is allowed, must not touch any sprinkle
// already placed, tested from both sides since the contact thresholds scale
// with the sprinkle being tested. Slots that run out of attempts are skipped, so the result
// may hold fewer sprinkles than requested.
package sprinkles

import (
	"math"

	"github.com/matzehuels/frosting/pkg/core/frosting"
	"github.com/matzehuels/frosting/pkg/core/geom"
	"github.com/matzehuels/frosting/pkg/core/palette"
	"github.com/matzehuels/frosting/pkg/core/rng"
)

const (
	// MaxAttempts bounds the candidates tried per sprinkle slot.
	MaxAttempts = 50

	// areaPerSprinkle is the canvas area per sprinkle at 100% density.
	areaPerSprinkle        = 350.0
	areaPerSprinkleOverlap = 3000.0

	// BaseLength is the unscaled length of a sprinkle stroke.
	BaseLength = 30.0
	// StrokeWidth is the rendered stroke width.
	StrokeWidth = 8.0

	nearRadius     = 35.0
	contactRadius  = 8.0
	contactPadding = 2.0
)

// Sprinkle is one placed mark.
type Sprinkle struct {
	Shape    Shape         `json:"shape"`
	Color    palette.Color `json:"color"`
	X        float64       `json:"x"`
	Y        float64       `json:"y"`
	Rotation float64       `json:"rotation"` // degrees
	Scale    float64       `json:"scale"`
	Stretch  float64       `json:"stretch"`
}

// Params are the inputs of the scatterer.
type Params struct {
	Width, Height int
	Density       float64 // percent
	AllowOverlap  bool
	Colors        palette.Palette
}

// Target returns how many sprinkles a pass tries to place.
func (p Params) Target() int {
	k := areaPerSprinkle
	if p.AllowOverlap {
		k = areaPerSprinkleOverlap
	}
	area := float64(p.Width) * float64(p.Height)
	return int(math.Floor(area / k * (p.Density / 100)))
}

// Scatter places sprinkles above the surface described by hm. Colors must
// not be empty.
func Scatter(p Params, hm frosting.HeightMap, src rng.Source) []Sprinkle {
	target := p.Target()
	placed := make([]Sprinkle, 0, max(target, 0))

	for range target {
		for range MaxAttempts {
			x := src.Float64() * float64(p.Width)
			y := src.Float64() * float64(p.Height)
			if !hm.Above(x, y) {
				continue
			}

			c := Sprinkle{
				Shape:    Shapes[rng.Index(src, len(Shapes))],
				Color:    p.Colors.At(rng.Index(src, p.Colors.Len())),
				X:        x,
				Y:        y,
				Rotation: rng.Range(src, 0, 360),
				Scale:    rng.Range(src, 0.8, 1.2),
				Stretch:  rng.Range(src, 0.85, 1.3),
			}
			if p.AllowOverlap || !Clashes(c, placed) {
				placed = append(placed, c)
				break
			}
		}
	}
	return placed
}

// Length returns the stroke length of s.
func (s Sprinkle) Length() float64 {
	return BaseLength * s.Scale * s.Stretch
}

// Endpoints returns the ends of the segment that approximates s.
func (s Sprinkle) Endpoints() (geom.Point, geom.Point) {
	c := geom.Pt(s.X, s.Y)
	d := geom.Polar(s.Length()/2, s.Rotation)
	return c.Sub(d), c.Add(d)
}

// Collides reports whether candidate touches any sprinkle in placed. Both
// are treated as thick segments; thresholds scale with the candidate, so
// Collides(a, {b}) and Collides(b, {a}) may disagree.
func Collides(candidate Sprinkle, placed []Sprinkle) bool {
	for _, other := range placed {
		if touches(candidate, other) {
			return true
		}
	}
	return false
}

// Clashes reports whether s and any sprinkle in placed collide when tested
// from either side.
func Clashes(s Sprinkle, placed []Sprinkle) bool {
	for _, other := range placed {
		if touches(s, other) || touches(other, s) {
			return true
		}
	}
	return false
}

func touches(candidate, other Sprinkle) bool {
	near := nearRadius * candidate.Scale * 2
	if geom.DistSq(geom.Pt(candidate.X, candidate.Y), geom.Pt(other.X, other.Y)) > near*near {
		return false
	}
	contact := contactRadius*candidate.Scale + contactPadding
	c1, c2 := candidate.Endpoints()
	o1, o2 := other.Endpoints()
	return geom.SegmentDistSq(o1, o2, c1, c2) < contact*contact
}

// Transform returns the SVG transform that maps the shape's path onto s.
func (s Sprinkle) Transform() string {
	return "translate(" + ftoa(s.X) + ", " + ftoa(s.Y) + ") rotate(" + ftoa(s.Rotation) +
		") scale(" + ftoa(s.Scale*s.Stretch) + ", " + ftoa(s.Scale) + ")"
}
