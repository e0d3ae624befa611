package frosting

import (
	"github.com/matzehuels/frosting/pkg/core/geom"
	"github.com/matzehuels/frosting/pkg/core/palette"
	"github.com/matzehuels/frosting/pkg/core/rng"
)

const (
	// BleedX is how far knots extend past the left and right canvas edges.
	BleedX = 100.0
	// BleedY is how far above the canvas the fill region is closed.
	BleedY = 500.0

	// minDripRatio is the share of hMax kept as the shallowest layer's depth.
	minDripRatio = 0.1
	// overlapCompression scales how much the overlap factor shrinks layer spacing.
	overlapCompression = 0.8
	// samplesPerSegment is the number of intervals each cubic is sampled at
	// when recording the height map (samplesPerSegment+1 points).
	samplesPerSegment = 20
)

// Params are the inputs of the synthesizer.
type Params struct {
	Width, Height int
	Layers        int
	DripHeight    float64 // percent of Height the deepest layer reaches
	Overlap       float64 // 0..1, compresses spacing between layers
	Complexity    int     // knots per layer after the left bleed knot
	Top, Bottom   palette.Color
}

// Layer is one generated frosting layer.
type Layer struct {
	Index int // generation order; higher indices are drawn on top
	BaseY float64
	Knots []geom.Point
	Color palette.Color
	Path  geom.Path
}

// Surface is the synthesizer's output.
type Surface struct {
	Layers    []Layer
	HeightMap HeightMap
	MaxDepth  float64 // hMax
}

// MaxDepth returns hMax, the deepest extent a layer's base line may reach.
func (p Params) MaxDepth() float64 {
	return float64(p.Height) * (p.DripHeight / 100)
}

// StepSize returns the vertical distance between consecutive layer base lines.
func (p Params) StepSize() float64 {
	if p.Layers <= 1 {
		return 0
	}
	hMax := p.MaxDepth()
	spread := hMax - hMax*minDripRatio
	raw := spread / float64(p.Layers-1)
	return raw * (1 - p.Overlap*overlapCompression)
}

// Amplitude returns the maximum knot displacement from a layer's base line.
func (p Params) Amplitude() float64 {
	return p.MaxDepth()/25 + float64(p.Complexity)*4
}

// Synthesize generates all frosting layers and the height map. Layers are
// returned in draw order.
func Synthesize(p Params, src rng.Source) Surface {
	hm := NewHeightMap(p.Width, p.Height)
	hMax := p.MaxDepth()
	step := p.StepSize()

	layers := make([]Layer, 0, max(p.Layers, 0))
	for i := 0; i < p.Layers; i++ {
		depth := p.Layers - 1 - i
		t := 0.0
		if p.Layers > 1 {
			t = float64(depth) / float64(p.Layers-1)
		}
		baseY := hMax - step*float64(i)

		knots := p.knots(baseY, src)
		layers = append(layers, Layer{
			Index: i,
			BaseY: baseY,
			Knots: knots,
			Color: palette.Interpolate(p.Top, p.Bottom, t),
			Path:  buildPath(knots, float64(p.Width)),
		})
		hm.Trace(layers[i].Path)
	}
	hm.Fill()

	return Surface{Layers: layers, HeightMap: hm, MaxDepth: hMax}
}

// knots returns the left bleed knot at baseY followed by Complexity knots
// spread evenly to the right bleed edge with random vertical offsets.
func (p Params) knots(baseY float64, src rng.Source) []geom.Point {
	knots := make([]geom.Point, 0, max(p.Complexity, 0)+1)
	knots = append(knots, geom.Pt(-BleedX, baseY))
	if p.Complexity <= 0 {
		return knots
	}

	right := float64(p.Width) + BleedX
	segment := (float64(p.Width) + 2*BleedX) / float64(p.Complexity)
	amp := p.Amplitude()

	for c := 0; c < p.Complexity; c++ {
		x := -BleedX + float64(c+1)*segment
		if c == p.Complexity-1 {
			x = right
		}
		knots = append(knots, geom.Pt(x, baseY+rng.Range(src, -amp, amp)))
	}
	return knots
}

// buildPath smooths the knots into a closed fill path.
func buildPath(knots []geom.Point, width float64) geom.Path {
	var path geom.Path
	path.MoveTo(geom.Pt(-BleedX, -BleedY))
	path.LineTo(knots[0])

	last := len(knots) - 1
	for k := 0; k < last; k++ {
		p1, p2 := knots[k], knots[k+1]
		p0, p3 := p1, p2
		if k > 0 {
			p0 = knots[k-1]
		}
		if k < last-1 {
			p3 = knots[k+2]
		}
		c1, c2 := geom.CatmullRom(p0, p1, p2, p3)
		path.CubeTo(c1, c2, p2)
	}

	path.LineTo(geom.Pt(width+BleedX, -BleedY))
	path.Close()
	return path
}
