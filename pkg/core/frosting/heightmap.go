package frosting

import (
	"math"

	"github.com/matzehuels/frosting/pkg/core/geom"
)

// HeightMap stores, for each pixel column, the furthest-down Y reached by
// any frosting curve. Entries start at 0 (canvas top) and only grow.
type HeightMap struct {
	cols   []float64
	height float64
}

// NewHeightMap returns a zeroed map for a width×height canvas.
func NewHeightMap(width, height int) HeightMap {
	return HeightMap{cols: make([]float64, max(width, 0)), height: float64(height)}
}

// Len returns the number of columns (the canvas width).
func (h HeightMap) Len() int { return len(h.cols) }

// Values returns a copy of the per-column surface values.
func (h HeightMap) Values() []float64 {
	out := make([]float64, len(h.cols))
	copy(out, h.cols)
	return out
}

// Column returns the surface value of column i.
func (h HeightMap) Column(i int) float64 { return h.cols[i] }

// Record raises the column under x to y if y is lower on the canvas than
// what is stored. Points outside [0, width) are ignored and y is clamped to
// the canvas height.
func (h HeightMap) Record(x, y float64) {
	i := int(math.Floor(x))
	if i < 0 || i >= len(h.cols) {
		return
	}
	y = min(y, h.height)
	if y > h.cols[i] {
		h.cols[i] = y
	}
}

// Clone returns an independent copy of the map.
func (h HeightMap) Clone() HeightMap {
	return HeightMap{cols: h.Values(), height: h.height}
}

// Trace samples every cubic segment of path and records the samples.
// Straight segments are not sampled; they only connect the curve to the
// off-canvas edges of a layer.
func (h HeightMap) Trace(path geom.Path) {
	var cur geom.Point
	for _, c := range path.Commands() {
		switch c.Op {
		case geom.OpMove, geom.OpLine:
			cur = c.Pts[0]
		case geom.OpCube:
			for s := 0; s <= samplesPerSegment; s++ {
				pt := geom.CubicAt(float64(s)/samplesPerSegment, cur, c.Pts[0], c.Pts[1], c.Pts[2])
				h.Record(pt.X, pt.Y)
			}
			cur = c.Pts[2]
		}
	}
}

// Fill copies the left neighbour into columns still at 0. Columns left of
// the first non-zero value stay at 0.
func (h HeightMap) Fill() {
	for x := 1; x < len(h.cols); x++ {
		if h.cols[x] == 0 && h.cols[x-1] > 0 {
			h.cols[x] = h.cols[x-1]
		}
	}
}

// At returns the surface under x, or 0 when x is off the canvas.
func (h HeightMap) At(x float64) float64 {
	i := int(math.Floor(x))
	if i < 0 || i >= len(h.cols) {
		return 0
	}
	return h.cols[i]
}

// Above reports whether (x, y) lies strictly above the surface, i.e. inside
// the frosting.
func (h HeightMap) Above(x, y float64) bool {
	return y < h.At(x)
}
