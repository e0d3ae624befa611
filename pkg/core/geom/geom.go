// Package geom provides the small amount of 2D geometry the generator needs:
// points, squared distances, cubic Bézier evaluation, Catmull-Rom control
// points, and the closed vector paths handed to renderers.
package geom

import "math"

// epsilon floors near-zero squared lengths and determinants in
// [SegmentDistSq] so degenerate segments collapse to points instead of
// dividing by zero.
const epsilon = 1e-6

// Point is a position in canvas coordinates (Y grows downward).
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is shorthand for Point{x, y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Add returns p+q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns p-q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Scale returns p scaled by s.
func (p Point) Scale(s float64) Point { return Point{p.X * s, p.Y * s} }

// DistSq returns the squared Euclidean distance between p and q.
func DistSq(p, q Point) float64 {
	dx, dy := p.X-q.X, p.Y-q.Y
	return dx*dx + dy*dy
}

// SegmentDistSq returns the minimum squared distance between segment p1-p2
// and segment p3-p4. Both interpolation parameters are clamped to [0, 1].
func SegmentDistSq(p1, p2, p3, p4 Point) float64 {
	d21 := p2.Sub(p1)
	d43 := p4.Sub(p3)
	d13 := p1.Sub(p3)

	a := max(d21.X*d21.X+d21.Y*d21.Y, epsilon)
	b := max(d43.X*d43.X+d43.Y*d43.Y, epsilon)

	r := d21.X*d43.X + d21.Y*d43.Y
	s := d21.X*d13.X + d21.Y*d13.Y
	t := d43.X*d13.X + d43.Y*d13.Y

	denom := max(a*b-r*r, epsilon)

	u1 := clamp01((r*t - s*b) / denom)
	// u2 is recomputed from the clamped u1 so the second closest point is
	// the projection onto p3-p4 of the first one.
	u2 := clamp01((t + u1*r) / b)

	q1 := p1.Add(d21.Scale(u1))
	q2 := p3.Add(d43.Scale(u2))
	return DistSq(q1, q2)
}

// CubicAt evaluates the cubic Bézier p0,p1,p2,p3 at parameter t.
func CubicAt(t float64, p0, p1, p2, p3 Point) Point {
	mt := 1 - t
	a := mt * mt * mt
	b := 3 * mt * mt * t
	c := 3 * mt * t * t
	d := t * t * t
	return Point{
		X: a*p0.X + b*p1.X + c*p2.X + d*p3.X,
		Y: a*p0.Y + b*p1.Y + c*p2.Y + d*p3.Y,
	}
}

// CatmullRom returns the two Bézier control points of the segment p1-p2
// given its neighbours p0 and p3. Tangents are scaled by 1/6.
func CatmullRom(p0, p1, p2, p3 Point) (c1, c2 Point) {
	c1 = p1.Add(p2.Sub(p0).Scale(1.0 / 6.0))
	c2 = p2.Sub(p3.Sub(p1).Scale(1.0 / 6.0))
	return c1, c2
}

// Polar returns the offset of length r in direction deg (degrees).
func Polar(r, deg float64) Point {
	rad := deg * math.Pi / 180
	return Point{r * math.Cos(rad), r * math.Sin(rad)}
}

func clamp01(v float64) float64 {
	return max(0, min(1, v))
}
