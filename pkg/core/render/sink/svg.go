package sink

import (
	"bytes"
	"fmt"

	svg "github.com/ajstarks/svgo"

	"github.com/matzehuels/frosting/pkg/core/frosting"
	"github.com/matzehuels/frosting/pkg/core/scene"
	"github.com/matzehuels/frosting/pkg/core/sprinkles"
)

// SprinkleLayerID is the id of the group holding every sprinkle.
const SprinkleLayerID = "sprinkle-layer"

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	title       string
	sprinkles   bool
	surfaceLine string
}

// WithTitle adds a <title> element.
func WithTitle(s string) SVGOption { return func(r *svgRenderer) { r.title = s } }

// WithoutSprinkles renders the frosting only.
func WithoutSprinkles() SVGOption { return func(r *svgRenderer) { r.sprinkles = false } }

// WithSurfaceLine outlines the height map in the given color, for inspecting
// where sprinkles may land.
func WithSurfaceLine(color string) SVGOption {
	return func(r *svgRenderer) { r.surfaceLine = color }
}

// RenderSVG draws the scene: background, frosting layers in draw order, then
// the sprinkle group on top.
func RenderSVG(s scene.Scene, opts ...SVGOption) []byte {
	r := svgRenderer{sprinkles: true}
	for _, opt := range opts {
		opt(&r)
	}

	cfg := s.Config
	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Startview(cfg.Width, cfg.Height, 0, 0, cfg.Width, cfg.Height)
	if r.title != "" {
		canvas.Title(r.title)
	}

	canvas.Rect(0, 0, cfg.Width, cfg.Height, fill(cfg.Background.String()))

	for _, l := range s.Surface.Layers {
		canvas.Path(l.Path.String(), fill(l.Color.String()), `stroke="none"`)
	}

	if r.surfaceLine != "" {
		renderSurfaceLine(canvas, s.Surface.HeightMap, r.surfaceLine)
	}

	if r.sprinkles {
		canvas.Gid(SprinkleLayerID)
		for _, sp := range s.Sprinkles {
			renderSprinkle(canvas, sp)
		}
		canvas.Gend()
	}

	canvas.End()
	return buf.Bytes()
}

func renderSprinkle(canvas *svg.SVG, sp sprinkles.Sprinkle) {
	canvas.Path(sp.Shape.Path(),
		`fill="none"`,
		fmt.Sprintf(`stroke="%s"`, sp.Color),
		fmt.Sprintf(`stroke-width="%g"`, sprinkles.StrokeWidth),
		`stroke-linecap="round"`,
		fmt.Sprintf(`transform="%s"`, sp.Transform()),
	)
}

func renderSurfaceLine(canvas *svg.SVG, hm frosting.HeightMap, color string) {
	n := hm.Len()
	if n == 0 {
		return
	}
	xs := make([]int, 0, n+1)
	ys := make([]int, 0, n+1)
	for x := range n {
		xs = append(xs, x)
		ys = append(ys, int(hm.Column(x)))
	}
	xs = append(xs, n)
	ys = append(ys, int(hm.Column(n-1)))
	canvas.Polyline(xs, ys, `fill="none"`, `stroke="`+color+`"`, `stroke-width="1"`)
}

func fill(color string) string {
	return `fill="` + color + `"`
}
