package sink

import (
	"bytes"
	"image"
	"image/png"
	"math"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"github.com/matzehuels/frosting/pkg/core/scene"
	ferrors "github.com/matzehuels/frosting/pkg/errors"
)

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	svgOpts []SVGOption
	scale   float64
}

// WithPNGSVGOptions passes options through to the underlying SVG renderer.
func WithPNGSVGOptions(opts ...SVGOption) PNGOption {
	return func(r *pngRenderer) { r.svgOpts = opts }
}

// WithScale sets the PNG scale factor (default 1, the canvas size).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) { r.scale = s }
}

// RenderPNG rasterizes the scene's SVG in-process.
func RenderPNG(s scene.Scene, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: 1}
	for _, opt := range opts {
		opt(&r)
	}
	if r.scale <= 0 {
		return nil, ferrors.New(ferrors.ErrCodeInvalidConfig, "png scale must be positive, got %g", r.scale)
	}

	img, err := Rasterize(RenderSVG(s, r.svgOpts...), r.scale)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, ferrors.Wrap(ferrors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}

// Rasterize draws SVG bytes onto an RGBA image sized to the SVG's viewBox
// times scale.
func Rasterize(svgData []byte, scale float64) (*image.RGBA, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(svgData))
	if err != nil {
		return nil, ferrors.Wrap(ferrors.ErrCodeInternal, err, "parse svg")
	}

	w := max(int(math.Ceil(icon.ViewBox.W*scale)), 1)
	h := max(int(math.Ceil(icon.ViewBox.H*scale)), 1)
	icon.SetTarget(0, 0, float64(w), float64(h))

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, dst, dst.Bounds())
	dasher := rasterx.NewDasher(w, h, scanner)
	icon.Draw(dasher, 1.0)
	return dst, nil
}
