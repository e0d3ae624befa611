package sink

import (
	"bytes"
	"image"
	"image/draw"
	"image/png"

	"golang.org/x/image/vector"

	"github.com/matzehuels/frosting/pkg/core/frosting"
	"github.com/matzehuels/frosting/pkg/core/scene"
	ferrors "github.com/matzehuels/frosting/pkg/errors"
)

// RenderHeightMap renders the region sprinkles may occupy as a grayscale
// PNG: white above the surface, black below it.
func RenderHeightMap(s scene.Scene) ([]byte, error) {
	img := HeightMapMask(s.Surface.HeightMap, s.Config.Width, s.Config.Height)
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, ferrors.Wrap(ferrors.ErrCodeInternal, err, "encode height map")
	}
	return buf.Bytes(), nil
}

// HeightMapMask rasterizes the stepped outline of hm. Each column is a
// one-pixel-wide bar from the canvas top down to its surface value.
func HeightMapMask(hm frosting.HeightMap, width, height int) *image.Gray {
	dst := image.NewGray(image.Rect(0, 0, width, height))
	draw.Draw(dst, dst.Bounds(), image.Black, image.Point{}, draw.Src)
	if hm.Len() == 0 {
		return dst
	}

	var r vector.Rasterizer
	r.Reset(width, height)
	r.MoveTo(0, 0)
	for x := range hm.Len() {
		y := float32(hm.Column(x))
		r.LineTo(float32(x), y)
		r.LineTo(float32(x+1), y)
	}
	r.LineTo(float32(hm.Len()), 0)
	r.ClosePath()
	r.Draw(dst, dst.Bounds(), image.White, image.Point{})
	return dst
}
