package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/frosting/pkg/core/render"
	"github.com/matzehuels/frosting/pkg/core/render/sink"
	"github.com/matzehuels/frosting/pkg/core/scene"
	"github.com/matzehuels/frosting/pkg/observability"
)

// Render generates output artifacts in the requested formats.
func Render(ctx context.Context, s scene.Scene, seed uint64, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		start := time.Now()
		data, err := RenderFormat(s, seed, format, opts)
		observability.Pipeline().OnRender(ctx, format, len(data), time.Since(start), err)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// RenderFormat renders a single format.
func RenderFormat(s scene.Scene, seed uint64, format string, opts Options) ([]byte, error) {
	svgOpts := buildSVGOptions(opts)
	switch format {
	case render.FormatSVG:
		return sink.RenderSVG(s, svgOpts...), nil
	case render.FormatPNG:
		return sink.RenderPNG(s, sink.WithScale(opts.Scale), sink.WithPNGSVGOptions(svgOpts...))
	case render.FormatPDF:
		return sink.RenderPDF(s, sink.WithPDFSVGOptions(svgOpts...))
	case render.FormatJSON:
		return sink.RenderJSON(s, sink.WithJSONSeed(seed), sink.WithJSONHeightMap())
	case render.FormatHeightMap:
		return sink.RenderHeightMap(s)
	}
	return nil, render.ValidateFormat(format)
}

func buildSVGOptions(opts Options) []sink.SVGOption {
	var svgOpts []sink.SVGOption
	if opts.Title != "" {
		svgOpts = append(svgOpts, sink.WithTitle(opts.Title))
	}
	if opts.NoSprinkles {
		svgOpts = append(svgOpts, sink.WithoutSprinkles())
	}
	if opts.SurfaceLine != "" {
		svgOpts = append(svgOpts, sink.WithSurfaceLine(opts.SurfaceLine.String()))
	}
	return svgOpts
}
