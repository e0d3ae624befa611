// Package sink provides output format renderers for generated scenes.
//
// # Overview
//
// A "sink" turns a [scene.Scene] into bytes. This package provides:
//
//   - SVG: the scene as vector paths, written with svgo
//   - PNG: the SVG rasterized in-process with oksvg/rasterx
//   - PDF: the SVG converted by rsvg-convert
//   - JSON: the scene descriptor (config, layers, sprinkles)
//   - Height map: a grayscale mask of the frosting surface
//
// # SVG Output
//
// [RenderSVG] emits, in order, a background rect, one filled path per
// frosting layer (deepest first), and a group with id "sprinkle-layer"
// holding one stroked path per sprinkle:
//
//	svg := sink.RenderSVG(s, sink.WithTitle("Pink Frosted Donut"))
//
// Sprinkle paths reuse the shape's stroke path and position it with
// transform="translate(x, y) rotate(r) scale(s·k, s)" where s is the scale
// and k the stretch.
//
// # PNG Output
//
// [RenderPNG] needs no external tools:
//
//	png, err := sink.RenderPNG(s, sink.WithScale(2))
//
// # PDF Output
//
// [RenderPDF] requires librsvg to be installed:
//   - macOS: brew install librsvg
//   - Linux: apt install librsvg2-bin
//
// Without it the error carries code UNSUPPORTED.
package sink
