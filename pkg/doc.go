// Package pkg provides the libraries behind frosting, a procedural generator
// for frosted donut surfaces covered in sprinkles.
//
// # Overview
//
// A scene is built in two passes. The frosting synthesizer stacks several
// wavy layers from the back to the front and records the lowest point of
// the frosting in every pixel column. The sprinkle scatterer then drops
// sprinkles onto the frosted area, rejecting candidates that would touch
// one already placed.
//
//	Config ──▶ [core/frosting] ──▶ layers + height map
//	                                      │
//	                                      ▼
//	                              [core/sprinkles] ──▶ sprinkles
//	                                      │
//	                                      ▼
//	                         [core/render/sink] ──▶ SVG/PNG/PDF/JSON
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/frosting/pkg/core/render/sink"
//	    "github.com/matzehuels/frosting/pkg/core/rng"
//	    "github.com/matzehuels/frosting/pkg/core/scene"
//	)
//
//	cfg := scene.Default()
//	cfg.Density = 35
//	s := scene.Generate(cfg, rng.New(42))
//	svg := sink.RenderSVG(s)
//
// # Main Packages
//
// ## Core Domain Logic
//
// [core/geom] - Points, segment distance, cubic curves, and SVG paths.
//
// [core/rng] - The injected random source. Seeded sources make scenes
// reproducible.
//
// [core/palette] - Hex colors, interpolation, and the sprinkle palette.
//
// [core/frosting] - Layered frosting surfaces and the height map.
//
// [core/sprinkles] - Sprinkle shapes, placement, and collision tests.
//
// [core/scene] - Scene configuration and generation.
//
// [core/render] - Export formats and the sinks that write them.
//
// ## Infrastructure
//
// [pipeline] - Validate, generate, render, and cache in one call. Used by
// the CLI and the HTTP server alike.
//
// [cache] - Artifact cache with file, Redis, and no-op backends.
//
// [config] - The frosting.toml scene file.
//
// [presets] - Built-in and stored color presets (TOML file or MongoDB).
//
// [server] - HTTP API serving rendered scenes.
//
// [observability] - Hooks for metrics and tracing.
//
// [errors] - Coded errors shared by every package.
//
// [core/geom]: https://pkg.go.dev/github.com/matzehuels/frosting/pkg/core/geom
// [core/rng]: https://pkg.go.dev/github.com/matzehuels/frosting/pkg/core/rng
// [core/palette]: https://pkg.go.dev/github.com/matzehuels/frosting/pkg/core/palette
// [core/frosting]: https://pkg.go.dev/github.com/matzehuels/frosting/pkg/core/frosting
// [core/sprinkles]: https://pkg.go.dev/github.com/matzehuels/frosting/pkg/core/sprinkles
// [core/scene]: https://pkg.go.dev/github.com/matzehuels/frosting/pkg/core/scene
// [core/render]: https://pkg.go.dev/github.com/matzehuels/frosting/pkg/core/render
// [core/render/sink]: https://pkg.go.dev/github.com/matzehuels/frosting/pkg/core/render/sink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/frosting/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/frosting/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/frosting/pkg/config
// [presets]: https://pkg.go.dev/github.com/matzehuels/frosting/pkg/presets
// [server]: https://pkg.go.dev/github.com/matzehuels/frosting/pkg/server
// [observability]: https://pkg.go.dev/github.com/matzehuels/frosting/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/frosting/pkg/errors
package pkg
