// Package frosting synthesizes the layered, wavy frosting silhouette of a
// scene and the height map derived from it.
//
// # Layers
//
// A scene has [Params.Layers] frosting layers. Each layer is a closed path
// made of a far off-canvas top edge, a straight drop to the first knot, and
// a chain of cubic segments through randomly perturbed knots. Filling the
// path paints everything from the wave up to above the canvas top.
//
// Layers are generated deepest first. The first generated layer sits at the
// full drip depth and takes the bottom frosting color; every later layer is
// one step shallower and moves toward the top color, so the last generated
// layer is drawn on top of the others.
//
// # Height Map
//
// While a layer's curve is built, each cubic segment is sampled and the
// lowest Y seen per pixel column is recorded in a [HeightMap]. The map is a
// running maximum across all layers, so it traces the lower boundary of the
// frosting. Sprinkles are only placed above that boundary.
//
// # Determinism
//
// All randomness comes from the [rng.Source] passed to [Synthesize]; a
// seeded source reproduces a surface exactly.
package frosting
