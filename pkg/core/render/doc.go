// Package render holds what the export sinks share: the format names, their
// content types, and the rsvg-convert bridge used for PDF output.
//
// The sinks themselves live in [github.com/matzehuels/frosting/pkg/core/render/sink].
package render
