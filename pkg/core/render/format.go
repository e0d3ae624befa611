package render

import (
	"slices"

	ferrors "github.com/matzehuels/frosting/pkg/errors"
)

// Formats lists every export format in the order the CLI documents them.
var Formats = []string{FormatSVG, FormatPNG, FormatPDF, FormatJSON, FormatHeightMap}

// Export formats.
const (
	FormatSVG       = "svg"
	FormatPNG       = "png"
	FormatPDF       = "pdf"
	FormatJSON      = "json"
	FormatHeightMap = "heightmap"
)

// ContentType returns the MIME type of an export format.
func ContentType(format string) string {
	switch format {
	case FormatSVG:
		return "image/svg+xml"
	case FormatPNG, FormatHeightMap:
		return "image/png"
	case FormatPDF:
		return "application/pdf"
	case FormatJSON:
		return "application/json"
	}
	return "application/octet-stream"
}

// Extension returns the file extension written for format.
func Extension(format string) string {
	if format == FormatHeightMap {
		return "heightmap.png"
	}
	return format
}

// ValidateFormat rejects unknown export formats.
func ValidateFormat(format string) error {
	if slices.Contains(Formats, format) {
		return nil
	}
	return ferrors.New(ferrors.ErrCodeInvalidFormat, "unknown format %q (want one of %v)", format, Formats)
}
