package render

import (
	"testing"

	ferrors "github.com/matzehuels/frosting/pkg/errors"
)

func TestValidateFormat(t *testing.T) {
	for _, f := range Formats {
		if err := ValidateFormat(f); err != nil {
			t.Errorf("ValidateFormat(%q) error: %v", f, err)
		}
	}
	for _, f := range []string{"", "gif", "SVG"} {
		err := ValidateFormat(f)
		if !ferrors.Is(err, ferrors.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) = %v, want INVALID_FORMAT", f, err)
		}
	}
}

func TestContentType(t *testing.T) {
	tests := map[string]string{
		FormatSVG:       "image/svg+xml",
		FormatPNG:       "image/png",
		FormatHeightMap: "image/png",
		FormatPDF:       "application/pdf",
		FormatJSON:      "application/json",
		"other":         "application/octet-stream",
	}
	for format, want := range tests {
		if got := ContentType(format); got != want {
			t.Errorf("ContentType(%q) = %q, want %q", format, got, want)
		}
	}
}

func TestExtension(t *testing.T) {
	if got := Extension(FormatHeightMap); got != "heightmap.png" {
		t.Errorf("Extension(heightmap) = %q", got)
	}
	if got := Extension(FormatSVG); got != "svg" {
		t.Errorf("Extension(svg) = %q", got)
	}
}

func TestToPDFWithoutConverter(t *testing.T) {
	if Available() {
		t.Skip("rsvg-convert installed")
	}
	_, err := ToPDF([]byte("<svg/>"))
	if !ferrors.Is(err, ferrors.ErrCodeUnsupported) {
		t.Errorf("ToPDF() error = %v, want UNSUPPORTED", err)
	}
}
