package errors

import (
	"regexp"
	"strings"
	"unicode"
)

var hexColorRegex = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// ValidateHexColor checks that c is a #RRGGBB color. The field name is used
// in the error message.
func ValidateHexColor(field, c string) error {
	if !hexColorRegex.MatchString(c) {
		return New(ErrCodeInvalidColor, "%s must be a #RRGGBB color, got %q", field, c)
	}
	return nil
}

// ValidateDimensions checks that a canvas is at least one pixel in each
// direction and no larger than maxSide.
func ValidateDimensions(width, height, maxSide int) error {
	if width <= 0 || height <= 0 {
		return New(ErrCodeInvalidConfig, "canvas dimensions must be positive, got %dx%d", width, height)
	}
	if width > maxSide || height > maxSide {
		return New(ErrCodeInvalidConfig, "canvas dimensions too large (max %d per side), got %dx%d", maxSide, width, height)
	}
	return nil
}

// ValidateRange checks lo <= v <= hi.
func ValidateRange(field string, v, lo, hi float64) error {
	if v < lo || v > hi {
		return New(ErrCodeInvalidConfig, "%s must be between %g and %g, got %g", field, lo, hi, v)
	}
	return nil
}

// ValidatePresetName validates a preset name before it is used as a lookup
// key or document id.
//
// Names must be non-empty, at most 64 characters, printable, and must not
// contain path separators.
func ValidatePresetName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidPreset, "preset name cannot be empty")
	}
	if len(name) > 64 {
		return New(ErrCodeInvalidPreset, "preset name too long (max 64 characters)")
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPreset, "preset name contains control characters")
		}
	}
	if strings.ContainsAny(name, "/\\") {
		return New(ErrCodeInvalidPreset, "preset name cannot contain path separators")
	}
	return nil
}
