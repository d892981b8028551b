package errors

import (
	"strings"
	"unicode"
)

// ValidateBrand validates a car brand name for safety and correctness.
// Brand names end up in request URLs and cache keys, so the rules are
// intentionally conservative:
//   - No empty names
//   - No control characters or null bytes
//   - No path traversal sequences
//   - Maximum length of 64 characters
func ValidateBrand(brand string) error {
	return validateName("brand", brand)
}

// ValidateModel validates a car model name with the same rules as
// ValidateBrand.
func ValidateModel(model string) error {
	return validateName("model", model)
}

func validateName(kind, name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidInput, "%s cannot be empty", kind)
	}

	if len(name) > 64 {
		return New(ErrCodeInvalidInput, "%s too long (max 64 characters)", kind)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "%s contains invalid control characters", kind)
		}
	}

	dangerousPatterns := []string{
		"..",   // Parent directory
		"//",   // Double slash
		"\x00", // Null byte
		"\\",   // Backslash (Windows path)
	}
	for _, pattern := range dangerousPatterns {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidInput, "%s contains invalid characters: %q", kind, pattern)
		}
	}

	return nil
}

// ValidateOutputPath validates a poster output path.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "output path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "output path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "output path contains invalid characters")
		}
	}

	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}

// Canvas size limits. The lower bound leaves room for the fixed header
// and spec areas, the upper bound keeps memory use sane.
const (
	MinCanvasSize = 400
	MaxCanvasSize = 8000
)

// ValidateDimensions validates poster canvas dimensions. Zero values
// are allowed and mean "use the default".
func ValidateDimensions(width, height int) error {
	for _, d := range []struct {
		name  string
		value int
	}{
		{"width", width},
		{"height", height},
	} {
		if d.value == 0 {
			continue
		}
		if d.value < MinCanvasSize {
			return New(ErrCodeInvalidInput, "%s too small (min %d)", d.name, MinCanvasSize)
		}
		if d.value > MaxCanvasSize {
			return New(ErrCodeInvalidInput, "%s too large (max %d)", d.name, MaxCanvasSize)
		}
	}
	return nil
}
