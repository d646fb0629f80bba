package errors

import (
	"math"
	"strings"
	"unicode"
)

// maxWidth caps viewport widths accepted from untrusted callers.
const maxWidth = 16384

// ValidateIndex reports whether index addresses one of total cards.
func ValidateIndex(index, total int) error {
	if total <= 0 {
		return New(ErrCodeEmptyContent, "carousel has no cards")
	}
	if index < 0 || index >= total {
		return New(ErrCodeInvalidIndex, "card index %d out of range [0, %d)", index, total)
	}
	return nil
}

// ValidateWidth validates a viewport width in device-independent pixels.
// Widths must be finite, positive and no larger than 16384.
func ValidateWidth(width float64) error {
	if math.IsNaN(width) || math.IsInf(width, 0) {
		return New(ErrCodeInvalidInput, "viewport width must be finite")
	}
	if width <= 0 {
		return New(ErrCodeInvalidInput, "viewport width must be positive, got %v", width)
	}
	if width > maxWidth {
		return New(ErrCodeInvalidInput, "viewport width too large (max %d)", maxWidth)
	}
	return nil
}

// ValidateTitle validates a card title.
//
// Titles identify cards in logs and rendered diagrams, so they must be
// non-blank, at most 128 characters and free of control characters.
func ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return New(ErrCodeInvalidContent, "card title cannot be empty")
	}
	if len(title) > 128 {
		return New(ErrCodeInvalidContent, "card title too long (max 128 characters)")
	}
	for _, r := range title {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidContent, "card title contains invalid control characters")
		}
	}
	return nil
}

// ValidatePath validates a content file path supplied by configuration.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}
	return nil
}
