package errors

import (
	"strings"
	"unicode"
)

// maxIDLength bounds process identifiers. They end up in file names, Redis
// keys and URL paths.
const maxIDLength = 128

// ValidateProcessID validates a process identifier for safety and correctness.
// It rejects identifiers that could be used for path traversal or key injection.
//
// The validation rules are intentionally conservative:
//   - No empty identifiers
//   - No control characters or whitespace
//   - No path separators or traversal sequences
//   - Maximum length of 128 characters
func ValidateProcessID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidID, "process id cannot be empty")
	}

	if len(id) > maxIDLength {
		return New(ErrCodeInvalidID, "process id too long (max %d characters)", maxIDLength)
	}

	for _, r := range id {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidID, "process id contains invalid characters")
		}
	}

	dangerousPatterns := []string{
		"..", // Parent directory
		"/",  // Path separator
		"\\", // Backslash (Windows path)
		"*",  // Key glob
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(id, pattern) {
			return New(ErrCodeInvalidID, "process id contains invalid characters: %q", pattern)
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

	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}
