// Package textutil prepares email text for prompt embedding.
package textutil

import "unicode/utf8"

const truncationNotice = "\n[... Content truncated due to size limits ...]"

// Truncate caps text at maxSize bytes while keeping the result valid
// UTF-8. A non-positive maxSize disables the limit.
func Truncate(text string, maxSize int) string {
	if maxSize <= 0 || len(text) <= maxSize {
		return text
	}

	truncated := text[:maxSize]
	for len(truncated) > 0 && !utf8.ValidString(truncated) {
		truncated = truncated[:len(truncated)-1]
	}
	return truncated + truncationNotice
}

// SanitizeUTF8 drops invalid UTF-8 sequences from text.
func SanitizeUTF8(text string) string {
	if utf8.ValidString(text) {
		return text
	}

	result := make([]rune, 0, len(text))
	for i, r := range text {
		if r == utf8.RuneError {
			if _, size := utf8.DecodeRuneInString(text[i:]); size == 1 {
				continue
			}
		}
		result = append(result, r)
	}
	return string(result)
}

// Prepare truncates and sanitizes text in one step.
func Prepare(text string, maxSize int) string {
	return SanitizeUTF8(Truncate(text, maxSize))
}
