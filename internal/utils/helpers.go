// Package utils provides utility functions and helpers for common operations
// used throughout the application. Functions in this package are designed
// to be simple, self-contained, and have minimal side effects.
package utils

import (
	"fmt"
	"strings"
)

// Plural returns a string with the number and the plural form of the word if necessary.
// It handles the simple English pluralization case where adding 's' is sufficient.
func Plural(count int, word string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, word)
	}
	return fmt.Sprintf("%d %ss", count, word)
}

// TruncateString shortens a string to the given length, appending an ellipsis
// when truncation occurred.
func TruncateString(s string, maxLen int) string {
	if maxLen <= 3 || len(s) <= maxLen {
		if len(s) <= maxLen {
			return s
		}
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

// SanitizeFileName strips path separators and control characters from a declared
// file name. The name is only a display and heuristic value, but it still must
// not be usable for path traversal when echoed into headers or logs.
func SanitizeFileName(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	if idx := strings.LastIndex(name, "/"); idx >= 0 {
		name = name[idx+1:]
	}
	var b strings.Builder
	for _, r := range name {
		if r < 0x20 || r == 0x7f {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
