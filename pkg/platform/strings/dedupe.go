// Package strings provides list normalization helpers for request payloads.
package strings

import (
	"strings"
)

// Unique drops repeated values, keeping the first occurrence of each. The
// result is never nil.
func Unique[T comparable](values []T) []T {
	seen := make(map[T]struct{}, len(values))
	result := make([]T, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}
	return result
}

// Compact trims every element, then drops blanks and duplicates. Order is
// preserved.
//
//	Compact([]string{" wifi ", "parking", "wifi", "  "})
//	// []string{"wifi", "parking"}
func Compact(values []string) []string {
	trimmed := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			trimmed = append(trimmed, v)
		}
	}
	return Unique(trimmed)
}
