// Package strings holds small slice helpers for list-valued settings.
package strings

import (
	"strings"
)

// DedupeAndTrimLower trims and lowercases each element, then drops empties
// and repeats. Order of first occurrence is preserved.
//
// Example:
//
//	DedupeAndTrimLower([]string{" Admin@Example.com ", "", "admin@example.com"})
//	// Returns: []string{"admin@example.com"}
func DedupeAndTrimLower(values []string) []string {
	if len(values) == 0 {
		return values
	}

	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))

	for _, v := range values {
		normalized := strings.ToLower(strings.TrimSpace(v))
		if normalized == "" {
			continue
		}
		if _, ok := seen[normalized]; ok {
			continue
		}
		seen[normalized] = struct{}{}
		result = append(result, normalized)
	}

	return result
}
