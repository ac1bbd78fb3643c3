// Package matcher implements the name patterns used to select built-in
// handler classes and to filter tools: "*" selects everything, any other
// non-empty pattern selects names it prefixes.
package matcher

import "strings"

// Match reports whether name satisfies pattern.
func Match(pattern, name string) bool {
	pattern = strings.TrimSpace(pattern)
	switch pattern {
	case "*":
		return true
	case "":
		return false
	}
	return strings.HasPrefix(name, pattern)
}

// MatchAny reports whether any of patterns matches name.
func MatchAny(patterns []string, name string) bool {
	for _, pattern := range patterns {
		if Match(pattern, name) {
			return true
		}
	}
	return false
}
