package utils

import "strings"

// IsValidTarget accepts hostname-shaped input (letters, digits, dots,
// hyphens, at least one dot). Lookup targets from the CLI are passed
// through untouched; this gate only protects the HTTP API and the
// scheduled checks.
func IsValidTarget(target string) bool {
	if len(target) == 0 || len(target) > 255 {
		return false
	}
	for _, ch := range target {
		if (ch < 'a' || ch > 'z') && (ch < 'A' || ch > 'Z') && (ch < '0' || ch > '9') && ch != '.' && ch != '-' && ch != '_' {
			return false
		}
	}
	return strings.Contains(target, ".")
}
