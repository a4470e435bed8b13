package domain

import (
	"strings"
)

// NormalizeText prepares word text for storage and comparison:
//   - trims leading/trailing whitespace
//   - converts to lowercase
//   - collapses internal whitespace runs into single spaces
//
// Hyphens and apostrophes are preserved; "  Déjà   Vu " → "déjà vu".
func NormalizeText(text string) string {
	fields := strings.Fields(strings.ToLower(text))
	if len(fields) == 0 {
		return ""
	}
	return strings.Join(fields, " ")
}
