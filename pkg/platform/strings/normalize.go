// Package strings provides string manipulation utilities.
package strings

import (
	"strings"
	"unicode"
)

// Normalize strips every whitespace character and uppercases ASCII letters.
// Applied to identifier input before any validation step; idempotent and
// total (never fails).
//
// Example:
//
//	Normalize(" de44 5001 0517 ")
//	// Returns: "DE4450010517"
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsSpace(r) {
			continue
		}
		if r >= 'a' && r <= 'z' {
			r -= 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
