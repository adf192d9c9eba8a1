package domain

import (
	"strings"
	"unicode"
)

// NormalizeName makes a record name safe for file names: only letters,
// digits, "-", "_", "." and spaces survive, and spaces become underscores.
func NormalizeName(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), strings.ContainsRune("-_.", r):
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('_')
		}
	}
	return b.String()
}
