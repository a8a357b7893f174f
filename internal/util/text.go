package util

import (
	"regexp"
	"strings"
	"unicode"
)

var reSpaces = regexp.MustCompile(`\s+`)

// Normalize lowers the text, folds Ё into Е and collapses runs of whitespace.
// Shop and product lookups go through this so spelling variants land on the
// same catalog row.
func Normalize(input string) string {
	s := strings.ToLower(input)
	s = strings.ReplaceAll(s, "ё", "е")
	s = reSpaces.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// HasAlnum reports whether the string contains at least one letter or digit.
// Lines of bare emoji and punctuation fail this probe.
func HasAlnum(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

func NormalizeSpaces(input string) string {
	return strings.TrimSpace(reSpaces.ReplaceAllString(input, " "))
}
