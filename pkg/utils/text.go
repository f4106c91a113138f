package utils

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var deaccenter = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeText lowercases the text and strips diacritics, so keyword
// matching treats "página" and "pagina" as the same token.
func NormalizeText(text string) string {
	lowered := strings.ToLower(text)
	stripped, _, err := transform.String(deaccenter, lowered)
	if err != nil {
		return lowered
	}
	return stripped
}

// ContainsAny reports whether s contains at least one of the substrings.
func ContainsAny(s string, substrs []string) bool {
	for _, sub := range substrs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// Truncate cuts s to at most max bytes, appending an ellipsis when cut.
func Truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "…"
}
