package utils

import (
	"strings"

	"github.com/google/uuid"
)

// Slugify converts a title to a URL-safe slug: diacritics stripped,
// lowercased, non-alphanumeric runs collapsed to single dashes.
func Slugify(s string) string {
	normalized := NormalizeText(s)

	var b strings.Builder
	lastDash := true
	for _, r := range normalized {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}

	slug := strings.TrimSuffix(b.String(), "-")
	if slug == "" {
		slug = "untitled"
	}
	return slug
}

// UniqueSlug appends a short random suffix so that equal titles never
// collide on the slug index.
func UniqueSlug(s string) string {
	return Slugify(s) + "-" + uuid.New().String()[:8]
}
