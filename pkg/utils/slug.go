package utils

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var slugInvalidChars = regexp.MustCompile(`[^a-z0-9\s\-]`)
var slugWhitespace = regexp.MustCompile(`[\s\-]+`)

// Slugify derives a URL-safe slug from a display name: lowercase, diacritics
// stripped, whitespace runs collapsed into single hyphens. Used as the
// heuristic fallback when a scent family name has no catalog entry.
func Slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = stripDiacritics(s)
	s = slugInvalidChars.ReplaceAllString(s, "")
	s = slugWhitespace.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

func stripDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
