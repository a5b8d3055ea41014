package mealpress

import "strings"

// Slugify converts a title to a URL- and filesystem-safe slug: lowercase
// ascii letters and digits separated by single hyphens, with no leading
// or trailing hyphen. Deterministic, so the same title always yields the
// same slug.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	pending := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if pending && b.Len() > 0 {
				b.WriteByte('-')
			}
			pending = false
			b.WriteRune(r)
		default:
			// Runs of whitespace, punctuation and non-ascii collapse
			// into a single separator.
			pending = true
		}
	}
	return b.String()
}
