// Package slugs derives filesystem-safe slugs from note titles.
package slugs

import (
	"strings"
	"unicode"

	"github.com/gosimple/unidecode"
)

// Slugify converts a title into a lowercase, hyphen-separated slug.
//
// Accented letters are transliterated to ASCII first ("Café" -> "cafe"). Any
// run of characters that are not ASCII letters or digits collapses to a single
// hyphen, and leading/trailing hyphens are dropped. The result contains only
// [a-z0-9-] and Slugify(Slugify(s)) == Slugify(s).
func Slugify(text string) string {
	text = strings.ToLower(strings.TrimSpace(unidecode.Unidecode(text)))

	var b strings.Builder
	b.Grow(len(text))
	pendingDash := false
	for _, r := range text {
		if isSlugRune(r) {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
			continue
		}
		pendingDash = true
	}
	return b.String()
}

func isSlugRune(r rune) bool {
	return r < unicode.MaxASCII && (r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
}
