package seo

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ConvertToFriendlyURL converts free text to a URL-friendly slug: accents are
// folded, letters lowercased and every run of other characters becomes a
// single hyphen.
func ConvertToFriendlyURL(text string) string {
	folded, _, err := transform.String(accentFolder(), text)
	if err != nil {
		folded = text
	}
	s := strings.ToLower(folded)

	var buf strings.Builder
	pendingHyphen := false
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingHyphen && buf.Len() > 0 {
				buf.WriteByte('-')
			}
			pendingHyphen = false
			buf.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}
	return buf.String()
}

// SlugFunc adapts a plain function to the slug converter contract used by
// generators.
type SlugFunc func(string) string

func (f SlugFunc) Slugify(text string) string { return f(text) }

// DefaultSlugger converts with ConvertToFriendlyURL.
var DefaultSlugger = SlugFunc(ConvertToFriendlyURL)

func accentFolder() transform.Transformer {
	// Transformers are stateful, build a fresh chain per call.
	return transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
}
