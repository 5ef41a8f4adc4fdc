package persistence

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldSearch lowercases s and strips diacritics, so "Açaí" and "acai" match.
// Stored search columns and query patterns both go through it.
func foldSearch(parts ...string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, strings.Join(parts, " "))
	if err != nil {
		folded = strings.Join(parts, " ")
	}
	return strings.ToLower(strings.Join(strings.Fields(folded), " "))
}

// likePattern escapes LIKE wildcards in a folded search term
func likePattern(search string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(foldSearch(search)) + "%"
}
