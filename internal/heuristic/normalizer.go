package heuristic

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize lowercases text, strips combining diacritics and collapses
// whitespace runs so French/English keyword matching works uniformly.
// It never fails; empty input yields an empty string.
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	out, _, err := transform.String(stripAccents, strings.ToLower(text))
	if err != nil {
		// transform.String only errors on a misbehaving transformer;
		// runes.Remove and norm never do. Keep the lowercased text.
		out = strings.ToLower(text)
	}
	return strings.Join(strings.Fields(out), " ")
}
