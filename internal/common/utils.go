package common

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold reduces s to a case- and accent-insensitive form so that user input
// typed without Turkish characters still matches catalog names
// ("istanbul" vs "İstanbul", "sanliurfa" vs "Şanlıurfa").
func Fold(s string) string {
	// A transform chain keeps internal state, so build one per call.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	out = strings.Map(func(r rune) rune {
		if r == 'ı' {
			return 'i'
		}
		return r
	}, out)
	return cases.Fold().String(out)
}

// HasAny returns true if s contains any of the substrings, compared in folded form.
func HasAny(s string, subs ...string) bool {
	folded := Fold(s)
	for _, sub := range subs {
		if strings.Contains(folded, Fold(sub)) {
			return true
		}
	}
	return false
}
