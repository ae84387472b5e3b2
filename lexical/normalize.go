package lexical

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// frSuffixes lists French morphological endings, most specific first.
// Order matters: "ations" must be tried before "ation" before "s".
var frSuffixes = []string{
	"ations", "ation",
	"tions", "tion",
	"ements", "ement",
	"ments", "ment",
	"ées", "és", "ees", "es",
	"ée", "é", "ee", "e",
	"er", "re", "s",
}

// StripAccents removes diacritics by decomposing to NFKD and dropping
// combining marks. The result stays decomposed; it is only ever compared
// against other StripAccents output.
func StripAccents(s string) string {
	stripper := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))
	out, _, err := transform.String(stripper, s)
	if err != nil {
		return s
	}
	return out
}

// Tokenize splits text into lowercase tokens, where a token is a maximal
// run of Unicode letters and digits. No minimum length is enforced here.
func Tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}

// Stem normalizes a token to a crude French stem. The token is
// accent-stripped, then the longest matching suffix from frSuffixes is
// removed, but only when the remaining stem stays longer than
// len(suffix)+2 runes. This guard keeps short words intact ("les", "une").
// Tokens matching no suffix are returned accent-stripped and unchanged.
func Stem(tok string) string {
	t := StripAccents(tok)
	rt := []rune(t)
	for _, suf := range frSuffixes {
		rs := []rune(suf)
		if len(rt) > len(rs)+2 && strings.HasSuffix(t, suf) {
			return string(rt[:len(rt)-len(rs)])
		}
	}
	return t
}

// Fold lowercases and accent-strips a string for case- and
// accent-insensitive containment checks.
func Fold(s string) string {
	return StripAccents(strings.ToLower(s))
}
