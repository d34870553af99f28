// Package textnorm reduces free text to a canonical form for loose comparison
// of program, person and role names.
package textnorm

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize lowercases s, strips diacritics and punctuation and collapses
// whitespace. The result only holds letters, digits and single spaces.
func Normalize(s string) string {
	if s == "" {
		return ""
	}

	stripped, _, err := transform.String(stripMarks(), s)
	if err != nil {
		stripped = s
	}
	lowered := cases.Lower(language.Spanish).String(stripped)

	var b strings.Builder
	b.Grow(len(lowered))
	space := false
	for _, r := range lowered {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if space && b.Len() > 0 {
				b.WriteByte(' ')
			}
			space = false
			b.WriteRune(r)
		case unicode.IsSpace(r):
			space = true
		}
	}

	return b.String()
}

// stopwords carry no topic and are left out of fingerprints.
var stopwords = map[string]bool{
	"a": true, "al": true, "de": true, "del": true, "el": true, "en": true,
	"la": true, "las": true, "los": true, "un": true, "una": true, "y": true,
}

// Fingerprint makes titles that only differ in word order or articles collide.
func Fingerprint(title string) string {
	var words []string
	for _, w := range strings.Fields(Normalize(title)) {
		if !stopwords[w] {
			words = append(words, w)
		}
	}
	sort.Strings(words)
	return strings.Join(words, " ")
}

// Slug turns a display name into a file-safe identifier.
func Slug(s string) string {
	return strings.ReplaceAll(Normalize(s), " ", "-")
}

// Contains reports whether the normalized forms of a and b contain one another.
// Empty strings never match.
func Contains(a, b string) bool {
	na, nb := Normalize(a), Normalize(b)
	if na == "" || nb == "" {
		return false
	}
	return strings.Contains(na, nb) || strings.Contains(nb, na)
}

// Equal compares two strings by their normalized form.
func Equal(a, b string) bool {
	return Normalize(a) == Normalize(b)
}

func stripMarks() transform.Transformer {
	return transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
}
