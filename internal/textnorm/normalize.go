// Package textnorm reduces German transcripts to the restricted alphabet used
// for scoring: lowercase a-z, ä, ö, ü, digits and single spaces.
package textnorm

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// whitespace matches runs of spaces and tabs.
var whitespace = regexp.MustCompile(`[ \t]+`)

// folder maps accented loanword letters to their base letter and turns word
// separators into spaces. ä, ö and ü belong to the alphabet and are kept.
var folder = strings.NewReplacer(
	"ß", "ss",
	"ç", "c",
	"á", "a", "à", "a", "â", "a",
	"é", "e", "è", "e", "ê", "e",
	"í", "i", "ì", "i", "î", "i",
	"ó", "o", "ò", "o", "ô", "o",
	"ú", "u", "ù", "u", "û", "u",
	"-", " ",
	"\u2013", " ",
	"\u00ad", " ",
	"/", " ",
)

// Allowed reports whether r is part of the scoring alphabet.
func Allowed(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
		return true
	case r == 'ä', r == 'ö', r == 'ü', r == ' ':
		return true
	}
	return false
}

// Normalize lowercases text, folds diacritics, turns separators into spaces
// and drops every rune outside the alphabet. The result has no leading,
// trailing or repeated spaces. Normalize is total and idempotent.
//
// Input is composed to NFC first, so a decomposed "A" + U+0308 becomes "ä".
// A scorer that filters without composing drops the combining mark and
// yields "a" instead.
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	// A Caser keeps state, so the chain is built per call.
	lower := transform.Chain(norm.NFC, cases.Lower(language.German))
	s, _, err := transform.String(lower, text)
	if err != nil {
		s = strings.ToLower(text)
	}

	s = folder.Replace(s)
	s = whitespace.ReplaceAllString(s, " ")

	s, _, err = transform.String(runes.Remove(runes.Predicate(func(r rune) bool {
		return !Allowed(r)
	})), s)
	if err != nil {
		s = strings.Map(func(r rune) rune {
			if Allowed(r) {
				return r
			}
			return -1
		}, s)
	}

	return strings.Join(strings.Fields(s), " ")
}

// Tokens splits a normalized transcript on single spaces. An empty
// transcript is one empty token, so it still counts towards hypothesis and
// reference lengths.
func Tokens(normalized string) []string {
	return strings.Split(normalized, " ")
}
