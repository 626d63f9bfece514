// Package numword spells numerals as words.
//
// A Speller turns a numeral string into its spoken cardinal or ordinal form
// for one language. For picks the speller for a BCP 47 language tag; German
// is the only language currently provided.
package numword

import (
	"errors"
	"fmt"

	"golang.org/x/text/language"
)

var (
	// ErrParse is returned when a numeral is malformed.
	ErrParse = errors.New("numword: malformed numeral")
	// ErrRange is returned when a numeral is too large to spell.
	ErrRange = errors.New("numword: numeral out of range")
	// ErrUnsupportedLanguage is returned by For when no speller matches the tag.
	ErrUnsupportedLanguage = errors.New("numword: unsupported language")
)

// Speller converts numerals to words.
type Speller interface {
	// Cardinal spells numeral as a cardinal number ("how many").
	Cardinal(numeral string) (string, error)
	// Ordinal spells numeral as an ordinal number ("in what position").
	Ordinal(numeral string) (string, error)
}

var supported = []language.Tag{language.German}

var matcher = language.NewMatcher(supported)

// For returns the Speller for tag. Regional variants such as de-AT or de-CH
// resolve to the base language.
func For(tag language.Tag) (Speller, error) {
	_, idx, conf := matcher.Match(tag)
	if conf < language.High {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedLanguage, tag)
	}
	switch supported[idx] {
	case language.German:
		return German{}, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedLanguage, tag)
}

// Parse resolves a BCP 47 string such as "de" or "de-DE" to a Speller.
func Parse(lang string) (Speller, error) {
	tag, err := language.Parse(lang)
	if err != nil {
		return nil, fmt.Errorf("numword: parse language %q: %w", lang, err)
	}
	return For(tag)
}
