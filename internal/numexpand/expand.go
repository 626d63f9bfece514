// Package numexpand rewrites numerals inside a transcript into their spoken
// form, so "am 3. Mai um 5-10 Uhr" reads "am dritte Mai um fünf-zehn Uhr".
//
// The expander works on the raw transcript: '.' and dashes decide whether a
// numeral is an ordinal or part of a compound, so punctuation must still be
// present. Spelling failures are never fatal; the numeral is kept verbatim.
package numexpand

import (
	"regexp"
	"strings"

	"golang.org/x/text/language"

	"github.com/chaz8081/gostt-score/internal/numword"
)

var whitespace = regexp.MustCompile(`[ \t]+`)

// Expander applies an ordered list of rules to every token of a transcript.
// It holds no mutable state and is safe for concurrent use.
type Expander struct {
	rules []Rule
}

// DefaultRules returns the standard rule order: whole numeral tokens first,
// then a digit run before a dash, then a digit run after a dash. The two dash
// rules may both fire on one token, the second seeing the first's output.
func DefaultRules(sp numword.Speller) []Rule {
	return []Rule{
		Final(NumeralToken(sp)),
		DigitsBeforeDash(sp),
		DashBeforeDigits(sp),
	}
}

// New returns an Expander using DefaultRules for sp.
func New(sp numword.Speller) *Expander {
	return NewWithRules(DefaultRules(sp)...)
}

// NewWithRules returns an Expander applying rules in the given order.
func NewWithRules(rules ...Rule) *Expander {
	return &Expander{rules: append([]Rule(nil), rules...)}
}

// ForLanguage returns an Expander for the language identified by tag.
func ForLanguage(tag language.Tag) (*Expander, error) {
	sp, err := numword.For(tag)
	if err != nil {
		return nil, err
	}
	return New(sp), nil
}

// Expand rewrites every numeral in text. Tokens are rejoined with single
// spaces. Text without any digit is returned unchanged.
func (e *Expander) Expand(text string) string {
	if !strings.ContainsAny(text, "0123456789") {
		return text
	}

	text = strings.TrimSpace(whitespace.ReplaceAllString(text, " "))
	tokens := strings.Split(text, " ")
	for i, tok := range tokens {
		tokens[i] = e.rewrite(tok)
	}
	return strings.Join(tokens, " ")
}

func (e *Expander) rewrite(token string) string {
	for _, r := range e.rules {
		out, matched := r.Rewrite(token)
		if !matched {
			continue
		}
		token = out
		if isFinal(r) {
			break
		}
	}
	return token
}
