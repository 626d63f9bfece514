package numexpand

import (
	"regexp"
	"strings"

	"github.com/chaz8081/gostt-score/internal/numword"
)

// Rule rewrites one whitespace-free token.
type Rule interface {
	// Rewrite returns the rewritten token and whether the rule's pattern
	// matched. A match whose numeral could not be spelled returns the token
	// unchanged with matched set to true.
	Rewrite(token string) (out string, matched bool)
}

// finalRule ends rewriting of a token once it matches.
type finalRule struct{ Rule }

// Final wraps r so that no later rule sees a token r matched.
func Final(r Rule) Rule { return finalRule{r} }

func isFinal(r Rule) bool {
	_, ok := r.(finalRule)
	return ok
}

// dashClass holds hyphen, en dash and soft hyphen.
const dashClass = "-\u2013\u00ad"

var (
	numeralToken     = regexp.MustCompile(`^[0-9',.]+$`)
	digitsBeforeDash = regexp.MustCompile(`[0-9]+[` + dashClass + `]`)
	dashBeforeDigits = regexp.MustCompile(`[` + dashClass + `][0-9]+`)
)

// NumeralToken spells tokens made only of digits and grouping punctuation.
// A trailing '.' marks an ordinal ("3." is "dritte"), anything else is read
// as a cardinal. One trailing newline is allowed and replaced along with the
// numeral, so "3.\n" is read as the cardinal "drei".
func NumeralToken(sp numword.Speller) Rule { return numeralRule{sp} }

type numeralRule struct{ sp numword.Speller }

func (r numeralRule) Rewrite(token string) (string, bool) {
	body := strings.TrimSuffix(token, "\n")
	if !numeralToken.MatchString(body) {
		return token, false
	}
	var (
		words string
		err   error
	)
	if num, ok := strings.CutSuffix(token, "."); ok {
		words, err = r.sp.Ordinal(num)
	} else {
		words, err = r.sp.Cardinal(body)
	}
	if err != nil {
		return token, true
	}
	return words, true
}

// DigitsBeforeDash spells the first digit run directly followed by a dash,
// keeping the dash and the rest of the token ("5-mal" is "fünf-mal").
func DigitsBeforeDash(sp numword.Speller) Rule {
	return dashRule{sp: sp, pattern: digitsBeforeDash, leading: false}
}

// DashBeforeDigits spells the first digit run directly preceded by a dash
// ("Seite-3" is "Seite-drei").
func DashBeforeDigits(sp numword.Speller) Rule {
	return dashRule{sp: sp, pattern: dashBeforeDigits, leading: true}
}

type dashRule struct {
	sp      numword.Speller
	pattern *regexp.Regexp
	// leading is true when the dash comes before the digits in the match.
	leading bool
}

func (r dashRule) Rewrite(token string) (string, bool) {
	loc := r.pattern.FindStringIndex(token)
	if loc == nil {
		return token, false
	}
	start, end := loc[0], loc[1]
	match := token[start:end]

	digits := strings.TrimRight(match, dashClass)
	if r.leading {
		digits = strings.TrimLeft(match, dashClass)
		start = end - len(digits)
	} else {
		end = start + len(digits)
	}

	words, err := r.sp.Cardinal(digits)
	if err != nil {
		return token, true
	}
	return token[:start] + words + token[end:], true
}
