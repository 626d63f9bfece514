package numword

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// German spells numerals in standard German orthography. The zero value is
// ready to use.
//
// Cardinal numerals may carry one '.' as the decimal point: "3.5" is
// "drei Komma fünf". A numeral whose fractional digits are all zero is spelled
// as the integer, so "1.000" is "eins". Ordinal numerals are digits only.
type German struct{}

var germanUnits = [...]string{
	"null", "eins", "zwei", "drei", "vier", "fünf", "sechs", "sieben", "acht", "neun",
	"zehn", "elf", "zwölf", "dreizehn", "vierzehn", "fünfzehn", "sechzehn", "siebzehn", "achtzehn", "neunzehn",
}

var germanTens = [...]string{
	"", "", "zwanzig", "dreißig", "vierzig", "fünfzig", "sechzig", "siebzig", "achtzig", "neunzig",
}

type germanScale struct {
	value    uint64
	singular string
	plural   string
}

// Long scale, largest first. uint64 ends below one Trilliarde.
var germanScales = [...]germanScale{
	{1_000_000_000_000_000_000, "Trillion", "Trillionen"},
	{1_000_000_000_000_000, "Billiarde", "Billiarden"},
	{1_000_000_000_000, "Billion", "Billionen"},
	{1_000_000_000, "Milliarde", "Milliarden"},
	{1_000_000, "Million", "Millionen"},
}

// germanOrdinalSuffixes rewrites the tail of a lowercase cardinal before "te"
// is appended. First match wins.
var germanOrdinalSuffixes = [...]struct{ from, to string }{
	{"eins", "ers"},
	{"drei", "drit"},
	{"acht", "ach"},
	{"sieben", "sieb"},
	{"ig", "igs"},
	{"ert", "erts"},
	{"end", "ends"},
	{"ion", "ions"},
	{"nen", "ns"},
	{"rde", "rds"},
	{"rden", "rds"},
}

const germanDecimalPoint = "Komma"

var (
	germanOneScaleOrdinal = regexp.MustCompile(`eine ([a-z]+(?:illion|illiard)ste)$`)
	germanScaleOrdinal    = regexp.MustCompile(` ([a-z]+(?:illion|illiard)ste)$`)
)

// Cardinal implements Speller.
func (German) Cardinal(numeral string) (string, error) {
	intPart, fracPart, err := splitDecimal(numeral)
	if err != nil {
		return "", err
	}

	n, err := parseUint(intPart)
	if err != nil {
		return "", err
	}
	words := germanInteger(n)

	if strings.Trim(fracPart, "0") == "" {
		return words, nil
	}

	parts := make([]string, 0, len(fracPart)+2)
	parts = append(parts, words, germanDecimalPoint)
	for _, d := range fracPart {
		parts = append(parts, germanUnits[d-'0'])
	}
	return strings.Join(parts, " "), nil
}

// Ordinal implements Speller.
func (German) Ordinal(numeral string) (string, error) {
	if !isDigits(numeral) {
		return "", fmt.Errorf("%w: %q is not an integer", ErrParse, numeral)
	}
	n, err := parseUint(numeral)
	if err != nil {
		return "", err
	}

	word := strings.ToLower(germanInteger(n))
	for _, s := range germanOrdinalSuffixes {
		if strings.HasSuffix(word, s.from) {
			word = strings.TrimSuffix(word, s.from) + s.to
			break
		}
	}
	word += "te"

	// "hundertste" rather than "einhundertste".
	if word == "einhundertste" || word == "eintausendste" {
		word = strings.TrimPrefix(word, "ein")
	}
	// A trailing scale ordinal drops "eine" and is written together with
	// its multiplier: "millionste", "zweimillionste".
	word = germanOneScaleOrdinal.ReplaceAllString(word, "$1")
	word = germanScaleOrdinal.ReplaceAllString(word, "$1")
	return word, nil
}

// germanInteger spells n as a cardinal. Words below a million are written
// together, scale words are separated by spaces.
func germanInteger(n uint64) string {
	if n == 0 {
		return germanUnits[0]
	}

	var parts []string
	for _, s := range germanScales {
		if n < s.value {
			continue
		}
		k := n / s.value
		n %= s.value
		if k == 1 {
			parts = append(parts, "eine "+s.singular)
		} else {
			parts = append(parts, germanBelowMillion(k, false)+" "+s.plural)
		}
	}
	if n > 0 {
		parts = append(parts, germanBelowMillion(n, true))
	}
	return strings.Join(parts, " ")
}

// germanBelowMillion spells 0 < n < 1e6. final reports whether n ends the
// whole number, which is the only place "eins" is written out in full.
func germanBelowMillion(n uint64, final bool) string {
	var b strings.Builder
	if th := n / 1000; th > 0 {
		b.WriteString(germanBelowThousand(th, false))
		b.WriteString("tausend")
	}
	if r := n % 1000; r > 0 {
		b.WriteString(germanBelowThousand(r, final))
	}
	return b.String()
}

func germanBelowThousand(n uint64, final bool) string {
	var b strings.Builder
	if h := n / 100; h > 0 {
		if h == 1 {
			b.WriteString("ein")
		} else {
			b.WriteString(germanUnits[h])
		}
		b.WriteString("hundert")
	}
	if r := n % 100; r > 0 {
		b.WriteString(germanBelowHundred(r, final))
	}
	return b.String()
}

func germanBelowHundred(n uint64, final bool) string {
	if n < 20 {
		if n == 1 && !final {
			return "ein"
		}
		return germanUnits[n]
	}
	tens, unit := n/10, n%10
	if unit == 0 {
		return germanTens[tens]
	}
	u := germanUnits[unit]
	if unit == 1 {
		u = "ein"
	}
	return u + "und" + germanTens[tens]
}

// splitDecimal splits an unsigned decimal numeral at its decimal point.
// Either side may be empty but not both.
func splitDecimal(numeral string) (intPart, fracPart string, err error) {
	intPart, fracPart, _ = strings.Cut(numeral, ".")
	if intPart == "" && fracPart == "" {
		return "", "", fmt.Errorf("%w: %q has no digits", ErrParse, numeral)
	}
	if !isDigitsOrEmpty(intPart) || !isDigitsOrEmpty(fracPart) {
		return "", "", fmt.Errorf("%w: %q", ErrParse, numeral)
	}
	return intPart, fracPart, nil
}

func parseUint(digits string) (uint64, error) {
	if digits == "" {
		return 0, nil
	}
	n, err := strconv.ParseUint(digits, 10, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, fmt.Errorf("%w: %q", ErrRange, digits)
		}
		return 0, fmt.Errorf("%w: %q", ErrParse, digits)
	}
	return n, nil
}

func isDigits(s string) bool {
	return s != "" && isDigitsOrEmpty(s)
}

func isDigitsOrEmpty(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
