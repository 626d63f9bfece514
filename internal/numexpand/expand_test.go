package numexpand

import (
	"testing"

	"golang.org/x/text/language"

	"github.com/chaz8081/gostt-score/internal/numword"
)

func TestExpand(t *testing.T) {
	e := New(numword.German{})

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"cardinal", "123", "einhundertdreiundzwanzig"},
		{"ordinal", "Der 3. Oktober", "Der dritte Oktober"},
		{"cardinal_no_dot", "Der 3 Oktober", "Der drei Oktober"},
		{"decimal", "3.5 Prozent", "drei Komma fünf Prozent"},
		{"malformed_grouping", "1,5 Liter", "1,5 Liter"},
		{"apostrophe_grouping", "1'000 Franken", "1'000 Franken"},
		{"dot_only", "Ende .", "Ende ."},
		{"ordinal_with_grouping_kept", "der 1.000. Besucher", "der 1.000. Besucher"},
		{"digits_before_dash", "ein 5-Sterne-Hotel", "ein fünf-Sterne-Hotel"},
		{"dash_before_digits", "Seite-3", "Seite-drei"},
		{"both_dash_rules", "5-10 Uhr", "fünf-zehn Uhr"},
		{"inside_word", "A4-Blatt", "Avier-Blatt"},
		{"en_dash_range", "9\u201317 Uhr", "neun\u2013siebzehn Uhr"},
		{"soft_hyphen", "20\u00adjährig", "zwanzig\u00adjährig"},
		{"chain_only_first_and_second", "10-20-30", "zehn-zwanzig-30"},
		{"digits_without_dash", "B52", "B52"},
		{"collapses_whitespace", "  1 \t 2  ", "eins zwei"},
		{"punctuation_attached", "(3)", "(3)"},
		{"leading_zeros", "007", "sieben"},
		{"embedded_newline", "Summe 23\n Ende", "Summe dreiundzwanzig Ende"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := e.Expand(tt.input); got != tt.want {
				t.Errorf("Expand(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestExpandNoDigitsIsNoop(t *testing.T) {
	e := New(numword.German{})
	for _, in := range []string{
		"",
		"  Guten   Morgen  ",
		"kein\tZahl-Wort / hier",
		"Äpfel und Birnen.",
	} {
		if got := e.Expand(in); got != in {
			t.Errorf("Expand(%q) = %q, want input unchanged", in, got)
		}
	}
}

func TestForLanguage(t *testing.T) {
	e, err := ForLanguage(language.German)
	if err != nil {
		t.Fatalf("ForLanguage(de) error = %v", err)
	}
	if got := e.Expand("21"); got != "einundzwanzig" {
		t.Errorf("Expand(\"21\") = %q, want %q", got, "einundzwanzig")
	}

	if _, err := ForLanguage(language.English); err == nil {
		t.Error("ForLanguage(en) should fail")
	}
}

// markingSpeller marks spelled numerals so tests can see which rule fired.
type markingSpeller struct{}

func (markingSpeller) Cardinal(n string) (string, error) { return "<" + n + ">", nil }
func (markingSpeller) Ordinal(n string) (string, error)  { return "<" + n + "th>", nil }

func TestNewWithRulesOrder(t *testing.T) {
	sp := markingSpeller{}

	onlyDash := NewWithRules(DashBeforeDigits(sp))
	if got := onlyDash.Expand("3-4"); got != "3-<4>" {
		t.Errorf("DashBeforeDigits only: got %q, want %q", got, "3-<4>")
	}
}
