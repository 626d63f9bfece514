package score

import (
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/chaz8081/gostt-score/internal/numexpand"
	"github.com/chaz8081/gostt-score/internal/numword"
	"github.com/chaz8081/gostt-score/internal/transcript"
)

func newScorer(opts ...Option) *Scorer {
	return New(numexpand.New(numword.German{}), opts...)
}

func items(pairs ...string) []transcript.Item {
	out := make([]transcript.Item, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, transcript.Item{ID: pairs[i], Text: pairs[i+1]})
	}
	return out
}

func TestBuildReferenceSet(t *testing.T) {
	s := newScorer()

	tests := []struct {
		name        string
		groundTruth string
		wantLiteral string
		wantSpoken  string
	}{
		{"no_numerals", "Guten Morgen!", "guten morgen", "guten morgen"},
		{"cardinal", "Ich habe 23 Äpfel.", "ich habe 23 äpfel", "ich habe dreiundzwanzig äpfel"},
		{"ordinal", "Am 3. Oktober", "am 3 oktober", "am dritte oktober"},
		{"thirty", "30 Tage", "30 tage", "dreissig tage"},
		{"compound", "ein 5-Sterne-Hotel", "ein 5 sterne hotel", "ein fünf sterne hotel"},
		{"range", "von 9-17 Uhr", "von 9 17 uhr", "von neun siebzehn uhr"},
		{"million", "1000000 Euro", "1000000 euro", "eine million euro"},
		{"unparsable", "1,5 Liter", "15 liter", "15 liter"},
		{"empty", "", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rs := s.BuildReferenceSet(tt.groundTruth)
			if rs.Literal() != tt.wantLiteral {
				t.Errorf("Literal() = %q, want %q", rs.Literal(), tt.wantLiteral)
			}
			if rs.Spoken() != tt.wantSpoken {
				t.Errorf("Spoken() = %q, want %q", rs.Spoken(), tt.wantSpoken)
			}
			alts := rs.Alternatives()
			if len(alts) != 2 || alts[0] != tt.wantLiteral || alts[1] != tt.wantSpoken {
				t.Errorf("Alternatives() = %q", alts)
			}
		})
	}
}

func TestAlternativesIsACopy(t *testing.T) {
	rs := newScorer().BuildReferenceSet("7 Zwerge")
	alts := rs.Alternatives()
	alts[0] = "changed"
	if rs.Literal() != "7 zwerge" {
		t.Errorf("Literal() = %q after modifying Alternatives()", rs.Literal())
	}
}

func TestScore(t *testing.T) {
	truth := items(
		"a.wav", "Ich habe heute 23 Äpfel gekauft.",
		"b.wav", "Der Zug fährt am 3. Oktober um 9-10 Uhr ab.",
		"c.wav", "Das ist ein ganz normaler Satz ohne Zahlen.",
	)

	tests := []struct {
		name       string
		hypotheses []transcript.Item
		want       float64
	}{
		{
			name: "matches_literal_variant",
			hypotheses: items(
				"a.wav", "ich habe heute 23 äpfel gekauft",
				"b.wav", "der zug fährt am 3 oktober um 9 10 uhr ab",
				"c.wav", "das ist ein ganz normaler satz ohne zahlen",
			),
			want: 1,
		},
		{
			name: "matches_spoken_variant",
			hypotheses: items(
				"c.wav", "Das ist ein ganz normaler Satz ohne Zahlen",
				"b.wav", "Der Zug fährt am dritte Oktober um neun zehn Uhr ab",
				"a.wav", "Ich habe heute dreiundzwanzig Äpfel gekauft",
			),
			want: 1,
		},
		{
			name: "mixed_variants_per_item",
			hypotheses: items(
				"a.wav", "ich habe heute dreiundzwanzig äpfel gekauft",
				"b.wav", "der zug fährt am 3 oktober um 9 10 uhr ab",
				"c.wav", "das ist ein ganz normaler satz ohne zahlen",
			),
			want: 1,
		},
		{
			name: "nothing_matches",
			hypotheses: items(
				"a.wav", "xyz",
				"b.wav", "xyz",
				"c.wav", "xyz",
			),
			want: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := newScorer().Score(truth, tt.hypotheses)
			if err != nil {
				t.Fatalf("Score() error = %v", err)
			}
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Score() = %.15f, want %.15f", got, tt.want)
			}
		})
	}
}

func TestScoreEmpty(t *testing.T) {
	got, err := newScorer().Score(nil, nil)
	if err != nil {
		t.Fatalf("Score() error = %v", err)
	}
	if got != 0 {
		t.Errorf("Score() = %v, want 0", got)
	}
}

func TestScoreBounds(t *testing.T) {
	truth := items(
		"1", "Heute ist der 1. Mai und es regnet.",
		"2", "Wir fahren mit dem ICE 578 nach Köln.",
	)
	hyp := items(
		"1", "heute ist der erste mai und es regnet nicht",
		"2", "wir fahren mit dem ice nach köln",
	)
	got, err := newScorer().Score(truth, hyp)
	if err != nil {
		t.Fatalf("Score() error = %v", err)
	}
	if got <= 0 || got >= 1 {
		t.Errorf("Score() = %v, want a value strictly between 0 and 1", got)
	}
}

func TestScoreIgnoresExtraHypotheses(t *testing.T) {
	truth := items("a", "eins zwei drei vier")
	hyp := items("a", "eins zwei drei vier", "b", "etwas ganz anderes")
	got, err := newScorer().Score(truth, hyp)
	if err != nil {
		t.Fatalf("Score() error = %v", err)
	}
	if got != 1 {
		t.Errorf("Score() = %v, want 1", got)
	}
}

func TestScoreMissingHypothesis(t *testing.T) {
	truth := items("a.wav", "Hallo Welt", "b.wav", "Noch ein Satz")
	hyp := items("a.wav", "hallo welt")

	got, err := newScorer().Score(truth, hyp)
	if !errors.Is(err, ErrMissingHypothesis) {
		t.Fatalf("Score() error = %v, want ErrMissingHypothesis", err)
	}
	if got != 0 {
		t.Errorf("Score() = %v, want 0 alongside the error", got)
	}
}

func TestScoreDuplicateHypothesis(t *testing.T) {
	truth := items("a.wav", "Hallo Welt")
	hyp := items("a.wav", "hallo welt", "a.wav", "hallo")

	if _, err := newScorer().Score(truth, hyp); !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("Score() error = %v, want ErrDuplicateID", err)
	}
}

func TestScoreEmptyHypothesisCountsOneToken(t *testing.T) {
	truth := items("a", "eins zwei drei vier", "b", "fünf")
	hyp := items("a", "eins zwei drei vier", "b", "...")

	segments, err := newScorer().Corpus(truth, hyp)
	if err != nil {
		t.Fatalf("Corpus() error = %v", err)
	}
	if got := segments[1].Hypothesis; len(got) != 1 || got[0] != "" {
		t.Fatalf("empty hypothesis tokens = %q, want one empty token", got)
	}

	rep, err := newScorer().Evaluate(truth, hyp)
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if rep.BLEU.HypothesisLength != 5 || rep.BLEU.ReferenceLength != 5 {
		t.Errorf("lengths = %d/%d, want 5/5", rep.BLEU.HypothesisLength, rep.BLEU.ReferenceLength)
	}
	if rep.BLEU.BrevityPenalty != 1 {
		t.Errorf("BrevityPenalty = %v, want 1", rep.BLEU.BrevityPenalty)
	}
	// Precisions 4/5, 3/4, 2/3, 1/2 multiply to 0.2.
	if want := math.Pow(0.2, 0.25); math.Abs(rep.BLEU.Score-want) > 1e-12 {
		t.Errorf("Score = %.15f, want %.15f", rep.BLEU.Score, want)
	}
}

func TestScoreEmptyReferenceMatchesEmptyHypothesis(t *testing.T) {
	truth := items("a", "eins zwei drei vier", "b", "?!")
	hyp := items("a", "eins zwei drei vier", "b", "")

	got, err := newScorer(WithMaxOrder(1)).Score(truth, hyp)
	if err != nil {
		t.Fatalf("Score() error = %v", err)
	}
	if got != 1 {
		t.Errorf("Score() = %v, want 1", got)
	}
}

func TestScoreGroundTruthScenario(t *testing.T) {
	// "ä" is part of the alphabet, so "aepfel" is a different token; only
	// "23" matches and no bigram does.
	truth := items("a.wav", "23 Äpfel")

	got, err := newScorer(WithMaxOrder(1)).Score(truth, items("a.wav", "23 aepfel"))
	if err != nil {
		t.Fatalf("Score() error = %v", err)
	}
	if math.Abs(got-0.5) > 1e-12 {
		t.Errorf("unigram Score() = %v, want 0.5", got)
	}

	got, err = newScorer(WithMaxOrder(2)).Score(truth, items("a.wav", "23 Äpfel"))
	if err != nil {
		t.Fatalf("Score() error = %v", err)
	}
	if got != 1 {
		t.Errorf("bigram Score() for identical text = %v, want 1", got)
	}
}

func TestScoreDeterministicAndConcurrent(t *testing.T) {
	truth := items(
		"a", "Am 24. Dezember 2023 lagen 15 cm Schnee.",
		"b", "Das Spiel endete 2-1 nach Verlängerung.",
	)
	hyp := items(
		"a", "am vierundzwanzigsten dezember zweitausenddreiundzwanzig lagen fünfzehn cm schnee",
		"b", "das spiel endete zwei eins nach verlängerung",
	)
	s := newScorer()
	want, err := s.Score(truth, hyp)
	if err != nil {
		t.Fatalf("Score() error = %v", err)
	}

	var wg sync.WaitGroup
	results := make([]float64, 8)
	for i := range results {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], _ = s.Score(truth, hyp)
		}()
	}
	wg.Wait()
	for i, got := range results {
		if got != want {
			t.Errorf("goroutine %d: Score() = %v, want %v", i, got, want)
		}
	}
}

func TestEvaluate(t *testing.T) {
	truth := items(
		"a", "Ich habe 23 Äpfel gekauft",
		"b", "Wir sehen uns morgen früh",
	)
	hyp := items(
		"a", "ich habe dreiundzwanzig äpfel gekauft",
		"b", "wir sehen uns morgen",
	)
	rep, err := newScorer().Evaluate(truth, hyp)
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if rep.Items != 2 {
		t.Errorf("Items = %d, want 2", rep.Items)
	}
	// a matches its spoken variant exactly, b drops one word.
	if rep.WER.Deletions != 1 || rep.WER.Edits() != 1 || rep.WER.RefWords != 10 {
		t.Errorf("WER = %+v, want 1 deletion over 10 words", rep.WER)
	}
	if rep.BLEU.Score <= 0 || rep.BLEU.Score >= 1 {
		t.Errorf("BLEU = %v, want a value strictly between 0 and 1", rep.BLEU.Score)
	}
	if rep.BLEU.BrevityPenalty >= 1 {
		t.Errorf("BrevityPenalty = %v, want < 1 for a shorter hypothesis", rep.BLEU.BrevityPenalty)
	}
}

func TestEvaluateMissingHypothesis(t *testing.T) {
	_, err := newScorer().Evaluate(items("x", "Hallo"), nil)
	if !errors.Is(err, ErrMissingHypothesis) {
		t.Fatalf("Evaluate() error = %v, want ErrMissingHypothesis", err)
	}
}
