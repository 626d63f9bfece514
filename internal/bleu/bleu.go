// Package bleu computes corpus-level BLEU over pre-tokenized text.
//
// Each segment pairs one hypothesis with any number of alternative
// references. Clipped n-gram matches and totals are summed over the whole
// corpus before the precisions are combined, so the result is not an average
// of per-segment scores.
package bleu

import (
	"math"
	"strings"
)

// DefaultMaxOrder is the highest n-gram order used when Options leaves it unset.
const DefaultMaxOrder = 4

// zeroPrecisionFloor stands in for a precision of zero once at least one
// unigram matched. It is the smallest normal float64, which keeps log finite
// and drives the score towards zero without smoothing.
const zeroPrecisionFloor = 0x1p-1022

// Segment is one hypothesis and the references it may match.
type Segment struct {
	References [][]string
	Hypothesis []string
}

// Options configures the score.
type Options struct {
	// MaxOrder is the highest n-gram order. Orders 1..MaxOrder are weighted
	// uniformly. Zero means DefaultMaxOrder.
	MaxOrder int
}

// Result holds the corpus score and the statistics it was computed from.
type Result struct {
	Score            float64   // in [0, 1]
	Precisions       []float64 // modified precision per order, index 0 is unigrams
	BrevityPenalty   float64
	HypothesisLength int
	ReferenceLength  int // sum of closest reference lengths
}

// Corpus scores segments. An empty corpus, or one without a single matching
// unigram, scores exactly 0.
func Corpus(segments []Segment, opts Options) Result {
	maxOrder := opts.MaxOrder
	if maxOrder <= 0 {
		maxOrder = DefaultMaxOrder
	}

	matches := make([]int, maxOrder)
	totals := make([]int, maxOrder)
	var hypLen, refLen int

	for _, seg := range segments {
		for n := 1; n <= maxOrder; n++ {
			m, total := clippedMatches(seg.References, seg.Hypothesis, n)
			matches[n-1] += m
			totals[n-1] += max(1, total)
		}
		hypLen += len(seg.Hypothesis)
		refLen += closestRefLength(seg.References, len(seg.Hypothesis))
	}

	res := Result{
		Precisions:       make([]float64, maxOrder),
		BrevityPenalty:   brevityPenalty(refLen, hypLen),
		HypothesisLength: hypLen,
		ReferenceLength:  refLen,
	}
	for i := range totals {
		if totals[i] > 0 {
			res.Precisions[i] = float64(matches[i]) / float64(totals[i])
		}
	}

	if len(segments) == 0 || matches[0] == 0 {
		return res
	}

	weight := 1 / float64(maxOrder)
	var logSum float64
	for _, p := range res.Precisions {
		if p == 0 {
			p = zeroPrecisionFloor
		}
		logSum += weight * math.Log(p)
	}
	res.Score = res.BrevityPenalty * math.Exp(logSum)
	return res
}

// Sentence scores a single segment. It is Corpus over a one-element corpus.
func Sentence(references [][]string, hypothesis []string, opts Options) Result {
	return Corpus([]Segment{{References: references, Hypothesis: hypothesis}}, opts)
}

// clippedMatches counts hypothesis n-grams of order n, clipping each n-gram's
// count by the largest count it has in any single reference.
func clippedMatches(references [][]string, hypothesis []string, n int) (matches, total int) {
	counts := ngramCounts(hypothesis, n)
	if len(counts) == 0 {
		return 0, 0
	}

	maxRef := make(map[string]int, len(counts))
	for _, ref := range references {
		for gram, c := range ngramCounts(ref, n) {
			if _, ok := counts[gram]; ok && c > maxRef[gram] {
				maxRef[gram] = c
			}
		}
	}

	for gram, c := range counts {
		total += c
		matches += min(c, maxRef[gram])
	}
	return matches, total
}

// ngramCounts keys n-grams by their tokens joined with NUL, which cannot
// occur inside a whitespace-split token of normalized text.
func ngramCounts(tokens []string, n int) map[string]int {
	if len(tokens) < n {
		return nil
	}
	counts := make(map[string]int, len(tokens)-n+1)
	for i := 0; i+n <= len(tokens); i++ {
		counts[strings.Join(tokens[i:i+n], "\x00")]++
	}
	return counts
}

// closestRefLength returns the reference length closest to hypLen, the
// shorter one on ties.
func closestRefLength(references [][]string, hypLen int) int {
	best, bestDiff := 0, -1
	for _, ref := range references {
		l := len(ref)
		diff := l - hypLen
		if diff < 0 {
			diff = -diff
		}
		if bestDiff < 0 || diff < bestDiff || (diff == bestDiff && l < best) {
			best, bestDiff = l, diff
		}
	}
	return best
}

func brevityPenalty(refLen, hypLen int) float64 {
	switch {
	case hypLen > refLen:
		return 1
	case hypLen == 0:
		return 0
	default:
		return math.Exp(1 - float64(refLen)/float64(hypLen))
	}
}
