// Package score rates ASR hypotheses against ground-truth transcripts with
// corpus BLEU.
//
// Every ground-truth transcript is normalized twice, once as written and once
// with its numerals spelled out, and a hypothesis may match either variant.
// "23 Äpfel" therefore accepts both "23 äpfel" and "dreiundzwanzig äpfel".
package score

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/chaz8081/gostt-score/internal/bleu"
	"github.com/chaz8081/gostt-score/internal/numexpand"
	"github.com/chaz8081/gostt-score/internal/textnorm"
	"github.com/chaz8081/gostt-score/internal/transcript"
)

var (
	// ErrMissingHypothesis means a ground-truth item has no hypothesis with
	// the same identifier. The pairing is malformed and no score is produced.
	ErrMissingHypothesis = errors.New("missing hypothesis")
	// ErrDuplicateID means two hypotheses share an identifier.
	ErrDuplicateID = errors.New("duplicate hypothesis identifier")
)

// Option configures a Scorer.
type Option func(*Scorer)

// WithMaxOrder sets the highest BLEU n-gram order. Default: 4.
func WithMaxOrder(n int) Option {
	return func(s *Scorer) {
		s.opts.MaxOrder = n
	}
}

// WithLogger sets the logger used for debug output. Default: slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Scorer) {
		s.log = l
	}
}

// Scorer computes corpus scores. It is read-only after construction and safe
// for concurrent use.
type Scorer struct {
	expander *numexpand.Expander
	opts     bleu.Options
	log      *slog.Logger
}

// New returns a Scorer expanding numerals with e.
func New(e *numexpand.Expander, opts ...Option) *Scorer {
	s := &Scorer{
		expander: e,
		opts:     bleu.Options{MaxOrder: bleu.DefaultMaxOrder},
		log:      slog.Default(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Report is the outcome of one evaluation run.
type Report struct {
	Items int
	BLEU  bleu.Result
	WER   WERResult
}

// BuildReferenceSet returns the reference variants for groundTruth.
func (s *Scorer) BuildReferenceSet(groundTruth string) ReferenceSet {
	return BuildReferenceSet(groundTruth, s.expander)
}

// Corpus pairs every ground-truth item, in order, with the hypothesis of the
// same identifier and returns the token-level segments.
func (s *Scorer) Corpus(truth, hypotheses []transcript.Item) ([]bleu.Segment, error) {
	byID := make(map[string]string, len(hypotheses))
	for _, h := range hypotheses {
		if _, dup := byID[h.ID]; dup {
			return nil, fmt.Errorf("score: %w %q", ErrDuplicateID, h.ID)
		}
		byID[h.ID] = h.Text
	}

	segments := make([]bleu.Segment, 0, len(truth))
	for _, gt := range truth {
		hyp, ok := byID[gt.ID]
		if !ok {
			return nil, fmt.Errorf("score: %w for %q", ErrMissingHypothesis, gt.ID)
		}
		segments = append(segments, bleu.Segment{
			References: s.BuildReferenceSet(gt.Text).tokens(),
			Hypothesis: textnorm.Tokens(textnorm.Normalize(hyp)),
		})
	}
	return segments, nil
}

// Score returns the corpus BLEU of hypotheses against truth, in [0, 1].
// An empty ground truth scores 0.
func (s *Scorer) Score(truth, hypotheses []transcript.Item) (float64, error) {
	segments, err := s.Corpus(truth, hypotheses)
	if err != nil {
		return 0, err
	}
	return s.bleu(segments).Score, nil
}

// Evaluate returns BLEU together with the corpus word error rate. For WER
// each item is compared with whichever reference variant needs fewer edits.
func (s *Scorer) Evaluate(truth, hypotheses []transcript.Item) (Report, error) {
	segments, err := s.Corpus(truth, hypotheses)
	if err != nil {
		return Report{}, err
	}

	rep := Report{Items: len(segments), BLEU: s.bleu(segments)}
	for _, seg := range segments {
		rep.WER.add(bestWER(seg.References, seg.Hypothesis))
	}
	s.log.Debug("word error rate",
		"wer", rep.WER.WER,
		"substitutions", rep.WER.Substitutions,
		"insertions", rep.WER.Insertions,
		"deletions", rep.WER.Deletions,
		"ref_words", rep.WER.RefWords)
	return rep, nil
}

func (s *Scorer) bleu(segments []bleu.Segment) bleu.Result {
	res := bleu.Corpus(segments, s.opts)
	s.log.Debug("corpus bleu",
		"segments", len(segments),
		"hyp_len", res.HypothesisLength,
		"ref_len", res.ReferenceLength,
		"brevity_penalty", res.BrevityPenalty,
		"precisions", res.Precisions,
		"score", res.Score)
	return res
}
