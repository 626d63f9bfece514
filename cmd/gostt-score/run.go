package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/chaz8081/gostt-score/internal/config"
	"github.com/chaz8081/gostt-score/internal/numexpand"
	"github.com/chaz8081/gostt-score/internal/score"
	"github.com/chaz8081/gostt-score/internal/transcript"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
)

// splitResult is the outcome for one configured split.
type splitResult struct {
	name   string
	report score.Report
}

// runScore scores every configured split against the submission and writes
// the scores to w.
func runScore(ctx context.Context, cfg *config.Config, w io.Writer) error {
	tag, err := language.Parse(cfg.Language)
	if err != nil {
		return fmt.Errorf("language %q: %w", cfg.Language, err)
	}
	expander, err := numexpand.ForLanguage(tag)
	if err != nil {
		return fmt.Errorf("language %q: %w", cfg.Language, err)
	}
	scorer := score.New(expander,
		score.WithMaxOrder(cfg.BLEU.MaxOrder),
		score.WithLogger(slog.Default()),
	)

	cols := transcript.Columns{ID: cfg.Columns.ID, Text: cfg.Columns.Text}
	subPath := cfg.ResolvePath(cfg.Submission)
	hypotheses, err := transcript.ReadCSV(subPath, cols)
	if err != nil {
		return err
	}
	slog.Debug("submission loaded", "path", subPath, "items", len(hypotheses))

	start := time.Now()
	results, err := scoreSplits(ctx, cfg, scorer, cols, hypotheses)
	if err != nil {
		return err
	}
	slog.Debug("scoring finished", "splits", len(results), "elapsed", time.Since(start).Round(time.Millisecond))

	for _, r := range results {
		if cfg.Report.WER {
			slog.Info("split scored",
				"split", r.name,
				"items", r.report.Items,
				"bleu", r.report.BLEU.Score,
				"wer", r.report.WER.WER)
		} else {
			slog.Info("split scored", "split", r.name, "items", r.report.Items, "bleu", r.report.BLEU.Score)
		}
	}

	_, err = fmt.Fprintln(w, formatScores(results))
	return err
}

// scoreSplits scores the splits concurrently. Results keep the configured
// order; the first failure cancels the remaining splits.
func scoreSplits(ctx context.Context, cfg *config.Config, scorer *score.Scorer, cols transcript.Columns, hypotheses []transcript.Item) ([]splitResult, error) {
	results := make([]splitResult, len(cfg.Splits))

	g, gctx := errgroup.WithContext(ctx)
	for i, split := range cfg.Splits {
		i, split := i, split
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			path := cfg.ResolvePath(split.Path)
			truth, err := transcript.ReadCSV(path, cols)
			if err != nil {
				return fmt.Errorf("split %s: %w", split.Name, err)
			}
			if err := gctx.Err(); err != nil {
				return err
			}

			rep, err := scorer.Evaluate(truth, hypotheses)
			if err != nil {
				return fmt.Errorf("split %s: %w", split.Name, err)
			}
			results[i] = splitResult{name: split.Name, report: rep}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// formatScores renders the BLEU scores as "0.12345678901234567890 ; ...".
func formatScores(results []splitResult) string {
	parts := make([]string, len(results))
	for i, r := range results {
		parts[i] = fmt.Sprintf("%.20f", r.report.BLEU.Score)
	}
	return strings.Join(parts, " ; ")
}
