package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/chaz8081/gostt-score/internal/config"
	"github.com/spf13/cobra"
)

var (
	configPath string
	dataDir    string
	submission string
	splits     []string
	lang       string
	maxOrder   int
	reportWER  bool
	verbose    bool
	quiet      bool

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "gostt-score",
	Short: "Score ASR transcripts against ground truth with corpus BLEU",
	Long: `gostt-score rates a submission of speech recognition transcripts against one
or more ground-truth splits. Both sides are normalized to a small alphabet and
every ground-truth transcript is accepted as written or with its numerals
spelled out ("23 Äpfel" or "dreiundzwanzig Äpfel").

Each split score is printed on one line, separated by " ; ".`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadConfig(configPath)
		if err != nil {
			return fmt.Errorf("config: %w", err)
		}
		if err := applyFlags(cmd, c); err != nil {
			return err
		}
		if err := c.Validate(); err != nil {
			return fmt.Errorf("config validation: %w", err)
		}
		setupLogging(c.LogLevel)
		cfg = c
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runScore(cmd.Context(), cfg, cmd.OutOrStdout())
	},
}

// setupLogging installs a text handler on stderr. -v and -q override the
// configured level.
func setupLogging(configured string) {
	level := slog.LevelInfo
	if err := level.UnmarshalText([]byte(configured)); err != nil {
		level = slog.LevelInfo
	}
	if verbose {
		level = slog.LevelDebug
	}
	if quiet {
		level = slog.LevelError
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}

// loadConfig loads the config from the specified path, or falls back to
// the default config path, or uses built-in defaults.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}

	defaultPath := config.DefaultConfigPath()
	if _, err := os.Stat(defaultPath); err == nil {
		c, err := config.Load(defaultPath)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", defaultPath, err)
		}
		return c, nil
	}

	return config.Default(), nil
}

// applyFlags copies explicitly set flags over the loaded config.
func applyFlags(cmd *cobra.Command, c *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("data-dir") {
		c.DataDir = dataDir
	}
	if flags.Changed("submission") {
		c.Submission = submission
	}
	if flags.Changed("language") {
		c.Language = lang
	}
	if flags.Changed("max-order") {
		c.BLEU.MaxOrder = maxOrder
	}
	if flags.Changed("wer") {
		c.Report.WER = reportWER
	}
	if flags.Changed("split") {
		c.Splits = nil
		for _, v := range splits {
			s, err := config.ParseSplit(v)
			if err != nil {
				return err
			}
			c.Splits = append(c.Splits, s)
		}
	}
	return nil
}

// Execute runs the root command under a context cancelled by SIGINT or SIGTERM.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		slog.Error("gostt-score failed", "error", err)
		return err
	}
	return nil
}

func init() {
	defaults := config.Default()

	f := rootCmd.Flags()
	f.StringVarP(&configPath, "config", "c", "", "path to config file (default: ~/.config/gostt-score/config.yaml)")
	f.StringVarP(&dataDir, "data-dir", "d", defaults.DataDir, "directory relative CSV paths are resolved against")
	f.StringVarP(&submission, "submission", "s", defaults.Submission, "submission CSV with hypotheses")
	f.StringArrayVar(&splits, "split", nil, "ground-truth split as name=path, repeatable (replaces configured splits)")
	f.StringVarP(&lang, "language", "l", defaults.Language, "BCP 47 tag of the transcript language")
	f.IntVar(&maxOrder, "max-order", defaults.BLEU.MaxOrder, "highest BLEU n-gram order")
	f.BoolVar(&reportWER, "wer", false, "log the corpus word error rate of every split")

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-error output")
}
