package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"maildump-sentiment/internal/csvio"
	"maildump-sentiment/internal/models"
	"maildump-sentiment/internal/sentiment"
)

// annotateCmd adds sentiment scores to an existing table
var annotateCmd = &cobra.Command{
	Use:   "annotate [file.csv]",
	Short: "Add tb_polarity and vader_compound columns to a CSV table",
	Long: `Read a CSV table holding a message body column (message_body unless
sentiment.bodyColumn says otherwise) and append the polarity and compound
sentiment scores of every body.

Examples:
  maildump annotate bodies.csv
  maildump annotate bodies.csv -o scored.csv`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnnotate,
}

func runAnnotate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	path, err := inputPath(cfg, args)
	if err != nil {
		return err
	}

	annotator, err := newAnnotator(cfg.Sentiment)
	if err != nil {
		return err
	}

	t, err := csvio.ReadTableFile(path, csvio.FieldSizeLimit(cfg.Input.MaxFieldSize))
	if err != nil {
		return err
	}
	if err := annotator.Annotate(t); err != nil {
		return err
	}
	return writeTable(cmd.OutOrStdout(), cfg, t)
}

// newAnnotator builds both scorers from the sentiment settings
func newAnnotator(cfg models.SentimentConfig) (*sentiment.Annotator, error) {
	var lex *sentiment.Lexicon
	if cfg.Lexicon != "" {
		loaded, err := sentiment.LoadLexicon(cfg.Lexicon)
		if err != nil {
			return nil, fmt.Errorf("error loading lexicon: %w", err)
		}
		lex = loaded
	}

	polarity := sentiment.NewPolarityScorer(lex)
	compound := sentiment.NewCompoundScorer(cfg.ReuseAnalyzer)
	return sentiment.NewAnnotator(polarity, compound).WithBodyColumn(cfg.BodyColumn), nil
}
