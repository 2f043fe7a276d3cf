package main

import (
	"github.com/spf13/cobra"

	"maildump-sentiment/internal/extractor"
	"maildump-sentiment/internal/logging"
	"maildump-sentiment/internal/models"
)

// runCmd chains extraction and annotation
var runCmd = &cobra.Command{
	Use:   "run [file.csv]",
	Short: "Extract fields from a dump and annotate the bodies with sentiment",
	Long: `Run the field extractor over a CSV email dump, rename message_text to
message_body and append the sentiment columns. With sentiment.enabled set
to false the annotation step is skipped.

Examples:
  maildump run emails.csv -o annotated.csv
  maildump run --config maildump.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPipeline,
}

func runPipeline(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	path, err := inputPath(cfg, args)
	if err != nil {
		return err
	}

	t, err := extractor.ParseFile(path, cfg.Input.MaxFieldSize)
	if err != nil {
		return err
	}
	if err := t.RenameColumn(models.ColMessageText, models.ColMessageBody); err != nil {
		return err
	}

	if cfg.Sentiment.Enabled {
		// the extracted body always lands in message_body
		cfg.Sentiment.BodyColumn = models.ColMessageBody
		annotator, err := newAnnotator(cfg.Sentiment)
		if err != nil {
			return err
		}
		if err := annotator.Annotate(t); err != nil {
			return err
		}
	} else {
		logging.Log.Info("Sentiment annotation disabled")
	}

	return writeTable(cmd.OutOrStdout(), cfg, t)
}
