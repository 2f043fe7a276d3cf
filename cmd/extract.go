package main

import (
	"github.com/spf13/cobra"

	"maildump-sentiment/internal/extractor"
)

// extractCmd runs the field extractor over a dump
var extractCmd = &cobra.Command{
	Use:   "extract [file.csv]",
	Short: "Extract date, sender, recipients and body from a CSV email dump",
	Long: `Read a CSV email dump with file and message columns and write a table with
the columns file, rec_date, sender, recipients and message_text.

Examples:
  maildump extract emails.csv
  maildump extract emails.csv --format jsonl -o records.jsonl`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExtract,
}

func runExtract(cmd *cobra.Command, args []string) error {
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
	return writeTable(cmd.OutOrStdout(), cfg, t)
}
