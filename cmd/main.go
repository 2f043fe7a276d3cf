// Package main implements the maildump CLI: field extraction and sentiment
// annotation over CSV email dumps.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"maildump-sentiment/internal/config"
	"maildump-sentiment/internal/csvio"
	"maildump-sentiment/internal/logging"
	"maildump-sentiment/internal/models"
	"maildump-sentiment/internal/table"
)

var (
	configPath   string
	logLevel     string
	outputPath   string
	outputFormat string

	version = "dev"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		logging.Log.Error(err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "maildump",
	Short: "Extract fields from email dumps and score their sentiment",
	Long: `maildump reads CSV email dumps (one message per row, with file and
message columns), extracts sender, recipients, date and body from each
message, and annotates message bodies with two sentiment scores.

Tables are written to stdout unless --output is given. Logs go to stderr.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVarP(&outputPath, "output", "o", "", "output file (default: stdout)")
	rootCmd.PersistentFlags().StringVar(&outputFormat, "format", "", "output format: csv or jsonl")

	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(annotateCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(fetchCmd)
}

// loadConfig reads the configuration file when one is given and applies
// flag overrides on top of it.
func loadConfig(cmd *cobra.Command) (*models.Config, error) {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return nil, fmt.Errorf("error reading configuration file: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if flags.Changed("output") {
		cfg.Output.Path = outputPath
	}
	if flags.Changed("format") {
		cfg.Output.Format = outputFormat
	}

	if err := logging.SetLevel(cfg.LogLevel); err != nil {
		return nil, err
	}
	return cfg, nil
}

// inputPath picks the positional argument over the configured input.
func inputPath(cfg *models.Config, args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if cfg.Input.Path == "" {
		return "", fmt.Errorf("no input file given")
	}
	return cfg.Input.Path, nil
}

// writeTable writes t to the configured output, or to out when no path is set.
// A file output is written next to its target and renamed into place, so a
// failed write leaves nothing behind.
func writeTable(out io.Writer, cfg *models.Config, t *table.Table) error {
	if cfg.Output.Path == "" {
		return csvio.Write(out, t, cfg.Output.Format)
	}

	f, err := os.CreateTemp(filepath.Dir(cfg.Output.Path), ".maildump-*")
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	tmp := f.Name()
	_ = f.Chmod(0o644)

	if err := csvio.Write(f, t, cfg.Output.Format); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("close output: %w", err)
	}
	if err := os.Rename(tmp, cfg.Output.Path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename output: %w", err)
	}

	logging.Log.Infof("Wrote %d rows to %s", t.Len(), cfg.Output.Path)
	return nil
}
