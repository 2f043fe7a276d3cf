package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	imapclient "maildump-sentiment/internal/imap"
	"maildump-sentiment/internal/logging"
	"maildump-sentiment/internal/models"
	"maildump-sentiment/internal/table"
)

const maxBackoff = 5 * time.Minute

var (
	fetchRetries int

	newIMAPClient = func() imapclient.Client { return imapclient.NewStandardClient() }
	sleep         = time.Sleep
)

func init() {
	fetchCmd.Flags().IntVar(&fetchRetries, "retries", 3, "attempts before giving up on the IMAP server")
}

// fetchCmd dumps a mailbox in the CSV layout the extractor reads
var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Dump an IMAP mailbox as a file,message CSV",
	Long: `Connect to the IMAP server from the email section of the configuration,
read every message of the mailbox (or those received within email.since)
and write one file,message row per message. Messages are not marked as seen.

Examples:
  maildump fetch --config maildump.yaml -o inbox.csv
  maildump fetch --config maildump.yaml | maildump run /dev/stdin`,
	Args: cobra.NoArgs,
	RunE: runFetch,
}

func runFetch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.Email.Imap == "" {
		return fmt.Errorf("no IMAP server configured")
	}

	records, err := fetchRecords(cfg.Email, fetchRetries)
	if err != nil {
		return err
	}

	t, err := table.New(models.ColFile, "message")
	if err != nil {
		return err
	}
	for _, rec := range records {
		if err := t.AppendRow(rec.File, rec.Message); err != nil {
			return err
		}
	}
	return writeTable(cmd.OutOrStdout(), cfg, t)
}

// fetchRecords reads the mailbox, retrying with an exponential backoff
func fetchRecords(cfg models.EmailConfig, attempts int) ([]models.RawRecord, error) {
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for failures := 0; failures < attempts; failures++ {
		if failures > 0 {
			backoff := time.Second * time.Duration(1<<min(failures, 10))
			if backoff > maxBackoff {
				backoff = maxBackoff
			}
			logging.Log.Warnf("IMAP failed %d times, waiting %s before next attempt", failures, backoff)
			sleep(backoff)
		}

		var records []models.RawRecord
		records, err = imapclient.NewSource(newIMAPClient(), cfg).Records()
		if err == nil {
			return records, nil
		}
		logging.Log.Errorf("IMAP error: %v", err)
	}
	return nil, err
}
