package extractor

import (
	"maildump-sentiment/internal/csvio"
	"maildump-sentiment/internal/logging"
	"maildump-sentiment/internal/mailparse"
	"maildump-sentiment/internal/models"
	"maildump-sentiment/internal/table"

	"github.com/google/uuid"
)

// Source yields the raw records of an email dump in order
type Source interface {
	Records() ([]models.RawRecord, error)
}

// FileSource reads raw records from a CSV dump with file and message columns
type FileSource struct {
	Path         string
	MaxFieldSize int64
}

// Records implements Source
func (s FileSource) Records() ([]models.RawRecord, error) {
	return csvio.ReadRawRecordsFile(s.Path, csvio.FieldSizeLimit(s.MaxFieldSize))
}

// Processor turns the raw records of a Source into the extracted table
type Processor struct {
	source Source
}

// NewProcessor creates a new Processor reading from source
func NewProcessor(source Source) *Processor {
	return &Processor{source: source}
}

// Process orchestrates the extraction workflow:
// read all records → extract each one → assemble the table.
// A read failure returns no table at all.
func (p *Processor) Process() (*table.Table, error) {
	locallog := logging.Log.WithField("trace_id", uuid.New().String())

	raws, err := p.source.Records()
	if err != nil {
		locallog.WithError(err).Error("Error reading email dump")
		return nil, err
	}
	locallog.Infof("Read %d raw records", len(raws))

	records := ExtractAll(raws)
	for i, rec := range records {
		if rec.MessageText == nil {
			locallog.WithField("row", i).Debug("No message body found")
		}
	}

	t, err := ToTable(records)
	if err != nil {
		return nil, err
	}

	locallog.Infof("Extracted %d records", t.Len())
	return t, nil
}

// ExtractAll extracts every raw record, keeping input order
func ExtractAll(raws []models.RawRecord) []models.Record {
	records := make([]models.Record, len(raws))
	for i, raw := range raws {
		records[i] = mailparse.Extract(raw)
	}
	return records
}

// ToTable lays records out as file, rec_date, sender, recipients, message_text
func ToTable(records []models.Record) (*table.Table, error) {
	t, err := table.New(models.RecordColumns...)
	if err != nil {
		return nil, err
	}

	for _, rec := range records {
		recipients := rec.Recipients
		if recipients == nil {
			recipients = []string{}
		}
		if err := t.AppendRow(rec.File, rec.RecDate, rec.Sender, recipients, rec.MessageText); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// ParseFile runs the extraction over a CSV dump
func ParseFile(path string, maxFieldSize int64) (*table.Table, error) {
	return NewProcessor(FileSource{Path: path, MaxFieldSize: maxFieldSize}).Process()
}
