package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"maildump-sentiment/internal/models"
	"maildump-sentiment/internal/table"

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

// FallbackFieldSizeLimit replaces a field-size ceiling the platform cannot represent
const FallbackFieldSizeLimit = 1_000_000_000

var ErrFieldTooLarge = errors.New("field larger than field limit")

// FieldSizeLimit resolves the configured ceiling: 0 asks for the platform
// maximum, a negative or unrepresentable request falls back to FallbackFieldSizeLimit.
func FieldSizeLimit(requested int64) int {
	switch {
	case requested == 0:
		return math.MaxInt
	case requested < 0, requested > int64(math.MaxInt):
		return FallbackFieldSizeLimit
	default:
		return int(requested)
	}
}

// Reader reads a headed CSV document strictly decoded as UTF-8
type Reader struct {
	csv    *csv.Reader
	limit  int
	line   int
	header []string
	index  map[string]int
}

// NewReader wraps r. limit is a resolved ceiling from FieldSizeLimit.
func NewReader(r io.Reader, limit int) *Reader {
	cr := csv.NewReader(transform.NewReader(r, encoding.UTF8Validator))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	return &Reader{csv: cr, limit: limit}
}

// Header reads the header row on first use. An empty document has no header.
func (r *Reader) Header() ([]string, error) {
	if r.index != nil {
		return r.header, nil
	}

	header, err := r.next()
	if err == io.EOF {
		r.index = map[string]int{}
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	r.header = header
	r.index = make(map[string]int, len(header))
	for i, name := range header {
		// a repeated name refers to its last occurrence
		r.index[name] = i
	}
	return r.header, nil
}

// Next returns the next data row; io.EOF ends the document
func (r *Reader) Next() (Row, error) {
	if _, err := r.Header(); err != nil {
		return Row{}, err
	}
	if r.header == nil {
		return Row{}, io.EOF
	}

	rec, err := r.next()
	if err != nil {
		return Row{}, err
	}
	return Row{index: r.index, values: rec}, nil
}

func (r *Reader) next() ([]string, error) {
	rec, err := r.csv.Read()
	if err != nil {
		if err == io.EOF {
			return nil, err
		}
		return nil, fmt.Errorf("read csv: %w", err)
	}
	r.line++

	for i, f := range rec {
		if len(f) > r.limit {
			return nil, fmt.Errorf("%w: record %d field %d has %d bytes (limit %d)", ErrFieldTooLarge, r.line, i+1, len(f), r.limit)
		}
	}
	return rec, nil
}

// Row is one data row addressed by header name
type Row struct {
	index  map[string]int
	values []string
}

// Get returns the value under name; ok is false when the header lacks name
// or the row is too short to reach it
func (r Row) Get(name string) (string, bool) {
	i, ok := r.index[name]
	if !ok || i >= len(r.values) {
		return "", false
	}
	return r.values[i], true
}

// RawRecord maps the row onto a RawRecord. file falls back to File when empty
// or missing and stays absent when neither key exists; message falls back to
// Message and then to "".
func (r Row) RawRecord() models.RawRecord {
	var raw models.RawRecord

	if v, ok := r.Get("file"); ok && v != "" {
		raw.File = &v
	} else if v, ok := r.Get("File"); ok {
		raw.File = &v
	}

	for _, key := range []string{"message", "Message"} {
		if v, ok := r.Get(key); ok && v != "" {
			raw.Message = v
			break
		}
	}
	return raw
}

// ReadRawRecords reads every row of r as a RawRecord. Any read or decode
// error aborts the whole read.
func ReadRawRecords(r io.Reader, limit int) ([]models.RawRecord, error) {
	reader := NewReader(r, limit)
	records := []models.RawRecord{}
	for {
		row, err := reader.Next()
		if err == io.EOF {
			return records, nil
		}
		if err != nil {
			return nil, err
		}
		records = append(records, row.RawRecord())
	}
}

// ReadRawRecordsFile opens path and reads it with ReadRawRecords
func ReadRawRecordsFile(path string, limit int) ([]models.RawRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	records, err := ReadRawRecords(f, limit)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return records, nil
}

// ReadTable reads r into a table of string cells; empty cells and cells
// missing from short rows are absent.
func ReadTable(r io.Reader, limit int) (*table.Table, error) {
	reader := NewReader(r, limit)
	header, err := reader.Header()
	if err != nil {
		return nil, err
	}

	t, err := table.New(uniqueColumns(header)...)
	if err != nil {
		return nil, err
	}

	for {
		row, err := reader.Next()
		if err == io.EOF {
			return t, nil
		}
		if err != nil {
			return nil, err
		}

		values := make([]any, len(header))
		for i := range header {
			if i < len(row.values) && row.values[i] != "" {
				values[i] = row.values[i]
			}
		}
		if err := t.AppendRow(values...); err != nil {
			return nil, err
		}
	}
}

// ReadTableFile opens path and reads it with ReadTable
func ReadTableFile(path string, limit int) (*table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	t, err := ReadTable(f, limit)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return t, nil
}

// uniqueColumns suffixes repeated header names with ".1", ".2", ...
func uniqueColumns(header []string) []string {
	seen := make(map[string]int, len(header))
	out := make([]string, len(header))
	for i, name := range header {
		n := seen[name]
		seen[name] = n + 1
		if n > 0 {
			name = fmt.Sprintf("%s.%d", name, n)
		}
		out[i] = name
	}
	return out
}
