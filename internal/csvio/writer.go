package csvio

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"maildump-sentiment/internal/table"
)

// Output formats
const (
	FormatCSV   = "csv"
	FormatJSONL = "jsonl"
)

// Write serializes t to w in the named format
func Write(w io.Writer, t *table.Table, format string) error {
	switch format {
	case "", FormatCSV:
		return WriteCSV(w, t)
	case FormatJSONL:
		return WriteJSONLines(w, t)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

// WriteCSV writes a header row followed by one line per row. Absent cells
// are empty and string lists are written as JSON arrays.
func WriteCSV(w io.Writer, t *table.Table) error {
	cw := csv.NewWriter(w)
	columns := t.Columns()
	if err := cw.Write(columns); err != nil {
		return err
	}

	record := make([]string, len(columns))
	for i := 0; i < t.Len(); i++ {
		row := t.Row(i)
		for j, c := range columns {
			cell, err := formatCell(row[c])
			if err != nil {
				return fmt.Errorf("row %d column %s: %w", i, c, err)
			}
			record[j] = cell
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteJSONLines writes one JSON object per row with keys in column order;
// absent cells are null
func WriteJSONLines(w io.Writer, t *table.Table) error {
	bw := bufio.NewWriter(w)
	columns := t.Columns()
	keys := make([][]byte, len(columns))
	for j, c := range columns {
		k, err := json.Marshal(c)
		if err != nil {
			return err
		}
		keys[j] = k
	}

	for i := 0; i < t.Len(); i++ {
		row := t.Row(i)
		_ = bw.WriteByte('{')
		for j, c := range columns {
			if j > 0 {
				_ = bw.WriteByte(',')
			}
			v, err := marshal(row[c])
			if err != nil {
				return fmt.Errorf("row %d column %s: %w", i, c, err)
			}
			_, _ = bw.Write(keys[j])
			_ = bw.WriteByte(':')
			_, _ = bw.Write(v)
		}
		_, _ = bw.WriteString("}\n")
	}
	return bw.Flush()
}

func formatCell(v any) (string, error) {
	switch x := v.(type) {
	case nil:
		return "", nil
	case string:
		return x, nil
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64), nil
	case []string:
		b, err := marshal(x)
		return string(b), err
	default:
		return fmt.Sprint(x), nil
	}
}

// marshal encodes v without escaping <, > and &, which are common in
// address lists
func marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
