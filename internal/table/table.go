// Package table is a small in-memory ordered table: named columns in a fixed
// order and rows of optional cells.
//
// A cell is nil when the value is absent. Other cells hold string, []string
// or float64 values; *string and *float64 are accepted on input and
// dereferenced (nil pointers become absent cells).
package table

import (
	"errors"
	"fmt"
)

var (
	ErrColumnNotFound = errors.New("column not found")
	ErrColumnExists   = errors.New("column already exists")
	ErrLengthMismatch = errors.New("column length does not match row count")
)

// Table holds rows in insertion order
type Table struct {
	columns []string
	index   map[string]int
	rows    [][]any
}

// New creates an empty table with the given columns
func New(columns ...string) (*Table, error) {
	t := &Table{index: make(map[string]int, len(columns))}
	for _, c := range columns {
		if _, ok := t.index[c]; ok {
			return nil, fmt.Errorf("%w: %s", ErrColumnExists, c)
		}
		t.index[c] = len(t.columns)
		t.columns = append(t.columns, c)
	}
	return t, nil
}

// Columns returns the column names in order
func (t *Table) Columns() []string {
	out := make([]string, len(t.columns))
	copy(out, t.columns)
	return out
}

// Len returns the number of rows
func (t *Table) Len() int {
	return len(t.rows)
}

// HasColumn reports whether name is a column of t
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// AppendRow adds a row; values must match the column count
func (t *Table) AppendRow(values ...any) error {
	if len(values) != len(t.columns) {
		return fmt.Errorf("%w: got %d values for %d columns", ErrLengthMismatch, len(values), len(t.columns))
	}
	row := make([]any, len(values))
	for i, v := range values {
		row[i] = normalize(v)
	}
	t.rows = append(t.rows, row)
	return nil
}

// Row returns a copy of row i keyed by column name
func (t *Table) Row(i int) map[string]any {
	out := make(map[string]any, len(t.columns))
	for j, c := range t.columns {
		out[c] = t.rows[i][j]
	}
	return out
}

// Value returns the cell at row i in column name
func (t *Table) Value(i int, name string) (any, error) {
	j, ok := t.index[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrColumnNotFound, name)
	}
	return t.rows[i][j], nil
}

// Column returns the cells of a column in row order
func (t *Table) Column(name string) ([]any, error) {
	j, ok := t.index[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrColumnNotFound, name)
	}
	out := make([]any, len(t.rows))
	for i, row := range t.rows {
		out[i] = row[j]
	}
	return out, nil
}

// SetColumn writes values into column name, appending the column when it
// does not exist yet. len(values) must equal Len().
func (t *Table) SetColumn(name string, values []any) error {
	if len(values) != len(t.rows) {
		return fmt.Errorf("%w: %s has %d values for %d rows", ErrLengthMismatch, name, len(values), len(t.rows))
	}

	j, ok := t.index[name]
	if !ok {
		j = len(t.columns)
		t.index[name] = j
		t.columns = append(t.columns, name)
		for i := range t.rows {
			t.rows[i] = append(t.rows[i], nil)
		}
	}

	for i, v := range values {
		t.rows[i][j] = normalize(v)
	}
	return nil
}

// RenameColumn renames a column in place, keeping its position
func (t *Table) RenameColumn(from, to string) error {
	j, ok := t.index[from]
	if !ok {
		return fmt.Errorf("%w: %s", ErrColumnNotFound, from)
	}
	if from == to {
		return nil
	}
	if _, ok := t.index[to]; ok {
		return fmt.Errorf("%w: %s", ErrColumnExists, to)
	}
	delete(t.index, from)
	t.index[to] = j
	t.columns[j] = to
	return nil
}

func normalize(v any) any {
	switch x := v.(type) {
	case *string:
		if x == nil {
			return nil
		}
		return *x
	case *float64:
		if x == nil {
			return nil
		}
		return *x
	default:
		return v
	}
}
