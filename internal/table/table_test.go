package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_DuplicateColumn(t *testing.T) {
	_, err := New("a", "b", "a")
	assert.ErrorIs(t, err, ErrColumnExists)
}

func TestAppendRow(t *testing.T) {
	tbl, err := New("file", "sender")
	require.NoError(t, err)

	var missing *string
	name := "a.txt"
	require.NoError(t, tbl.AppendRow(&name, missing))
	require.NoError(t, tbl.AppendRow("b.txt", "bob@x.com"))

	assert.Equal(t, 2, tbl.Len())
	assert.Equal(t, map[string]any{"file": "a.txt", "sender": nil}, tbl.Row(0))

	err = tbl.AppendRow("only one")
	assert.ErrorIs(t, err, ErrLengthMismatch)
	assert.Equal(t, 2, tbl.Len())
}

func TestSetColumn(t *testing.T) {
	tbl, err := New("message_body")
	require.NoError(t, err)
	require.NoError(t, tbl.AppendRow("good"))
	require.NoError(t, tbl.AppendRow(nil))

	score := 0.5
	var none *float64
	require.NoError(t, tbl.SetColumn("score", []any{&score, none}))

	assert.Equal(t, []string{"message_body", "score"}, tbl.Columns())
	col, err := tbl.Column("score")
	require.NoError(t, err)
	assert.Equal(t, []any{0.5, nil}, col)

	// Existing columns are overwritten in place
	require.NoError(t, tbl.SetColumn("score", []any{1.0, 2.0}))
	assert.Equal(t, []string{"message_body", "score"}, tbl.Columns())
	v, err := tbl.Value(1, "score")
	require.NoError(t, err)
	assert.Equal(t, 2.0, v)

	err = tbl.SetColumn("other", []any{1.0})
	assert.ErrorIs(t, err, ErrLengthMismatch)
	assert.False(t, tbl.HasColumn("other"))
}

func TestColumn_NotFound(t *testing.T) {
	tbl, err := New("a")
	require.NoError(t, err)

	_, err = tbl.Column("b")
	assert.ErrorIs(t, err, ErrColumnNotFound)

	_, err = tbl.Value(0, "b")
	assert.ErrorIs(t, err, ErrColumnNotFound)
}

func TestRenameColumn(t *testing.T) {
	tbl, err := New("file", "message_text", "other")
	require.NoError(t, err)
	require.NoError(t, tbl.AppendRow("f", "body", "x"))

	require.NoError(t, tbl.RenameColumn("message_text", "message_body"))
	assert.Equal(t, []string{"file", "message_body", "other"}, tbl.Columns())

	v, err := tbl.Value(0, "message_body")
	require.NoError(t, err)
	assert.Equal(t, "body", v)

	assert.ErrorIs(t, tbl.RenameColumn("missing", "x"), ErrColumnNotFound)
	assert.ErrorIs(t, tbl.RenameColumn("file", "other"), ErrColumnExists)
	assert.NoError(t, tbl.RenameColumn("file", "file"))
}

func TestColumns_ReturnsCopy(t *testing.T) {
	tbl, err := New("a", "b")
	require.NoError(t, err)

	cols := tbl.Columns()
	cols[0] = "changed"
	assert.Equal(t, []string{"a", "b"}, tbl.Columns())
}
