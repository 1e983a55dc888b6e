package sheets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColumnLetter(t *testing.T) {
	assert.Equal(t, "A", ColumnLetter(1))
	assert.Equal(t, "J", ColumnLetter(10))
	assert.Equal(t, "Z", ColumnLetter(26))
	assert.Equal(t, "AA", ColumnLetter(27))
	assert.Equal(t, "AZ", ColumnLetter(52))
	assert.Equal(t, "", ColumnLetter(0))

	for i := 1; i < 800; i++ {
		assert.Equal(t, i, ColumnIndex(ColumnLetter(i)))
	}
}

func TestRangeBuilders(t *testing.T) {
	assert.Equal(t, "Inventory!A2:J", TableRange("Inventory", 10, 2))
	assert.Equal(t, "Inventory!A2:A", ColumnRange("Inventory", 1, 2))
	assert.Equal(t, "Inventory!A5:J5", RowRange("Inventory", 5, 10))
	assert.Equal(t, "credentials!B4", CellRange("credentials", 2, 4))
	assert.Equal(t, "Sales!A:K", AppendRange("Sales", 11))
	assert.Equal(t, "'Cash Flow'!A1:A", ColumnRange("Cash Flow", 1, 1))
	assert.Equal(t, "'Bob''s'!A:B", AppendRange("Bob's", 2))
}

func TestParseRange(t *testing.T) {
	r, err := ParseRange("Inventory!A2:J")
	require.NoError(t, err)
	assert.Equal(t, Range{Sheet: "Inventory", StartCol: 1, StartRow: 2, EndCol: 10, EndRow: 0}, r)

	r, err = ParseRange("Inventory!A5:J5")
	require.NoError(t, err)
	assert.Equal(t, Range{Sheet: "Inventory", StartCol: 1, StartRow: 5, EndCol: 10, EndRow: 5}, r)

	r, err = ParseRange("Sales!A:K")
	require.NoError(t, err)
	assert.Equal(t, Range{Sheet: "Sales", StartCol: 1, StartRow: 1, EndCol: 11, EndRow: 0}, r)

	r, err = ParseRange("credentials!B4")
	require.NoError(t, err)
	assert.Equal(t, Range{Sheet: "credentials", StartCol: 2, StartRow: 4, EndCol: 2, EndRow: 4}, r)

	r, err = ParseRange("'Bob''s'!A1:B")
	require.NoError(t, err)
	assert.Equal(t, "Bob's", r.Sheet)

	_, err = ParseRange("A1:B2")
	assert.Error(t, err)
	_, err = ParseRange("Sheet!J1:A1")
	assert.Error(t, err)
	_, err = ParseRange("Sheet!11")
	assert.Error(t, err)
}
