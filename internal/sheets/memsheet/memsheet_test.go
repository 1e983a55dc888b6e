package memsheet

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetTrimsLikeTheAPI(t *testing.T) {
	s := New()
	s.Seed("Inventory",
		[]interface{}{"id", "productName", "currentStock"},
		[]interface{}{"p-1", "Rice", 10.0},
		[]interface{}{nil, nil, nil},
		[]interface{}{"p-2", "", nil},
		[]interface{}{"", "", ""},
	)

	rows, err := s.Get(context.Background(), "Inventory!A2:C")
	require.NoError(t, err)
	assert.Equal(t, [][]interface{}{
		{"p-1", "Rice", 10.0},
		{},
		{"p-2"},
	}, rows)

	rows, err = s.Get(context.Background(), "Inventory!B3:B3")
	require.NoError(t, err)
	assert.Nil(t, rows)

	_, err = s.Get(context.Background(), "Missing!A1:B")
	assert.Error(t, err)
}

func TestAppendSkipsTrailingBlankRows(t *testing.T) {
	s := New()
	s.Seed("Sales", []interface{}{"id", "date"}, []interface{}{"s-1", "2024-01-01"}, []interface{}{nil, nil})

	require.NoError(t, s.Append(context.Background(), "Sales!A:B", [][]interface{}{{"s-2", "2024-01-02"}}))
	assert.Equal(t, [][]interface{}{
		{"id", "date"},
		{"s-1", "2024-01-01"},
		{"s-2", "2024-01-02"},
	}, s.Rows("Sales"))
	assert.Equal(t, 1, s.Calls("append"))
}

func TestUpdateAndClear(t *testing.T) {
	s := New()
	s.Seed("credentials", []interface{}{"email", "password"}, []interface{}{"a@x.com", "old"})
	ctx := context.Background()

	require.NoError(t, s.Update(ctx, "credentials!B2", [][]interface{}{{"new"}}))
	assert.Equal(t, []interface{}{"a@x.com", "new"}, s.Rows("credentials")[1])

	require.NoError(t, s.Update(ctx, "credentials!A2:B2", [][]interface{}{{nil, "newer"}}))
	assert.Equal(t, []interface{}{"a@x.com", "newer"}, s.Rows("credentials")[1])

	require.NoError(t, s.Clear(ctx, "credentials!A2:B2"))
	assert.Equal(t, []interface{}{nil, nil}, s.Rows("credentials")[1])
	assert.Len(t, s.Rows("credentials"), 2)
	assert.Equal(t, 3, s.Writes())
}

func TestFailOn(t *testing.T) {
	s := New()
	s.Seed("Inventory", []interface{}{"id"})
	boom := errors.New("quota exceeded")

	s.FailOn("get", boom)
	_, err := s.Get(context.Background(), "Inventory!A1:A")
	assert.ErrorIs(t, err, boom)

	s.FailOn("get", nil)
	_, err = s.Get(context.Background(), "Inventory!A1:A")
	assert.NoError(t, err)
	assert.Equal(t, 2, s.Calls("get"))
}
