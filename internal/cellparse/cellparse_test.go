package cellparse

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromSerial(t *testing.T) {
	got, ok := FromSerial(45000)
	require.True(t, ok)
	assert.Equal(t, time.Date(2023, time.March, 15, 0, 0, 0, 0, time.UTC), got)

	epoch, ok := FromSerial(0)
	require.True(t, ok)
	assert.Equal(t, time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC), epoch)

	noon, ok := FromSerial(25569.5)
	require.True(t, ok)
	assert.Equal(t, time.Date(1970, time.January, 1, 12, 0, 0, 0, time.UTC), noon)

	_, ok = FromSerial(math.NaN())
	assert.False(t, ok)
	_, ok = FromSerial(1e12)
	assert.False(t, ok)
}

func TestToSerialRoundTrip(t *testing.T) {
	d := time.Date(2024, time.July, 22, 0, 0, 0, 0, time.UTC)
	back, ok := FromSerial(ToSerial(d))
	require.True(t, ok)
	assert.True(t, d.Equal(back))
}

func TestDate(t *testing.T) {
	got, defaulted := Date(float64(45000))
	require.NotNil(t, got)
	assert.False(t, defaulted)
	assert.Equal(t, "2023-03-15T00:00:00Z", *got)

	got, _ = Date("45000")
	require.NotNil(t, got)
	assert.Equal(t, "2023-03-15T00:00:00Z", *got)

	got, defaulted = Date("")
	assert.Nil(t, got)
	assert.False(t, defaulted)

	got, defaulted = Date(nil)
	assert.Nil(t, got)
	assert.False(t, defaulted)

	iso := "2024-07-22T10:30:00Z"
	got, defaulted = Date(iso)
	require.NotNil(t, got)
	assert.False(t, defaulted)
	assert.Equal(t, iso, *got)

	got, defaulted = Date(float64(9e9))
	assert.Nil(t, got)
	assert.True(t, defaulted)
}

func TestDateKeepsAllDigitISOForms(t *testing.T) {
	for _, in := range []string{"2024", "2024015", "20240115"} {
		got, defaulted := Date(in)
		require.NotNil(t, got, in)
		assert.False(t, defaulted, in)
		assert.Equal(t, in, *got)
	}

	got, defaulted := Date("45000.5")
	require.NotNil(t, got)
	assert.False(t, defaulted)
	assert.Equal(t, "2023-03-15T12:00:00Z", *got)
}

func TestInt(t *testing.T) {
	cases := []struct {
		in        interface{}
		want      int
		defaulted bool
	}{
		{"15", 15, false},
		{float64(8), 8, false},
		{"12.9", 12, false},
		{"1,200", 1200, false},
		{"abc", 0, true},
		{"", 0, true},
		{nil, 0, true},
		{"NaN", 0, true},
		{float64(5_000_000_000), 5_000_000_000, false},
		{"1e16", 0, true},
	}
	for _, c := range cases {
		got, defaulted := Int(c.in)
		assert.Equal(t, c.want, got, "input %v", c.in)
		assert.Equal(t, c.defaulted, defaulted, "input %v", c.in)
	}
}

func TestFloat(t *testing.T) {
	got, defaulted := Float("2500.50")
	assert.Equal(t, 2500.5, got)
	assert.False(t, defaulted)

	got, defaulted = Float(math.Inf(1))
	assert.Zero(t, got)
	assert.True(t, defaulted)

	got, defaulted = Float("৳10")
	assert.Zero(t, got)
	assert.True(t, defaulted)
}

func TestAmount(t *testing.T) {
	cases := []struct {
		in        interface{}
		want      string
		defaulted bool
	}{
		{"100", "100", false},
		{"৳2,500.50", "2500.5", false},
		{"abc", "0", true},
		{"", "0", true},
		{"-", "0", true},
		{float64(12.25), "12.25", false},
	}
	for _, c := range cases {
		got, defaulted := Amount(c.in)
		assert.Equal(t, c.want, got.String(), "input %v", c.in)
		assert.Equal(t, c.defaulted, defaulted, "input %v", c.in)
	}
}

func TestString(t *testing.T) {
	assert.Equal(t, "42", String(float64(42)))
	assert.Equal(t, "2.5", String(float64(2.5)))
	assert.Equal(t, "p1", String("p1"))
	assert.Equal(t, "", String(nil))
	assert.True(t, IsBlank("   "))
	assert.False(t, IsBlank("x"))
}
