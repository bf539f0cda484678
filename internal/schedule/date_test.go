package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-01-31")
	require.NoError(t, err)
	assert.Equal(t, Date{Year: 2025, Month: time.January, Day: 31}, d)
	assert.Equal(t, "2025-01-31", d.String())

	_, err = ParseDate("31/01/2025")
	assert.Error(t, err)
	_, err = ParseDate("")
	assert.Error(t, err)
}

func TestDate_AddDays_Rollover(t *testing.T) {
	testCases := []struct {
		name     string
		date     string
		days     int
		expected string
	}{
		{"within month", "2025-01-10", 5, "2025-01-15"},
		{"month boundary", "2025-01-31", 1, "2025-02-01"},
		{"year boundary", "2024-12-31", 1, "2025-01-01"},
		{"leap day", "2024-02-28", 1, "2024-02-29"},
		{"non-leap february", "2025-02-28", 1, "2025-03-01"},
		{"backwards across month", "2025-03-01", -1, "2025-02-28"},
		{"zero days", "2025-06-15", 0, "2025-06-15"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			d, err := ParseDate(tc.date)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, d.AddDays(tc.days).String())
		})
	}
}

func TestDate_AddDays_Pure(t *testing.T) {
	d, err := ParseDate("2025-01-31")
	require.NoError(t, err)
	_ = d.AddDays(10)
	assert.Equal(t, "2025-01-31", d.String(), "receiver must not be modified")
}

func TestDate_AddWeeks(t *testing.T) {
	d, err := ParseDate("2025-01-01")
	require.NoError(t, err)
	assert.Equal(t, "2025-01-15", d.AddWeeks(2).String())
	assert.Equal(t, "2024-12-25", d.AddWeeks(-1).String())
}

func TestDate_Weekday(t *testing.T) {
	// 2025-01-05 is a Sunday.
	sunday, err := ParseDate("2025-01-05")
	require.NoError(t, err)
	assert.Equal(t, 0, sunday.Weekday())

	// 2025-01-01 is a Wednesday.
	wednesday, err := ParseDate("2025-01-01")
	require.NoError(t, err)
	assert.Equal(t, 3, wednesday.Weekday())
}

func TestDate_AtTime(t *testing.T) {
	d, err := ParseDate("2025-01-05")
	require.NoError(t, err)
	assert.Equal(t, "2025-01-05T07:30", d.AtTime("07:30"))
}
