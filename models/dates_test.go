package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveDisplayDate(t *testing.T) {
	now := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.Local)

	t.Run("future day stays in the current year", func(t *testing.T) {
		got, err := ResolveDisplayDate("15.03", now)
		require.NoError(t, err)
		assert.Equal(t, "2026-03-15", got)
	})

	t.Run("today resolves to today", func(t *testing.T) {
		got, err := ResolveDisplayDate("10.03", now)
		require.NoError(t, err)
		assert.Equal(t, "2026-03-10", got)
	})

	t.Run("past day rolls into the next year", func(t *testing.T) {
		got, err := ResolveDisplayDate("01.01", now)
		require.NoError(t, err)
		assert.Equal(t, "2027-01-01", got)
	})

	t.Run("late december entry never resolves eleven months back", func(t *testing.T) {
		dec := time.Date(2026, time.December, 30, 12, 0, 0, 0, time.Local)
		got, err := ResolveDisplayDate("02.01", dec)
		require.NoError(t, err)
		assert.Equal(t, "2027-01-02", got)
	})

	t.Run("leap day in a non-leap year is rejected", func(t *testing.T) {
		_, err := ResolveDisplayDate("29.02", now)
		assert.Error(t, err)
	})

	t.Run("garbage is rejected", func(t *testing.T) {
		for _, input := range []string{"", "tomorrow", "32.01", "2026-03-15"} {
			_, err := ResolveDisplayDate(input, now)
			assert.Error(t, err, input)
		}
	})
}

func TestFormatDisplayDate(t *testing.T) {
	assert.Equal(t, "05.09", FormatDisplayDate("2026-09-05"))
	// Unparseable input passes through untouched.
	assert.Equal(t, "not-a-date", FormatDisplayDate("not-a-date"))
}

func TestCombineDateTime(t *testing.T) {
	got, err := CombineDateTime("2026-09-05", "17:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.September, 5, 17, 0, 0, 0, time.Local), got)

	_, err = CombineDateTime("05.09", "17:00")
	assert.Error(t, err)
}

func TestParseSessionTime(t *testing.T) {
	got, err := ParseSessionTime("15:00")
	require.NoError(t, err)
	assert.Equal(t, "15:00", got)

	for _, input := range []string{"", "25:00", "15.00", "noon"} {
		_, err := ParseSessionTime(input)
		assert.Error(t, err, input)
	}
}
