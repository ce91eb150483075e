package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartTimesFor(t *testing.T) {
	monday := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.Local)
	saturday := time.Date(2026, time.June, 6, 0, 0, 0, 0, time.Local)
	sunday := time.Date(2026, time.June, 7, 0, 0, 0, 0, time.Local)

	assert.Equal(t, []string{"15:00", "18:00"}, StartTimesFor(monday))
	assert.Equal(t, []string{"11:00", "14:00", "17:00"}, StartTimesFor(saturday))
	assert.Equal(t, []string{"11:00", "14:00", "17:00"}, StartTimesFor(sunday))
}

func TestIsPermittedStart(t *testing.T) {
	monday := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.Local)
	saturday := time.Date(2026, time.June, 6, 0, 0, 0, 0, time.Local)

	assert.True(t, IsPermittedStart(monday, "15:00"))
	assert.False(t, IsPermittedStart(monday, "11:00"))
	assert.True(t, IsPermittedStart(saturday, "11:00"))
	assert.False(t, IsPermittedStart(saturday, "15:00"))
}

func TestUpcomingDays(t *testing.T) {
	now := time.Date(2026, time.June, 1, 18, 30, 0, 0, time.Local)
	days := upcomingDays(now)
	require.Len(t, days, 7)

	assert.Equal(t, time.Date(2026, time.June, 2, 0, 0, 0, 0, time.Local), days[0])
	assert.Equal(t, time.Date(2026, time.June, 8, 0, 0, 0, 0, time.Local), days[6])
	for _, d := range days {
		assert.Equal(t, 0, d.Hour())
	}
}
