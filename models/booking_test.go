package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to BookingStatus
		want     bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusRejected, true},
		{StatusPending, StatusPending, false},
		{StatusConfirmed, StatusRejected, false},
		{StatusConfirmed, StatusPending, false},
		{StatusRejected, StatusConfirmed, false},
		{StatusRejected, StatusPending, false},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, CanTransition(c.from, c.to), "%s -> %s", c.from, c.to)
	}
}

func TestStatusOccupies(t *testing.T) {
	assert.True(t, StatusPending.Occupies())
	assert.True(t, StatusConfirmed.Occupies())
	assert.False(t, StatusRejected.Occupies())
}

func TestCategoryValid(t *testing.T) {
	for _, c := range []BookingCategory{CategoryIndividual, CategoryPaired, CategoryGroup, CategorySchool} {
		assert.True(t, c.Valid(), string(c))
		assert.NotEmpty(t, c.DisplayName())
	}
	assert.False(t, BookingCategory("").Valid())
	assert.False(t, BookingCategory("vip").Valid())
}

func TestBookingStartsAt(t *testing.T) {
	b := &Booking{Date: "2026-09-05", Time: "17:00"}
	start, err := b.StartsAt()
	require.NoError(t, err)
	assert.Equal(t, 2026, start.Year())
	assert.Equal(t, 17, start.Hour())
	assert.Equal(t, "05.09", b.DisplayDate())
}
