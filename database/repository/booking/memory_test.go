package bookingRepo

import (
	"context"
	"testing"

	"kilnbot/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBooking(userID int64, date, tm string, status models.BookingStatus) *models.Booking {
	return &models.Booking{
		UserID:   userID,
		Username: "tester",
		FullName: "Test User",
		Category: models.CategoryIndividual,
		Date:     date,
		Time:     tm,
		Status:   status,
	}
}

func TestCreateAssignsSequentialIDs(t *testing.T) {
	repo := NewMemoryBookingRepo()
	ctx := context.Background()

	a := newBooking(1, "2026-09-01", "15:00", models.StatusPending)
	b := newBooking(2, "2026-09-01", "18:00", models.StatusPending)
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Create(ctx, b))

	assert.Equal(t, int64(1), a.ID)
	assert.Equal(t, int64(2), b.ID)
	assert.True(t, a.Active)
	assert.False(t, a.CreatedAt.IsZero())
}

func TestCreateRejectsOccupiedSlot(t *testing.T) {
	repo := NewMemoryBookingRepo()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newBooking(1, "2026-09-01", "15:00", models.StatusPending)))

	err := repo.Create(ctx, newBooking(2, "2026-09-01", "15:00", models.StatusPending))
	assert.ErrorIs(t, err, ErrSlotConflict)

	// A rejected booking does not hold the slot.
	r := newBooking(3, "2026-09-02", "15:00", models.StatusRejected)
	require.NoError(t, repo.Create(ctx, r))
	assert.False(t, r.Active)
	require.NoError(t, repo.Create(ctx, newBooking(4, "2026-09-02", "15:00", models.StatusPending)))
}

func TestRejectionFreesSlot(t *testing.T) {
	repo := NewMemoryBookingRepo()
	ctx := context.Background()

	b := newBooking(1, "2026-09-01", "15:00", models.StatusPending)
	require.NoError(t, repo.Create(ctx, b))

	free, err := repo.IsSlotAvailable(ctx, "2026-09-01", "15:00")
	require.NoError(t, err)
	assert.False(t, free)

	require.NoError(t, repo.UpdateStatus(ctx, b.ID, models.StatusRejected))
	free, err = repo.IsSlotAvailable(ctx, "2026-09-01", "15:00")
	require.NoError(t, err)
	assert.True(t, free)
}

func TestDeleteFreesSlot(t *testing.T) {
	repo := NewMemoryBookingRepo()
	ctx := context.Background()

	b := newBooking(1, "2026-09-01", "15:00", models.StatusConfirmed)
	require.NoError(t, repo.Create(ctx, b))

	removed, err := repo.Delete(ctx, b.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = repo.Delete(ctx, b.ID)
	require.NoError(t, err)
	assert.False(t, removed)

	free, err := repo.IsSlotAvailable(ctx, "2026-09-01", "15:00")
	require.NoError(t, err)
	assert.True(t, free)

	got, err := repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestListAllGroupsByStatus(t *testing.T) {
	repo := NewMemoryBookingRepo()
	ctx := context.Background()

	rej := newBooking(1, "2026-09-01", "15:00", models.StatusRejected)
	conf := newBooking(2, "2026-09-01", "18:00", models.StatusConfirmed)
	pend := newBooking(3, "2026-09-02", "15:00", models.StatusPending)
	require.NoError(t, repo.Create(ctx, rej))
	require.NoError(t, repo.Create(ctx, conf))
	require.NoError(t, repo.Create(ctx, pend))

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, models.StatusPending, all[0].Status)
	assert.Equal(t, models.StatusConfirmed, all[1].Status)
	assert.Equal(t, models.StatusRejected, all[2].Status)
}

func TestListPendingNewestFirst(t *testing.T) {
	repo := NewMemoryBookingRepo()
	ctx := context.Background()

	first := newBooking(1, "2026-09-01", "15:00", models.StatusPending)
	second := newBooking(2, "2026-09-01", "18:00", models.StatusPending)
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	pending, err := repo.ListPending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, second.ID, pending[0].ID)
	assert.Equal(t, first.ID, pending[1].ID)
}

func TestListConfirmedByDateTime(t *testing.T) {
	repo := NewMemoryBookingRepo()
	ctx := context.Background()

	late := newBooking(1, "2026-09-02", "18:00", models.StatusConfirmed)
	early := newBooking(2, "2026-09-01", "15:00", models.StatusConfirmed)
	mid := newBooking(3, "2026-09-01", "18:00", models.StatusConfirmed)
	require.NoError(t, repo.Create(ctx, late))
	require.NoError(t, repo.Create(ctx, early))
	require.NoError(t, repo.Create(ctx, mid))

	confirmed, err := repo.ListConfirmed(ctx)
	require.NoError(t, err)
	require.Len(t, confirmed, 3)
	assert.Equal(t, early.ID, confirmed[0].ID)
	assert.Equal(t, mid.ID, confirmed[1].ID)
	assert.Equal(t, late.ID, confirmed[2].ID)
}

func TestListByDateRangeOnlyActive(t *testing.T) {
	repo := NewMemoryBookingRepo()
	ctx := context.Background()

	in := newBooking(1, "2026-09-02", "15:00", models.StatusConfirmed)
	rejected := newBooking(2, "2026-09-02", "18:00", models.StatusRejected)
	out := newBooking(3, "2026-09-20", "15:00", models.StatusConfirmed)
	require.NoError(t, repo.Create(ctx, in))
	require.NoError(t, repo.Create(ctx, rejected))
	require.NoError(t, repo.Create(ctx, out))

	got, err := repo.ListByDateRange(ctx, "2026-09-01", "2026-09-07")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, in.ID, got[0].ID)
}

func TestBookedSlots(t *testing.T) {
	repo := NewMemoryBookingRepo()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newBooking(1, "2026-09-01", "15:00", models.StatusPending)))
	require.NoError(t, repo.Create(ctx, newBooking(2, "2026-09-01", "18:00", models.StatusRejected)))

	slots, err := repo.BookedSlots(ctx, "2026-09-01")
	require.NoError(t, err)
	assert.True(t, slots["15:00"])
	assert.False(t, slots["18:00"])
}

func TestMarkReminderSentIsIdempotent(t *testing.T) {
	repo := NewMemoryBookingRepo()
	ctx := context.Background()

	b := newBooking(1, "2026-09-01", "15:00", models.StatusConfirmed)
	require.NoError(t, repo.Create(ctx, b))

	require.NoError(t, repo.MarkReminderSent(ctx, b.ID, models.ReminderDay))
	require.NoError(t, repo.MarkReminderSent(ctx, b.ID, models.ReminderDay))

	got, err := repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.True(t, got.DayReminderSent)
	assert.False(t, got.HourReminderSent)

	require.NoError(t, repo.MarkReminderSent(ctx, b.ID, models.ReminderHour))
	got, err = repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.True(t, got.HourReminderSent)

	assert.Error(t, repo.MarkReminderSent(ctx, 999, models.ReminderDay))
}

func TestSummaryCounts(t *testing.T) {
	repo := NewMemoryBookingRepo()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newBooking(1, "2026-09-01", "15:00", models.StatusPending)))
	require.NoError(t, repo.Create(ctx, newBooking(2, "2026-09-01", "18:00", models.StatusConfirmed)))
	require.NoError(t, repo.Create(ctx, newBooking(3, "2026-09-02", "15:00", models.StatusRejected)))

	sum, err := repo.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), sum.Pending)
	assert.Equal(t, int64(1), sum.Confirmed)
	assert.Equal(t, int64(1), sum.Rejected)
	assert.Equal(t, int64(3), sum.Total)
}
