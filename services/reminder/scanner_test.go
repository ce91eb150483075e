package reminder

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	bookingRepo "kilnbot/database/repository/booking"
	"kilnbot/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// recordingNotifier counts reminder deliveries per booking, with optional
// injected failures per notification class.
type recordingNotifier struct {
	mu        sync.Mutex
	dayErr    error
	hourErr   error
	day       map[int64]int
	hour      map[int64]int
	adminHour map[int64]int
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{
		day:       make(map[int64]int),
		hour:      make(map[int64]int),
		adminHour: make(map[int64]int),
	}
}

func (r *recordingNotifier) BookingRequested(context.Context, *models.Booking) error { return nil }
func (r *recordingNotifier) BookingConfirmed(context.Context, *models.Booking) error { return nil }
func (r *recordingNotifier) BookingRejected(context.Context, *models.Booking) error  { return nil }
func (r *recordingNotifier) BookingCancelled(context.Context, *models.Booking) error { return nil }
func (r *recordingNotifier) PurchaseRequest(context.Context, int64, string, string, *models.Product) error {
	return nil
}

func (r *recordingNotifier) DayReminder(_ context.Context, b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.dayErr != nil {
		return r.dayErr
	}
	r.day[b.ID]++
	return nil
}

func (r *recordingNotifier) HourReminder(_ context.Context, b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.hourErr != nil {
		return r.hourErr
	}
	r.hour[b.ID]++
	return nil
}

func (r *recordingNotifier) AdminHourReminder(_ context.Context, b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.adminHour[b.ID]++
	return nil
}

// fixedNow is a Monday noon; sessions are placed relative to it.
var fixedNow = time.Date(2026, time.June, 1, 12, 0, 0, 0, time.Local)

func newTestScanner() (*Scanner, *bookingRepo.MemoryBookingRepo, *recordingNotifier) {
	repo := bookingRepo.NewMemoryBookingRepo()
	notifier := newRecordingNotifier()
	s := NewScanner(repo, notifier, zap.NewNop())
	s.Now = func() time.Time { return fixedNow }
	return s, repo, notifier
}

// confirmedAt inserts a confirmed booking whose session starts at the given
// offset from fixedNow.
func confirmedAt(t *testing.T, repo *bookingRepo.MemoryBookingRepo, offset time.Duration) *models.Booking {
	t.Helper()
	start := fixedNow.Add(offset)
	b := &models.Booking{
		UserID:   42,
		Username: "potterfan",
		FullName: "Pat Potter",
		Category: models.CategoryIndividual,
		Date:     start.Format(models.DateLayout),
		Time:     start.Format(models.TimeLayout),
		Status:   models.StatusConfirmed,
	}
	require.NoError(t, repo.Create(context.Background(), b))
	return b
}

func TestScanSendsDayReminderOnce(t *testing.T) {
	s, repo, notifier := newTestScanner()
	b := confirmedAt(t, repo, 24*time.Hour)

	s.Scan(context.Background())
	assert.Equal(t, 1, notifier.day[b.ID])
	assert.Empty(t, notifier.hour)

	stored, err := repo.GetByID(context.Background(), b.ID)
	require.NoError(t, err)
	assert.True(t, stored.DayReminderSent)

	// The booking is still inside the window on the next tick; the flag
	// prevents a duplicate.
	s.Scan(context.Background())
	assert.Equal(t, 1, notifier.day[b.ID])
}

func TestScanOutsideWindowsSendsNothing(t *testing.T) {
	s, repo, notifier := newTestScanner()
	confirmedAt(t, repo, 26*time.Hour)
	confirmedAt(t, repo, 3*time.Hour)

	s.Scan(context.Background())
	assert.Empty(t, notifier.day)
	assert.Empty(t, notifier.hour)
	assert.Empty(t, notifier.adminHour)
}

func TestScanHourWindowNotifiesCustomerAndAdmin(t *testing.T) {
	s, repo, notifier := newTestScanner()
	b := confirmedAt(t, repo, time.Hour)

	s.Scan(context.Background())
	assert.Equal(t, 1, notifier.hour[b.ID])
	assert.Equal(t, 1, notifier.adminHour[b.ID])

	// On the next tick the admin ping repeats; the customer reminder does not.
	s.Scan(context.Background())
	assert.Equal(t, 1, notifier.hour[b.ID])
	assert.Equal(t, 2, notifier.adminHour[b.ID])
}

func TestScanHourWindowEdges(t *testing.T) {
	s, repo, notifier := newTestScanner()
	in := confirmedAt(t, repo, 57*time.Minute)     // 0.95h, inside
	out := confirmedAt(t, repo, 80*time.Minute)    // 1.33h, outside
	wayOut := confirmedAt(t, repo, 40*time.Minute) // 0.67h, outside

	s.Scan(context.Background())
	assert.Equal(t, 1, notifier.hour[in.ID])
	assert.Zero(t, notifier.hour[out.ID])
	assert.Zero(t, notifier.hour[wayOut.ID])
}

func TestScanSkipsPastDates(t *testing.T) {
	s, repo, notifier := newTestScanner()
	// Yesterday's session; window math would otherwise go negative anyway,
	// but the date guard rejects it first.
	b := confirmedAt(t, repo, -24*time.Hour)

	s.Scan(context.Background())
	assert.Zero(t, notifier.day[b.ID])
	assert.Zero(t, notifier.hour[b.ID])
	assert.Zero(t, notifier.adminHour[b.ID])
}

func TestScanRetriesAfterDeliveryFailure(t *testing.T) {
	s, repo, notifier := newTestScanner()
	b := confirmedAt(t, repo, 24*time.Hour)

	notifier.dayErr = errors.New("telegram down")
	s.Scan(context.Background())
	assert.Zero(t, notifier.day[b.ID])

	stored, err := repo.GetByID(context.Background(), b.ID)
	require.NoError(t, err)
	assert.False(t, stored.DayReminderSent, "flag must not be set after a failed send")

	notifier.dayErr = nil
	s.Scan(context.Background())
	assert.Equal(t, 1, notifier.day[b.ID])
}

func TestScanFailureIsolation(t *testing.T) {
	s, repo, notifier := newTestScanner()
	failing := confirmedAt(t, repo, 24*time.Hour)
	// A different day so the healthy booking sits in the hour window instead.
	healthy := confirmedAt(t, repo, time.Hour)

	notifier.dayErr = errors.New("telegram down")
	s.Scan(context.Background())

	assert.Zero(t, notifier.day[failing.ID])
	assert.Equal(t, 1, notifier.hour[healthy.ID])
}

func TestScanManualEntryOnlyPingsAdmin(t *testing.T) {
	s, repo, notifier := newTestScanner()

	// No Telegram identity: a walk-in entered by the admin.
	start := fixedNow.Add(time.Hour)
	walkIn := &models.Booking{
		FullName: "Walk-in Guest",
		Category: models.CategoryGroup,
		Date:     start.Format(models.DateLayout),
		Time:     start.Format(models.TimeLayout),
		Status:   models.StatusConfirmed,
	}
	require.NoError(t, repo.Create(context.Background(), walkIn))

	s.Scan(context.Background())
	assert.Zero(t, notifier.hour[walkIn.ID])
	assert.Equal(t, 1, notifier.adminHour[walkIn.ID])
}

func TestScanReminderProgression(t *testing.T) {
	s, repo, notifier := newTestScanner()
	b := confirmedAt(t, repo, 48*time.Hour)
	start := fixedNow.Add(48 * time.Hour)
	ctx := context.Background()

	at := func(hoursBefore time.Duration) {
		now := start.Add(-hoursBefore)
		s.Now = func() time.Time { return now }
		s.Scan(ctx)
	}

	at(25*time.Hour + 30*time.Minute)
	assert.Zero(t, notifier.day[b.ID], "still ahead of the day window")

	at(24 * time.Hour)
	assert.Equal(t, 1, notifier.day[b.ID])

	at(23*time.Hour + 30*time.Minute)
	assert.Equal(t, 1, notifier.day[b.ID], "still inside the window, no duplicate")

	at(time.Hour)
	assert.Equal(t, 1, notifier.hour[b.ID])
	assert.Equal(t, 1, notifier.adminHour[b.ID])

	at(57 * time.Minute)
	assert.Equal(t, 1, notifier.hour[b.ID], "customer reminder stays at-most-once")
	assert.Equal(t, 2, notifier.adminHour[b.ID], "admin ping repeats inside the window")
}

func TestScanIgnoresPendingBookings(t *testing.T) {
	s, repo, notifier := newTestScanner()

	start := fixedNow.Add(24 * time.Hour)
	pending := &models.Booking{
		UserID:   42,
		Category: models.CategoryIndividual,
		Date:     start.Format(models.DateLayout),
		Time:     start.Format(models.TimeLayout),
		Status:   models.StatusPending,
	}
	require.NoError(t, repo.Create(context.Background(), pending))

	s.Scan(context.Background())
	assert.Empty(t, notifier.day)
}
