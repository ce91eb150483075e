package bookingRepo

import (
	"context"
	"errors"

	"kilnbot/models"
)

// ErrSlotConflict is returned by Create when another active booking already
// occupies the requested (date, time) slot. The Mongo implementation maps a
// duplicate-key error on the partial slot index to this sentinel, so the
// availability invariant holds even when two requests race past the
// precheck.
var ErrSlotConflict = errors.New("slot already occupied")

// BookingRepository defines the persistence surface for bookings. It is the
// sole arbiter of slot occupancy.
type BookingRepository interface {
	// Create inserts a new record, assigning the next monotonic id and
	// both timestamps. Returns ErrSlotConflict when the slot is occupied
	// by a pending or confirmed booking.
	Create(ctx context.Context, b *models.Booking) error
	// GetByID retrieves a booking, or (nil, nil) when absent.
	GetByID(ctx context.Context, id int64) (*models.Booking, error)
	// UpdateStatus sets the status (and the derived active flag) and
	// refreshes updated_at. Transition legality is the caller's concern.
	UpdateStatus(ctx context.Context, id int64, status models.BookingStatus) error
	// Delete removes a record unconditionally; true iff a row was removed.
	Delete(ctx context.Context, id int64) (bool, error)

	// ListPending returns pending bookings, newest first.
	ListPending(ctx context.Context) ([]models.Booking, error)
	// ListConfirmed returns confirmed bookings ordered by date then time.
	ListConfirmed(ctx context.Context) ([]models.Booking, error)
	// ListAll returns every booking ordered pending, confirmed, rejected,
	// newest first within each status.
	ListAll(ctx context.Context) ([]models.Booking, error)
	// ListByUser returns a requester's bookings, newest first.
	ListByUser(ctx context.Context, userID int64) ([]models.Booking, error)
	// ListByDateRange returns active bookings with start <= date <= end,
	// ordered by date then time.
	ListByDateRange(ctx context.Context, start, end string) ([]models.Booking, error)

	// BookedSlots returns the occupied start times for a date.
	BookedSlots(ctx context.Context, date string) (map[string]bool, error)
	// IsSlotAvailable reports whether no active booking holds (date, time).
	IsSlotAvailable(ctx context.Context, date, tm string) (bool, error)

	// MarkReminderSent sets the flag for the given kind. Setting an
	// already-set flag is a harmless no-op.
	MarkReminderSent(ctx context.Context, id int64, kind models.ReminderKind) error

	// Summary returns per-status counts plus the total.
	Summary(ctx context.Context) (*models.BookingSummary, error)
}
