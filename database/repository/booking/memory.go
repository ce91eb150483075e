package bookingRepo

import (
	"context"
	"sort"
	"sync"
	"time"

	"kilnbot/models"
)

// MemoryBookingRepo is an in-memory BookingRepository with the same
// semantics as the Mongo implementation, including the slot-conflict check
// inside Create. It backs the test suite and keeps the core testable
// without a running database.
type MemoryBookingRepo struct {
	mu       sync.Mutex
	nextID   int64
	bookings map[int64]models.Booking
}

// NewMemoryBookingRepo creates an empty in-memory repository.
func NewMemoryBookingRepo() *MemoryBookingRepo {
	return &MemoryBookingRepo{bookings: make(map[int64]models.Booking)}
}

func (r *MemoryBookingRepo) Create(_ context.Context, b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if b.Status.Occupies() {
		for _, existing := range r.bookings {
			if existing.Active && existing.Date == b.Date && existing.Time == b.Time {
				return ErrSlotConflict
			}
		}
	}

	r.nextID++
	now := time.Now()
	b.ID = r.nextID
	b.Active = b.Status.Occupies()
	b.CreatedAt = now
	b.UpdatedAt = now
	r.bookings[b.ID] = *b
	return nil
}

func (r *MemoryBookingRepo) GetByID(_ context.Context, id int64) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookings[id]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (r *MemoryBookingRepo) UpdateStatus(_ context.Context, id int64, status models.BookingStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookings[id]
	if !ok {
		return errNotFound(id)
	}
	b.Status = status
	b.Active = status.Occupies()
	b.UpdatedAt = time.Now()
	r.bookings[id] = b
	return nil
}

func (r *MemoryBookingRepo) Delete(_ context.Context, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.bookings[id]; !ok {
		return false, nil
	}
	delete(r.bookings, id)
	return true, nil
}

func (r *MemoryBookingRepo) list(match func(models.Booking) bool, less func(a, b models.Booking) bool) []models.Booking {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Booking
	for _, b := range r.bookings {
		if match(b) {
			out = append(out, b)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

func byCreatedDesc(a, b models.Booking) bool {
	if a.CreatedAt.Equal(b.CreatedAt) {
		return a.ID > b.ID
	}
	return a.CreatedAt.After(b.CreatedAt)
}

func byDateTimeAsc(a, b models.Booking) bool {
	if a.Date != b.Date {
		return a.Date < b.Date
	}
	return a.Time < b.Time
}

func statusRank(s models.BookingStatus) int {
	switch s {
	case models.StatusPending:
		return 1
	case models.StatusConfirmed:
		return 2
	case models.StatusRejected:
		return 3
	}
	return 4
}

func (r *MemoryBookingRepo) ListPending(_ context.Context) ([]models.Booking, error) {
	return r.list(func(b models.Booking) bool { return b.Status == models.StatusPending }, byCreatedDesc), nil
}

func (r *MemoryBookingRepo) ListConfirmed(_ context.Context) ([]models.Booking, error) {
	return r.list(func(b models.Booking) bool { return b.Status == models.StatusConfirmed }, byDateTimeAsc), nil
}

func (r *MemoryBookingRepo) ListAll(_ context.Context) ([]models.Booking, error) {
	return r.list(func(models.Booking) bool { return true }, func(a, b models.Booking) bool {
		if statusRank(a.Status) != statusRank(b.Status) {
			return statusRank(a.Status) < statusRank(b.Status)
		}
		return byCreatedDesc(a, b)
	}), nil
}

func (r *MemoryBookingRepo) ListByUser(_ context.Context, userID int64) ([]models.Booking, error) {
	return r.list(func(b models.Booking) bool { return b.UserID == userID }, byCreatedDesc), nil
}

func (r *MemoryBookingRepo) ListByDateRange(_ context.Context, start, end string) ([]models.Booking, error) {
	return r.list(func(b models.Booking) bool {
		return b.Active && b.Date >= start && b.Date <= end
	}, byDateTimeAsc), nil
}

func (r *MemoryBookingRepo) BookedSlots(_ context.Context, date string) (map[string]bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	slots := make(map[string]bool)
	for _, b := range r.bookings {
		if b.Active && b.Date == date {
			slots[b.Time] = true
		}
	}
	return slots, nil
}

func (r *MemoryBookingRepo) IsSlotAvailable(_ context.Context, date, tm string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, b := range r.bookings {
		if b.Active && b.Date == date && b.Time == tm {
			return false, nil
		}
	}
	return true, nil
}

func (r *MemoryBookingRepo) MarkReminderSent(_ context.Context, id int64, kind models.ReminderKind) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookings[id]
	if !ok {
		return errNotFound(id)
	}
	switch kind {
	case models.ReminderDay:
		b.DayReminderSent = true
	case models.ReminderHour:
		b.HourReminderSent = true
	}
	r.bookings[id] = b
	return nil
}

func (r *MemoryBookingRepo) Summary(_ context.Context) (*models.BookingSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	summary := &models.BookingSummary{}
	for _, b := range r.bookings {
		switch b.Status {
		case models.StatusPending:
			summary.Pending++
		case models.StatusConfirmed:
			summary.Confirmed++
		case models.StatusRejected:
			summary.Rejected++
		}
		summary.Total++
	}
	return summary, nil
}
