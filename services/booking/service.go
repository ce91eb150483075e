package booking

import (
	"context"
	"errors"
	"sync"
	"time"

	bookingRepo "kilnbot/database/repository/booking"
	"kilnbot/models"
	"kilnbot/services/notification"

	"go.uber.org/zap"
)

// Request carries everything needed to create a booking. Date is the full
// ISO day; manual admin entries resolve day.month input before reaching the
// service.
type Request struct {
	UserID   int64
	Username string
	FullName string
	Category models.BookingCategory
	Date     string // "2006-01-02"
	Time     string // "15:04"
}

// Service orchestrates the booking lifecycle. All methods are synchronous:
// callers always receive a result or an explicit error.
type Service interface {
	// Request creates a pending booking for a free slot and notifies the
	// admin. Returns ErrSlotTaken when the slot is occupied.
	Request(ctx context.Context, req Request) (*models.Booking, error)
	// Confirm moves a pending booking to confirmed and notifies the customer.
	Confirm(ctx context.Context, id int64) (*models.Booking, error)
	// Reject moves a pending booking to rejected, freeing the slot, and
	// notifies the customer.
	Reject(ctx context.Context, id int64) (*models.Booking, error)
	// Delete removes a booking from any status. When the booking belongs
	// to a known requester, exactly one cancellation notice is attempted.
	Delete(ctx context.Context, id int64) (*models.Booking, error)
	// CreateManual is the admin entry flow: create, then immediately
	// confirm; known requesters get a confirmation notice.
	CreateManual(ctx context.Context, req Request) (*models.Booking, error)

	Get(ctx context.Context, id int64) (*models.Booking, error)
	UserBookings(ctx context.Context, userID int64) ([]models.Booking, error)
	Pending(ctx context.Context) ([]models.Booking, error)
	All(ctx context.Context) ([]models.Booking, error)
	ByDateRange(ctx context.Context, start, end string) ([]models.Booking, error)
	Summary(ctx context.Context) (*models.BookingSummary, error)
	// UpcomingSlots returns the free slots for the next 7 days starting
	// tomorrow, in date/time order.
	UpcomingSlots(ctx context.Context, now time.Time) ([]models.Slot, error)
}

// DefaultBookingService is the production implementation.
type DefaultBookingService struct {
	Repo     bookingRepo.BookingRepository
	Notifier notification.Service
	Logger   *zap.Logger

	// slotLocks serializes availability-check-plus-insert per slot, so two
	// concurrent requests cannot both observe a slot as free. The storage
	// layer's unique index backs this up across processes.
	slotLocks sync.Map // slotKey -> *sync.Mutex
}

// NewDefaultBookingService wires the service dependencies.
func NewDefaultBookingService(repo bookingRepo.BookingRepository, notifier notification.Service, logger *zap.Logger) *DefaultBookingService {
	return &DefaultBookingService{Repo: repo, Notifier: notifier, Logger: logger}
}

func (s *DefaultBookingService) lockSlot(date, tm string) func() {
	v, _ := s.slotLocks.LoadOrStore(slotKey(date, tm), &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// validate checks category, date, and time against the offering rules.
func (s *DefaultBookingService) validate(req Request, now time.Time) error {
	if !req.Category.Valid() {
		return ErrInvalidCategory
	}
	day, err := time.ParseInLocation(models.DateLayout, req.Date, time.Local)
	if err != nil {
		return ErrInvalidDate
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	if day.Before(today) {
		return ErrInvalidDate
	}
	if _, err := models.ParseSessionTime(req.Time); err != nil {
		return ErrInvalidTime
	}
	if !IsPermittedStart(day, req.Time) {
		return ErrInvalidTime
	}
	return nil
}

// create runs the availability check and the insert under the slot lock.
func (s *DefaultBookingService) create(ctx context.Context, req Request, status models.BookingStatus) (*models.Booking, error) {
	unlock := s.lockSlot(req.Date, req.Time)
	defer unlock()

	free, err := s.Repo.IsSlotAvailable(ctx, req.Date, req.Time)
	if err != nil {
		return nil, err
	}
	if !free {
		return nil, ErrSlotTaken
	}

	b := &models.Booking{
		UserID:   req.UserID,
		Username: req.Username,
		FullName: req.FullName,
		Category: req.Category,
		Date:     req.Date,
		Time:     req.Time,
		Status:   status,
	}
	if err := s.Repo.Create(ctx, b); err != nil {
		if errors.Is(err, bookingRepo.ErrSlotConflict) {
			return nil, ErrSlotTaken
		}
		return nil, err
	}
	return b, nil
}

func (s *DefaultBookingService) Request(ctx context.Context, req Request) (*models.Booking, error) {
	if err := s.validate(req, time.Now()); err != nil {
		return nil, err
	}

	b, err := s.create(ctx, req, models.StatusPending)
	if err != nil {
		return nil, err
	}
	s.Logger.Info("booking requested",
		zap.Int64("id", b.ID),
		zap.String("date", b.Date),
		zap.String("time", b.Time),
		zap.String("category", string(b.Category)),
	)

	// The request stands even if the admin ping fails; pending bookings
	// are also visible through /admin.
	if err := s.Notifier.BookingRequested(ctx, b); err != nil {
		s.Logger.Error("failed to notify admin of new request", zap.Int64("id", b.ID), zap.Error(err))
	}
	return b, nil
}

// transition applies a legality-checked status change and returns the
// updated booking.
func (s *DefaultBookingService) transition(ctx context.Context, id int64, to models.BookingStatus) (*models.Booking, error) {
	b, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrNotFound
	}
	if !models.CanTransition(b.Status, to) {
		return nil, ErrBadTransition
	}
	if err := s.Repo.UpdateStatus(ctx, id, to); err != nil {
		return nil, err
	}
	b.Status = to
	b.Active = to.Occupies()
	return b, nil
}

func (s *DefaultBookingService) Confirm(ctx context.Context, id int64) (*models.Booking, error) {
	b, err := s.transition(ctx, id, models.StatusConfirmed)
	if err != nil {
		return nil, err
	}
	s.Logger.Info("booking confirmed", zap.Int64("id", id))

	if b.UserID != 0 {
		if err := s.Notifier.BookingConfirmed(ctx, b); err != nil {
			s.Logger.Error("failed to send confirmation notice", zap.Int64("id", id), zap.Error(err))
		}
	}
	return b, nil
}

func (s *DefaultBookingService) Reject(ctx context.Context, id int64) (*models.Booking, error) {
	b, err := s.transition(ctx, id, models.StatusRejected)
	if err != nil {
		return nil, err
	}
	s.Logger.Info("booking rejected", zap.Int64("id", id))

	if b.UserID != 0 {
		if err := s.Notifier.BookingRejected(ctx, b); err != nil {
			s.Logger.Error("failed to send rejection notice", zap.Int64("id", id), zap.Error(err))
		}
	}
	return b, nil
}

func (s *DefaultBookingService) Delete(ctx context.Context, id int64) (*models.Booking, error) {
	b, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrNotFound
	}

	removed, err := s.Repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	if !removed {
		return nil, ErrNotFound
	}
	s.Logger.Info("booking deleted", zap.Int64("id", id), zap.String("status", string(b.Status)))

	if b.UserID != 0 {
		if err := s.Notifier.BookingCancelled(ctx, b); err != nil {
			s.Logger.Error("failed to send cancellation notice", zap.Int64("id", id), zap.Error(err))
		}
	}
	return b, nil
}

func (s *DefaultBookingService) CreateManual(ctx context.Context, req Request) (*models.Booking, error) {
	if err := s.validate(req, time.Now()); err != nil {
		return nil, err
	}

	b, err := s.create(ctx, req, models.StatusPending)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.UpdateStatus(ctx, b.ID, models.StatusConfirmed); err != nil {
		return nil, err
	}
	b.Status = models.StatusConfirmed
	s.Logger.Info("manual booking created", zap.Int64("id", b.ID), zap.String("date", b.Date), zap.String("time", b.Time))

	if b.UserID != 0 {
		if err := s.Notifier.BookingConfirmed(ctx, b); err != nil {
			s.Logger.Error("failed to notify customer of manual booking", zap.Int64("id", b.ID), zap.Error(err))
		}
	}
	return b, nil
}

func (s *DefaultBookingService) Get(ctx context.Context, id int64) (*models.Booking, error) {
	b, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrNotFound
	}
	return b, nil
}

func (s *DefaultBookingService) UserBookings(ctx context.Context, userID int64) ([]models.Booking, error) {
	return s.Repo.ListByUser(ctx, userID)
}

func (s *DefaultBookingService) Pending(ctx context.Context) ([]models.Booking, error) {
	return s.Repo.ListPending(ctx)
}

func (s *DefaultBookingService) All(ctx context.Context) ([]models.Booking, error) {
	return s.Repo.ListAll(ctx)
}

func (s *DefaultBookingService) ByDateRange(ctx context.Context, start, end string) ([]models.Booking, error) {
	return s.Repo.ListByDateRange(ctx, start, end)
}

func (s *DefaultBookingService) Summary(ctx context.Context) (*models.BookingSummary, error) {
	return s.Repo.Summary(ctx)
}

func (s *DefaultBookingService) UpcomingSlots(ctx context.Context, now time.Time) ([]models.Slot, error) {
	var slots []models.Slot
	for _, day := range upcomingDays(now) {
		date := day.Format(models.DateLayout)
		booked, err := s.Repo.BookedSlots(ctx, date)
		if err != nil {
			return nil, err
		}
		for _, tm := range StartTimesFor(day) {
			if !booked[tm] {
				slots = append(slots, models.Slot{Date: date, Time: tm})
			}
		}
	}
	return slots, nil
}

var _ Service = (*DefaultBookingService)(nil)
