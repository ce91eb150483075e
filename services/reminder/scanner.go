// Package reminder implements the periodic scan over confirmed bookings
// that pushes day-ahead and hour-ahead notifications.
package reminder

import (
	"context"
	"time"

	bookingRepo "kilnbot/database/repository/booking"
	"kilnbot/models"
	"kilnbot/services/notification"

	"go.uber.org/zap"
)

// Reminder windows, in hours before the session start. Customer reminders
// fire at most once per booking; the sent flag is recorded only after a
// send that returned nil, so a failed send is retried on the next tick
// while the booking is still inside its window.
//
// The hour window is ~12 minutes wide, narrower than the default 15-minute
// scan interval, so a booking can pass through it between two ticks. That
// coverage gap is a known limitation of the product, kept as-is.
const (
	dayWindowMin  = 23.0
	dayWindowMax  = 25.0
	hourWindowMin = 0.9
	hourWindowMax = 1.1
)

// Scanner walks confirmed bookings once per tick. It never creates or
// deletes bookings; its only writes are the reminder-sent flags.
type Scanner struct {
	Repo     bookingRepo.BookingRepository
	Notifier notification.Service
	Logger   *zap.Logger

	// Now is the clock source; tests inject a fixed one.
	Now func() time.Time
}

// NewScanner builds a scanner with the wall clock.
func NewScanner(repo bookingRepo.BookingRepository, notifier notification.Service, logger *zap.Logger) *Scanner {
	return &Scanner{Repo: repo, Notifier: notifier, Logger: logger, Now: time.Now}
}

// Scan runs one pass. A failure for one booking is logged and isolated;
// the rest of the batch is still processed. There is no catch-up: a window
// that passed while the process was down is permanently missed.
func (s *Scanner) Scan(ctx context.Context) {
	now := s.Now()
	s.Logger.Debug("reminder scan", zap.Time("now", now))

	bookings, err := s.Repo.ListConfirmed(ctx)
	if err != nil {
		s.Logger.Error("reminder scan: failed to list confirmed bookings", zap.Error(err))
		return
	}

	for i := range bookings {
		s.process(ctx, now, &bookings[i])
	}
}

func (s *Scanner) process(ctx context.Context, now time.Time, b *models.Booking) {
	// Stale bookings from past days are never reminded, whatever their flags.
	if b.Date < now.Format(models.DateLayout) {
		return
	}

	start, err := b.StartsAt()
	if err != nil {
		s.Logger.Error("reminder scan: unparseable schedule", zap.Int64("id", b.ID), zap.Error(err))
		return
	}
	hours := start.Sub(now).Hours()

	switch {
	// Manual entries without a Telegram account have no chat to deliver to;
	// only the admin ping below applies to them.
	case b.UserID == 0:

	case hours >= dayWindowMin && hours <= dayWindowMax && !b.DayReminderSent:
		if err := s.Notifier.DayReminder(ctx, b); err != nil {
			s.Logger.Error("day reminder failed", zap.Int64("id", b.ID), zap.Error(err))
		} else if err := s.Repo.MarkReminderSent(ctx, b.ID, models.ReminderDay); err != nil {
			s.Logger.Error("failed to record day reminder", zap.Int64("id", b.ID), zap.Error(err))
		} else {
			s.Logger.Info("day reminder sent", zap.Int64("id", b.ID))
		}

	case hours >= hourWindowMin && hours <= hourWindowMax && !b.HourReminderSent:
		if err := s.Notifier.HourReminder(ctx, b); err != nil {
			s.Logger.Error("hour reminder failed", zap.Int64("id", b.ID), zap.Error(err))
		} else if err := s.Repo.MarkReminderSent(ctx, b.ID, models.ReminderHour); err != nil {
			s.Logger.Error("failed to record hour reminder", zap.Int64("id", b.ID), zap.Error(err))
		} else {
			s.Logger.Info("hour reminder sent", zap.Int64("id", b.ID))
		}
	}

	// The admin ping is a separate at-least-once class: no sent flag, so it
	// repeats on every tick inside the window.
	if hours >= hourWindowMin && hours <= hourWindowMax {
		if err := s.Notifier.AdminHourReminder(ctx, b); err != nil {
			s.Logger.Error("admin hour reminder failed", zap.Int64("id", b.ID), zap.Error(err))
		}
	}
}
