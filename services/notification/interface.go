package notification

import (
	"context"

	"kilnbot/models"
)

// Service defines the outbound messages the core can trigger. The customer
// reminders (DayReminder, HourReminder) are at-most-once per booking: the
// caller records a sent flag after a send that returns nil. The admin hour
// reminder is a separate at-least-once class and may repeat across scan
// ticks inside its window.
type Service interface {
	// BookingRequested tells the admin about a new pending request, with
	// confirm/reject controls.
	BookingRequested(ctx context.Context, b *models.Booking) error
	// BookingConfirmed tells the customer their request was approved.
	BookingConfirmed(ctx context.Context, b *models.Booking) error
	// BookingRejected tells the customer their slot was declined.
	BookingRejected(ctx context.Context, b *models.Booking) error
	// BookingCancelled tells the customer an existing booking was removed.
	BookingCancelled(ctx context.Context, b *models.Booking) error

	// DayReminder is the ~24h-ahead customer reminder.
	DayReminder(ctx context.Context, b *models.Booking) error
	// HourReminder is the ~1h-ahead customer reminder.
	HourReminder(ctx context.Context, b *models.Booking) error
	// AdminHourReminder is the ~1h-ahead ping to the studio admin.
	AdminHourReminder(ctx context.Context, b *models.Booking) error

	// PurchaseRequest forwards a catalog purchase request to the admin.
	PurchaseRequest(ctx context.Context, userID int64, username, fullName string, item *models.Product) error
}
