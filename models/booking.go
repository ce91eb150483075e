package models

import "time"

// BookingStatus is the lifecycle state of a booking request.
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusRejected  BookingStatus = "rejected"
)

// CanTransition reports whether a status change is legal. The store itself
// stays permissive; callers consult this before asking for an update.
// Allowed: pending -> confirmed, pending -> rejected. Deletion is possible
// from any state and is not a transition.
func CanTransition(from, to BookingStatus) bool {
	if from != StatusPending {
		return false
	}
	return to == StatusConfirmed || to == StatusRejected
}

// BookingCategory is the workshop offering type. It determines notification
// copy only, never availability logic.
type BookingCategory string

const (
	CategoryIndividual BookingCategory = "individual"
	CategoryPaired     BookingCategory = "paired"
	CategoryGroup      BookingCategory = "group"
	CategorySchool     BookingCategory = "school"
)

// Valid reports whether c is one of the known categories.
func (c BookingCategory) Valid() bool {
	switch c {
	case CategoryIndividual, CategoryPaired, CategoryGroup, CategorySchool:
		return true
	}
	return false
}

// DisplayName returns the human-readable label used in messages.
func (c BookingCategory) DisplayName() string {
	switch c {
	case CategoryIndividual:
		return "Individual wheel session"
	case CategoryPaired:
		return "Paired session (for two)"
	case CategoryGroup:
		return "Group session"
	case CategorySchool:
		return "School workshop"
	}
	return string(c)
}

// ReminderKind identifies which reminder flag a send refers to.
type ReminderKind string

const (
	ReminderDay  ReminderKind = "day"
	ReminderHour ReminderKind = "hour"
)

// Booking is the sole persistent entity: one workshop slot request and its
// status. Dates are stored as full ISO days ("2006-01-02"); the legacy
// day.month form exists only at the presentation boundary.
type Booking struct {
	ID               int64           `bson:"id" json:"id"`
	UserID           int64           `bson:"user_id" json:"user_id"` // Telegram id; 0 means unknown/manual entry
	Username         string          `bson:"username" json:"username"`
	FullName         string          `bson:"full_name" json:"full_name"`
	Category         BookingCategory `bson:"category" json:"category"`
	Date             string          `bson:"date" json:"date"` // "2006-01-02"
	Time             string          `bson:"time" json:"time"` // "15:04"
	Status           BookingStatus   `bson:"status" json:"status"`
	Active           bool            `bson:"active" json:"-"` // status in {pending, confirmed}; backs the slot uniqueness index
	DayReminderSent  bool            `bson:"day_reminder_sent" json:"day_reminder_sent"`
	HourReminderSent bool            `bson:"hour_reminder_sent" json:"hour_reminder_sent"`
	CreatedAt        time.Time       `bson:"created_at" json:"created_at"`
	UpdatedAt        time.Time       `bson:"updated_at" json:"updated_at"`
}

// Occupies reports whether a status holds a slot. Rejected and deleted
// bookings free their slot.
func (s BookingStatus) Occupies() bool {
	return s == StatusPending || s == StatusConfirmed
}

// StartsAt reconstructs the scheduled wall-clock time of the session.
func (b *Booking) StartsAt() (time.Time, error) {
	return CombineDateTime(b.Date, b.Time)
}

// DisplayDate renders the stored ISO date as day.month for chat messages.
func (b *Booking) DisplayDate() string {
	return FormatDisplayDate(b.Date)
}

// Slot is a (date, time) pair from the fixed set of permitted start times.
type Slot struct {
	Date string `json:"date"` // "2006-01-02"
	Time string `json:"time"` // "15:04"
}

// BookingSummary holds per-status counts for the admin overview.
type BookingSummary struct {
	Pending   int64 `json:"pending"`
	Confirmed int64 `json:"confirmed"`
	Rejected  int64 `json:"rejected"`
	Total     int64 `json:"total"`
}
