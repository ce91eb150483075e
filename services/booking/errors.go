package booking

import "errors"

var (
	// ErrSlotTaken means another pending or confirmed booking holds the slot.
	ErrSlotTaken = errors.New("slot is already taken")
	// ErrNotFound means the booking id does not exist.
	ErrNotFound = errors.New("booking not found")
	// ErrInvalidCategory means the category is outside the offered set.
	ErrInvalidCategory = errors.New("unknown booking category")
	// ErrInvalidDate means the date is malformed or already in the past.
	ErrInvalidDate = errors.New("invalid or past date")
	// ErrInvalidTime means the time is not an offered start time for that day.
	ErrInvalidTime = errors.New("time is not an offered start time")
	// ErrBadTransition means the requested status change is not legal.
	ErrBadTransition = errors.New("illegal status transition")
)
