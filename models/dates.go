package models

import (
	"fmt"
	"time"
)

const (
	// DateLayout is the storage format for booking days.
	DateLayout = "2006-01-02"
	// TimeLayout is the storage format for session start times.
	TimeLayout = "15:04"
	// DisplayDateLayout is the day.month form shown in chat.
	DisplayDateLayout = "02.01"
)

// CombineDateTime parses a stored date and time pair into a local wall-clock
// instant.
func CombineDateTime(date, tm string) (time.Time, error) {
	return time.ParseInLocation(DateLayout+" "+TimeLayout, date+" "+tm, time.Local)
}

// FormatDisplayDate renders a stored ISO date as day.month. Unparseable
// input is returned as-is so display code never fails on legacy rows.
func FormatDisplayDate(date string) string {
	d, err := time.ParseInLocation(DateLayout, date, time.Local)
	if err != nil {
		return date
	}
	return d.Format(DisplayDateLayout)
}

// ResolveDisplayDate parses admin-entered "DD.MM" input into a full ISO
// date. The year is the current one, rolled forward when the day has
// already passed, so a December entry made in late December never resolves
// to a date eleven months in the past.
func ResolveDisplayDate(input string, now time.Time) (string, error) {
	d, err := time.ParseInLocation(DisplayDateLayout, input, time.Local)
	if err != nil {
		return "", fmt.Errorf("invalid date %q: %w", input, err)
	}
	resolved := time.Date(now.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.Local)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	if resolved.Before(today) {
		resolved = resolved.AddDate(1, 0, 0)
	}
	// Reject normalized overflow such as 31.02 -> March 2nd.
	if resolved.Day() != d.Day() || resolved.Month() != d.Month() {
		return "", fmt.Errorf("invalid date %q: no such calendar day", input)
	}
	return resolved.Format(DateLayout), nil
}

// ParseSessionTime validates "HH:MM" input and returns it normalized.
func ParseSessionTime(input string) (string, error) {
	t, err := time.Parse(TimeLayout, input)
	if err != nil {
		return "", fmt.Errorf("invalid time %q: %w", input, err)
	}
	return t.Format(TimeLayout), nil
}
