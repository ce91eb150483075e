package booking

import "time"

// Sessions start at fixed times: two evening slots on weekdays, three
// daytime slots on weekends.
var (
	weekdayStartTimes = []string{"15:00", "18:00"}
	weekendStartTimes = []string{"11:00", "14:00", "17:00"}
)

// StartTimesFor returns the permitted session start times for a calendar day.
func StartTimesFor(day time.Time) []string {
	switch day.Weekday() {
	case time.Saturday, time.Sunday:
		return weekendStartTimes
	default:
		return weekdayStartTimes
	}
}

// IsPermittedStart reports whether tm is an offered start time on the given day.
func IsPermittedStart(day time.Time, tm string) bool {
	for _, t := range StartTimesFor(day) {
		if t == tm {
			return true
		}
	}
	return false
}

// upcomingDays yields the next 7 calendar days starting tomorrow, matching
// the booking horizon shown to customers.
func upcomingDays(now time.Time) []time.Time {
	days := make([]time.Time, 0, 7)
	for i := 1; i <= 7; i++ {
		d := now.AddDate(0, 0, i)
		days = append(days, time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.Local))
	}
	return days
}

// slotKey is the lock key for a (date, time) pair.
func slotKey(date, tm string) string {
	return date + " " + tm
}
