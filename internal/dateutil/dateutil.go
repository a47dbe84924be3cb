// Package dateutil holds the calendar-day arithmetic shared by the front-desk
// handlers. Dates are interpreted in server-local time, not UTC.
package dateutil

import "time"

const dayLayout = "2006-01-02"

// Today returns the current local date truncated to midnight.
func Today() time.Time {
	return StartOfDay(time.Now())
}

func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// OneMonthFrom is the renewal horizon: the same day next month, normalized by
// the calendar (Jan 31 + 1 month rolls into March).
func OneMonthFrom(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 1, 0)
}

// ParseDay parses a YYYY-MM-DD string as a local date.
func ParseDay(s string) (time.Time, error) {
	return time.ParseInLocation(dayLayout, s, time.Local)
}

// DayRange returns the inclusive [00:00:00.000, 23:59:59.999] window for a
// YYYY-MM-DD string. A row created exactly at the next midnight falls outside.
func DayRange(s string) (time.Time, time.Time, error) {
	start, err := ParseDay(s)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end := start.Add(24*time.Hour - time.Millisecond)
	return start, end, nil
}

func FormatDay(t time.Time) string {
	return t.Format(dayLayout)
}
