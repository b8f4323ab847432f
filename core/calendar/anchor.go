package calendar

import "time"

const secondsPerDay = 24 * 60 * 60

// Anchor pins the first day of a BS year to its Gregorian day.
type Anchor struct {
	Year      int       // BS year; month and day are always 1
	Gregorian time.Time // UTC midnight
}

func NewAnchor(year int, gregorian time.Time) Anchor {
	return Anchor{Year: year, Gregorian: Midnight(gregorian)}
}

// Midnight returns UTC midnight of the calendar day t falls on in its own location.
// Time of day and zone offset never move a date across a day boundary.
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// daysBetween returns the signed number of whole days from a to b.
// Both must be UTC midnights. Unix seconds are used instead of time.Duration,
// which saturates after ~292 years.
func daysBetween(a, b time.Time) int {
	return int((b.Unix() - a.Unix()) / secondsPerDay)
}
