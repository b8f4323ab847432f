package calendar

import "time"

// RelativeDays is the age after which RelativeTime shows the full date instead of a phrase.
const RelativeDays = 30

// RelativeTime describes how long before now t happened: "just now", then
// minutes, hours and days, and the Full date from RelativeDays on.
// Instants after now are shown as a Full date.
func (f *Formatter) RelativeTime(t, now time.Time) string {
	if t.IsZero() {
		return f.locale.NotAvailable()
	}
	elapsed := now.Sub(t)
	switch {
	case elapsed < 0:
		return f.Format(t, FormatOptions{Variant: Full})
	case elapsed < time.Minute:
		return f.phrase(keyJustNow)
	case elapsed < time.Hour:
		return f.count(keyMinutesAgo, int(elapsed/time.Minute))
	case elapsed < 24*time.Hour:
		return f.count(keyHoursAgo, int(elapsed/time.Hour))
	case elapsed < RelativeDays*24*time.Hour:
		return f.count(keyDaysAgo, int(elapsed/(24*time.Hour)))
	}
	return f.Format(t, FormatOptions{Variant: Full})
}

// RelativeTimeString is RelativeTime for dates given as text (see ParseDay).
func (f *Formatter) RelativeTimeString(s string, now time.Time) string {
	t, err := ParseDay(s)
	if err != nil {
		return f.locale.NotAvailable()
	}
	return f.RelativeTime(t, now)
}

func (f *Formatter) phrase(key string) string {
	s, err := f.locale.trans.T(key)
	if err != nil {
		return f.locale.NotAvailable()
	}
	return s
}

func (f *Formatter) count(key string, n int) string {
	s, err := f.locale.trans.C(key, float64(n), 0, f.locale.LocalizeInt(n))
	if err != nil {
		return f.locale.NotAvailable()
	}
	return s
}
