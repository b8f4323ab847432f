package calendar

import (
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Variant selects how much of a date Format renders.
type Variant int

const (
	Full      Variant = iota // [weekday, ]year month-name day suffix
	Short                    // YYYY/MM/DD, ASCII digits
	MonthYear                // month-name year
	YearOnly                 // year
)

var (
	ErrUnknownVariant = errors.New("unknown format variant")

	variantNames = [...]string{
		Full:      "full",
		Short:     "short",
		MonthYear: "month-year",
		YearOnly:  "year",
	}
)

func (v Variant) String() string {
	if v < Full || v > YearOnly {
		return "unknown"
	}
	return variantNames[v]
}

// ParseVariant parses a variant name. The empty string means Full.
func ParseVariant(s string) (Variant, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Full, nil
	}
	for v, name := range variantNames {
		if s == name {
			return Variant(v), nil
		}
	}
	return Full, errors.Wrapf(ErrUnknownVariant, "%q", s)
}

type FormatOptions struct {
	Variant Variant
	// IncludeWeekday prefixes the Gregorian weekday name, e.g. "आइतबार, २०८१ बैशाख २ गते".
	IncludeWeekday bool
}

// bsConverter is the part of a Converter the Formatter needs.
type bsConverter interface {
	ToBS(t time.Time) (Date, error)
}

// Formatter renders Gregorian instants as localized BS dates.
// It never fails: anything that cannot be rendered becomes the locale's NotAvailable text.
type Formatter struct {
	conv   bsConverter
	locale *Locale
	loc    *time.Location
}

type FormatterOption func(*Formatter)

// WithLocation renders instants on the calendar day they fall on in loc
// (e.g. Asia/Kathmandu) instead of their own location.
func WithLocation(loc *time.Location) FormatterOption {
	return func(f *Formatter) { f.loc = loc }
}

func NewFormatter(conv bsConverter, locale *Locale, opts ...FormatterOption) *Formatter {
	if locale == nil {
		locale = Nepali
	}
	f := &Formatter{conv: conv, locale: locale}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *Formatter) Locale() *Locale { return f.locale }

// WithLocale returns a copy of f rendering in locale.
func (f *Formatter) WithLocale(locale *Locale) *Formatter {
	cp := *f
	cp.locale = locale
	return &cp
}

// LocalizeDigits maps ASCII digits to the formatter locale's glyphs.
func (f *Formatter) LocalizeDigits(s string) string { return f.locale.LocalizeDigits(s) }

// LocalizeInt renders n with the formatter locale's glyphs.
func (f *Formatter) LocalizeInt(n int) string { return f.locale.LocalizeInt(n) }

// Format renders the BS date of the calendar day t falls on.
func (f *Formatter) Format(t time.Time, opts FormatOptions) string {
	if t.IsZero() {
		return f.locale.NotAvailable()
	}
	if f.loc != nil {
		t = t.In(f.loc)
	}
	d, err := f.conv.ToBS(t)
	if err != nil {
		return f.locale.NotAvailable()
	}
	return f.FormatDate(d, Midnight(t).Weekday(), opts)
}

// FormatString is Format for dates given as YYYY-MM-DD or RFC 3339 text.
func (f *Formatter) FormatString(s string, opts FormatOptions) string {
	t, err := ParseDay(s)
	if err != nil {
		return f.locale.NotAvailable()
	}
	return f.Format(t, opts)
}

// FormatDate renders an already converted date; wd is the weekday of its Gregorian day.
func (f *Formatter) FormatDate(d Date, wd time.Weekday, opts FormatOptions) string {
	if d.IsZero() {
		return f.locale.NotAvailable()
	}
	l := f.locale

	var body string
	switch opts.Variant {
	case Full:
		parts := []string{l.LocalizeInt(d.year), l.MonthName(d.month), l.LocalizeInt(d.day)}
		if l.daySuffix != "" {
			parts = append(parts, l.daySuffix)
		}
		body = strings.Join(parts, " ")
	case Short:
		body = d.String()
	case MonthYear:
		body = l.MonthName(d.month) + " " + l.LocalizeInt(d.year)
	case YearOnly:
		body = l.LocalizeInt(d.year)
	default:
		return l.NotAvailable()
	}

	if opts.IncludeWeekday {
		return l.WeekdayName(wd) + ", " + body
	}
	return body
}

var dayLayouts = []string{"2006-01-02", time.RFC3339Nano, "2006-01-02T15:04:05", "2006/01/02"}

// ParseDay parses a Gregorian date or timestamp. Timestamps keep their zone,
// so the calendar day is the one seen where they were recorded.
func ParseDay(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	var err error
	for _, layout := range dayLayouts {
		var t time.Time
		if t, err = time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.Wrapf(err, "parsing date %q", s)
}
