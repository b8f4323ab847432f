package calendar

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatter_Format(t *testing.T) {
	conv := NewTabulated(DefaultTable())
	ne := NewFormatter(conv, Nepali)
	en := ne.WithLocale(English)
	saturday := day(2024, 4, 13) // 2081/01/01

	tests := []struct {
		name string
		f    *Formatter
		t    time.Time
		opts FormatOptions
		want string
	}{
		{name: "full", f: ne, t: saturday, want: "२०८१ बैशाख १ गते"},
		{name: "full with weekday", f: ne, t: saturday, opts: FormatOptions{IncludeWeekday: true}, want: Nepali.WeekdayName(time.Saturday) + ", २०८१ बैशाख १ गते"},
		{name: "full, two-digit day", f: ne, t: day(2024, 3, 4), want: "२०८० फागुन २१ गते"},
		{name: "short", f: ne, t: saturday, opts: FormatOptions{Variant: Short}, want: "2081/01/01"},
		{name: "month and year", f: ne, t: saturday, opts: FormatOptions{Variant: MonthYear}, want: "बैशाख २०८१"},
		{name: "year only", f: ne, t: saturday, opts: FormatOptions{Variant: YearOnly}, want: "२०८१"},
		{name: "english full", f: en, t: day(2024, 1, 1), want: "2080 Poush 16"},
		{name: "english full with weekday", f: en, t: saturday, opts: FormatOptions{IncludeWeekday: true}, want: "Saturday, 2081 Baisakh 1"},
		{name: "english month and year", f: en, t: saturday, opts: FormatOptions{Variant: MonthYear}, want: "Baisakh 2081"},
		{name: "zero time", f: ne, t: time.Time{}, want: "उपलब्ध छैन"},
		{name: "english zero time", f: en, t: time.Time{}, want: "N/A"},
		{name: "before epoch", f: ne, t: day(1990, 1, 1), want: "उपलब्ध छैन"},
		{name: "unknown variant", f: en, t: saturday, opts: FormatOptions{Variant: Variant(42)}, want: "N/A"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.f.Format(tt.t, tt.opts); got != tt.want {
				t.Errorf("Format() = %q; want %q", got, tt.want)
			}
		})
	}
}

func TestFormatter_FormatString(t *testing.T) {
	f := NewFormatter(NewTabulated(DefaultTable()), English)

	tests := []struct {
		name string
		s    string
		want string
	}{
		{name: "date", s: "2024-04-20", want: "2081 Baisakh 8"},
		{name: "rfc3339", s: "2024-04-20T22:10:00Z", want: "2081 Baisakh 8"},
		{name: "rfc3339 with offset", s: "2024-04-20T00:10:00+05:45", want: "2081 Baisakh 8"},
		{name: "garbage", s: "lol", want: "N/A"},
		{name: "empty", s: "", want: "N/A"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.FormatString(tt.s, FormatOptions{}); got != tt.want {
				t.Errorf("FormatString(%q) = %q; want %q", tt.s, got, tt.want)
			}
		})
	}
}

func TestFormatter_WithLocation(t *testing.T) {
	kathmandu := time.FixedZone("NPT", 5*3600+45*60)
	f := NewFormatter(NewTabulated(DefaultTable()), English, WithLocation(kathmandu))

	// 20:00 UTC on the 12th is already the 13th in Kathmandu
	got := f.Format(time.Date(2024, 4, 12, 20, 0, 0, 0, time.UTC), FormatOptions{Variant: Short})
	assert.Equal(t, "2081/01/01", got)
}

func TestParseVariant(t *testing.T) {
	tests := []struct {
		s       string
		want    Variant
		wantErr bool
	}{
		{s: "", want: Full},
		{s: "full", want: Full},
		{s: "SHORT", want: Short},
		{s: " month-year ", want: MonthYear},
		{s: "year", want: YearOnly},
		{s: "lol", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.s, func(t *testing.T) {
			got, err := ParseVariant(tt.s)
			if tt.wantErr {
				assert.Equal(t, ErrUnknownVariant, errors.Cause(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, mustParseVariant(t, got.String()))
		})
	}
}

func mustParseVariant(t *testing.T, s string) Variant {
	t.Helper()
	v, err := ParseVariant(s)
	require.NoError(t, err)
	return v
}

func TestFormatter_RelativeTime(t *testing.T) {
	conv := NewTabulated(DefaultTable())
	ne := NewFormatter(conv, Nepali)
	en := NewFormatter(conv, English)
	now := time.Date(2024, 4, 13, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		t      time.Time
		wantNe string
		wantEn string
	}{
		{name: "seconds", t: now.Add(-30 * time.Second), wantNe: "भर्खरै", wantEn: "just now"},
		{name: "same instant", t: now, wantNe: "भर्खरै", wantEn: "just now"},
		{name: "one minute", t: now.Add(-time.Minute), wantNe: "१ मिनेट अघि", wantEn: "1 minute ago"},
		{name: "minutes", t: now.Add(-59 * time.Minute), wantNe: "५९ मिनेट अघि", wantEn: "59 minutes ago"},
		{name: "one hour", t: now.Add(-time.Hour), wantNe: "१ घण्टा अघि", wantEn: "1 hour ago"},
		{name: "hours", t: now.Add(-23 * time.Hour), wantNe: "२३ घण्टा अघि", wantEn: "23 hours ago"},
		{name: "one day", t: now.Add(-24 * time.Hour), wantNe: "१ दिन अघि", wantEn: "1 day ago"},
		{name: "days", t: now.Add(-29 * 24 * time.Hour), wantNe: "२९ दिन अघि", wantEn: "29 days ago"},
		{name: "past threshold", t: now.Add(-40 * 24 * time.Hour), wantNe: "२०८० फागुन २१ गते", wantEn: "2080 Falgun 21"},
		{name: "future", t: now.Add(7 * 24 * time.Hour), wantNe: "२०८१ बैशाख ८ गते", wantEn: "2081 Baisakh 8"},
		{name: "zero", t: time.Time{}, wantNe: "उपलब्ध छैन", wantEn: "N/A"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ne.RelativeTime(tt.t, now); got != tt.wantNe {
				t.Errorf("ne.RelativeTime() = %q; want %q", got, tt.wantNe)
			}
			if got := en.RelativeTime(tt.t, now); got != tt.wantEn {
				t.Errorf("en.RelativeTime() = %q; want %q", got, tt.wantEn)
			}
		})
	}

	assert.Equal(t, "2 hours ago", en.RelativeTimeString("2024-04-13T10:00:00Z", now))
	assert.Equal(t, "N/A", en.RelativeTimeString("yesterday", now))
}

func TestLocale(t *testing.T) {
	tests := []struct {
		tag     string
		want    *Locale
		wantErr bool
	}{
		{tag: "", want: Nepali},
		{tag: "ne", want: Nepali},
		{tag: "ne-NP", want: Nepali},
		{tag: " EN ", want: English},
		{tag: "en_US", want: English},
		{tag: "fr", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			got, err := LocaleFor(tt.tag)
			if tt.wantErr {
				assert.Equal(t, ErrUnknownLocale, errors.Cause(err))
				return
			}
			require.NoError(t, err)
			assert.Same(t, tt.want, got)
		})
	}

	assert.Equal(t, "चैत", Nepali.MonthName(12))
	assert.Equal(t, "Chaitra", English.MonthName(12))
	assert.Equal(t, "", English.MonthName(13))
	assert.Equal(t, "Sunday", English.WeekdayName(time.Sunday))
	assert.NotEmpty(t, Nepali.WeekdayName(time.Sunday))
}

func TestLocale_LocalizeDigits(t *testing.T) {
	tests := []struct {
		in     string
		wantNe string
	}{
		{in: "2081", wantNe: "२०८१"},
		{in: "0123456789", wantNe: "०१२३४५६७८९"},
		{in: "2081/01/01", wantNe: "२०८१/०१/०१"},
		{in: "Class 10 A", wantNe: "Class १० A"},
		{in: "", wantNe: ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.wantNe, Nepali.LocalizeDigits(tt.in))
			assert.Equal(t, tt.in, English.LocalizeDigits(tt.in))
		})
	}

	assert.Equal(t, "-४२", Nepali.LocalizeInt(-42))
	f := NewFormatter(NewTabulated(DefaultTable()), nil)
	assert.Equal(t, "२०८१", f.LocalizeInt(2081))
	assert.Equal(t, "२०८१", f.LocalizeDigits("2081"))
}
