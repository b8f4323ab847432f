// Package calendar converts dates between the Gregorian calendar and Bikram
// Sambat (BS), and renders BS dates for display.
//
// BS month lengths vary from year to year and are looked up in a Table rather
// than computed. Every conversion is an offset in whole days from the table's
// Anchor, a fixed BS new year and its Gregorian day.
package calendar

import (
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"
)

const (
	MonthsPerYear = 12

	// MinYear and MaxYear bound the BS years a Date may carry.
	MinYear = 1
	MaxYear = 9999
)

var (
	// errors
	ErrInvalidDateComponents = errors.New("invalid date components")
	ErrBeforeEpoch           = errors.New("date precedes the calendar epoch")
	ErrOutOfRange            = errors.New("date outside the supported range")
)

// Date is a day of the Bikram Sambat calendar.
// The zero value is not a valid date; use NewDate.
type Date struct {
	year, month, day int
}

// NewDate validates the components against the month lengths of table.
// Years past the end of the table are checked against its representative year.
func NewDate(year, month, day int, table *Table) (Date, error) {
	if year < MinYear || year > MaxYear {
		return Date{}, errors.Wrapf(ErrInvalidDateComponents, "year %d outside %d..%d", year, MinYear, MaxYear)
	}
	if month < 1 || month > MonthsPerYear {
		return Date{}, errors.Wrapf(ErrInvalidDateComponents, "month %d outside 1..%d", month, MonthsPerYear)
	}
	if n := table.DaysInMonth(year, month); day < 1 || day > n {
		return Date{}, errors.Wrapf(ErrInvalidDateComponents, "day %d outside 1..%d for %04d/%02d", day, n, year, month)
	}
	return Date{year: year, month: month, day: day}, nil
}

// MustDate is like NewDate but panics on invalid components. Meant for fixtures.
func MustDate(year, month, day int, table *Table) Date {
	d, err := NewDate(year, month, day, table)
	if err != nil {
		panic(err)
	}
	return d
}

func (d Date) Year() int  { return d.year }
func (d Date) Month() int { return d.month }
func (d Date) Day() int   { return d.day }

func (d Date) IsZero() bool { return d == Date{} }

// Compare returns -1, 0 or +1 ordering d and o lexicographically on (year, month, day).
func (d Date) Compare(o Date) int {
	switch {
	case d.year != o.year:
		return sign(d.year - o.year)
	case d.month != o.month:
		return sign(d.month - o.month)
	default:
		return sign(d.day - o.day)
	}
}

func (d Date) Before(o Date) bool { return d.Compare(o) < 0 }
func (d Date) After(o Date) bool  { return d.Compare(o) > 0 }

// String renders the date as YYYY/MM/DD with ASCII digits.
func (d Date) String() string {
	return fmt.Sprintf("%04d/%02d/%02d", d.year, d.month, d.day)
}

type dateJSON struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(dateJSON{Year: d.year, Month: d.month, Day: d.day})
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	}
	return 0
}
