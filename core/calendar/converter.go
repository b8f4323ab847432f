package calendar

import (
	"time"

	"github.com/pkg/errors"
)

// strategy names
const (
	StrategyAuthoritative = "authoritative"
	StrategyTabulated     = "tabulated"
)

// Converter converts between BS dates and Gregorian days (UTC midnight).
type Converter interface {
	ToGregorian(d Date) (time.Time, error)
	ToBS(t time.Time) (Date, error)
}

// Strategy is a named Converter the Policy can choose from.
type Strategy interface {
	Converter
	Name() string
}

// Tabulated converts by accumulating month lengths from a Table, starting at its Anchor.
type Tabulated struct {
	table *Table
}

var _ Strategy = (*Tabulated)(nil)

func NewTabulated(table *Table) *Tabulated {
	return &Tabulated{table: table}
}

func (c *Tabulated) Name() string  { return StrategyTabulated }
func (c *Tabulated) Table() *Table { return c.table }

// ToGregorian returns the Gregorian day of d.
func (c *Tabulated) ToGregorian(d Date) (time.Time, error) {
	// d may have been built against another table
	d, err := NewDate(d.year, d.month, d.day, c.table)
	if err != nil {
		return time.Time{}, err
	}
	anchor := c.table.Anchor()
	if d.year < anchor.Year {
		return time.Time{}, errors.Wrapf(ErrBeforeEpoch, "%s before %04d/01/01", d, anchor.Year)
	}

	var offset int
	for y := anchor.Year; y < d.year; y++ {
		offset += c.table.YearLength(y)
	}
	months := c.table.Months(d.year)
	for m := 0; m < d.month-1; m++ {
		offset += months[m]
	}
	offset += d.day - 1

	return anchor.Gregorian.AddDate(0, 0, offset), nil
}

// ToBS returns the BS date of the calendar day t falls on.
func (c *Tabulated) ToBS(t time.Time) (Date, error) {
	anchor := c.table.Anchor()
	day := Midnight(t)
	offset := daysBetween(anchor.Gregorian, day)
	if offset < 0 {
		return Date{}, errors.Wrapf(ErrBeforeEpoch, "%s before %s", day.Format("2006-01-02"), anchor.Gregorian.Format("2006-01-02"))
	}

	year := anchor.Year
	for n := c.table.YearLength(year); offset >= n; n = c.table.YearLength(year) {
		offset -= n
		year++
		if year > MaxYear {
			return Date{}, errors.Wrapf(ErrOutOfRange, "%s after BS year %d", day.Format("2006-01-02"), MaxYear)
		}
	}

	month := 1
	for _, n := range c.table.Months(year) {
		if offset < n {
			break
		}
		offset -= n
		month++
	}
	return NewDate(year, month, offset+1, c.table)
}
