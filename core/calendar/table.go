package calendar

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

const (
	minMonthDays = 29
	maxMonthDays = 32
)

var (
	ErrInvalidTable = errors.New("invalid calendar table")

	//go:embed data/bs_calendar.json
	bundledTable []byte

	defaultTable = MustLoadTable(bundledTable)
)

// Table holds the month lengths of a contiguous span of BS years.
// It is immutable once built and safe for concurrent use.
type Table struct {
	version string
	anchor  Anchor
	first   int
	months  [][MonthsPerYear]int
	totals  []int
}

// NewTable builds a table from per-year month lengths. The years must be
// contiguous and start at the anchor year.
func NewTable(version string, anchor Anchor, years map[int][MonthsPerYear]int) (*Table, error) {
	if len(years) == 0 {
		return nil, errors.Wrap(ErrInvalidTable, "no years")
	}
	keys := make([]int, 0, len(years))
	for y := range years {
		keys = append(keys, y)
	}
	sort.Ints(keys)

	first := keys[0]
	if anchor.Year != first {
		return nil, errors.Wrapf(ErrInvalidTable, "anchor year %d is not the first year %d", anchor.Year, first)
	}
	if anchor.Gregorian.IsZero() {
		return nil, errors.Wrap(ErrInvalidTable, "anchor has no gregorian day")
	}

	tbl := &Table{
		version: version,
		anchor:  NewAnchor(anchor.Year, anchor.Gregorian),
		first:   first,
		months:  make([][MonthsPerYear]int, 0, len(keys)),
		totals:  make([]int, 0, len(keys)),
	}
	for i, y := range keys {
		if y != first+i {
			return nil, errors.Wrapf(ErrInvalidTable, "year %d missing", first+i)
		}
		var total int
		for m, n := range years[y] {
			if n < minMonthDays || n > maxMonthDays {
				return nil, errors.Wrapf(ErrInvalidTable, "%d/%02d has %d days", y, m+1, n)
			}
			total += n
		}
		tbl.months = append(tbl.months, years[y])
		tbl.totals = append(tbl.totals, total)
	}
	return tbl, nil
}

type tableFile struct {
	Version string `json:"version"`
	Anchor  struct {
		BSYear    int    `json:"bs_year"`
		Gregorian string `json:"gregorian"`
	} `json:"anchor"`
	Years map[string][]int `json:"years"`
}

// LoadTable parses a table asset:
//
//	{"version": "...", "anchor": {"bs_year": 2070, "gregorian": "2013-04-14"},
//	 "years": {"2070": [31, 31, ...], ...}}
func LoadTable(r io.Reader) (*Table, error) {
	var tf tableFile
	if err := json.NewDecoder(r).Decode(&tf); err != nil {
		return nil, errors.Wrap(err, "decoding calendar table")
	}
	greg, err := time.Parse("2006-01-02", tf.Anchor.Gregorian)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidTable, "anchor date %q", tf.Anchor.Gregorian)
	}

	years := make(map[int][MonthsPerYear]int, len(tf.Years))
	for k, v := range tf.Years {
		y, err := strconv.Atoi(k)
		if err != nil {
			return nil, errors.Wrapf(ErrInvalidTable, "year %q", k)
		}
		if len(v) != MonthsPerYear {
			return nil, errors.Wrapf(ErrInvalidTable, "year %d has %d months", y, len(v))
		}
		var months [MonthsPerYear]int
		copy(months[:], v)
		years[y] = months
	}
	return NewTable(tf.Version, NewAnchor(tf.Anchor.BSYear, greg), years)
}

// MustLoadTable is like LoadTable but panics on error.
func MustLoadTable(data []byte) *Table {
	tbl, err := LoadTable(bytes.NewReader(data))
	if err != nil {
		panic(err)
	}
	return tbl
}

// DefaultTable returns the table bundled with the binary.
func DefaultTable() *Table { return defaultTable }

// DaysInMonth returns the length of a month according to the bundled table.
func DaysInMonth(year, month int) int { return defaultTable.DaysInMonth(year, month) }

func (t *Table) Version() string { return t.version }
func (t *Table) Anchor() Anchor  { return t.anchor }
func (t *Table) First() int      { return t.first }
func (t *Table) Last() int       { return t.first + len(t.months) - 1 }

// Covers reports whether year is tabulated (not approximated).
func (t *Table) Covers(year int) bool {
	return year >= t.First() && year <= t.Last()
}

// representative returns the index of the tabulated year standing in for year:
// itself when covered, otherwise the nearest end of the table.
func (t *Table) representative(year int) int {
	switch {
	case year < t.First():
		return 0
	case year > t.Last():
		return len(t.months) - 1
	}
	return year - t.first
}

// Lookup returns the length of a month and whether it was approximated from
// the representative year because year is outside the table.
func (t *Table) Lookup(year, month int) (int, bool, error) {
	if month < 1 || month > MonthsPerYear {
		return 0, false, errors.Wrapf(ErrInvalidDateComponents, "month %d outside 1..%d", month, MonthsPerYear)
	}
	return t.months[t.representative(year)][month-1], !t.Covers(year), nil
}

// DaysInMonth returns the length of a month; 0 when month is outside 1..12.
// Years outside the table use the representative year (see Lookup).
func (t *Table) DaysInMonth(year, month int) int {
	n, _, err := t.Lookup(year, month)
	if err != nil {
		return 0
	}
	return n
}

// Months returns the twelve month lengths of year.
func (t *Table) Months(year int) [MonthsPerYear]int {
	return t.months[t.representative(year)]
}

// YearLength returns the number of days in year.
func (t *Table) YearLength(year int) int {
	return t.totals[t.representative(year)]
}
