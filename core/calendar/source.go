package calendar

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"

	"github.com/Anupkarki12/student-management-system-sub001/core"
)

var (
	ErrSourceUnavailable = errors.New("calendar source unavailable")
	ErrNotCovered        = errors.New("date not covered by calendar source")
)

type (
	// YearRecord is one published BS year: its month lengths and the Gregorian
	// day its first month starts on.
	YearRecord struct {
		Year       int
		Months     [MonthsPerYear]int
		StartsOn   time.Time // UTC midnight
		Source     string
		ImportedAt time.Time
	}

	// Repository stores published year records.
	Repository interface {
		ListYears(ctx context.Context) ([]YearRecord, error)
		UpsertYears(ctx context.Context, records ...YearRecord) error
	}

	// AuthoritativeSource is a higher-fidelity Strategy that may be unavailable,
	// or only cover some years.
	AuthoritativeSource interface {
		Strategy
		Available() bool
		Covers(year int) bool
	}
)

// RecordsFromTable lists the years of a table as records, computing each
// year's Gregorian start from the table anchor.
func RecordsFromTable(table *Table, source string) []YearRecord {
	records := make([]YearRecord, 0, table.Last()-table.First()+1)
	start := table.Anchor().Gregorian
	for y := table.First(); y <= table.Last(); y++ {
		records = append(records, YearRecord{
			Year:     y,
			Months:   table.Months(y),
			StartsOn: start,
			Source:   source,
		})
		start = start.AddDate(0, 0, table.YearLength(y))
	}
	return records
}

// TableFromRecords builds a table from stored records. Each record's StartsOn
// must follow the previous year exactly, otherwise the records disagree with
// each other and no table is built.
func TableFromRecords(version string, records []YearRecord) (*Table, error) {
	if len(records) == 0 {
		return nil, errors.Wrap(ErrInvalidTable, "no records")
	}
	years := make(map[int][MonthsPerYear]int, len(records))
	byYear := make(map[int]YearRecord, len(records))
	first := records[0]
	for _, rec := range records {
		if rec.Year < first.Year {
			first = rec
		}
		years[rec.Year] = rec.Months
		byYear[rec.Year] = rec
	}

	tbl, err := NewTable(version, NewAnchor(first.Year, first.StartsOn), years)
	if err != nil {
		return nil, err
	}
	start := tbl.Anchor().Gregorian
	for y := tbl.First(); y <= tbl.Last(); y++ {
		if got := Midnight(byYear[y].StartsOn); !got.Equal(start) {
			return nil, errors.Wrapf(ErrInvalidTable, "year %d starts on %s, months of %d end on %s",
				y, got.Format("2006-01-02"), y-1, start.Format("2006-01-02"))
		}
		start = start.AddDate(0, 0, tbl.YearLength(y))
	}
	return tbl, nil
}

// StoredSource serves conversions from the published table kept in a Repository.
// Refresh swaps in a whole new table; readers never block.
// Unlike Tabulated, it never approximates: years outside its records are not covered.
type StoredSource struct {
	repo   Repository
	logger core.Logger
	table  atomic.Pointer[Table]

	// OnRefresh is called after each refresh attempt (metrics).
	OnRefresh func(err error)
}

var _ AuthoritativeSource = (*StoredSource)(nil)

func NewStoredSource(repo Repository, logger core.Logger) *StoredSource {
	return &StoredSource{repo: repo, logger: logger}
}

func (s *StoredSource) Name() string { return StrategyAuthoritative }

// Refresh reloads the records. On failure the previous table stays in use.
func (s *StoredSource) Refresh(ctx context.Context) (err error) {
	defer func() {
		if s.OnRefresh != nil {
			s.OnRefresh(err)
		}
	}()

	records, err := s.repo.ListYears(ctx)
	if err != nil {
		return errors.Wrap(err, "listing calendar years")
	}
	if len(records) == 0 {
		return errors.Wrap(ErrSourceUnavailable, "no published years")
	}
	tbl, err := TableFromRecords(fmt.Sprintf("stored@%s", time.Now().UTC().Format(time.RFC3339)), records)
	if err != nil {
		return errors.Wrap(err, "building calendar table")
	}
	s.table.Store(tbl)
	return nil
}

// Run refreshes every interval until ctx is done. A non-positive interval
// disables periodic refreshes.
func (s *StoredSource) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		s.logger.Warn(fmt.Sprintf("calendar: refresh interval %s is not positive, stored table will not be refreshed", interval))
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.Refresh(ctx); err != nil {
				s.logger.Warn("calendar: refreshing stored table failed", err)
			}
		}
	}
}

// Table returns the current table, or nil if none was loaded yet.
func (s *StoredSource) Table() *Table { return s.table.Load() }

func (s *StoredSource) Available() bool { return s != nil && s.table.Load() != nil }

func (s *StoredSource) Covers(year int) bool {
	if s == nil {
		return false
	}
	tbl := s.table.Load()
	return tbl != nil && tbl.Covers(year)
}

func (s *StoredSource) ToGregorian(d Date) (time.Time, error) {
	tbl := s.table.Load()
	if tbl == nil {
		return time.Time{}, ErrSourceUnavailable
	}
	if !tbl.Covers(d.year) {
		return time.Time{}, errors.Wrapf(ErrNotCovered, "BS year %d", d.year)
	}
	return NewTabulated(tbl).ToGregorian(d)
}

func (s *StoredSource) ToBS(t time.Time) (Date, error) {
	tbl := s.table.Load()
	if tbl == nil {
		return Date{}, ErrSourceUnavailable
	}
	d, err := NewTabulated(tbl).ToBS(t)
	if err != nil {
		return Date{}, err
	}
	if !tbl.Covers(d.year) {
		return Date{}, errors.Wrapf(ErrNotCovered, "BS year %d", d.year)
	}
	return d, nil
}
