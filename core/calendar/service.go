package calendar

import (
	"fmt"
	"time"

	"github.com/pkg/errors"

	"github.com/Anupkarki12/student-management-system-sub001/core"
)

type (
	Coverage struct {
		Version   string `json:"version"`
		FirstYear int    `json:"first_year"`
		LastYear  int    `json:"last_year"`
		Anchor    string `json:"anchor"` // Gregorian day of FirstYear/01/01
	}

	MonthInfo struct {
		Year        int  `json:"year"`
		Month       int  `json:"month"`
		Days        int  `json:"days"`
		Approximate bool `json:"approximate"`
	}

	YearInfo struct {
		Year        int                `json:"year"`
		Months      [MonthsPerYear]int `json:"months"`
		Total       int                `json:"total"`
		Approximate bool               `json:"approximate"`
	}

	// Service is the entry point used by the API and the admin CLI. It converts
	// through a Policy and makes degraded answers observable (logs and metrics).
	Service struct {
		table   *Table
		source  AuthoritativeSource
		policy  *Policy
		logger  core.Logger
		metrics *Metrics
	}
)

// NewService returns a Service over table. source and metrics may be nil.
func NewService(table *Table, source AuthoritativeSource, logger core.Logger, metrics *Metrics) *Service {
	svc := &Service{
		table:   table,
		source:  source,
		logger:  logger,
		metrics: metrics,
	}
	svc.policy = NewPolicy(NewTabulated(table), source, svc.served)
	return svc
}

func (svc *Service) Table() *Table { return svc.table }

// Converter returns the fallback policy, for consumers that only convert (e.g. the Formatter).
func (svc *Service) Converter() Converter { return svc.policy }

// Formatter returns a Formatter converting through the service.
func (svc *Service) Formatter(locale *Locale, opts ...FormatterOption) *Formatter {
	return NewFormatter(svc, locale, opts...)
}

// Coverage reports the years answered exactly: the service table's span,
// widened by the authoritative table when one is loaded.
func (svc *Service) Coverage() Coverage {
	cov := Coverage{
		Version:   svc.table.Version(),
		FirstYear: svc.table.First(),
		LastYear:  svc.table.Last(),
		Anchor:    svc.table.Anchor().Gregorian.Format(core.DateLayout),
	}
	src, ok := svc.source.(interface{ Table() *Table })
	if !ok || svc.source == nil || !svc.source.Available() {
		return cov
	}
	tbl := src.Table()
	if tbl == nil {
		return cov
	}
	if tbl.First() < cov.FirstYear {
		cov.FirstYear = tbl.First()
		cov.Anchor = tbl.Anchor().Gregorian.Format(core.DateLayout)
	}
	if tbl.Last() > cov.LastYear {
		cov.LastYear = tbl.Last()
	}
	return cov
}

func (svc *Service) Month(year, month int) (MonthInfo, error) {
	if err := checkYear(year); err != nil {
		return MonthInfo{}, err
	}
	days, approx, err := svc.tableFor(year).Lookup(year, month)
	if err != nil {
		return MonthInfo{}, err
	}
	if approx {
		svc.approximated(year)
	}
	return MonthInfo{Year: year, Month: month, Days: days, Approximate: approx}, nil
}

func (svc *Service) Year(year int) (YearInfo, error) {
	if err := checkYear(year); err != nil {
		return YearInfo{}, err
	}
	tbl := svc.tableFor(year)
	approx := !tbl.Covers(year)
	if approx {
		svc.approximated(year)
	}
	return YearInfo{
		Year:        year,
		Months:      tbl.Months(year),
		Total:       tbl.YearLength(year),
		Approximate: approx,
	}, nil
}

// DaysInMonth returns the length of a month from the table serving that year; 0 for a bad month.
func (svc *Service) DaysInMonth(year, month int) int {
	return svc.tableFor(year).DaysInMonth(year, month)
}

// NewDate validates BS date components against the table serving that year.
func (svc *Service) NewDate(year, month, day int) (Date, error) {
	return NewDate(year, month, day, svc.tableFor(year))
}

// tableFor returns the authoritative table when it covers year, the service table otherwise.
func (svc *Service) tableFor(year int) *Table {
	if src, ok := svc.source.(interface{ Table() *Table }); ok && svc.source.Covers(year) {
		if tbl := src.Table(); tbl != nil {
			return tbl
		}
	}
	return svc.table
}

func (svc *Service) ToGregorian(year, month, day int) (time.Time, error) {
	d, err := svc.NewDate(year, month, day)
	if err != nil {
		return time.Time{}, err
	}
	t, err := svc.policy.ToGregorian(d)
	if err != nil {
		return time.Time{}, err
	}
	if svc.IsApproximate(year) {
		svc.approximated(year)
	}
	return t, nil
}

func (svc *Service) ToBS(t time.Time) (Date, error) {
	d, err := svc.policy.ToBS(t)
	if err != nil {
		return Date{}, err
	}
	if svc.IsApproximate(d.year) {
		svc.approximated(d.year)
	}
	return d, nil
}

// IsApproximate reports whether year is answered from a representative year.
func (svc *Service) IsApproximate(year int) bool {
	return !svc.tableFor(year).Covers(year)
}

func (svc *Service) approximated(year int) {
	svc.metrics.approximated()
	svc.logger.Warn(fmt.Sprintf(
		"calendar: BS year %d is outside table %s (%d..%d), using month lengths of %d",
		year, svc.table.Version(), svc.table.First(), svc.table.Last(), svc.representativeYear(year),
	))
}

func (svc *Service) representativeYear(year int) int {
	if year < svc.table.First() {
		return svc.table.First()
	}
	return svc.table.Last()
}

func (svc *Service) served(s Served) {
	svc.metrics.served(s)
	if s.Fallback != nil {
		svc.logger.Warn(fmt.Sprintf("calendar: %s source failed, %s served %s", StrategyAuthoritative, s.Strategy, s.Direction), s.Fallback)
	}
}

func checkYear(year int) error {
	if year < MinYear || year > MaxYear {
		return errors.Wrapf(ErrInvalidDateComponents, "year %d outside %d..%d", year, MinYear, MaxYear)
	}
	return nil
}
