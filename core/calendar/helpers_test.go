package calendar

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

var errStub = errors.New("stub source failure")

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func mustNewDate(t *testing.T, year, month, dd int) Date {
	t.Helper()
	d, err := NewDate(year, month, dd, DefaultTable())
	if err != nil {
		t.Fatalf("NewDate(%d, %d, %d) failed: %v", year, month, dd, err)
	}
	return d
}

// stubSource is an AuthoritativeSource whose behavior is set per test.
type stubSource struct {
	available bool
	covers    func(year int) bool
	err       error
	panics    bool
	conv      Converter
	calls     int
}

func (s *stubSource) Name() string    { return StrategyAuthoritative }
func (s *stubSource) Available() bool { return s.available }

func (s *stubSource) Covers(year int) bool {
	if s.covers == nil {
		return true
	}
	return s.covers(year)
}

func (s *stubSource) ToGregorian(d Date) (time.Time, error) {
	s.calls++
	if s.panics {
		panic("source exploded")
	}
	if s.err != nil {
		return time.Time{}, s.err
	}
	return s.conv.ToGregorian(d)
}

func (s *stubSource) ToBS(t time.Time) (Date, error) {
	s.calls++
	if s.panics {
		panic("source exploded")
	}
	if s.err != nil {
		return Date{}, s.err
	}
	return s.conv.ToBS(t)
}

// memRepo is a Repository kept in memory.
type memRepo struct {
	mu      sync.Mutex
	records map[int]YearRecord
	err     error
}

func newMemRepo(records ...YearRecord) *memRepo {
	r := &memRepo{records: make(map[int]YearRecord)}
	_ = r.UpsertYears(context.Background(), records...)
	return r
}

func (r *memRepo) ListYears(context.Context) ([]YearRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	out := make([]YearRecord, 0, len(r.records))
	for _, rec := range r.records {
		out = append(out, rec)
	}
	return out, nil
}

func (r *memRepo) UpsertYears(_ context.Context, records ...YearRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rec := range records {
		r.records[rec.Year] = rec
	}
	return nil
}

// shiftedRecords returns the records of the default table starting at from.
func shiftedRecords(from, to int) []YearRecord {
	var out []YearRecord
	for _, rec := range RecordsFromTable(DefaultTable(), "test") {
		if rec.Year >= from && rec.Year <= to {
			out = append(out, rec)
		}
	}
	return out
}
