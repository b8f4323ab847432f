package inmemdb

import (
	"context"
	"sort"
	"time"

	"github.com/Anupkarki12/student-management-system-sub001/core/calendar"
)

type calendarRepository struct {
	db *calendarTable
}

func NewCalendarRepository(db *DB) calendar.Repository {
	return &calendarRepository{db: db.calendar}
}

func (repo *calendarRepository) ListYears(context.Context) ([]calendar.YearRecord, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	records := make([]calendar.YearRecord, 0, len(repo.db.table))
	for _, rec := range repo.db.table {
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Year < records[j].Year })
	return records, nil
}

func (repo *calendarRepository) UpsertYears(_ context.Context, records ...calendar.YearRecord) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	now := time.Now().UTC()
	for _, rec := range records {
		rec.StartsOn = calendar.Midnight(rec.StartsOn)
		rec.ImportedAt = now
		repo.db.table[rec.Year] = rec
	}
	return nil
}
