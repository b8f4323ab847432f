package sqlxrepos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/Anupkarki12/student-management-system-sub001/core/calendar"
)

type yearRow struct {
	Year       int           `db:"bs_year"`
	Months     pq.Int64Array `db:"months"`
	StartsOn   time.Time     `db:"starts_on"`
	Source     string        `db:"source"`
	ImportedAt time.Time     `db:"imported_at"`
}

func (r yearRow) record() (calendar.YearRecord, error) {
	rec := calendar.YearRecord{
		Year:       r.Year,
		StartsOn:   calendar.Midnight(r.StartsOn),
		Source:     r.Source,
		ImportedAt: r.ImportedAt.UTC(),
	}
	if len(r.Months) != calendar.MonthsPerYear {
		return rec, errors.Errorf("BS year %d has %d months", r.Year, len(r.Months))
	}
	for i, n := range r.Months {
		rec.Months[i] = int(n)
	}
	return rec, nil
}

func newYearRow(rec calendar.YearRecord, importedAt time.Time) yearRow {
	row := yearRow{
		Year:       rec.Year,
		Months:     make(pq.Int64Array, calendar.MonthsPerYear),
		StartsOn:   calendar.Midnight(rec.StartsOn),
		Source:     rec.Source,
		ImportedAt: importedAt,
	}
	for i, n := range rec.Months {
		row.Months[i] = int64(n)
	}
	return row
}

type calendarRepository struct {
	db *sqlx.DB
}

var _ calendar.Repository = (*calendarRepository)(nil)

func NewCalendarRepository(db *sqlx.DB) calendar.Repository {
	return &calendarRepository{db: db}
}

const (
	listYearsQuery = `
		SELECT bs_year, months, starts_on, source, imported_at
		FROM calendar_years
		ORDER BY bs_year`

	upsertYearQuery = `
		INSERT INTO calendar_years (bs_year, months, starts_on, source, imported_at)
		VALUES (:bs_year, :months, :starts_on, :source, :imported_at)
		ON CONFLICT (bs_year) DO UPDATE SET
			months = EXCLUDED.months,
			starts_on = EXCLUDED.starts_on,
			source = EXCLUDED.source,
			imported_at = EXCLUDED.imported_at`

	insertImportQuery = `
		INSERT INTO calendar_imports (id, source, first_year, last_year, imported_at)
		VALUES ($1, $2, $3, $4, $5)`
)

func (repo *calendarRepository) ListYears(ctx context.Context) ([]calendar.YearRecord, error) {
	var rows []yearRow
	if err := repo.db.SelectContext(ctx, &rows, listYearsQuery); err != nil {
		return nil, errors.Wrap(err, "selecting calendar years")
	}
	records := make([]calendar.YearRecord, 0, len(rows))
	for _, row := range rows {
		rec, err := row.record()
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// UpsertYears stores the records and logs the import, all in one transaction.
func (repo *calendarRepository) UpsertYears(ctx context.Context, records ...calendar.YearRecord) (err error) {
	if len(records) == 0 {
		return nil
	}

	tx, err := repo.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "beginning transaction")
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	now := time.Now().UTC()
	first, last := records[0].Year, records[0].Year
	for _, rec := range records {
		if _, err = tx.NamedExecContext(ctx, upsertYearQuery, newYearRow(rec, now)); err != nil {
			return errors.Wrapf(err, "upserting BS year %d", rec.Year)
		}
		if rec.Year < first {
			first = rec.Year
		}
		if rec.Year > last {
			last = rec.Year
		}
	}
	if _, err = tx.ExecContext(ctx, insertImportQuery, uuid.New(), records[0].Source, first, last, now); err != nil {
		return errors.Wrap(err, "logging calendar import")
	}
	return errors.Wrap(tx.Commit(), "committing calendar years")
}
