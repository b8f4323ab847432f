package calendar

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	testutil "github.com/Anupkarki12/student-management-system-sub001/tests"
)

func newTestService(t *testing.T, source AuthoritativeSource) (*Service, *testutil.Logger, *Metrics) {
	logger := testutil.NewLogger(t)
	metrics := NewMetrics(prometheus.NewRegistry())
	return NewService(DefaultTable(), source, logger, metrics), logger, metrics
}

func TestService_conversions(t *testing.T) {
	svc, logger, metrics := newTestService(t, nil)

	ad, err := svc.ToGregorian(2081, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, day(2024, 4, 13), ad)

	d, err := svc.ToBS(day(2025, 4, 14))
	require.NoError(t, err)
	assert.Equal(t, "2082/01/01", d.String())

	_, err = svc.ToGregorian(2082, 2, 32)
	assert.Equal(t, ErrInvalidDateComponents, errors.Cause(err))
	_, err = svc.ToBS(day(2001, 1, 1))
	assert.Equal(t, ErrBeforeEpoch, errors.Cause(err))

	assert.Equal(t, 1.0, promtest.ToFloat64(metrics.conversions.WithLabelValues(DirectionToGregorian, StrategyTabulated)))
	assert.Equal(t, 1.0, promtest.ToFloat64(metrics.conversions.WithLabelValues(DirectionToBS, StrategyTabulated)))
	assert.Equal(t, 0.0, promtest.ToFloat64(metrics.approximations))
	assert.Empty(t, logger.Entries("warning"))
}

func TestService_approximation(t *testing.T) {
	svc, logger, metrics := newTestService(t, nil)

	ad, err := svc.ToGregorian(2101, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, day(2044, 4, 13), ad)

	info, err := svc.Month(2150, 2)
	require.NoError(t, err)
	assert.Equal(t, MonthInfo{Year: 2150, Month: 2, Days: 32, Approximate: true}, info)

	year, err := svc.Year(2101)
	require.NoError(t, err)
	assert.True(t, year.Approximate)
	assert.Equal(t, DefaultTable().Months(2100), year.Months)
	assert.Equal(t, 365, year.Total)

	assert.Equal(t, 3.0, promtest.ToFloat64(metrics.approximations))
	warnings := logger.Entries("warning")
	require.Len(t, warnings, 3)
	assert.Contains(t, warnings[0].Msg, "BS year 2101 is outside table 2081.1 (2070..2100)")

	// tabulated years are exact
	info, err = svc.Month(2081, 2)
	require.NoError(t, err)
	assert.False(t, info.Approximate)
	assert.Equal(t, 32, info.Days)
}

func TestService_inputErrors(t *testing.T) {
	svc, _, _ := newTestService(t, nil)

	tests := []struct {
		name string
		fn   func() error
	}{
		{name: "month 13", fn: func() error { _, err := svc.Month(2081, 13); return err }},
		{name: "year 0", fn: func() error { _, err := svc.Year(0); return err }},
		{name: "year 10000", fn: func() error { _, err := svc.Month(10000, 1); return err }},
		{name: "day 33", fn: func() error { _, err := svc.NewDate(2081, 2, 33); return err }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, ErrInvalidDateComponents, errors.Cause(tt.fn()))
		})
	}
}

func TestService_fallback(t *testing.T) {
	svc, logger, metrics := newTestService(t, &stubSource{available: true, err: errStub})

	d, err := svc.ToBS(day(2024, 4, 13))
	require.NoError(t, err)
	assert.Equal(t, "2081/01/01", d.String())

	assert.Equal(t, 1.0, promtest.ToFloat64(metrics.fallbacks.WithLabelValues(DirectionToBS)))
	assert.Equal(t, 1.0, promtest.ToFloat64(metrics.conversions.WithLabelValues(DirectionToBS, StrategyTabulated)))
	warnings := logger.Entries("warning")
	require.Len(t, warnings, 1)
	assert.Equal(t, errStub, warnings[0].Args[0])
}

func TestService_storedTable(t *testing.T) {
	ctx := context.Background()
	months := [MonthsPerYear]int{31, 31, 32, 32, 31, 30, 30, 29, 30, 29, 30, 30}
	records := append(shiftedRecords(2099, 2100), YearRecord{
		Year:     2101,
		Months:   months,
		StartsOn: day(2044, 4, 13),
		Source:   "test",
	})
	src := NewStoredSource(newMemRepo(records...), testutil.NewLogger(t))
	require.NoError(t, src.Refresh(ctx))

	svc, logger, metrics := newTestService(t, src)

	// 2101 is published, so it is neither approximated nor validated against 2100
	info, err := svc.Month(2101, 3)
	require.NoError(t, err)
	assert.Equal(t, MonthInfo{Year: 2101, Month: 3, Days: 32}, info)
	assert.Equal(t, 32, svc.DaysInMonth(2101, 4))

	_, err = svc.NewDate(2101, 4, 32)
	require.NoError(t, err)

	ad, err := svc.ToGregorian(2101, 4, 32)
	require.NoError(t, err)
	assert.Equal(t, day(2044, 4, 13).AddDate(0, 0, 31+31+32+31), ad)

	assert.Equal(t, 1.0, promtest.ToFloat64(metrics.conversions.WithLabelValues(DirectionToGregorian, StrategyAuthoritative)))
	assert.Equal(t, 0.0, promtest.ToFloat64(metrics.approximations))
	assert.Empty(t, logger.Entries("warning"))
}

func TestService_Coverage(t *testing.T) {
	svc, _, _ := newTestService(t, nil)
	assert.Equal(t, Coverage{Version: "2081.1", FirstYear: 2070, LastYear: 2100, Anchor: "2013-04-14"}, svc.Coverage())
}

func TestService_Coverage_storedTable(t *testing.T) {
	months := [MonthsPerYear]int{31, 31, 32, 32, 31, 30, 30, 29, 30, 29, 30, 30}
	var total int
	for _, n := range months {
		total += n
	}
	earlier := YearRecord{Year: 2069, Months: months, StartsOn: day(2013, 4, 14).AddDate(0, 0, -total), Source: "test"}

	tests := []struct {
		name    string
		records []YearRecord
		want    Coverage
	}{
		{
			name: "nothing loaded",
			want: Coverage{Version: "2081.1", FirstYear: 2070, LastYear: 2100, Anchor: "2013-04-14"},
		},
		{
			name:    "inside the bundled span",
			records: shiftedRecords(2075, 2080),
			want:    Coverage{Version: "2081.1", FirstYear: 2070, LastYear: 2100, Anchor: "2013-04-14"},
		},
		{
			name:    "earlier years",
			records: append([]YearRecord{earlier}, shiftedRecords(2070, 2071)...),
			want:    Coverage{Version: "2081.1", FirstYear: 2069, LastYear: 2100, Anchor: day(2013, 4, 14).AddDate(0, 0, -total).Format("2006-01-02")},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := NewStoredSource(newMemRepo(tt.records...), testutil.NewLogger(t))
			if len(tt.records) > 0 {
				require.NoError(t, src.Refresh(context.Background()))
			}
			svc, _, _ := newTestService(t, src)
			assert.Equal(t, tt.want, svc.Coverage())
		})
	}
}
