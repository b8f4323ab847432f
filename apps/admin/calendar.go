package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/pkg/errors"

	"github.com/Anupkarki12/student-management-system-sub001/core"
	"github.com/Anupkarki12/student-management-system-sub001/core/calendar"
)

// importTable upserts every year of a published table file.
func (cli *commandLine) importTable(path, source string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "opening table file")
	}
	defer f.Close()

	table, err := calendar.LoadTable(f)
	if err != nil {
		return err
	}
	source = core.CleanString(source)
	if source == "" {
		source = table.Version()
	}

	records := calendar.RecordsFromTable(table, source)
	if err = cli.repo.UpsertYears(context.Background(), records...); err != nil {
		return errors.Wrap(err, "importing calendar table")
	}
	fmt.Fprintf(cli.out, "imported %d years (BS %d..%d) from %s\n", len(records), table.First(), table.Last(), source)
	return nil
}

func (cli *commandLine) toBS(date, locale string) error {
	t, err := time.Parse(core.DateLayout, core.CleanString(date))
	if err != nil {
		return core.NewFieldValidationError(errors.Errorf("date must be formatted as %s", core.DateLayout), "date")
	}
	loc, err := calendar.LocaleFor(locale)
	if err != nil {
		return err
	}

	d, err := cli.svc.ToBS(t)
	if err != nil {
		return err
	}
	f := cli.svc.Formatter(loc)
	fmt.Fprintf(cli.out, "%s\t%s", d, f.FormatDate(d, t.Weekday(), calendar.FormatOptions{Variant: calendar.Full, IncludeWeekday: true}))
	cli.approximated(d.Year())
	fmt.Fprintln(cli.out)
	return nil
}

func (cli *commandLine) toAD(year, month, day int) error {
	t, err := cli.svc.ToGregorian(year, month, day)
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "%s\t%s", t.Format(core.DateLayout), t.Weekday())
	cli.approximated(year)
	fmt.Fprintln(cli.out)
	return nil
}

func (cli *commandLine) coverage() error {
	cov := cli.svc.Coverage()
	fmt.Fprintf(cli.out, "table %s covers BS %d..%d, anchored at %s\n", cov.Version, cov.FirstYear, cov.LastYear, cov.Anchor)
	return nil
}

func (cli *commandLine) approximated(year int) {
	if cli.svc.IsApproximate(year) {
		fmt.Fprint(cli.out, "\t(approximate)")
	}
}
