package main

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Anupkarki12/student-management-system-sub001/core/calendar"
	inmemdb "github.com/Anupkarki12/student-management-system-sub001/storage/database/inmem"
	testutil "github.com/Anupkarki12/student-management-system-sub001/tests"
)

func setup(t *testing.T) (*commandLine, *bytes.Buffer) {
	db, err := inmemdb.Open()
	require.NoError(t, err)

	var out bytes.Buffer
	logger := testutil.NewLogger(t)
	return &commandLine{
		repo: inmemdb.NewCalendarRepository(db),
		svc:  calendar.NewService(calendar.DefaultTable(), nil, logger, calendar.NewMetrics(prometheus.NewRegistry())),
		out:  &out,
	}, &out
}

type cliTest struct {
	name       string
	args       []string // without program name
	wantErr    error
	wantErrStr string
	wantOut    string
}

func runCliTests(t *testing.T, cli *commandLine, out *bytes.Buffer, tests []cliTest) {
	t.Helper()
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			out.Reset()
			err := cli.run(args)
			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.wantErrStr != "":
				assert.EqualError(t, err, tt.wantErrStr)
			default:
				require.NoError(t, err)
				if tt.wantOut != "" {
					assert.Equal(t, tt.wantOut, out.String())
				}
			}
		})
	}
}

func Test_commandLine_run(t *testing.T) {
	cli, out := setup(t)

	runCliTests(t, cli, out, []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErrStr: `unknown command "lol" for "admin"`},
		{name: "coverage", args: []string{"coverage"}, wantOut: "table 2081.1 covers BS 2070..2100, anchored at 2013-04-14\n"},
	})
}

func Test_commandLine_migrate(t *testing.T) {
	cli, out := setup(t)

	gooseRunFunc = func(command string, db *sql.DB, dir string, args ...string) error {
		switch command {
		case "up", "up-by-one", "down", "fix", "redo", "reset", "status", "version": // pass
		case "up-to":
			if len(args) == 0 {
				return fmt.Errorf("up-to must be of form: goose [OPTIONS] DRIVER DBSTRING up-to VERSION")
			}
			if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
				return fmt.Errorf("version must be a number (got '%s')", args[0])
			}
		case "create":
			if len(args) == 0 {
				return fmt.Errorf("create must be of form: goose [OPTIONS] DRIVER DBSTRING create NAME [go|sql]")
			}
		case "down-to":
			if len(args) == 0 {
				return fmt.Errorf("down-to must be of form: goose [OPTIONS] DRIVER DBSTRING down-to VERSION")
			}
			if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
				return fmt.Errorf("version must be a number (got '%s')", args[0])
			}
		default:
			return fmt.Errorf("%q: no such command", command)
		}
		return nil
	}

	runCliTests(t, cli, out, []cliTest{
		{name: "no subcommand", args: []string{"migrate"}, wantErr: errHelp},
		{name: "unknown subcommand", args: []string{"migrate", "lol"}, wantErrStr: "\"lol\": no such command"},
		{name: "up-to: no args", args: []string{"migrate", "up-to"}, wantErrStr: "up-to must be of form: goose [OPTIONS] DRIVER DBSTRING up-to VERSION"},
		{name: "up-to: non-int arg", args: []string{"migrate", "up-to", "lol"}, wantErrStr: "version must be a number (got 'lol')"},
		{name: "create: no args", args: []string{"migrate", "create"}, wantErrStr: "create must be of form: goose [OPTIONS] DRIVER DBSTRING create NAME [go|sql]"},
		{name: "down-to: no args", args: []string{"migrate", "down-to"}, wantErrStr: "down-to must be of form: goose [OPTIONS] DRIVER DBSTRING down-to VERSION"},
		{name: "down-to: non-int arg", args: []string{"migrate", "down-to", "lol"}, wantErrStr: "version must be a number (got 'lol')"},
		{name: "up", args: []string{"migrate", "up"}},
		{name: "up-by-one", args: []string{"migrate", "up-by-one"}},
		{name: "up-to", args: []string{"migrate", "up-to", "2"}},
		{name: "down", args: []string{"migrate", "down"}},
		{name: "down-to", args: []string{"migrate", "down-to", "1"}},
		{name: "redo", args: []string{"migrate", "redo"}},
		{name: "reset", args: []string{"migrate", "reset"}},
		{name: "status", args: []string{"migrate", "status"}},
		{name: "version", args: []string{"migrate", "version"}},
		{name: "create", args: []string{"migrate", "create", "holidays", "sql"}},
		{name: "fix", args: []string{"migrate", "fix"}},
	})
}

func Test_commandLine_convert(t *testing.T) {
	cli, out := setup(t)

	runCliTests(t, cli, out, []cliTest{
		{name: "to-bs: no date", args: []string{"to-bs"}, wantErr: errHelp},
		{name: "to-bs: bad date", args: []string{"to-bs", "--date", "13/04/2024"}, wantErrStr: "date must be formatted as 2006-01-02"},
		{name: "to-bs: unknown locale", args: []string{"to-bs", "--date", "2024-04-13", "--locale", "fr"}, wantErr: calendar.ErrUnknownLocale},
		{name: "to-bs: before the epoch", args: []string{"to-bs", "--date", "2000-01-01"}, wantErr: calendar.ErrBeforeEpoch},
		{
			name:    "to-bs",
			args:    []string{"to-bs", "--date", "2024-04-13", "--locale", "en"},
			wantOut: "2081/01/01\tSaturday, 2081 Baisakh 1\n",
		},
		{name: "to-ad: missing day", args: []string{"to-ad", "--year", "2081", "--month", "1"}, wantErr: errHelp},
		{name: "to-ad: month 13", args: []string{"to-ad", "--year", "2081", "--month", "13", "--day", "1"}, wantErr: calendar.ErrInvalidDateComponents},
		{name: "to-ad", args: []string{"to-ad", "--year", "2082", "--month", "1", "--day", "1"}, wantOut: "2025-04-14\tMonday\n"},
		{name: "to-ad past the table", args: []string{"to-ad", "--year", "2101", "--month", "1", "--day", "1"}, wantOut: "2044-04-13\tWednesday\t(approximate)\n"},
	})
}

func Test_commandLine_importTable(t *testing.T) {
	cli, out := setup(t)

	path := filepath.Join(t.TempDir(), "table.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"version": "test.1",
		"anchor": {"bs_year": 2080, "gregorian": "2023-04-14"},
		"years": {
			"2080": [31, 32, 31, 32, 31, 30, 30, 30, 29, 29, 30, 30],
			"2081": [31, 32, 31, 32, 31, 30, 30, 30, 29, 30, 29, 31]
		}
	}`), 0o600))
	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"version": "bad", "anchor": {"bs_year": 2080, "gregorian": "lol"}, "years": {}}`), 0o600))

	runCliTests(t, cli, out, []cliTest{
		{name: "no file", args: []string{"import-table"}, wantErr: errHelp},
		{name: "missing file", args: []string{"import-table", "--file", filepath.Join(t.TempDir(), "nope.json")}, wantErr: os.ErrNotExist},
		{name: "invalid table", args: []string{"import-table", "--file", bad}, wantErr: calendar.ErrInvalidTable},
		{name: "import", args: []string{"import-table", "--file", path, "--source", "MoHA"}, wantOut: "imported 2 years (BS 2080..2081) from MoHA\n"},
	})

	records, err := cli.repo.ListYears(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, 2080, records[0].Year)
	assert.Equal(t, "MoHA", records[0].Source)
	assert.Equal(t, "2024-04-13", records[1].StartsOn.Format("2006-01-02"))

	// the stored table answers like the bundled one
	src := calendar.NewStoredSource(cli.repo, testutil.NewLogger(t))
	require.NoError(t, src.Refresh(context.Background()))
	assert.True(t, src.Covers(2081))
	assert.False(t, src.Covers(2082))
}
