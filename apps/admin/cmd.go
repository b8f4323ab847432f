package main

import (
	"database/sql"
	"errors"
	"io"

	"github.com/spf13/cobra"

	"github.com/Anupkarki12/student-management-system-sub001/core/calendar"
)

var errHelp = errors.New("help provided")

type commandLine struct {
	db   *sql.DB
	repo calendar.Repository
	svc  *calendar.Service
	out  io.Writer
}

func (cli *commandLine) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "admin",
		Short:         "Vidyalaya administration",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Usage()
			return errHelp
		},
	}
	root.SetOut(cli.out)
	root.SetErr(cli.out)
	root.CompletionOptions.DisableDefaultCmd = true

	root.AddCommand(
		cli.migrateCommand(),
		cli.importTableCommand(),
		cli.toBSCommand(),
		cli.toADCommand(),
		&cobra.Command{
			Use:   "coverage",
			Short: "Print the BS years covered by the calendar table",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return cli.coverage()
			},
		},
	)
	return root
}

func (cli *commandLine) migrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:                "migrate COMMAND [ARGS]",
		Short:              "Run a goose migration command (up, down, status, ...)",
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				_ = cmd.Usage()
				return errHelp
			}
			return cli.migrate(args)
		},
	}
}

func (cli *commandLine) importTableCommand() *cobra.Command {
	var path, source string
	cmd := &cobra.Command{
		Use:   "import-table",
		Short: "Publish a BS month table (JSON) to the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if path == "" {
				_ = cmd.Usage()
				return errHelp
			}
			return cli.importTable(path, source)
		},
	}
	cmd.Flags().StringVar(&path, "file", "", "path of the table file")
	cmd.Flags().StringVar(&source, "source", "", "publisher of the table (defaults to the table version)")
	return cmd
}

func (cli *commandLine) toBSCommand() *cobra.Command {
	var date, locale string
	cmd := &cobra.Command{
		Use:   "to-bs",
		Short: "Convert a Gregorian date to BS",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if date == "" {
				_ = cmd.Usage()
				return errHelp
			}
			return cli.toBS(date, locale)
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "Gregorian date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&locale, "locale", calendar.LocaleNepali, "rendering locale (ne|en)")
	return cmd
}

func (cli *commandLine) toADCommand() *cobra.Command {
	var year, month, day int
	cmd := &cobra.Command{
		Use:   "to-ad",
		Short: "Convert a BS date to Gregorian",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if year == 0 || month == 0 || day == 0 {
				_ = cmd.Usage()
				return errHelp
			}
			return cli.toAD(year, month, day)
		},
	}
	cmd.Flags().IntVar(&year, "year", 0, "BS year")
	cmd.Flags().IntVar(&month, "month", 0, "BS month (1-12)")
	cmd.Flags().IntVar(&day, "day", 0, "BS day")
	return cmd
}

// run executes args (program name first).
func (cli *commandLine) run(args []string) error {
	root := cli.rootCommand()
	root.SetArgs(args[1:])
	return root.Execute()
}
