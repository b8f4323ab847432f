package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/Anupkarki12/student-management-system-sub001/core"
	"github.com/Anupkarki12/student-management-system-sub001/core/calendar"
	logsvc "github.com/Anupkarki12/student-management-system-sub001/services/logger"
	"github.com/Anupkarki12/student-management-system-sub001/storage/database"
	sqlxrepos "github.com/Anupkarki12/student-management-system-sub001/storage/database/sqlx"
)

var logger core.Logger

func main() {
	conf := core.NewConfig()

	stdLogger := log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	rl := logsvc.NewRollbarLogger(stdLogger, conf)
	rl.Enable(!conf.Debug && conf.RollbarToken != "")
	defer rl.Close()
	logger = rl

	// set up DB
	errAndDie(database.CreateIfNotExist(conf))
	db, err := database.Open(conf)
	errAndDie(err)
	defer db.Close()

	// the published table answers first when present
	repo := sqlxrepos.NewCalendarRepository(db)
	src := calendar.NewStoredSource(repo, logger)
	var authoritative calendar.AuthoritativeSource
	if err = src.Refresh(context.Background()); err == nil {
		authoritative = src
	}

	// start CLI
	cli := commandLine{
		db:   db.DB,
		repo: repo,
		svc:  calendar.NewService(calendar.DefaultTable(), authoritative, logger, nil),
		out:  os.Stdout,
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Error(fmt.Sprintf("admin: %v", err), err)
		}
		rl.Close()
		db.Close()
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err.Error(), err)
	}
}
