package dig_container

import (
	"context"
	"fmt"
	"log"
	"os"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/dig"

	echoapi "github.com/Anupkarki12/student-management-system-sub001/apps/api/echo"
	"github.com/Anupkarki12/student-management-system-sub001/core"
	"github.com/Anupkarki12/student-management-system-sub001/core/calendar"
	logsvc "github.com/Anupkarki12/student-management-system-sub001/services/logger"
	"github.com/Anupkarki12/student-management-system-sub001/storage/database"
	sqlxrepos "github.com/Anupkarki12/student-management-system-sub001/storage/database/sqlx"
)

type DBLoggerParam struct {
	dig.In
	Logger core.Logger `name:"dbLogger"`
}

// StoredSourceParam is the stored calendar source; Source is nil unless
// the stored table is enabled.
type StoredSourceParam struct {
	dig.In
	Source *calendar.StoredSource `optional:"true"`
}

type calendarSourceParam struct {
	dig.In
	Conf    *core.Config
	Repo    calendar.Repository
	Logger  core.Logger `name:"dbLogger"`
	Metrics *calendar.Metrics
}

type serverParam struct {
	dig.In
	Conf        *core.Config
	Logger      core.Logger
	CalendarSvc *calendar.Service
	Validate    *validator.Validate
	Translator  ut.Translator
	Gatherer    prometheus.Gatherer
}

func newLogger(conf *core.Config) core.Logger {
	stdLogger := log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	logger := logsvc.NewRollbarLogger(stdLogger, conf)
	logger.Enable(!conf.Debug && conf.RollbarToken != "")
	return logger
}

func newDBLogger(conf *core.Config) core.Logger {
	stdLogger := log.New(os.Stdout, "DB : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	logger := logsvc.NewRollbarLogger(stdLogger, conf)
	logger.Enable(!conf.Debug && conf.RollbarToken != "")
	return logger
}

func newDB(conf *core.Config, loggerParam DBLoggerParam) *sqlx.DB {
	setUp := func() (*sqlx.DB, error) {
		if err := database.CreateIfNotExist(conf); err != nil {
			return nil, err
		}

		db, err := database.Open(conf)
		if err != nil {
			return nil, err
		}

		if err = database.Migrate(db.DB); err != nil {
			return nil, err
		}
		return db, nil
	}

	db, err := setUp()
	if err != nil {
		loggerParam.Logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
	}
	return db
}

func newRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

func newCalendarTable() *calendar.Table {
	return calendar.DefaultTable()
}

// newStoredSource loads the published table once; refreshes happen in the background.
func newStoredSource(p calendarSourceParam) *calendar.StoredSource {
	src := calendar.NewStoredSource(p.Repo, p.Logger)
	src.OnRefresh = p.Metrics.Refreshed
	if err := src.Refresh(context.Background()); err != nil {
		p.Logger.Warn("calendar: stored table not loaded, the bundled table answers until the next refresh", err)
	}
	return src
}

func newCalendarService(table *calendar.Table, stored StoredSourceParam, logger core.Logger, metrics *calendar.Metrics) *calendar.Service {
	var src calendar.AuthoritativeSource
	if stored.Source != nil {
		src = stored.Source
	}
	return calendar.NewService(table, src, logger, metrics)
}

func newValidator() *validator.Validate {
	return validator.New()
}

func newServer(p serverParam) *echoapi.Server {
	return echoapi.NewServer(echoapi.ServerDeps{
		Conf:        p.Conf,
		Logger:      p.Logger,
		CalendarSvc: p.CalendarSvc,
		Validate:    p.Validate,
		Translator:  p.Translator,
		Gatherer:    p.Gatherer,
	})
}

type NewConfigFunc func() *core.Config

// New returns a new dependency injection dig.Container.
// The database is only provided when the stored calendar table is enabled.
func New(newConfig NewConfigFunc) *dig.Container {
	c := dig.New()
	conf := newConfig()

	must(c.Provide(func() *core.Config { return conf }))
	must(c.Provide(newLogger))
	must(c.Provide(newDBLogger, dig.Name("dbLogger")))
	must(c.Provide(newRegistry, dig.As(new(prometheus.Registerer), new(prometheus.Gatherer))))
	must(c.Provide(calendar.NewMetrics))
	must(c.Provide(newCalendarTable))
	if conf.Calendar.UseStoredTable {
		must(c.Provide(newDB))
		must(c.Provide(sqlxrepos.NewCalendarRepository))
		must(c.Provide(newStoredSource))
	}
	must(c.Provide(newCalendarService))
	must(c.Provide(newValidator))
	must(c.Provide(core.NewTranslator))
	must(c.Provide(newServer))

	return c
}

// must exits program if err happened
func must(err error) {
	if err != nil {
		log.Fatal(errors.Wrap(err, "failed to provide dependency").Error())
	}
}
