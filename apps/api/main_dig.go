package main

import (
	"context"
	"expvar"
	"fmt"
	"log"
	"net/http"
	_ "net/http/pprof"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"go.uber.org/dig"

	dig_container "github.com/Anupkarki12/student-management-system-sub001/apps/api/di/dig"
	echoapi "github.com/Anupkarki12/student-management-system-sub001/apps/api/echo"
	"github.com/Anupkarki12/student-management-system-sub001/core"
	"github.com/Anupkarki12/student-management-system-sub001/core/calendar"
)

type appParam struct {
	dig.In
	Conf          *core.Config
	APILogger     core.Logger
	DBLoggerParam dig_container.DBLoggerParam
	DB            *sqlx.DB `optional:"true"`
	Stored        dig_container.StoredSourceParam
	CalendarSvc   *calendar.Service
	Validate      *validator.Validate
	Translator    ut.Translator
	Server        *echoapi.Server
}

func startWithDig() {
	c := dig_container.New(core.NewConfig)

	must(c.Invoke(func(p appParam) {
		conf, apiLogger := p.Conf, p.APILogger

		// =========================================================================
		// Initialize App

		apiLogger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))

		core.InitValidators(p.Validate, p.Translator)
		calendar.InitValidators(p.Validate, p.Translator, p.CalendarSvc)

		if p.DB != nil {
			dbLogger := p.DBLoggerParam.Logger
			defer func() {
				if err := p.DB.Close(); err != nil {
					dbLogger.Fatal("Failed to close", err)
				}
			}()
		}
		defer apiLogger.Info("Application stopped")

		cov := p.CalendarSvc.Coverage()
		apiLogger.Info(fmt.Sprintf("calendar table %s covers BS %d..%d", cov.Version, cov.FirstYear, cov.LastYear))

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		if src := p.Stored.Source; src != nil {
			go src.Run(ctx, conf.Calendar.RefreshInterval)
		}

		// =========================================================================
		// Start Debug Service
		//
		// /debug/pprof - Added to the default mux by importing the net/http/pprof package.
		// /debug/vars - Added to the default mux by importing the expvar package.

		// Expose important info under /debug/vars.
		expvar.NewString("build").Set(conf.Build)
		expvar.NewString("env").Set(conf.Env)
		expvar.NewString("calendar").Set(cov.Version)

		go func() {
			if err := http.ListenAndServe(conf.Server.DebugHost, http.DefaultServeMux); err != nil {
				apiLogger.Error(fmt.Sprintf("debug server closed: %v", err), err)
			}
		}()

		// =========================================================================
		// Start API Service

		server := p.Server
		go func() {
			server.Start()
		}()

		// =========================================================================
		// Shutdown

		select {
		case err := <-server.Errors():
			apiLogger.Fatal(fmt.Sprintf("server error: %v", err), err)

		case sig := <-server.ShutdownSignal():
			apiLogger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

			// give outstanding requests a deadline for completion
			ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
			defer cancel()

			// asking listener to shut down and shed load
			if err := server.Shutdown(ctx); err != nil {
				apiLogger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

				if err = server.Close(); err != nil {
					apiLogger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
				}
			}
		}
	}))
}

func must(err error) {
	if err != nil {
		log.Fatal(err)
	}
}
