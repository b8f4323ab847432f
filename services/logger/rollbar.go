package logsvc

import (
	"fmt"
	"log"
	"strings"

	"github.com/rollbar/rollbar-go"
	"github.com/rollbar/rollbar-go/errors"

	"github.com/Anupkarki12/student-management-system-sub001/core"
)

// RollbarLogger reports to Rollbar (when a token is configured) and prints to std.
type RollbarLogger struct {
	std      *log.Logger
	minLevel string
}

var _ core.Logger = (*RollbarLogger)(nil)

var levels = map[string]int{
	rollbar.DEBUG: 0,
	rollbar.INFO:  1,
	rollbar.WARN:  2,
	rollbar.ERR:   3,
	rollbar.CRIT:  4,
}

func NewRollbarLogger(std *log.Logger, conf *core.Config) *RollbarLogger {
	rollbar.SetToken(conf.RollbarToken)
	rollbar.SetEnvironment(strings.ToLower(conf.Env))
	rollbar.SetServerHost(conf.Server.Host)
	rollbar.SetCodeVersion(conf.Build)
	rollbar.SetStackTracer(errors.StackTracer)
	rollbar.SetCustom(map[string]interface{}{"app": conf.AppName})
	rollbar.SetEnabled(conf.RollbarToken != "" && !conf.TestMode)

	minLevel := rollbar.INFO
	if conf.Debug {
		minLevel = rollbar.DEBUG
	}
	return &RollbarLogger{std: std, minLevel: minLevel}
}

func (l *RollbarLogger) Enable(enabled bool) {
	rollbar.SetEnabled(enabled)
}

// Close flushes the pending Rollbar items.
func (l *RollbarLogger) Close() {
	rollbar.Close()
}

// expected fmt: msg | error, map[string]interface{}, *http.Request
func (l *RollbarLogger) log(level, msg string, args []interface{}) {
	if levels[level] < levels[l.minLevel] {
		return
	}
	rollbar.Log(level, append([]interface{}{msg}, args...)...)
	l.print(level, msg, args)
}

func (l *RollbarLogger) print(level, msg string, args []interface{}) {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s", strings.ToUpper(level), msg)
	for _, arg := range args {
		switch a := arg.(type) {
		case error:
			fmt.Fprintf(&b, "\n\t%+v", a)
		case map[string]interface{}:
			for k, v := range a {
				fmt.Fprintf(&b, " %s=%v", k, v)
			}
		case fmt.Stringer:
			fmt.Fprintf(&b, " %s", a)
		}
	}
	l.std.Println(b.String())
}

func (l *RollbarLogger) Debug(msg string, args ...interface{}) { l.log(rollbar.DEBUG, msg, args) }
func (l *RollbarLogger) Info(msg string, args ...interface{})  { l.log(rollbar.INFO, msg, args) }
func (l *RollbarLogger) Warn(msg string, args ...interface{})  { l.log(rollbar.WARN, msg, args) }
func (l *RollbarLogger) Error(msg string, args ...interface{}) { l.log(rollbar.ERR, msg, args) }

func (l *RollbarLogger) Fatal(msg string, args ...interface{}) {
	l.log(rollbar.CRIT, msg, args)
	rollbar.Close()
	l.std.Fatal(msg)
}
