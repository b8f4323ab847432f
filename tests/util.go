package testutil

import (
	"fmt"
	"sync"
	"testing"

	"github.com/jmoiron/sqlx"

	"github.com/Anupkarki12/student-management-system-sub001/core"
	"github.com/Anupkarki12/student-management-system-sub001/storage/database"
)

// Entry is a message recorded by Logger.
type Entry struct {
	Level string
	Msg   string
	Args  []interface{}
}

// Logger records what it is given and echoes it through t.Log.
type Logger struct {
	t       testing.TB
	mu      sync.Mutex
	entries []Entry
}

var _ core.Logger = (*Logger)(nil)

func NewLogger(t testing.TB) *Logger {
	return &Logger{t: t}
}

func (l *Logger) log(level, msg string, args []interface{}) {
	l.t.Helper()
	l.mu.Lock()
	l.entries = append(l.entries, Entry{Level: level, Msg: msg, Args: args})
	l.mu.Unlock()
	l.t.Log(fmt.Sprintf("[%s] %s", level, msg), args)
}

func (l *Logger) Debug(msg string, args ...interface{}) { l.log("debug", msg, args) }
func (l *Logger) Info(msg string, args ...interface{})  { l.log("info", msg, args) }
func (l *Logger) Warn(msg string, args ...interface{})  { l.log("warning", msg, args) }
func (l *Logger) Error(msg string, args ...interface{}) { l.log("error", msg, args) }
func (l *Logger) Fatal(msg string, args ...interface{}) { l.log("critical", msg, args) }

// Entries returns the messages logged at level ("" for all).
func (l *Logger) Entries(level string) []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []Entry
	for _, e := range l.entries {
		if level == "" || e.Level == level {
			out = append(out, e)
		}
	}
	return out
}

// PrepareDB opens and migrates the TEST database, skipping the test when it is unreachable.
func PrepareDB(t *testing.T) *sqlx.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping database test in short mode")
	}

	conf := core.NewConfig()
	if err := database.CreateIfNotExist(conf); err != nil {
		t.Skipf("database unavailable: %v", err)
	}
	db, err := database.Open(conf)
	if err != nil {
		t.Skipf("database unavailable: %v", err)
	}
	if err = database.Migrate(db.DB); err != nil {
		t.Fatalf("PrepareDB() failed: %v", err)
	}
	t.Cleanup(func() {
		_, _ = db.Exec("TRUNCATE calendar_years")
		_ = db.Close()
	})
	return db
}
