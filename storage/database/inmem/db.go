package inmemdb

import (
	"sync"

	"github.com/Anupkarki12/student-management-system-sub001/core/calendar"
)

type (
	DB struct {
		calendar *calendarTable
	}

	calendarTable struct {
		mutex sync.RWMutex
		table map[int]calendar.YearRecord
	}
)

func Open() (*DB, error) {
	db := &DB{
		calendar: &calendarTable{table: make(map[int]calendar.YearRecord)},
	}
	return db, nil
}
