package dtr

import (
	"errors"
	"time"
)

// Record statuses. A record is Active from clock-in until clock-out sets it Completed.
const (
	StatusActive    = "Active"
	StatusCompleted = "Completed"
)

var (
	// ErrAlreadyClockedIn is returned when a record for (intern, day) already exists.
	ErrAlreadyClockedIn = errors.New("you have already clocked in today")
	// ErrAlreadyClockedOut is returned when clock_out is already set for today.
	ErrAlreadyClockedOut = errors.New("you have already clocked out today")
	// ErrNoRecord is returned when clocking out without a clock-in today.
	ErrNoRecord = errors.New("no clock-in record found")
)

// Record is one intern's attendance entry for a single calendar day.
type Record struct {
	ID             string     `json:"id"`
	InternID       string     `json:"intern_id"`
	Day            string     `json:"date"`
	ClockIn        time.Time  `json:"clock_in"`
	ClockOut       *time.Time `json:"clock_out,omitempty"`
	Status         string     `json:"status"`
	TotalWorkHours *float64   `json:"total_work_hours,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

// DayKey renders t as the calendar-day key "YYYY-MM-DD" in server-local time.
// A clock-in just before midnight and a clock-out just after land on different
// keys; the clock-out then fails with ErrNoRecord for the new day.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}
