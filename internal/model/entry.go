// Package model defines domain types for goalpace entries, goals, and derived progress.
package model

import (
	"strconv"
	"strings"
	"time"
)

// DateLayout is the calendar-day format used for entry dates everywhere.
const DateLayout = "2006-01-02"

// Entry is one logged unit of work toward a goal.
type Entry struct {
	ID    string
	Date  time.Time // calendar day; time-of-day is ignored
	Title string

	// Amount is units for fixed-unit goals, currency for the other kinds,
	// and 1 per logged day in single-goal mode.
	Amount   float64
	Progress float64 // self-reported percent
	Mood     string
	GoalID   string
	Note     string

	CreatedAt time.Time
	Source    string // log file the entry was imported from, if any
}

// DateKey returns the entry's calendar day as YYYY-MM-DD.
func (e Entry) DateKey() string {
	return e.Date.Format(DateLayout)
}

// MoodScore returns the numeric mood (1-5 scale) when the label is a number.
func (e Entry) MoodScore() (float64, bool) {
	s := strings.TrimSpace(e.Mood)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Day truncates t to midnight in its own location.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
