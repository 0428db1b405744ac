package model

import "time"

// PeriodWindow describes the calendar month being evaluated.
// ElapsedDays counts today; ElapsedDays + DaysRemaining == DaysInPeriod.
type PeriodWindow struct {
	Start         time.Time `json:"start"`
	End           time.Time `json:"end"`
	DaysInPeriod  int       `json:"days_in_period"`
	ElapsedDays   int       `json:"elapsed_days"`
	DaysRemaining int       `json:"days_remaining"`
}

// MonthWindow returns the window for the calendar month containing now.
func MonthWindow(now time.Time) PeriodWindow {
	start := MonthStart(now)
	end := start.AddDate(0, 1, -1)
	days := end.Day()
	elapsed := now.Day()
	return PeriodWindow{
		Start:         start,
		End:           end,
		DaysInPeriod:  days,
		ElapsedDays:   elapsed,
		DaysRemaining: days - elapsed,
	}
}

// MonthStart returns midnight on the first day of t's month.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// WeekStart returns midnight on the Monday of t's ISO week.
func WeekStart(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	return Day(t).AddDate(0, 0, -offset)
}
