package pipeline

import (
	"math"
	"time"

	"github.com/theirongolddev/goalpace/internal/model"
)

// ClassifyStatus maps day deficits to a status. Checked in order:
// more than two days behind is critical, any lag is behind,
// more than one day ahead is ahead, and everything else is on track.
func ClassifyStatus(daysBehind, daysAhead int) model.ScheduleStatus {
	switch {
	case daysBehind > 2:
		return model.StatusCritical
	case daysBehind > 0:
		return model.StatusBehind
	case daysAhead > 1:
		return model.StatusAhead
	default:
		return model.StatusOnTrack
	}
}

// ClassifySchedule compares actual entries against the pro-rated target
// for the elapsed part of w.
func ClassifySchedule(actual int, target float64, w model.PeriodWindow) model.Schedule {
	if target < 0 || math.IsNaN(target) {
		target = 0
	}
	expected := SafeDiv(target, float64(w.DaysInPeriod)) * float64(w.ElapsedDays)
	diff := expected - float64(actual)

	s := model.Schedule{
		Target:          target,
		ExpectedByToday: expected,
		ActualEntries:   actual,
		DaysBehind:      ceilDays(diff),
		DaysAhead:       ceilDays(-diff),
		ProgressRate:    SafeDiv(float64(actual), expected) * 100,
	}
	s.Status = ClassifyStatus(s.DaysBehind, s.DaysAhead)
	return s
}

// ScheduleAt counts entries from the first of the month through now
// and classifies them against target.
func ScheduleAt(entries []model.Entry, target float64, now time.Time) model.Schedule {
	w := model.MonthWindow(now)
	logged := FilterByRange(entries, w.Start, now)
	return ClassifySchedule(len(logged), target, w)
}

// MonthlyProgressAt summarizes the whole month containing now.
func MonthlyProgressAt(entries []model.Entry, target float64, now time.Time) model.MonthlyProgress {
	w := model.MonthWindow(now)
	month := FilterByRange(entries, w.Start, w.End)

	expected := SafeDiv(target, float64(w.DaysInPeriod)) * float64(w.ElapsedDays)
	needed := int(math.Ceil(target)) - len(month)
	if needed < 0 {
		needed = 0
	}

	return model.MonthlyProgress{
		TotalEntries:  len(month),
		MonthlyTarget: target,
		ProgressRate:  SafeDiv(float64(len(month)), expected) * 100,
		AvgProgress:   avgProgress(month),
		EntriesNeeded: needed,
		CurrentDay:    w.ElapsedDays,
		DaysInMonth:   w.DaysInPeriod,
		LoggedToday:   len(EntriesOnDate(month, now)) > 0,
	}
}

// CumulativeDays returns one point per day from the first of the month
// through now, with per-day and cumulative counts against the pro-rated
// target line.
func CumulativeDays(entries []model.Entry, target float64, now time.Time) []model.DailyProgress {
	w := model.MonthWindow(now)
	byDay := make(map[string][]model.Entry)
	for _, e := range FilterByRange(entries, w.Start, now) {
		byDay[e.DateKey()] = append(byDay[e.DateKey()], e)
	}

	daily := SafeDiv(target, float64(w.DaysInPeriod))
	points := make([]model.DailyProgress, 0, w.ElapsedDays)
	cumulative := 0
	for d := 1; d <= w.ElapsedDays; d++ {
		day := w.Start.AddDate(0, 0, d-1)
		logged := byDay[day.Format(model.DateLayout)]
		cumulative += len(logged)
		points = append(points, model.DailyProgress{
			Date:       day,
			Day:        d,
			Entries:    len(logged),
			Amount:     totalAmount(logged),
			Cumulative: cumulative,
			TargetLine: daily * float64(d),
		})
	}
	return points
}
