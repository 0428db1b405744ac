package pipeline

import (
	"testing"

	"github.com/theirongolddev/goalpace/internal/model"
)

func TestScheduleAt_OnTrack(t *testing.T) {
	now := mustDate(t, "2025-06-10")
	s := ScheduleAt(daily(t, 1, 10), 30, now)

	if !approx(s.ExpectedByToday, 10) {
		t.Errorf("ExpectedByToday = %.2f, want 10", s.ExpectedByToday)
	}
	if !approx(s.ProgressRate, 100) {
		t.Errorf("ProgressRate = %.2f, want 100", s.ProgressRate)
	}
	if s.Status != model.StatusOnTrack {
		t.Errorf("Status = %s, want on_track", s.Status)
	}
}

func TestScheduleAt_Critical(t *testing.T) {
	now := mustDate(t, "2025-06-10")
	s := ScheduleAt(daily(t, 1, 3), 30, now)

	if s.DaysBehind != 7 {
		t.Errorf("DaysBehind = %d, want 7", s.DaysBehind)
	}
	if s.Status != model.StatusCritical {
		t.Errorf("Status = %s, want critical", s.Status)
	}
}

func TestScheduleAt_BehindAndAhead(t *testing.T) {
	now := mustDate(t, "2025-06-15")

	behind := ScheduleAt(daily(t, 1, 14), 30, now)
	if behind.DaysBehind != 1 || behind.Status != model.StatusBehind {
		t.Errorf("14 of 15: behind %d status %s, want 1 behind", behind.DaysBehind, behind.Status)
	}

	entries := append(daily(t, 1, 15), daily(t, 1, 5)...)
	ahead := ScheduleAt(entries, 30, now)
	if ahead.DaysAhead != 5 || ahead.Status != model.StatusAhead {
		t.Errorf("20 of 15: ahead %d status %s, want 5 ahead", ahead.DaysAhead, ahead.Status)
	}

	oneAhead := ScheduleAt(daily(t, 1, 16), 30, now)
	if oneAhead.Status != model.StatusOnTrack {
		t.Errorf("16 of 15: status %s, want on_track", oneAhead.Status)
	}
}

func TestScheduleAt_IgnoresFutureAndOtherMonths(t *testing.T) {
	now := mustDate(t, "2025-06-10")
	entries := append(daily(t, 1, 20), entryOn(t, "2025-05-31", "", 1))
	s := ScheduleAt(entries, 30, now)
	if s.ActualEntries != 10 {
		t.Errorf("ActualEntries = %d, want 10", s.ActualEntries)
	}
}

func TestScheduleAt_EmptyLog(t *testing.T) {
	now := mustDate(t, "2025-06-10")

	s := ScheduleAt(nil, 30, now)
	if s.ProgressRate != 0 {
		t.Errorf("ProgressRate = %.2f, want 0", s.ProgressRate)
	}
	if s.DaysBehind != 10 || s.Status != model.StatusCritical {
		t.Errorf("empty log with target: behind %d status %s, want 10 critical", s.DaysBehind, s.Status)
	}

	zero := ScheduleAt(nil, 0, now)
	if zero.Status != model.StatusOnTrack {
		t.Errorf("empty log, zero target: status %s, want on_track", zero.Status)
	}
	if zero.ExpectedByToday != 0 || zero.ProgressRate != 0 || zero.DaysBehind != 0 || zero.DaysAhead != 0 {
		t.Errorf("empty log, zero target: %+v, want all zero", zero)
	}
}

func TestClassifyStatus_Total(t *testing.T) {
	valid := map[model.ScheduleStatus]bool{
		model.StatusCritical: true,
		model.StatusBehind:   true,
		model.StatusAhead:    true,
		model.StatusOnTrack:  true,
	}
	for behind := 0; behind <= 5; behind++ {
		for ahead := 0; ahead <= 5; ahead++ {
			if got := ClassifyStatus(behind, ahead); !valid[got] {
				t.Fatalf("ClassifyStatus(%d, %d) = %q", behind, ahead, got)
			}
		}
	}
	if got := ClassifyStatus(3, 0); got != model.StatusCritical {
		t.Errorf("ClassifyStatus(3, 0) = %s, want critical", got)
	}
	if got := ClassifyStatus(2, 0); got != model.StatusBehind {
		t.Errorf("ClassifyStatus(2, 0) = %s, want behind", got)
	}
	if got := ClassifyStatus(0, 1); got != model.StatusOnTrack {
		t.Errorf("ClassifyStatus(0, 1) = %s, want on_track", got)
	}
}

func TestClassifySchedule_Properties(t *testing.T) {
	w := model.MonthWindow(mustDate(t, "2025-07-31"))
	prev := -1.0
	for elapsed := 1; elapsed <= w.DaysInPeriod; elapsed++ {
		w.ElapsedDays = elapsed
		w.DaysRemaining = w.DaysInPeriod - elapsed
		for actual := 0; actual <= 40; actual += 7 {
			s := ClassifySchedule(actual, 25, w)
			if s.DaysBehind > 0 && s.DaysAhead > 0 {
				t.Fatalf("elapsed %d actual %d: behind %d and ahead %d both positive",
					elapsed, actual, s.DaysBehind, s.DaysAhead)
			}
		}
		s := ClassifySchedule(0, 25, w)
		if s.ExpectedByToday < prev {
			t.Fatalf("ExpectedByToday decreased at day %d: %.3f < %.3f", elapsed, s.ExpectedByToday, prev)
		}
		prev = s.ExpectedByToday
	}
}

func TestMonthlyProgressAt(t *testing.T) {
	now := mustDate(t, "2025-06-10")
	entries := daily(t, 1, 9)
	entries[0].Progress = 100

	mp := MonthlyProgressAt(entries, 30, now)
	if mp.TotalEntries != 9 {
		t.Errorf("TotalEntries = %d, want 9", mp.TotalEntries)
	}
	if mp.EntriesNeeded != 21 {
		t.Errorf("EntriesNeeded = %d, want 21", mp.EntriesNeeded)
	}
	if !approx(mp.ProgressRate, 90) {
		t.Errorf("ProgressRate = %.2f, want 90", mp.ProgressRate)
	}
	if !approx(mp.AvgProgress, 500.0/9) {
		t.Errorf("AvgProgress = %.2f, want %.2f", mp.AvgProgress, 500.0/9)
	}
	if mp.DaysInMonth != 30 || mp.CurrentDay != 10 {
		t.Errorf("day %d of %d, want 10 of 30", mp.CurrentDay, mp.DaysInMonth)
	}
	if mp.LoggedToday {
		t.Error("LoggedToday = true, want false")
	}
}

func TestCumulativeDays(t *testing.T) {
	now := mustDate(t, "2025-06-05")
	entries := append(daily(t, 1, 2), daily(t, 2, 4)...)

	points := CumulativeDays(entries, 30, now)
	if len(points) != 5 {
		t.Fatalf("len = %d, want 5", len(points))
	}
	wantDaily := []int{1, 2, 1, 1, 0}
	wantCum := []int{1, 3, 4, 5, 5}
	for i, p := range points {
		if p.Entries != wantDaily[i] || p.Cumulative != wantCum[i] {
			t.Errorf("day %d = %d/%d, want %d/%d", p.Day, p.Entries, p.Cumulative, wantDaily[i], wantCum[i])
		}
		if !approx(p.TargetLine, float64(i+1)) {
			t.Errorf("day %d TargetLine = %.2f, want %d", p.Day, p.TargetLine, i+1)
		}
	}
}
