package pipeline

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/goalpace/internal/model"
)

func TestWeeklyTrends_EmptyWeeks(t *testing.T) {
	weeks := WeeklyTrends(nil, mustDate(t, "2025-06-11"))
	if len(weeks) != 4 {
		t.Fatalf("len = %d, want 4", len(weeks))
	}
	for _, w := range weeks {
		if w.Entries != 0 || w.AvgProgress != 0 {
			t.Errorf("%s = %d entries avg %.1f, want zeros", w.Label, w.Entries, w.AvgProgress)
		}
	}
}

func TestWeeklyTrends_LabelsAndBounds(t *testing.T) {
	entries := []model.Entry{
		{Date: mustDate(t, "2025-06-10"), Progress: 80},
		{Date: mustDate(t, "2025-06-09"), Progress: 40},
		{Date: mustDate(t, "2025-06-08"), Progress: 30}, // Sunday of the prior week
		{Date: mustDate(t, "2025-05-19"), Progress: 10},
		{Date: mustDate(t, "2025-05-18"), Progress: 99}, // outside the window
	}
	weeks := WeeklyTrends(entries, mustDate(t, "2025-06-11"))

	wantLabels := []string{"Week 4", "Week 3", "Week 2", "Week 1"}
	wantStarts := []string{"2025-06-09", "2025-06-02", "2025-05-26", "2025-05-19"}
	wantCounts := []int{2, 1, 0, 1}
	for i, w := range weeks {
		if w.Label != wantLabels[i] {
			t.Errorf("weeks[%d].Label = %s, want %s", i, w.Label, wantLabels[i])
		}
		if got := w.Start.Format(model.DateLayout); got != wantStarts[i] {
			t.Errorf("weeks[%d].Start = %s, want %s", i, got, wantStarts[i])
		}
		if w.Start.Weekday() != time.Monday {
			t.Errorf("weeks[%d] starts on %s", i, w.Start.Weekday())
		}
		if w.Entries != wantCounts[i] {
			t.Errorf("weeks[%d].Entries = %d, want %d", i, w.Entries, wantCounts[i])
		}
	}
	if !approx(weeks[0].AvgProgress, 60) {
		t.Errorf("Week 4 AvgProgress = %.1f, want 60", weeks[0].AvgProgress)
	}
}

func TestCompareMonths_YearRollover(t *testing.T) {
	entries := []model.Entry{
		{Date: mustDate(t, "2024-12-01"), Progress: 50, Amount: 1},
		{Date: mustDate(t, "2024-12-31"), Progress: 70, Amount: 1},
		{Date: mustDate(t, "2024-11-30"), Progress: 10, Amount: 1},
		{Date: mustDate(t, "2025-01-05"), Progress: 90, Amount: 1},
	}
	cmp := CompareMonths(entries, mustDate(t, "2025-01-15"))

	if cmp.Previous.Label != "December 2024" || cmp.Current.Label != "January 2025" {
		t.Fatalf("labels = %q / %q", cmp.Current.Label, cmp.Previous.Label)
	}
	if cmp.Previous.Entries != 2 || cmp.Current.Entries != 1 {
		t.Errorf("entries = %d / %d, want 1 / 2", cmp.Current.Entries, cmp.Previous.Entries)
	}
	if cmp.EntryChange != -1 {
		t.Errorf("EntryChange = %d, want -1", cmp.EntryChange)
	}
	if !approx(cmp.ProgressChange, 30) {
		t.Errorf("ProgressChange = %.1f, want 30", cmp.ProgressChange)
	}
}

func TestPreviousMonth_LeapYear(t *testing.T) {
	start, end := PreviousMonth(mustDate(t, "2024-03-31"))
	if got := start.Format(model.DateLayout); got != "2024-02-01" {
		t.Errorf("start = %s, want 2024-02-01", got)
	}
	if got := end.Format(model.DateLayout); got != "2024-02-29" {
		t.Errorf("end = %s, want 2024-02-29", got)
	}

	_, end = PreviousMonth(mustDate(t, "2023-03-31"))
	if got := end.Format(model.DateLayout); got != "2023-02-28" {
		t.Errorf("end = %s, want 2023-02-28", got)
	}
}

func TestTargetAt_UsesChangeHistory(t *testing.T) {
	history := []model.GoalChange{
		{GoalID: "g", OldTarget: decimal.NewFromInt(200), NewTarget: decimal.NewFromInt(300), ChangedAt: mustDate(t, "2025-07-01")},
		{GoalID: "g", OldTarget: decimal.NewFromInt(100), NewTarget: decimal.NewFromInt(200), ChangedAt: mustDate(t, "2025-04-01")},
	}
	current := decimal.NewFromInt(300)

	cases := map[string]int64{
		"2025-03-15": 100,
		"2025-05-15": 200,
		"2025-08-15": 300,
	}
	for day, want := range cases {
		got := TargetAt(current, history, mustDate(t, day))
		if !got.Equal(decimal.NewFromInt(want)) {
			t.Errorf("TargetAt(%s) = %s, want %d", day, got, want)
		}
	}
	if got := TargetAt(current, history, time.Time{}); !got.Equal(current) {
		t.Errorf("TargetAt(zero) = %s, want current", got)
	}
}

func TestCompareGoalMonths(t *testing.T) {
	goal := fixedGoal("tasks", 3000, 10)
	history := []model.GoalChange{
		{GoalID: "tasks", OldTarget: decimal.NewFromInt(1000), NewTarget: decimal.NewFromInt(3000), ChangedAt: mustDate(t, "2025-06-01")},
	}
	entries := []model.Entry{
		entryOn(t, "2025-05-10", "tasks", 50), // 500
		entryOn(t, "2025-06-03", "tasks", 30), // 300
	}

	got := CompareGoalMonths([]model.Goal{goal}, history, entries, mustDate(t, "2025-06-15"))
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	c := got[0]
	if c.PreviousTarget != 1000 || c.CurrentTarget != 3000 {
		t.Errorf("targets = %.0f / %.0f, want 3000 / 1000", c.CurrentTarget, c.PreviousTarget)
	}
	if !approx(c.PreviousPct, 50) || !approx(c.CurrentPct, 10) {
		t.Errorf("pcts = %.1f / %.1f, want 10 / 50", c.CurrentPct, c.PreviousPct)
	}
	if !approx(c.PctChange, -40) {
		t.Errorf("PctChange = %.1f, want -40", c.PctChange)
	}
}
