package pipeline

import (
	"fmt"
	"math"
	"reflect"
	"testing"

	"github.com/theirongolddev/goalpace/internal/model"
)

func TestBuildReport_SingleGoal(t *testing.T) {
	now := mustDate(t, "2025-06-10")
	entries := daily(t, 1, 10)
	entries = append(entries, model.Entry{ID: "broken", Date: mustDate(t, "2025-06-05"), Amount: math.NaN()})

	report, skips := BuildReport(ReportInput{Entries: entries, MonthlyTarget: 30}, now)
	if skips.Total != 1 || report.SkippedEntries != 1 {
		t.Errorf("skipped = %d/%d, want 1", skips.Total, report.SkippedEntries)
	}
	if report.TotalEntries != 10 {
		t.Errorf("TotalEntries = %d, want 10", report.TotalEntries)
	}
	if report.Schedule.Status != model.StatusOnTrack {
		t.Errorf("Schedule.Status = %s, want on_track", report.Schedule.Status)
	}
	if len(report.Days) != 10 {
		t.Errorf("Days len = %d, want 10", len(report.Days))
	}
	if len(report.WeeklyTrends) != 4 {
		t.Errorf("WeeklyTrends len = %d, want 4", len(report.WeeklyTrends))
	}
	if report.Recommendation.Action != EncouragementAction {
		t.Errorf("Action = %q, want encouragement with no goals", report.Recommendation.Action)
	}
	if !report.MonthlyProgress.LoggedToday {
		t.Error("LoggedToday = false, want true")
	}
}

func TestBuildReport_MultiGoalSeparatesSingleEntries(t *testing.T) {
	now := mustDate(t, "2025-06-10")
	entries := append(daily(t, 1, 4), entryOn(t, "2025-06-02", "tasks", 20))

	report, _ := BuildReport(ReportInput{
		Entries:       entries,
		Goals:         []model.Goal{fixedGoal("tasks", 10000, 100)},
		MonthlyTarget: 30,
	}, now)

	if report.Schedule.ActualEntries != 4 {
		t.Errorf("Schedule.ActualEntries = %d, want 4 (goal entries excluded)", report.Schedule.ActualEntries)
	}
	if len(report.Goals) != 1 || report.Goals[0].Earned != 2000 {
		t.Fatalf("Goals = %+v, want tasks earning 2000", report.Goals)
	}
	if report.Earnings.Total != 2000 {
		t.Errorf("Earnings.Total = %.0f, want 2000", report.Earnings.Total)
	}
	if len(report.GoalComparisons) != 1 {
		t.Errorf("GoalComparisons len = %d, want 1", len(report.GoalComparisons))
	}
}

func TestBuildReport_Idempotent(t *testing.T) {
	now := mustDate(t, "2025-06-10")
	in := ReportInput{
		Entries:       append(daily(t, 1, 6), entryOn(t, "2025-06-02", "tasks", 20)),
		Goals:         []model.Goal{fixedGoal("tasks", 10000, 100)},
		MonthlyTarget: 20,
	}
	r1, _ := BuildReport(in, now)
	r2, _ := BuildReport(in, now)
	if !reflect.DeepEqual(r1, r2) {
		t.Fatal("BuildReport returned different reports for identical input")
	}
}

func TestBuildReport_MultiGoalModeCountsGoalEntries(t *testing.T) {
	now := mustDate(t, "2025-06-10")
	var entries []model.Entry
	for d := 1; d <= 10; d++ {
		entries = append(entries, entryOn(t, fmt.Sprintf("2025-06-%02d", d), "tasks", 10))
	}
	in := ReportInput{
		Entries:       entries,
		Goals:         []model.Goal{fixedGoal("tasks", 30000, 100)},
		MonthlyTarget: 30,
	}

	report, _ := BuildReport(in, now)
	if report.Schedule.ActualEntries != 0 {
		t.Errorf("single mode ActualEntries = %d, want 0", report.Schedule.ActualEntries)
	}
	if !report.MonthlyProgress.LoggedToday {
		t.Error("single mode LoggedToday = false, want true for a goal entry today")
	}

	in.MultiGoal = true
	report, _ = BuildReport(in, now)
	if report.Schedule.ActualEntries != 10 || report.Schedule.Status != model.StatusOnTrack {
		t.Errorf("multi mode schedule = %d entries %s, want 10 on_track",
			report.Schedule.ActualEntries, report.Schedule.Status)
	}
	if report.MonthlyProgress.TotalEntries != 10 {
		t.Errorf("multi mode TotalEntries = %d, want 10", report.MonthlyProgress.TotalEntries)
	}
	if !report.MonthlyProgress.LoggedToday {
		t.Error("multi mode LoggedToday = false, want true")
	}
}
