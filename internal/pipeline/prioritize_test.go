package pipeline

import (
	"strings"
	"testing"

	"github.com/theirongolddev/goalpace/internal/model"
)

func TestRank_SeverityThenCompletion(t *testing.T) {
	progress := []model.GoalProgress{
		{Name: "a", Alert: model.AlertLow, CompletionRate: 10},
		{Name: "b", Alert: model.AlertHigh, CompletionRate: 30},
		{Name: "c", Alert: model.AlertHigh, CompletionRate: 5},
		{Name: "d", Alert: model.AlertNone, CompletionRate: 0},
		{Name: "e", Alert: model.AlertMedium, CompletionRate: 50},
	}
	ranked := Rank(progress)

	want := []string{"c", "b", "e", "a", "d"}
	for i, gp := range ranked {
		if gp.Name != want[i] {
			t.Fatalf("ranked[%d] = %s, want %s (full order %v)", i, gp.Name, want[i], names(ranked))
		}
	}
	if progress[0].Name != "a" {
		t.Error("Rank reordered its input")
	}
}

func names(progress []model.GoalProgress) []string {
	out := make([]string, len(progress))
	for i, gp := range progress {
		out[i] = gp.Name
	}
	return out
}

func TestPrioritize_Suggestions(t *testing.T) {
	w := model.MonthWindow(mustDate(t, "2025-06-20"))
	progress := []model.GoalProgress{
		{
			GoalID: "tasks", Name: "tasks", Kind: model.KindFixedUnit, UnitPrice: 100,
			Target: 10000, Earned: 4000, Remaining: 6000, CompletionRate: 40, Alert: model.AlertHigh,
		},
		{
			GoalID: "shop", Name: "shop", Kind: model.KindDailyAmount,
			Target: 5000, Earned: 3000, Remaining: 2000, CompletionRate: 60, Alert: model.AlertLow,
		},
		{
			GoalID: "rent", Name: "rent", Kind: model.KindPassive,
			Target: 1000, Earned: 1000, Remaining: 0, CompletionRate: 100, Alert: model.AlertNone,
		},
	}

	rec := Prioritize(progress, w, PriorityOptions{})
	if len(rec.Suggestions) != 2 {
		t.Fatalf("suggestions = %d, want 2", len(rec.Suggestions))
	}

	first := rec.Suggestions[0]
	if first.GoalID != "tasks" || !first.InUnits {
		t.Fatalf("first suggestion = %+v, want tasks in units", first)
	}
	if !approx(first.DailyNeeded, 6) {
		t.Errorf("tasks DailyNeeded = %.2f, want 6 (60 units / 10 days)", first.DailyNeeded)
	}
	if first.Urgency != model.UrgencyHigh {
		t.Errorf("tasks Urgency = %s, want high", first.Urgency)
	}
	if !strings.Contains(first.Action, "7 units") {
		t.Errorf("tasks Action = %q, want it to ask for 7 units", first.Action)
	}

	second := rec.Suggestions[1]
	if second.InUnits || !approx(second.DailyNeeded, 200) {
		t.Errorf("shop suggestion = %+v, want 200 per day in currency", second)
	}
	if second.Urgency != model.UrgencyMedium {
		t.Errorf("shop Urgency = %s, want medium", second.Urgency)
	}

	if rec.Action != first.Action {
		t.Errorf("Action = %q, want first suggestion's action", rec.Action)
	}
	if rec.OverallStatus != model.StatusBehind {
		t.Errorf("OverallStatus = %s, want behind (8000/16000)", rec.OverallStatus)
	}
	if rec.Shortfall != 8000 {
		t.Errorf("Shortfall = %.2f, want 8000", rec.Shortfall)
	}
	if len(rec.Notes) != 1 {
		t.Errorf("Notes = %v, want one shortfall note", rec.Notes)
	}
}

func TestPrioritize_NothingBehind(t *testing.T) {
	w := model.MonthWindow(mustDate(t, "2025-06-20"))
	progress := []model.GoalProgress{
		{Name: "done", Target: 100, Earned: 100, CompletionRate: 100},
		{Name: "close", Target: 100, Earned: 90, Remaining: 10, CompletionRate: 90},
	}
	rec := Prioritize(progress, w, PriorityOptions{})
	if len(rec.Suggestions) != 0 {
		t.Fatalf("suggestions = %d, want 0", len(rec.Suggestions))
	}
	if rec.Action != EncouragementAction {
		t.Errorf("Action = %q, want encouragement", rec.Action)
	}
	if rec.OverallStatus != model.StatusOnTrack {
		t.Errorf("OverallStatus = %s, want on_track", rec.OverallStatus)
	}
}

func TestPrioritize_ThresholdAndMood(t *testing.T) {
	w := model.MonthWindow(mustDate(t, "2025-06-20"))
	progress := []model.GoalProgress{
		{Name: "close", Target: 100, Earned: 90, Remaining: 10, CompletionRate: 90},
	}
	rec := Prioritize(progress, w, PriorityOptions{BehindThreshold: 95, TodayMood: 2})
	if len(rec.Suggestions) != 1 {
		t.Fatalf("suggestions = %d, want 1 with a 95%% threshold", len(rec.Suggestions))
	}
	if !approx(rec.Suggestions[0].DailyNeeded, 1) {
		t.Errorf("DailyNeeded = %.2f, want 1", rec.Suggestions[0].DailyNeeded)
	}
	foundMood := false
	for _, n := range rec.Notes {
		if strings.Contains(n, "Mood is low") {
			foundMood = true
		}
	}
	if !foundMood {
		t.Errorf("Notes = %v, want a low-mood note", rec.Notes)
	}
}

func TestPrioritize_Empty(t *testing.T) {
	rec := Prioritize(nil, model.MonthWindow(mustDate(t, "2025-06-20")), PriorityOptions{})
	if rec.Action != EncouragementAction || rec.OverallStatus != model.StatusOnTrack {
		t.Errorf("empty recommendation = %+v", rec)
	}
	if rec.Suggestions == nil {
		t.Error("Suggestions = nil, want empty slice")
	}
}
