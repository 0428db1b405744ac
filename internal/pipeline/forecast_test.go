package pipeline

import (
	"math"
	"reflect"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/goalpace/internal/model"
)

func fixedGoal(id string, target, price int64) model.Goal {
	return model.FixedUnitGoal{
		GoalBase:  model.GoalBase{ID: id, Name: id, TargetAmount: decimal.NewFromInt(target)},
		UnitPrice: decimal.NewFromInt(price),
	}
}

func amountGoal(id string, target int64) model.Goal {
	return model.DailyAmountGoal{
		GoalBase: model.GoalBase{ID: id, Name: id, TargetAmount: decimal.NewFromInt(target)},
	}
}

func TestForecastGoal_FixedUnitMediumAlert(t *testing.T) {
	now := mustDate(t, "2025-06-10")
	var entries []model.Entry
	for _, d := range []string{"2025-06-01", "2025-06-02", "2025-06-04", "2025-06-07", "2025-06-09"} {
		entries = append(entries, entryOn(t, d, "writing", 10))
	}

	gp := ForecastGoal(fixedGoal("writing", 30000, 100), entries, model.MonthWindow(now))

	if gp.Earned != 5000 {
		t.Fatalf("Earned = %.2f, want 5000", gp.Earned)
	}
	if !approx(gp.ExpectedProgressPct, 33.3) {
		t.Errorf("ExpectedProgressPct = %.2f, want 33.3", gp.ExpectedProgressPct)
	}
	if !approx(gp.ProgressPct, 16.7) {
		t.Errorf("ProgressPct = %.2f, want 16.7", gp.ProgressPct)
	}
	if gp.Alert != model.AlertMedium {
		t.Errorf("Alert = %s, want medium", gp.Alert)
	}
	if !gp.IsBehind {
		t.Error("IsBehind = false, want true")
	}
	if gp.Units != 50 {
		t.Errorf("Units = %.1f, want 50", gp.Units)
	}
	if gp.Remaining != 25000 {
		t.Errorf("Remaining = %.2f, want 25000", gp.Remaining)
	}
	if !approx(gp.RequiredDailyPace, 1250) {
		t.Errorf("RequiredDailyPace = %.2f, want 1250", gp.RequiredDailyPace)
	}

	if gp.Recovery == nil {
		t.Fatal("Recovery = nil, want a plan for a medium alert")
	}
	if !approx(gp.Recovery.CatchUpMultiplier, 2.5) {
		t.Errorf("CatchUpMultiplier = %.2f, want 2.5", gp.Recovery.CatchUpMultiplier)
	}
	if !approx(gp.Recovery.Likelihood, 50) {
		t.Errorf("Likelihood = %.2f, want 50", gp.Recovery.Likelihood)
	}
	if gp.Recovery.DailyTarget != 0 {
		t.Errorf("DailyTarget = %.2f, want 0 for fixed-unit goals", gp.Recovery.DailyTarget)
	}
}

func TestForecastGoal_AmountGoalRecoveryUsesDailyTarget(t *testing.T) {
	now := mustDate(t, "2025-06-20")
	entries := []model.Entry{entryOn(t, "2025-06-02", "shop", 1000)}

	gp := ForecastGoal(amountGoal("shop", 20000), entries, model.MonthWindow(now))
	if gp.Alert != model.AlertHigh {
		t.Fatalf("Alert = %s, want high", gp.Alert)
	}
	if gp.Recovery == nil {
		t.Fatal("Recovery = nil")
	}
	if gp.Recovery.CatchUpMultiplier != 0 {
		t.Errorf("CatchUpMultiplier = %.2f, want 0 for amount goals", gp.Recovery.CatchUpMultiplier)
	}
	if !approx(gp.Recovery.DailyTarget, 1900) {
		t.Errorf("DailyTarget = %.2f, want 1900", gp.Recovery.DailyTarget)
	}
	if gp.Units != 0 {
		t.Errorf("Units = %.1f, want 0 for amount goals", gp.Units)
	}
}

func TestForecastGoal_ZeroTarget(t *testing.T) {
	now := mustDate(t, "2025-06-10")
	entries := []model.Entry{entryOn(t, "2025-06-02", "free", 300)}

	gp := ForecastGoal(amountGoal("free", 0), entries, model.MonthWindow(now))
	if gp.ProgressPct != 0 || gp.CompletionRate != 0 {
		t.Errorf("pct/completion = %.2f/%.2f, want 0/0", gp.ProgressPct, gp.CompletionRate)
	}
	if math.IsNaN(gp.ProgressPct) || math.IsNaN(gp.CurrentDailyAvg) {
		t.Error("NaN in zero-target forecast")
	}
	if gp.Recovery != nil && gp.Recovery.Likelihood != 0 {
		t.Errorf("Likelihood = %.2f, want 0", gp.Recovery.Likelihood)
	}
}

func TestForecastGoal_LastDayOfMonth(t *testing.T) {
	now := mustDate(t, "2025-06-30")
	gp := ForecastGoal(amountGoal("shop", 3000), nil, model.MonthWindow(now))
	if gp.RequiredDailyPace != 3000 {
		t.Errorf("RequiredDailyPace = %.2f, want 3000 (divides by at least one day)", gp.RequiredDailyPace)
	}
	if gp.ExpectedProgressPct != 100 {
		t.Errorf("ExpectedProgressPct = %.2f, want 100", gp.ExpectedProgressPct)
	}
}

func TestForecastGoal_AvgMood(t *testing.T) {
	now := mustDate(t, "2025-06-10")
	a := entryOn(t, "2025-06-01", "g", 1)
	a.Mood = "4"
	b := entryOn(t, "2025-06-02", "g", 1)
	b.Mood = "2"
	c := entryOn(t, "2025-06-03", "g", 1)
	c.Mood = "happy"

	gp := ForecastGoal(amountGoal("g", 100), []model.Entry{a, b, c}, model.MonthWindow(now))
	if gp.AvgMood != 3 {
		t.Errorf("AvgMood = %.2f, want 3", gp.AvgMood)
	}

	none := ForecastGoal(amountGoal("g", 100), nil, model.MonthWindow(now))
	if none.AvgMood != NeutralMood {
		t.Errorf("AvgMood without moods = %.2f, want %.1f", none.AvgMood, NeutralMood)
	}
}

func TestAlertFor(t *testing.T) {
	cases := []struct {
		pct, expected float64
		want          model.AlertLevel
	}{
		{10, 50, model.AlertHigh},
		{30, 50, model.AlertMedium},
		{40, 50, model.AlertLow},
		{45, 50, model.AlertLow},
		{50, 50, model.AlertNone},
		{80, 50, model.AlertNone},
	}
	for _, c := range cases {
		if got := AlertFor(c.pct, c.expected); got != c.want {
			t.Errorf("AlertFor(%.0f, %.0f) = %s, want %s", c.pct, c.expected, got, c.want)
		}
	}
}

func TestLikelihood_BoundedAndMonotonic(t *testing.T) {
	prev := -1.0
	for avg := 0.0; avg <= 5000; avg += 250 {
		l := Likelihood(avg, 30, 30000)
		if l < 0 || l > 100 {
			t.Fatalf("Likelihood(%.0f) = %.2f, out of [0, 100]", avg, l)
		}
		if l < prev {
			t.Fatalf("Likelihood decreased at avg %.0f: %.2f < %.2f", avg, l, prev)
		}
		prev = l
	}
	if got := Likelihood(100, 30, 0); got != 0 {
		t.Errorf("Likelihood with zero target = %.2f, want 0", got)
	}
}

func TestForecastGoals_Summary(t *testing.T) {
	now := mustDate(t, "2025-06-15")
	goals := []model.Goal{
		fixedGoal("tasks", 10000, 100),
		amountGoal("shop", 5000),
	}
	entries := []model.Entry{
		entryOn(t, "2025-06-02", "tasks", 60), // 6000
		entryOn(t, "2025-06-03", "shop", 1000),
		entryOn(t, "2025-05-30", "shop", 9999), // previous month
		entryOn(t, "2025-06-04", "other", 500), // unknown goal
	}

	progress, summary := ForecastGoals(goals, entries, now)
	if len(progress) != 2 || progress[0].GoalID != "tasks" || progress[1].GoalID != "shop" {
		t.Fatalf("progress order = %v, want input order", progress)
	}
	if summary.TotalEarned != 7000 {
		t.Errorf("TotalEarned = %.2f, want 7000", summary.TotalEarned)
	}
	if summary.TotalTarget != 15000 {
		t.Errorf("TotalTarget = %.2f, want 15000", summary.TotalTarget)
	}
	if !approx(summary.OverallPct, 46.67) {
		t.Errorf("OverallPct = %.2f, want 46.67", summary.OverallPct)
	}
	if summary.BehindCount != 1 {
		t.Errorf("BehindCount = %d, want 1", summary.BehindCount)
	}
	if !approx(summary.AvgCompletionRate, 40) {
		t.Errorf("AvgCompletionRate = %.2f, want 40", summary.AvgCompletionRate)
	}
	wantDaily := 4000.0/15 + 4000.0/15
	if !approx(summary.TotalRequiredDaily, wantDaily) {
		t.Errorf("TotalRequiredDaily = %.2f, want %.2f", summary.TotalRequiredDaily, wantDaily)
	}
}

func TestForecastGoals_Empty(t *testing.T) {
	progress, summary := ForecastGoals(nil, nil, mustDate(t, "2025-06-15"))
	if progress == nil || len(progress) != 0 {
		t.Fatalf("progress = %v, want empty slice", progress)
	}
	if summary.OverallPct != 0 || summary.AvgCompletionRate != 0 {
		t.Errorf("summary = %+v, want zeros", summary)
	}
}

func TestForecastGoals_Idempotent(t *testing.T) {
	now := mustDate(t, "2025-06-15")
	goals := []model.Goal{fixedGoal("tasks", 10000, 100), amountGoal("shop", 5000)}
	entries := []model.Entry{
		entryOn(t, "2025-06-02", "tasks", 12),
		entryOn(t, "2025-06-03", "shop", 250),
	}

	p1, s1 := ForecastGoals(goals, entries, now)
	p2, s2 := ForecastGoals(goals, entries, now)
	if !reflect.DeepEqual(p1, p2) || s1 != s2 {
		t.Fatal("ForecastGoals returned different results for identical input")
	}
}
