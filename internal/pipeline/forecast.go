package pipeline

import (
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/goalpace/internal/model"
)

// NeutralMood is reported for goals with no numeric mood in the period.
const NeutralMood = 3.0

// AlertFor grades progressPct against expectedPct, most severe first.
func AlertFor(progressPct, expectedPct float64) model.AlertLevel {
	switch {
	case progressPct < expectedPct-20:
		return model.AlertHigh
	case progressPct < expectedPct-10:
		return model.AlertMedium
	case progressPct < expectedPct:
		return model.AlertLow
	default:
		return model.AlertNone
	}
}

// ForecastGoal computes month-to-date progress for g. entries may contain
// other goals and other months; only g's entries inside w count.
func ForecastGoal(g model.Goal, entries []model.Entry, w model.PeriodWindow) model.GoalProgress {
	base := g.Base()
	mine := FilterByRange(FilterByGoal(entries, base.ID), w.Start, w.End)

	earnedDec := decimal.Zero
	var units, moodSum float64
	moodCount := 0
	for _, e := range mine {
		earnedDec = earnedDec.Add(g.Convert(e.Amount))
		units += e.Amount
		if score, ok := e.MoodScore(); ok {
			moodSum += score
			moodCount++
		}
	}

	target := base.TargetAmount.InexactFloat64()
	if target < 0 {
		target = 0
	}
	earned := earnedDec.InexactFloat64()

	gp := model.GoalProgress{
		GoalID:     base.ID,
		Name:       base.Name,
		Kind:       g.Kind(),
		UnitPrice:  model.UnitPriceOf(g).InexactFloat64(),
		Target:     target,
		Earned:     earned,
		EntryCount: len(mine),
		AvgMood:    NeutralMood,
	}
	if g.Kind() == model.KindFixedUnit {
		gp.Units = units
	}
	if moodCount > 0 {
		gp.AvgMood = moodSum / float64(moodCount)
	}

	gp.Remaining = math.Max(0, target-earned)
	gp.RequiredDailyPace = gp.Remaining / atLeastOne(float64(w.DaysRemaining))
	gp.ExpectedProgressPct = SafeDiv(float64(w.ElapsedDays), float64(w.DaysInPeriod)) * 100
	gp.ExpectedByToday = target * gp.ExpectedProgressPct / 100
	if target > 0 {
		gp.ProgressPct = math.Max(0, SafeDiv(earned, target)*100)
	}
	gp.CompletionRate = gp.ProgressPct
	gp.CurrentDailyAvg = earned / atLeastOne(float64(w.ElapsedDays))
	gp.IsBehind = gp.ProgressPct < gp.ExpectedProgressPct
	gp.Alert = AlertFor(gp.ProgressPct, gp.ExpectedProgressPct)

	if gp.Alert.NeedsRecovery() {
		plan := recoveryPlan(gp, w)
		gp.Recovery = &plan
	}
	return gp
}

// Likelihood extrapolates the current daily average to the end of the period
// and expresses it as a share of target, bounded to [0, 100].
func Likelihood(currentDailyAvg float64, daysInPeriod int, target float64) float64 {
	if target <= 0 {
		return 0
	}
	return clampPct(currentDailyAvg * float64(daysInPeriod) / target * 100)
}

func recoveryPlan(gp model.GoalProgress, w model.PeriodWindow) model.RecoveryPlan {
	plan := model.RecoveryPlan{
		Shortfall:     gp.Remaining,
		DaysRemaining: w.DaysRemaining,
		Likelihood:    Likelihood(gp.CurrentDailyAvg, w.DaysInPeriod, gp.Target),
		Severity:      gp.Alert,
	}
	if gp.Kind == model.KindFixedUnit {
		plan.CatchUpMultiplier = gp.RequiredDailyPace / atLeastOne(gp.CurrentDailyAvg)
		plan.Message = fmt.Sprintf("Do %.1fx your current daily rate for %d days",
			plan.CatchUpMultiplier, w.DaysRemaining)
	} else {
		plan.DailyTarget = gp.RequiredDailyPace
		plan.Message = fmt.Sprintf("Bring in %.0f per day for %d days",
			plan.DailyTarget, w.DaysRemaining)
	}
	return plan
}

// ForecastGoals forecasts every goal for the month containing now,
// in input order, and summarizes them.
func ForecastGoals(goals []model.Goal, entries []model.Entry, now time.Time) ([]model.GoalProgress, model.GoalSummary) {
	w := model.MonthWindow(now)
	month := FilterByRange(entries, w.Start, w.End)

	progress := make([]model.GoalProgress, 0, len(goals))
	for _, g := range goals {
		progress = append(progress, ForecastGoal(g, month, w))
	}
	return progress, Summarize(progress)
}

// Summarize totals per-goal progress.
func Summarize(progress []model.GoalProgress) model.GoalSummary {
	s := model.GoalSummary{GoalCount: len(progress)}
	var completion float64
	for _, gp := range progress {
		s.TotalEarned += gp.Earned
		s.TotalTarget += gp.Target
		s.TotalRequiredDaily += gp.RequiredDailyPace
		completion += gp.CompletionRate
		if gp.IsBehind {
			s.BehindCount++
		}
	}
	s.OverallPct = SafeDiv(s.TotalEarned, s.TotalTarget) * 100
	s.AvgCompletionRate = SafeDiv(completion, float64(len(progress)))
	return s
}
