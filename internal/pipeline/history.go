package pipeline

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/goalpace/internal/model"
)

// TrendWeeks is the number of trailing weeks WeeklyTrends reports.
const TrendWeeks = 4

const monthLabelLayout = "January 2006"

// PreviousMonth returns the first and last day of the month before now's.
// Stepping back from the first of the month keeps Dec->Jan and
// leap-February correct.
func PreviousMonth(now time.Time) (time.Time, time.Time) {
	first := model.MonthStart(now)
	return first.AddDate(0, -1, 0), first.AddDate(0, 0, -1)
}

func monthStats(entries []model.Entry, start, end time.Time) model.MonthStats {
	month := FilterByRange(entries, start, end)
	ms := model.MonthStats{
		Label:       start.Format(monthLabelLayout),
		Start:       start,
		Entries:     len(month),
		AvgProgress: avgProgress(month),
		TotalAmount: totalAmount(month),
	}
	for _, e := range month {
		ms.TotalProgress += e.Progress
	}
	return ms
}

// CompareMonths compares the month containing now with the month before.
func CompareMonths(entries []model.Entry, now time.Time) model.MonthComparison {
	curStart, curEnd := ThisMonth(now)
	prevStart, prevEnd := PreviousMonth(now)

	cur := monthStats(entries, curStart, curEnd)
	prev := monthStats(entries, prevStart, prevEnd)
	return model.MonthComparison{
		Current:        cur,
		Previous:       prev,
		EntryChange:    cur.Entries - prev.Entries,
		ProgressChange: cur.AvgProgress - prev.AvgProgress,
		AmountChange:   cur.TotalAmount - prev.TotalAmount,
	}
}

// WeeklyTrends returns the last four Monday-aligned weeks ending with the
// week containing now. The most recent week comes first and is labeled
// "Week 4"; the oldest is "Week 1". Empty weeks are reported with zeros.
func WeeklyTrends(entries []model.Entry, now time.Time) []model.WeekTrend {
	current := model.WeekStart(now)
	weeks := make([]model.WeekTrend, 0, TrendWeeks)
	for i := 0; i < TrendWeeks; i++ {
		start := current.AddDate(0, 0, -7*i)
		end := start.AddDate(0, 0, 6)
		week := FilterByRange(entries, start, end)
		weeks = append(weeks, model.WeekTrend{
			Label:       fmt.Sprintf("Week %d", TrendWeeks-i),
			Start:       start,
			End:         end,
			Entries:     len(week),
			AvgProgress: avgProgress(week),
			TotalAmount: totalAmount(week),
		})
	}
	return weeks
}

// TargetAt resolves the target that applied at instant at, given the goal's
// current target and its change history. A zero at yields current.
func TargetAt(current decimal.Decimal, history []model.GoalChange, at time.Time) decimal.Decimal {
	if at.IsZero() || len(history) == 0 {
		return current
	}
	changes := make([]model.GoalChange, len(history))
	copy(changes, history)
	sort.SliceStable(changes, func(i, j int) bool {
		return changes[i].ChangedAt.Before(changes[j].ChangedAt)
	})

	for _, c := range changes {
		if c.ChangedAt.After(at) {
			return c.OldTarget
		}
	}
	return current
}

// CompareGoalMonths measures each goal's earnings this month and last month
// against the target in force at the end of each month.
func CompareGoalMonths(goals []model.Goal, history []model.GoalChange, entries []model.Entry, now time.Time) []model.GoalMonthComparison {
	byGoal := make(map[string][]model.GoalChange)
	for _, c := range history {
		byGoal[c.GoalID] = append(byGoal[c.GoalID], c)
	}

	curStart, curEnd := ThisMonth(now)
	prevStart, prevEnd := PreviousMonth(now)
	prevCutoff := curStart.Add(-time.Nanosecond)

	result := make([]model.GoalMonthComparison, 0, len(goals))
	for _, g := range goals {
		base := g.Base()
		mine := FilterByGoal(entries, base.ID)

		c := model.GoalMonthComparison{
			GoalID:         base.ID,
			Name:           base.Name,
			CurrentEarned:  earnedIn(g, mine, curStart, curEnd),
			PreviousEarned: earnedIn(g, mine, prevStart, prevEnd),
			CurrentTarget:  TargetAt(base.TargetAmount, byGoal[base.ID], now).InexactFloat64(),
			PreviousTarget: TargetAt(base.TargetAmount, byGoal[base.ID], prevCutoff).InexactFloat64(),
		}
		c.CurrentPct = SafeDiv(c.CurrentEarned, c.CurrentTarget) * 100
		c.PreviousPct = SafeDiv(c.PreviousEarned, c.PreviousTarget) * 100
		c.PctChange = c.CurrentPct - c.PreviousPct
		result = append(result, c)
	}
	return result
}

func earnedIn(g model.Goal, entries []model.Entry, start, end time.Time) float64 {
	sum := decimal.Zero
	for _, e := range FilterByRange(entries, start, end) {
		sum = sum.Add(g.Convert(e.Amount))
	}
	return sum.InexactFloat64()
}
