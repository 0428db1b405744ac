package pipeline

import (
	"time"

	"github.com/theirongolddev/goalpace/internal/model"
)

// ReportInput is everything BuildReport reads.
type ReportInput struct {
	Entries       []model.Entry
	Goals         []model.Goal
	History       []model.GoalChange
	MonthlyTarget float64 // single-goal target, in entries per month
	MultiGoal     bool    // count every entry toward the single-goal views
	Priority      PriorityOptions
}

// BuildReport computes every view for the evaluation instant now.
// Unusable entries are dropped first and described by the returned SkipReport.
func BuildReport(in ReportInput, now time.Time) (model.Report, SkipReport) {
	entries, skipped := Sanitize(in.Entries)
	w := model.MonthWindow(now)

	// Single-goal views count entries that are not tied to a goal, unless
	// in multi-goal mode or when there are no goals at all.
	single := entries
	if !in.MultiGoal && len(in.Goals) > 0 {
		single = FilterByGoal(entries, "")
	}

	goals, summary := ForecastGoals(in.Goals, entries, now)

	opts := in.Priority
	if opts.TodayMood == 0 {
		opts.TodayMood = meanMood(EntriesOnDate(entries, now))
	}

	monthStart, monthEnd := ThisMonth(now)
	report := model.Report{
		GeneratedAt:     now,
		Window:          w,
		Schedule:        ScheduleAt(single, in.MonthlyTarget, now),
		MonthlyProgress: MonthlyProgressAt(single, in.MonthlyTarget, now),
		Days:            CumulativeDays(single, in.MonthlyTarget, now),
		Goals:           goals,
		Summary:         summary,
		Recommendation:  Prioritize(goals, w, opts),
		WeeklyTrends:    WeeklyTrends(entries, now),
		MonthComparison: CompareMonths(entries, now),
		GoalComparisons: CompareGoalMonths(in.Goals, in.History, entries, now),
		Moods:           GroupByMood(entries),
		Patterns:        Patterns(entries),
		Earnings:        AggregateEarnings(in.Goals, entries, monthStart, monthEnd),
		TotalEntries:    len(entries),
		SkippedEntries:  skipped.Total,
	}
	// Anything logged today counts, whichever goal it belongs to.
	report.MonthlyProgress.LoggedToday = len(EntriesOnDate(entries, now)) > 0
	return report, skipped
}

func meanMood(entries []model.Entry) float64 {
	var sum float64
	n := 0
	for _, e := range entries {
		if v, ok := e.MoodScore(); ok {
			sum += v
			n++
		}
	}
	return SafeDiv(sum, float64(n))
}
