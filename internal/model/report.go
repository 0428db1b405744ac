package model

import "time"

// Report bundles every derived view for one evaluation instant.
type Report struct {
	GeneratedAt time.Time    `json:"generated_at"`
	Window      PeriodWindow `json:"window"`

	Schedule        Schedule        `json:"schedule"`
	MonthlyProgress MonthlyProgress `json:"monthly_progress"`
	Days            []DailyProgress `json:"days"`

	Goals          []GoalProgress `json:"goals"`
	Summary        GoalSummary    `json:"summary"`
	Recommendation Recommendation `json:"recommendation"`

	WeeklyTrends    []WeekTrend           `json:"weekly_trends"`
	MonthComparison MonthComparison       `json:"month_comparison"`
	GoalComparisons []GoalMonthComparison `json:"goal_comparisons"`
	Moods           []MoodStats           `json:"moods"`
	Patterns        ProductivityPatterns  `json:"patterns"`
	Earnings        EarningsBreakdown     `json:"earnings"`

	TotalEntries   int `json:"total_entries"`
	SkippedEntries int `json:"skipped_entries"`
}

// Dataset is a consistent read of everything the engine consumes.
type Dataset struct {
	Entries []Entry
	Goals   []Goal
	History []GoalChange
}
