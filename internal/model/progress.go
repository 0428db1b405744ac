package model

import "time"

// ScheduleStatus classifies single-goal schedule adherence.
type ScheduleStatus string

const (
	StatusCritical ScheduleStatus = "critical"
	StatusBehind   ScheduleStatus = "behind"
	StatusAhead    ScheduleStatus = "ahead"
	StatusOnTrack  ScheduleStatus = "on_track"
)

// Schedule holds expected-vs-actual adherence for the month to date.
type Schedule struct {
	Status          ScheduleStatus `json:"status"`
	Target          float64        `json:"target"`
	ExpectedByToday float64        `json:"expected_by_today"`
	ActualEntries   int            `json:"actual_entries"`
	DaysBehind      int            `json:"days_behind"`
	DaysAhead       int            `json:"days_ahead"`
	ProgressRate    float64        `json:"progress_rate"`
}

// MonthlyProgress summarizes the current month's single-goal log.
type MonthlyProgress struct {
	TotalEntries  int     `json:"total_entries"`
	MonthlyTarget float64 `json:"monthly_target"`
	ProgressRate  float64 `json:"progress_rate"`
	AvgProgress   float64 `json:"avg_progress"`
	EntriesNeeded int     `json:"entries_needed"`
	CurrentDay    int     `json:"current_day"`
	DaysInMonth   int     `json:"days_in_month"`
	LoggedToday   bool    `json:"logged_today"`
}

// AlertLevel grades how far a goal trails the pro-rated schedule.
type AlertLevel string

const (
	AlertNone   AlertLevel = "none"
	AlertLow    AlertLevel = "low"
	AlertMedium AlertLevel = "medium"
	AlertHigh   AlertLevel = "high"
)

// Severity orders alert levels; higher is worse.
func (a AlertLevel) Severity() int {
	switch a {
	case AlertHigh:
		return 3
	case AlertMedium:
		return 2
	case AlertLow:
		return 1
	}
	return 0
}

// NeedsRecovery reports whether a recovery plan is produced for this level.
func (a AlertLevel) NeedsRecovery() bool {
	return a == AlertMedium || a == AlertHigh
}

// RecoveryPlan describes what it takes to close a goal's shortfall.
type RecoveryPlan struct {
	Shortfall         float64    `json:"shortfall"`
	CatchUpMultiplier float64    `json:"catch_up_multiplier,omitempty"` // fixed-unit goals
	DailyTarget       float64    `json:"daily_target,omitempty"`        // other goals
	DaysRemaining     int        `json:"days_remaining"`
	Likelihood        float64    `json:"likelihood"`
	Severity          AlertLevel `json:"severity"`
	Message           string     `json:"message"`
}

// GoalProgress is the month-to-date forecast for one goal.
type GoalProgress struct {
	GoalID    string   `json:"goal_id"`
	Name      string   `json:"name"`
	Kind      GoalKind `json:"kind"`
	UnitPrice float64  `json:"unit_price,omitempty"`

	Target              float64 `json:"target"`
	Earned              float64 `json:"earned"`
	Units               float64 `json:"units"`
	Remaining           float64 `json:"remaining"`
	ExpectedByToday     float64 `json:"expected_by_today"`
	ProgressPct         float64 `json:"progress_pct"`
	ExpectedProgressPct float64 `json:"expected_progress_pct"`
	CompletionRate      float64 `json:"completion_rate"`
	RequiredDailyPace   float64 `json:"required_daily_pace"`
	CurrentDailyAvg     float64 `json:"current_daily_avg"`
	EntryCount          int     `json:"entry_count"`
	AvgMood             float64 `json:"avg_mood"`

	IsBehind bool          `json:"is_behind"`
	Alert    AlertLevel    `json:"alert_level"`
	Recovery *RecoveryPlan `json:"recovery,omitempty"`
}

// GoalSummary aggregates all goals' progress.
type GoalSummary struct {
	GoalCount          int     `json:"goal_count"`
	TotalEarned        float64 `json:"total_earned"`
	TotalTarget        float64 `json:"total_target"`
	OverallPct         float64 `json:"overall_pct"`
	BehindCount        int     `json:"behind_count"`
	AvgCompletionRate  float64 `json:"avg_completion_rate"`
	TotalRequiredDaily float64 `json:"total_required_daily"`
}

// Urgency ranks a suggestion for display.
type Urgency string

const (
	UrgencyHigh   Urgency = "high"
	UrgencyMedium Urgency = "medium"
)

// Suggestion is one prioritized catch-up directive.
type Suggestion struct {
	GoalID         string     `json:"goal_id"`
	GoalName       string     `json:"goal_name"`
	Alert          AlertLevel `json:"alert_level"`
	CompletionRate float64    `json:"completion_rate"`
	Remaining      float64    `json:"remaining"`
	DailyNeeded    float64    `json:"daily_needed"`
	InUnits        bool       `json:"in_units"`
	Urgency        Urgency    `json:"urgency"`
	Text           string     `json:"text"`
	Action         string     `json:"action"`
}

// Recommendation is the prioritizer's output.
type Recommendation struct {
	Ranked        []GoalProgress `json:"ranked"`
	Suggestions   []Suggestion   `json:"suggestions"`
	Notes         []string       `json:"notes,omitempty"`
	OverallStatus ScheduleStatus `json:"overall_status"`
	Shortfall     float64        `json:"shortfall"`
	Action        string         `json:"action"`
}

// WeekTrend holds one Monday-aligned week of activity.
type WeekTrend struct {
	Label       string    `json:"label"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Entries     int       `json:"entries"`
	AvgProgress float64   `json:"avg_progress"`
	TotalAmount float64   `json:"total_amount"`
}

// MonthStats holds one calendar month's activity.
type MonthStats struct {
	Label         string    `json:"label"`
	Start         time.Time `json:"start"`
	Entries       int       `json:"entries"`
	AvgProgress   float64   `json:"avg_progress"`
	TotalProgress float64   `json:"total_progress"`
	TotalAmount   float64   `json:"total_amount"`
}

// MonthComparison compares the current month with the one before it.
type MonthComparison struct {
	Current        MonthStats `json:"current"`
	Previous       MonthStats `json:"previous"`
	EntryChange    int        `json:"entry_change"`
	ProgressChange float64    `json:"progress_change"`
	AmountChange   float64    `json:"amount_change"`
}

// GoalMonthComparison compares one goal's month against the previous month,
// each measured against the target in force at the time.
type GoalMonthComparison struct {
	GoalID         string  `json:"goal_id"`
	Name           string  `json:"name"`
	CurrentEarned  float64 `json:"current_earned"`
	PreviousEarned float64 `json:"previous_earned"`
	CurrentTarget  float64 `json:"current_target"`
	PreviousTarget float64 `json:"previous_target"`
	CurrentPct     float64 `json:"current_pct"`
	PreviousPct    float64 `json:"previous_pct"`
	PctChange      float64 `json:"pct_change"`
}

// MoodStats holds per-mood entry statistics.
type MoodStats struct {
	Mood          string  `json:"mood"`
	Count         int     `json:"count"`
	AvgProgress   float64 `json:"avg_progress"`
	TotalProgress float64 `json:"total_progress"`
	TotalAmount   float64 `json:"total_amount"`
}

// WeekdayStats holds per-weekday entry statistics.
type WeekdayStats struct {
	Weekday     time.Weekday `json:"weekday"`
	Name        string       `json:"name"`
	Count       int          `json:"count"`
	AvgProgress float64      `json:"avg_progress"`
	TotalAmount float64      `json:"total_amount"`
}

// ProductivityPatterns ranks weekdays by average progress.
type ProductivityPatterns struct {
	Weekdays        []WeekdayStats `json:"weekdays"`
	MostProductive  []WeekdayStats `json:"most_productive"`
	LeastProductive []WeekdayStats `json:"least_productive"`
}

// DayGroup is the set of entries logged on one calendar day.
type DayGroup struct {
	Date    time.Time
	Entries []Entry
}

// DailyProgress is one point of the month-to-date chart.
type DailyProgress struct {
	Date       time.Time `json:"date"`
	Day        int       `json:"day"`
	Entries    int       `json:"entries"`
	Amount     float64   `json:"amount"`
	Cumulative int       `json:"cumulative"`
	TargetLine float64   `json:"target_line"`
}

// KindEarnings totals earnings for one goal kind.
type KindEarnings struct {
	Kind    GoalKind `json:"kind"`
	Goals   int      `json:"goals"`
	Earned  float64  `json:"earned"`
	Entries int      `json:"entries"`
}

// GoalEarnings totals earnings for one goal over a range.
type GoalEarnings struct {
	GoalID       string   `json:"goal_id"`
	Name         string   `json:"name"`
	Kind         GoalKind `json:"kind"`
	Earned       float64  `json:"earned"`
	Units        float64  `json:"units"`
	Entries      int      `json:"entries"`
	SharePercent float64  `json:"share_percent"`
}

// EarningsBreakdown splits earnings by kind and by goal.
type EarningsBreakdown struct {
	Total  float64        `json:"total"`
	ByKind []KindEarnings `json:"by_kind"`
	ByGoal []GoalEarnings `json:"by_goal"`
}
