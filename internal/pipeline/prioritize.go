package pipeline

import (
	"fmt"
	"math"
	"sort"

	"github.com/theirongolddev/goalpace/internal/model"
)

const (
	// DefaultBehindThreshold is the completion rate (percent) under which a
	// goal gets a catch-up suggestion.
	DefaultBehindThreshold = 70.0

	// EncouragementAction is recommended when no goal needs catching up.
	EncouragementAction = "Keep going at your current pace."

	overallBehindPct = 80.0
	highUrgencyPct   = 50.0
	lowMoodScore     = 3.0
)

// PriorityOptions tunes Prioritize.
type PriorityOptions struct {
	BehindThreshold float64 // percent; 0 means DefaultBehindThreshold
	TodayMood       float64 // mean numeric mood logged today; 0 when unknown
}

// Rank orders goals by alert severity, most severe first, then by
// ascending completion rate. Name breaks remaining ties.
func Rank(progress []model.GoalProgress) []model.GoalProgress {
	ranked := make([]model.GoalProgress, len(progress))
	copy(ranked, progress)
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if sa, sb := a.Alert.Severity(), b.Alert.Severity(); sa != sb {
			return sa > sb
		}
		if a.CompletionRate != b.CompletionRate {
			return a.CompletionRate < b.CompletionRate
		}
		return a.Name < b.Name
	})
	return ranked
}

// Prioritize ranks goals and emits a directive for each one under the
// behind threshold that still has work remaining.
func Prioritize(progress []model.GoalProgress, w model.PeriodWindow, opts PriorityOptions) model.Recommendation {
	threshold := opts.BehindThreshold
	if threshold <= 0 {
		threshold = DefaultBehindThreshold
	}

	rec := model.Recommendation{
		Ranked:        Rank(progress),
		Suggestions:   []model.Suggestion{},
		OverallStatus: model.StatusOnTrack,
		Action:        EncouragementAction,
	}

	for _, gp := range rec.Ranked {
		if gp.CompletionRate >= threshold || gp.Remaining <= 0 {
			continue
		}
		rec.Suggestions = append(rec.Suggestions, suggest(gp, w))
	}
	if len(rec.Suggestions) > 0 {
		rec.Action = rec.Suggestions[0].Action
	}

	summary := Summarize(progress)
	rec.Shortfall = math.Max(0, summary.TotalTarget-summary.TotalEarned)
	if summary.TotalTarget > 0 && summary.OverallPct < overallBehindPct {
		rec.OverallStatus = model.StatusBehind
	}
	if summary.TotalTarget > 0 && summary.OverallPct < threshold && rec.Shortfall > 0 {
		rec.Notes = append(rec.Notes,
			fmt.Sprintf("%.0f short of the combined monthly target. Focus on the top priority first.", rec.Shortfall))
	}
	if opts.TodayMood > 0 && opts.TodayMood < lowMoodScore {
		rec.Notes = append(rec.Notes, "Mood is low today. Start with a small task to build momentum.")
	}
	return rec
}

func suggest(gp model.GoalProgress, w model.PeriodWindow) model.Suggestion {
	s := model.Suggestion{
		GoalID:         gp.GoalID,
		GoalName:       gp.Name,
		Alert:          gp.Alert,
		CompletionRate: gp.CompletionRate,
		Remaining:      gp.Remaining,
		Urgency:        model.UrgencyMedium,
	}
	if gp.CompletionRate < highUrgencyPct {
		s.Urgency = model.UrgencyHigh
	}

	days := atLeastOne(float64(w.DaysRemaining))
	if gp.Kind == model.KindFixedUnit && gp.UnitPrice > 0 {
		s.InUnits = true
		s.Remaining = gp.Remaining / gp.UnitPrice
		s.DailyNeeded = s.Remaining / days
		s.Text = fmt.Sprintf("%s: %.1f units per day needed", gp.Name, s.DailyNeeded)
		s.Action = fmt.Sprintf("Complete %d units of %s today", int(s.DailyNeeded)+1, gp.Name)
		return s
	}

	s.DailyNeeded = s.Remaining / days
	s.Text = fmt.Sprintf("%s: %.0f per day needed", gp.Name, s.DailyNeeded)
	s.Action = fmt.Sprintf("Bring in %.0f for %s today", math.Ceil(s.DailyNeeded), gp.Name)
	return s
}
