// Package pipeline turns entry logs and goals into schedule, forecast, and trend views.
// Every function is pure: the evaluation instant is always passed in.
package pipeline

import (
	"sort"
	"time"

	"github.com/theirongolddev/goalpace/internal/model"
)

// FilterByRange returns entries dated within [start, end] by calendar day,
// preserving input order. start after end yields an empty slice.
func FilterByRange(entries []model.Entry, start, end time.Time) []model.Entry {
	from := start.Format(model.DateLayout)
	to := end.Format(model.DateLayout)

	result := []model.Entry{}
	if from > to {
		return result
	}
	for _, e := range entries {
		key := e.DateKey()
		if key < from || key > to {
			continue
		}
		result = append(result, e)
	}
	return result
}

// EntriesOnDate returns the entries logged on day.
func EntriesOnDate(entries []model.Entry, day time.Time) []model.Entry {
	return FilterByRange(entries, day, day)
}

// FilterByGoal returns entries attributed to goalID.
func FilterByGoal(entries []model.Entry, goalID string) []model.Entry {
	var result []model.Entry
	for _, e := range entries {
		if e.GoalID == goalID {
			result = append(result, e)
		}
	}
	return result
}

// ThisWeek returns the Monday-to-Sunday week containing now.
func ThisWeek(now time.Time) (time.Time, time.Time) {
	start := model.WeekStart(now)
	return start, start.AddDate(0, 0, 6)
}

// ThisMonth returns the first and last day of the month containing now.
func ThisMonth(now time.Time) (time.Time, time.Time) {
	w := model.MonthWindow(now)
	return w.Start, w.End
}

// GroupByDay buckets entries by calendar day, oldest first.
func GroupByDay(entries []model.Entry) []model.DayGroup {
	dayMap := make(map[string]*model.DayGroup)
	for _, e := range entries {
		key := e.DateKey()
		g, ok := dayMap[key]
		if !ok {
			g = &model.DayGroup{Date: model.Day(e.Date)}
			dayMap[key] = g
		}
		g.Entries = append(g.Entries, e)
	}

	days := make([]model.DayGroup, 0, len(dayMap))
	for _, g := range dayMap {
		days = append(days, *g)
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].Date.Format(model.DateLayout) < days[j].Date.Format(model.DateLayout)
	})
	return days
}

// GroupByWeekday computes per-weekday statistics, Monday first.
// Weekdays without entries are omitted.
func GroupByWeekday(entries []model.Entry) []model.WeekdayStats {
	var buckets [7]model.WeekdayStats
	var progress [7]float64

	for _, e := range entries {
		wd := e.Date.Weekday()
		b := &buckets[wd]
		b.Count++
		b.TotalAmount += e.Amount
		progress[wd] += e.Progress
	}

	result := make([]model.WeekdayStats, 0, 7)
	for i := 0; i < 7; i++ {
		wd := time.Weekday((i + 1) % 7)
		b := buckets[wd]
		if b.Count == 0 {
			continue
		}
		b.Weekday = wd
		b.Name = wd.String()
		b.AvgProgress = SafeDiv(progress[wd], float64(b.Count))
		result = append(result, b)
	}
	return result
}

// Patterns ranks weekdays by average progress. The least productive list is
// only filled once at least three weekdays have entries.
func Patterns(entries []model.Entry) model.ProductivityPatterns {
	weekdays := GroupByWeekday(entries)

	ranked := make([]model.WeekdayStats, len(weekdays))
	copy(ranked, weekdays)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].AvgProgress > ranked[j].AvgProgress
	})

	p := model.ProductivityPatterns{Weekdays: weekdays}
	top := 3
	if len(ranked) < top {
		top = len(ranked)
	}
	p.MostProductive = ranked[:top]
	if len(ranked) >= 3 {
		p.LeastProductive = ranked[len(ranked)-3:]
	}
	return p
}

// GroupByMood computes per-mood statistics, most frequent first.
// Entries without a mood are left out of this grouping only.
func GroupByMood(entries []model.Entry) []model.MoodStats {
	moodMap := make(map[string]*model.MoodStats)
	for _, e := range entries {
		if e.Mood == "" {
			continue
		}
		ms, ok := moodMap[e.Mood]
		if !ok {
			ms = &model.MoodStats{Mood: e.Mood}
			moodMap[e.Mood] = ms
		}
		ms.Count++
		ms.TotalProgress += e.Progress
		ms.TotalAmount += e.Amount
	}

	moods := make([]model.MoodStats, 0, len(moodMap))
	for _, ms := range moodMap {
		ms.AvgProgress = SafeDiv(ms.TotalProgress, float64(ms.Count))
		moods = append(moods, *ms)
	}
	sort.Slice(moods, func(i, j int) bool {
		if moods[i].Count != moods[j].Count {
			return moods[i].Count > moods[j].Count
		}
		return moods[i].Mood < moods[j].Mood
	})
	return moods
}

func avgProgress(entries []model.Entry) float64 {
	var total float64
	for _, e := range entries {
		total += e.Progress
	}
	return SafeDiv(total, float64(len(entries)))
}

func totalAmount(entries []model.Entry) float64 {
	var total float64
	for _, e := range entries {
		total += e.Amount
	}
	return total
}
