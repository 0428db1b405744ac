package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/goalpace/internal/cli"
	"github.com/theirongolddev/goalpace/internal/model"
	"github.com/theirongolddev/goalpace/internal/tui/components"
	"github.com/theirongolddev/goalpace/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderOverviewTab(cw int) string {
	t := theme.Active
	r := a.data.Report
	s := r.Schedule
	mp := r.MonthlyProgress

	var b strings.Builder

	// Row 1: schedule metrics
	lag := "on pace"
	switch {
	case s.DaysBehind > 0:
		lag = cli.FormatDays(s.DaysBehind) + " behind"
	case s.DaysAhead > 0:
		lag = cli.FormatDays(s.DaysAhead) + " ahead"
	}
	today := components.Metric{Label: "Today", Value: "logged", Color: t.Green}
	if !mp.LoggedToday {
		today = components.Metric{Label: "Today", Value: "not yet", Color: t.Orange}
	}
	b.WriteString(components.MetricCardRow([]components.Metric{
		{Label: "Schedule", Value: cli.StatusLabel(s.Status), Delta: lag, Color: t.ForStatus(s.Status)},
		{Label: "Entries", Value: fmt.Sprintf("%d / %s", s.ActualEntries, cli.FormatAmount(s.Target)),
			Delta: fmt.Sprintf("expected %.1f", s.ExpectedByToday)},
		{Label: "Progress", Value: cli.FormatPercent(s.ProgressRate), Color: t.ForCompletion(s.ProgressRate),
			Delta: fmt.Sprintf("%d still needed", mp.EntriesNeeded)},
		{Label: "Avg Progress", Value: cli.FormatPercent(mp.AvgProgress)},
		today,
	}, cw))
	b.WriteString("\n")

	// Row 2: goal totals, only when goals exist
	if len(r.Goals) > 0 {
		sum := r.Summary
		b.WriteString(components.MetricCardRow([]components.Metric{
			{Label: "Earned", Value: a.money(sum.TotalEarned), Delta: "of " + a.money(sum.TotalTarget)},
			{Label: "Overall", Value: cli.FormatPercent(sum.OverallPct), Color: t.ForCompletion(sum.OverallPct)},
			{Label: "Behind", Value: fmt.Sprintf("%d of %d", sum.BehindCount, sum.GoalCount),
				Color: behindColor(sum.BehindCount)},
			{Label: "Needed / day", Value: a.money(sum.TotalRequiredDaily)},
		}, cw))
		b.WriteString("\n")
	}

	// Row 3: pace chart + recommendation
	if a.isCompactLayout() {
		b.WriteString(components.ContentCard("Month Pace", a.paceChart(components.CardInnerWidth(cw)), cw))
		b.WriteString("\n")
		b.WriteString(components.ContentCard("Recommendation", a.recommendationBody(components.CardInnerWidth(cw)), cw))
	} else {
		widths := components.LayoutRow(cw, 2)
		b.WriteString(components.CardRow([]string{
			components.ContentCard("Month Pace", a.paceChart(components.CardInnerWidth(widths[0])), widths[0]),
			components.ContentCard("Recommendation", a.recommendationBody(components.CardInnerWidth(widths[1])), widths[1]),
		}))
	}
	return b.String()
}

func behindColor(n int) lipgloss.Color {
	if n > 0 {
		return theme.Active.Orange
	}
	return theme.Active.Green
}

// paceChart plots cumulative entries over the whole month against the
// pro-rated target line. Days after today are left empty.
func (a App) paceChart(w int) string {
	r := a.data.Report
	win := r.Window
	n := win.DaysInPeriod
	if n == 0 {
		return ""
	}
	daily := r.MonthlyProgress.MonthlyTarget / float64(n)

	actual := make([]float64, n)
	expected := make([]float64, n)
	for i := range n {
		actual[i] = -1
		expected[i] = daily * float64(i+1)
	}
	for _, d := range r.Days {
		if d.Day >= 1 && d.Day <= n {
			actual[d.Day-1] = float64(d.Cumulative)
		}
	}
	return components.PaceChart(actual, expected, w, 8)
}

func (a App) recommendationBody(w int) string {
	t := theme.Active
	rec := a.data.Report.Recommendation

	primary := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	status := lipgloss.NewStyle().Foreground(t.ForStatus(rec.OverallStatus)).Background(t.Surface).Bold(true)

	var b strings.Builder
	b.WriteString(status.Render(cli.StatusLabel(rec.OverallStatus)))
	if rec.Shortfall > 0 {
		b.WriteString(muted.Render("  short " + a.money(rec.Shortfall)))
	}
	b.WriteString("\n")
	if rec.Action != "" {
		b.WriteString(primary.Width(w).Render(rec.Action))
		b.WriteString("\n")
	}

	for i, s := range rec.Suggestions {
		if i == 3 {
			b.WriteString(muted.Render(fmt.Sprintf("+%d more on the Goals tab", len(rec.Suggestions)-3)))
			b.WriteString("\n")
			break
		}
		marker := lipgloss.NewStyle().Foreground(t.ForAlert(s.Alert)).Background(t.Surface).Render("●")
		b.WriteString(marker + muted.Render(" ") + primary.Render(truncStr(s.Text, w-2)))
		b.WriteString("\n")
	}
	for _, note := range rec.Notes {
		b.WriteString(muted.Render(truncStr(note, w)))
		b.WriteString("\n")
	}
	if len(rec.Suggestions) == 0 && len(a.data.Report.Goals) == 0 {
		b.WriteString(muted.Render("No goals yet. Add one with `goalpace goals add`."))
	}
	return strings.TrimRight(b.String(), "\n")
}

// goalColor is the bar color for a goal's alert level.
func goalColor(gp model.GoalProgress) lipgloss.Color {
	return theme.Active.ForAlert(gp.Alert)
}
