package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/goalpace/internal/cli"
	"github.com/theirongolddev/goalpace/internal/tui/components"
	"github.com/theirongolddev/goalpace/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderTrendsTab(cw int) string {
	r := a.data.Report

	var b strings.Builder
	mc := r.MonthComparison
	b.WriteString(components.MetricCardRow([]components.Metric{
		{Label: "Entries this month", Value: fmt.Sprintf("%d", mc.Current.Entries),
			Delta: fmt.Sprintf("%+d vs %s", mc.EntryChange, mc.Previous.Label)},
		{Label: "Avg progress", Value: cli.FormatPercent(mc.Current.AvgProgress),
			Delta: fmt.Sprintf("%+.1f pts", mc.ProgressChange)},
		{Label: "Amount logged", Value: cli.FormatAmount(mc.Current.TotalAmount),
			Delta: cli.FormatDelta(mc.Current.TotalAmount, mc.Previous.TotalAmount)},
	}, cw))
	b.WriteString("\n")

	weekly := components.ContentCard("Last 4 Weeks", a.weeklyBody(), cw)
	if a.isCompactLayout() || len(r.GoalComparisons) == 0 {
		b.WriteString(weekly)
		if len(r.GoalComparisons) > 0 {
			b.WriteString("\n")
			b.WriteString(components.ContentCard("Goals vs Last Month", a.goalCompareBody(components.CardInnerWidth(cw)), cw))
		}
		return b.String()
	}

	widths := components.LayoutRow(cw, 2)
	b.WriteString(components.CardRow([]string{
		components.ContentCard("Last 4 Weeks", a.weeklyBody(), widths[0]),
		components.ContentCard("Goals vs Last Month", a.goalCompareBody(components.CardInnerWidth(widths[1])), widths[1]),
	}))
	return b.String()
}

func (a App) weeklyBody() string {
	t := theme.Active
	head := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Bold(true)
	row := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	current := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)

	weeks := a.data.Report.WeeklyTrends
	lines := []string{head.Render(fmt.Sprintf("%-8s %-13s %7s %8s %10s", "Week", "Dates", "Entries", "Avg %", "Amount"))}
	entries := make([]float64, 0, len(weeks))
	for i, wk := range weeks {
		style := row
		if i == len(weeks)-1 {
			style = current
		}
		lines = append(lines, style.Render(fmt.Sprintf("%-8s %-13s %7d %8s %10s",
			wk.Label,
			wk.Start.Format("01/02")+"-"+wk.End.Format("01/02"),
			wk.Entries,
			cli.FormatPercent(wk.AvgProgress),
			cli.FormatAmount(wk.TotalAmount))))
		entries = append(entries, float64(wk.Entries))
	}
	if len(entries) > 0 {
		lines = append(lines, "", head.Render("Entries ")+components.Sparkline(entries, t.Accent))
	}
	return strings.Join(lines, "\n")
}

func (a App) goalCompareBody(w int) string {
	t := theme.Active
	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	name := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)

	var lines []string
	for _, gc := range a.data.Report.GoalComparisons {
		lines = append(lines,
			name.Render(truncStr(gc.Name, w))+"\n"+
				muted.Render(fmt.Sprintf("  %s of %s  (was %s of %s)  ",
					a.money(gc.CurrentEarned), a.money(gc.CurrentTarget),
					a.money(gc.PreviousEarned), a.money(gc.PreviousTarget)))+
				changeStyle(gc.PctChange).Render(fmt.Sprintf("%+.1f pts", gc.PctChange)))
	}
	return strings.Join(lines, "\n")
}

func changeStyle(delta float64) lipgloss.Style {
	t := theme.Active
	c := t.TextMuted
	switch {
	case delta > 0:
		c = t.Green
	case delta < 0:
		c = t.Red
	}
	return lipgloss.NewStyle().Foreground(c).Background(t.Surface).Bold(true)
}
