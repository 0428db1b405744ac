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

func (a App) renderPatternsTab(cw int) string {
	r := a.data.Report
	p := r.Patterns

	var b strings.Builder
	best, worst := "-", "-"
	if len(p.MostProductive) > 0 {
		best = dayNames(p.MostProductive)
	}
	if len(p.LeastProductive) > 0 {
		worst = dayNames(p.LeastProductive)
	}
	b.WriteString(components.MetricCardRow([]components.Metric{
		{Label: "Most productive", Value: best, Color: theme.Active.Green},
		{Label: "Least productive", Value: worst, Color: theme.Active.Orange},
		{Label: "Moods logged", Value: fmt.Sprintf("%d", len(r.Moods))},
	}, cw))
	b.WriteString("\n")

	if a.isCompactLayout() {
		b.WriteString(components.ContentCard("Average Progress by Weekday", weekdayBars(p.Weekdays, components.CardInnerWidth(cw)), cw))
		b.WriteString("\n")
		b.WriteString(components.ContentCard("Mood", a.moodBody(), cw))
		return b.String()
	}
	widths := components.LayoutRow(cw, 2)
	b.WriteString(components.CardRow([]string{
		components.ContentCard("Average Progress by Weekday", weekdayBars(p.Weekdays, components.CardInnerWidth(widths[0])), widths[0]),
		components.ContentCard("Mood", a.moodBody(), widths[1]),
	}))
	return b.String()
}

func dayNames(days []model.WeekdayStats) string {
	names := make([]string, len(days))
	for i, d := range days {
		names[i] = cli.FormatDayOfWeek(d.Weekday)
	}
	return strings.Join(names, ", ")
}

func (a App) moodBody() string {
	t := theme.Active
	head := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Bold(true)
	row := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	moods := a.data.Report.Moods
	if len(moods) == 0 {
		return muted.Render("No mood recorded yet.")
	}
	lines := []string{head.Render(fmt.Sprintf("%-12s %6s %8s %10s", "Mood", "Count", "Avg %", "Amount"))}
	for _, m := range moods {
		lines = append(lines, row.Render(fmt.Sprintf("%-12s %6d %8s %10s",
			truncStr(m.Mood, 12), m.Count, cli.FormatPercent(m.AvgProgress), cli.FormatAmount(m.TotalAmount))))
	}
	return strings.Join(lines, "\n")
}

// weekdayBars renders one horizontal bar per weekday scaled to the best day.
func weekdayBars(days []model.WeekdayStats, w int) string {
	t := theme.Active
	label := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	bar := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface)
	val := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)

	peak := 0.0
	for _, d := range days {
		peak = max(peak, d.AvgProgress)
	}
	barW := max(w-4-1-16, 4)

	var lines []string
	for _, d := range days {
		n := 0
		if peak > 0 {
			n = int(d.AvgProgress / peak * float64(barW))
		}
		lines = append(lines, label.Render(fmt.Sprintf("%-4s", cli.FormatDayOfWeek(d.Weekday)))+
			bar.Render(strings.Repeat("█", n)+strings.Repeat(" ", barW-n))+
			val.Render(fmt.Sprintf(" %6s  %3d", cli.FormatPercent(d.AvgProgress), d.Count)))
	}
	return strings.Join(lines, "\n")
}
