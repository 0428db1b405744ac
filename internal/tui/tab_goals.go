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

func (a App) renderGoalsTab(cw int) string {
	t := theme.Active
	goals := a.data.Report.Goals
	if len(goals) == 0 {
		muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
		return components.ContentCard("Goals", muted.Render(
			"No goals configured.\nAdd one with `goalpace goals add --kind fixed_unit --name ... --target ...`."), cw)
	}

	listW, detailW := cw, cw
	if !a.isCompactLayout() {
		widths := components.LayoutRow(cw, 2)
		listW, detailW = widths[0], widths[1]
	}

	list := components.ContentCard(fmt.Sprintf("Goals (%d)", len(goals)), a.goalList(components.CardInnerWidth(listW)), listW)
	detail := components.ContentCard(goals[a.goalCursor].Name, a.goalDetail(goals[a.goalCursor]), detailW)
	if a.isCompactLayout() {
		return list + "\n" + detail
	}
	return components.CardRow([]string{list, detail})
}

// goalList renders goals in priority order with a bar each.
func (a App) goalList(w int) string {
	t := theme.Active
	cursor := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	space := lipgloss.NewStyle().Background(t.Surface)

	labelW := min(16, w/3)
	barW := max(w-labelW-2-8, 4)

	var b strings.Builder
	for i, gp := range a.data.Report.Goals {
		prefix := space.Render("  ")
		if i == a.goalCursor {
			prefix = cursor.Render("▸ ")
		}
		bar := components.GoalBar(gp.Name, gp.ProgressPct, gp.ExpectedProgressPct, goalColor(gp), labelW, barW)
		top, marker, _ := strings.Cut(bar, "\n")
		b.WriteString(prefix + top + "\n" + space.Render("  ") + marker)
		if i < len(a.data.Report.Goals)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (a App) goalDetail(gp model.GoalProgress) string {
	t := theme.Active
	label := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	value := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	alert := lipgloss.NewStyle().Foreground(t.ForAlert(gp.Alert)).Background(t.Surface).Bold(true)

	var lines []string
	kv := func(k, v string) {
		lines = append(lines, label.Render(fmt.Sprintf("%-18s", k))+value.Render(v))
	}

	kv("Kind", string(gp.Kind))
	if gp.Kind == model.KindFixedUnit {
		kv("Unit price", a.money(gp.UnitPrice))
		kv("Units logged", cli.FormatAmount(gp.Units))
	}
	kv("Earned", fmt.Sprintf("%s of %s", a.money(gp.Earned), a.money(gp.Target)))
	kv("Remaining", a.money(gp.Remaining))
	kv("Expected by today", a.money(gp.ExpectedByToday))
	kv("Progress", fmt.Sprintf("%s (expected %s)", cli.FormatPercent(gp.ProgressPct), cli.FormatPercent(gp.ExpectedProgressPct)))
	kv("Completion rate", cli.FormatPercent(gp.CompletionRate))
	kv("Daily avg", a.money(gp.CurrentDailyAvg))
	kv("Needed per day", a.money(gp.RequiredDailyPace))
	kv("Entries", fmt.Sprintf("%d", gp.EntryCount))
	kv("Avg mood", fmt.Sprintf("%.1f", gp.AvgMood))
	lines = append(lines, label.Render(fmt.Sprintf("%-18s", "Alert"))+alert.Render(string(gp.Alert)))

	if rp := gp.Recovery; rp != nil {
		lines = append(lines, "", alert.Render("Recovery plan"))
		kv("Shortfall", a.money(rp.Shortfall))
		if rp.CatchUpMultiplier > 0 {
			kv("Catch-up", fmt.Sprintf("%.1fx current pace", rp.CatchUpMultiplier))
		}
		if rp.DailyTarget > 0 {
			kv("Daily target", a.money(rp.DailyTarget))
		}
		kv("Days left", cli.FormatDays(rp.DaysRemaining))
		kv("Likelihood", cli.FormatPercent(rp.Likelihood))
		if rp.Message != "" {
			lines = append(lines, value.Render(rp.Message))
		}
	}

	for _, s := range a.data.Report.Recommendation.Suggestions {
		if s.GoalID == gp.GoalID {
			lines = append(lines, "", label.Render("Suggestion"), value.Render(s.Text))
			if s.Action != "" {
				lines = append(lines, label.Render(s.Action))
			}
			break
		}
	}
	return strings.Join(lines, "\n")
}
