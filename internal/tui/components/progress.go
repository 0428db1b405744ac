package components

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/goalpace/internal/tui/theme"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

func clamp01(v float64) float64 {
	return min(max(v, 0), 1)
}

// ProgressBar renders a simple block bar with a trailing percentage.
// pct is a 0-1 fraction.
func ProgressBar(pct float64, width int) string {
	t := theme.Active
	pct = clamp01(pct)
	filled := int(pct * float64(width))

	barColor := t.Cyan
	switch {
	case pct >= 0.8:
		barColor = t.AccentBright
	case pct >= 0.5:
		barColor = t.Accent
	}

	filledStyle := lipgloss.NewStyle().Foreground(barColor).Background(t.Surface)
	emptyStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	pctStyle := lipgloss.NewStyle().Foreground(barColor).Background(t.Surface).Bold(true)

	return filledStyle.Render(strings.Repeat("█", filled)) +
		emptyStyle.Render(strings.Repeat("░", width-filled)) +
		emptyStyle.Render(" ") +
		pctStyle.Render(fmt.Sprintf("%.0f%%", pct*100))
}

// GoalBar renders a labeled bar for one goal. progressPct and expectedPct
// are on a 0-100 scale; a marker under the bar shows where the goal
// should be by today.
func GoalBar(label string, progressPct, expectedPct float64, color lipgloss.Color, labelW, barW int) string {
	t := theme.Active
	barW = max(barW, 4)

	bar := progress.New(
		progress.WithSolidFill(string(color)),
		progress.WithWidth(barW),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	pctStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface).Bold(true)
	markStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	space := lipgloss.NewStyle().Background(t.Surface)

	top := labelStyle.Render(fmt.Sprintf("%-*s", labelW, truncate(label, labelW))) +
		space.Render(" ") +
		bar.ViewAs(clamp01(progressPct/100)) +
		space.Render(" ") +
		pctStyle.Render(fmt.Sprintf("%5.1f%%", progressPct))

	pos := min(int(clamp01(expectedPct/100)*float64(barW-1)), barW-1)
	marker := space.Render(strings.Repeat(" ", labelW+1+pos)) + markStyle.Render("▲ expected")
	return top + "\n" + marker
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if limit <= 0 || len(runes) <= limit {
		return s
	}
	if limit == 1 {
		return "…"
	}
	return string(runes[:limit-1]) + "…"
}
