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

// detailLines is the height reserved for the selected entry's card.
const detailLines = 8

func (a App) renderEntriesTab(cw, h int) string {
	t := theme.Active
	entries := a.data.Recent
	if len(entries) == 0 {
		muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
		return components.ContentCard("Entries", muted.Render("Nothing logged yet. Try `goalpace log \"title\"`."), cw)
	}

	// Card chrome is 3 lines (border + title).
	visible := max(h-detailLines-3, 3)
	start := 0
	if a.entryCursor >= visible {
		start = a.entryCursor - visible + 1
	}
	end := min(start+visible, len(entries))

	inner := components.CardInnerWidth(cw)
	head := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Bold(true)
	row := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	sel := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceHover).Bold(true)

	titleW := max(inner-10-16-10-8-8, 10)
	format := fmt.Sprintf("%%-10s  %%-%ds  %%-16s %%8s %%6s", titleW)

	lines := []string{head.Render(fmt.Sprintf(format, "Date", "Title", "Goal", "Amount", "Prog"))}
	for i := start; i < end; i++ {
		e := entries[i]
		style := row
		if i == a.entryCursor {
			style = sel
		}
		lines = append(lines, style.Render(fmt.Sprintf(format,
			e.DateKey(),
			truncStr(e.Title, titleW),
			truncStr(a.goalName(e.GoalID), 16),
			cli.FormatAmount(e.Amount),
			fmt.Sprintf("%.0f%%", e.Progress))))
	}

	title := fmt.Sprintf("Entries (%d of %d)", a.entryCursor+1, len(entries))
	list := components.ContentCard(title, strings.Join(lines, "\n"), cw)
	return list + "\n" + components.ContentCard("", a.entryDetail(entries[a.entryCursor]), cw)
}

func (a App) goalName(id string) string {
	if id == "" {
		return "-"
	}
	if name, ok := a.data.GoalNames[id]; ok {
		return name
	}
	return id
}

func (a App) entryDetail(e model.Entry) string {
	t := theme.Active
	label := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	value := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)

	kv := func(k, v string) string {
		return label.Render(fmt.Sprintf("%-9s", k)) + value.Render(v)
	}
	lines := []string{
		kv("Title", e.Title),
		kv("Day", e.Date.Format("Mon Jan 2, 2006")),
		kv("Goal", a.goalName(e.GoalID)),
		kv("Amount", cli.FormatAmount(e.Amount)) + label.Render("   progress ") + value.Render(fmt.Sprintf("%.0f%%", e.Progress)),
	}
	if e.Mood != "" {
		lines = append(lines, kv("Mood", e.Mood))
	}
	if e.Note != "" {
		lines = append(lines, kv("Note", truncStr(e.Note, 200)))
	}
	if e.Source != "" {
		lines = append(lines, kv("Source", e.Source))
	}
	return strings.Join(lines, "\n")
}
