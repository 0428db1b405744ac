package components

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/goalpace/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// StatusInfo is what the bottom bar shows on its right side.
type StatusInfo struct {
	AsOf        string // evaluation day, YYYY-MM-DD
	LoadTime    string
	Skipped     int
	Refreshing  bool
	AutoRefresh bool
}

// RenderStatusBar renders the bottom status bar.
func RenderStatusBar(width int, info StatusInfo) string {
	t := theme.Active

	base := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	warn := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)
	accent := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface)

	left := base.Render(" [?]help  [r]efresh  [q]uit")

	var parts []string
	if info.Skipped > 0 {
		parts = append(parts, warn.Render(fmt.Sprintf("%d skipped", info.Skipped)))
	}
	switch {
	case info.Refreshing:
		parts = append(parts, accent.Render("refreshing…"))
	case info.AutoRefresh:
		parts = append(parts, base.Render("auto"))
	}
	if info.AsOf != "" {
		parts = append(parts, base.Render("as of "+info.AsOf))
	}
	if info.LoadTime != "" {
		parts = append(parts, base.Render(info.LoadTime))
	}
	right := strings.Join(parts, base.Render(" · ")) + base.Render(" ")

	padding := max(width-lipgloss.Width(left)-lipgloss.Width(right), 0)
	return left + base.Render(strings.Repeat(" ", padding)) + right
}
