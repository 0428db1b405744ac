package components

import (
	"strings"

	"github.com/theirongolddev/goalpace/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Tab is one entry in the tab bar.
type Tab struct {
	Name string
	Key  rune
}

// Tabs defines all dashboard tabs in display order.
// Every key is the lowercase first letter of its name.
var Tabs = []Tab{
	{Name: "Overview", Key: 'o'},
	{Name: "Goals", Key: 'g'},
	{Name: "Trends", Key: 't'},
	{Name: "Patterns", Key: 'p'},
	{Name: "Entries", Key: 'e'},
}

// TabVisualWidth is the rendered width of a tab, matching RenderTabBar.
func TabVisualWidth(tab Tab) int {
	return lipgloss.Width(tab.Name) + 2
}

// RenderTabBar renders a single-row tab bar with the given active index.
func RenderTabBar(activeIdx int, width int) string {
	t := theme.Active

	activeStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.SurfaceHover).
		Bold(true).
		Padding(0, 1)
	inactiveStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)
	keyStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.Surface).
		Bold(true)
	sepStyle := lipgloss.NewStyle().Foreground(t.Border).Background(t.Surface)

	var b strings.Builder
	for i, tab := range Tabs {
		if i == activeIdx {
			b.WriteString(activeStyle.Render(tab.Name))
		} else {
			b.WriteString(inactiveStyle.Render(" ") +
				keyStyle.Render(tab.Name[:1]) +
				inactiveStyle.Render(tab.Name[1:]+" "))
		}
		if i < len(Tabs)-1 {
			b.WriteString(sepStyle.Render("│"))
		}
	}

	return lipgloss.NewStyle().Background(t.Surface).Width(width).Render(b.String())
}

// TabIdxByKey returns the tab index for a key press, or -1.
func TabIdxByKey(key rune) int {
	for i, tab := range Tabs {
		if tab.Key == key {
			return i
		}
	}
	return -1
}
