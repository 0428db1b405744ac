package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/theirongolddev/goalpace/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

var sparkBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline renders a unicode sparkline from values.
func Sparkline(values []float64, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}
	t := theme.Active

	peak := 0.0
	for _, v := range values {
		peak = max(peak, v)
	}
	if peak == 0 {
		peak = 1
	}

	var buf strings.Builder
	buf.Grow(len(values) * 3)
	for _, v := range values {
		idx := int(v / peak * float64(len(sparkBlocks)-1))
		idx = min(max(idx, 0), len(sparkBlocks)-1)
		buf.WriteRune(sparkBlocks[idx])
	}
	return lipgloss.NewStyle().Foreground(color).Background(t.Surface).Render(buf.String())
}

// PaceChart draws cumulative actual progress as columns with the expected
// pace overlaid as a dotted line. actual and expected are per-day series of
// equal length; days after today should be negative in actual and are left
// blank.
func PaceChart(actual, expected []float64, width, height int) string {
	n := len(actual)
	if n == 0 || len(expected) != n {
		return ""
	}
	t := theme.Active
	height = max(height, 3)

	ceiling := 0.0
	for i := range actual {
		ceiling = max(ceiling, actual[i], expected[i])
	}
	if ceiling == 0 {
		ceiling = 1
	}
	step := chartTickStep(ceiling)
	ceiling = math.Ceil(ceiling/step) * step

	yLabelW := max(len(formatChartLabel(ceiling))+1, 4)
	colW := 1
	if avail := width - yLabelW - 1; avail >= n*2 {
		colW = 2
	}

	axis := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	ahead := lipgloss.NewStyle().Foreground(t.Green).Background(t.Surface)
	behind := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)
	line := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	blank := lipgloss.NewStyle().Background(t.Surface)

	level := func(v float64) int {
		return int(math.Round(v / ceiling * float64(height)))
	}

	var b strings.Builder
	for row := height; row >= 1; row-- {
		label := ""
		if row == height {
			label = formatChartLabel(ceiling)
		} else if row == height/2 {
			label = formatChartLabel(ceiling * float64(row) / float64(height))
		}
		b.WriteString(axis.Render(fmt.Sprintf("%*s", yLabelW, label)))
		b.WriteString(axis.Render("│"))

		for i := range n {
			cell := strings.Repeat(" ", colW)
			style := blank
			switch {
			case actual[i] >= 0 && level(actual[i]) >= row:
				cell = strings.Repeat("█", colW)
				style = ahead
				if actual[i] < expected[i] {
					style = behind
				}
			case level(expected[i]) == row:
				cell = strings.Repeat("·", colW)
				style = line
			}
			b.WriteString(style.Render(cell))
		}
		b.WriteString("\n")
	}

	b.WriteString(axis.Render(fmt.Sprintf("%*s", yLabelW, "0")))
	b.WriteString(axis.Render("└" + strings.Repeat("─", n*colW)))

	// Day-of-month ticks every 5 days.
	ticks := []byte(strings.Repeat(" ", n*colW))
	for i := 0; i < n; i += 5 {
		lbl := fmt.Sprint(i + 1)
		pos := i * colW
		if pos+len(lbl) <= len(ticks) {
			copy(ticks[pos:], lbl)
		}
	}
	b.WriteString("\n")
	b.WriteString(blank.Render(strings.Repeat(" ", yLabelW+1)))
	b.WriteString(axis.Render(strings.TrimRight(string(ticks), " ")))
	return b.String()
}

// chartTickStep picks a round interval giving about five ticks.
func chartTickStep(maxVal float64) float64 {
	if maxVal <= 0 {
		return 1
	}
	rough := maxVal / 5
	base := math.Pow(10, math.Floor(math.Log10(rough)))
	switch frac := rough / base; {
	case frac < 1.5:
		return base
	case frac < 3.5:
		return 2 * base
	default:
		return 5 * base
	}
}

func formatChartLabel(v float64) string {
	switch {
	case v >= 1e6:
		return trimZero(fmt.Sprintf("%.1f", v/1e6)) + "M"
	case v >= 1e3:
		return trimZero(fmt.Sprintf("%.1f", v/1e3)) + "k"
	case v >= 1:
		return fmt.Sprintf("%.0f", v)
	default:
		return fmt.Sprintf("%.2f", v)
	}
}

func trimZero(s string) string {
	return strings.TrimSuffix(s, ".0")
}
