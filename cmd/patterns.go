package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/goalpace/internal/cli"
	"github.com/theirongolddev/goalpace/internal/model"
)

var patternsCmd = &cobra.Command{
	Use:   "patterns",
	Short: "Weekday and mood breakdowns",
	RunE:  runPatterns,
}

func init() {
	rootCmd.AddCommand(patternsCmd)
}

func runPatterns(_ *cobra.Command, _ []string) error {
	report, _, err := loadReport()
	if err != nil {
		return err
	}
	if report.TotalEntries == 0 {
		fmt.Println("\n  No entries yet.")
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("PATTERNS  All entries"))
	fmt.Println()

	p := report.Patterns
	maxAvg := 0.0
	for _, wd := range p.Weekdays {
		maxAvg = max(maxAvg, wd.AvgProgress)
	}
	rows := make([][]string, 0, len(p.Weekdays))
	for _, wd := range p.Weekdays {
		rows = append(rows, []string{
			wd.Name,
			cli.FormatNumber(int64(wd.Count)),
			cli.FormatPercent(wd.AvgProgress),
			bar(wd.AvgProgress, maxAvg, 20),
		})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "By weekday",
		Headers: []string{"Day", "Entries", "Avg progress", ""},
		Rows:    rows,
	}))
	fmt.Println(cli.RenderKV("Most productive", weekdayNames(p.MostProductive)))
	fmt.Println(cli.RenderKV("Least productive", weekdayNames(p.LeastProductive)))
	fmt.Println()

	if len(report.Moods) > 0 {
		rows := make([][]string, 0, len(report.Moods))
		for _, m := range report.Moods {
			rows = append(rows, []string{
				m.Mood,
				cli.FormatNumber(int64(m.Count)),
				cli.FormatPercent(m.AvgProgress),
				cli.FormatAmount(m.TotalAmount),
			})
		}
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "By mood",
			Headers: []string{"Mood", "Entries", "Avg progress", "Amount"},
			Rows:    rows,
		}))
		fmt.Println()
	}
	return nil
}

func weekdayNames(days []model.WeekdayStats) string {
	if len(days) == 0 {
		return "-"
	}
	names := make([]string, len(days))
	for i, d := range days {
		names[i] = d.Name
	}
	return strings.Join(names, ", ")
}

func bar(value, maxValue float64, width int) string {
	if maxValue <= 0 {
		return ""
	}
	n := int(value / maxValue * float64(width))
	return strings.Repeat("█", min(max(n, 0), width))
}
