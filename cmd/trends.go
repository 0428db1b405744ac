package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/goalpace/internal/cli"
)

var trendsCmd = &cobra.Command{
	Use:   "trends",
	Short: "Weekly trends and month-to-date chart",
	RunE:  runTrends,
}

func init() {
	rootCmd.AddCommand(trendsCmd)
}

func runTrends(_ *cobra.Command, _ []string) error {
	report, _, err := loadReport()
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("TRENDS  Last 4 weeks"))
	fmt.Println()

	rows := make([][]string, 0, len(report.WeeklyTrends))
	for _, wk := range report.WeeklyTrends {
		rows = append(rows, []string{
			wk.Label,
			formatDay(wk.Start) + " .. " + formatDay(wk.End),
			cli.FormatNumber(int64(wk.Entries)),
			cli.FormatPercent(wk.AvgProgress),
			cli.FormatAmount(wk.TotalAmount),
		})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Week", "Range", "Entries", "Avg progress", "Amount"},
		Rows:    rows,
	}))
	fmt.Println()

	if len(report.Days) == 0 {
		return nil
	}
	perDay := make([]float64, len(report.Days))
	cumulative := make([]float64, len(report.Days))
	for i, d := range report.Days {
		perDay[i] = float64(d.Entries)
		cumulative[i] = float64(d.Cumulative)
	}
	last := report.Days[len(report.Days)-1]
	fmt.Println(cli.RenderSection("This month"))
	fmt.Println(cli.RenderKV("Per day", cli.RenderSparkline(perDay)))
	fmt.Println(cli.RenderKV("Cumulative", cli.RenderSparkline(cumulative)))
	fmt.Println(cli.RenderKV("Logged vs target line", fmt.Sprintf("%d / %.1f", last.Cumulative, last.TargetLine)))
	fmt.Println()
	return nil
}
