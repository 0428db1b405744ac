package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/goalpace/internal/cli"
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "This month against last month",
	RunE:  runCompare,
}

func init() {
	rootCmd.AddCommand(compareCmd)
}

func runCompare(_ *cobra.Command, _ []string) error {
	report, cfg, err := loadReport()
	if err != nil {
		return err
	}
	mc := report.MonthComparison

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("%s  vs  %s", mc.Current.Label, mc.Previous.Label)))
	fmt.Println()

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Metric", mc.Previous.Label, mc.Current.Label, "Change"},
		Rows: [][]string{
			{"Entries",
				cli.FormatNumber(int64(mc.Previous.Entries)),
				cli.FormatNumber(int64(mc.Current.Entries)),
				fmt.Sprintf("%+d", mc.EntryChange)},
			{"Avg progress",
				cli.FormatPercent(mc.Previous.AvgProgress),
				cli.FormatPercent(mc.Current.AvgProgress),
				fmt.Sprintf("%+.1f pts", mc.ProgressChange)},
			{"Amount",
				cli.FormatAmount(mc.Previous.TotalAmount),
				cli.FormatAmount(mc.Current.TotalAmount),
				cli.FormatDelta(mc.Current.TotalAmount, mc.Previous.TotalAmount)},
		},
	}))
	fmt.Println()

	if len(report.GoalComparisons) == 0 {
		return nil
	}
	rows := make([][]string, 0, len(report.GoalComparisons))
	for _, gc := range report.GoalComparisons {
		rows = append(rows, []string{
			gc.Name,
			fmt.Sprintf("%s / %s", money(gc.PreviousEarned, cfg), money(gc.PreviousTarget, cfg)),
			fmt.Sprintf("%s / %s", money(gc.CurrentEarned, cfg), money(gc.CurrentTarget, cfg)),
			cli.FormatPercent(gc.PreviousPct),
			cli.FormatPercent(gc.CurrentPct),
			fmt.Sprintf("%+.1f pts", gc.PctChange),
		})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Per goal",
		Headers: []string{"Goal", "Previous", "Current", "Prev %", "Curr %", "Change"},
		Rows:    rows,
	}))
	fmt.Println()
	return nil
}
