package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/goalpace/internal/cli"
	"github.com/theirongolddev/goalpace/internal/model"
)

var forecastCmd = &cobra.Command{
	Use:   "forecast",
	Short: "Per-goal pace forecast and recovery plans",
	RunE:  runForecast,
}

func init() {
	rootCmd.AddCommand(forecastCmd)
}

func runForecast(_ *cobra.Command, _ []string) error {
	report, cfg, err := loadReport()
	if err != nil {
		return err
	}
	if len(report.Goals) == 0 {
		fmt.Println("\n  No goals configured. Add one with `goalpace goals add`.")
		return nil
	}

	w := report.Window
	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("FORECAST  %s  (%s left)",
		w.Start.Format("January 2006"), cli.FormatDays(w.DaysRemaining))))
	fmt.Println()

	rows := make([][]string, 0, len(report.Goals)+2)
	for _, gp := range report.Goals {
		rows = append(rows, []string{
			gp.Name,
			money(gp.Earned, cfg),
			money(gp.Target, cfg),
			cli.FormatPercent(gp.ProgressPct),
			cli.FormatPercent(gp.ExpectedProgressPct),
			money(gp.RequiredDailyPace, cfg),
			money(gp.CurrentDailyAvg, cfg),
			cli.RenderAlert(gp.Alert),
		})
	}
	sum := report.Summary
	rows = append(rows, []string{"---"})
	rows = append(rows, []string{
		"Total",
		money(sum.TotalEarned, cfg),
		money(sum.TotalTarget, cfg),
		cli.FormatPercent(sum.OverallPct),
		"",
		money(sum.TotalRequiredDaily, cfg),
		"",
		fmt.Sprintf("%d behind", sum.BehindCount),
	})

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Goal", "Earned", "Target", "Progress", "Expected", "Need/day", "Avg/day", "Alert"},
		Rows:    rows,
	}))
	fmt.Println()

	for _, gp := range report.Goals {
		if gp.Recovery != nil {
			printRecovery(gp, cfg.Goal.Currency)
		}
	}
	return nil
}

func printRecovery(gp model.GoalProgress, currency string) {
	rp := gp.Recovery
	fmt.Printf("  %s  %s\n", cli.RenderAlert(rp.Severity), gp.Name)
	fmt.Println(cli.RenderKV("Shortfall", cli.FormatMoneyFloat(rp.Shortfall, currency)))
	if rp.CatchUpMultiplier > 0 {
		fmt.Println(cli.RenderKV("Catch-up pace", fmt.Sprintf("%.1fx normal", rp.CatchUpMultiplier)))
	}
	if rp.DailyTarget > 0 {
		fmt.Println(cli.RenderKV("Daily target", cli.FormatMoneyFloat(rp.DailyTarget, currency)))
	}
	fmt.Println(cli.RenderKV("Likelihood at pace", cli.FormatPercent(rp.Likelihood)))
	if rp.Message != "" {
		fmt.Printf("  %s\n", cli.RenderMuted(rp.Message))
	}
	fmt.Println()
}
