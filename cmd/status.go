package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/goalpace/internal/cli"
	"github.com/theirongolddev/goalpace/internal/model"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Schedule adherence and monthly progress",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(_ *cobra.Command, _ []string) error {
	report, cfg, err := loadReport()
	if err != nil {
		return err
	}

	w := report.Window
	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("GOALPACE  %s  (day %d of %d)",
		w.Start.Format("January 2006"), w.ElapsedDays, w.DaysInPeriod)))
	fmt.Println()

	s := report.Schedule
	mp := report.MonthlyProgress
	fmt.Println(cli.RenderSection("Schedule"))
	fmt.Println(cli.RenderKV("Status", cli.RenderStatus(s.Status)))
	fmt.Println(cli.RenderKV("Entries", fmt.Sprintf("%d of %s", s.ActualEntries, cli.FormatAmount(s.Target))))
	fmt.Println(cli.RenderKV("Expected by today", fmt.Sprintf("%.1f", s.ExpectedByToday)))
	switch {
	case s.DaysBehind > 0:
		fmt.Println(cli.RenderKV("Behind by", cli.FormatDays(s.DaysBehind)))
	case s.DaysAhead > 0:
		fmt.Println(cli.RenderKV("Ahead by", cli.FormatDays(s.DaysAhead)))
	}
	fmt.Println(cli.RenderKV("Progress", cli.RenderProgressBar(s.ProgressRate, 30)))
	fmt.Println(cli.RenderKV("Average progress", cli.FormatPercent(mp.AvgProgress)))
	fmt.Println(cli.RenderKV("Entries still needed", fmt.Sprintf("%d", mp.EntriesNeeded)))
	fmt.Println()

	if !mp.LoggedToday {
		warn := lipgloss.NewStyle().Foreground(cli.ColorOrange)
		fmt.Printf("  %s\n\n", warn.Render("Nothing logged today yet."))
	}

	if len(report.Goals) > 0 {
		printGoalSummary(report.Summary, cfg.Goal.Currency)
	}

	if report.SkippedEntries > 0 && !flagQuiet {
		fmt.Printf("  %s\n\n", cli.RenderMuted(fmt.Sprintf("%d unusable entries were skipped.", report.SkippedEntries)))
	}
	return nil
}

func printGoalSummary(sum model.GoalSummary, currency string) {
	fmt.Println(cli.RenderSection("Goals"))
	fmt.Println(cli.RenderKV("Earned", fmt.Sprintf("%s of %s",
		cli.FormatMoneyFloat(sum.TotalEarned, currency), cli.FormatMoneyFloat(sum.TotalTarget, currency))))
	fmt.Println(cli.RenderKV("Overall", cli.RenderProgressBar(sum.OverallPct, 30)))
	fmt.Println(cli.RenderKV("Behind", fmt.Sprintf("%d of %d", sum.BehindCount, sum.GoalCount)))
	fmt.Println(cli.RenderKV("Required per day", cli.FormatMoneyFloat(sum.TotalRequiredDaily, currency)))
	fmt.Println()
}
