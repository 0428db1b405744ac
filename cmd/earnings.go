package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/goalpace/internal/cli"
)

var earningsCmd = &cobra.Command{
	Use:   "earnings",
	Short: "This month's earnings by goal kind and goal",
	RunE:  runEarnings,
}

func init() {
	rootCmd.AddCommand(earningsCmd)
}

func runEarnings(_ *cobra.Command, _ []string) error {
	report, cfg, err := loadReport()
	if err != nil {
		return err
	}
	eb := report.Earnings
	if len(eb.ByGoal) == 0 {
		fmt.Println("\n  No goals configured.")
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("EARNINGS  %s  %s",
		report.Window.Start.Format("January 2006"), money(eb.Total, cfg))))
	fmt.Println()

	kindRows := make([][]string, 0, len(eb.ByKind))
	for _, k := range eb.ByKind {
		kindRows = append(kindRows, []string{
			string(k.Kind),
			cli.FormatNumber(int64(k.Goals)),
			cli.FormatNumber(int64(k.Entries)),
			money(k.Earned, cfg),
		})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "By kind",
		Headers: []string{"Kind", "Goals", "Entries", "Earned"},
		Rows:    kindRows,
	}))
	fmt.Println()

	goalRows := make([][]string, 0, len(eb.ByGoal))
	for _, g := range eb.ByGoal {
		goalRows = append(goalRows, []string{
			g.Name,
			string(g.Kind),
			cli.FormatAmount(g.Units),
			cli.FormatNumber(int64(g.Entries)),
			money(g.Earned, cfg),
			cli.FormatPercent(g.SharePercent),
		})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "By goal",
		Headers: []string{"Goal", "Kind", "Units", "Entries", "Earned", "Share"},
		Rows:    goalRows,
	}))
	fmt.Println()
	return nil
}
