package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/goalpace/internal/cli"
	"github.com/theirongolddev/goalpace/internal/model"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Ranked catch-up suggestions",
	RunE:  runSuggest,
}

func init() {
	rootCmd.AddCommand(suggestCmd)
}

func runSuggest(_ *cobra.Command, _ []string) error {
	report, cfg, err := loadReport()
	if err != nil {
		return err
	}
	rec := report.Recommendation

	fmt.Println()
	fmt.Println(cli.RenderTitle("SUGGESTIONS"))
	fmt.Println()
	fmt.Println(cli.RenderKV("Overall", cli.RenderStatus(rec.OverallStatus)))
	if rec.Shortfall > 0 {
		fmt.Println(cli.RenderKV("Shortfall", money(rec.Shortfall, cfg)))
	}
	fmt.Println()

	if len(rec.Suggestions) > 0 {
		rows := make([][]string, 0, len(rec.Suggestions))
		for i, s := range rec.Suggestions {
			need := money(s.DailyNeeded, cfg) + "/day"
			if s.InUnits {
				need = fmt.Sprintf("%.1f units/day", s.DailyNeeded)
			}
			rows = append(rows, []string{
				fmt.Sprintf("%d. %s", i+1, s.GoalName),
				cli.FormatPercent(s.CompletionRate),
				need,
				urgencyLabel(s.Urgency),
			})
		}
		fmt.Print(cli.RenderTable(cli.Table{
			Headers: []string{"Goal", "Complete", "Needed", "Urgency"},
			Rows:    rows,
		}))
		fmt.Println()
	}

	for _, n := range rec.Notes {
		fmt.Printf("  %s\n", cli.RenderMuted(n))
	}
	fmt.Printf("\n  Next: %s\n\n", rec.Action)
	return nil
}

func urgencyLabel(u model.Urgency) string {
	if u == model.UrgencyHigh {
		return "HIGH"
	}
	return "medium"
}
