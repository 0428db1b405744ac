package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/goalpace/internal/config"
	"github.com/theirongolddev/goalpace/internal/tui"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	// Edit the file as stored; env overrides are not written back.
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}

	vals := tui.DefaultSetupValues(cfg)
	if !config.Exists(flagConfig) && cfg.General.DataDir != "" {
		seedFromLegacy(&vals, config.DetectLegacySettings(cfg.General.DataDir))
	}

	if err := tui.NewSetupForm(&vals).Run(); err != nil {
		return fmt.Errorf("setup: %w", err)
	}
	tui.ApplySetup(&cfg, vals)

	if err := config.Save(cfg, flagConfig); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	path := flagConfig
	if path == "" {
		path = config.ConfigPath()
	}
	fmt.Println()
	fmt.Printf("  Saved to %s\n", path)
	fmt.Println("  Run `goalpace setup` anytime to reconfigure.")
	fmt.Println()
	return nil
}

// seedFromLegacy prefills the form from an older installation's settings.
func seedFromLegacy(vals *tui.SetupValues, ls config.LegacySettings) {
	if !ls.Found {
		return
	}
	if ls.MonthlyTarget > 0 {
		vals.MonthlyTarget = strconv.FormatFloat(ls.MonthlyTarget, 'f', -1, 64)
	}
	if ls.Currency != "" {
		vals.Currency = ls.Currency
	}
	if len(ls.Sources) > 0 || ls.MonthlyIncomeGoal > 0 {
		vals.Mode = config.ModeMulti
	}
}
