package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/goalpace/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	path := flagConfig
	if path == "" {
		path = config.ConfigPath()
	}
	fmt.Printf("  Config file: %s\n", path)
	if config.Exists(flagConfig) {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Database:         %s\n", cfg.DBPath())
	if cfg.General.DataDir != "" {
		fmt.Printf("    Log directory:    %s\n", cfg.General.DataDir)
	} else {
		fmt.Println("    Log directory:    not set")
	}
	fmt.Println()

	fmt.Println("  [Goal]")
	fmt.Printf("    Mode:             %s\n", cfg.Goal.Mode)
	fmt.Printf("    Monthly target:   %g entries\n", cfg.Goal.MonthlyTarget)
	fmt.Printf("    Behind threshold: %g%%\n", cfg.Goal.BehindThreshold)
	fmt.Printf("    Currency:         %s\n", cfg.Goal.Currency)
	fmt.Println()

	fmt.Println("  [Daemon]")
	fmt.Printf("    Listen:           %s\n", cfg.Daemon.Addr)
	fmt.Printf("    Poll interval:    %ds\n", cfg.Daemon.IntervalSec)
	fmt.Printf("    Digest schedule:  %s\n", cfg.Daemon.DigestSchedule)
	if cfg.Daemon.LogFile != "" {
		fmt.Printf("    Log file:         %s\n", cfg.Daemon.LogFile)
	}
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme:            %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  [TUI]")
	fmt.Printf("    Auto refresh:     %v (every %ds)\n", cfg.TUI.AutoRefresh, cfg.TUI.RefreshIntervalSec)
	fmt.Println()

	if cfg.General.DataDir != "" {
		if ls := config.DetectLegacySettings(cfg.General.DataDir); ls.Found {
			fmt.Printf("  Legacy settings found in %s (%d income sources).\n", cfg.General.DataDir, len(ls.Sources))
			fmt.Println("  Run `goalpace import` to bring them in.")
			fmt.Println()
		}
	}

	fmt.Println("  Run `goalpace setup` to reconfigure.")
	return nil
}
