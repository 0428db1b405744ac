package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/theirongolddev/goalpace/internal/config"
	"github.com/theirongolddev/goalpace/internal/logging"
	"github.com/theirongolddev/goalpace/internal/pipeline"
	"github.com/theirongolddev/goalpace/internal/tracker"
	"github.com/theirongolddev/goalpace/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// recentLimit caps the Entries tab.
const recentLimit = 500

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive TUI dashboard",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if _, err := evalNow(); err != nil {
		return err
	}

	// Force TrueColor profile so all background styling produces ANSI codes
	lipgloss.SetColorProfile(termenv.TrueColor)

	// Console logging would corrupt the alt screen; keep only the file core.
	log := logging.New(logging.Options{
		Level:   logging.LevelFor(flagQuiet, flagVerbose),
		File:    cfg.Daemon.LogFile,
		Console: io.Discard,
	})
	defer func() { _ = log.Sync() }()

	app := tui.NewApp(tui.Options{
		Load:       dashboardLoader(log),
		Config:     cfg,
		ConfigPath: flagConfig,
		Clock: func() time.Time {
			now, _ := evalNow()
			return now
		},
		NeedSetup: !config.Exists(flagConfig),
	})
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

// dashboardLoader opens the store per load so a long-running dashboard
// never holds the database between refreshes.
func dashboardLoader(log *zap.Logger) tui.Loader {
	return func(ctx context.Context, cfg config.Config, now time.Time, progress pipeline.ProgressFunc) (tui.Data, error) {
		st, err := openStore(cfg)
		if err != nil {
			return tui.Data{}, err
		}
		defer func() { _ = st.Close() }()

		var d tui.Data
		if dir := cfg.General.DataDir; dir != "" {
			if _, statErr := os.Stat(dir); statErr == nil {
				res, err := pipeline.ImportLogs(ctx, dir, st, false, progress)
				if err != nil {
					log.Warn("log import failed", zap.String("dir", dir), zap.Error(err))
				} else {
					d.Imported = res.Reparsed
				}
			}
		}

		d.Report, err = tracker.New(st, trackerSettings(cfg), log).Report(ctx, now)
		if err != nil {
			return d, err
		}
		if d.Recent, err = st.RecentEntries(ctx, recentLimit); err != nil {
			return d, fmt.Errorf("loading entries: %w", err)
		}
		d.GoalNames = goalNames(ctx, st)
		return d, nil
	}
}
