// Package cmd implements the goalpace CLI commands.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/theirongolddev/goalpace/internal/cli"
	"github.com/theirongolddev/goalpace/internal/config"
	"github.com/theirongolddev/goalpace/internal/logging"
	"github.com/theirongolddev/goalpace/internal/model"
	"github.com/theirongolddev/goalpace/internal/store"
	"github.com/theirongolddev/goalpace/internal/tracker"
)

var (
	flagDB      string
	flagConfig  string
	flagDate    string
	flagQuiet   bool
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:   "goalpace",
	Short: "Monthly goal progress tracker",
	Long:  "Log daily work toward monthly goals and see schedule adherence, forecasts and catch-up suggestions.",
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		// .env is optional; a malformed one is reported.
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("loading .env: %w", err)
		}
		return nil
	},
	RunE:          runStatus,
	SilenceUsage:  true,
	SilenceErrors: false,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "Database path (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file (default "+config.ConfigPath()+")")
	rootCmd.PersistentFlags().StringVar(&flagDate, "date", "", "Evaluate as of this day (YYYY-MM-DD, default today)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output and warnings")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Debug logging")
}

// loadConfig reads the config file and applies env and flag overrides.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if err := config.ApplyEnv(&cfg); err != nil {
		return cfg, err
	}
	if flagDB != "" {
		cfg.General.DBPath = flagDB
	}
	return cfg, nil
}

func newLogger() *zap.Logger {
	return logging.New(logging.Options{Level: logging.LevelFor(flagQuiet, flagVerbose)})
}

// evalNow is the evaluation instant: --date at the current clock time, or now.
func evalNow() (time.Time, error) {
	now := time.Now()
	if flagDate == "" {
		return now, nil
	}
	day, err := parseDay(flagDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("--date: %w", err)
	}
	return time.Date(day.Year(), day.Month(), day.Day(),
		now.Hour(), now.Minute(), now.Second(), 0, time.Local), nil
}

func parseDay(s string) (time.Time, error) {
	return time.ParseInLocation(model.DateLayout, s, time.Local)
}

func openStore(cfg config.Config) (*store.Store, error) {
	st, err := store.Open(cfg.DBPath())
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	return st, nil
}

func trackerSettings(cfg config.Config) tracker.Settings {
	return tracker.Settings{
		MonthlyTarget:   cfg.Goal.MonthlyTarget,
		BehindThreshold: cfg.Goal.BehindThreshold,
		MultiGoal:       cfg.Goal.Mode == config.ModeMulti,
	}
}

// loadReport is the shared path used by the read-only commands.
func loadReport() (model.Report, config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return model.Report{}, cfg, err
	}
	now, err := evalNow()
	if err != nil {
		return model.Report{}, cfg, err
	}

	st, err := openStore(cfg)
	if err != nil {
		return model.Report{}, cfg, err
	}
	defer func() { _ = st.Close() }()

	log := newLogger()
	defer func() { _ = log.Sync() }()

	report, err := tracker.New(st, trackerSettings(cfg), log).Report(context.Background(), now)
	return report, cfg, err
}

func money(f float64, cfg config.Config) string {
	return cli.FormatMoneyFloat(f, cfg.Goal.Currency)
}
