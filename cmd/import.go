package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/theirongolddev/goalpace/internal/cli"
	"github.com/theirongolddev/goalpace/internal/config"
	"github.com/theirongolddev/goalpace/internal/model"
	"github.com/theirongolddev/goalpace/internal/pipeline"
	"github.com/theirongolddev/goalpace/internal/store"
)

var flagImportFull bool

var importCmd = &cobra.Command{
	Use:   "import [DIR]",
	Short: "Import entry logs and legacy goals from a directory",
	Long: "Parses .csv, .jsonl and .ndjson entry logs under DIR (default: general.data_dir).\n" +
		"Unchanged files are skipped unless --full is given. Income sources found in\n" +
		"income_sources.json are added as fixed-unit goals.",
	Args: cobra.MaximumNArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().BoolVar(&flagImportFull, "full", false, "Re-parse every file")
	rootCmd.AddCommand(importCmd)
}

func runImport(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	dir := cfg.General.DataDir
	if len(args) == 1 {
		dir = args[0]
	}
	if dir == "" {
		return errors.New("no directory given and general.data_dir is not set")
	}
	if _, err := os.Stat(dir); err != nil {
		return fmt.Errorf("log directory: %w", err)
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	log := newLogger()
	defer func() { _ = log.Sync() }()
	ctx := context.Background()

	start := time.Now()
	var progressFn pipeline.ProgressFunc
	if !flagQuiet {
		progressFn = func(current, total int) {
			fmt.Fprintf(os.Stderr, "\r  Parsing [%d/%d] files", current, total)
		}
	}

	res, err := pipeline.ImportLogs(ctx, dir, st, flagImportFull, progressFn)
	if progressFn != nil && res != nil && res.Reparsed > 0 {
		fmt.Fprintln(os.Stderr)
	}
	if err != nil {
		return err
	}
	log.Debug("import finished",
		zap.String("dir", dir),
		zap.Int("files", res.TotalFiles),
		zap.Int("reparsed", res.Reparsed),
		zap.Duration("elapsed", time.Since(start)))

	fmt.Println()
	fmt.Println(cli.RenderTitle("IMPORT  " + dir))
	fmt.Println()
	fmt.Println(cli.RenderKV("Files", fmt.Sprintf("%d (%d unchanged, %d parsed)", res.TotalFiles, res.Unchanged, res.ParsedFiles)))
	fmt.Println(cli.RenderKV("Entries", cli.FormatNumber(int64(len(res.Entries)))))
	if res.Removed > 0 {
		fmt.Println(cli.RenderKV("Removed files", fmt.Sprintf("%d", res.Removed)))
	}
	if res.ParseErrors > 0 || res.FileErrors > 0 {
		fmt.Println(cli.RenderKV("Skipped", fmt.Sprintf("%d bad records, %d unreadable files", res.ParseErrors, res.FileErrors)))
		log.Warn("import skipped malformed input",
			zap.Int("records", res.ParseErrors), zap.Int("files", res.FileErrors))
	}

	added, err := importLegacyGoals(ctx, st, config.DetectLegacySettings(dir), time.Now())
	if err != nil {
		return err
	}
	if len(added) > 0 {
		fmt.Println(cli.RenderKV("Goals added", strings.Join(added, ", ")))
		if cfg.Goal.Mode != config.ModeMulti {
			fmt.Println(cli.RenderMuted("  Set goal.mode = \"multi\" (goalpace setup) to count goal entries toward the schedule."))
		}
	}
	fmt.Println()
	return nil
}

// importLegacyGoals adds each legacy income source as a fixed-unit goal
// whose currency target is units times unit price. The goal ID is derived
// from the source id so imported daily logs point at it. Sources whose ID
// or name already exists, and sources without a unit price, are left alone.
func importLegacyGoals(ctx context.Context, st *store.Store, ls config.LegacySettings, now time.Time) ([]string, error) {
	if len(ls.Sources) == 0 {
		return nil, nil
	}
	ids := make(map[string]struct{})
	names := make(map[string]struct{})
	for id, name := range goalNames(ctx, st) {
		ids[id] = struct{}{}
		names[strings.ToLower(name)] = struct{}{}
	}

	var added []string
	for _, src := range ls.Sources {
		name := strings.TrimSpace(src.Name)
		if name == "" {
			continue
		}
		var id string
		if src.ID != "" {
			id = model.LegacyGoalID(src.ID.String())
		}
		if _, ok := names[strings.ToLower(name)]; ok {
			continue
		}
		if _, ok := ids[id]; ok {
			continue
		}
		price := decimal.NewFromFloat(src.UnitPrice)
		if !price.IsPositive() {
			continue
		}
		g, err := model.NewGoal(model.KindFixedUnit, model.GoalBase{
			ID:           id,
			Name:         name,
			Description:  src.Description,
			TargetAmount: price.Mul(decimal.NewFromFloat(src.MonthlyTarget)),
			CreatedAt:    now,
		}, price)
		if err != nil {
			return added, fmt.Errorf("legacy source %q: %w", name, err)
		}
		if _, err := st.AddGoal(ctx, g); err != nil {
			return added, fmt.Errorf("adding goal %q: %w", name, err)
		}
		names[strings.ToLower(name)] = struct{}{}
		if id != "" {
			ids[id] = struct{}{}
		}
		added = append(added, name)
	}
	return added, nil
}
