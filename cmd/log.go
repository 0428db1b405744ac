package cmd

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/goalpace/internal/cli"
	"github.com/theirongolddev/goalpace/internal/model"
	"github.com/theirongolddev/goalpace/internal/store"
)

var (
	flagLogGoal     string
	flagLogAmount   float64
	flagLogProgress float64
	flagLogMood     string
	flagLogTitle    string
	flagLogNote     string
	flagLogOn       string
)

var logCmd = &cobra.Command{
	Use:   "log [TITLE]",
	Short: "Log an entry",
	Long: `Log one entry. Without --goal the entry counts toward the single monthly target.
With --goal, --amount is units for fixed-unit goals and currency for the others.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLog,
}

func init() {
	logCmd.Flags().StringVarP(&flagLogGoal, "goal", "g", "", "Goal ID or name")
	logCmd.Flags().Float64VarP(&flagLogAmount, "amount", "a", 1, "Units or currency amount")
	logCmd.Flags().Float64VarP(&flagLogProgress, "progress", "p", 0, "Self-reported progress percent")
	logCmd.Flags().StringVarP(&flagLogMood, "mood", "m", "", "Mood (1-5 or a label)")
	logCmd.Flags().StringVarP(&flagLogTitle, "title", "t", "", "What was done")
	logCmd.Flags().StringVar(&flagLogNote, "note", "", "Free-form note")
	logCmd.Flags().StringVar(&flagLogOn, "on", "", "Day of the entry (YYYY-MM-DD, default --date or today)")
	rootCmd.AddCommand(logCmd)
}

func runLog(_ *cobra.Command, args []string) error {
	if flagLogAmount < 0 {
		return fmt.Errorf("--amount must not be negative")
	}
	if flagLogProgress < 0 || flagLogProgress > 100 {
		return fmt.Errorf("--progress must be between 0 and 100")
	}
	if flagLogMood != "" {
		if v, err := strconv.ParseFloat(flagLogMood, 64); err == nil && (v < 1 || v > 5) {
			return fmt.Errorf("--mood must be between 1 and 5")
		}
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	day, err := evalNow()
	if err != nil {
		return err
	}
	if flagLogOn != "" {
		if day, err = parseDay(flagLogOn); err != nil {
			return fmt.Errorf("--on: %w", err)
		}
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	ctx := context.Background()
	title := flagLogTitle
	if len(args) == 1 {
		title = args[0]
	}

	e := model.Entry{
		Date:     model.Day(day),
		Title:    title,
		Amount:   flagLogAmount,
		Progress: flagLogProgress,
		Mood:     flagLogMood,
		Note:     flagLogNote,
	}

	var goal model.Goal
	if flagLogGoal != "" {
		if goal, err = findGoal(ctx, st, flagLogGoal); err != nil {
			return err
		}
		e.GoalID = goal.Base().ID
	}

	e, err = st.AddEntry(ctx, e)
	if err != nil {
		return fmt.Errorf("saving entry: %w", err)
	}

	if flagQuiet {
		return nil
	}
	fmt.Printf("  Logged %s on %s", entryLabel(e), e.DateKey())
	if goal != nil {
		fmt.Printf(" for %s (+%s)", goal.Base().Name,
			cli.FormatMoney(goal.Convert(e.Amount), cfg.Goal.Currency))
	}
	fmt.Printf("  %s\n", cli.RenderMuted(e.ID))
	return nil
}

func entryLabel(e model.Entry) string {
	if e.Title != "" {
		return strconv.Quote(e.Title)
	}
	return "entry"
}

// findGoal resolves a goal by ID, falling back to an exact name match.
func findGoal(ctx context.Context, st *store.Store, ref string) (model.Goal, error) {
	g, err := st.Goal(ctx, ref)
	if err == nil {
		return g, nil
	}
	goals, lerr := st.Goals(ctx)
	if lerr != nil {
		return nil, lerr
	}
	for _, g := range goals {
		if g.Base().Name == ref {
			return g, nil
		}
	}
	return nil, fmt.Errorf("goal %q: %w", ref, store.ErrNotFound)
}

func formatDay(t time.Time) string {
	return t.Format(model.DateLayout)
}
