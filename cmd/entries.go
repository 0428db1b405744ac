package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/goalpace/internal/cli"
	"github.com/theirongolddev/goalpace/internal/pipeline"
	"github.com/theirongolddev/goalpace/internal/store"
)

var (
	flagEntriesFrom string
	flagEntriesTo   string
)

var entriesCmd = &cobra.Command{
	Use:   "entries",
	Short: "List entries (default: this month)",
	RunE:  runEntries,
}

var entriesDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete an entry",
	Args:  cobra.ExactArgs(1),
	RunE:  runEntriesDelete,
}

func init() {
	entriesCmd.Flags().StringVar(&flagEntriesFrom, "from", "", "First day (YYYY-MM-DD)")
	entriesCmd.Flags().StringVar(&flagEntriesTo, "to", "", "Last day (YYYY-MM-DD)")
	entriesCmd.AddCommand(entriesDeleteCmd)
	rootCmd.AddCommand(entriesCmd)
}

func runEntries(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	now, err := evalNow()
	if err != nil {
		return err
	}

	from, to := pipeline.ThisMonth(now)
	if flagEntriesFrom != "" {
		if from, err = parseDay(flagEntriesFrom); err != nil {
			return fmt.Errorf("--from: %w", err)
		}
	}
	if flagEntriesTo != "" {
		if to, err = parseDay(flagEntriesTo); err != nil {
			return fmt.Errorf("--to: %w", err)
		}
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	ctx := context.Background()
	entries, err := st.EntriesInRange(ctx, from, to)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("\n  No entries in range.")
		return nil
	}

	names := goalNames(ctx, st)
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			formatDay(e.Date),
			cli.FormatDayOfWeek(e.Date.Weekday()),
			e.Title,
			names[e.GoalID],
			cli.FormatAmount(e.Amount),
			cli.FormatPercent(e.Progress),
			e.Mood,
			e.ID,
		})
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   fmt.Sprintf("Entries %s to %s (%d)", formatDay(from), formatDay(to), len(entries)),
		Headers: []string{"Date", "Day", "Title", "Goal", "Amount", "Progress", "Mood", "ID"},
		Rows:    rows,
	}))
	return nil
}

func runEntriesDelete(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	if err := st.DeleteEntry(context.Background(), args[0]); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("entry %s not found", args[0])
		}
		return err
	}
	if !flagQuiet {
		fmt.Printf("  Deleted entry %s\n", args[0])
	}
	return nil
}

// goalNames maps goal IDs to names; lookup failures yield an empty map.
func goalNames(ctx context.Context, st *store.Store) map[string]string {
	names := make(map[string]string)
	goals, err := st.Goals(ctx)
	if err != nil {
		return names
	}
	for _, g := range goals {
		names[g.Base().ID] = g.Base().Name
	}
	return names
}
