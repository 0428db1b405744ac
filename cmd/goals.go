package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/goalpace/internal/cli"
	"github.com/theirongolddev/goalpace/internal/model"
)

var (
	flagGoalKind      string
	flagGoalName      string
	flagGoalTarget    string
	flagGoalUnitPrice string
	flagGoalDesc      string
)

var goalsCmd = &cobra.Command{
	Use:   "goals",
	Short: "List and manage goals",
	RunE:  runGoalsList,
}

var goalsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a goal",
	RunE:  runGoalsAdd,
}

var goalsSetTargetCmd = &cobra.Command{
	Use:   "set-target GOAL AMOUNT",
	Short: "Change a goal's monthly target (recorded in goal history)",
	Args:  cobra.ExactArgs(2),
	RunE:  runGoalsSetTarget,
}

var goalsDeleteCmd = &cobra.Command{
	Use:   "delete GOAL",
	Short: "Delete a goal and its entries",
	Args:  cobra.ExactArgs(1),
	RunE:  runGoalsDelete,
}

var goalsHistoryCmd = &cobra.Command{
	Use:   "history [GOAL]",
	Short: "Show target changes",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runGoalsHistory,
}

func init() {
	goalsAddCmd.Flags().StringVarP(&flagGoalKind, "kind", "k", string(model.KindDailyAmount), "fixed_unit, daily_amount or passive")
	goalsAddCmd.Flags().StringVarP(&flagGoalName, "name", "n", "", "Goal name")
	goalsAddCmd.Flags().StringVar(&flagGoalTarget, "target", "", "Monthly target in currency")
	goalsAddCmd.Flags().StringVar(&flagGoalUnitPrice, "unit-price", "", "Price per unit (fixed_unit goals)")
	goalsAddCmd.Flags().StringVar(&flagGoalDesc, "description", "", "Description")
	_ = goalsAddCmd.MarkFlagRequired("name")
	_ = goalsAddCmd.MarkFlagRequired("target")

	goalsCmd.AddCommand(goalsAddCmd, goalsSetTargetCmd, goalsDeleteCmd, goalsHistoryCmd)
	rootCmd.AddCommand(goalsCmd)
}

func runGoalsList(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	goals, err := st.Goals(context.Background())
	if err != nil {
		return err
	}
	if len(goals) == 0 {
		fmt.Println("\n  No goals yet. Add one with `goalpace goals add`.")
		return nil
	}

	rows := make([][]string, 0, len(goals))
	for _, g := range goals {
		b := g.Base()
		price := ""
		if p := model.UnitPriceOf(g); p.IsPositive() {
			price = cli.FormatMoney(p, cfg.Goal.Currency)
		}
		rows = append(rows, []string{
			b.Name,
			string(g.Kind()),
			cli.FormatMoney(b.TargetAmount, cfg.Goal.Currency),
			price,
			b.ID,
		})
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Goals",
		Headers: []string{"Name", "Kind", "Target", "Unit price", "ID"},
		Rows:    rows,
	}))
	return nil
}

func runGoalsAdd(_ *cobra.Command, _ []string) error {
	kind, err := model.ParseGoalKind(flagGoalKind)
	if err != nil {
		return err
	}
	target, err := parseMoney("--target", flagGoalTarget)
	if err != nil {
		return err
	}
	unitPrice := decimal.Zero
	if flagGoalUnitPrice != "" {
		if unitPrice, err = parseMoney("--unit-price", flagGoalUnitPrice); err != nil {
			return err
		}
	}

	g, err := model.NewGoal(kind, model.GoalBase{
		Name:         flagGoalName,
		Description:  flagGoalDesc,
		TargetAmount: target,
	}, unitPrice)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	stored, err := st.AddGoal(context.Background(), g)
	if err != nil {
		return err
	}
	if !flagQuiet {
		fmt.Printf("  Added %s goal %q (%s)\n", stored.Kind(), stored.Base().Name, stored.Base().ID)
	}
	return nil
}

func runGoalsSetTarget(_ *cobra.Command, args []string) error {
	target, err := parseMoney("AMOUNT", args[1])
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	now, err := evalNow()
	if err != nil {
		return err
	}
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	ctx := context.Background()
	g, err := findGoal(ctx, st, args[0])
	if err != nil {
		return err
	}
	if err := st.UpdateGoalTarget(ctx, g.Base().ID, target, now); err != nil {
		return err
	}
	if !flagQuiet {
		fmt.Printf("  %s: %s -> %s\n", g.Base().Name,
			cli.FormatMoney(g.Base().TargetAmount, cfg.Goal.Currency),
			cli.FormatMoney(target, cfg.Goal.Currency))
	}
	return nil
}

func runGoalsDelete(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	ctx := context.Background()
	g, err := findGoal(ctx, st, args[0])
	if err != nil {
		return err
	}
	if err := st.DeleteGoal(ctx, g.Base().ID); err != nil {
		return err
	}
	if !flagQuiet {
		fmt.Printf("  Deleted goal %q and its entries\n", g.Base().Name)
	}
	return nil
}

func runGoalsHistory(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	ctx := context.Background()
	id := ""
	if len(args) == 1 {
		g, err := findGoal(ctx, st, args[0])
		if err != nil {
			return err
		}
		id = g.Base().ID
	}

	history, err := st.GoalHistory(ctx, id)
	if err != nil {
		return err
	}
	if len(history) == 0 {
		fmt.Println("\n  No target changes recorded.")
		return nil
	}

	names := goalNames(ctx, st)
	rows := make([][]string, 0, len(history))
	for _, c := range history {
		rows = append(rows, []string{
			c.ChangedAt.Local().Format(time.DateTime),
			names[c.GoalID],
			cli.FormatMoney(c.OldTarget, cfg.Goal.Currency),
			cli.FormatMoney(c.NewTarget, cfg.Goal.Currency),
		})
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Goal history",
		Headers: []string{"Changed", "Goal", "Old target", "New target"},
		Rows:    rows,
	}))
	return nil
}

func parseMoney(name, s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s: %q is not a number", name, s)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("%s must not be negative", name)
	}
	return d, nil
}
