package cmd

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/theirongolddev/goalpace/internal/config"
	"github.com/theirongolddev/goalpace/internal/model"
	"github.com/theirongolddev/goalpace/internal/pipeline"
	"github.com/theirongolddev/goalpace/internal/store"
	"github.com/theirongolddev/goalpace/internal/tracker"
	"github.com/theirongolddev/goalpace/internal/tui"
)

func TestImportLegacyGoals(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "goalpace.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer func() { _ = st.Close() }()
	ctx := context.Background()

	ls := config.LegacySettings{Found: true, Sources: []config.LegacySource{
		{ID: "4", Name: "Articles", UnitPrice: 1500, MonthlyTarget: 20},
		{Name: "Free work", UnitPrice: 0, MonthlyTarget: 5},
		{Name: "  "},
	}}
	now := time.Date(2025, 4, 2, 9, 0, 0, 0, time.Local)

	added, err := importLegacyGoals(ctx, st, ls, now)
	if err != nil {
		t.Fatalf("importLegacyGoals: %v", err)
	}
	if len(added) != 1 || added[0] != "Articles" {
		t.Fatalf("added = %v, want [Articles]", added)
	}

	goals, err := st.Goals(ctx)
	if err != nil {
		t.Fatalf("Goals: %v", err)
	}
	if len(goals) != 1 {
		t.Fatalf("goals = %d, want 1", len(goals))
	}
	g := goals[0]
	if g.Kind() != model.KindFixedUnit {
		t.Errorf("Kind = %s, want fixed_unit", g.Kind())
	}
	if got := g.Base().TargetAmount.String(); got != "30000" {
		t.Errorf("TargetAmount = %s, want 30000", got)
	}
	if g.Base().ID != model.LegacyGoalID("4") {
		t.Errorf("ID = %q, want %q", g.Base().ID, model.LegacyGoalID("4"))
	}

	// Second run is a no-op, names match case-insensitively.
	ls.Sources[0].Name = "articles"
	added, err = importLegacyGoals(ctx, st, ls, now)
	if err != nil {
		t.Fatalf("second importLegacyGoals: %v", err)
	}
	if len(added) != 0 {
		t.Errorf("second run added %v, want none", added)
	}
}

func TestImportLegacyLogsLinkToGoals(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"income_sources.json": `[{"id": 1, "name": "Articles", "unit_price": 100, "monthly_target": 300}]`,
		"daily_logs.csv": "id,date,source_id,task_description,units_completed,progress_percent,mood_score,skip_reason,created_at\n" +
			"1,2025-06-05,1,Drafts,50,40,4,,2025-06-05 20:00:00\n",
		"goal_tracking.csv": "id,date,title,progress,feeling,reason,created_at\n" +
			"1,2025-06-10,Morning run,80,great,,2025-06-10T07:30:00\n",
	}
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600); err != nil {
			t.Fatal(err)
		}
	}

	st, err := store.Open(filepath.Join(t.TempDir(), "goalpace.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer func() { _ = st.Close() }()
	ctx := context.Background()
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.Local)

	if _, err := pipeline.ImportLogs(ctx, dir, st, false, nil); err != nil {
		t.Fatalf("ImportLogs: %v", err)
	}
	added, err := importLegacyGoals(ctx, st, config.DetectLegacySettings(dir), now)
	if err != nil {
		t.Fatalf("importLegacyGoals: %v", err)
	}
	if len(added) != 1 {
		t.Fatalf("added = %v, want [Articles]", added)
	}

	report, err := tracker.New(st, tracker.Settings{
		MonthlyTarget:   30,
		BehindThreshold: 70,
		MultiGoal:       true,
	}, nil).Report(ctx, now)
	if err != nil {
		t.Fatalf("Report: %v", err)
	}
	if report.TotalEntries != 2 {
		t.Errorf("TotalEntries = %d, want 2", report.TotalEntries)
	}
	if len(report.Goals) != 1 {
		t.Fatalf("goals = %d, want 1", len(report.Goals))
	}
	gp := report.Goals[0]
	if gp.GoalID != model.LegacyGoalID("1") || gp.EntryCount != 1 || gp.Earned != 5000 {
		t.Errorf("goal = %s with %d entries earning %.0f, want legacy-1 with 1 earning 5000",
			gp.GoalID, gp.EntryCount, gp.Earned)
	}
	if gp.Alert != model.AlertMedium {
		t.Errorf("Alert = %s, want medium", gp.Alert)
	}
	if report.Schedule.ActualEntries != 2 {
		t.Errorf("Schedule.ActualEntries = %d, want 2", report.Schedule.ActualEntries)
	}
}

func TestSeedFromLegacy(t *testing.T) {
	vals := tui.DefaultSetupValues(config.DefaultConfig())
	seedFromLegacy(&vals, config.LegacySettings{
		Found:         true,
		MonthlyTarget: 22,
		Currency:      "$",
		Sources:       []config.LegacySource{{Name: "Articles", UnitPrice: 10, MonthlyTarget: 3}},
	})
	if vals.MonthlyTarget != "22" {
		t.Errorf("MonthlyTarget = %q, want 22", vals.MonthlyTarget)
	}
	if vals.Currency != "$" {
		t.Errorf("Currency = %q, want $", vals.Currency)
	}
	if vals.Mode != config.ModeMulti {
		t.Errorf("Mode = %q, want %q", vals.Mode, config.ModeMulti)
	}
}

func TestParseDay(t *testing.T) {
	d, err := parseDay("2025-02-28")
	if err != nil {
		t.Fatalf("parseDay: %v", err)
	}
	if d.Day() != 28 || d.Month() != time.February {
		t.Errorf("parseDay = %v, want Feb 28", d)
	}
	if _, err := parseDay("28/02/2025"); err == nil {
		t.Error("parseDay should reject non-ISO dates")
	}
}
