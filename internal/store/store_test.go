package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/goalpace/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "goalpace.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.ParseInLocation(model.DateLayout, s, time.Local)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return d
}

func TestAddAndQueryEntries(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for _, d := range []string{"2025-06-01", "2025-06-02", "2025-06-10"} {
		if _, err := s.AddEntry(ctx, model.Entry{Date: day(t, d), Title: "write", Amount: 1, Progress: 80, Mood: "4"}); err != nil {
			t.Fatalf("AddEntry: %v", err)
		}
	}

	got, err := s.EntriesInRange(ctx, day(t, "2025-06-01"), day(t, "2025-06-02"))
	if err != nil {
		t.Fatalf("EntriesInRange: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("EntriesInRange len = %d, want 2", len(got))
	}
	if got[0].DateKey() != "2025-06-01" || got[0].Progress != 80 || got[0].Mood != "4" {
		t.Errorf("first entry = %+v", got[0])
	}
	if got[0].ID == "" {
		t.Error("entry ID not assigned")
	}

	onDay, err := s.EntriesOnDate(ctx, day(t, "2025-06-10"))
	if err != nil {
		t.Fatalf("EntriesOnDate: %v", err)
	}
	if len(onDay) != 1 {
		t.Errorf("EntriesOnDate len = %d, want 1", len(onDay))
	}

	n, err := s.EntryCount(ctx)
	if err != nil || n != 3 {
		t.Errorf("EntryCount = %d, %v; want 3", n, err)
	}

	if err := s.DeleteEntry(ctx, got[0].ID); err != nil {
		t.Fatalf("DeleteEntry: %v", err)
	}
	if err := s.DeleteEntry(ctx, got[0].ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second DeleteEntry err = %v, want ErrNotFound", err)
	}
}

func TestGoalRoundTripAndHistory(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	g, err := model.NewGoal(model.KindFixedUnit, model.GoalBase{
		Name:         "Articles",
		TargetAmount: decimal.NewFromInt(30000),
	}, decimal.NewFromInt(100))
	if err != nil {
		t.Fatalf("NewGoal: %v", err)
	}
	stored, err := s.AddGoal(ctx, g)
	if err != nil {
		t.Fatalf("AddGoal: %v", err)
	}
	id := stored.Base().ID

	loaded, err := s.Goal(ctx, id)
	if err != nil {
		t.Fatalf("Goal: %v", err)
	}
	fu, ok := loaded.(model.FixedUnitGoal)
	if !ok {
		t.Fatalf("loaded goal type = %T, want FixedUnitGoal", loaded)
	}
	if !fu.UnitPrice.Equal(decimal.NewFromInt(100)) || !fu.TargetAmount.Equal(decimal.NewFromInt(30000)) {
		t.Errorf("loaded goal = %+v", fu)
	}

	changedAt := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	if err := s.UpdateGoalTarget(ctx, id, decimal.NewFromInt(40000), changedAt); err != nil {
		t.Fatalf("UpdateGoalTarget: %v", err)
	}
	// Same target again: no history row.
	if err := s.UpdateGoalTarget(ctx, id, decimal.NewFromInt(40000), changedAt.Add(time.Hour)); err != nil {
		t.Fatalf("UpdateGoalTarget: %v", err)
	}

	hist, err := s.GoalHistory(ctx, id)
	if err != nil {
		t.Fatalf("GoalHistory: %v", err)
	}
	if len(hist) != 1 {
		t.Fatalf("history len = %d, want 1", len(hist))
	}
	if !hist[0].OldTarget.Equal(decimal.NewFromInt(30000)) || !hist[0].NewTarget.Equal(decimal.NewFromInt(40000)) {
		t.Errorf("history = %+v", hist[0])
	}
	if !hist[0].ChangedAt.Equal(changedAt) {
		t.Errorf("ChangedAt = %v, want %v", hist[0].ChangedAt, changedAt)
	}

	if err := s.UpdateGoalTarget(ctx, "missing", decimal.NewFromInt(1), changedAt); !errors.Is(err, ErrNotFound) {
		t.Errorf("UpdateGoalTarget(missing) err = %v, want ErrNotFound", err)
	}
}

func TestGoalHistoryRejectsCorruptTarget(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	g, err := model.NewGoal(model.KindDailyAmount, model.GoalBase{
		Name:         "Tutoring",
		TargetAmount: decimal.NewFromInt(500),
	}, decimal.Zero)
	if err != nil {
		t.Fatalf("NewGoal: %v", err)
	}
	stored, err := s.AddGoal(ctx, g)
	if err != nil {
		t.Fatalf("AddGoal: %v", err)
	}
	id := stored.Base().ID

	_, err = s.db.ExecContext(ctx, `INSERT INTO goal_history (goal_id, old_target, new_target, changed_at)
		VALUES (?, ?, ?, ?)`, id, "500", "five hundred", time.Now().Format(timeLayout))
	if err != nil {
		t.Fatalf("insert history: %v", err)
	}

	if _, err := s.GoalHistory(ctx, id); err == nil {
		t.Error("GoalHistory accepted a non-numeric target")
	}
	if _, err := s.Snapshot(ctx); err == nil {
		t.Error("Snapshot accepted a non-numeric history target")
	}
}

func TestDeleteGoalRemovesEntriesAndHistory(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	g, _ := model.NewGoal(model.KindDailyAmount, model.GoalBase{Name: "Tutoring", TargetAmount: decimal.NewFromInt(500)}, decimal.Zero)
	stored, err := s.AddGoal(ctx, g)
	if err != nil {
		t.Fatalf("AddGoal: %v", err)
	}
	id := stored.Base().ID

	if _, err := s.AddEntry(ctx, model.Entry{Date: day(t, "2025-06-03"), Amount: 40, GoalID: id}); err != nil {
		t.Fatalf("AddEntry: %v", err)
	}
	if _, err := s.AddEntry(ctx, model.Entry{Date: day(t, "2025-06-03"), Amount: 1}); err != nil {
		t.Fatalf("AddEntry: %v", err)
	}
	if err := s.UpdateGoalTarget(ctx, id, decimal.NewFromInt(600), time.Now()); err != nil {
		t.Fatalf("UpdateGoalTarget: %v", err)
	}

	if err := s.DeleteGoal(ctx, id); err != nil {
		t.Fatalf("DeleteGoal: %v", err)
	}

	ds, err := s.Snapshot(ctx)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if len(ds.Goals) != 0 {
		t.Errorf("goals after delete = %d, want 0", len(ds.Goals))
	}
	if len(ds.Entries) != 1 {
		t.Errorf("entries after delete = %d, want 1", len(ds.Entries))
	}
	if len(ds.History) != 0 {
		t.Errorf("history after delete = %d, want 0", len(ds.History))
	}

	if err := s.DeleteGoal(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Errorf("second DeleteGoal err = %v, want ErrNotFound", err)
	}
}

func TestReplaceFileEntries(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	path := "/logs/june.csv"

	first := []model.Entry{
		{ID: "a", Date: day(t, "2025-06-01"), Amount: 1},
		{ID: "b", Date: day(t, "2025-06-02"), Amount: 1},
	}
	if err := s.ReplaceFileEntries(ctx, path, first, 100, 2048); err != nil {
		t.Fatalf("ReplaceFileEntries: %v", err)
	}

	second := []model.Entry{{ID: "c", Date: day(t, "2025-06-03"), Amount: 1}}
	if err := s.ReplaceFileEntries(ctx, path, second, 200, 4096); err != nil {
		t.Fatalf("ReplaceFileEntries: %v", err)
	}

	all, err := s.AllEntries(ctx)
	if err != nil {
		t.Fatalf("AllEntries: %v", err)
	}
	if len(all) != 1 || all[0].ID != "c" || all[0].Source != path {
		t.Errorf("entries = %+v, want only c from %s", all, path)
	}

	tracked, err := s.TrackedFiles(ctx)
	if err != nil {
		t.Fatalf("TrackedFiles: %v", err)
	}
	fi, ok := tracked[path]
	if !ok {
		t.Fatalf("file %s not tracked", path)
	}
	if fi.MtimeNs != 200 || fi.SizeBytes != 4096 || fi.EntryCount != 1 {
		t.Errorf("FileInfo = %+v", fi)
	}

	if err := s.ForgetFile(ctx, path); err != nil {
		t.Fatalf("ForgetFile: %v", err)
	}
	if n, _ := s.EntryCount(ctx); n != 0 {
		t.Errorf("EntryCount after ForgetFile = %d, want 0", n)
	}
}

func TestRecentEntriesNewestFirst(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for _, d := range []string{"2025-06-05", "2025-06-01", "2025-06-09"} {
		if _, err := s.AddEntry(ctx, model.Entry{Date: day(t, d), Title: d, Amount: 1}); err != nil {
			t.Fatalf("AddEntry: %v", err)
		}
	}

	got, err := s.RecentEntries(ctx, 2)
	if err != nil {
		t.Fatalf("RecentEntries: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].DateKey() != "2025-06-09" || got[1].DateKey() != "2025-06-05" {
		t.Errorf("order = %s, %s; want 2025-06-09, 2025-06-05", got[0].DateKey(), got[1].DateKey())
	}
}
