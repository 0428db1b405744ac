package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/theirongolddev/goalpace/internal/config"
	"github.com/theirongolddev/goalpace/internal/model"
	"github.com/theirongolddev/goalpace/internal/pipeline"
	"github.com/theirongolddev/goalpace/internal/tui/components"

	tea "github.com/charmbracelet/bubbletea"
)

var testNow = time.Date(2025, 3, 15, 12, 0, 0, 0, time.Local)

func testData() Data {
	day := func(d int) time.Time { return time.Date(2025, 3, d, 0, 0, 0, 0, time.Local) }
	return Data{
		Report: model.Report{
			GeneratedAt:     testNow,
			Window:          model.MonthWindow(testNow),
			Schedule:        model.Schedule{Status: model.StatusBehind, Target: 30, ExpectedByToday: 14.5, ActualEntries: 10, DaysBehind: 4},
			MonthlyProgress: model.MonthlyProgress{TotalEntries: 10, MonthlyTarget: 30, CurrentDay: 15, DaysInMonth: 31},
			Days: []model.DailyProgress{
				{Date: day(1), Day: 1, Entries: 1, Cumulative: 1},
				{Date: day(2), Day: 2, Entries: 2, Cumulative: 3},
			},
			Goals: []model.GoalProgress{
				{GoalID: "g1", Name: "Tutoring", Kind: model.KindFixedUnit, Target: 3000, Earned: 900, ProgressPct: 30, ExpectedProgressPct: 48, Alert: model.AlertMedium,
					Recovery: &model.RecoveryPlan{Shortfall: 2100, CatchUpMultiplier: 2.5, DaysRemaining: 16, Likelihood: 40}},
				{GoalID: "g2", Name: "Savings", Kind: model.KindPassive, Target: 500, Earned: 300, ProgressPct: 60, ExpectedProgressPct: 48, Alert: model.AlertNone},
			},
		},
		Recent: []model.Entry{
			{ID: "e1", Date: day(14), Title: "Lesson", Amount: 2, GoalID: "g1"},
			{ID: "e2", Date: day(13), Title: "Lesson", Amount: 1, GoalID: "g1"},
			{ID: "e3", Date: day(12), Title: "Interest", Amount: 40, GoalID: "g2", Mood: "4"},
		},
		GoalNames: map[string]string{"g1": "Tutoring", "g2": "Savings"},
	}
}

func newTestApp(load Loader) App {
	return NewApp(Options{
		Load:   load,
		Config: config.DefaultConfig(),
		Clock:  func() time.Time { return testNow },
	})
}

func loadedApp(t *testing.T) App {
	t.Helper()
	a := newTestApp(nil)
	m, _ := a.Update(tea.WindowSizeMsg{Width: 140, Height: 45})
	m, _ = m.Update(DataLoadedMsg{Data: testData()})
	return m.(App)
}

func press(t *testing.T, a App, keys ...string) App {
	t.Helper()
	var m tea.Model = a
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "down", "up", "left", "right":
			msg = tea.KeyMsg{Type: map[string]tea.KeyType{
				"down": tea.KeyDown, "up": tea.KeyUp, "left": tea.KeyLeft, "right": tea.KeyRight,
			}[k]}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		m, _ = m.Update(msg)
	}
	return m.(App)
}

func TestTabAtXMatchesTabWidths(t *testing.T) {
	a := App{}
	pos := 0
	for i, tab := range components.Tabs {
		w := components.TabVisualWidth(tab)
		if got := a.tabAtX(pos + w/2); got != i {
			t.Fatalf("x=%d -> tab=%d, want %d", pos+w/2, got, i)
		}
		pos += w + 1
	}
	if got := a.tabAtX(pos + 50); got != -1 {
		t.Errorf("past the last tab = %d, want -1", got)
	}
}

func TestTabKeys(t *testing.T) {
	a := loadedApp(t)
	if a = press(t, a, "g"); a.activeTab != tabGoals {
		t.Fatalf("after g activeTab = %d, want %d", a.activeTab, tabGoals)
	}
	if a = press(t, a, "e"); a.activeTab != tabEntries {
		t.Fatalf("after e activeTab = %d, want %d", a.activeTab, tabEntries)
	}
	if a = press(t, a, "right"); a.activeTab != tabOverview {
		t.Fatalf("right from last tab = %d, want wrap to %d", a.activeTab, tabOverview)
	}
	if a = press(t, a, "left"); a.activeTab != tabEntries {
		t.Fatalf("left from first tab = %d, want wrap to %d", a.activeTab, tabEntries)
	}
}

func TestCursorClamps(t *testing.T) {
	a := press(t, loadedApp(t), "e", "j", "j", "j", "j")
	if a.entryCursor != 2 {
		t.Errorf("entryCursor = %d, want 2", a.entryCursor)
	}
	a = press(t, a, "k", "k", "k")
	if a.entryCursor != 0 {
		t.Errorf("entryCursor = %d, want 0", a.entryCursor)
	}

	a = press(t, a, "g", "down", "down")
	if a.goalCursor != 1 {
		t.Errorf("goalCursor = %d, want 1", a.goalCursor)
	}
}

func TestHelpClosesOnAnyKey(t *testing.T) {
	a := press(t, loadedApp(t), "?")
	if !a.showHelp {
		t.Fatal("? should open help")
	}
	a = press(t, a, "g")
	if a.showHelp {
		t.Error("any key should close help")
	}
	if a.activeTab != tabOverview {
		t.Errorf("closing help should not switch tabs, got %d", a.activeTab)
	}
}

func TestViewRendersEveryTab(t *testing.T) {
	a := loadedApp(t)
	for i := range components.Tabs {
		a.activeTab = i
		out := a.View()
		if out == "" {
			t.Fatalf("tab %d rendered nothing", i)
		}
		if lines := strings.Count(out, "\n") + 1; lines != 45 {
			t.Errorf("tab %d height = %d, want 45", i, lines)
		}
	}
}

func TestViewCompactLayout(t *testing.T) {
	a := loadedApp(t)
	m, _ := a.Update(tea.WindowSizeMsg{Width: 90, Height: 40})
	a = m.(App)
	for i := range components.Tabs {
		a.activeTab = i
		if a.View() == "" {
			t.Fatalf("tab %d rendered nothing", i)
		}
	}
}

func TestViewTooNarrow(t *testing.T) {
	a := newTestApp(nil)
	m, _ := a.Update(tea.WindowSizeMsg{Width: 50, Height: 20})
	if out := m.View(); !strings.Contains(out, "too narrow") {
		t.Errorf("View() = %q, want narrow-terminal notice", out)
	}
}

func TestLoadErrorIsShown(t *testing.T) {
	a := newTestApp(nil)
	m, _ := a.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m, _ = m.Update(DataLoadedMsg{Err: errors.New("database is locked")})
	if out := m.View(); !strings.Contains(out, "database is locked") {
		t.Error("load error should be rendered")
	}
}

func TestRefreshKeepsCursorInRange(t *testing.T) {
	a := press(t, loadedApp(t), "e", "j", "j")
	d := testData()
	d.Recent = d.Recent[:1]
	m, _ := a.Update(RefreshDataMsg{Data: d})
	if got := m.(App).entryCursor; got != 0 {
		t.Errorf("entryCursor = %d, want 0 after list shrank", got)
	}
}

func TestLoadDataCmdDeliversResult(t *testing.T) {
	load := func(_ context.Context, cfg config.Config, now time.Time, progress pipeline.ProgressFunc) (Data, error) {
		if !now.Equal(testNow) {
			t.Errorf("loader now = %v, want %v", now, testNow)
		}
		return testData(), nil
	}
	sub := make(chan tea.Msg, 1)
	msg := loadDataCmd(load, config.DefaultConfig(), testNow, sub)()
	loaded, ok := msg.(DataLoadedMsg)
	if !ok {
		t.Fatalf("msg = %T, want DataLoadedMsg", msg)
	}
	if len(loaded.Data.Recent) != 3 {
		t.Errorf("Recent = %d, want 3", len(loaded.Data.Recent))
	}
}

func TestApplySetup(t *testing.T) {
	cfg := config.DefaultConfig()
	ApplySetup(&cfg, SetupValues{
		Mode:            config.ModeMulti,
		MonthlyTarget:   "22",
		BehindThreshold: "bogus",
		Currency:        " $ ",
		Theme:           "tokyo-night",
	})
	if cfg.Goal.Mode != config.ModeMulti {
		t.Errorf("Mode = %q, want %q", cfg.Goal.Mode, config.ModeMulti)
	}
	if cfg.Goal.MonthlyTarget != 22 {
		t.Errorf("MonthlyTarget = %v, want 22", cfg.Goal.MonthlyTarget)
	}
	if cfg.Goal.BehindThreshold != 70 {
		t.Errorf("BehindThreshold = %v, want unchanged 70", cfg.Goal.BehindThreshold)
	}
	if cfg.Goal.Currency != "$" {
		t.Errorf("Currency = %q, want $", cfg.Goal.Currency)
	}
	if cfg.Appearance.Theme != "tokyo-night" {
		t.Errorf("Theme = %q, want tokyo-night", cfg.Appearance.Theme)
	}
}

func TestSetupValidators(t *testing.T) {
	if positiveNumber("0") == nil || positiveNumber("x") == nil {
		t.Error("positiveNumber should reject 0 and non-numbers")
	}
	if positiveNumber("12.5") != nil {
		t.Error("positiveNumber should accept 12.5")
	}
	if percent("101") == nil || percent("-1") == nil {
		t.Error("percent should reject values outside 0-100")
	}
	if percent("70") != nil {
		t.Error("percent should accept 70")
	}
}
