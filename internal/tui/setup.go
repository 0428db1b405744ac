package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/goalpace/internal/config"
	"github.com/theirongolddev/goalpace/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

// SetupValues backs the setup form fields.
type SetupValues struct {
	Mode            string
	MonthlyTarget   string
	BehindThreshold string
	Currency        string
	Theme           string
}

// DefaultSetupValues seeds the form from cfg.
func DefaultSetupValues(cfg config.Config) SetupValues {
	return SetupValues{
		Mode:            cfg.Goal.Mode,
		MonthlyTarget:   strconv.FormatFloat(cfg.Goal.MonthlyTarget, 'f', -1, 64),
		BehindThreshold: strconv.FormatFloat(cfg.Goal.BehindThreshold, 'f', -1, 64),
		Currency:        cfg.Goal.Currency,
		Theme:           cfg.Appearance.Theme,
	}
}

// NewSetupForm builds the setup form bound to vals. It is shared by the
// dashboard's first run and the `setup` command.
func NewSetupForm(vals *SetupValues) *huh.Form {
	themeOpts := make([]huh.Option[string], 0, len(theme.All))
	for _, th := range theme.All {
		themeOpts = append(themeOpts, huh.NewOption(th.Name, th.Name))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to goalpace").
				Description("A few settings and you're ready.\nRun `goalpace setup` anytime to change them."),
			huh.NewSelect[string]().
				Title("Tracking mode").
				Options(
					huh.NewOption("Single goal: count days worked", config.ModeSingle),
					huh.NewOption("Multiple goals: track earnings per goal", config.ModeMulti),
				).
				Value(&vals.Mode),
			huh.NewInput().
				Title("Monthly target").
				Description("Entries per month for the single-goal schedule.").
				Value(&vals.MonthlyTarget).
				Validate(positiveNumber),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Behind threshold (%)").
				Description("Suggestions appear for goals below this completion rate.").
				Value(&vals.BehindThreshold).
				Validate(percent),
			huh.NewInput().
				Title("Currency symbol").
				Value(&vals.Currency).
				CharLimit(4),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(&vals.Theme),
		),
	).WithShowHelp(true)
}

func positiveNumber(s string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v <= 0 {
		return fmt.Errorf("enter a number greater than 0")
	}
	return nil
}

func percent(s string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v < 0 || v > 100 {
		return fmt.Errorf("enter a number from 0 to 100")
	}
	return nil
}

// ApplySetup copies form values into cfg. Invalid numbers keep the
// existing setting.
func ApplySetup(cfg *config.Config, vals SetupValues) {
	if vals.Mode == config.ModeSingle || vals.Mode == config.ModeMulti {
		cfg.Goal.Mode = vals.Mode
	}
	if v, err := strconv.ParseFloat(strings.TrimSpace(vals.MonthlyTarget), 64); err == nil && v > 0 {
		cfg.Goal.MonthlyTarget = v
	}
	if v, err := strconv.ParseFloat(strings.TrimSpace(vals.BehindThreshold), 64); err == nil && v >= 0 && v <= 100 {
		cfg.Goal.BehindThreshold = v
	}
	if c := strings.TrimSpace(vals.Currency); c != "" {
		cfg.Goal.Currency = c
	}
	if vals.Theme != "" {
		cfg.Appearance.Theme = theme.ByName(vals.Theme).Name
	}
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	switch a.setupForm.State {
	case huh.StateCompleted:
		vals := *a.setupVals
		ApplySetup(&a.cfg, vals)
		theme.SetActive(a.cfg.Appearance.Theme)
		// Best-effort; the settings apply to this session regardless.
		_ = a.persist(func(c *config.Config) { ApplySetup(c, vals) })
		a.needSetup = false
		a.setupForm = nil
		a.refreshing = true
		return a, refreshDataCmd(a.load, a.cfg, a.clock())
	case huh.StateAborted:
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	}
	return a, cmd
}
