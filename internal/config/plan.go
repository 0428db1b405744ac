package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// LegacySettings are values read from the JSON files an older installation
// kept next to its logs.
type LegacySettings struct {
	Found             bool
	MonthlyTarget     float64 // settings.json monthly_target
	MonthlyIncomeGoal float64 // app_settings.json monthly_income_goal
	Currency          string
	Sources           []LegacySource // income_sources.json
}

// LegacySource is one income source from income_sources.json. MonthlyTarget
// is in units; the currency target is MonthlyTarget * UnitPrice.
type LegacySource struct {
	ID            json.Number `json:"id"` // referenced by source_id in daily_logs.csv
	Name          string      `json:"name"`
	UnitPrice     float64     `json:"unit_price"`
	MonthlyTarget float64     `json:"monthly_target"`
	Description   string      `json:"description"`
}

// DetectLegacySettings reads settings.json, app_settings.json and
// income_sources.json from dir. Missing or unreadable files are ignored.
func DetectLegacySettings(dir string) LegacySettings {
	var ls LegacySettings

	var single struct {
		MonthlyTarget float64 `json:"monthly_target"`
	}
	if readJSON(filepath.Join(dir, "settings.json"), &single) {
		ls.Found = true
		ls.MonthlyTarget = single.MonthlyTarget
	}

	var multi struct {
		MonthlyIncomeGoal float64 `json:"monthly_income_goal"`
		Currency          string  `json:"currency"`
	}
	if readJSON(filepath.Join(dir, "app_settings.json"), &multi) {
		ls.Found = true
		ls.MonthlyIncomeGoal = multi.MonthlyIncomeGoal
		ls.Currency = currencySymbol(multi.Currency)
	}

	if readJSON(filepath.Join(dir, "income_sources.json"), &ls.Sources) {
		ls.Found = true
	}
	return ls
}

func readJSON(path string, v any) bool {
	data, err := os.ReadFile(path) //nolint:gosec // path is built from a user-chosen dir
	if err != nil {
		return false
	}
	return json.Unmarshal(data, v) == nil
}

func currencySymbol(name string) string {
	switch name {
	case "yen", "jpy", "JPY":
		return "¥"
	case "usd", "USD", "dollar":
		return "$"
	case "eur", "EUR", "euro":
		return "€"
	}
	return name
}
