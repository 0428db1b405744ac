package model

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// GoalKind identifies how a goal converts logged amounts into earnings.
type GoalKind string

const (
	KindFixedUnit   GoalKind = "fixed_unit"
	KindDailyAmount GoalKind = "daily_amount"
	KindPassive     GoalKind = "passive"
)

var (
	ErrUnitPriceRequired = errors.New("fixed-unit goal requires a positive unit price")
	ErrUnknownGoalKind   = errors.New("unknown goal kind")
)

// ParseGoalKind accepts the canonical kind names plus the labels older logs use.
func ParseGoalKind(s string) (GoalKind, error) {
	switch s {
	case "fixed_unit", "fixed", "Fixed Unit":
		return KindFixedUnit, nil
	case "daily_amount", "daily", "Daily Input":
		return KindDailyAmount, nil
	case "passive", "Passive":
		return KindPassive, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownGoalKind, s)
}

// GoalBase holds the fields shared by every goal kind.
// TargetAmount is the monthly target in currency.
type GoalBase struct {
	ID           string
	Name         string
	Description  string
	TargetAmount decimal.Decimal
	CreatedAt    time.Time
}

// Goal is a monthly target. The set of implementations is closed:
// FixedUnitGoal, DailyAmountGoal and PassiveGoal.
type Goal interface {
	Base() GoalBase
	Kind() GoalKind
	// Convert turns a logged amount into earned currency.
	Convert(amount float64) decimal.Decimal
	isGoal()
}

// FixedUnitGoal earns UnitPrice for every logged unit.
type FixedUnitGoal struct {
	GoalBase
	UnitPrice decimal.Decimal
}

func (g FixedUnitGoal) Base() GoalBase { return g.GoalBase }
func (FixedUnitGoal) Kind() GoalKind   { return KindFixedUnit }
func (FixedUnitGoal) isGoal()          {}

func (g FixedUnitGoal) Convert(amount float64) decimal.Decimal {
	return decimal.NewFromFloat(amount).Mul(g.UnitPrice)
}

// TargetUnits is the target expressed in units.
func (g FixedUnitGoal) TargetUnits() decimal.Decimal {
	if !g.UnitPrice.IsPositive() {
		return decimal.Zero
	}
	return g.TargetAmount.Div(g.UnitPrice)
}

// DailyAmountGoal logs currency directly.
type DailyAmountGoal struct {
	GoalBase
}

func (g DailyAmountGoal) Base() GoalBase { return g.GoalBase }
func (DailyAmountGoal) Kind() GoalKind   { return KindDailyAmount }
func (DailyAmountGoal) isGoal()          {}

func (DailyAmountGoal) Convert(amount float64) decimal.Decimal {
	return decimal.NewFromFloat(amount)
}

// PassiveGoal logs currency directly, usually in occasional lump sums.
type PassiveGoal struct {
	GoalBase
}

func (g PassiveGoal) Base() GoalBase { return g.GoalBase }
func (PassiveGoal) Kind() GoalKind   { return KindPassive }
func (PassiveGoal) isGoal()          {}

func (PassiveGoal) Convert(amount float64) decimal.Decimal {
	return decimal.NewFromFloat(amount)
}

// NewGoal builds the variant for kind. unitPrice is only read for fixed-unit goals.
func NewGoal(kind GoalKind, base GoalBase, unitPrice decimal.Decimal) (Goal, error) {
	switch kind {
	case KindFixedUnit:
		if !unitPrice.IsPositive() {
			return nil, ErrUnitPriceRequired
		}
		return FixedUnitGoal{GoalBase: base, UnitPrice: unitPrice}, nil
	case KindDailyAmount:
		return DailyAmountGoal{GoalBase: base}, nil
	case KindPassive:
		return PassiveGoal{GoalBase: base}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownGoalKind, kind)
}

// LegacyGoalID is the goal ID given to an income source imported from an
// older installation, keyed by that source's numeric id.
func LegacyGoalID(sourceID string) string {
	return "legacy-" + sourceID
}

// UnitPriceOf returns the unit price for fixed-unit goals and zero otherwise.
func UnitPriceOf(g Goal) decimal.Decimal {
	if fu, ok := g.(FixedUnitGoal); ok {
		return fu.UnitPrice
	}
	return decimal.Zero
}

// GoalChange records one edit of a goal's target.
type GoalChange struct {
	GoalID    string
	OldTarget decimal.Decimal
	NewTarget decimal.Decimal
	ChangedAt time.Time
}
