package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/goalpace/internal/model"
)

const goalSelect = `SELECT goal_id, name, kind, description, target_amount, unit_price, created_at FROM goals`

// AddGoal stores g. A goal without an ID gets a new UUID; the stored goal is returned.
func (s *Store) AddGoal(ctx context.Context, g model.Goal) (model.Goal, error) {
	base := g.Base()
	if base.ID == "" {
		base.ID = uuid.NewString()
	}
	if base.CreatedAt.IsZero() {
		base.CreatedAt = time.Now()
	}
	stored, err := model.NewGoal(g.Kind(), base, model.UnitPriceOf(g))
	if err != nil {
		return nil, err
	}

	_, err = s.db.ExecContext(ctx, `INSERT INTO goals
		(goal_id, name, kind, description, target_amount, unit_price, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		base.ID, base.Name, string(stored.Kind()), base.Description,
		base.TargetAmount.String(), model.UnitPriceOf(stored).String(),
		base.CreatedAt.Format(timeLayout),
	)
	if err != nil {
		return nil, fmt.Errorf("inserting goal: %w", err)
	}
	return stored, nil
}

// UpdateGoalTarget changes a goal's target and records the change in goal history.
func (s *Store) UpdateGoalTarget(ctx context.Context, id string, target decimal.Decimal, at time.Time) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var old string
	err = tx.QueryRowContext(ctx, "SELECT target_amount FROM goals WHERE goal_id = ?", id).Scan(&old)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	oldTarget, err := decimal.NewFromString(old)
	if err != nil {
		return fmt.Errorf("stored target %q: %w", old, err)
	}
	if oldTarget.Equal(target) {
		return tx.Commit()
	}

	if _, err := tx.ExecContext(ctx, "UPDATE goals SET target_amount = ? WHERE goal_id = ?", target.String(), id); err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, `INSERT INTO goal_history (goal_id, old_target, new_target, changed_at)
		VALUES (?, ?, ?, ?)`, id, oldTarget.String(), target.String(), at.Format(timeLayout))
	if err != nil {
		return err
	}
	return tx.Commit()
}

// DeleteGoal removes a goal, its history, and every entry logged against it.
func (s *Store) DeleteGoal(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, "DELETE FROM goals WHERE goal_id = ?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM entries WHERE goal_id = ?", id); err != nil {
		return err
	}
	return tx.Commit()
}

// Goal returns one goal by ID.
func (s *Store) Goal(ctx context.Context, id string) (model.Goal, error) {
	row := s.db.QueryRowContext(ctx, goalSelect+" WHERE goal_id = ?", id)
	g, err := scanGoal(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return g, err
}

// Goals returns every goal ordered by creation time.
func (s *Store) Goals(ctx context.Context) ([]model.Goal, error) {
	return queryGoals(ctx, s.db)
}

// GoalHistory returns target changes for one goal, oldest first.
// An empty id returns the history of every goal.
func (s *Store) GoalHistory(ctx context.Context, id string) ([]model.GoalChange, error) {
	all, err := queryHistory(ctx, s.db)
	if err != nil || id == "" {
		return all, err
	}
	var out []model.GoalChange
	for _, c := range all {
		if c.GoalID == id {
			out = append(out, c)
		}
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGoal(row rowScanner) (model.Goal, error) {
	var base model.GoalBase
	var kind, target, price, created string
	if err := row.Scan(&base.ID, &base.Name, &kind, &base.Description, &target, &price, &created); err != nil {
		return nil, err
	}

	var err error
	if base.TargetAmount, err = decimal.NewFromString(target); err != nil {
		return nil, fmt.Errorf("goal %s target %q: %w", base.ID, target, err)
	}
	unitPrice, err := decimal.NewFromString(price)
	if err != nil {
		return nil, fmt.Errorf("goal %s unit price %q: %w", base.ID, price, err)
	}
	base.CreatedAt, _ = time.Parse(timeLayout, created)

	gk, err := model.ParseGoalKind(kind)
	if err != nil {
		return nil, err
	}
	return model.NewGoal(gk, base, unitPrice)
}

func queryGoals(ctx context.Context, q queryer) ([]model.Goal, error) {
	rows, err := q.QueryContext(ctx, goalSelect+" ORDER BY created_at, name")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var goals []model.Goal
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

func queryHistory(ctx context.Context, q queryer) ([]model.GoalChange, error) {
	rows, err := q.QueryContext(ctx, `SELECT goal_id, old_target, new_target, changed_at
		FROM goal_history ORDER BY changed_at, change_id`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var history []model.GoalChange
	for rows.Next() {
		var c model.GoalChange
		var oldT, newT, at string
		if err := rows.Scan(&c.GoalID, &oldT, &newT, &at); err != nil {
			return nil, err
		}
		var err error
		if c.OldTarget, err = decimal.NewFromString(oldT); err != nil {
			return nil, fmt.Errorf("goal %s history old target %q: %w", c.GoalID, oldT, err)
		}
		if c.NewTarget, err = decimal.NewFromString(newT); err != nil {
			return nil, fmt.Errorf("goal %s history new target %q: %w", c.GoalID, newT, err)
		}
		c.ChangedAt, _ = time.Parse(timeLayout, at)
		history = append(history, c)
	}
	return history, rows.Err()
}
