package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/theirongolddev/goalpace/internal/model"
)

const entrySelect = `SELECT entry_id, date, title, amount, progress, mood, goal_id, note, source_file, created_at
	FROM entries`

// AddEntry stores e, assigning an ID and creation time when they are unset.
// The stored entry is returned.
func (s *Store) AddEntry(ctx context.Context, e model.Entry) (model.Entry, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	if err := insertEntry(ctx, s.db, e); err != nil {
		return model.Entry{}, err
	}
	return e, nil
}

// DeleteEntry removes one entry.
func (s *Store) DeleteEntry(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM entries WHERE entry_id = ?", id)
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
	return nil
}

// EntriesInRange returns entries dated within [start, end], oldest first.
func (s *Store) EntriesInRange(ctx context.Context, start, end time.Time) ([]model.Entry, error) {
	return queryEntries(ctx, s.db, entrySelect+" WHERE date BETWEEN ? AND ? ORDER BY date, created_at",
		start.Format(model.DateLayout), end.Format(model.DateLayout))
}

// EntriesOnDate returns entries logged on day.
func (s *Store) EntriesOnDate(ctx context.Context, day time.Time) ([]model.Entry, error) {
	return s.EntriesInRange(ctx, day, day)
}

// AllEntries returns every entry, oldest first.
func (s *Store) AllEntries(ctx context.Context) ([]model.Entry, error) {
	return queryEntries(ctx, s.db, entrySelect+" ORDER BY date, created_at")
}

// RecentEntries returns up to limit entries, newest first.
func (s *Store) RecentEntries(ctx context.Context, limit int) ([]model.Entry, error) {
	return queryEntries(ctx, s.db, entrySelect+" ORDER BY date DESC, created_at DESC LIMIT ?", limit)
}

// EntryCount returns the number of stored entries.
func (s *Store) EntryCount(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM entries").Scan(&count)
	return count, err
}

func insertEntry(ctx context.Context, q queryer, e model.Entry) error {
	created := e.CreatedAt
	if created.IsZero() {
		created = e.Date
	}
	_, err := q.ExecContext(ctx, `INSERT OR REPLACE INTO entries
		(entry_id, date, title, amount, progress, mood, goal_id, note, source_file, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.DateKey(), e.Title, e.Amount, e.Progress, e.Mood, e.GoalID, e.Note, e.Source,
		created.Format(timeLayout),
	)
	return err
}

func queryEntries(ctx context.Context, q queryer, query string, args ...any) ([]model.Entry, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var entries []model.Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func scanEntry(rows *sql.Rows) (model.Entry, error) {
	var e model.Entry
	var date, created string
	err := rows.Scan(&e.ID, &date, &e.Title, &e.Amount, &e.Progress, &e.Mood, &e.GoalID,
		&e.Note, &e.Source, &created)
	if err != nil {
		return e, err
	}
	// An unparseable date leaves Date zero; the engine skips such entries.
	e.Date, _ = time.ParseInLocation(model.DateLayout, date, time.Local)
	e.CreatedAt, _ = time.Parse(timeLayout, created)
	return e, nil
}
