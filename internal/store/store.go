// Package store provides SQLite persistence for entries, goals, and goal history.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/theirongolddev/goalpace/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store is the SQLite-backed entry and goal database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at dbPath.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Snapshot reads entries, goals, and goal history in one read transaction.
func (s *Store) Snapshot(ctx context.Context) (model.Dataset, error) {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return model.Dataset{}, err
	}
	defer func() { _ = tx.Rollback() }()

	var ds model.Dataset
	if ds.Entries, err = queryEntries(ctx, tx, entrySelect+" ORDER BY date, created_at"); err != nil {
		return ds, fmt.Errorf("reading entries: %w", err)
	}
	if ds.Goals, err = queryGoals(ctx, tx); err != nil {
		return ds, fmt.Errorf("reading goals: %w", err)
	}
	if ds.History, err = queryHistory(ctx, tx); err != nil {
		return ds, fmt.Errorf("reading goal history: %w", err)
	}
	return ds, tx.Commit()
}

// FileInfo holds the tracked mtime and size for an imported log file.
type FileInfo struct {
	MtimeNs    int64
	SizeBytes  int64
	EntryCount int
}

// TrackedFiles returns file_path -> FileInfo for every imported log file.
func (s *Store) TrackedFiles(ctx context.Context) (map[string]FileInfo, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT file_path, mtime_ns, size_bytes, entry_count FROM file_tracker")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	result := make(map[string]FileInfo)
	for rows.Next() {
		var path string
		var fi FileInfo
		if err := rows.Scan(&path, &fi.MtimeNs, &fi.SizeBytes, &fi.EntryCount); err != nil {
			return nil, err
		}
		result[path] = fi
	}
	return result, rows.Err()
}

// ReplaceFileEntries swaps every entry previously imported from path for
// entries and records the file's mtime and size.
func (s *Store) ReplaceFileEntries(ctx context.Context, path string, entries []model.Entry, mtimeNs, sizeBytes int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM entries WHERE source_file = ?", path); err != nil {
		return err
	}
	for _, e := range entries {
		e.Source = path
		if err := insertEntry(ctx, tx, e); err != nil {
			return fmt.Errorf("entry %s: %w", e.ID, err)
		}
	}

	_, err = tx.ExecContext(ctx, `INSERT OR REPLACE INTO file_tracker (file_path, mtime_ns, size_bytes, entry_count)
		VALUES (?, ?, ?, ?)`, path, mtimeNs, sizeBytes, len(entries))
	if err != nil {
		return err
	}
	return tx.Commit()
}

// ForgetFile removes a tracked file and the entries imported from it.
func (s *Store) ForgetFile(ctx context.Context, path string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM entries WHERE source_file = ?", path); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM file_tracker WHERE file_path = ?", path); err != nil {
		return err
	}
	return tx.Commit()
}

// queryer is satisfied by *sql.DB and *sql.Tx.
type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}
