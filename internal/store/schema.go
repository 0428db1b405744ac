package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS goals (
    goal_id              TEXT PRIMARY KEY,
    name                 TEXT NOT NULL,
    kind                 TEXT NOT NULL,
    description          TEXT NOT NULL DEFAULT '',
    target_amount        TEXT NOT NULL,
    unit_price           TEXT NOT NULL DEFAULT '0',
    created_at           TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS entries (
    entry_id             TEXT PRIMARY KEY,
    date                 TEXT NOT NULL,
    title                TEXT NOT NULL DEFAULT '',
    amount               REAL NOT NULL DEFAULT 1,
    progress             REAL NOT NULL DEFAULT 0,
    mood                 TEXT NOT NULL DEFAULT '',
    goal_id              TEXT NOT NULL DEFAULT '',
    note                 TEXT NOT NULL DEFAULT '',
    source_file          TEXT NOT NULL DEFAULT '',
    created_at           TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS goal_history (
    change_id            INTEGER PRIMARY KEY AUTOINCREMENT,
    goal_id              TEXT NOT NULL REFERENCES goals(goal_id) ON DELETE CASCADE,
    old_target           TEXT NOT NULL,
    new_target           TEXT NOT NULL,
    changed_at           TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS file_tracker (
    file_path            TEXT PRIMARY KEY,
    mtime_ns             INTEGER NOT NULL,
    size_bytes           INTEGER NOT NULL,
    entry_count          INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_entries_date ON entries(date);
CREATE INDEX IF NOT EXISTS idx_entries_goal ON entries(goal_id);
CREATE INDEX IF NOT EXISTS idx_entries_source ON entries(source_file);
CREATE INDEX IF NOT EXISTS idx_goal_history_goal ON goal_history(goal_id, changed_at);
`
