package storage

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Conversion is one journaled conversion attempt.
type Conversion struct {
	ID        int64
	StartedAt time.Time
	Duration  time.Duration
	Path      string
	Sheet     string
	Matched   bool
	Rows      int
	Cols      int
	Outcome   string
	Error     string
	Source    string
}

// timestampLayout has a fixed width so started_at sorts lexicographically.
const timestampLayout = "2006-01-02T15:04:05.000000000Z"

type SQLiteStore struct {
	db *sql.DB
}

func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.ensureSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) ensureSchema() error {
	const schema = `
CREATE TABLE IF NOT EXISTS conversions (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	started_at TEXT NOT NULL,
	duration_ms INTEGER NOT NULL CHECK(duration_ms >= 0),
	path TEXT NOT NULL,
	sheet TEXT NOT NULL DEFAULT '',
	matched INTEGER NOT NULL DEFAULT 0,
	row_count INTEGER NOT NULL DEFAULT 0,
	col_count INTEGER NOT NULL DEFAULT 0,
	outcome TEXT NOT NULL,
	error TEXT NOT NULL DEFAULT '',
	source TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_conversions_started_at ON conversions(started_at);
`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// InsertConversion stores one entry and returns its row ID.
func (s *SQLiteStore) InsertConversion(entry Conversion) (int64, error) {
	const insertStmt = `
INSERT INTO conversions (
	started_at,
	duration_ms,
	path,
	sheet,
	matched,
	row_count,
	col_count,
	outcome,
	error,
	source
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`

	matched := 0
	if entry.Matched {
		matched = 1
	}

	res, err := s.db.Exec(
		insertStmt,
		entry.StartedAt.UTC().Format(timestampLayout),
		entry.Duration.Milliseconds(),
		entry.Path,
		entry.Sheet,
		matched,
		entry.Rows,
		entry.Cols,
		entry.Outcome,
		entry.Error,
		entry.Source,
	)
	if err != nil {
		return 0, fmt.Errorf("insert conversion: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("read inserted row id: %w", err)
	}
	return id, nil
}

// ListConversions returns the newest entries first. limit <= 0 returns all.
func (s *SQLiteStore) ListConversions(limit int) ([]Conversion, error) {
	query := `
SELECT
	id,
	started_at,
	duration_ms,
	path,
	sheet,
	matched,
	row_count,
	col_count,
	outcome,
	error,
	source
FROM conversions
ORDER BY started_at DESC, id DESC`
	args := []any{}
	if limit > 0 {
		query += "\nLIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.Query(query+";", args...)
	if err != nil {
		return nil, fmt.Errorf("query conversions: %w", err)
	}
	defer rows.Close()

	entries := make([]Conversion, 0, 64)
	for rows.Next() {
		var (
			entry      Conversion
			startedRaw string
			durationMS int64
			matched    int
		)
		if err := rows.Scan(
			&entry.ID,
			&startedRaw,
			&durationMS,
			&entry.Path,
			&entry.Sheet,
			&matched,
			&entry.Rows,
			&entry.Cols,
			&entry.Outcome,
			&entry.Error,
			&entry.Source,
		); err != nil {
			return nil, fmt.Errorf("scan conversion: %w", err)
		}

		startedAt, err := time.Parse(timestampLayout, startedRaw)
		if err != nil {
			return nil, fmt.Errorf("parse started_at for conversion %d: %w", entry.ID, err)
		}
		entry.StartedAt = startedAt
		entry.Duration = time.Duration(durationMS) * time.Millisecond
		entry.Matched = matched == 1
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate conversions: %w", err)
	}

	return entries, nil
}

// DeleteConversionsBefore prunes entries older than cutoff and returns how
// many rows were removed.
func (s *SQLiteStore) DeleteConversionsBefore(cutoff time.Time) (int64, error) {
	res, err := s.db.Exec(`DELETE FROM conversions WHERE started_at < ?;`, cutoff.UTC().Format(timestampLayout))
	if err != nil {
		return 0, fmt.Errorf("delete conversions: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("read deleted row count: %w", err)
	}
	return affected, nil
}
