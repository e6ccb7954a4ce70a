package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

// SQLite is a Store backed by a single database file.
type SQLite struct {
	conn *sql.DB
}

// OpenSQLite opens (or creates) the database at path.
func OpenSQLite(path string) (*SQLite, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("enable wal: %w", err)
	}

	db := &SQLite{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

func (db *SQLite) Close() error {
	return db.conn.Close()
}

func (db *SQLite) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value BLOB NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS results (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		mode TEXT NOT NULL,
		outcome TEXT NOT NULL,
		score INTEGER NOT NULL DEFAULT 0,
		layers_cleared INTEGER NOT NULL DEFAULT 0,
		level INTEGER NOT NULL DEFAULT 1,
		pieces_placed INTEGER NOT NULL DEFAULT 0,
		ticks INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_results_score ON results(score DESC);
	`
	_, err := db.conn.Exec(schema)
	return err
}

func (db *SQLite) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := db.conn.QueryRowContext(ctx, "SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %q: %w", key, err)
	}
	return value, nil
}

func (db *SQLite) Set(ctx context.Context, key string, value []byte) error {
	_, err := db.conn.ExecContext(ctx, `
		INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	return nil
}

// RecordResult stores a finished game and returns its ID.
func (db *SQLite) RecordResult(ctx context.Context, r Result) (int64, error) {
	res, err := db.conn.ExecContext(ctx,
		`INSERT INTO results (mode, outcome, score, layers_cleared, level, pieces_placed, ticks)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.Mode, r.Outcome, r.Score, r.LayersCleared, r.Level, r.PiecesPlaced, int64(r.Ticks),
	)
	if err != nil {
		return 0, fmt.Errorf("record result: %w", err)
	}
	return res.LastInsertId()
}

// TopResults returns the best games by score, oldest first among ties.
func (db *SQLite) TopResults(ctx context.Context, limit int) ([]Result, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT id, mode, outcome, score, layers_cleared, level, pieces_placed, ticks, created_at
		FROM results
		ORDER BY score DESC, id ASC
		LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("top results: %w", err)
	}
	defer rows.Close()

	var result []Result
	for rows.Next() {
		var r Result
		var ticks int64
		if err := rows.Scan(&r.ID, &r.Mode, &r.Outcome, &r.Score, &r.LayersCleared, &r.Level, &r.PiecesPlaced, &ticks, &r.CreatedAt); err != nil {
			return nil, err
		}
		r.Ticks = uint64(ticks)
		result = append(result, r)
	}
	return result, rows.Err()
}
