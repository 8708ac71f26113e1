package localstore

import (
	"context"
	"database/sql"

	_ "modernc.org/sqlite"
)

// DB wraps the device-local SQLite database holding per-session state.
type DB struct {
	db *sql.DB
}

// Open opens (or creates) the local store at path and runs migrations.
// Use ":memory:" for tests.
func Open(ctx context.Context, path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	d := &DB{db: db}
	if err := d.migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return d, nil
}

func (d *DB) migrate(ctx context.Context) error {
	_, err := d.db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS local_state (
	session_id TEXT NOT NULL,
	key TEXT NOT NULL,
	value TEXT NOT NULL,
	updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	PRIMARY KEY (session_id, key)
);
`)
	return err
}

func (d *DB) Close() error {
	return d.db.Close()
}

func (d *DB) get(ctx context.Context, sessionID, key string) (string, error) {
	var value string
	err := d.db.QueryRowContext(ctx,
		`SELECT value FROM local_state WHERE session_id = ? AND key = ?`,
		sessionID, key,
	).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return value, err
}

func (d *DB) put(ctx context.Context, sessionID, key, value string) error {
	_, err := d.db.ExecContext(ctx, `
INSERT INTO local_state (session_id, key, value, updated_at)
VALUES (?, ?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(session_id, key) DO UPDATE SET
	value = excluded.value,
	updated_at = excluded.updated_at`,
		sessionID, key, value,
	)
	return err
}
