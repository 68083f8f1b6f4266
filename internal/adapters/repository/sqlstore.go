package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // pure-Go sqlite driver
)

// SQLStore implements Store on a single-table SQLite database. It is the
// persistent deployment option; MemStore covers tests and ephemeral runs.
type SQLStore struct {
	db *sql.DB
}

// NewSQLStore opens (creating if needed) the SQLite database at path and
// ensures the kv table exists.
func NewSQLStore(ctx context.Context, path string) (*SQLStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	// SQLite handles one writer at a time; serialize access through a
	// single connection instead of relying on busy timeouts.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS kv (
			k TEXT PRIMARY KEY,
			v BLOB NOT NULL
		)
	`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create kv table: %w", err)
	}

	return &SQLStore{db: db}, nil
}

// Get implements Store.
func (s *SQLStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	defer observe("get", time.Now())
	if key == "" {
		return nil, false, ErrEmptyKey
	}

	var v []byte
	err := s.db.QueryRowContext(ctx, `SELECT v FROM kv WHERE k = ?`, key).Scan(&v)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get %q: %w", key, err)
	}
	return v, true, nil
}

// Put implements Store.
func (s *SQLStore) Put(ctx context.Context, key string, value []byte) error {
	defer observe("put", time.Now())
	if key == "" {
		return ErrEmptyKey
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO kv (k, v) VALUES (?, ?) ON CONFLICT(k) DO UPDATE SET v = excluded.v`,
		key, value)
	if err != nil {
		return fmt.Errorf("put %q: %w", key, err)
	}
	return nil
}

// PutIfAbsent implements Store. The primary key constraint makes the
// insert-or-ignore race-free: of two concurrent writers, exactly one
// observes an affected row.
func (s *SQLStore) PutIfAbsent(ctx context.Context, key string, value []byte) (bool, error) {
	defer observe("put_if_absent", time.Now())
	if key == "" {
		return false, ErrEmptyKey
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO kv (k, v) VALUES (?, ?) ON CONFLICT(k) DO NOTHING`,
		key, value)
	if err != nil {
		return false, fmt.Errorf("put-if-absent %q: %w", key, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("put-if-absent %q: %w", key, err)
	}
	return n > 0, nil
}

// Delete implements Store.
func (s *SQLStore) Delete(ctx context.Context, key string) error {
	defer observe("delete", time.Now())
	if key == "" {
		return ErrEmptyKey
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE k = ?`, key); err != nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	return nil
}

// List implements Store. Prefixes are internal key-scheme constants, never
// user input, so a LIKE pattern is safe here.
func (s *SQLStore) List(ctx context.Context, prefix string) ([]KV, error) {
	defer observe("list", time.Now())

	rows, err := s.db.QueryContext(ctx,
		`SELECT k, v FROM kv WHERE k LIKE ? || '%' ORDER BY k`, prefix)
	if err != nil {
		return nil, fmt.Errorf("list %q: %w", prefix, err)
	}
	defer rows.Close()

	var out []KV
	for rows.Next() {
		var kv KV
		if err := rows.Scan(&kv.Key, &kv.Value); err != nil {
			return nil, fmt.Errorf("list %q: %w", prefix, err)
		}
		out = append(out, kv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list %q: %w", prefix, err)
	}
	return out, nil
}

// Close implements Store.
func (s *SQLStore) Close() error {
	return s.db.Close()
}
