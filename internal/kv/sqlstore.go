package kv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// SQLStore keeps blobs in a single kv_blobs table. It speaks the schema
// and placeholder dialect of the driver it was built with.
type SQLStore struct {
	db         *sql.DB
	getStmt    string
	setStmt    string
	deleteStmt string
}

// NewSQLStore creates the kv_blobs table if needed and returns a store
// for the given driver ("sqlite" or "pgx").
func NewSQLStore(ctx context.Context, db *sql.DB, driver string) (*SQLStore, error) {
	s := &SQLStore{db: db}

	var schema string

	switch driver {
	case "pgx", "postgres":
		schema = `CREATE TABLE IF NOT EXISTS kv_blobs (
			key   TEXT PRIMARY KEY,
			value BYTEA NOT NULL
		)`
		s.getStmt = `SELECT value FROM kv_blobs WHERE key = $1`
		s.setStmt = `INSERT INTO kv_blobs (key, value) VALUES ($1, $2)
			ON CONFLICT (key) DO UPDATE SET value = excluded.value`
		s.deleteStmt = `DELETE FROM kv_blobs WHERE key = $1`
	default:
		schema = `CREATE TABLE IF NOT EXISTS kv_blobs (
			key   TEXT PRIMARY KEY,
			value BLOB NOT NULL
		)`
		s.getStmt = `SELECT value FROM kv_blobs WHERE key = ?`
		s.setStmt = `INSERT INTO kv_blobs (key, value) VALUES (?, ?)
			ON CONFLICT (key) DO UPDATE SET value = excluded.value`
		s.deleteStmt = `DELETE FROM kv_blobs WHERE key = ?`
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		return nil, fmt.Errorf("creating kv schema: %w", err)
	}

	return s, nil
}

func (s *SQLStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte

	err := s.db.QueryRowContext(ctx, s.getStmt, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrKeyNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("reading blob %q: %w", key, err)
	}

	return value, nil
}

func (s *SQLStore) Set(ctx context.Context, key string, value []byte) error {
	if _, err := s.db.ExecContext(ctx, s.setStmt, key, value); err != nil {
		return fmt.Errorf("writing blob %q: %w", key, err)
	}

	return nil
}

func (s *SQLStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, s.deleteStmt, key); err != nil {
		return fmt.Errorf("deleting blob %q: %w", key, err)
	}

	return nil
}
