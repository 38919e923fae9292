package store

import (
	"context"
	"database/sql"
	"fmt"
)

// KV is a string key-value store persisted in the kv table.
type KV struct {
	DB *sql.DB
}

// NewKV returns a KV backed by the given database.
func NewKV(db *sql.DB) *KV {
	return &KV{DB: db}
}

// Get returns the value stored under key. The boolean is false if the key is absent.
func (s *KV) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.DB.QueryRowContext(ctx,
		`SELECT value FROM kv WHERE key = ?`, key,
	).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("getting %s: %w", key, err)
	}
	return value, true, nil
}

// Set stores value under key, replacing any previous value.
func (s *KV) Set(ctx context.Context, key, value string) error {
	_, err := s.DB.ExecContext(ctx,
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("setting %s: %w", key, err)
	}
	return nil
}

// Remove deletes key. Removing an absent key is not an error.
func (s *KV) Remove(ctx context.Context, key string) error {
	_, err := s.DB.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("removing %s: %w", key, err)
	}
	return nil
}

// Clear deletes every key.
func (s *KV) Clear(ctx context.Context) error {
	_, err := s.DB.ExecContext(ctx, `DELETE FROM kv`)
	if err != nil {
		return fmt.Errorf("clearing store: %w", err)
	}
	return nil
}
