package store

import (
	"database/sql"
	"fmt"
	"time"
)

// Storage keys. These are the only names the client persists; they mirror
// the backend contract and are deliberately not namespaced.
const (
	KeySessionToken = "token"
	KeyRefreshToken = "refreshToken"
	KeyAuthCode     = "code"
)

// Store is the persisted key/value credential store.
type Store struct {
	db *sql.DB
}

// New creates a Store over an open database connection.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Get retrieves the value for name. A missing key yields an empty string,
// not an error: callers treat presence as the signal.
func (s *Store) Get(name string) (string, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM kv WHERE name = ?", name).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", name, err)
	}
	return value, nil
}

// Set writes the value for name, overwriting any previous value.
func (s *Store) Set(name, value string) error {
	query := `
		INSERT INTO kv (name, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`
	if _, err := s.db.Exec(query, name, value, time.Now()); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}

// Delete removes a single key. Deleting a missing key is not an error.
func (s *Store) Delete(name string) error {
	if _, err := s.db.Exec("DELETE FROM kv WHERE name = ?", name); err != nil {
		return fmt.Errorf("failed to delete %s: %w", name, err)
	}
	return nil
}

// Clear removes every stored key.
func (s *Store) Clear() error {
	if _, err := s.db.Exec("DELETE FROM kv"); err != nil {
		return fmt.Errorf("failed to clear store: %w", err)
	}
	return nil
}

// Snapshot reads all keys in a single transaction so callers that need
// several values (the session bootstrap reads three) see one consistent
// point in time.
func (s *Store) Snapshot() (map[string]string, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	rows, err := tx.Query("SELECT name, value FROM kv")
	if err != nil {
		return nil, fmt.Errorf("failed to query store: %w", err)
	}
	defer rows.Close()

	snapshot := make(map[string]string)
	for rows.Next() {
		var name, value string
		if err := rows.Scan(&name, &value); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		snapshot[name] = value
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return snapshot, tx.Commit()
}
