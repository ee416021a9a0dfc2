package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// loginFlagKey is the one durable flag the app keeps: whether the user
// is signed in across restarts.
const loginFlagKey = "isLoggedIn"

// SessionStore persists session flags in sqlite.
type SessionStore struct {
	db *sql.DB
}

func NewSessionStore(dbPath string) (*SessionStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := runMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SessionStore{db: db}, nil
}

// SetLoggedIn persists the login flag.
func (s *SessionStore) SetLoggedIn(ctx context.Context, loggedIn bool) error {
	value := "false"
	if loggedIn {
		value = "true"
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO session_flags (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		loginFlagKey, value)
	if err != nil {
		return fmt.Errorf("persist login flag: %w", err)
	}
	return nil
}

// IsLoggedIn reads the login flag. A missing row means signed out.
func (s *SessionStore) IsLoggedIn(ctx context.Context) (bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM session_flags WHERE key = ?`, loginFlagKey).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read login flag: %w", err)
	}
	return value == "true", nil
}

func (s *SessionStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
