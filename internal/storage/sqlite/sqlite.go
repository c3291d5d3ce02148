// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/settleup/internal/models"
	"github.com/mmynk/settleup/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	// Create parent directory if it doesn't exist
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// Foreign keys are a per-connection pragma, so set it in the DSN.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// GetSettings returns the saved settings, or the defaults when nothing was saved yet.
func (s *SQLiteStore) GetSettings(ctx context.Context) (*models.Settings, error) {
	settings := models.DefaultSettings()
	var active sql.NullString

	err := s.db.QueryRowContext(ctx,
		"SELECT me_name, currency, active_session_id FROM settings WHERE id = 1",
	).Scan(&settings.MeName, &settings.Currency, &active)
	if errors.Is(err, sql.ErrNoRows) {
		return &settings, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}

	if active.Valid {
		settings.ActiveSessionID = active.String
	}
	return &settings, nil
}

// UpdateSettings replaces the saved settings.
func (s *SQLiteStore) UpdateSettings(ctx context.Context, settings *models.Settings) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO settings (id, me_name, currency, active_session_id) VALUES (1, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		     me_name = excluded.me_name,
		     currency = excluded.currency,
		     active_session_id = excluded.active_session_id`,
		settings.MeName, settings.Currency, nullable(settings.ActiveSessionID),
	)
	if err != nil {
		return fmt.Errorf("failed to update settings: %w", err)
	}
	return nil
}

// nullable maps the empty string to SQL NULL.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func notFound(kind, id string) error {
	return fmt.Errorf("%s %w: %s", kind, storage.ErrNotFound, id)
}
