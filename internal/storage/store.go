// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/settleup/internal/models"
)

// ErrNotFound is returned (wrapped) when a session or expense does not exist.
var ErrNotFound = errors.New("not found")

// Store defines the interface for session and expense storage operations.
// This abstraction allows swapping storage backends without changing the service layer.
// Balances and transactions are never stored; they are derived from expenses on demand.
type Store interface {
	// GetSettings returns the stored settings, or models.DefaultSettings if none were saved.
	GetSettings(ctx context.Context) (*models.Settings, error)

	// UpdateSettings replaces the stored settings.
	UpdateSettings(ctx context.Context, settings *models.Settings) error

	// CreateSession persists a new session with its contacts.
	// The session.ID and CreatedAt fields are populated by the store when empty.
	CreateSession(ctx context.Context, session *models.Session) error

	// GetSession retrieves a session with its contacts and expenses.
	GetSession(ctx context.Context, sessionID string) (*models.Session, error)

	// ListSessions returns all sessions with contacts and expenses, oldest first.
	ListSessions(ctx context.Context) ([]*models.Session, error)

	// ArchiveSession marks a session archived at the given Unix millisecond timestamp.
	ArchiveSession(ctx context.Context, sessionID string, archivedAt int64) error

	// DeleteSession removes a session and everything in it.
	DeleteSession(ctx context.Context, sessionID string) error

	// AddExpense persists a new expense with its splits.
	// The expense.ID, CreatedAt and UpdatedAt fields are populated by the store when empty.
	AddExpense(ctx context.Context, expense *models.Expense) error

	// UpdateExpense replaces an existing expense and its splits.
	UpdateExpense(ctx context.Context, expense *models.Expense) error

	// DeleteExpense removes an expense from a session.
	DeleteExpense(ctx context.Context, sessionID, expenseID string) error

	// Close releases any resources held by the store.
	Close() error
}
