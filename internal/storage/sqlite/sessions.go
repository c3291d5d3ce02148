package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/settleup/internal/models"
)

// CreateSession persists a new session and its contact snapshot.
func (s *SQLiteStore) CreateSession(ctx context.Context, session *models.Session) error {
	// Generate ID if not set
	if session.ID == "" {
		session.ID = uuid.New().String()
	}
	if session.CreatedAt == 0 {
		session.CreatedAt = time.Now().UnixMilli()
	}
	if session.Status == "" {
		session.Status = models.SessionActive
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO sessions (id, name, status, created_at, archived_at) VALUES (?, ?, ?, ?, ?)",
		session.ID, session.Name, string(session.Status), session.CreatedAt, nullableTime(session.ArchivedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}

	for i, contact := range session.Contacts {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO session_contacts (session_id, contact_id, name, position) VALUES (?, ?, ?, ?)",
			session.ID, contact.ContactID, contact.Name, i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert contact: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetSession retrieves a session by ID, including contacts and expenses.
func (s *SQLiteStore) GetSession(ctx context.Context, sessionID string) (*models.Session, error) {
	session := &models.Session{}
	var status string
	var archivedAt sql.NullInt64

	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, status, created_at, archived_at FROM sessions WHERE id = ?",
		sessionID,
	).Scan(&session.ID, &session.Name, &status, &session.CreatedAt, &archivedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("session", sessionID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	session.Status = models.SessionStatus(status)
	if archivedAt.Valid {
		session.ArchivedAt = archivedAt.Int64
	}

	if err := s.loadSessionDetails(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// ListSessions retrieves every session, oldest first.
func (s *SQLiteStore) ListSessions(ctx context.Context) ([]*models.Session, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, status, created_at, archived_at FROM sessions ORDER BY created_at, rowid",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	var sessions []*models.Session
	for rows.Next() {
		session := &models.Session{}
		var status string
		var archivedAt sql.NullInt64
		if err := rows.Scan(&session.ID, &session.Name, &status, &session.CreatedAt, &archivedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		session.Status = models.SessionStatus(status)
		if archivedAt.Valid {
			session.ArchivedAt = archivedAt.Int64
		}
		sessions = append(sessions, session)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sessions: %w", err)
	}

	// Rows must be closed before issuing more queries on the single connection.
	for _, session := range sessions {
		if err := s.loadSessionDetails(ctx, session); err != nil {
			return nil, err
		}
	}

	return sessions, nil
}

// ArchiveSession marks a session archived.
func (s *SQLiteStore) ArchiveSession(ctx context.Context, sessionID string, archivedAt int64) error {
	result, err := s.db.ExecContext(ctx,
		"UPDATE sessions SET status = ?, archived_at = ? WHERE id = ?",
		string(models.SessionArchived), archivedAt, sessionID,
	)
	if err != nil {
		return fmt.Errorf("failed to archive session: %w", err)
	}
	return requireRow(result, "session", sessionID)
}

// DeleteSession removes a session. Contacts, expenses and splits cascade.
func (s *SQLiteStore) DeleteSession(ctx context.Context, sessionID string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM sessions WHERE id = ?", sessionID)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return requireRow(result, "session", sessionID)
}

func (s *SQLiteStore) loadSessionDetails(ctx context.Context, session *models.Session) error {
	contacts, err := loadContacts(ctx, s.db, session.ID)
	if err != nil {
		return err
	}
	session.Contacts = contacts

	expenses, err := loadExpenses(ctx, s.db, session.ID)
	if err != nil {
		return err
	}
	session.Expenses = expenses
	return nil
}

func loadContacts(ctx context.Context, q querier, sessionID string) ([]models.SessionContact, error) {
	rows, err := q.QueryContext(ctx,
		"SELECT contact_id, name FROM session_contacts WHERE session_id = ? ORDER BY position",
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get contacts: %w", err)
	}
	defer rows.Close()

	var contacts []models.SessionContact
	for rows.Next() {
		var c models.SessionContact
		if err := rows.Scan(&c.ContactID, &c.Name); err != nil {
			return nil, fmt.Errorf("failed to scan contact: %w", err)
		}
		contacts = append(contacts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate contacts: %w", err)
	}
	return contacts, nil
}

func requireRow(result sql.Result, kind, id string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if n == 0 {
		return notFound(kind, id)
	}
	return nil
}

func nullableTime(ms int64) any {
	if ms == 0 {
		return nil
	}
	return ms
}
