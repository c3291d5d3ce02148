package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"connectrpc.com/connect"
	"github.com/google/uuid"

	"github.com/mmynk/settleup/internal/models"
	"github.com/mmynk/settleup/internal/storage"
	"github.com/mmynk/settleup/internal/validation"
	"github.com/mmynk/settleup/pkg/api"
)

// SessionService implements the Connect SessionService: settings and the session lifecycle.
type SessionService struct {
	store storage.Store
}

// NewSessionService creates a new SessionService with the given storage backend.
func NewSessionService(store storage.Store) *SessionService {
	return &SessionService{store: store}
}

// GetSettings returns the user's settings.
func (s *SessionService) GetSettings(ctx context.Context, req *connect.Request[api.GetSettingsRequest]) (*connect.Response[api.GetSettingsResponse], error) {
	settings, err := s.store.GetSettings(ctx)
	if err != nil {
		slog.Error("GetSettings failed", "error", err)
		return nil, connectError(err)
	}

	return connect.NewResponse(&api.GetSettingsResponse{Settings: toAPISettings(settings)}), nil
}

// UpdateSettings changes the user's display name and/or currency symbol.
// Existing sessions keep the name they were created with.
func (s *SessionService) UpdateSettings(ctx context.Context, req *connect.Request[api.UpdateSettingsRequest]) (*connect.Response[api.UpdateSettingsResponse], error) {
	slog.Info("UpdateSettings request received")

	settings, err := s.store.GetSettings(ctx)
	if err != nil {
		slog.Error("UpdateSettings failed", "error", err)
		return nil, connectError(err)
	}

	if req.Msg.MeName != nil {
		settings.MeName = strings.TrimSpace(*req.Msg.MeName)
	}
	if req.Msg.Currency != nil {
		settings.Currency = strings.TrimSpace(*req.Msg.Currency)
	}

	if err := validation.ValidateSettings(validation.SettingsInput{
		MeName:   settings.MeName,
		Currency: settings.Currency,
	}); err != nil {
		slog.Warn("UpdateSettings rejected", "error", err)
		return nil, connectError(err)
	}

	if err := s.store.UpdateSettings(ctx, settings); err != nil {
		slog.Error("UpdateSettings failed", "error", err)
		return nil, connectError(err)
	}

	slog.Info("Settings updated", "me_name", settings.MeName, "currency", settings.Currency)

	return connect.NewResponse(&api.UpdateSettingsResponse{Settings: toAPISettings(settings)}), nil
}

// CreateSession starts a session with the app user plus the named participants
// and makes it the active session.
func (s *SessionService) CreateSession(ctx context.Context, req *connect.Request[api.CreateSessionRequest]) (*connect.Response[api.CreateSessionResponse], error) {
	slog.Info("CreateSession request received",
		"name", req.Msg.Name,
		"participants_count", len(req.Msg.Participants),
	)

	settings, err := s.store.GetSettings(ctx)
	if err != nil {
		slog.Error("CreateSession failed", "error", err)
		return nil, connectError(err)
	}

	if err := validation.ValidateSession(validation.SessionInput{
		Name:         req.Msg.Name,
		Participants: req.Msg.Participants,
	}, settings.MeName); err != nil {
		slog.Warn("CreateSession rejected", "error", err)
		return nil, connectError(err)
	}

	// Contact snapshot: the app user first, then everyone else with a fresh ID.
	contacts := make([]models.SessionContact, 0, len(req.Msg.Participants)+1)
	contacts = append(contacts, models.SessionContact{ContactID: models.MeID, Name: settings.MeName})
	for _, name := range req.Msg.Participants {
		contacts = append(contacts, models.SessionContact{
			ContactID: uuid.New().String(),
			Name:      strings.TrimSpace(name),
		})
	}

	session := &models.Session{
		Name:     strings.TrimSpace(req.Msg.Name),
		Status:   models.SessionActive,
		Contacts: contacts,
		Expenses: []models.Expense{},
	}

	// Save to storage (generates ID and CreatedAt)
	if err := s.store.CreateSession(ctx, session); err != nil {
		slog.Error("CreateSession failed", "error", err)
		return nil, connectError(err)
	}

	settings.ActiveSessionID = session.ID
	if err := s.store.UpdateSettings(ctx, settings); err != nil {
		slog.Error("CreateSession failed to activate session", "session_id", session.ID, "error", err)
		return nil, connectError(err)
	}

	slog.Info("Session created", "session_id", session.ID, "contacts_count", len(contacts))

	return connect.NewResponse(&api.CreateSessionResponse{Session: toAPISession(session)}), nil
}

// GetSession retrieves a session with its contacts and expenses.
func (s *SessionService) GetSession(ctx context.Context, req *connect.Request[api.GetSessionRequest]) (*connect.Response[api.GetSessionResponse], error) {
	slog.Info("GetSession request received", "session_id", req.Msg.SessionID)

	session, err := s.store.GetSession(ctx, req.Msg.SessionID)
	if err != nil {
		slog.Error("GetSession failed", "session_id", req.Msg.SessionID, "error", err)
		return nil, connectError(err)
	}

	slog.Info("GetSession successful", "session_id", session.ID, "expenses_count", len(session.Expenses))

	return connect.NewResponse(&api.GetSessionResponse{Session: toAPISession(session)}), nil
}

// ListSessions returns sessions newest first, optionally filtered by status.
func (s *SessionService) ListSessions(ctx context.Context, req *connect.Request[api.ListSessionsRequest]) (*connect.Response[api.ListSessionsResponse], error) {
	slog.Info("ListSessions request received", "status", req.Msg.Status)

	status := models.SessionStatus(req.Msg.Status)
	if status != "" && status != models.SessionActive && status != models.SessionArchived {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("unknown session status %q", req.Msg.Status))
	}

	sessions, err := s.store.ListSessions(ctx)
	if err != nil {
		slog.Error("ListSessions failed", "error", err)
		return nil, connectError(err)
	}

	settings, err := s.store.GetSettings(ctx)
	if err != nil {
		slog.Error("ListSessions failed", "error", err)
		return nil, connectError(err)
	}

	out := make([]api.Session, 0, len(sessions))
	for i := len(sessions) - 1; i >= 0; i-- {
		if status != "" && sessions[i].Status != status {
			continue
		}
		out = append(out, toAPISession(sessions[i]))
	}

	slog.Info("ListSessions successful", "count", len(out))

	return connect.NewResponse(&api.ListSessionsResponse{
		Sessions:        out,
		ActiveSessionID: settings.ActiveSessionID,
	}), nil
}

// ArchiveCurrentSession archives the active session and leaves no session active.
// It is a no-op when nothing is active.
func (s *SessionService) ArchiveCurrentSession(ctx context.Context, req *connect.Request[api.ArchiveCurrentSessionRequest]) (*connect.Response[api.ArchiveCurrentSessionResponse], error) {
	slog.Info("ArchiveCurrentSession request received")

	settings, err := s.store.GetSettings(ctx)
	if err != nil {
		slog.Error("ArchiveCurrentSession failed", "error", err)
		return nil, connectError(err)
	}
	if settings.ActiveSessionID == "" {
		slog.Info("ArchiveCurrentSession: no active session")
		return connect.NewResponse(&api.ArchiveCurrentSessionResponse{}), nil
	}

	sessionID := settings.ActiveSessionID
	session, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		slog.Error("ArchiveCurrentSession failed", "session_id", sessionID, "error", err)
		return nil, connectError(err)
	}

	if !session.IsArchived() {
		archivedAt := time.Now().UnixMilli()
		if err := s.store.ArchiveSession(ctx, sessionID, archivedAt); err != nil {
			slog.Error("ArchiveCurrentSession failed", "session_id", sessionID, "error", err)
			return nil, connectError(err)
		}
		session.Status = models.SessionArchived
		session.ArchivedAt = archivedAt
	}

	settings.ActiveSessionID = ""
	if err := s.store.UpdateSettings(ctx, settings); err != nil {
		slog.Error("ArchiveCurrentSession failed to clear active session", "error", err)
		return nil, connectError(err)
	}

	slog.Info("Session archived", "session_id", sessionID)

	archived := toAPISession(session)
	return connect.NewResponse(&api.ArchiveCurrentSessionResponse{Session: &archived}), nil
}

// StartNewSession leaves the current session as it is and clears the active session,
// so the next CreateSession starts fresh.
func (s *SessionService) StartNewSession(ctx context.Context, req *connect.Request[api.StartNewSessionRequest]) (*connect.Response[api.StartNewSessionResponse], error) {
	slog.Info("StartNewSession request received")

	settings, err := s.store.GetSettings(ctx)
	if err != nil {
		slog.Error("StartNewSession failed", "error", err)
		return nil, connectError(err)
	}

	settings.ActiveSessionID = ""
	if err := s.store.UpdateSettings(ctx, settings); err != nil {
		slog.Error("StartNewSession failed", "error", err)
		return nil, connectError(err)
	}

	return connect.NewResponse(&api.StartNewSessionResponse{Settings: toAPISettings(settings)}), nil
}

// DeleteSession removes a session and its expenses.
func (s *SessionService) DeleteSession(ctx context.Context, req *connect.Request[api.DeleteSessionRequest]) (*connect.Response[api.DeleteSessionResponse], error) {
	slog.Info("DeleteSession request received", "session_id", req.Msg.SessionID)

	if err := s.store.DeleteSession(ctx, req.Msg.SessionID); err != nil {
		slog.Error("DeleteSession failed", "session_id", req.Msg.SessionID, "error", err)
		return nil, connectError(err)
	}

	settings, err := s.store.GetSettings(ctx)
	if err != nil {
		slog.Error("DeleteSession failed", "error", err)
		return nil, connectError(err)
	}
	if settings.ActiveSessionID == req.Msg.SessionID {
		settings.ActiveSessionID = ""
		if err := s.store.UpdateSettings(ctx, settings); err != nil {
			slog.Error("DeleteSession failed to clear active session", "error", err)
			return nil, connectError(err)
		}
	}

	slog.Info("Session deleted", "session_id", req.Msg.SessionID)

	return connect.NewResponse(&api.DeleteSessionResponse{}), nil
}
