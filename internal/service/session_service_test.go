package service

import (
	"context"
	"testing"

	"connectrpc.com/connect"

	"github.com/mmynk/settleup/internal/models"
	"github.com/mmynk/settleup/pkg/api"
)

func TestGetSettings_Defaults(t *testing.T) {
	c, _, cleanup := setupTestServer(t)
	defer cleanup()

	resp, err := c.sessions.GetSettings(context.Background(), connect.NewRequest(&api.GetSettingsRequest{}))
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}

	if resp.Msg.Settings.MeName != "Me" {
		t.Errorf("me name: expected 'Me', got '%s'", resp.Msg.Settings.MeName)
	}
	if resp.Msg.Settings.Currency != "$" {
		t.Errorf("currency: expected '$', got '%s'", resp.Msg.Settings.Currency)
	}
	if resp.Msg.Settings.ActiveSessionID != "" {
		t.Errorf("expected no active session, got '%s'", resp.Msg.Settings.ActiveSessionID)
	}
}

func TestUpdateSettings(t *testing.T) {
	c, _, cleanup := setupTestServer(t)
	defer cleanup()
	ctx := context.Background()

	name := "  Sam "
	resp, err := c.sessions.UpdateSettings(ctx, connect.NewRequest(&api.UpdateSettingsRequest{MeName: &name}))
	if err != nil {
		t.Fatalf("UpdateSettings failed: %v", err)
	}
	if resp.Msg.Settings.MeName != "Sam" {
		t.Errorf("me name: expected 'Sam', got '%s'", resp.Msg.Settings.MeName)
	}
	if resp.Msg.Settings.Currency != "$" {
		t.Errorf("currency should be unchanged, got '%s'", resp.Msg.Settings.Currency)
	}

	// New sessions snapshot the new name.
	session := createSession(t, c, "Trip", "Bob")
	if session.Contacts[0].Name != "Sam" {
		t.Errorf("me contact: expected 'Sam', got '%s'", session.Contacts[0].Name)
	}

	blank := " "
	_, err = c.sessions.UpdateSettings(ctx, connect.NewRequest(&api.UpdateSettingsRequest{Currency: &blank}))
	expectCode(t, err, connect.CodeInvalidArgument)
}

func TestCreateSession(t *testing.T) {
	c, _, cleanup := setupTestServer(t)
	defer cleanup()

	session := createSession(t, c, " Ski trip ", "Bob", " Cat ")

	if session.ID == "" {
		t.Error("expected non-empty session ID")
	}
	if session.Name != "Ski trip" {
		t.Errorf("name: expected 'Ski trip', got '%s'", session.Name)
	}
	if session.Status != string(models.SessionActive) {
		t.Errorf("status: expected active, got '%s'", session.Status)
	}
	if session.CreatedAt == 0 {
		t.Error("expected non-zero CreatedAt")
	}

	if len(session.Contacts) != 3 {
		t.Fatalf("contacts: expected 3, got %d", len(session.Contacts))
	}
	if session.Contacts[0].ContactID != models.MeID || session.Contacts[0].Name != "Me" {
		t.Errorf("first contact should be the app user, got %+v", session.Contacts[0])
	}
	if session.Contacts[2].Name != "Cat" {
		t.Errorf("names should be trimmed, got '%s'", session.Contacts[2].Name)
	}
	if session.Contacts[1].ContactID == session.Contacts[2].ContactID {
		t.Error("contacts should get distinct IDs")
	}

	settings, err := c.sessions.GetSettings(context.Background(), connect.NewRequest(&api.GetSettingsRequest{}))
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	if settings.Msg.Settings.ActiveSessionID != session.ID {
		t.Errorf("new session should be active, got '%s'", settings.Msg.Settings.ActiveSessionID)
	}
}

func TestCreateSession_Invalid(t *testing.T) {
	c, _, cleanup := setupTestServer(t)
	defer cleanup()

	tests := []struct {
		name string
		req  *api.CreateSessionRequest
	}{
		{"blank name", &api.CreateSessionRequest{Name: "  ", Participants: []string{"Bob"}}},
		{"duplicate participant", &api.CreateSessionRequest{Name: "Trip", Participants: []string{"Bob", "BOB"}}},
		{"participant is me", &api.CreateSessionRequest{Name: "Trip", Participants: []string{"me"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.sessions.CreateSession(context.Background(), connect.NewRequest(tt.req))
			expectCode(t, err, connect.CodeInvalidArgument)
		})
	}
}

func TestGetSession(t *testing.T) {
	c, _, cleanup := setupTestServer(t)
	defer cleanup()

	created := createSession(t, c, "Flat", "Bob")
	addEqualExpense(t, c, created, "Rent", "100", models.MeID, models.MeID, contactID(t, created, "Bob"))

	resp, err := c.sessions.GetSession(context.Background(), connect.NewRequest(&api.GetSessionRequest{SessionID: created.ID}))
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}

	if resp.Msg.Session.Name != "Flat" {
		t.Errorf("name: expected 'Flat', got '%s'", resp.Msg.Session.Name)
	}
	if len(resp.Msg.Session.Expenses) != 1 {
		t.Errorf("expenses: expected 1, got %d", len(resp.Msg.Session.Expenses))
	}
}

func TestGetSession_NotFound(t *testing.T) {
	c, _, cleanup := setupTestServer(t)
	defer cleanup()

	_, err := c.sessions.GetSession(context.Background(), connect.NewRequest(&api.GetSessionRequest{SessionID: "nonexistent-id"}))
	expectCode(t, err, connect.CodeNotFound)
}

func TestListSessions(t *testing.T) {
	c, _, cleanup := setupTestServer(t)
	defer cleanup()
	ctx := context.Background()

	first := createSession(t, c, "First", "Bob")
	if _, err := c.sessions.ArchiveCurrentSession(ctx, connect.NewRequest(&api.ArchiveCurrentSessionRequest{})); err != nil {
		t.Fatalf("ArchiveCurrentSession failed: %v", err)
	}
	second := createSession(t, c, "Second", "Cat")

	resp, err := c.sessions.ListSessions(ctx, connect.NewRequest(&api.ListSessionsRequest{}))
	if err != nil {
		t.Fatalf("ListSessions failed: %v", err)
	}
	if len(resp.Msg.Sessions) != 2 {
		t.Fatalf("sessions: expected 2, got %d", len(resp.Msg.Sessions))
	}
	if resp.Msg.Sessions[0].ID != second.ID || resp.Msg.Sessions[1].ID != first.ID {
		t.Error("sessions should be listed newest first")
	}
	if resp.Msg.ActiveSessionID != second.ID {
		t.Errorf("active: expected %s, got %s", second.ID, resp.Msg.ActiveSessionID)
	}

	archived, err := c.sessions.ListSessions(ctx, connect.NewRequest(&api.ListSessionsRequest{Status: "archived"}))
	if err != nil {
		t.Fatalf("ListSessions failed: %v", err)
	}
	if len(archived.Msg.Sessions) != 1 || archived.Msg.Sessions[0].ID != first.ID {
		t.Errorf("archived filter: expected only %s, got %+v", first.ID, archived.Msg.Sessions)
	}

	_, err = c.sessions.ListSessions(ctx, connect.NewRequest(&api.ListSessionsRequest{Status: "closed"}))
	expectCode(t, err, connect.CodeInvalidArgument)
}

func TestListSessions_Empty(t *testing.T) {
	c, _, cleanup := setupTestServer(t)
	defer cleanup()

	resp, err := c.sessions.ListSessions(context.Background(), connect.NewRequest(&api.ListSessionsRequest{}))
	if err != nil {
		t.Fatalf("ListSessions failed: %v", err)
	}
	if len(resp.Msg.Sessions) != 0 {
		t.Errorf("expected 0 sessions, got %d", len(resp.Msg.Sessions))
	}
}

func TestArchiveCurrentSession(t *testing.T) {
	c, _, cleanup := setupTestServer(t)
	defer cleanup()
	ctx := context.Background()

	session := createSession(t, c, "Trip", "Bob")

	resp, err := c.sessions.ArchiveCurrentSession(ctx, connect.NewRequest(&api.ArchiveCurrentSessionRequest{}))
	if err != nil {
		t.Fatalf("ArchiveCurrentSession failed: %v", err)
	}
	if resp.Msg.Session == nil {
		t.Fatal("expected archived session in response")
	}
	if resp.Msg.Session.ID != session.ID {
		t.Errorf("archived the wrong session: %s", resp.Msg.Session.ID)
	}
	if resp.Msg.Session.Status != string(models.SessionArchived) || resp.Msg.Session.ArchivedAt == 0 {
		t.Errorf("expected archived status with timestamp, got %s at %d", resp.Msg.Session.Status, resp.Msg.Session.ArchivedAt)
	}

	settings, err := c.sessions.GetSettings(ctx, connect.NewRequest(&api.GetSettingsRequest{}))
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	if settings.Msg.Settings.ActiveSessionID != "" {
		t.Error("expected no active session after archiving")
	}

	// Nothing active: no-op.
	again, err := c.sessions.ArchiveCurrentSession(ctx, connect.NewRequest(&api.ArchiveCurrentSessionRequest{}))
	if err != nil {
		t.Fatalf("ArchiveCurrentSession failed: %v", err)
	}
	if again.Msg.Session != nil {
		t.Error("expected no session when nothing is active")
	}
}

func TestStartNewSession(t *testing.T) {
	c, _, cleanup := setupTestServer(t)
	defer cleanup()
	ctx := context.Background()

	session := createSession(t, c, "Trip", "Bob")

	resp, err := c.sessions.StartNewSession(ctx, connect.NewRequest(&api.StartNewSessionRequest{}))
	if err != nil {
		t.Fatalf("StartNewSession failed: %v", err)
	}
	if resp.Msg.Settings.ActiveSessionID != "" {
		t.Error("expected active session to be cleared")
	}

	// The old session is untouched.
	got, err := c.sessions.GetSession(ctx, connect.NewRequest(&api.GetSessionRequest{SessionID: session.ID}))
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if got.Msg.Session.Status != string(models.SessionActive) {
		t.Errorf("status: expected active, got %s", got.Msg.Session.Status)
	}
}

func TestDeleteSession(t *testing.T) {
	c, _, cleanup := setupTestServer(t)
	defer cleanup()
	ctx := context.Background()

	session := createSession(t, c, "Trip", "Bob")
	addEqualExpense(t, c, session, "Taxi", "20", models.MeID, models.MeID)

	if _, err := c.sessions.DeleteSession(ctx, connect.NewRequest(&api.DeleteSessionRequest{SessionID: session.ID})); err != nil {
		t.Fatalf("DeleteSession failed: %v", err)
	}

	_, err := c.sessions.GetSession(ctx, connect.NewRequest(&api.GetSessionRequest{SessionID: session.ID}))
	expectCode(t, err, connect.CodeNotFound)

	settings, err := c.sessions.GetSettings(ctx, connect.NewRequest(&api.GetSettingsRequest{}))
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	if settings.Msg.Settings.ActiveSessionID != "" {
		t.Error("deleting the active session should clear it")
	}

	_, err = c.sessions.DeleteSession(ctx, connect.NewRequest(&api.DeleteSessionRequest{SessionID: session.ID}))
	expectCode(t, err, connect.CodeNotFound)
}
