package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"

	"connectrpc.com/connect"

	"github.com/mmynk/settleup/internal/money"
	"github.com/mmynk/settleup/internal/storage/sqlite"
	"github.com/mmynk/settleup/pkg/api"
	"github.com/mmynk/settleup/pkg/api/apiconnect"
)

type testClients struct {
	baseURL     string
	sessions    *apiconnect.SessionServiceClient
	expenses    *apiconnect.ExpenseServiceClient
	settlements *apiconnect.SettlementServiceClient
}

// recordingObserver counts settlements seen by the SettlementService.
type recordingObserver struct {
	mu           sync.Mutex
	calls        int
	participants int
	transactions int
}

func (o *recordingObserver) ObserveSettlement(participants, transactions int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.calls++
	o.participants = participants
	o.transactions = transactions
}

func (o *recordingObserver) last() (calls, participants, transactions int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.calls, o.participants, o.transactions
}

// setupTestServer creates a test server with all three services on a temp database.
func setupTestServer(t *testing.T) (testClients, *recordingObserver, func()) {
	t.Helper()

	// Create temp database
	tmpFile, err := os.CreateTemp("", "test-*.db")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	tmpFile.Close()

	store, err := sqlite.New(tmpFile.Name())
	if err != nil {
		os.Remove(tmpFile.Name())
		t.Fatalf("failed to create store: %v", err)
	}

	observer := &recordingObserver{}

	mux := http.NewServeMux()
	mux.Handle(apiconnect.NewSessionServiceHandler(NewSessionService(store)))
	mux.Handle(apiconnect.NewExpenseServiceHandler(NewExpenseService(store)))
	mux.Handle(apiconnect.NewSettlementServiceHandler(NewSettlementService(store, observer)))

	server := httptest.NewServer(mux)

	clients := testClients{
		baseURL:     server.URL,
		sessions:    apiconnect.NewSessionServiceClient(http.DefaultClient, server.URL),
		expenses:    apiconnect.NewExpenseServiceClient(http.DefaultClient, server.URL),
		settlements: apiconnect.NewSettlementServiceClient(http.DefaultClient, server.URL),
	}

	cleanup := func() {
		server.Close()
		store.Close()
		os.Remove(tmpFile.Name())
	}

	return clients, observer, cleanup
}

func createSession(t *testing.T, c testClients, name string, participants ...string) api.Session {
	t.Helper()

	resp, err := c.sessions.CreateSession(context.Background(), connect.NewRequest(&api.CreateSessionRequest{
		Name:         name,
		Participants: participants,
	}))
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	return resp.Msg.Session
}

func addEqualExpense(t *testing.T, c testClients, session api.Session, description, amount, payerID string, participantIDs ...string) api.Expense {
	t.Helper()

	resp, err := c.expenses.AddExpense(context.Background(), connect.NewRequest(&api.AddExpenseRequest{
		SessionID:      session.ID,
		Description:    description,
		Amount:         money.MustParse(amount),
		PayerID:        payerID,
		ParticipantIDs: participantIDs,
	}))
	if err != nil {
		t.Fatalf("AddExpense failed: %v", err)
	}
	return resp.Msg.Expense
}

// contactID returns the ID of the named contact in session.
func contactID(t *testing.T, session api.Session, name string) string {
	t.Helper()

	for _, c := range session.Contacts {
		if c.Name == name {
			return c.ContactID
		}
	}
	t.Fatalf("no contact named %q", name)
	return ""
}

func expectCode(t *testing.T, err error, want connect.Code) {
	t.Helper()

	if err == nil {
		t.Fatalf("expected %v error, got nil", want)
	}
	if got := connect.CodeOf(err); got != want {
		t.Errorf("expected %v, got %v (%v)", want, got, err)
	}
}
