// Package api defines the request and response messages of the settleup RPC services.
//
// Messages are plain Go structs carried as JSON by the Connect protocol (see Codec).
// Amounts are money.Cents, which encode as JSON numbers with two fractional digits.
package api

import "github.com/mmynk/settleup/internal/money"

type Settings struct {
	MeName          string `json:"meName"`
	Currency        string `json:"currency"`
	ActiveSessionID string `json:"activeSessionId,omitempty"`
}

type Contact struct {
	ContactID string `json:"contactId"`
	Name      string `json:"name"`
}

type Split struct {
	ParticipantID string      `json:"participantId"`
	Amount        money.Cents `json:"amount"`
}

type Expense struct {
	ID             string      `json:"id"`
	SessionID      string      `json:"sessionId"`
	Description    string      `json:"description"`
	Amount         money.Cents `json:"amount"`
	Category       string      `json:"category"`
	PayerID        string      `json:"payerId"`
	ParticipantIDs []string    `json:"participantIds"`
	SplitMode      string      `json:"splitMode"`
	Splits         []Split     `json:"splits"`
	CreatedAt      int64       `json:"createdAt"`
	UpdatedAt      int64       `json:"updatedAt"`
}

type Session struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Status     string    `json:"status"`
	Contacts   []Contact `json:"contacts"`
	Expenses   []Expense `json:"expenses"`
	CreatedAt  int64     `json:"createdAt"`
	ArchivedAt int64     `json:"archivedAt,omitempty"`
}

// Balance is a participant's net position with the name resolved for display.
type Balance struct {
	ParticipantID string      `json:"participantId"`
	Name          string      `json:"name"`
	Net           money.Cents `json:"net"`
	Display       string      `json:"display"` // e.g. "+$60.00"
}

// Transaction is one settle-up payment with names resolved for display.
type Transaction struct {
	FromID   string      `json:"fromId"`
	FromName string      `json:"fromName"`
	ToID     string      `json:"toId"`
	ToName   string      `json:"toName"`
	Amount   money.Cents `json:"amount"`
	Display  string      `json:"display"` // e.g. "$30.00"
}

type CategoryTotal struct {
	Category string      `json:"category"`
	Label    string      `json:"label"`
	Amount   money.Cents `json:"amount"`
	Percent  int         `json:"percent"`
}

// SessionService

type GetSettingsRequest struct{}

type GetSettingsResponse struct {
	Settings Settings `json:"settings"`
}

// UpdateSettingsRequest changes only the fields that are set.
type UpdateSettingsRequest struct {
	MeName   *string `json:"meName,omitempty"`
	Currency *string `json:"currency,omitempty"`
}

type UpdateSettingsResponse struct {
	Settings Settings `json:"settings"`
}

// CreateSessionRequest names the other participants; the app user is always added first.
type CreateSessionRequest struct {
	Name         string   `json:"name"`
	Participants []string `json:"participants"`
}

type CreateSessionResponse struct {
	Session Session `json:"session"`
}

type GetSessionRequest struct {
	SessionID string `json:"sessionId"`
}

type GetSessionResponse struct {
	Session Session `json:"session"`
}

// ListSessionsRequest optionally filters by status ("active" or "archived").
// Sessions come back newest first.
type ListSessionsRequest struct {
	Status string `json:"status,omitempty"`
}

type ListSessionsResponse struct {
	Sessions        []Session `json:"sessions"`
	ActiveSessionID string    `json:"activeSessionId,omitempty"`
}

type ArchiveCurrentSessionRequest struct{}

type ArchiveCurrentSessionResponse struct {
	// Session is the session that was archived, nil when there was no active session.
	Session *Session `json:"session,omitempty"`
}

type StartNewSessionRequest struct{}

type StartNewSessionResponse struct {
	Settings Settings `json:"settings"`
}

type DeleteSessionRequest struct {
	SessionID string `json:"sessionId"`
}

type DeleteSessionResponse struct{}

// ExpenseService

type AddExpenseRequest struct {
	SessionID      string      `json:"sessionId"`
	Description    string      `json:"description"`
	Amount         money.Cents `json:"amount"`
	Category       string      `json:"category,omitempty"`
	PayerID        string      `json:"payerId"`
	ParticipantIDs []string    `json:"participantIds"`
	SplitMode      string      `json:"splitMode,omitempty"` // defaults to "equal"
	Splits         []Split     `json:"splits,omitempty"`    // custom mode only
}

type AddExpenseResponse struct {
	Expense Expense `json:"expense"`
}

// UpdateExpenseRequest changes only the fields that are set.
// Splits are re-materialized from the merged result.
type UpdateExpenseRequest struct {
	SessionID      string       `json:"sessionId"`
	ExpenseID      string       `json:"expenseId"`
	Description    *string      `json:"description,omitempty"`
	Amount         *money.Cents `json:"amount,omitempty"`
	Category       *string      `json:"category,omitempty"`
	PayerID        *string      `json:"payerId,omitempty"`
	ParticipantIDs []string     `json:"participantIds,omitempty"`
	SplitMode      *string      `json:"splitMode,omitempty"`
	Splits         []Split      `json:"splits,omitempty"`
}

type UpdateExpenseResponse struct {
	Expense Expense `json:"expense"`
}

type DeleteExpenseRequest struct {
	SessionID string `json:"sessionId"`
	ExpenseID string `json:"expenseId"`
}

type DeleteExpenseResponse struct{}

// PreviewEqualSplitsRequest asks for the equal split of an amount without saving anything.
type PreviewEqualSplitsRequest struct {
	Amount         money.Cents `json:"amount"`
	ParticipantIDs []string    `json:"participantIds"`
}

type PreviewEqualSplitsResponse struct {
	Splits []Split `json:"splits"`
}

// SettlementService

type GetSettlementRequest struct {
	SessionID string `json:"sessionId"`
}

type GetSettlementResponse struct {
	Balances     []Balance     `json:"balances"`
	Transactions []Transaction `json:"transactions"`
	Total        money.Cents   `json:"total"`
	ExpenseCount int           `json:"expenseCount"`
	PaymentCount int           `json:"paymentCount"`
	// Unsettled is the sum of all balances. Nonzero only when stored splits
	// do not add up to their expense amounts.
	Unsettled money.Cents `json:"unsettled"`
}

type GetBreakdownRequest struct {
	SessionID string `json:"sessionId"`
}

type GetBreakdownResponse struct {
	Total      money.Cents     `json:"total"`
	Categories []CategoryTotal `json:"categories"`
	// Expenses are newest first.
	Expenses []Expense `json:"expenses"`
}
