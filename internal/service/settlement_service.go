package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/settleup/internal/calculator"
	"github.com/mmynk/settleup/internal/models"
	"github.com/mmynk/settleup/internal/money"
	"github.com/mmynk/settleup/internal/storage"
	"github.com/mmynk/settleup/pkg/api"
)

// SettlementObserver is notified of every settlement computed.
type SettlementObserver interface {
	ObserveSettlement(participants, transactions int)
}

// SettlementService implements the Connect SettlementService.
// Nothing it returns is stored; every call recomputes from the session's expenses.
type SettlementService struct {
	store    storage.Store
	observer SettlementObserver
}

// NewSettlementService creates a new SettlementService. observer may be nil.
func NewSettlementService(store storage.Store, observer SettlementObserver) *SettlementService {
	return &SettlementService{store: store, observer: observer}
}

// GetSettlement returns each participant's net balance and the payments that settle them.
func (s *SettlementService) GetSettlement(ctx context.Context, req *connect.Request[api.GetSettlementRequest]) (*connect.Response[api.GetSettlementResponse], error) {
	slog.Info("GetSettlement request received", "session_id", req.Msg.SessionID)

	session, settings, err := s.load(ctx, req.Msg.SessionID)
	if err != nil {
		slog.Error("GetSettlement failed", "session_id", req.Msg.SessionID, "error", err)
		return nil, connectError(err)
	}

	settlement := calculator.ComputeSettlement(session.Expenses)

	balances := make([]api.Balance, len(settlement.Balances))
	for i, b := range settlement.Balances {
		balances[i] = api.Balance{
			ParticipantID: b.ParticipantID,
			Name:          session.ContactName(b.ParticipantID),
			Net:           b.Net,
			Display:       money.FormatSigned(b.Net, settings.Currency),
		}
	}

	transactions := make([]api.Transaction, len(settlement.Transactions))
	for i, t := range settlement.Transactions {
		transactions[i] = api.Transaction{
			FromID:   t.FromID,
			FromName: session.ContactName(t.FromID),
			ToID:     t.ToID,
			ToName:   session.ContactName(t.ToID),
			Amount:   t.Amount,
			Display:  money.Format(t.Amount, settings.Currency),
		}
	}

	unsettled := calculator.TotalNet(settlement.Balances)
	if unsettled != 0 {
		slog.Warn("Balances do not sum to zero", "session_id", session.ID, "unsettled", unsettled)
	}

	if s.observer != nil {
		s.observer.ObserveSettlement(len(balances), len(transactions))
	}

	slog.Info("GetSettlement successful",
		"session_id", session.ID,
		"expenses_count", len(session.Expenses),
		"balances_count", len(balances),
		"transactions_count", len(transactions),
	)

	return connect.NewResponse(&api.GetSettlementResponse{
		Balances:     balances,
		Transactions: transactions,
		Total:        calculator.SessionTotal(session.Expenses),
		ExpenseCount: len(session.Expenses),
		PaymentCount: len(transactions),
		Unsettled:    unsettled,
	}), nil
}

// GetBreakdown returns spending per category and the expenses newest first.
func (s *SettlementService) GetBreakdown(ctx context.Context, req *connect.Request[api.GetBreakdownRequest]) (*connect.Response[api.GetBreakdownResponse], error) {
	slog.Info("GetBreakdown request received", "session_id", req.Msg.SessionID)

	session, err := s.store.GetSession(ctx, req.Msg.SessionID)
	if err != nil {
		slog.Error("GetBreakdown failed", "session_id", req.Msg.SessionID, "error", err)
		return nil, connectError(err)
	}

	totals := calculator.CategoryTotals(session.Expenses)
	categories := make([]api.CategoryTotal, len(totals))
	for i, t := range totals {
		categories[i] = api.CategoryTotal{
			Category: string(t.Category),
			Label:    t.Category.Label(),
			Amount:   t.Amount,
			Percent:  t.Percent,
		}
	}

	// Stored oldest first.
	expenses := make([]api.Expense, 0, len(session.Expenses))
	for i := len(session.Expenses) - 1; i >= 0; i-- {
		expenses = append(expenses, toAPIExpense(&session.Expenses[i]))
	}

	return connect.NewResponse(&api.GetBreakdownResponse{
		Total:      calculator.SessionTotal(session.Expenses),
		Categories: categories,
		Expenses:   expenses,
	}), nil
}

func (s *SettlementService) load(ctx context.Context, sessionID string) (*models.Session, *models.Settings, error) {
	session, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	settings, err := s.store.GetSettings(ctx)
	if err != nil {
		return nil, nil, err
	}
	return session, settings, nil
}
