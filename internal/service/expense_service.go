package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/settleup/internal/calculator"
	"github.com/mmynk/settleup/internal/models"
	"github.com/mmynk/settleup/internal/storage"
	"github.com/mmynk/settleup/internal/validation"
	"github.com/mmynk/settleup/pkg/api"
)

// ExpenseService implements the Connect ExpenseService.
// Every write validates the form input and stores fully materialized splits.
type ExpenseService struct {
	store storage.Store
}

// NewExpenseService creates a new ExpenseService with the given storage backend.
func NewExpenseService(store storage.Store) *ExpenseService {
	return &ExpenseService{store: store}
}

// AddExpense records a payment in an open session.
func (s *ExpenseService) AddExpense(ctx context.Context, req *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.AddExpenseResponse], error) {
	slog.Info("AddExpense request received",
		"session_id", req.Msg.SessionID,
		"amount", req.Msg.Amount,
		"participants_count", len(req.Msg.ParticipantIDs),
		"split_mode", req.Msg.SplitMode,
	)

	session, err := s.openSession(ctx, req.Msg.SessionID)
	if err != nil {
		slog.Error("AddExpense failed", "session_id", req.Msg.SessionID, "error", err)
		return nil, connectError(err)
	}

	in := validation.ExpenseInput{
		Description:    strings.TrimSpace(req.Msg.Description),
		Amount:         req.Msg.Amount,
		Category:       models.Category(req.Msg.Category),
		PayerID:        req.Msg.PayerID,
		ParticipantIDs: append([]models.ParticipantID{}, req.Msg.ParticipantIDs...),
		SplitMode:      splitModeOrDefault(req.Msg.SplitMode),
		Splits:         fromAPISplits(req.Msg.Splits),
	}
	if err := validation.ValidateExpense(in, session); err != nil {
		slog.Warn("AddExpense rejected", "session_id", session.ID, "error", err)
		return nil, connectError(err)
	}

	expense := expenseFromInput(in)
	expense.SessionID = session.ID

	// Save to storage (generates ID and timestamps)
	if err := s.store.AddExpense(ctx, expense); err != nil {
		slog.Error("AddExpense failed", "session_id", session.ID, "error", err)
		return nil, connectError(err)
	}

	slog.Info("Expense added",
		"session_id", session.ID,
		"expense_id", expense.ID,
		"splits_count", len(expense.Splits),
	)

	return connect.NewResponse(&api.AddExpenseResponse{Expense: toAPIExpense(expense)}), nil
}

// UpdateExpense applies the set fields to an existing expense, then re-validates
// and re-materializes its splits.
func (s *ExpenseService) UpdateExpense(ctx context.Context, req *connect.Request[api.UpdateExpenseRequest]) (*connect.Response[api.UpdateExpenseResponse], error) {
	slog.Info("UpdateExpense request received",
		"session_id", req.Msg.SessionID,
		"expense_id", req.Msg.ExpenseID,
	)

	session, err := s.openSession(ctx, req.Msg.SessionID)
	if err != nil {
		slog.Error("UpdateExpense failed", "session_id", req.Msg.SessionID, "error", err)
		return nil, connectError(err)
	}

	existing := session.FindExpense(req.Msg.ExpenseID)
	if existing == nil {
		err := fmt.Errorf("expense %s: %w", req.Msg.ExpenseID, storage.ErrNotFound)
		slog.Error("UpdateExpense failed", "session_id", session.ID, "error", err)
		return nil, connectError(err)
	}

	in := validation.ExpenseInput{
		Description:    existing.Description,
		Amount:         existing.Amount,
		Category:       existing.Category,
		PayerID:        existing.PayerID,
		ParticipantIDs: append([]models.ParticipantID{}, existing.ParticipantIDs...),
		SplitMode:      existing.SplitMode,
		Splits:         append([]models.ExpenseSplit{}, existing.Splits...),
	}
	if req.Msg.Description != nil {
		in.Description = strings.TrimSpace(*req.Msg.Description)
	}
	if req.Msg.Amount != nil {
		in.Amount = *req.Msg.Amount
	}
	if req.Msg.Category != nil {
		in.Category = models.Category(*req.Msg.Category)
	}
	if req.Msg.PayerID != nil {
		in.PayerID = *req.Msg.PayerID
	}
	if req.Msg.ParticipantIDs != nil {
		in.ParticipantIDs = append([]models.ParticipantID{}, req.Msg.ParticipantIDs...)
	}
	if req.Msg.SplitMode != nil {
		in.SplitMode = splitModeOrDefault(*req.Msg.SplitMode)
	}
	if req.Msg.Splits != nil {
		in.Splits = fromAPISplits(req.Msg.Splits)
	}

	if err := validation.ValidateExpense(in, session); err != nil {
		slog.Warn("UpdateExpense rejected", "expense_id", existing.ID, "error", err)
		return nil, connectError(err)
	}

	expense := expenseFromInput(in)
	expense.ID = existing.ID
	expense.SessionID = session.ID
	expense.CreatedAt = existing.CreatedAt
	expense.UpdatedAt = time.Now().UnixMilli()

	if err := s.store.UpdateExpense(ctx, expense); err != nil {
		slog.Error("UpdateExpense failed", "expense_id", expense.ID, "error", err)
		return nil, connectError(err)
	}

	slog.Info("Expense updated", "session_id", session.ID, "expense_id", expense.ID)

	return connect.NewResponse(&api.UpdateExpenseResponse{Expense: toAPIExpense(expense)}), nil
}

// DeleteExpense removes an expense from an open session.
func (s *ExpenseService) DeleteExpense(ctx context.Context, req *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error) {
	slog.Info("DeleteExpense request received",
		"session_id", req.Msg.SessionID,
		"expense_id", req.Msg.ExpenseID,
	)

	if _, err := s.openSession(ctx, req.Msg.SessionID); err != nil {
		slog.Error("DeleteExpense failed", "session_id", req.Msg.SessionID, "error", err)
		return nil, connectError(err)
	}

	if err := s.store.DeleteExpense(ctx, req.Msg.SessionID, req.Msg.ExpenseID); err != nil {
		slog.Error("DeleteExpense failed", "expense_id", req.Msg.ExpenseID, "error", err)
		return nil, connectError(err)
	}

	slog.Info("Expense deleted", "session_id", req.Msg.SessionID, "expense_id", req.Msg.ExpenseID)

	return connect.NewResponse(&api.DeleteExpenseResponse{}), nil
}

// PreviewEqualSplits shows how an amount would be divided before the expense is saved.
func (s *ExpenseService) PreviewEqualSplits(ctx context.Context, req *connect.Request[api.PreviewEqualSplitsRequest]) (*connect.Response[api.PreviewEqualSplitsResponse], error) {
	slog.Debug("PreviewEqualSplits request received",
		"amount", req.Msg.Amount,
		"participants_count", len(req.Msg.ParticipantIDs),
	)

	splits := calculator.ComputeEqualSplits(req.Msg.Amount, req.Msg.ParticipantIDs)

	return connect.NewResponse(&api.PreviewEqualSplitsResponse{Splits: toAPISplits(splits)}), nil
}

// openSession loads a session that still accepts expense changes.
func (s *ExpenseService) openSession(ctx context.Context, sessionID string) (*models.Session, error) {
	session, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.IsArchived() {
		return nil, fmt.Errorf("session %s: %w", sessionID, ErrSessionArchived)
	}
	return session, nil
}

func splitModeOrDefault(mode string) models.SplitMode {
	if mode == "" {
		return models.SplitEqual
	}
	return models.SplitMode(mode)
}

// expenseFromInput builds the stored expense from validated input.
func expenseFromInput(in validation.ExpenseInput) *models.Expense {
	return &models.Expense{
		Description:    in.Description,
		Amount:         in.Amount,
		Category:       models.NormalizeCategory(in.Category),
		PayerID:        in.PayerID,
		ParticipantIDs: in.ParticipantIDs,
		SplitMode:      in.SplitMode,
		Splits:         calculator.MaterializeSplits(in.Amount, in.SplitMode, in.ParticipantIDs, in.Splits),
	}
}
