package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/settleup/internal/models"
	"github.com/mmynk/settleup/internal/money"
)

// AddExpense persists a new expense with its participants and splits.
func (s *SQLiteStore) AddExpense(ctx context.Context, expense *models.Expense) error {
	// Generate ID if not set
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	now := time.Now().UnixMilli()
	if expense.CreatedAt == 0 {
		expense.CreatedAt = now
	}
	if expense.UpdatedAt == 0 {
		expense.UpdatedAt = expense.CreatedAt
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM sessions WHERE id = ?", expense.SessionID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check session existence: %w", err)
	}
	if exists == 0 {
		return notFound("session", expense.SessionID)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO expenses (id, session_id, description, amount, category, payer_id, split_mode, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		expense.ID, expense.SessionID, expense.Description, int64(expense.Amount),
		string(models.NormalizeCategory(expense.Category)), expense.PayerID, string(expense.SplitMode),
		expense.CreatedAt, expense.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	if err := insertExpenseMembers(ctx, tx, expense); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// UpdateExpense replaces an expense's fields, participants and splits.
// CreatedAt is kept; UpdatedAt is set to now when the caller left it zero.
func (s *SQLiteStore) UpdateExpense(ctx context.Context, expense *models.Expense) error {
	if expense.UpdatedAt == 0 {
		expense.UpdatedAt = time.Now().UnixMilli()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`UPDATE expenses
		 SET description = ?, amount = ?, category = ?, payer_id = ?, split_mode = ?, updated_at = ?
		 WHERE id = ? AND session_id = ?`,
		expense.Description, int64(expense.Amount), string(models.NormalizeCategory(expense.Category)),
		expense.PayerID, string(expense.SplitMode), expense.UpdatedAt,
		expense.ID, expense.SessionID,
	)
	if err != nil {
		return fmt.Errorf("failed to update expense: %w", err)
	}
	if err := requireRow(result, "expense", expense.ID); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM expense_participants WHERE expense_id = ?", expense.ID); err != nil {
		return fmt.Errorf("failed to clear participants: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM expense_splits WHERE expense_id = ?", expense.ID); err != nil {
		return fmt.Errorf("failed to clear splits: %w", err)
	}
	if err := insertExpenseMembers(ctx, tx, expense); err != nil {
		return err
	}

	if err := tx.QueryRowContext(ctx, "SELECT created_at FROM expenses WHERE id = ?", expense.ID).Scan(&expense.CreatedAt); err != nil {
		return fmt.Errorf("failed to read expense: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// DeleteExpense removes an expense. Participants and splits cascade.
func (s *SQLiteStore) DeleteExpense(ctx context.Context, sessionID, expenseID string) error {
	result, err := s.db.ExecContext(ctx,
		"DELETE FROM expenses WHERE id = ? AND session_id = ?",
		expenseID, sessionID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	return requireRow(result, "expense", expenseID)
}

func insertExpenseMembers(ctx context.Context, q querier, expense *models.Expense) error {
	for i, id := range expense.ParticipantIDs {
		_, err := q.ExecContext(ctx,
			"INSERT INTO expense_participants (expense_id, participant_id, position) VALUES (?, ?, ?)",
			expense.ID, id, i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert expense participant: %w", err)
		}
	}

	for i, split := range expense.Splits {
		_, err := q.ExecContext(ctx,
			"INSERT INTO expense_splits (expense_id, participant_id, amount, position) VALUES (?, ?, ?, ?)",
			expense.ID, split.ParticipantID, int64(split.Amount), i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert expense split: %w", err)
		}
	}

	return nil
}

// loadExpenses reads a session's expenses, oldest first, with participants and splits.
// Each result set is drained and closed before the next query runs.
func loadExpenses(ctx context.Context, q querier, sessionID string) ([]models.Expense, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT id, session_id, description, amount, category, payer_id, split_mode, created_at, updated_at
		 FROM expenses WHERE session_id = ? ORDER BY created_at, rowid`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get expenses: %w", err)
	}

	var expenses []models.Expense
	index := make(map[string]int)
	for rows.Next() {
		var e models.Expense
		var amount int64
		var category, splitMode string
		if err := rows.Scan(&e.ID, &e.SessionID, &e.Description, &amount, &category, &e.PayerID,
			&splitMode, &e.CreatedAt, &e.UpdatedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		e.Amount = money.Cents(amount)
		e.Category = models.NormalizeCategory(models.Category(category))
		e.SplitMode = models.SplitMode(splitMode)
		e.ParticipantIDs = []models.ParticipantID{}
		e.Splits = []models.ExpenseSplit{}
		index[e.ID] = len(expenses)
		expenses = append(expenses, e)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}
	if len(expenses) == 0 {
		return []models.Expense{}, nil
	}

	participantRows, err := q.QueryContext(ctx,
		`SELECT p.expense_id, p.participant_id
		 FROM expense_participants p JOIN expenses e ON e.id = p.expense_id
		 WHERE e.session_id = ? ORDER BY p.expense_id, p.position`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get expense participants: %w", err)
	}
	for participantRows.Next() {
		var expenseID string
		var participantID models.ParticipantID
		if err := participantRows.Scan(&expenseID, &participantID); err != nil {
			participantRows.Close()
			return nil, fmt.Errorf("failed to scan expense participant: %w", err)
		}
		if i, ok := index[expenseID]; ok {
			expenses[i].ParticipantIDs = append(expenses[i].ParticipantIDs, participantID)
		}
	}
	participantRows.Close()
	if err := participantRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expense participants: %w", err)
	}

	splitRows, err := q.QueryContext(ctx,
		`SELECT s.expense_id, s.participant_id, s.amount
		 FROM expense_splits s JOIN expenses e ON e.id = s.expense_id
		 WHERE e.session_id = ? ORDER BY s.expense_id, s.position`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get expense splits: %w", err)
	}
	defer splitRows.Close()
	for splitRows.Next() {
		var expenseID string
		var split models.ExpenseSplit
		var amount int64
		if err := splitRows.Scan(&expenseID, &split.ParticipantID, &amount); err != nil {
			return nil, fmt.Errorf("failed to scan expense split: %w", err)
		}
		split.Amount = money.Cents(amount)
		if i, ok := index[expenseID]; ok {
			expenses[i].Splits = append(expenses[i].Splits, split)
		}
	}
	if err := splitRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expense splits: %w", err)
	}

	return expenses, nil
}
