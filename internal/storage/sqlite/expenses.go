package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/moneymate/backend/internal/models"
	"github.com/moneymate/backend/internal/storage"
)

// CreateExpense inserts an expense and all its shares in one transaction.
// Share positions preserve the submitted participant order.
func (s *SQLiteStore) CreateExpense(ctx context.Context, expense *models.SplitExpense) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}

	var reason interface{}
	if expense.Reason != "" {
		reason = expense.Reason
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO split_expenses (id, room_id, payer_id, amount, reason, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		expense.ID, expense.RoomID, expense.PayerID, expense.Amount, reason, expense.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	for i, share := range expense.Splits {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO expense_shares (expense_id, user_id, amount, position) VALUES (?, ?, ?, ?)",
			expense.ID, share.UserID, share.Amount, i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert expense share: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetExpense retrieves an expense by ID, including its shares in
// submitted participant order.
func (s *SQLiteStore) GetExpense(ctx context.Context, expenseID string) (*models.SplitExpense, error) {
	expense := &models.SplitExpense{}
	var reason sql.NullString

	err := s.db.QueryRowContext(ctx,
		`SELECT id, room_id, payer_id, amount, reason, created_at
		 FROM split_expenses WHERE id = ?`,
		expenseID,
	).Scan(&expense.ID, &expense.RoomID, &expense.PayerID, &expense.Amount, &reason, &expense.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("expense %s: %w", expenseID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	if reason.Valid {
		expense.Reason = reason.String
	}

	if err := s.loadShares(ctx, expense); err != nil {
		return nil, err
	}

	return expense, nil
}

// ListExpensesByRoom retrieves all expenses for a room in insertion
// order, shares included. This query IS the room's expense sequence.
func (s *SQLiteStore) ListExpensesByRoom(ctx context.Context, roomID string) ([]*models.SplitExpense, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, room_id, payer_id, amount, reason, created_at
		 FROM split_expenses WHERE room_id = ? ORDER BY rowid`,
		roomID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*models.SplitExpense
	for rows.Next() {
		expense := &models.SplitExpense{}
		var reason sql.NullString

		if err := rows.Scan(&expense.ID, &expense.RoomID, &expense.PayerID,
			&expense.Amount, &reason, &expense.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		if reason.Valid {
			expense.Reason = reason.String
		}

		expenses = append(expenses, expense)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	for _, expense := range expenses {
		if err := s.loadShares(ctx, expense); err != nil {
			return nil, err
		}
	}

	return expenses, nil
}

// loadShares populates expense.Users and expense.Splits from the
// expense_shares table, ordered by stored position.
func (s *SQLiteStore) loadShares(ctx context.Context, expense *models.SplitExpense) error {
	rows, err := s.db.QueryContext(ctx,
		"SELECT user_id, amount FROM expense_shares WHERE expense_id = ? ORDER BY position",
		expense.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to get expense shares: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var share models.Share
		if err := rows.Scan(&share.UserID, &share.Amount); err != nil {
			return fmt.Errorf("failed to scan expense share: %w", err)
		}
		expense.Users = append(expense.Users, share.UserID)
		expense.Splits = append(expense.Splits, share)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate expense shares: %w", err)
	}

	return nil
}
