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

// CreateEntry inserts a new ledger entry.
func (s *SQLiteStore) CreateEntry(ctx context.Context, entry *models.Entry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	now := time.Now().Unix()
	if entry.CreatedAt == 0 {
		entry.CreatedAt = now
	}
	if entry.UpdatedAt == 0 {
		entry.UpdatedAt = now
	}

	var reason interface{}
	if entry.Reason != "" {
		reason = entry.Reason
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO entries (id, customer_id, amount, entry_type, reason, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.CustomerID, entry.Amount, string(entry.EntryType), reason,
		entry.CreatedAt, entry.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert entry: %w", err)
	}

	return nil
}

// GetEntry retrieves an entry by ID.
func (s *SQLiteStore) GetEntry(ctx context.Context, entryID string) (*models.Entry, error) {
	entry := &models.Entry{}
	var reason sql.NullString

	err := s.db.QueryRowContext(ctx,
		`SELECT id, customer_id, amount, entry_type, reason, created_at, updated_at
		 FROM entries WHERE id = ?`,
		entryID,
	).Scan(&entry.ID, &entry.CustomerID, &entry.Amount, &entry.EntryType, &reason,
		&entry.CreatedAt, &entry.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("entry %s: %w", entryID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get entry: %w", err)
	}

	if reason.Valid {
		entry.Reason = reason.String
	}

	return entry, nil
}

// ListEntriesByCustomer retrieves all entries for a customer in insertion
// order. This query IS the customer's entry sequence; nothing else
// records it.
func (s *SQLiteStore) ListEntriesByCustomer(ctx context.Context, customerID string) ([]*models.Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, customer_id, amount, entry_type, reason, created_at, updated_at
		 FROM entries WHERE customer_id = ? ORDER BY rowid`,
		customerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	defer rows.Close()

	var entries []*models.Entry
	for rows.Next() {
		entry := &models.Entry{}
		var reason sql.NullString

		if err := rows.Scan(&entry.ID, &entry.CustomerID, &entry.Amount, &entry.EntryType,
			&reason, &entry.CreatedAt, &entry.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		if reason.Valid {
			entry.Reason = reason.String
		}

		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate entries: %w", err)
	}

	return entries, nil
}

// UpdateEntry rewrites an entry's amount and reason. Entry type and
// customer are immutable and not touched. Returns ErrNotFound if the
// row disappeared between lookup and write.
func (s *SQLiteStore) UpdateEntry(ctx context.Context, entry *models.Entry) error {
	entry.UpdatedAt = time.Now().Unix()

	var reason interface{}
	if entry.Reason != "" {
		reason = entry.Reason
	}

	res, err := s.db.ExecContext(ctx,
		"UPDATE entries SET amount = ?, reason = ?, updated_at = ? WHERE id = ?",
		entry.Amount, reason, entry.UpdatedAt, entry.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update entry: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("entry %s not updated: %w", entry.ID, storage.ErrNotFound)
	}

	return nil
}

// DeleteEntry removes an entry by ID.
func (s *SQLiteStore) DeleteEntry(ctx context.Context, entryID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM entries WHERE id = ?", entryID)
	if err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("entry %s: %w", entryID, storage.ErrNotFound)
	}

	return nil
}
