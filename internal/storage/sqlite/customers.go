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

// CreateCustomer inserts a new customer.
func (s *SQLiteStore) CreateCustomer(ctx context.Context, customer *models.Customer) error {
	if customer.ID == "" {
		customer.ID = uuid.New().String()
	}
	if customer.CreatedAt == 0 {
		customer.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO customers (id, user_id, name, created_at) VALUES (?, ?, ?, ?)",
		customer.ID, customer.UserID, customer.Name, customer.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert customer: %w", err)
	}

	return nil
}

// GetCustomer retrieves a customer by ID.
func (s *SQLiteStore) GetCustomer(ctx context.Context, customerID string) (*models.Customer, error) {
	customer := &models.Customer{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, user_id, name, created_at FROM customers WHERE id = ?",
		customerID,
	).Scan(&customer.ID, &customer.UserID, &customer.Name, &customer.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("customer %s: %w", customerID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}

	return customer, nil
}

// ListCustomersByUser retrieves all customers owned by a user, oldest first.
func (s *SQLiteStore) ListCustomersByUser(ctx context.Context, userID string) ([]*models.Customer, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, user_id, name, created_at FROM customers WHERE user_id = ? ORDER BY rowid",
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	defer rows.Close()

	var customers []*models.Customer
	for rows.Next() {
		customer := &models.Customer{}
		if err := rows.Scan(&customer.ID, &customer.UserID, &customer.Name, &customer.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan customer: %w", err)
		}
		customers = append(customers, customer)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate customers: %w", err)
	}

	return customers, nil
}

// DeleteCustomer removes a customer. Their entries are removed by the
// ON DELETE CASCADE foreign key.
func (s *SQLiteStore) DeleteCustomer(ctx context.Context, customerID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM customers WHERE id = ?", customerID)
	if err != nil {
		return fmt.Errorf("failed to delete customer: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("customer %s: %w", customerID, storage.ErrNotFound)
	}

	return nil
}
