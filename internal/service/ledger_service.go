package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/moneymate/backend/internal/calculator"
	"github.com/moneymate/backend/internal/models"
	"github.com/moneymate/backend/internal/storage"
)

// LedgerService manages customers and their ledger entries.
type LedgerService struct {
	store storage.Store
}

// NewLedgerService creates a new LedgerService with the given storage backend.
func NewLedgerService(store storage.Store) *LedgerService {
	return &LedgerService{store: store}
}

// ownedCustomer loads a customer and verifies the acting user owns it.
func (s *LedgerService) ownedCustomer(ctx context.Context, userID, customerID string) (*models.Customer, error) {
	customer, err := s.store.GetCustomer(ctx, customerID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%w: %v", ErrNotFound, err)
		}
		return nil, err
	}
	if customer.UserID != userID {
		return nil, fmt.Errorf("%w: customer belongs to another user", ErrForbidden)
	}
	return customer, nil
}

// CreateCustomer creates a customer for the acting user.
func (s *LedgerService) CreateCustomer(ctx context.Context, userID, name string) (*models.Customer, error) {
	if name == "" {
		return nil, invalidf("name required")
	}

	customer := &models.Customer{UserID: userID, Name: name}
	if err := s.store.CreateCustomer(ctx, customer); err != nil {
		slog.Error("CreateCustomer failed", "user_id", userID, "error", err)
		return nil, err
	}

	slog.Info("Customer created", "customer_id", customer.ID, "user_id", userID)
	return customer, nil
}

// ListCustomers returns all customers owned by the user.
func (s *LedgerService) ListCustomers(ctx context.Context, userID string) ([]*models.Customer, error) {
	customers, err := s.store.ListCustomersByUser(ctx, userID)
	if err != nil {
		slog.Error("ListCustomers failed", "user_id", userID, "error", err)
		return nil, err
	}
	return customers, nil
}

// GetCustomer returns a customer and their derived net balance.
// Positive balance means the customer owes the user.
func (s *LedgerService) GetCustomer(ctx context.Context, userID, customerID string) (*models.Customer, float64, error) {
	customer, err := s.ownedCustomer(ctx, userID, customerID)
	if err != nil {
		return nil, 0, err
	}

	entries, err := s.store.ListEntriesByCustomer(ctx, customerID)
	if err != nil {
		slog.Error("GetCustomer: failed to list entries", "customer_id", customerID, "error", err)
		return nil, 0, err
	}

	return customer, calculator.CustomerBalance(entries), nil
}

// DeleteCustomer removes a customer and all their entries.
func (s *LedgerService) DeleteCustomer(ctx context.Context, userID, customerID string) error {
	if _, err := s.ownedCustomer(ctx, userID, customerID); err != nil {
		return err
	}

	if err := s.store.DeleteCustomer(ctx, customerID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%w: %v", ErrNotFound, err)
		}
		slog.Error("DeleteCustomer failed", "customer_id", customerID, "error", err)
		return err
	}

	slog.Info("Customer deleted", "customer_id", customerID, "user_id", userID)
	return nil
}

// AddEntry records a ledger entry against a customer.
func (s *LedgerService) AddEntry(ctx context.Context, userID, customerID string, amount float64, entryType models.EntryType, reason string) (*models.Entry, error) {
	if amount <= 0 {
		return nil, invalidf("amount must be positive")
	}
	if !entryType.Valid() {
		return nil, invalidf("entryType must be %q or %q", models.EntryTypeGave, models.EntryTypeGet)
	}

	if _, err := s.ownedCustomer(ctx, userID, customerID); err != nil {
		return nil, err
	}

	entry := &models.Entry{
		CustomerID: customerID,
		Amount:     amount,
		EntryType:  entryType,
		Reason:     reason,
	}
	if err := s.store.CreateEntry(ctx, entry); err != nil {
		slog.Error("AddEntry failed", "customer_id", customerID, "error", err)
		return nil, err
	}

	slog.Info("Entry created", "entry_id", entry.ID, "customer_id", customerID, "type", entryType)
	return entry, nil
}

// ListEntries returns a customer's entries in creation order.
func (s *LedgerService) ListEntries(ctx context.Context, userID, customerID string) ([]*models.Entry, error) {
	if _, err := s.ownedCustomer(ctx, userID, customerID); err != nil {
		return nil, err
	}

	entries, err := s.store.ListEntriesByCustomer(ctx, customerID)
	if err != nil {
		slog.Error("ListEntries failed", "customer_id", customerID, "error", err)
		return nil, err
	}
	return entries, nil
}

// UpdateEntry changes an entry's amount and reason. Entry type and
// owning customer are immutable.
func (s *LedgerService) UpdateEntry(ctx context.Context, userID, entryID string, amount float64, reason string) (*models.Entry, error) {
	if amount <= 0 {
		return nil, invalidf("amount must be positive")
	}

	entry, err := s.store.GetEntry(ctx, entryID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%w: %v", ErrNotFound, err)
		}
		return nil, err
	}

	if _, err := s.ownedCustomer(ctx, userID, entry.CustomerID); err != nil {
		return nil, err
	}

	entry.Amount = amount
	entry.Reason = reason
	if err := s.store.UpdateEntry(ctx, entry); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%w: %v", ErrNotFound, err)
		}
		slog.Error("UpdateEntry failed", "entry_id", entryID, "error", err)
		return nil, err
	}

	slog.Info("Entry updated", "entry_id", entryID)
	return entry, nil
}

// DeleteEntry removes an entry from a customer's ledger. The entry is
// checked first so a missing entry fails before the customer is touched.
func (s *LedgerService) DeleteEntry(ctx context.Context, userID, customerID, entryID string) error {
	entry, err := s.store.GetEntry(ctx, entryID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%w: %v", ErrNotFound, err)
		}
		return err
	}
	if entry.CustomerID != customerID {
		return fmt.Errorf("%w: entry %s does not belong to customer %s", ErrNotFound, entryID, customerID)
	}

	if _, err := s.ownedCustomer(ctx, userID, customerID); err != nil {
		return err
	}

	if err := s.store.DeleteEntry(ctx, entryID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%w: %v", ErrNotFound, err)
		}
		slog.Error("DeleteEntry failed", "entry_id", entryID, "error", err)
		return err
	}

	slog.Info("Entry deleted", "entry_id", entryID, "customer_id", customerID)
	return nil
}
