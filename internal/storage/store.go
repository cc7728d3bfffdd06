// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/moneymate/backend/internal/models"
)

var (
	// ErrNotFound is returned when a referenced record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate is returned when an insert would violate a uniqueness
	// constraint, e.g. joining a room twice.
	ErrDuplicate = errors.New("record already exists")
)

// Store defines the persistence operations for MoneyMate.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL,
// etc.) without changing the service layer.
type Store interface {
	// Users
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUsersByIDs(ctx context.Context, ids []string) (map[string]*models.User, error)

	// Customers. A customer's entry sequence is derived by querying
	// entries on their back-reference; there is no forward list.
	CreateCustomer(ctx context.Context, customer *models.Customer) error
	GetCustomer(ctx context.Context, customerID string) (*models.Customer, error)
	ListCustomersByUser(ctx context.Context, userID string) ([]*models.Customer, error)
	DeleteCustomer(ctx context.Context, customerID string) error

	// Entries
	CreateEntry(ctx context.Context, entry *models.Entry) error
	GetEntry(ctx context.Context, entryID string) (*models.Entry, error)
	ListEntriesByCustomer(ctx context.Context, customerID string) ([]*models.Entry, error)
	UpdateEntry(ctx context.Context, entry *models.Entry) error
	DeleteEntry(ctx context.Context, entryID string) error

	// Split rooms. CreateRoom inserts the room and its creator's
	// membership in one transaction.
	CreateRoom(ctx context.Context, room *models.SplitRoom) error
	GetRoom(ctx context.Context, roomID string) (*models.SplitRoom, error)
	ListRoomsByUser(ctx context.Context, userID string) ([]*models.SplitRoom, error)
	AddRoomMember(ctx context.Context, roomID, userID string) error
	IsRoomMember(ctx context.Context, roomID, userID string) (bool, error)

	// Split expenses. CreateExpense inserts the expense and all shares
	// in one transaction.
	CreateExpense(ctx context.Context, expense *models.SplitExpense) error
	GetExpense(ctx context.Context, expenseID string) (*models.SplitExpense, error)
	ListExpensesByRoom(ctx context.Context, roomID string) ([]*models.SplitExpense, error)

	// Settlements
	CreateSettlement(ctx context.Context, settlement *models.Settlement) error
	ListSettlementsByRoom(ctx context.Context, roomID string) ([]*models.Settlement, error)

	// Close releases any resources held by the store.
	Close() error
}
