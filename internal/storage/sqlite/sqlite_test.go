package sqlite

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/moneymate/backend/internal/models"
	"github.com/moneymate/backend/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "moneymate-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

func createTestUser(t *testing.T, store *SQLiteStore, email string) *models.User {
	t.Helper()
	user := models.NewUser(email, "Test User", "hash")
	if err := store.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	return user
}

func TestUserRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user := createTestUser(t, store, "alice@example.com")

	byEmail, err := store.GetUserByEmail(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail failed: %v", err)
	}
	if byEmail == nil || byEmail.ID != user.ID {
		t.Errorf("GetUserByEmail returned %+v, want ID %s", byEmail, user.ID)
	}

	if _, err := store.GetUserByEmail(ctx, "nobody@example.com"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown email, got %v", err)
	}
	if _, err := store.GetUserByID(ctx, "missing-id"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown ID, got %v", err)
	}
}

func TestCustomerAndEntries(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	user := createTestUser(t, store, "owner@example.com")

	customer := &models.Customer{UserID: user.ID, Name: "Landlord"}
	if err := store.CreateCustomer(ctx, customer); err != nil {
		t.Fatalf("CreateCustomer failed: %v", err)
	}
	if customer.ID == "" {
		t.Error("expected customer ID to be generated")
	}
	if customer.CreatedAt == 0 {
		t.Error("expected CreatedAt to be set")
	}

	t.Run("entries listed in insertion order", func(t *testing.T) {
		first := &models.Entry{CustomerID: customer.ID, Amount: 100, EntryType: models.EntryTypeGave, Reason: "rent"}
		second := &models.Entry{CustomerID: customer.ID, Amount: 40, EntryType: models.EntryTypeGet}
		for _, e := range []*models.Entry{first, second} {
			if err := store.CreateEntry(ctx, e); err != nil {
				t.Fatalf("CreateEntry failed: %v", err)
			}
		}

		entries, err := store.ListEntriesByCustomer(ctx, customer.ID)
		if err != nil {
			t.Fatalf("ListEntriesByCustomer failed: %v", err)
		}
		if len(entries) != 2 {
			t.Fatalf("expected 2 entries, got %d", len(entries))
		}
		if entries[0].ID != first.ID || entries[1].ID != second.ID {
			t.Error("entries not in insertion order")
		}
		if entries[0].Reason != "rent" {
			t.Errorf("reason: expected 'rent', got %q", entries[0].Reason)
		}
		if entries[1].Reason != "" {
			t.Errorf("expected empty reason, got %q", entries[1].Reason)
		}
	})

	t.Run("update rewrites amount and reason only", func(t *testing.T) {
		entry := &models.Entry{CustomerID: customer.ID, Amount: 10, EntryType: models.EntryTypeGave}
		if err := store.CreateEntry(ctx, entry); err != nil {
			t.Fatalf("CreateEntry failed: %v", err)
		}

		entry.Amount = 25
		entry.Reason = "groceries"
		if err := store.UpdateEntry(ctx, entry); err != nil {
			t.Fatalf("UpdateEntry failed: %v", err)
		}

		got, err := store.GetEntry(ctx, entry.ID)
		if err != nil {
			t.Fatalf("GetEntry failed: %v", err)
		}
		if got.Amount != 25 || got.Reason != "groceries" {
			t.Errorf("update not persisted: %+v", got)
		}
		if got.EntryType != models.EntryTypeGave {
			t.Errorf("entry type changed: %s", got.EntryType)
		}
		if got.CustomerID != customer.ID {
			t.Errorf("customer reference changed: %s", got.CustomerID)
		}
	})

	t.Run("update of missing entry reports not found", func(t *testing.T) {
		entry := &models.Entry{ID: "missing", CustomerID: customer.ID, Amount: 5, EntryType: models.EntryTypeGave, CreatedAt: 1, UpdatedAt: 1}
		err := store.UpdateEntry(ctx, entry)
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("delete removes entry from lookup and listing", func(t *testing.T) {
		entry := &models.Entry{CustomerID: customer.ID, Amount: 7, EntryType: models.EntryTypeGet}
		if err := store.CreateEntry(ctx, entry); err != nil {
			t.Fatalf("CreateEntry failed: %v", err)
		}

		if err := store.DeleteEntry(ctx, entry.ID); err != nil {
			t.Fatalf("DeleteEntry failed: %v", err)
		}

		if _, err := store.GetEntry(ctx, entry.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound after delete, got %v", err)
		}

		entries, err := store.ListEntriesByCustomer(ctx, customer.ID)
		if err != nil {
			t.Fatalf("ListEntriesByCustomer failed: %v", err)
		}
		for _, e := range entries {
			if e.ID == entry.ID {
				t.Error("deleted entry still present in customer listing")
			}
		}
	})

	t.Run("deleting the customer cascades to entries", func(t *testing.T) {
		victim := &models.Customer{UserID: user.ID, Name: "Temp"}
		if err := store.CreateCustomer(ctx, victim); err != nil {
			t.Fatalf("CreateCustomer failed: %v", err)
		}
		entry := &models.Entry{CustomerID: victim.ID, Amount: 3, EntryType: models.EntryTypeGave}
		if err := store.CreateEntry(ctx, entry); err != nil {
			t.Fatalf("CreateEntry failed: %v", err)
		}

		if err := store.DeleteCustomer(ctx, victim.ID); err != nil {
			t.Fatalf("DeleteCustomer failed: %v", err)
		}
		if _, err := store.GetEntry(ctx, entry.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected cascade delete of entry, got %v", err)
		}
	})
}

func TestRoomMembership(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	creator := createTestUser(t, store, "creator@example.com")
	joiner := createTestUser(t, store, "joiner@example.com")

	room := &models.SplitRoom{Name: "Flat 4B", CreatorID: creator.ID}
	if err := store.CreateRoom(ctx, room); err != nil {
		t.Fatalf("CreateRoom failed: %v", err)
	}

	t.Run("creator is the first member", func(t *testing.T) {
		got, err := store.GetRoom(ctx, room.ID)
		if err != nil {
			t.Fatalf("GetRoom failed: %v", err)
		}
		if len(got.Members) != 1 || got.Members[0] != creator.ID {
			t.Errorf("members = %v, want [%s]", got.Members, creator.ID)
		}
	})

	t.Run("joining twice is a duplicate", func(t *testing.T) {
		if err := store.AddRoomMember(ctx, room.ID, joiner.ID); err != nil {
			t.Fatalf("AddRoomMember failed: %v", err)
		}

		err := store.AddRoomMember(ctx, room.ID, joiner.ID)
		if !errors.Is(err, storage.ErrDuplicate) {
			t.Errorf("expected ErrDuplicate, got %v", err)
		}

		got, err := store.GetRoom(ctx, room.ID)
		if err != nil {
			t.Fatalf("GetRoom failed: %v", err)
		}
		if len(got.Members) != 2 {
			t.Errorf("member count = %d, want 2 after rejected re-join", len(got.Members))
		}
	})

	t.Run("rooms listed per user with member lists", func(t *testing.T) {
		second := &models.SplitRoom{Name: "Flat 4C", CreatorID: joiner.ID}
		if err := store.CreateRoom(ctx, second); err != nil {
			t.Fatalf("CreateRoom failed: %v", err)
		}

		rooms, err := store.ListRoomsByUser(ctx, joiner.ID)
		if err != nil {
			t.Fatalf("ListRoomsByUser failed: %v", err)
		}
		if len(rooms) != 2 || rooms[0].ID != room.ID || rooms[1].ID != second.ID {
			t.Fatalf("unexpected rooms in join order: %+v", rooms)
		}
		if len(rooms[0].Members) != 2 {
			t.Errorf("first room member count = %d, want 2", len(rooms[0].Members))
		}
		if len(rooms[1].Members) != 1 || rooms[1].Members[0] != joiner.ID {
			t.Errorf("second room members = %v, want [%s]", rooms[1].Members, joiner.ID)
		}
	})

	t.Run("missing room reports not found", func(t *testing.T) {
		if _, err := store.GetRoom(ctx, "nonexistent"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestExpensePersistence(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	creator := createTestUser(t, store, "payer@example.com")

	room := &models.SplitRoom{Name: "Trip", CreatorID: creator.ID}
	if err := store.CreateRoom(ctx, room); err != nil {
		t.Fatalf("CreateRoom failed: %v", err)
	}

	expense := &models.SplitExpense{
		RoomID:  room.ID,
		PayerID: creator.ID,
		Amount:  90,
		Reason:  "dinner",
		Users:   []string{"u-c", "u-a", "u-b"},
		Splits: []models.Share{
			{UserID: "u-c", Amount: 30},
			{UserID: "u-a", Amount: 30},
			{UserID: "u-b", Amount: 30},
		},
	}
	if err := store.CreateExpense(ctx, expense); err != nil {
		t.Fatalf("CreateExpense failed: %v", err)
	}

	got, err := store.GetExpense(ctx, expense.ID)
	if err != nil {
		t.Fatalf("GetExpense failed: %v", err)
	}
	if got.Reason != "dinner" || got.Amount != 90 {
		t.Errorf("expense fields mismatch: %+v", got)
	}
	if len(got.Splits) != len(got.Users) {
		t.Errorf("splits/users length mismatch: %d vs %d", len(got.Splits), len(got.Users))
	}
	// Shares must come back in submitted order, not sorted.
	want := []string{"u-c", "u-a", "u-b"}
	for i, u := range got.Users {
		if u != want[i] {
			t.Errorf("user %d = %s, want %s", i, u, want[i])
		}
	}

	listed, err := store.ListExpensesByRoom(ctx, room.ID)
	if err != nil {
		t.Fatalf("ListExpensesByRoom failed: %v", err)
	}
	if len(listed) != 1 || listed[0].ID != expense.ID {
		t.Errorf("expected listed expense %s, got %v", expense.ID, listed)
	}
}

func TestSettlements(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	creator := createTestUser(t, store, "settle@example.com")

	room := &models.SplitRoom{Name: "Office", CreatorID: creator.ID}
	if err := store.CreateRoom(ctx, room); err != nil {
		t.Fatalf("CreateRoom failed: %v", err)
	}

	settlement := &models.Settlement{
		RoomID:     room.ID,
		FromUserID: "u-1",
		ToUserID:   "u-2",
		Amount:     12.5,
		Note:       "lunch payback",
	}
	if err := store.CreateSettlement(ctx, settlement); err != nil {
		t.Fatalf("CreateSettlement failed: %v", err)
	}
	if settlement.ID == "" {
		t.Error("expected settlement ID to be generated")
	}

	listed, err := store.ListSettlementsByRoom(ctx, room.ID)
	if err != nil {
		t.Fatalf("ListSettlementsByRoom failed: %v", err)
	}
	if len(listed) != 1 || listed[0].Note != "lunch payback" {
		t.Errorf("unexpected settlements: %+v", listed)
	}
}
