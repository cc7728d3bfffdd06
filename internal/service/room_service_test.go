package service

import (
	"context"
	"errors"
	"math"
	"testing"
)

func TestRoomService_JoinRoom(t *testing.T) {
	store := newTestStore(t)
	svc := NewRoomService(store)
	ctx := context.Background()
	creator := createUser(t, store, "creator@example.com")
	joiner := createUser(t, store, "joiner@example.com")

	room, err := svc.CreateRoom(ctx, creator.ID, "Ski Trip")
	if err != nil {
		t.Fatalf("CreateRoom failed: %v", err)
	}
	if len(room.Members) != 1 || room.Members[0] != creator.ID {
		t.Errorf("creator should be first member, got %v", room.Members)
	}

	t.Run("join adds member", func(t *testing.T) {
		joined, err := svc.JoinRoom(ctx, joiner.ID, room.ID)
		if err != nil {
			t.Fatalf("JoinRoom failed: %v", err)
		}
		if len(joined.Members) != 2 {
			t.Errorf("member count = %d, want 2", len(joined.Members))
		}
	})

	t.Run("second join is a conflict and membership is unchanged", func(t *testing.T) {
		_, err := svc.JoinRoom(ctx, joiner.ID, room.ID)
		if !errors.Is(err, ErrConflict) {
			t.Errorf("expected ErrConflict, got %v", err)
		}

		got, err := store.GetRoom(ctx, room.ID)
		if err != nil {
			t.Fatalf("GetRoom failed: %v", err)
		}
		if len(got.Members) != 2 {
			t.Errorf("member count changed to %d after rejected join", len(got.Members))
		}
	})

	t.Run("creator rejoining their own room is a conflict", func(t *testing.T) {
		_, err := svc.JoinRoom(ctx, creator.ID, room.ID)
		if !errors.Is(err, ErrConflict) {
			t.Errorf("expected ErrConflict, got %v", err)
		}
	})

	t.Run("unknown room is not found", func(t *testing.T) {
		_, err := svc.JoinRoom(ctx, joiner.ID, "nonexistent")
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("room detail resolves member records in join order", func(t *testing.T) {
		_, members, _, err := svc.GetRoom(ctx, creator.ID, room.ID)
		if err != nil {
			t.Fatalf("GetRoom failed: %v", err)
		}
		if len(members) != 2 {
			t.Fatalf("expected 2 member records, got %d", len(members))
		}
		if members[0].ID != creator.ID || members[1].ID != joiner.ID {
			t.Errorf("members out of join order: %s, %s", members[0].ID, members[1].ID)
		}
		if members[0].Email != "creator@example.com" {
			t.Errorf("member email = %s, want creator@example.com", members[0].Email)
		}
	})
}

func TestRoomService_AddExpense(t *testing.T) {
	store := newTestStore(t)
	svc := NewRoomService(store)
	ctx := context.Background()
	alice := createUser(t, store, "alice@example.com")
	bob := createUser(t, store, "bob@example.com")
	mallory := createUser(t, store, "mallory@example.com")

	room, err := svc.CreateRoom(ctx, alice.ID, "Dinner Club")
	if err != nil {
		t.Fatalf("CreateRoom failed: %v", err)
	}
	if _, err := svc.JoinRoom(ctx, bob.ID, room.ID); err != nil {
		t.Fatalf("JoinRoom failed: %v", err)
	}

	t.Run("even split across members", func(t *testing.T) {
		expense, err := svc.AddExpense(ctx, alice.ID, room.ID, 100, "pizza", []string{alice.ID, bob.ID})
		if err != nil {
			t.Fatalf("AddExpense failed: %v", err)
		}

		if len(expense.Splits) != len(expense.Users) {
			t.Errorf("splits/users length mismatch: %d vs %d", len(expense.Splits), len(expense.Users))
		}
		for i, share := range expense.Splits {
			if math.Abs(share.Amount-50) > 0.01 {
				t.Errorf("share %d = %v, want 50", i, share.Amount)
			}
		}
		if expense.Splits[0].UserID != alice.ID || expense.Splits[1].UserID != bob.ID {
			t.Error("shares not in submitted participant order")
		}
	})

	t.Run("non-member payer is forbidden", func(t *testing.T) {
		_, err := svc.AddExpense(ctx, mallory.ID, room.ID, 30, "", []string{alice.ID})
		if !errors.Is(err, ErrForbidden) {
			t.Errorf("expected ErrForbidden, got %v", err)
		}
	})

	t.Run("non-member participant is invalid", func(t *testing.T) {
		_, err := svc.AddExpense(ctx, alice.ID, room.ID, 30, "", []string{alice.ID, mallory.ID})
		if !errors.Is(err, ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("duplicate participant is invalid", func(t *testing.T) {
		_, err := svc.AddExpense(ctx, alice.ID, room.ID, 10, "", []string{alice.ID, alice.ID})
		if !errors.Is(err, ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("invalid amount and empty participants rejected", func(t *testing.T) {
		if _, err := svc.AddExpense(ctx, alice.ID, room.ID, 0, "", []string{alice.ID}); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput for zero amount, got %v", err)
		}
		if _, err := svc.AddExpense(ctx, alice.ID, room.ID, 10, "", nil); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput for empty users, got %v", err)
		}
	})

	t.Run("unknown room is not found", func(t *testing.T) {
		_, err := svc.AddExpense(ctx, alice.ID, "nonexistent", 10, "", []string{alice.ID})
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("non-member cannot list expenses", func(t *testing.T) {
		_, err := svc.ListExpenses(ctx, mallory.ID, room.ID)
		if !errors.Is(err, ErrForbidden) {
			t.Errorf("expected ErrForbidden, got %v", err)
		}
	})
}

func TestRoomService_Balances(t *testing.T) {
	store := newTestStore(t)
	svc := NewRoomService(store)
	ctx := context.Background()
	alice := createUser(t, store, "a@example.com")
	bob := createUser(t, store, "b@example.com")

	room, err := svc.CreateRoom(ctx, alice.ID, "Apartment")
	if err != nil {
		t.Fatalf("CreateRoom failed: %v", err)
	}
	if _, err := svc.JoinRoom(ctx, bob.ID, room.ID); err != nil {
		t.Fatalf("JoinRoom failed: %v", err)
	}

	if _, err := svc.AddExpense(ctx, alice.ID, room.ID, 80, "utilities", []string{alice.ID, bob.ID}); err != nil {
		t.Fatalf("AddExpense failed: %v", err)
	}

	balances, debts, err := svc.Balances(ctx, alice.ID, room.ID)
	if err != nil {
		t.Fatalf("Balances failed: %v", err)
	}

	byUser := make(map[string]float64)
	for _, b := range balances {
		byUser[b.UserID] = b.NetBalance
	}
	if math.Abs(byUser[alice.ID]-40) > 0.01 {
		t.Errorf("alice net = %v, want 40", byUser[alice.ID])
	}
	if math.Abs(byUser[bob.ID]+40) > 0.01 {
		t.Errorf("bob net = %v, want -40", byUser[bob.ID])
	}
	if len(debts) != 1 || debts[0].From != bob.ID || debts[0].To != alice.ID {
		t.Errorf("unexpected debts: %+v", debts)
	}

	t.Run("settlement zeroes the debt", func(t *testing.T) {
		if _, err := svc.RecordSettlement(ctx, bob.ID, room.ID, alice.ID, 40, "rent share"); err != nil {
			t.Fatalf("RecordSettlement failed: %v", err)
		}

		_, debts, err := svc.Balances(ctx, alice.ID, room.ID)
		if err != nil {
			t.Fatalf("Balances failed: %v", err)
		}
		if len(debts) != 0 {
			t.Errorf("expected no debts after settlement, got %+v", debts)
		}
	})

	t.Run("self-settlement is invalid", func(t *testing.T) {
		if _, err := svc.RecordSettlement(ctx, bob.ID, room.ID, bob.ID, 10, ""); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})
}
