package calculator

import (
	"math"
	"testing"

	"github.com/moneymate/backend/internal/models"
)

func TestCustomerBalance(t *testing.T) {
	tests := []struct {
		name    string
		entries []*models.Entry
		want    float64
	}{
		{
			name: "gave entries add to what the customer owes",
			entries: []*models.Entry{
				{Amount: 100, EntryType: models.EntryTypeGave},
				{Amount: 50, EntryType: models.EntryTypeGave},
			},
			want: 150,
		},
		{
			name: "get entries subtract",
			entries: []*models.Entry{
				{Amount: 100, EntryType: models.EntryTypeGave},
				{Amount: 30, EntryType: models.EntryTypeGet},
			},
			want: 70,
		},
		{
			name: "net negative means the user owes the customer",
			entries: []*models.Entry{
				{Amount: 20, EntryType: models.EntryTypeGave},
				{Amount: 80, EntryType: models.EntryTypeGet},
			},
			want: -60,
		},
		{
			name:    "no entries",
			entries: nil,
			want:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CustomerBalance(tt.entries); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("CustomerBalance() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRoomBalances(t *testing.T) {
	t.Run("single expense produces debts to the payer", func(t *testing.T) {
		expenses := []*models.SplitExpense{
			{ID: "e1", PayerID: "alice", Amount: 90, Users: []string{"alice", "bob", "carol"}},
		}

		balances, debts, err := RoomBalances(expenses, nil)
		if err != nil {
			t.Fatalf("RoomBalances failed: %v", err)
		}

		got := make(map[string]MemberBalance)
		for _, b := range balances {
			got[b.UserID] = b
		}

		if math.Abs(got["alice"].NetBalance-60) > 0.01 {
			t.Errorf("alice net = %v, want 60", got["alice"].NetBalance)
		}
		if math.Abs(got["bob"].NetBalance+30) > 0.01 {
			t.Errorf("bob net = %v, want -30", got["bob"].NetBalance)
		}
		if math.Abs(got["carol"].NetBalance+30) > 0.01 {
			t.Errorf("carol net = %v, want -30", got["carol"].NetBalance)
		}

		if len(debts) != 2 {
			t.Fatalf("expected 2 debt edges, got %d", len(debts))
		}
		for _, d := range debts {
			if d.To != "alice" {
				t.Errorf("debt edge should point to alice, got %s", d.To)
			}
			if math.Abs(d.Amount-30) > 0.01 {
				t.Errorf("debt amount = %v, want 30", d.Amount)
			}
		}
	})

	t.Run("settlement clears a debt", func(t *testing.T) {
		expenses := []*models.SplitExpense{
			{ID: "e1", PayerID: "alice", Amount: 60, Users: []string{"alice", "bob"}},
		}
		settlements := []*models.Settlement{
			{FromUserID: "bob", ToUserID: "alice", Amount: 30},
		}

		balances, debts, err := RoomBalances(expenses, settlements)
		if err != nil {
			t.Fatalf("RoomBalances failed: %v", err)
		}

		for _, b := range balances {
			if math.Abs(b.NetBalance) > 0.01 {
				t.Errorf("%s net = %v, want 0 after settlement", b.UserID, b.NetBalance)
			}
		}
		if len(debts) != 0 {
			t.Errorf("expected no debt edges after settlement, got %d", len(debts))
		}
	})

	t.Run("invalid expense amount surfaces an error", func(t *testing.T) {
		expenses := []*models.SplitExpense{
			{ID: "e1", PayerID: "alice", Amount: 0, Users: []string{"alice"}},
		}

		if _, _, err := RoomBalances(expenses, nil); err == nil {
			t.Error("expected error for zero-amount expense, got nil")
		}
	})

	t.Run("empty room", func(t *testing.T) {
		balances, debts, err := RoomBalances(nil, nil)
		if err != nil {
			t.Fatalf("RoomBalances failed: %v", err)
		}
		if len(balances) != 0 || len(debts) != 0 {
			t.Errorf("expected empty results, got %d balances, %d debts", len(balances), len(debts))
		}
	})
}
