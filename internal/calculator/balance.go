package calculator

import (
	"fmt"

	"github.com/moneymate/backend/internal/models"
)

// epsilon is the threshold below which a balance is treated as settled,
// absorbing float noise from naive even-split division.
const epsilon = 0.01

// CustomerBalance derives a customer's net balance from their entries.
//
// Sign convention: "You Gave" entries add to the balance (the customer
// owes the user), "You Get" entries subtract (the user owes the
// customer). A positive result is money owed TO the user.
func CustomerBalance(entries []*models.Entry) float64 {
	var balance float64
	for _, e := range entries {
		switch e.EntryType {
		case models.EntryTypeGave:
			balance += e.Amount
		case models.EntryTypeGet:
			balance -= e.Amount
		}
	}
	return balance
}

// MemberBalance is the aggregated position of one room member.
type MemberBalance struct {
	UserID     string  `json:"userId"`
	NetBalance float64 `json:"netBalance"` // positive = owed money, negative = owes money
	TotalPaid  float64 `json:"totalPaid"`  // amount paid across expenses and settlements
	TotalOwed  float64 `json:"totalOwed"`  // amount owed across expense shares and received settlements
}

// DebtEdge is a simplified debt from one member to another.
type DebtEdge struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Amount float64 `json:"amount"`
}

// RoomBalances aggregates expenses and settlements into per-member
// balances and a simplified debt list.
//
// For each expense the payer is credited with the full amount and every
// participant is debited their even share. For each settlement the payer
// is credited and the receiver debited. Net balance = paid - owed.
// Debts are simplified by greedily matching debtors against creditors;
// amounts below the settlement epsilon are dropped as float noise.
func RoomBalances(expenses []*models.SplitExpense, settlements []*models.Settlement) ([]MemberBalance, []DebtEdge, error) {
	balances := make(map[string]*MemberBalance)
	touch := func(userID string) *MemberBalance {
		if b, ok := balances[userID]; ok {
			return b
		}
		b := &MemberBalance{UserID: userID}
		balances[userID] = b
		return b
	}
	var order []string // deterministic output order: first appearance

	for _, exp := range expenses {
		shares, err := EvenSplit(exp.Amount, exp.Users)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to split expense %s: %w", exp.ID, err)
		}

		if _, seen := balances[exp.PayerID]; !seen {
			order = append(order, exp.PayerID)
		}
		touch(exp.PayerID).TotalPaid += exp.Amount

		for _, share := range shares {
			if _, seen := balances[share.UserID]; !seen {
				order = append(order, share.UserID)
			}
			touch(share.UserID).TotalOwed += share.Amount
		}
	}

	for _, s := range settlements {
		if _, seen := balances[s.FromUserID]; !seen {
			order = append(order, s.FromUserID)
		}
		if _, seen := balances[s.ToUserID]; !seen {
			order = append(order, s.ToUserID)
		}
		touch(s.FromUserID).TotalPaid += s.Amount
		touch(s.ToUserID).TotalOwed += s.Amount
	}

	memberBalances := make([]MemberBalance, 0, len(order))
	var debtors, creditors []MemberBalance
	for _, userID := range order {
		b := balances[userID]
		b.NetBalance = b.TotalPaid - b.TotalOwed
		memberBalances = append(memberBalances, *b)

		if b.NetBalance < -epsilon {
			debtors = append(debtors, *b)
		} else if b.NetBalance > epsilon {
			creditors = append(creditors, *b)
		}
	}

	// Greedy matching: walk debtors and creditors in parallel, settling
	// the smaller of the two outstanding amounts each step.
	var edges []DebtEdge
	owes := make(map[string]float64, len(debtors))
	owed := make(map[string]float64, len(creditors))
	for _, d := range debtors {
		owes[d.UserID] = -d.NetBalance
	}
	for _, c := range creditors {
		owed[c.UserID] = c.NetBalance
	}

	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		debtor, creditor := debtors[i].UserID, creditors[j].UserID

		amount := owes[debtor]
		if owed[creditor] < amount {
			amount = owed[creditor]
		}
		if amount > epsilon {
			edges = append(edges, DebtEdge{From: debtor, To: creditor, Amount: amount})
		}

		owes[debtor] -= amount
		owed[creditor] -= amount
		if owes[debtor] < epsilon {
			i++
		}
		if owed[creditor] < epsilon {
			j++
		}
	}

	return memberBalances, edges, nil
}
