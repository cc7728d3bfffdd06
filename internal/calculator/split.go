// Package calculator holds the pure computation at the heart of MoneyMate:
// even-split allocation, customer balance derivation, and room balance
// aggregation. Nothing in this package touches storage or transport.
package calculator

import (
	"fmt"

	"github.com/moneymate/backend/internal/models"
)

// EvenSplit divides amount evenly among the given participants.
//
// It returns one share per participant, in input order, each exactly
// amount / len(participants). The division is plain float64 arithmetic
// with no remainder redistribution, so for non-terminating results
// (e.g. 10 among 3) the sum of shares may differ from amount by a small
// float error. Callers comparing totals should use a tolerance.
func EvenSplit(amount float64, participants []string) ([]models.Share, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("amount must be positive, got %v", amount)
	}
	if len(participants) == 0 {
		return nil, fmt.Errorf("must have at least one participant")
	}

	perPerson := amount / float64(len(participants))
	shares := make([]models.Share, len(participants))
	for i, p := range participants {
		shares[i] = models.Share{UserID: p, Amount: perPerson}
	}
	return shares, nil
}
