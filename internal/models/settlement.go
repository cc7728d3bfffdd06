package models

// Settlement represents a payment between room members to clear debts.
type Settlement struct {
	// ID is the unique identifier for the settlement (UUID format).
	ID string `json:"id"`

	// RoomID is the room this settlement belongs to.
	RoomID string `json:"roomId"`

	// FromUserID is the user who paid (debtor settling up).
	FromUserID string `json:"fromUserId"`

	// ToUserID is the user who received payment (creditor being paid).
	ToUserID string `json:"toUserId"`

	// Amount is the payment amount.
	Amount float64 `json:"amount"`

	// Note is an optional description for the settlement.
	Note string `json:"note,omitempty"`

	// CreatedAt is the Unix timestamp when the settlement was recorded.
	CreatedAt int64 `json:"createdAt"`
}
