package models

// Share is one participant's portion of a split expense.
type Share struct {
	// UserID is the participant this share belongs to.
	UserID string `json:"userId"`

	// Amount is the participant's portion of the expense.
	Amount float64 `json:"amount"`
}

// SplitExpense is one shared-cost event attached to a SplitRoom,
// divided evenly among named participants. Immutable after creation.
type SplitExpense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string `json:"id"`

	// RoomID is the owning split room.
	RoomID string `json:"roomId"`

	// PayerID is the room member who paid the full amount.
	PayerID string `json:"payerId"`

	// Amount is the total expense amount.
	Amount float64 `json:"amount"`

	// Reason is an optional free-text description.
	Reason string `json:"reason,omitempty"`

	// Users are the participant user IDs, in the order submitted.
	Users []string `json:"users"`

	// Splits holds one share per participant, same order as Users.
	Splits []Share `json:"splits"`

	// CreatedAt is the Unix timestamp when the expense was created.
	CreatedAt int64 `json:"createdAt"`
}
