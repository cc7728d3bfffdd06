package models

// Customer is a counterparty whose running balance a user tracks.
// Each customer belongs to exactly one user.
type Customer struct {
	// ID is the unique identifier for the customer (UUID format).
	ID string `json:"id"`

	// UserID is the owning user.
	UserID string `json:"userId"`

	// Name is the display name of the counterparty.
	Name string `json:"name"`

	// CreatedAt is the Unix timestamp when the customer was created.
	CreatedAt int64 `json:"createdAt"`
}
