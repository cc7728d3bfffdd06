package models

// EntryType is the direction of a ledger entry.
type EntryType string

const (
	// EntryTypeGave means the user gave money to the customer:
	// the customer owes the user this amount.
	EntryTypeGave EntryType = "You Gave"

	// EntryTypeGet means the user received money from the customer:
	// the user owes the customer this amount.
	EntryTypeGet EntryType = "You Get"
)

// Valid reports whether t is one of the two known entry directions.
func (t EntryType) Valid() bool {
	return t == EntryTypeGave || t == EntryTypeGet
}

// Entry represents one ledger line for a customer.
//
// Amount and Reason may be edited after creation; EntryType and
// CustomerID are immutable.
type Entry struct {
	// ID is the unique identifier for the entry (UUID format).
	ID string `json:"id"`

	// CustomerID is the owning customer.
	CustomerID string `json:"customerId"`

	// Amount is the entry amount. Always positive; direction is
	// carried by EntryType.
	Amount float64 `json:"amount"`

	// EntryType is the direction of the entry.
	EntryType EntryType `json:"entryType"`

	// Reason is an optional free-text description.
	Reason string `json:"reason,omitempty"`

	// CreatedAt is the Unix timestamp when the entry was created.
	CreatedAt int64 `json:"createdAt"`

	// UpdatedAt is the Unix timestamp of the last edit.
	UpdatedAt int64 `json:"updatedAt"`
}
