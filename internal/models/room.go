package models

// SplitRoom is a group of users sharing expenses.
type SplitRoom struct {
	// ID is the unique identifier for the room (UUID format).
	ID string `json:"id"`

	// Name is the display name of the room.
	Name string `json:"name"`

	// CreatorID is the user who created the room. The creator is
	// always the room's first member.
	CreatorID string `json:"creatorId"`

	// Members are the user IDs of current room members, in join order.
	Members []string `json:"members"`

	// CreatedAt is the Unix timestamp when the room was created.
	CreatedAt int64 `json:"createdAt"`
}
