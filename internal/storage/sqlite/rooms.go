package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/moneymate/backend/internal/models"
	"github.com/moneymate/backend/internal/storage"
)

// CreateRoom inserts a room and its creator's membership in one
// transaction. The creator is always the first member.
func (s *SQLiteStore) CreateRoom(ctx context.Context, room *models.SplitRoom) error {
	if room.ID == "" {
		room.ID = uuid.New().String()
	}
	if room.CreatedAt == 0 {
		room.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO split_rooms (id, name, creator_id, created_at) VALUES (?, ?, ?, ?)",
		room.ID, room.Name, room.CreatorID, room.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert room: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO room_members (room_id, user_id, joined_at) VALUES (?, ?, ?)",
		room.ID, room.CreatorID, room.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert creator membership: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	room.Members = []string{room.CreatorID}
	return nil
}

// GetRoom retrieves a room by ID, including its member list in join order.
func (s *SQLiteStore) GetRoom(ctx context.Context, roomID string) (*models.SplitRoom, error) {
	room := &models.SplitRoom{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, creator_id, created_at FROM split_rooms WHERE id = ?",
		roomID,
	).Scan(&room.ID, &room.Name, &room.CreatorID, &room.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("room %s: %w", roomID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get room: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT user_id FROM room_members WHERE room_id = ? ORDER BY rowid",
		roomID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get room members: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var userID string
		if err := rows.Scan(&userID); err != nil {
			return nil, fmt.Errorf("failed to scan room member: %w", err)
		}
		room.Members = append(room.Members, userID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate room members: %w", err)
	}

	return room, nil
}

// ListRoomsByUser retrieves all rooms the user is a member of, in join order.
func (s *SQLiteStore) ListRoomsByUser(ctx context.Context, userID string) ([]*models.SplitRoom, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT r.id, r.name, r.creator_id, r.created_at
		 FROM split_rooms r
		 JOIN room_members m ON m.room_id = r.id
		 WHERE m.user_id = ?
		 ORDER BY m.rowid`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	defer rows.Close()

	var rooms []*models.SplitRoom
	for rows.Next() {
		room := &models.SplitRoom{}
		if err := rows.Scan(&room.ID, &room.Name, &room.CreatorID, &room.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan room: %w", err)
		}
		rooms = append(rooms, room)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rooms: %w", err)
	}

	if len(rooms) == 0 {
		return rooms, nil
	}

	// Fill all member lists in one query.
	byID := make(map[string]*models.SplitRoom, len(rooms))
	args := make([]interface{}, len(rooms))
	for i, room := range rooms {
		byID[room.ID] = room
		args[i] = room.ID
	}

	memberRows, err := s.db.QueryContext(ctx,
		`SELECT room_id, user_id FROM room_members
		 WHERE room_id IN (?`+repeatPlaceholder(len(rooms)-1)+`)
		 ORDER BY rowid`,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get room members: %w", err)
	}
	defer memberRows.Close()

	for memberRows.Next() {
		var roomID, memberID string
		if err := memberRows.Scan(&roomID, &memberID); err != nil {
			return nil, fmt.Errorf("failed to scan room member: %w", err)
		}
		byID[roomID].Members = append(byID[roomID].Members, memberID)
	}
	if err := memberRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate room members: %w", err)
	}

	return rooms, nil
}

// AddRoomMember adds a user to a room. Returns ErrDuplicate if the user
// is already a member. The membership primary key arbitrates concurrent
// joins.
func (s *SQLiteStore) AddRoomMember(ctx context.Context, roomID, userID string) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO room_members (room_id, user_id, joined_at) VALUES (?, ?, ?)",
		roomID, userID, time.Now().Unix(),
	)
	if isConstraintErr(err) {
		return fmt.Errorf("user %s already in room %s: %w", userID, roomID, storage.ErrDuplicate)
	}
	if err != nil {
		return fmt.Errorf("failed to insert room member: %w", err)
	}

	return nil
}

// IsRoomMember reports whether the user belongs to the room.
func (s *SQLiteStore) IsRoomMember(ctx context.Context, roomID, userID string) (bool, error) {
	var exists int
	err := s.db.QueryRowContext(ctx,
		"SELECT 1 FROM room_members WHERE room_id = ? AND user_id = ?",
		roomID, userID,
	).Scan(&exists)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check room membership: %w", err)
	}

	return true, nil
}
