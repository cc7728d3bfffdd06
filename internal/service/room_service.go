package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/moneymate/backend/internal/calculator"
	"github.com/moneymate/backend/internal/models"
	"github.com/moneymate/backend/internal/storage"
)

// RoomService manages split rooms, membership, shared expenses and
// settlements.
type RoomService struct {
	store storage.Store
}

// NewRoomService creates a new RoomService with the given storage backend.
func NewRoomService(store storage.Store) *RoomService {
	return &RoomService{store: store}
}

// memberRoom loads a room and verifies the acting user is a member.
// Every expense, settlement and balance operation requires membership;
// there is no unauthenticated code path.
func (s *RoomService) memberRoom(ctx context.Context, userID, roomID string) (*models.SplitRoom, error) {
	room, err := s.store.GetRoom(ctx, roomID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%w: %v", ErrNotFound, err)
		}
		return nil, err
	}

	member, err := s.store.IsRoomMember(ctx, roomID, userID)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, fmt.Errorf("%w: you must be a member of this room", ErrForbidden)
	}

	return room, nil
}

// CreateRoom creates a split room with the creator as its first member.
func (s *RoomService) CreateRoom(ctx context.Context, creatorID, name string) (*models.SplitRoom, error) {
	if name == "" {
		return nil, invalidf("name required")
	}

	room := &models.SplitRoom{Name: name, CreatorID: creatorID}
	if err := s.store.CreateRoom(ctx, room); err != nil {
		slog.Error("CreateRoom failed", "creator_id", creatorID, "error", err)
		return nil, err
	}

	slog.Info("Room created", "room_id", room.ID, "creator_id", creatorID)
	return room, nil
}

// ListRooms returns all rooms the user belongs to.
func (s *RoomService) ListRooms(ctx context.Context, userID string) ([]*models.SplitRoom, error) {
	rooms, err := s.store.ListRoomsByUser(ctx, userID)
	if err != nil {
		slog.Error("ListRooms failed", "user_id", userID, "error", err)
		return nil, err
	}
	return rooms, nil
}

// GetRoom returns a room with its member records and expense history.
// Members come back in join order. The acting user must be a member.
func (s *RoomService) GetRoom(ctx context.Context, userID, roomID string) (*models.SplitRoom, []*models.User, []*models.SplitExpense, error) {
	room, err := s.memberRoom(ctx, userID, roomID)
	if err != nil {
		return nil, nil, nil, err
	}

	byID, err := s.store.GetUsersByIDs(ctx, room.Members)
	if err != nil {
		slog.Error("GetRoom: failed to load members", "room_id", roomID, "error", err)
		return nil, nil, nil, err
	}
	members := make([]*models.User, 0, len(room.Members))
	for _, id := range room.Members {
		if u, ok := byID[id]; ok {
			members = append(members, u)
		}
	}

	expenses, err := s.store.ListExpensesByRoom(ctx, roomID)
	if err != nil {
		slog.Error("GetRoom: failed to list expenses", "room_id", roomID, "error", err)
		return nil, nil, nil, err
	}

	return room, members, expenses, nil
}

// JoinRoom adds the user to a room. Joining twice is a conflict and
// leaves the membership unchanged.
func (s *RoomService) JoinRoom(ctx context.Context, userID, roomID string) (*models.SplitRoom, error) {
	if roomID == "" {
		return nil, invalidf("roomId required")
	}

	if _, err := s.store.GetRoom(ctx, roomID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%w: %v", ErrNotFound, err)
		}
		return nil, err
	}

	if err := s.store.AddRoomMember(ctx, roomID, userID); err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			return nil, fmt.Errorf("%w: already a member of this room", ErrConflict)
		}
		slog.Error("JoinRoom failed", "room_id", roomID, "user_id", userID, "error", err)
		return nil, err
	}

	slog.Info("User joined room", "room_id", roomID, "user_id", userID)
	return s.store.GetRoom(ctx, roomID)
}

// AddExpense records a shared expense in a room, dividing the amount
// evenly among the participants. The payer must be a room member, and
// so must every participant. Participants are a set; listing a user
// twice is invalid input.
func (s *RoomService) AddExpense(ctx context.Context, payerID, roomID string, amount float64, reason string, users []string) (*models.SplitExpense, error) {
	if roomID == "" {
		return nil, invalidf("roomId required")
	}
	if amount <= 0 {
		return nil, invalidf("amount must be positive")
	}
	if len(users) == 0 {
		return nil, invalidf("users required")
	}

	// Membership failures for the payer are Forbidden; for a listed
	// participant they are invalid input, since the payer named them.
	if _, err := s.memberRoom(ctx, payerID, roomID); err != nil {
		return nil, err
	}
	seen := make(map[string]struct{}, len(users))
	for _, u := range users {
		if _, dup := seen[u]; dup {
			return nil, invalidf("duplicate user %s in participants", u)
		}
		seen[u] = struct{}{}

		member, err := s.store.IsRoomMember(ctx, roomID, u)
		if err != nil {
			return nil, err
		}
		if !member {
			return nil, invalidf("user %s is not a member of this room", u)
		}
	}

	splits, err := calculator.EvenSplit(amount, users)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	expense := &models.SplitExpense{
		RoomID:  roomID,
		PayerID: payerID,
		Amount:  amount,
		Reason:  reason,
		Users:   users,
		Splits:  splits,
	}
	if err := s.store.CreateExpense(ctx, expense); err != nil {
		slog.Error("AddExpense failed", "room_id", roomID, "error", err)
		return nil, err
	}

	slog.Info("Expense created",
		"expense_id", expense.ID,
		"room_id", roomID,
		"payer_id", payerID,
		"amount", amount,
		"participants", len(users),
	)
	return expense, nil
}

// ListExpenses returns a room's expenses in creation order. The acting
// user must be a member.
func (s *RoomService) ListExpenses(ctx context.Context, userID, roomID string) ([]*models.SplitExpense, error) {
	if roomID == "" {
		return nil, invalidf("roomId required")
	}
	if _, err := s.memberRoom(ctx, userID, roomID); err != nil {
		return nil, err
	}

	expenses, err := s.store.ListExpensesByRoom(ctx, roomID)
	if err != nil {
		slog.Error("ListExpenses failed", "room_id", roomID, "error", err)
		return nil, err
	}
	return expenses, nil
}

// RecordSettlement records a payment from the acting user to another
// member, clearing debt between them.
func (s *RoomService) RecordSettlement(ctx context.Context, fromUserID, roomID, toUserID string, amount float64, note string) (*models.Settlement, error) {
	if amount <= 0 {
		return nil, invalidf("amount must be positive")
	}
	if toUserID == "" {
		return nil, invalidf("toUserId required")
	}
	if toUserID == fromUserID {
		return nil, invalidf("cannot settle with yourself")
	}

	if _, err := s.memberRoom(ctx, fromUserID, roomID); err != nil {
		return nil, err
	}
	member, err := s.store.IsRoomMember(ctx, roomID, toUserID)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, invalidf("user %s is not a member of this room", toUserID)
	}

	settlement := &models.Settlement{
		RoomID:     roomID,
		FromUserID: fromUserID,
		ToUserID:   toUserID,
		Amount:     amount,
		Note:       note,
	}
	if err := s.store.CreateSettlement(ctx, settlement); err != nil {
		slog.Error("RecordSettlement failed", "room_id", roomID, "error", err)
		return nil, err
	}

	slog.Info("Settlement recorded",
		"settlement_id", settlement.ID,
		"room_id", roomID,
		"from", fromUserID,
		"to", toUserID,
		"amount", amount,
	)
	return settlement, nil
}

// Balances aggregates a room's expenses and settlements into per-member
// balances and a simplified debt list. The acting user must be a member.
func (s *RoomService) Balances(ctx context.Context, userID, roomID string) ([]calculator.MemberBalance, []calculator.DebtEdge, error) {
	if _, err := s.memberRoom(ctx, userID, roomID); err != nil {
		return nil, nil, err
	}

	expenses, err := s.store.ListExpensesByRoom(ctx, roomID)
	if err != nil {
		slog.Error("Balances: failed to list expenses", "room_id", roomID, "error", err)
		return nil, nil, err
	}
	settlements, err := s.store.ListSettlementsByRoom(ctx, roomID)
	if err != nil {
		slog.Error("Balances: failed to list settlements", "room_id", roomID, "error", err)
		return nil, nil, err
	}

	balances, debts, err := calculator.RoomBalances(expenses, settlements)
	if err != nil {
		slog.Error("Balances: calculation failed", "room_id", roomID, "error", err)
		return nil, nil, err
	}

	return balances, debts, nil
}
