package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/moneymate/backend/internal/middleware"
	"github.com/moneymate/backend/internal/models"
)

type createRoomRequest struct {
	Name string `json:"name"`
}

type joinRoomRequest struct {
	RoomID string `json:"roomId"`
}

type createExpenseRequest struct {
	Amount float64  `json:"amount"`
	Reason string   `json:"reason"`
	Users  []string `json:"users"`
}

type settleRequest struct {
	ToUserID string  `json:"toUserId"`
	Amount   float64 `json:"amount"`
	Note     string  `json:"note"`
}

func (s *Server) handleCreateRoom(c *gin.Context) {
	var req createRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failMsg(c, http.StatusBadRequest, "invalid request body")
		return
	}

	room, err := s.rooms.CreateRoom(c.Request.Context(), middleware.GetUserID(c), req.Name)
	if err != nil {
		fail(c, err)
		return
	}

	ok(c, http.StatusCreated, gin.H{"splitRoom": room})
}

func (s *Server) handleListRooms(c *gin.Context) {
	rooms, err := s.rooms.ListRooms(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	if len(rooms) == 0 {
		failMsg(c, http.StatusNotFound, "no split rooms found")
		return
	}

	ok(c, http.StatusOK, gin.H{"splitRooms": rooms})
}

func (s *Server) handleGetRoom(c *gin.Context) {
	room, members, expenses, err := s.rooms.GetRoom(c.Request.Context(), middleware.GetUserID(c), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}

	if expenses == nil {
		expenses = []*models.SplitExpense{}
	}
	ok(c, http.StatusOK, gin.H{"splitRoom": room, "members": members, "splitExpenses": expenses})
}

func (s *Server) handleJoinRoom(c *gin.Context) {
	var req joinRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failMsg(c, http.StatusBadRequest, "invalid request body")
		return
	}

	room, err := s.rooms.JoinRoom(c.Request.Context(), middleware.GetUserID(c), req.RoomID)
	if err != nil {
		fail(c, err)
		return
	}

	ok(c, http.StatusOK, gin.H{"splitRoom": room})
}

func (s *Server) handleRoomBalances(c *gin.Context) {
	balances, debts, err := s.rooms.Balances(c.Request.Context(), middleware.GetUserID(c), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}

	ok(c, http.StatusOK, gin.H{"balances": balances, "debts": debts})
}

func (s *Server) handleSettle(c *gin.Context) {
	var req settleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failMsg(c, http.StatusBadRequest, "invalid request body")
		return
	}

	settlement, err := s.rooms.RecordSettlement(c.Request.Context(), middleware.GetUserID(c),
		c.Param("id"), req.ToUserID, req.Amount, req.Note)
	if err != nil {
		fail(c, err)
		return
	}

	ok(c, http.StatusCreated, gin.H{"settlement": settlement})
}

func (s *Server) handleCreateExpense(c *gin.Context) {
	roomID := c.Query("roomId")
	if roomID == "" {
		failMsg(c, http.StatusBadRequest, "roomId required")
		return
	}

	var req createExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failMsg(c, http.StatusBadRequest, "invalid request body")
		return
	}

	expense, err := s.rooms.AddExpense(c.Request.Context(), middleware.GetUserID(c), roomID,
		req.Amount, req.Reason, req.Users)
	if err != nil {
		fail(c, err)
		return
	}

	ok(c, http.StatusCreated, gin.H{"splitExpenses": expense})
}

func (s *Server) handleListExpenses(c *gin.Context) {
	roomID := c.Query("roomId")
	if roomID == "" {
		failMsg(c, http.StatusBadRequest, "roomId required")
		return
	}

	expenses, err := s.rooms.ListExpenses(c.Request.Context(), middleware.GetUserID(c), roomID)
	if err != nil {
		fail(c, err)
		return
	}

	if expenses == nil {
		expenses = []*models.SplitExpense{}
	}
	ok(c, http.StatusOK, gin.H{"splitExpenses": expenses})
}
