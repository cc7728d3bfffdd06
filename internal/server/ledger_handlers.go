package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/moneymate/backend/internal/middleware"
	"github.com/moneymate/backend/internal/models"
)

type createCustomerRequest struct {
	Name string `json:"name"`
}

type createEntryRequest struct {
	Amount    float64 `json:"amount"`
	Reason    string  `json:"reason"`
	EntryType string  `json:"entryType"`
}

type updateEntryRequest struct {
	Amount float64 `json:"amount"`
	Reason string  `json:"reason"`
}

func (s *Server) handleCreateCustomer(c *gin.Context) {
	var req createCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failMsg(c, http.StatusBadRequest, "invalid request body")
		return
	}

	customer, err := s.ledger.CreateCustomer(c.Request.Context(), middleware.GetUserID(c), req.Name)
	if err != nil {
		fail(c, err)
		return
	}

	ok(c, http.StatusCreated, gin.H{"customer": customer})
}

func (s *Server) handleListCustomers(c *gin.Context) {
	customers, err := s.ledger.ListCustomers(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		fail(c, err)
		return
	}

	if customers == nil {
		customers = []*models.Customer{}
	}
	ok(c, http.StatusOK, gin.H{"customers": customers})
}

func (s *Server) handleGetCustomer(c *gin.Context) {
	customer, balance, err := s.ledger.GetCustomer(c.Request.Context(), middleware.GetUserID(c), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}

	ok(c, http.StatusOK, gin.H{"customer": customer, "balance": balance})
}

func (s *Server) handleDeleteCustomer(c *gin.Context) {
	if err := s.ledger.DeleteCustomer(c.Request.Context(), middleware.GetUserID(c), c.Param("id")); err != nil {
		fail(c, err)
		return
	}

	ok(c, http.StatusOK, nil)
}

func (s *Server) handleCreateEntry(c *gin.Context) {
	customerID := c.Query("customerId")
	if customerID == "" {
		failMsg(c, http.StatusBadRequest, "customerId required")
		return
	}

	var req createEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failMsg(c, http.StatusBadRequest, "invalid request body")
		return
	}

	entry, err := s.ledger.AddEntry(c.Request.Context(), middleware.GetUserID(c), customerID,
		req.Amount, models.EntryType(req.EntryType), req.Reason)
	if err != nil {
		fail(c, err)
		return
	}

	ok(c, http.StatusCreated, gin.H{"entry": entry})
}

func (s *Server) handleListEntries(c *gin.Context) {
	customerID := c.Query("customerId")
	if customerID == "" {
		failMsg(c, http.StatusBadRequest, "customerId required")
		return
	}

	entries, err := s.ledger.ListEntries(c.Request.Context(), middleware.GetUserID(c), customerID)
	if err != nil {
		fail(c, err)
		return
	}
	if len(entries) == 0 {
		failMsg(c, http.StatusNotFound, "no entries found")
		return
	}

	ok(c, http.StatusOK, gin.H{"entries": entries})
}

func (s *Server) handleUpdateEntry(c *gin.Context) {
	var req updateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failMsg(c, http.StatusBadRequest, "invalid request body")
		return
	}

	entry, err := s.ledger.UpdateEntry(c.Request.Context(), middleware.GetUserID(c), c.Param("id"),
		req.Amount, req.Reason)
	if err != nil {
		fail(c, err)
		return
	}

	ok(c, http.StatusOK, gin.H{"entry": entry})
}

func (s *Server) handleDeleteEntry(c *gin.Context) {
	customerID := c.Query("customerId")
	if customerID == "" {
		failMsg(c, http.StatusBadRequest, "customerId required")
		return
	}

	if err := s.ledger.DeleteEntry(c.Request.Context(), middleware.GetUserID(c), customerID, c.Param("id")); err != nil {
		fail(c, err)
		return
	}

	ok(c, http.StatusOK, nil)
}
