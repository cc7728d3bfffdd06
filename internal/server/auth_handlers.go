package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/moneymate/backend/internal/middleware"
)

type registerRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	Password    string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// setTokenCookie installs the session cookie. HttpOnly keeps it away
// from page scripts; the token itself carries the expiry.
func (s *Server) setTokenCookie(c *gin.Context, token string) {
	c.SetCookie(middleware.TokenCookie, token, int(s.cfg.TokenTTL.Seconds()), "/", "", false, true)
}

func (s *Server) handleRegister(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failMsg(c, http.StatusBadRequest, "invalid request body")
		return
	}

	user, token, err := s.authSvc.Register(c.Request.Context(), req.Email, req.DisplayName, req.Password)
	if err != nil {
		fail(c, err)
		return
	}

	s.setTokenCookie(c, token)
	ok(c, http.StatusCreated, gin.H{"user": user})
}

func (s *Server) handleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failMsg(c, http.StatusBadRequest, "invalid request body")
		return
	}

	user, token, err := s.authSvc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		fail(c, err)
		return
	}

	s.setTokenCookie(c, token)
	ok(c, http.StatusOK, gin.H{"user": user})
}

func (s *Server) handleLogout(c *gin.Context) {
	// Stateless JWTs: logout just clears the cookie.
	c.SetCookie(middleware.TokenCookie, "", -1, "/", "", false, true)
	ok(c, http.StatusOK, nil)
}

func (s *Server) handleCurrentUser(c *gin.Context) {
	user, err := s.authSvc.CurrentUser(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		fail(c, err)
		return
	}

	ok(c, http.StatusOK, gin.H{"user": user})
}
