// Package server wires MoneyMate's services into a gin HTTP router.
//
// All responses use the JSON envelope {"success": true, ...} on success
// and {"success": false, "error": "<message>"} on failure. Authenticated
// routes read a JWT from the "token" cookie.
package server

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/moneymate/backend/internal/auth"
	"github.com/moneymate/backend/internal/config"
	"github.com/moneymate/backend/internal/middleware"
	"github.com/moneymate/backend/internal/service"
)

// Server holds the services behind the HTTP API.
type Server struct {
	cfg      *config.Config
	authSvc  *service.AuthService
	ledger   *service.LedgerService
	rooms    *service.RoomService
	verifier auth.Verifier
}

// New creates a Server around the given services.
func New(cfg *config.Config, authSvc *service.AuthService, ledger *service.LedgerService, rooms *service.RoomService, verifier auth.Verifier) *Server {
	return &Server{
		cfg:      cfg,
		authSvc:  authSvc,
		ledger:   ledger,
		rooms:    rooms,
		verifier: verifier,
	}
}

// Router builds the gin engine with all middleware and routes.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.Metrics())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     s.cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type"},
		AllowCredentials: true, // the token cookie
	}))

	router.GET("/healthz", func(c *gin.Context) {
		ok(c, http.StatusOK, nil)
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authGroup := router.Group("/auth")
	{
		authGroup.POST("/register", s.handleRegister)
		authGroup.POST("/login", s.handleLogin)
		authGroup.POST("/logout", s.handleLogout)
		authGroup.GET("/me", middleware.RequireAuth(s.verifier), s.handleCurrentUser)
	}

	authed := router.Group("/", middleware.RequireAuth(s.verifier))
	{
		authed.POST("/customer", s.handleCreateCustomer)
		authed.GET("/customer", s.handleListCustomers)
		authed.GET("/customer/:id", s.handleGetCustomer)
		authed.DELETE("/customer/:id", s.handleDeleteCustomer)

		authed.POST("/entry", s.handleCreateEntry)
		authed.GET("/entry", s.handleListEntries)
		authed.PUT("/entry/:id", s.handleUpdateEntry)
		authed.DELETE("/entry/:id", s.handleDeleteEntry)

		authed.POST("/split-room", s.handleCreateRoom)
		authed.GET("/split-room", s.handleListRooms)
		authed.POST("/split-room/join", s.handleJoinRoom)
		authed.GET("/split-room/:id", s.handleGetRoom)
		authed.GET("/split-room/:id/balances", s.handleRoomBalances)
		authed.POST("/split-room/:id/settle", s.handleSettle)

		authed.POST("/split-expense", s.handleCreateExpense)
		authed.GET("/split-expense", s.handleListExpenses)
	}

	return router
}
