package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/moneymate/backend/internal/auth"
	"github.com/moneymate/backend/internal/config"
	"github.com/moneymate/backend/internal/server"
	"github.com/moneymate/backend/internal/service"
	"github.com/moneymate/backend/internal/storage/sqlite"
	"github.com/moneymate/backend/pkg/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	logging.SetupWithLevel(logging.ParseLevel(cfg.LogLevel))

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)
	authenticator := auth.NewPasswordAuthenticator(store)

	authSvc := service.NewAuthService(authenticator, jwtManager, store, slog.Default())
	ledgerSvc := service.NewLedgerService(store)
	roomSvc := service.NewRoomService(store)

	srv := server.New(cfg, authSvc, ledgerSvc, roomSvc, jwtManager)

	slog.Info("Server starting", "address", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, srv.Router()); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
