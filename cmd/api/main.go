package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cardwall/backend/internal/auth"
	"github.com/cardwall/backend/internal/config"
	"github.com/cardwall/backend/internal/database"
	"github.com/cardwall/backend/internal/domain"
	"github.com/cardwall/backend/internal/repository"
	"github.com/cardwall/backend/internal/server"
	"github.com/cardwall/backend/internal/service"
)

func gracefulShutdown(apiServer *http.Server, dbService database.Service, done chan bool) {
	// Create context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	slog.Info("shutting down gracefully, press Ctrl+C again to force")
	stop()

	// The server has 5 seconds to finish the requests it is currently handling.
	ctxTimeout, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := apiServer.Shutdown(ctxTimeout); err != nil {
		slog.Error("server forced to shutdown", "error", err)
	}

	if dbService != nil {
		if err := dbService.Close(); err != nil {
			slog.Error("error closing database connection pool", "error", err)
		}
	}

	slog.Info("server exiting")
	done <- true
}

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg := config.Load()

	dbService, err := database.New(cfg.DB)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	gormDB := dbService.GetDB()

	if err := gormDB.AutoMigrate(&domain.User{}, &domain.Card{}, &domain.Item{}); err != nil {
		slog.Error("failed to auto-migrate database", "error", err)
		os.Exit(1)
	}

	cardRepo := repository.NewGormCardRepository(gormDB)
	userRepo := repository.NewGormUserRepository(gormDB)
	itemRepo := repository.NewGormItemRepository(gormDB)

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL)

	cardService := service.NewCardService(cardRepo)
	authService := service.NewAuthService(userRepo, tokens)
	itemService := service.NewItemService(itemRepo)

	apiServer := server.NewServer(cfg, cardService, authService, itemService, tokens, dbService)

	done := make(chan bool, 1)
	go gracefulShutdown(apiServer, dbService, done)

	slog.Info("starting server", "addr", apiServer.Addr)
	err = apiServer.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("http server error", "error", err)
		os.Exit(1)
	}

	<-done
	slog.Info("graceful shutdown complete")
}
