package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/cardwall/backend/internal/auth"
	"github.com/cardwall/backend/internal/config"
	"github.com/cardwall/backend/internal/database"
	"github.com/cardwall/backend/internal/ratelimit"
	"github.com/cardwall/backend/internal/service"
)

type Server struct {
	cardService service.CardService
	authService service.AuthService
	itemService service.ItemService
	tokens      *auth.TokenManager
	db          database.Service

	cardLimiter *ratelimit.Limiter
	authLimiter *ratelimit.Limiter
}

// NewServer wires the services into an http.Server listening on cfg.Port.
func NewServer(
	cfg config.Config,
	cardService service.CardService,
	authService service.AuthService,
	itemService service.ItemService,
	tokens *auth.TokenManager,
	dbService database.Service,
) *http.Server {
	appServer := &Server{
		cardService: cardService,
		authService: authService,
		itemService: itemService,
		tokens:      tokens,
		db:          dbService,
		cardLimiter: ratelimit.New(cfg.CardRateLimit, cfg.CardRateWindow),
		authLimiter: ratelimit.New(cfg.AuthRateLimit, cfg.AuthRateWindow),
	}

	return &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      appServer.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}
