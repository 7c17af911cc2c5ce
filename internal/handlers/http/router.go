package http

import (
	"errors"

	"github.com/KirkDiggler/phalabot/internal/common/clock"
	sessionRepo "github.com/KirkDiggler/phalabot/internal/repositories/verification_session"
	"github.com/KirkDiggler/phalabot/internal/services/price"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RouterConfig holds the dependencies of the status router
type RouterConfig struct {
	SessionRepo  sessionRepo.Repository
	PriceService price.Service
	Clock        clock.Clock
	Logger       *zap.Logger
}

// SetupRouter sets up the Gin router for the status server
func SetupRouter(cfg *RouterConfig) (*gin.Engine, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.SessionRepo == nil {
		return nil, errors.New("session repository cannot be nil")
	}

	if cfg.PriceService == nil {
		return nil, errors.New("price service cannot be nil")
	}

	clk := cfg.Clock
	if clk == nil {
		clk = clock.New()
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger(logger.Named("http")))

	handlers := NewStatusHandlers(cfg.SessionRepo, cfg.PriceService, clk)

	router.GET("/healthz", handlers.Health)
	router.GET("/price", handlers.Price)

	sessions := router.Group("/sessions")
	{
		sessions.GET("", handlers.ListSessions)
		sessions.GET("/:id", handlers.GetSession)
	}

	return router, nil
}
