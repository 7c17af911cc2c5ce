package http

import (
	"errors"
	"net/http"

	"github.com/KirkDiggler/phalabot/internal/common/clock"
	sessionRepo "github.com/KirkDiggler/phalabot/internal/repositories/verification_session"
	"github.com/KirkDiggler/phalabot/internal/services/price"
	"github.com/gin-gonic/gin"
)

// StatusHandlers serves read-only diagnostics
type StatusHandlers struct {
	sessionRepo  sessionRepo.Repository
	priceService price.Service
	clock        clock.Clock
}

// NewStatusHandlers creates new status handlers
func NewStatusHandlers(repo sessionRepo.Repository, priceService price.Service, clk clock.Clock) *StatusHandlers {
	return &StatusHandlers{
		sessionRepo:  repo,
		priceService: priceService,
		clock:        clk,
	}
}

// Health reports liveness
func (h *StatusHandlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ListSessions returns the verification sessions still awaiting a response
func (h *StatusHandlers) ListSessions(c *gin.Context) {
	output, err := h.sessionRepo.ListActiveSessions(c.Request.Context(), &sessionRepo.ListActiveSessionsInput{
		Now: h.clock.Now(),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list sessions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"sessions": output.Sessions})
}

// GetSession returns one active session
func (h *StatusHandlers) GetSession(c *gin.Context) {
	session, err := h.sessionRepo.GetSession(c.Request.Context(), &sessionRepo.GetSessionInput{
		SessionID: c.Param("id"),
	})
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get session"})
		return
	}

	c.JSON(http.StatusOK, session)
}

// Price returns the cached summary statistics without the chart
func (h *StatusHandlers) Price(c *gin.Context) {
	report, err := h.priceService.GetReport(c.Request.Context())
	if err != nil {
		if errors.Is(err, price.ErrReportUnavailable) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Price report not available yet"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get price report"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"summary":      report.Summary,
		"start":        report.Start,
		"end":          report.End,
		"generated_at": report.GeneratedAt,
	})
}
