package price

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/phalabot/internal/services/price Service

import (
	"context"

	"github.com/KirkDiggler/phalabot/internal/models"
)

// Service builds and serves the price report
type Service interface {
	// Refresh fetches the price history, builds a new report and caches it
	Refresh(ctx context.Context) (*models.PriceReport, error)

	// GetReport returns the most recently cached report
	GetReport(ctx context.Context) (*models.PriceReport, error)

	// Run refreshes immediately and then on every interval until ctx is done
	Run(ctx context.Context) error
}
