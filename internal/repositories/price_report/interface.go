package price_report

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/phalabot/internal/repositories/price_report Repository

import (
	"context"

	"github.com/KirkDiggler/phalabot/internal/models"
)

// Repository caches the most recent price report
type Repository interface {
	// SaveReport replaces the cached report
	SaveReport(ctx context.Context, input *SaveReportInput) error

	// GetLatestReport returns the cached report
	GetLatestReport(ctx context.Context) (*models.PriceReport, error)
}
