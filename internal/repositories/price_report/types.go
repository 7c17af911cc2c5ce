package price_report

import (
	"time"

	"github.com/KirkDiggler/phalabot/internal/models"
)

// SaveReportInput contains parameters for caching a report
type SaveReportInput struct {
	Report *models.PriceReport

	// TTL is optional, zero keeps the report until it is replaced
	TTL time.Duration
}
