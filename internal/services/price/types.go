package price

import (
	"time"

	"github.com/KirkDiggler/phalabot/internal/chart"
	"github.com/KirkDiggler/phalabot/internal/clients/subscan"
	"github.com/KirkDiggler/phalabot/internal/common/clock"
	reportRepo "github.com/KirkDiggler/phalabot/internal/repositories/price_report"
	"go.uber.org/zap"
)

const (
	// DefaultHistoryDays is how far back the report looks
	DefaultHistoryDays = 30

	// DefaultRefreshInterval is how often the report is rebuilt
	DefaultRefreshInterval = time.Hour
)

// Config holds configuration for the price service
type Config struct {
	// HistoryDays is the length of the history window in days
	HistoryDays int

	// RefreshInterval is the delay between refreshes in Run
	RefreshInterval time.Duration

	Client     subscan.Client
	Renderer   chart.Renderer
	ReportRepo reportRepo.Repository
	Clock      clock.Clock

	// Logger is optional
	Logger *zap.Logger
}
