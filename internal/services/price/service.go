package price

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/KirkDiggler/phalabot/internal/chart"
	"github.com/KirkDiggler/phalabot/internal/clients/subscan"
	"github.com/KirkDiggler/phalabot/internal/common/clock"
	"github.com/KirkDiggler/phalabot/internal/models"
	reportRepo "github.com/KirkDiggler/phalabot/internal/repositories/price_report"
	"github.com/KirkDiggler/phalabot/internal/stats"
	"go.uber.org/zap"
)

// service implements the Service interface
type service struct {
	historyDays     int
	refreshInterval time.Duration
	client          subscan.Client
	renderer        chart.Renderer
	reportRepo      reportRepo.Repository
	clock           clock.Clock
	logger          *zap.Logger
}

// New creates a new price service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.Client == nil {
		return nil, ErrNilClient
	}

	if cfg.Renderer == nil {
		return nil, ErrNilRenderer
	}

	if cfg.ReportRepo == nil {
		return nil, ErrNilReportRepo
	}

	if cfg.Clock == nil {
		return nil, ErrNilClock
	}

	historyDays := cfg.HistoryDays
	if historyDays <= 0 {
		historyDays = DefaultHistoryDays
	}

	refreshInterval := cfg.RefreshInterval
	if refreshInterval <= 0 {
		refreshInterval = DefaultRefreshInterval
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &service{
		historyDays:     historyDays,
		refreshInterval: refreshInterval,
		client:          cfg.Client,
		renderer:        cfg.Renderer,
		reportRepo:      cfg.ReportRepo,
		clock:           cfg.Clock,
		logger:          logger.Named("price"),
	}, nil
}

// Refresh fetches the history window ending today and caches a new report
func (s *service) Refresh(ctx context.Context) (*models.PriceReport, error) {
	now := s.clock.Now().UTC()
	end := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	start := end.AddDate(0, 0, -s.historyDays)

	history, err := s.client.PriceHistory(ctx, &subscan.PriceHistoryInput{
		Start: start,
		End:   end,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch price history: %w", err)
	}

	prices := stats.Prices(history.Points)

	summary, err := stats.Summarize(prices)
	if err != nil {
		return nil, err
	}

	image, err := s.renderer.RenderPrices(prices)
	if err != nil {
		if !errors.Is(err, chart.ErrNotEnoughPoints) {
			return nil, err
		}
		// Too short for a line, the statistics are still served
		s.logger.Warn("skipping price chart", zap.Int("points", len(prices)))
		image = nil
	}

	report := &models.PriceReport{
		Summary:     summary,
		Chart:       image,
		Start:       start,
		End:         end,
		GeneratedAt: now,
	}

	if err := s.reportRepo.SaveReport(ctx, &reportRepo.SaveReportInput{
		Report: report,
	}); err != nil {
		return nil, err
	}

	s.logger.Info("price report refreshed",
		zap.Int("points", len(prices)),
		zap.String("mean", summary.Mean.String()),
		zap.String("median", summary.Median.String()),
		zap.String("min", summary.Min.String()),
		zap.String("max", summary.Max.String()))

	return report, nil
}

// GetReport returns the cached report
func (s *service) GetReport(ctx context.Context) (*models.PriceReport, error) {
	report, err := s.reportRepo.GetLatestReport(ctx)
	if err != nil {
		if errors.Is(err, reportRepo.ErrReportNotFound) {
			return nil, ErrReportUnavailable
		}
		return nil, err
	}

	return report, nil
}

// Run keeps the cached report fresh. Failed refreshes are logged and retried
// on the next interval.
func (s *service) Run(ctx context.Context) error {
	for {
		if _, err := s.Refresh(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			s.logger.Error("price refresh failed", zap.Error(err))
		}

		select {
		case <-ctx.Done():
			return nil
		case <-s.clock.After(s.refreshInterval):
		}
	}
}
