package subscan

//go:generate mockgen -package=mocks -destination=mocks/mock_client.go github.com/KirkDiggler/phalabot/internal/clients/subscan Client

import "context"

// Client reads token price data from the Subscan API
type Client interface {
	// PriceHistory returns the daily price history between two dates
	PriceHistory(ctx context.Context, input *PriceHistoryInput) (*PriceHistoryOutput, error)
}
