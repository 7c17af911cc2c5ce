package subscan

import (
	"time"

	"github.com/KirkDiggler/phalabot/internal/models"
	"github.com/shopspring/decimal"
)

// DefaultBaseURL is the Khala network Subscan API
const DefaultBaseURL = "https://khala.api.subscan.io"

const priceHistoryPath = "/api/scan/price/history"

// dateLayout is the date format the API expects
const dateLayout = "2006-01-02"

// PriceHistoryInput contains the date range to fetch, inclusive
type PriceHistoryInput struct {
	Start time.Time
	End   time.Time
}

// PriceHistoryOutput contains the fetched history
type PriceHistoryOutput struct {
	Average     decimal.Decimal
	EMA7Average decimal.Decimal
	Points      []models.PricePoint
	GeneratedAt time.Time
}

type priceHistoryRequest struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type priceHistoryResponse struct {
	Code        int              `json:"code"`
	Message     string           `json:"message"`
	GeneratedAt int64            `json:"generated_at"`
	Data        priceHistoryData `json:"data"`
}

type priceHistoryData struct {
	Average     decimal.Decimal `json:"average"`
	EMA7Average decimal.Decimal `json:"ema7_average"`
	List        []pricePoint    `json:"list"`
}

type pricePoint struct {
	FeedAt int64           `json:"feed_at"`
	Price  decimal.Decimal `json:"price"`
}
