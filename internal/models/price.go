package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PricePoint is one entry of the price history
type PricePoint struct {
	Time  time.Time
	Price decimal.Decimal
}

// PriceSummary holds the summary statistics of a price history
type PriceSummary struct {
	Mean   decimal.Decimal `json:"mean"`
	Median decimal.Decimal `json:"median"`
	Min    decimal.Decimal `json:"min"`
	Max    decimal.Decimal `json:"max"`
}

// PriceReport is the cached result of a price refresh
type PriceReport struct {
	// Summary is the statistics of the fetched history
	Summary PriceSummary `json:"summary"`

	// Chart is the rendered PNG chart
	Chart []byte `json:"chart,omitempty"`

	// Start and End bound the fetched history
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`

	// GeneratedAt is when the report was built
	GeneratedAt time.Time `json:"generated_at"`
}
