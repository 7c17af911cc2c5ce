package stats

import (
	"errors"
	"sort"

	"github.com/KirkDiggler/phalabot/internal/models"
	"github.com/shopspring/decimal"
)

// Places is the number of decimal places every statistic is rounded to
const Places = 5

// ErrNoPrices is returned when there is nothing to summarize
var ErrNoPrices = errors.New("no prices to summarize")

// Summarize computes mean, median, minimum and maximum, each rounded half-to-even
func Summarize(prices []decimal.Decimal) (models.PriceSummary, error) {
	if len(prices) == 0 {
		return models.PriceSummary{}, ErrNoPrices
	}

	sorted := make([]decimal.Decimal, len(prices))
	copy(sorted, prices)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].LessThan(sorted[j])
	})

	n := len(sorted)
	mean := decimal.Sum(sorted[0], sorted[1:]...).Div(decimal.NewFromInt(int64(n)))

	median := sorted[n/2]
	if n%2 == 0 {
		median = decimal.Avg(sorted[n/2-1], sorted[n/2])
	}

	return models.PriceSummary{
		Mean:   mean.RoundBank(Places),
		Median: median.RoundBank(Places),
		Min:    sorted[0].RoundBank(Places),
		Max:    sorted[n-1].RoundBank(Places),
	}, nil
}

// Prices extracts the price column of a history
func Prices(points []models.PricePoint) []decimal.Decimal {
	prices := make([]decimal.Decimal, 0, len(points))
	for _, p := range points {
		prices = append(prices, p.Price)
	}
	return prices
}
