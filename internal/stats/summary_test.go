package stats

import (
	"testing"

	"github.com/KirkDiggler/phalabot/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decimals(values ...string) []decimal.Decimal {
	result := make([]decimal.Decimal, 0, len(values))
	for _, v := range values {
		result = append(result, decimal.RequireFromString(v))
	}
	return result
}

func TestSummarize(t *testing.T) {
	testCases := []struct {
		name   string
		prices []decimal.Decimal
		mean   string
		median string
		min    string
		max    string
	}{
		{
			name:   "single price",
			prices: decimals("0.15"),
			mean:   "0.15",
			median: "0.15",
			min:    "0.15",
			max:    "0.15",
		},
		{
			name:   "odd count unsorted",
			prices: decimals("0.3", "0.1", "0.2"),
			mean:   "0.2",
			median: "0.2",
			min:    "0.1",
			max:    "0.3",
		},
		{
			name:   "even count averages middle pair",
			prices: decimals("0.4", "0.1", "0.3", "0.2"),
			mean:   "0.25",
			median: "0.25",
			min:    "0.1",
			max:    "0.4",
		},
		{
			name:   "rounded to five places",
			prices: decimals("0.123456789", "0.1", "0.2"),
			mean:   "0.14115",
			median: "0.12346",
			min:    "0.1",
			max:    "0.2",
		},
		{
			name:   "half to even",
			prices: decimals("0.000005", "0.000015"),
			mean:   "0.00001",
			median: "0.00001",
			min:    "0",
			max:    "0.00002",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			summary, err := Summarize(tc.prices)
			require.NoError(t, err)
			assert.Equal(t, tc.mean, summary.Mean.String())
			assert.Equal(t, tc.median, summary.Median.String())
			assert.Equal(t, tc.min, summary.Min.String())
			assert.Equal(t, tc.max, summary.Max.String())
		})
	}
}

func TestSummarize_DoesNotReorderInput(t *testing.T) {
	prices := decimals("0.3", "0.1", "0.2")
	_, err := Summarize(prices)
	require.NoError(t, err)
	assert.Equal(t, "0.3", prices[0].String())
}

func TestSummarize_Empty(t *testing.T) {
	_, err := Summarize(nil)
	assert.ErrorIs(t, err, ErrNoPrices)
}

func TestPrices(t *testing.T) {
	points := []models.PricePoint{
		{Price: decimal.RequireFromString("0.1")},
		{Price: decimal.RequireFromString("0.2")},
	}
	prices := Prices(points)
	require.Len(t, prices, 2)
	assert.Equal(t, "0.2", prices[1].String())
}
