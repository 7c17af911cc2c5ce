package chart

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func prices(values ...float64) []decimal.Decimal {
	result := make([]decimal.Decimal, 0, len(values))
	for _, v := range values {
		result = append(result, decimal.NewFromFloat(v))
	}
	return result
}

func TestRenderPrices(t *testing.T) {
	renderer := New(nil)

	data, err := renderer.RenderPrices(prices(0.15, 0.16, 0.14, 0.18))
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 640, img.Bounds().Dx())
	assert.Equal(t, 480, img.Bounds().Dy())
}

func TestRenderPrices_CustomSize(t *testing.T) {
	renderer := New(&Config{Width: 320, Height: 200, YMin: 0, YMax: 0.5})

	data, err := renderer.RenderPrices(prices(0.1, 0.2))
	require.NoError(t, err)

	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 320, cfg.Width)
	assert.Equal(t, 200, cfg.Height)
}

func TestRenderPrices_NotEnoughPoints(t *testing.T) {
	renderer := New(nil)

	_, err := renderer.RenderPrices(nil)
	assert.ErrorIs(t, err, ErrNotEnoughPoints)

	_, err = renderer.RenderPrices(prices(0.1))
	assert.ErrorIs(t, err, ErrNotEnoughPoints)
}
