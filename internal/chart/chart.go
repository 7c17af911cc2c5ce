package chart

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	gochart "github.com/wcharczuk/go-chart/v2"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_renderer.go github.com/KirkDiggler/phalabot/internal/chart Renderer

// ErrNotEnoughPoints is returned when a line cannot be drawn
var ErrNotEnoughPoints = errors.New("at least two prices are required to draw a chart")

// Renderer draws a price history as a PNG image
type Renderer interface {
	RenderPrices(prices []decimal.Decimal) ([]byte, error)
}

// Config for the PNG renderer
type Config struct {
	Title  string
	Width  int
	Height int

	// YMin and YMax fix the price axis, both zero lets it auto-scale
	YMin float64
	YMax float64
}

// PNGRenderer renders line charts with go-chart
type PNGRenderer struct {
	config Config
}

// New creates a new PNG renderer, filling defaults for zero values
func New(cfg *Config) *PNGRenderer {
	config := Config{
		Title:  "Plot of PHA price",
		Width:  640,
		Height: 480,
		YMin:   0,
		YMax:   1.4,
	}
	if cfg != nil {
		if cfg.Title != "" {
			config.Title = cfg.Title
		}
		if cfg.Width > 0 {
			config.Width = cfg.Width
		}
		if cfg.Height > 0 {
			config.Height = cfg.Height
		}
		if cfg.YMin != 0 || cfg.YMax != 0 {
			config.YMin = cfg.YMin
			config.YMax = cfg.YMax
		}
	}

	return &PNGRenderer{config: config}
}

// RenderPrices plots prices against their index
func (r *PNGRenderer) RenderPrices(prices []decimal.Decimal) ([]byte, error) {
	if len(prices) < 2 {
		return nil, ErrNotEnoughPoints
	}

	xs := make([]float64, len(prices))
	ys := make([]float64, len(prices))
	for i, p := range prices {
		xs[i] = float64(i)
		ys[i] = p.InexactFloat64()
	}

	yAxis := gochart.YAxis{
		Name: "Price",
	}
	if r.config.YMax > r.config.YMin {
		yAxis.Range = &gochart.ContinuousRange{
			Min: r.config.YMin,
			Max: r.config.YMax,
		}
	}

	graph := gochart.Chart{
		Title:  r.config.Title,
		Width:  r.config.Width,
		Height: r.config.Height,
		XAxis: gochart.XAxis{
			Name: "Index",
		},
		YAxis: yAxis,
		Series: []gochart.Series{
			gochart.ContinuousSeries{
				Name:    "price",
				XValues: xs,
				YValues: ys,
			},
		},
	}

	var buf bytes.Buffer
	if err := graph.Render(gochart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}

	return buf.Bytes(), nil
}
