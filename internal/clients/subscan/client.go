package subscan

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/KirkDiggler/phalabot/internal/models"
)

// ErrMissingAPIKey is returned when no API key is configured
var ErrMissingAPIKey = errors.New("subscan API key cannot be empty")

// APIError is returned when the API answers with a non-zero code
type APIError struct {
	Code    int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("subscan error %d: %s", e.Code, e.Message)
}

// Config holds configuration for the Subscan client
type Config struct {
	// BaseURL defaults to DefaultBaseURL
	BaseURL string

	APIKey string

	// HTTPClient defaults to a client with a 30 second timeout
	HTTPClient *http.Client
}

type client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// New creates a new Subscan client
func New(cfg *Config) (*client, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	return &client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     cfg.APIKey,
		httpClient: httpClient,
	}, nil
}

// PriceHistory fetches the price history for the given range
func (c *client) PriceHistory(ctx context.Context, input *PriceHistoryInput) (*PriceHistoryOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	if input.End.Before(input.Start) {
		return nil, errors.New("end date must not be before start date")
	}

	body, err := json.Marshal(&priceHistoryRequest{
		Start: input.Start.Format(dateLayout),
		End:   input.End.Format(dateLayout),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+priceHistoryPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch price history: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var decoded priceHistoryResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("failed to decode price history: %w", err)
	}

	if decoded.Code != 0 {
		return nil, &APIError{Code: decoded.Code, Message: decoded.Message}
	}

	points := make([]models.PricePoint, 0, len(decoded.Data.List))
	for _, p := range decoded.Data.List {
		points = append(points, models.PricePoint{
			Time:  time.Unix(p.FeedAt, 0).UTC(),
			Price: p.Price,
		})
	}

	return &PriceHistoryOutput{
		Average:     decoded.Data.Average,
		EMA7Average: decoded.Data.EMA7Average,
		Points:      points,
		GeneratedAt: time.Unix(decoded.GeneratedAt, 0).UTC(),
	}, nil
}
