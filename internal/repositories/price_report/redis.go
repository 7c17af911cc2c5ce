package price_report

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/KirkDiggler/phalabot/internal/models"
	"github.com/redis/go-redis/v9"
)

const latestReportKey = "price_report:latest"

// ErrReportNotFound is returned before the first successful refresh
var ErrReportNotFound = errors.New("price report not found")

// Config holds configuration for the Redis price report repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed price report repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisRepository{
		client: cfg.RedisClient,
	}, nil
}

// SaveReport persists the report to Redis
func (r *redisRepository) SaveReport(ctx context.Context, input *SaveReportInput) error {
	if input == nil || input.Report == nil {
		return errors.New("input and report cannot be nil")
	}

	reportJSON, err := json.Marshal(input.Report)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	if err := r.client.Set(ctx, latestReportKey, reportJSON, input.TTL).Err(); err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}

	return nil
}

// GetLatestReport retrieves the cached report from Redis
func (r *redisRepository) GetLatestReport(ctx context.Context) (*models.PriceReport, error) {
	reportJSON, err := r.client.Get(ctx, latestReportKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrReportNotFound
		}
		return nil, fmt.Errorf("failed to get report: %w", err)
	}

	var report models.PriceReport
	if err := json.Unmarshal(reportJSON, &report); err != nil {
		return nil, fmt.Errorf("failed to unmarshal report: %w", err)
	}

	return &report, nil
}
