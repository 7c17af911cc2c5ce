package verification_session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/KirkDiggler/phalabot/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// Key prefixes for Redis
	sessionKeyPrefix = "verification_session:"
	activeSessionKey = "verification_sessions:active"
)

// ErrSessionNotFound is returned when a session is not found
var ErrSessionNotFound = errors.New("verification session not found")

// Config holds configuration for the Redis session repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed session repository
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

// SaveSession persists a session to Redis
func (r *redisRepository) SaveSession(ctx context.Context, input *SaveSessionInput) error {
	if input == nil || input.Session == nil {
		return errors.New("input and session cannot be nil")
	}

	session := input.Session
	if session.ID == "" {
		return errors.New("session ID cannot be empty")
	}

	if input.TTL <= 0 {
		return errors.New("session TTL must be positive")
	}

	sessionJSON, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	pipe := r.client.TxPipeline()

	sessionKey := sessionKeyPrefix + session.ID
	pipe.Set(ctx, sessionKey, sessionJSON, input.TTL)

	// The index is scored by deadline so expired entries can be pruned
	pipe.ZAdd(ctx, activeSessionKey, redis.Z{
		Score:  float64(session.Deadline.Unix()),
		Member: session.ID,
	})

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

// GetSession retrieves a session by ID from Redis
func (r *redisRepository) GetSession(ctx context.Context, input *GetSessionInput) (*models.VerificationSession, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.New("input and session ID cannot be empty")
	}

	sessionJSON, err := r.client.Get(ctx, sessionKeyPrefix+input.SessionID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var session models.VerificationSession
	if err := json.Unmarshal([]byte(sessionJSON), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	return &session, nil
}

// DeleteSession removes a session from Redis
func (r *redisRepository) DeleteSession(ctx context.Context, input *DeleteSessionInput) error {
	if input == nil || input.SessionID == "" {
		return errors.New("input and session ID cannot be empty")
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, sessionKeyPrefix+input.SessionID)
	pipe.ZRem(ctx, activeSessionKey, input.SessionID)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	return nil
}

// ListActiveSessions returns the sessions that have not reached their deadline
func (r *redisRepository) ListActiveSessions(ctx context.Context, input *ListActiveSessionsInput) (*ListActiveSessionsOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	// Drop index entries whose deadline has already passed
	cutoff := strconv.FormatInt(input.Now.Unix()-1, 10)
	if err := r.client.ZRemRangeByScore(ctx, activeSessionKey, "-inf", cutoff).Err(); err != nil {
		return nil, fmt.Errorf("failed to prune sessions: %w", err)
	}

	sessionIDs, err := r.client.ZRange(ctx, activeSessionKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get session IDs: %w", err)
	}

	if len(sessionIDs) == 0 {
		return &ListActiveSessionsOutput{
			Sessions: []*models.VerificationSession{},
		}, nil
	}

	pipe := r.client.Pipeline()
	commands := make([]*redis.StringCmd, 0, len(sessionIDs))
	for _, sessionID := range sessionIDs {
		commands = append(commands, pipe.Get(ctx, sessionKeyPrefix+sessionID))
	}

	// redis.Nil from an expired key is handled per command below
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("failed to get sessions: %w", err)
	}

	sessions := make([]*models.VerificationSession, 0, len(sessionIDs))
	for i, cmd := range commands {
		sessionJSON, err := cmd.Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				// Key expired before the index was pruned
				continue
			}
			return nil, fmt.Errorf("failed to get session %s: %w", sessionIDs[i], err)
		}

		var session models.VerificationSession
		if err := json.Unmarshal([]byte(sessionJSON), &session); err != nil {
			return nil, fmt.Errorf("failed to unmarshal session %s: %w", sessionIDs[i], err)
		}

		if session.Deadline.Before(input.Now) {
			continue
		}

		sessions = append(sessions, &session)
	}

	return &ListActiveSessionsOutput{
		Sessions: sessions,
	}, nil
}
