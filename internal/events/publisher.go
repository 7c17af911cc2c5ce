package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

// Config holds configuration for the watermill publisher
type Config struct {
	// Publisher is any watermill publisher, redisstream in production
	Publisher message.Publisher

	// Topic defaults to DefaultTopic
	Topic string
}

// WatermillPublisher implements the Publisher interface using Watermill
type WatermillPublisher struct {
	publisher message.Publisher
	topic     string
}

// NewWatermillPublisher creates a new Watermill publisher
func NewWatermillPublisher(cfg *Config) (*WatermillPublisher, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.Publisher == nil {
		return nil, errors.New("publisher cannot be nil")
	}

	topic := cfg.Topic
	if topic == "" {
		topic = DefaultTopic
	}

	return &WatermillPublisher{
		publisher: cfg.Publisher,
		topic:     topic,
	}, nil
}

// PublishVerification publishes a verification outcome
func (p *WatermillPublisher) PublishVerification(ctx context.Context, event *VerificationEvent) error {
	if event == nil {
		return errors.New("event cannot be nil")
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.SetContext(ctx)
	msg.Metadata.Set("state", string(event.State))

	if err := p.publisher.Publish(p.topic, msg); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	return nil
}
