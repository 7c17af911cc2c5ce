package events

//go:generate mockgen -package=mocks -destination=mocks/mock_publisher.go github.com/KirkDiggler/phalabot/internal/events Publisher

import "context"

// Publisher announces verification outcomes to other consumers
type Publisher interface {
	PublishVerification(ctx context.Context, event *VerificationEvent) error
}
