package uuid

import "github.com/google/uuid"

//go:generate mockgen -package=mocks -destination=mocks/mock_uuid.go github.com/KirkDiggler/phalabot/internal/common/uuid Generator

// Generator hands out identifiers for verification sessions and events
type Generator interface {
	NewID() string
}

// DefaultGenerator implements the Generator interface using random v4 UUIDs
type DefaultGenerator struct{}

func New() *DefaultGenerator {
	return &DefaultGenerator{}
}

// NewID returns a new random UUID string
func (d *DefaultGenerator) NewID() string {
	return uuid.New().String()
}
