package verification_session

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/phalabot/internal/repositories/verification_session Repository

import (
	"context"

	"github.com/KirkDiggler/phalabot/internal/models"
)

// Repository records in-flight verification sessions for diagnostics.
// Nothing in the verification flow reads it back.
type Repository interface {
	// SaveSession stores a session until its TTL expires
	SaveSession(ctx context.Context, input *SaveSessionInput) error

	// GetSession retrieves a session by ID
	GetSession(ctx context.Context, input *GetSessionInput) (*models.VerificationSession, error)

	// DeleteSession removes a resolved session
	DeleteSession(ctx context.Context, input *DeleteSessionInput) error

	// ListActiveSessions returns every session whose deadline has not passed
	ListActiveSessions(ctx context.Context, input *ListActiveSessionsInput) (*ListActiveSessionsOutput, error)
}
