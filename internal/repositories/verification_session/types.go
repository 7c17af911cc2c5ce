package verification_session

import (
	"time"

	"github.com/KirkDiggler/phalabot/internal/models"
)

// SaveSessionInput contains parameters for saving a session
type SaveSessionInput struct {
	Session *models.VerificationSession

	// TTL bounds how long the record lives, normally the challenge timeout
	TTL time.Duration
}

// GetSessionInput contains parameters for retrieving a session
type GetSessionInput struct {
	SessionID string
}

// DeleteSessionInput contains parameters for deleting a session
type DeleteSessionInput struct {
	SessionID string
}

// ListActiveSessionsInput contains parameters for listing sessions
type ListActiveSessionsInput struct {
	// Now is the reference time, sessions with a deadline before it are pruned
	Now time.Time
}

// ListActiveSessionsOutput contains the active sessions ordered by deadline
type ListActiveSessionsOutput struct {
	Sessions []*models.VerificationSession
}
