package verification

import (
	"time"

	"github.com/KirkDiggler/phalabot/internal/captcha"
	"github.com/KirkDiggler/phalabot/internal/common/clock"
	"github.com/KirkDiggler/phalabot/internal/common/uuid"
	"github.com/KirkDiggler/phalabot/internal/events"
	"github.com/KirkDiggler/phalabot/internal/gateway"
	"github.com/KirkDiggler/phalabot/internal/models"
	sessionRepo "github.com/KirkDiggler/phalabot/internal/repositories/verification_session"
	"go.uber.org/zap"
)

const (
	// DefaultRoleName is the role granted on a correct response
	DefaultRoleName = "verified"

	// DefaultChallengeTimeout is how long a session waits for the response
	DefaultChallengeTimeout = 60 * time.Second
)

// Config holds configuration for the verification service
type Config struct {
	// VerifiedRoleName is the role granted on success
	VerifiedRoleName string

	// ChallengeTimeout bounds the wait for a response
	ChallengeTimeout time.Duration

	Gateway       gateway.Gateway
	Generator     captcha.Generator
	Clock         clock.Clock
	UUIDGenerator uuid.Generator

	// SessionRepo is optional, it only records in-flight sessions for diagnostics
	SessionRepo sessionRepo.Repository

	// Publisher is optional, terminal states are published when set
	Publisher events.Publisher

	// Logger is optional
	Logger *zap.Logger
}

// VerifyInput contains parameters for a verify invocation
type VerifyInput struct {
	UserID    string
	ChannelID string
}

// VerifyOutput contains the terminal state of the session
type VerifyOutput struct {
	// SessionID is empty when the member was already verified
	SessionID string

	State models.VerificationState
}

// EnsureRoleInput contains parameters for the role bootstrap
type EnsureRoleInput struct {
	Name string
}

// EnsureRoleOutput contains the existing or created role
type EnsureRoleOutput struct {
	Role *models.Role

	// Created is true when the role did not exist before
	Created bool
}

// HasRoleInput contains parameters for a role membership check
type HasRoleInput struct {
	UserID   string
	RoleName string
}

// HasRoleOutput contains the result of a role membership check
type HasRoleOutput struct {
	HasRole bool
}
