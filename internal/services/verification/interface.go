package verification

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/phalabot/internal/services/verification Service

import "context"

// Service defines the human-verification operations
type Service interface {
	// Verify runs one challenge/response session for the invoking member.
	// Timeouts and wrong answers are reported through the output state, not as errors.
	Verify(ctx context.Context, input *VerifyInput) (*VerifyOutput, error)

	// EnsureRole returns the named role, creating it when the guild has none
	EnsureRole(ctx context.Context, input *EnsureRoleInput) (*EnsureRoleOutput, error)

	// HasRole reports whether a member currently holds a role with the given name
	HasRole(ctx context.Context, input *HasRoleInput) (*HasRoleOutput, error)
}
