package gateway

//go:generate mockgen -package=mocks -destination=mocks/mock_gateway.go github.com/KirkDiggler/phalabot/internal/gateway Gateway

import (
	"context"

	"github.com/KirkDiggler/phalabot/internal/models"
)

// Gateway is the slice of the chat platform the bot depends on.
// All role operations are scoped to the single configured guild.
type Gateway interface {
	// SendMessage posts a message, with an optional attachment, to a channel
	SendMessage(ctx context.Context, input *SendMessageInput) error

	// ListRoles returns every role in the guild
	ListRoles(ctx context.Context) ([]*models.Role, error)

	// CreateRole creates a role in the guild
	CreateRole(ctx context.Context, input *CreateRoleInput) (*models.Role, error)

	// MemberRoles returns the roles a member currently holds
	MemberRoles(ctx context.Context, input *MemberRolesInput) ([]*models.Role, error)

	// GrantRole adds a role to a member. Granting a held role is a no-op.
	GrantRole(ctx context.Context, input *GrantRoleInput) error

	// AwaitNextMessage blocks until a message matching the predicate arrives.
	// It returns ErrWaitTimeout when the timeout elapses first.
	AwaitNextMessage(ctx context.Context, input *AwaitNextMessageInput) (*models.Message, error)
}
