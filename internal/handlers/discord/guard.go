package discord

import (
	"context"
	"errors"

	"github.com/KirkDiggler/phalabot/internal/models"
	"github.com/KirkDiggler/phalabot/internal/services/verification"
)

// MessageDenied is sent whenever any guard fails. It never says which one.
const MessageDenied = "You are not using the Bot_commands channel or You do not have the correct role for this command."

// Guard decides whether an invocation may run
type Guard func(ctx context.Context, inv *models.CommandInvocation) (bool, error)

// AuthorizerConfig holds configuration for the authorizer
type AuthorizerConfig struct {
	// CommandsChannelID is the only channel commands are accepted in
	CommandsChannelID string

	Verification verification.Service
}

// Authorizer evaluates the channel and role checks
type Authorizer struct {
	commandsChannelID string
	verification      verification.Service
}

// NewAuthorizer creates a new authorizer
func NewAuthorizer(cfg *AuthorizerConfig) (*Authorizer, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.CommandsChannelID == "" {
		return nil, errors.New("commands channel ID cannot be empty")
	}

	if cfg.Verification == nil {
		return nil, errors.New("verification service cannot be nil")
	}

	return &Authorizer{
		commandsChannelID: cfg.CommandsChannelID,
		verification:      cfg.Verification,
	}, nil
}

// InCommandsChannel reports whether the invocation came from the commands channel
func (a *Authorizer) InCommandsChannel(inv *models.CommandInvocation) bool {
	return inv != nil && inv.ChannelID == a.commandsChannelID
}

// HasRole reports whether the invoking member currently holds the named role
func (a *Authorizer) HasRole(ctx context.Context, inv *models.CommandInvocation, roleName string) (bool, error) {
	if inv == nil {
		return false, nil
	}

	output, err := a.verification.HasRole(ctx, &verification.HasRoleInput{
		UserID:   inv.AuthorID,
		RoleName: roleName,
	})
	if err != nil {
		return false, err
	}

	return output.HasRole, nil
}

// ChannelGuard only admits invocations from the commands channel
func (a *Authorizer) ChannelGuard() Guard {
	return func(_ context.Context, inv *models.CommandInvocation) (bool, error) {
		return a.InCommandsChannel(inv), nil
	}
}

// RoleGuard only admits members holding the named role
func (a *Authorizer) RoleGuard(roleName string) Guard {
	return func(ctx context.Context, inv *models.CommandInvocation) (bool, error) {
		return a.HasRole(ctx, inv, roleName)
	}
}
