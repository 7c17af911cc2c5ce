package discord

import (
	"context"

	"github.com/KirkDiggler/phalabot/internal/models"
	"github.com/KirkDiggler/phalabot/internal/services/verification"
)

// VerifyCommand handles the verify command
type VerifyCommand struct {
	BaseCommand
	verificationService verification.Service
}

// NewVerifyCommand creates a new verify command handler. Unverified members
// are the audience, so only the channel is checked.
func NewVerifyCommand(verificationService verification.Service, authorizer *Authorizer) *VerifyCommand {
	return &VerifyCommand{
		BaseCommand: BaseCommand{
			Name:        "verify",
			Description: "Prove you are human to receive the verified role",
			Guards:      []Guard{authorizer.ChannelGuard()},
		},
		verificationService: verificationService,
	}
}

// Handle runs one verification session for the invoker
func (c *VerifyCommand) Handle(ctx context.Context, inv *models.CommandInvocation) error {
	_, err := c.verificationService.Verify(ctx, &verification.VerifyInput{
		UserID:    inv.AuthorID,
		ChannelID: inv.ChannelID,
	})
	return err
}
