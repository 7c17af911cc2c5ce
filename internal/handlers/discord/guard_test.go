package discord

import (
	"context"
	"testing"

	"github.com/KirkDiggler/phalabot/internal/models"
	"github.com/KirkDiggler/phalabot/internal/services/verification"
	verificationMocks "github.com/KirkDiggler/phalabot/internal/services/verification/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestNewAuthorizerValidation(t *testing.T) {
	ctrl := gomock.NewController(t)

	_, err := NewAuthorizer(nil)
	assert.Error(t, err)

	_, err = NewAuthorizer(&AuthorizerConfig{Verification: verificationMocks.NewMockService(ctrl)})
	assert.Error(t, err)

	_, err = NewAuthorizer(&AuthorizerConfig{CommandsChannelID: "bot-commands"})
	assert.Error(t, err)
}

func TestAuthorizerGuards(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockVerification := verificationMocks.NewMockService(ctrl)
	ctx := context.Background()

	authorizer, err := NewAuthorizer(&AuthorizerConfig{
		CommandsChannelID: "bot-commands",
		Verification:      mockVerification,
	})
	require.NoError(t, err)

	inChannel := &models.CommandInvocation{AuthorID: "user-1", ChannelID: "bot-commands"}
	elsewhere := &models.CommandInvocation{AuthorID: "user-1", ChannelID: "general"}

	assert.True(t, authorizer.InCommandsChannel(inChannel))
	assert.False(t, authorizer.InCommandsChannel(elsewhere))
	assert.False(t, authorizer.InCommandsChannel(nil))

	ok, err := authorizer.ChannelGuard()(ctx, elsewhere)
	require.NoError(t, err)
	assert.False(t, ok)

	mockVerification.EXPECT().HasRole(ctx, &verification.HasRoleInput{
		UserID:   "user-1",
		RoleName: "verified",
	}).Return(&verification.HasRoleOutput{HasRole: true}, nil)

	ok, err = authorizer.RoleGuard("verified")(ctx, inChannel)
	require.NoError(t, err)
	assert.True(t, ok)
}
