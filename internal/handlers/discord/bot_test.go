package discord

import (
	"context"
	"errors"
	"testing"
	"time"

	captchaMocks "github.com/KirkDiggler/phalabot/internal/captcha/mocks"
	"github.com/KirkDiggler/phalabot/internal/common/clock"
	"github.com/KirkDiggler/phalabot/internal/common/uuid"
	"github.com/KirkDiggler/phalabot/internal/gateway"
	gatewayMocks "github.com/KirkDiggler/phalabot/internal/gateway/mocks"
	"github.com/KirkDiggler/phalabot/internal/models"
	"github.com/KirkDiggler/phalabot/internal/services/verification"
	verificationMocks "github.com/KirkDiggler/phalabot/internal/services/verification/mocks"
	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type fakeConnection struct {
	openErr error
	opened  int
	closed  int
}

func (f *fakeConnection) Open() error {
	f.opened++
	return f.openErr
}

func (f *fakeConnection) Close() error {
	f.closed++
	return nil
}

type BotTestSuite struct {
	suite.Suite
	mockCtrl         *gomock.Controller
	mockGateway      *gatewayMocks.MockGateway
	mockVerification *verificationMocks.MockService
	session          *discordgo.Session
	waiters          *gateway.Waiters
	conn             *fakeConnection
	bot              *Bot

	// Test data
	botUserID         string
	userID            string
	commandsChannelID string
	generalChannelID  string
}

func (s *BotTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockGateway = gatewayMocks.NewMockGateway(s.mockCtrl)
	s.mockVerification = verificationMocks.NewMockService(s.mockCtrl)

	s.botUserID = "bot-user"
	s.userID = "user-1"
	s.commandsChannelID = "bot-commands"
	s.generalChannelID = "general"

	session, err := discordgo.New("Bot test-token")
	s.Require().NoError(err)
	session.State.User = &discordgo.User{ID: s.botUserID, Bot: true}
	s.session = session

	s.waiters = gateway.NewWaiters(clock.New())
	s.bot = s.newBot(s.mockVerification)
}

func (s *BotTestSuite) TearDownTest() {
	s.bot.cancel()
	s.mockCtrl.Finish()
}

// newBot wires a bot whose verify command runs on svc
func (s *BotTestSuite) newBot(svc verification.Service) *Bot {
	authorizer, err := NewAuthorizer(&AuthorizerConfig{
		CommandsChannelID: s.commandsChannelID,
		Verification:      svc,
	})
	s.Require().NoError(err)

	dispatcher, err := NewDispatcher(&DispatcherConfig{Gateway: s.mockGateway})
	s.Require().NoError(err)
	s.Require().NoError(dispatcher.Register(NewVerifyCommand(svc, authorizer)))

	bot, err := New(&Config{
		Session:          s.session,
		GuildID:          "guild",
		GeneralChannelID: s.generalChannelID,
		Gateway:          s.mockGateway,
		Waiters:          s.waiters,
		Dispatcher:       dispatcher,
		Verification:     svc,
	})
	s.Require().NoError(err)

	s.conn = &fakeConnection{}
	bot.conn = s.conn

	return bot
}

func (s *BotTestSuite) messageFrom(author *discordgo.User, content string) *discordgo.MessageCreate {
	return &discordgo.MessageCreate{
		Message: &discordgo.Message{
			ID:        "msg-" + content,
			ChannelID: s.commandsChannelID,
			Content:   content,
			Author:    author,
		},
	}
}

// await suspends a waiter for authorID and returns where its result lands
func (s *BotTestSuite) await(ctx context.Context, authorID string) <-chan *models.Message {
	result := make(chan *models.Message, 1)
	go func() {
		msg, _ := s.waiters.Await(ctx, gateway.FromAuthorInChannel(authorID, s.commandsChannelID), time.Minute)
		result <- msg
	}()

	s.Require().Eventually(func() bool {
		return s.waiters.Pending() == 1
	}, time.Second, time.Millisecond)

	return result
}

func (s *BotTestSuite) TestOwnMessagesIgnored() {
	s.bot.ready.Store(true)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	result := s.await(ctx, s.botUserID)

	s.bot.handleMessageCreate(s.session, s.messageFrom(&discordgo.User{ID: s.botUserID, Bot: true}, "!verify"))

	s.Equal(1, s.waiters.Pending())
	cancel()
	s.Nil(<-result)
}

func (s *BotTestSuite) TestOtherBotsNeverRunCommands() {
	s.bot.ready.Store(true)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	result := s.await(ctx, "other-bot")

	s.bot.handleMessageCreate(s.session, s.messageFrom(&discordgo.User{ID: "other-bot", Bot: true}, "!verify"))

	msg := <-result
	s.Require().NotNil(msg)
	s.Equal("!verify", msg.Content)
}

func (s *BotTestSuite) TestCommandsIgnoredUntilReady() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	result := s.await(ctx, s.userID)

	s.bot.handleMessageCreate(s.session, s.messageFrom(&discordgo.User{ID: s.userID}, "!verify"))

	msg := <-result
	s.Require().NotNil(msg)
	s.Equal(s.userID, msg.AuthorID)
	s.Equal(0, s.waiters.Pending())
}

func (s *BotTestSuite) TestWaitersFedBeforeDispatch() {
	s.bot.ready.Store(true)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	result := s.await(ctx, s.userID)

	s.mockVerification.EXPECT().Verify(gomock.Any(), &verification.VerifyInput{
		UserID:    s.userID,
		ChannelID: s.commandsChannelID,
	}).DoAndReturn(func(context.Context, *verification.VerifyInput) (*verification.VerifyOutput, error) {
		s.Equal(0, s.waiters.Pending())
		return &verification.VerifyOutput{State: models.VerificationStateMatched}, nil
	})

	s.bot.handleMessageCreate(s.session, s.messageFrom(&discordgo.User{ID: s.userID}, "!verify"))

	s.NotNil(<-result)
}

func (s *BotTestSuite) TestVerifyFlow() {
	generator := captchaMocks.NewMockGenerator(s.mockCtrl)
	generator.EXPECT().Generate().Return("aZ3kQ")

	svc, err := verification.New(&verification.Config{
		Gateway:       s.mockGateway,
		Generator:     generator,
		Clock:         clock.New(),
		UUIDGenerator: uuid.New(),
	})
	s.Require().NoError(err)

	s.bot.cancel()
	s.bot = s.newBot(svc)
	s.bot.ready.Store(true)

	verified := &models.Role{ID: "role-verified", Name: "verified"}
	s.mockGateway.EXPECT().MemberRoles(gomock.Any(), &gateway.MemberRolesInput{UserID: s.userID}).
		Return([]*models.Role{}, nil)

	gomock.InOrder(
		s.mockGateway.EXPECT().SendMessage(gomock.Any(), &gateway.SendMessageInput{
			ChannelID: s.commandsChannelID,
			Content:   "Please enter the following characters to verify that you are a human: aZ3kQ",
		}).Return(nil),
		s.mockGateway.EXPECT().ListRoles(gomock.Any()).Return([]*models.Role{verified}, nil),
		s.mockGateway.EXPECT().GrantRole(gomock.Any(), &gateway.GrantRoleInput{
			UserID: s.userID,
			RoleID: verified.ID,
		}).Return(nil).Times(1),
		s.mockGateway.EXPECT().SendMessage(gomock.Any(), &gateway.SendMessageInput{
			ChannelID: s.commandsChannelID,
			Content:   `You are likely to be a human and have been assigned the "verified" role!`,
		}).Return(nil),
	)

	user := &discordgo.User{ID: s.userID}
	done := make(chan struct{})
	go func() {
		defer close(done)
		s.bot.handleMessageCreate(s.session, s.messageFrom(user, "!verify"))
	}()

	s.Require().Eventually(func() bool {
		return s.waiters.Pending() == 1
	}, time.Second, time.Millisecond)

	s.bot.handleMessageCreate(s.session, s.messageFrom(user, "AZ3KQ"))

	select {
	case <-done:
	case <-time.After(time.Second):
		s.Fail("verify command did not finish")
	}
}

func (s *BotTestSuite) TestStart() {
	gomock.InOrder(
		s.mockGateway.EXPECT().SendMessage(gomock.Any(), &gateway.SendMessageInput{
			ChannelID: s.generalChannelID,
			Content:   MessageAlive,
		}).Return(nil),
		s.mockVerification.EXPECT().EnsureRole(gomock.Any(), &verification.EnsureRoleInput{Name: "verified"}).
			Return(&verification.EnsureRoleOutput{Role: &models.Role{ID: "r1", Name: "verified"}}, nil),
	)

	s.Require().NoError(s.bot.Start(context.Background()))
	s.True(s.bot.ready.Load())
	s.Equal(1, s.conn.opened)
	s.Equal(0, s.conn.closed)
}

func (s *BotTestSuite) TestStartClosesConnectionWhenAnnouncementFails() {
	s.mockGateway.EXPECT().SendMessage(gomock.Any(), gomock.Any()).Return(errors.New("missing access"))

	s.Error(s.bot.Start(context.Background()))
	s.False(s.bot.ready.Load())
	s.Equal(1, s.conn.closed)
}

func (s *BotTestSuite) TestStartClosesConnectionWhenRoleBootstrapFails() {
	s.mockGateway.EXPECT().SendMessage(gomock.Any(), gomock.Any()).Return(nil)
	s.mockVerification.EXPECT().EnsureRole(gomock.Any(), gomock.Any()).Return(nil, errors.New("missing permissions"))

	err := s.bot.Start(context.Background())
	s.Error(err)
	s.Contains(err.Error(), "failed to bootstrap role verified")
	s.False(s.bot.ready.Load())
	s.Equal(1, s.conn.closed)
}

func (s *BotTestSuite) TestStartOpenFails() {
	s.conn.openErr = errors.New("bad token")

	s.Error(s.bot.Start(context.Background()))
	s.Equal(0, s.conn.closed)
}

func TestBotSuite(t *testing.T) {
	suite.Run(t, new(BotTestSuite))
}
