package discord

import (
	"context"
	"errors"
	"testing"

	"github.com/KirkDiggler/phalabot/internal/gateway"
	gatewayMocks "github.com/KirkDiggler/phalabot/internal/gateway/mocks"
	"github.com/KirkDiggler/phalabot/internal/models"
	"github.com/KirkDiggler/phalabot/internal/services/price"
	priceMocks "github.com/KirkDiggler/phalabot/internal/services/price/mocks"
	"github.com/KirkDiggler/phalabot/internal/services/verification"
	verificationMocks "github.com/KirkDiggler/phalabot/internal/services/verification/mocks"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type DispatcherTestSuite struct {
	suite.Suite
	mockCtrl         *gomock.Controller
	mockGateway      *gatewayMocks.MockGateway
	mockVerification *verificationMocks.MockService
	mockPrice        *priceMocks.MockService
	dispatcher       *Dispatcher
	ctx              context.Context

	// Test data
	commandsChannelID string
	generalChannelID  string
	userID            string
	report            *models.PriceReport
}

func (s *DispatcherTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockGateway = gatewayMocks.NewMockGateway(s.mockCtrl)
	s.mockVerification = verificationMocks.NewMockService(s.mockCtrl)
	s.mockPrice = priceMocks.NewMockService(s.mockCtrl)
	s.ctx = context.Background()

	s.commandsChannelID = "bot-commands"
	s.generalChannelID = "general"
	s.userID = "user-1"
	s.report = &models.PriceReport{
		Summary: models.PriceSummary{
			Mean:   decimal.RequireFromString("0.31234"),
			Median: decimal.RequireFromString("0.3"),
			Min:    decimal.RequireFromString("0.2"),
			Max:    decimal.RequireFromString("0.44444"),
		},
		Chart: []byte("png"),
	}

	authorizer, err := NewAuthorizer(&AuthorizerConfig{
		CommandsChannelID: s.commandsChannelID,
		Verification:      s.mockVerification,
	})
	s.Require().NoError(err)

	s.dispatcher, err = NewDispatcher(&DispatcherConfig{
		Gateway: s.mockGateway,
	})
	s.Require().NoError(err)

	s.Require().NoError(s.dispatcher.Register(NewVerifyCommand(s.mockVerification, authorizer)))
	s.Require().NoError(s.dispatcher.Register(NewCheckPriceCommand(s.mockPrice, s.mockGateway, authorizer, "verified")))
}

func (s *DispatcherTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func (s *DispatcherTestSuite) message(channelID, content string) *models.Message {
	return &models.Message{
		ID:        "msg-1",
		ChannelID: channelID,
		AuthorID:  s.userID,
		Content:   content,
	}
}

func (s *DispatcherTestSuite) expectDenied(channelID string) {
	s.mockGateway.EXPECT().SendMessage(s.ctx, &gateway.SendMessageInput{
		ChannelID: channelID,
		Content:   MessageDenied,
	}).Return(nil)
}

func (s *DispatcherTestSuite) expectHasRole(has bool) {
	s.mockVerification.EXPECT().HasRole(s.ctx, &verification.HasRoleInput{
		UserID:   s.userID,
		RoleName: "verified",
	}).Return(&verification.HasRoleOutput{HasRole: has}, nil)
}

func (s *DispatcherTestSuite) TestParse() {
	inv, ok := s.dispatcher.Parse(s.message(s.commandsChannelID, "!check_price now please"))
	s.Require().True(ok)
	s.Equal("check_price", inv.Command)
	s.Equal([]string{"now", "please"}, inv.Args)
	s.Equal(s.userID, inv.AuthorID)
	s.Equal(s.commandsChannelID, inv.ChannelID)

	_, ok = s.dispatcher.Parse(s.message(s.commandsChannelID, "verify"))
	s.False(ok)

	_, ok = s.dispatcher.Parse(s.message(s.commandsChannelID, "!"))
	s.False(ok)

	_, ok = s.dispatcher.Parse(s.message(s.commandsChannelID, "!unknown"))
	s.False(ok)

	_, ok = s.dispatcher.Parse(nil)
	s.False(ok)
}

func (s *DispatcherTestSuite) TestRegisterDuplicate() {
	err := s.dispatcher.Register(&noopCommand{BaseCommand: BaseCommand{Name: "verify"}})
	s.Error(err)
}

func (s *DispatcherTestSuite) TestPlainMessageIgnored() {
	s.NoError(s.dispatcher.Dispatch(s.ctx, s.message(s.commandsChannelID, "hello there")))
}

func (s *DispatcherTestSuite) TestVerifyWrongChannelDenied() {
	s.expectDenied(s.generalChannelID)

	s.NoError(s.dispatcher.Dispatch(s.ctx, s.message(s.generalChannelID, "!verify")))
}

func (s *DispatcherTestSuite) TestVerifyRunsSession() {
	s.mockVerification.EXPECT().Verify(s.ctx, &verification.VerifyInput{
		UserID:    s.userID,
		ChannelID: s.commandsChannelID,
	}).Return(&verification.VerifyOutput{State: models.VerificationStateMatched}, nil)

	s.NoError(s.dispatcher.Dispatch(s.ctx, s.message(s.commandsChannelID, "!verify")))
}

func (s *DispatcherTestSuite) TestVerifyErrorPropagates() {
	s.mockVerification.EXPECT().Verify(s.ctx, gomock.Any()).Return(nil, errors.New("discord down"))

	err := s.dispatcher.Dispatch(s.ctx, s.message(s.commandsChannelID, "!verify"))
	s.Error(err)
	s.Contains(err.Error(), "command verify failed")
}

func (s *DispatcherTestSuite) TestCheckPriceWrongChannelDenied() {
	// The role check is never reached, and the denial is the same message
	s.expectDenied(s.generalChannelID)

	s.NoError(s.dispatcher.Dispatch(s.ctx, s.message(s.generalChannelID, "!check_price")))
}

func (s *DispatcherTestSuite) TestCheckPriceUnverifiedDenied() {
	s.expectHasRole(false)
	s.expectDenied(s.commandsChannelID)

	s.NoError(s.dispatcher.Dispatch(s.ctx, s.message(s.commandsChannelID, "!check_price")))
}

func (s *DispatcherTestSuite) TestCheckPriceGuardError() {
	s.mockVerification.EXPECT().HasRole(s.ctx, gomock.Any()).Return(nil, errors.New("member lookup failed"))

	err := s.dispatcher.Dispatch(s.ctx, s.message(s.commandsChannelID, "!check_price"))
	s.Error(err)
	s.Contains(err.Error(), "failed to authorize check_price")
}

func (s *DispatcherTestSuite) TestCheckPriceSendsSummaryThenChart() {
	s.expectHasRole(true)
	s.mockPrice.EXPECT().GetReport(s.ctx).Return(s.report, nil)

	gomock.InOrder(
		s.mockGateway.EXPECT().SendMessage(s.ctx, &gateway.SendMessageInput{
			ChannelID: s.commandsChannelID,
			Content:   "mean: 0.31234 \nmedian: 0.3 \nminimum: 0.2 \nmaximum: 0.44444",
		}).Return(nil),
		s.mockGateway.EXPECT().SendMessage(s.ctx, &gateway.SendMessageInput{
			ChannelID: s.commandsChannelID,
			Attachment: &models.Attachment{
				Name:        ChartFileName,
				ContentType: "image/png",
				Data:        s.report.Chart,
			},
		}).Return(nil),
	)

	s.NoError(s.dispatcher.Dispatch(s.ctx, s.message(s.commandsChannelID, "!check_price")))
}

func (s *DispatcherTestSuite) TestCheckPriceWithoutChartSendsSummaryOnly() {
	s.expectHasRole(true)
	s.report.Chart = nil
	s.mockPrice.EXPECT().GetReport(s.ctx).Return(s.report, nil)
	s.mockGateway.EXPECT().SendMessage(s.ctx, &gateway.SendMessageInput{
		ChannelID: s.commandsChannelID,
		Content:   "mean: 0.31234 \nmedian: 0.3 \nminimum: 0.2 \nmaximum: 0.44444",
	}).Return(nil)

	s.NoError(s.dispatcher.Dispatch(s.ctx, s.message(s.commandsChannelID, "!check_price")))
}

func (s *DispatcherTestSuite) TestCheckPriceRefreshesWhenNothingCached() {
	s.expectHasRole(true)
	s.mockPrice.EXPECT().GetReport(s.ctx).Return(nil, price.ErrReportUnavailable)
	s.mockPrice.EXPECT().Refresh(s.ctx).Return(s.report, nil)
	s.mockGateway.EXPECT().SendMessage(s.ctx, gomock.Any()).Return(nil).Times(2)

	s.NoError(s.dispatcher.Dispatch(s.ctx, s.message(s.commandsChannelID, "!check_price")))
}

func (s *DispatcherTestSuite) TestCheckPriceRefreshFails() {
	s.expectHasRole(true)
	s.mockPrice.EXPECT().GetReport(s.ctx).Return(nil, price.ErrReportUnavailable)
	s.mockPrice.EXPECT().Refresh(s.ctx).Return(nil, errors.New("subscan unavailable"))

	s.Error(s.dispatcher.Dispatch(s.ctx, s.message(s.commandsChannelID, "!check_price")))
}

func TestDispatcherSuite(t *testing.T) {
	suite.Run(t, new(DispatcherTestSuite))
}

// noopCommand does nothing
type noopCommand struct {
	BaseCommand
}

func (c *noopCommand) Handle(context.Context, *models.CommandInvocation) error {
	return nil
}
