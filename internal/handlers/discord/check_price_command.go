package discord

import (
	"context"
	"errors"

	"github.com/KirkDiggler/phalabot/internal/gateway"
	"github.com/KirkDiggler/phalabot/internal/models"
	"github.com/KirkDiggler/phalabot/internal/services/price"
)

// ChartFileName is the name the chart is attached under
const ChartFileName = "image.png"

// CheckPriceCommand handles the check_price command
type CheckPriceCommand struct {
	BaseCommand
	priceService price.Service
	gateway      gateway.Gateway
}

// NewCheckPriceCommand creates a new check_price command handler
func NewCheckPriceCommand(priceService price.Service, gw gateway.Gateway, authorizer *Authorizer, verifiedRole string) *CheckPriceCommand {
	return &CheckPriceCommand{
		BaseCommand: BaseCommand{
			Name:        "check_price",
			Description: "Show PHA price statistics for the last 30 days",
			Guards: []Guard{
				authorizer.ChannelGuard(),
				authorizer.RoleGuard(verifiedRole),
			},
		},
		priceService: priceService,
		gateway:      gw,
	}
}

// Handle sends the cached statistics followed by the chart
func (c *CheckPriceCommand) Handle(ctx context.Context, inv *models.CommandInvocation) error {
	report, err := c.priceService.GetReport(ctx)
	if errors.Is(err, price.ErrReportUnavailable) {
		// Nothing cached yet, build one now
		report, err = c.priceService.Refresh(ctx)
	}
	if err != nil {
		return err
	}

	if err := c.gateway.SendMessage(ctx, &gateway.SendMessageInput{
		ChannelID: inv.ChannelID,
		Content:   FormatSummary(report.Summary),
	}); err != nil {
		return err
	}

	if len(report.Chart) == 0 {
		return nil
	}

	return c.gateway.SendMessage(ctx, &gateway.SendMessageInput{
		ChannelID: inv.ChannelID,
		Attachment: &models.Attachment{
			Name:        ChartFileName,
			ContentType: "image/png",
			Data:        report.Chart,
		},
	})
}
