package discord

import (
	"fmt"

	"github.com/KirkDiggler/phalabot/internal/models"
	"github.com/bwmarrin/discordgo"
)

// FormatSummary renders the price statistics the way check_price prints them
func FormatSummary(summary models.PriceSummary) string {
	return fmt.Sprintf("mean: %s \nmedian: %s \nminimum: %s \nmaximum: %s",
		summary.Mean.String(),
		summary.Median.String(),
		summary.Min.String(),
		summary.Max.String())
}

// toMessage converts a discordgo message into the platform neutral form
func toMessage(m *discordgo.Message) *models.Message {
	msg := &models.Message{
		ID:        m.ID,
		ChannelID: m.ChannelID,
		Content:   m.Content,
	}

	if m.Author != nil {
		msg.AuthorID = m.Author.ID
		msg.AuthorName = m.Author.Username
	}

	if m.Member != nil && m.Member.Nick != "" {
		msg.AuthorName = m.Member.Nick
	}

	return msg
}
