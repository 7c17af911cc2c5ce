package events

import (
	"time"

	"github.com/KirkDiggler/phalabot/internal/models"
)

// DefaultTopic is the topic verification events are published on
const DefaultTopic = "phalabot.verification"

// VerificationEvent records how a verification session resolved
type VerificationEvent struct {
	SessionID string                   `json:"session_id"`
	UserID    string                   `json:"user_id"`
	ChannelID string                   `json:"channel_id"`
	State     models.VerificationState `json:"state"`
	At        time.Time                `json:"at"`
}
