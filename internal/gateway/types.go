package gateway

import (
	"time"

	"github.com/KirkDiggler/phalabot/internal/models"
)

// Predicate selects inbound messages
type Predicate func(msg *models.Message) bool

// FromAuthorInChannel matches messages by the given author in the given channel
func FromAuthorInChannel(authorID, channelID string) Predicate {
	return func(msg *models.Message) bool {
		return msg.AuthorID == authorID && msg.ChannelID == channelID
	}
}

// SendMessageInput contains parameters for sending a message
type SendMessageInput struct {
	ChannelID string
	Content   string

	// Attachment is optional. When set it is also shown as the image of an embed.
	Attachment *models.Attachment
}

// CreateRoleInput contains parameters for creating a role
type CreateRoleInput struct {
	Name string
}

// MemberRolesInput contains parameters for reading a member's roles
type MemberRolesInput struct {
	UserID string
}

// GrantRoleInput contains parameters for granting a role
type GrantRoleInput struct {
	UserID string
	RoleID string
}

// AwaitNextMessageInput contains parameters for waiting on a message
type AwaitNextMessageInput struct {
	Match   Predicate
	Timeout time.Duration
}
