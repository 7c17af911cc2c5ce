package gateway

import (
	"bytes"
	"context"
	"fmt"

	"github.com/KirkDiggler/phalabot/internal/models"
	"github.com/bwmarrin/discordgo"
)

// DiscordConfig holds configuration for the discordgo backed gateway
type DiscordConfig struct {
	// Session is an opened or about to be opened discordgo session
	Session *discordgo.Session

	// GuildID is the single guild the bot manages
	GuildID string

	// Waiters receives inbound messages from the bot's MessageCreate handler
	Waiters *Waiters
}

// Discord implements Gateway on top of the Discord REST API
type Discord struct {
	session *discordgo.Session
	guildID string
	waiters *Waiters
}

// NewDiscord creates a new Discord gateway
func NewDiscord(cfg *DiscordConfig) (*Discord, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.Session == nil {
		return nil, ErrNilSession
	}
	if cfg.GuildID == "" {
		return nil, ErrEmptyGuildID
	}
	if cfg.Waiters == nil {
		return nil, ErrNilWaiters
	}

	return &Discord{
		session: cfg.Session,
		guildID: cfg.GuildID,
		waiters: cfg.Waiters,
	}, nil
}

// SendMessage posts a message to a channel
func (d *Discord) SendMessage(ctx context.Context, input *SendMessageInput) error {
	if input == nil || input.ChannelID == "" {
		return fmt.Errorf("input and channel ID cannot be empty")
	}

	data := &discordgo.MessageSend{
		Content: input.Content,
	}

	if input.Attachment != nil {
		data.Files = []*discordgo.File{
			{
				Name:        input.Attachment.Name,
				ContentType: input.Attachment.ContentType,
				Reader:      bytes.NewReader(input.Attachment.Data),
			},
		}
		data.Embeds = []*discordgo.MessageEmbed{
			{
				Image: &discordgo.MessageEmbedImage{
					URL: "attachment://" + input.Attachment.Name,
				},
			},
		}
	}

	if _, err := d.session.ChannelMessageSendComplex(input.ChannelID, data, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("failed to send message to channel %s: %w", input.ChannelID, err)
	}

	return nil
}

// ListRoles returns every role in the guild
func (d *Discord) ListRoles(ctx context.Context) ([]*models.Role, error) {
	roles, err := d.session.GuildRoles(d.guildID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}

	result := make([]*models.Role, 0, len(roles))
	for _, role := range roles {
		result = append(result, toRole(role))
	}

	return result, nil
}

// CreateRole creates a role in the guild
func (d *Discord) CreateRole(ctx context.Context, input *CreateRoleInput) (*models.Role, error) {
	if input == nil || input.Name == "" {
		return nil, fmt.Errorf("input and role name cannot be empty")
	}

	role, err := d.session.GuildRoleCreate(d.guildID, &discordgo.RoleParams{
		Name: input.Name,
	}, discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to create role %s: %w", input.Name, err)
	}

	return toRole(role), nil
}

// MemberRoles returns the roles a member currently holds
func (d *Discord) MemberRoles(ctx context.Context, input *MemberRolesInput) ([]*models.Role, error) {
	if input == nil || input.UserID == "" {
		return nil, fmt.Errorf("input and user ID cannot be empty")
	}

	member, err := d.session.GuildMember(d.guildID, input.UserID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to get member %s: %w", input.UserID, err)
	}

	// Members only carry role IDs, resolve them against the guild roles
	guildRoles, err := d.ListRoles(ctx)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*models.Role, len(guildRoles))
	for _, role := range guildRoles {
		byID[role.ID] = role
	}

	held := make([]*models.Role, 0, len(member.Roles))
	for _, roleID := range member.Roles {
		if role, ok := byID[roleID]; ok {
			held = append(held, role)
		}
	}

	return held, nil
}

// GrantRole adds a role to a member
func (d *Discord) GrantRole(ctx context.Context, input *GrantRoleInput) error {
	if input == nil || input.UserID == "" || input.RoleID == "" {
		return fmt.Errorf("input, user ID and role ID cannot be empty")
	}

	if err := d.session.GuildMemberRoleAdd(d.guildID, input.UserID, input.RoleID, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("failed to grant role %s to %s: %w", input.RoleID, input.UserID, err)
	}

	return nil
}

// AwaitNextMessage waits on the shared waiter registry
func (d *Discord) AwaitNextMessage(ctx context.Context, input *AwaitNextMessageInput) (*models.Message, error) {
	if input == nil {
		return nil, ErrNilPredicate
	}
	return d.waiters.Await(ctx, input.Match, input.Timeout)
}

func toRole(role *discordgo.Role) *models.Role {
	return &models.Role{
		ID:   role.ID,
		Name: role.Name,
	}
}
