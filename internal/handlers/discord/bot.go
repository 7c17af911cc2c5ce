package discord

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/KirkDiggler/phalabot/internal/gateway"
	"github.com/KirkDiggler/phalabot/internal/services/verification"
	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

// MessageAlive is posted to the general channel once connected
const MessageAlive = "I am alive"

// Intents the bot needs to read commands and member roles
const Intents = discordgo.IntentsGuilds |
	discordgo.IntentsGuildMembers |
	discordgo.IntentsGuildMessages |
	discordgo.IntentsMessageContent

// connection is the gateway websocket lifecycle of a session
type connection interface {
	Open() error
	Close() error
}

// Bot represents the Discord bot instance
type Bot struct {
	session      *discordgo.Session
	conn         connection
	gateway      gateway.Gateway
	waiters      *gateway.Waiters
	dispatcher   *Dispatcher
	verification verification.Service
	config       *Config
	roleName     string
	logger       *zap.Logger

	// ready is set once startup is complete and commands may run
	ready  atomic.Bool
	ctx    context.Context
	cancel context.CancelFunc
}

// Config holds the configuration for the bot
type Config struct {
	// Session is created by the caller so the gateway can share it
	Session *discordgo.Session

	// GuildID is the single guild the bot serves
	GuildID string

	// GeneralChannelID receives the startup announcement
	GeneralChannelID string

	// VerifiedRoleName is bootstrapped at startup
	VerifiedRoleName string

	Gateway      gateway.Gateway
	Waiters      *gateway.Waiters
	Dispatcher   *Dispatcher
	Verification verification.Service
	Logger       *zap.Logger
}

// New creates a new Discord bot
func New(cfg *Config) (*Bot, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Session == nil {
		return nil, errors.New("session cannot be nil")
	}

	if cfg.GeneralChannelID == "" {
		return nil, errors.New("general channel ID cannot be empty")
	}

	if cfg.Gateway == nil {
		return nil, errors.New("gateway cannot be nil")
	}

	if cfg.Waiters == nil {
		return nil, errors.New("waiters cannot be nil")
	}

	if cfg.Dispatcher == nil {
		return nil, errors.New("dispatcher cannot be nil")
	}

	if cfg.Verification == nil {
		return nil, errors.New("verification service cannot be nil")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	roleName := cfg.VerifiedRoleName
	if roleName == "" {
		roleName = verification.DefaultRoleName
	}

	ctx, cancel := context.WithCancel(context.Background())

	bot := &Bot{
		session:      cfg.Session,
		conn:         cfg.Session,
		gateway:      cfg.Gateway,
		waiters:      cfg.Waiters,
		dispatcher:   cfg.Dispatcher,
		verification: cfg.Verification,
		config:       cfg,
		roleName:     roleName,
		logger:       logger.Named("bot"),
		ctx:          ctx,
		cancel:       cancel,
	}

	bot.session.Identify.Intents = Intents
	bot.session.AddHandler(bot.handleMessageCreate)

	return bot, nil
}

// Start connects, announces itself, bootstraps the verified role and then
// starts accepting commands
func (b *Bot) Start(ctx context.Context) error {
	if err := b.conn.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	if err := b.bootstrap(ctx); err != nil {
		if closeErr := b.conn.Close(); closeErr != nil {
			b.logger.Warn("failed to close Discord connection", zap.Error(closeErr))
		}
		return err
	}

	b.ready.Store(true)
	b.logger.Info("bot is now running")

	return nil
}

func (b *Bot) bootstrap(ctx context.Context) error {
	if err := b.gateway.SendMessage(ctx, &gateway.SendMessageInput{
		ChannelID: b.config.GeneralChannelID,
		Content:   MessageAlive,
	}); err != nil {
		return err
	}

	output, err := b.verification.EnsureRole(ctx, &verification.EnsureRoleInput{
		Name: b.roleName,
	})
	if err != nil {
		return fmt.Errorf("failed to bootstrap role %s: %w", b.roleName, err)
	}

	b.logger.Info("verified role ready",
		zap.String("role", output.Role.Name),
		zap.String("role_id", output.Role.ID),
		zap.Bool("created", output.Created))

	b.logGuild(ctx)

	return nil
}

// Stop gracefully shuts down the Discord connection
func (b *Bot) Stop() error {
	b.ready.Store(false)
	b.cancel()

	return b.conn.Close()
}

// logGuild dumps members and roles at debug level
func (b *Bot) logGuild(ctx context.Context) {
	if !b.logger.Core().Enabled(zap.DebugLevel) {
		return
	}

	if b.config.GuildID != "" {
		members, err := b.session.GuildMembers(b.config.GuildID, "", 1000, discordgo.WithContext(ctx))
		if err != nil {
			b.logger.Debug("failed to list members", zap.Error(err))
		}
		for _, member := range members {
			if member.User == nil {
				continue
			}
			b.logger.Debug("member", zap.String("user_id", member.User.ID), zap.String("name", member.User.Username))
		}
	}

	roles, err := b.gateway.ListRoles(ctx)
	if err != nil {
		b.logger.Debug("failed to list roles", zap.Error(err))
		return
	}
	for _, role := range roles {
		b.logger.Debug("role", zap.String("role_id", role.ID), zap.String("name", role.Name))
	}
}

// handleMessageCreate feeds pending waiters and then dispatches commands.
// discordgo calls it on its own goroutine per event.
func (b *Bot) handleMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Message == nil || m.Author == nil {
		return
	}

	if s.State != nil && s.State.User != nil && m.Author.ID == s.State.User.ID {
		return
	}

	msg := toMessage(m.Message)

	if woken := b.waiters.Deliver(msg); woken > 0 {
		b.logger.Debug("delivered message to waiters",
			zap.String("user_id", msg.AuthorID),
			zap.Int("waiters", woken))
	}

	// Commands from bot accounts are never run
	if m.Author.Bot || !b.ready.Load() {
		return
	}

	if err := b.dispatcher.Dispatch(b.ctx, msg); err != nil {
		b.logger.Error("error handling message",
			zap.String("message_id", msg.ID),
			zap.String("user_id", msg.AuthorID),
			zap.Error(err))
	}
}
