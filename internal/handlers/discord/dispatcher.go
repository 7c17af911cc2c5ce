package discord

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/KirkDiggler/phalabot/internal/gateway"
	"github.com/KirkDiggler/phalabot/internal/models"
	"go.uber.org/zap"
)

// DefaultPrefix starts every command
const DefaultPrefix = "!"

// DispatcherConfig holds configuration for the dispatcher
type DispatcherConfig struct {
	// Prefix defaults to DefaultPrefix
	Prefix string

	Gateway gateway.Gateway
	Logger  *zap.Logger
}

// Dispatcher routes prefix commands to their handlers
type Dispatcher struct {
	prefix   string
	commands map[string]CommandHandler
	gateway  gateway.Gateway
	logger   *zap.Logger
}

// NewDispatcher creates a new dispatcher
func NewDispatcher(cfg *DispatcherConfig) (*Dispatcher, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Gateway == nil {
		return nil, errors.New("gateway cannot be nil")
	}

	prefix := cfg.Prefix
	if prefix == "" {
		prefix = DefaultPrefix
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Dispatcher{
		prefix:   prefix,
		commands: make(map[string]CommandHandler),
		gateway:  cfg.Gateway,
		logger:   logger.Named("dispatcher"),
	}, nil
}

// Register adds a command handler
func (d *Dispatcher) Register(cmd CommandHandler) error {
	if cmd == nil || cmd.GetName() == "" {
		return errors.New("command must have a name")
	}

	if _, exists := d.commands[cmd.GetName()]; exists {
		return fmt.Errorf("command %s already registered", cmd.GetName())
	}

	d.commands[cmd.GetName()] = cmd
	d.logger.Debug("registered command", zap.String("command", cmd.GetName()))

	return nil
}

// Parse turns a message into an invocation. Messages that are not a known
// command return false.
func (d *Dispatcher) Parse(msg *models.Message) (*models.CommandInvocation, bool) {
	if msg == nil || !strings.HasPrefix(msg.Content, d.prefix) {
		return nil, false
	}

	fields := strings.Fields(strings.TrimPrefix(msg.Content, d.prefix))
	if len(fields) == 0 {
		return nil, false
	}

	if _, ok := d.commands[fields[0]]; !ok {
		return nil, false
	}

	return &models.CommandInvocation{
		AuthorID:   msg.AuthorID,
		AuthorName: msg.AuthorName,
		ChannelID:  msg.ChannelID,
		Command:    fields[0],
		Args:       fields[1:],
	}, true
}

// Dispatch runs the command carried by msg, if any. A failing guard skips the
// command body and sends the denial message.
func (d *Dispatcher) Dispatch(ctx context.Context, msg *models.Message) error {
	inv, ok := d.Parse(msg)
	if !ok {
		return nil
	}

	cmd := d.commands[inv.Command]
	logger := d.logger.With(
		zap.String("command", inv.Command),
		zap.String("user_id", inv.AuthorID),
		zap.String("channel_id", inv.ChannelID),
	)

	allowed, err := d.authorize(ctx, cmd, inv)
	if err != nil {
		return fmt.Errorf("failed to authorize %s: %w", inv.Command, err)
	}

	if !allowed {
		logger.Debug("command denied")
		return d.gateway.SendMessage(ctx, &gateway.SendMessageInput{
			ChannelID: inv.ChannelID,
			Content:   MessageDenied,
		})
	}

	logger.Debug("running command")
	if err := cmd.Handle(ctx, inv); err != nil {
		return fmt.Errorf("command %s failed: %w", inv.Command, err)
	}

	return nil
}

func (d *Dispatcher) authorize(ctx context.Context, cmd CommandHandler, inv *models.CommandInvocation) (bool, error) {
	for _, guard := range cmd.GetGuards() {
		ok, err := guard(ctx, inv)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}

	return true, nil
}
