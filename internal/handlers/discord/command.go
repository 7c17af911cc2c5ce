package discord

import (
	"context"

	"github.com/KirkDiggler/phalabot/internal/models"
)

// CommandHandler defines the interface for prefix command handlers
type CommandHandler interface {
	// GetName returns the command name without the prefix
	GetName() string

	// GetGuards returns the checks that must all pass before Handle runs
	GetGuards() []Guard

	// Handle runs the command body
	Handle(ctx context.Context, inv *models.CommandInvocation) error
}

// BaseCommand provides common functionality for all commands
type BaseCommand struct {
	Name        string
	Description string
	Guards      []Guard
}

// GetName returns the command name
func (c *BaseCommand) GetName() string {
	return c.Name
}

// GetGuards returns the command's guards
func (c *BaseCommand) GetGuards() []Guard {
	return c.Guards
}
