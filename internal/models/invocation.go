package models

// CommandInvocation is a parsed prefix command
type CommandInvocation struct {
	// AuthorID is the Discord user ID of the member who issued the command
	AuthorID string

	// AuthorName is the display name of the member
	AuthorName string

	// ChannelID is the channel the command was issued in
	ChannelID string

	// Command is the command name without the prefix
	Command string

	// Args holds the remaining whitespace separated words
	Args []string
}
