package usecase

import (
	"context"
)

// CommandHandler defines the interface for chat command handlers
type CommandHandler interface {
	// CanHandle determines if this handler serves the given verb
	CanHandle(verb string) bool

	// Handle runs the command and returns the reply text
	Handle(ctx context.Context, ownerID int64, args []string) string
}

// CommandRouter routes chat commands to the appropriate handler based on verb
type CommandRouter interface {
	// Register registers a handler
	Register(handler CommandHandler)

	// GetHandler returns the handler for a verb, or nil
	GetHandler(verb string) CommandHandler
}
