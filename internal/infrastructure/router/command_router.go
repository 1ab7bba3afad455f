package router

import (
	"fmt"

	"fare-tracker-service/internal/usecase"
	"fare-tracker-service/pkg/logger"
)

// CommandRouter routes chat verbs to the first handler that accepts them
type CommandRouter struct {
	handlers []usecase.CommandHandler
	logger   logger.Logger
}

// NewCommandRouter creates a new command router
func NewCommandRouter(logger logger.Logger) *CommandRouter {
	return &CommandRouter{
		handlers: make([]usecase.CommandHandler, 0),
		logger:   logger,
	}
}

var _ usecase.CommandRouter = (*CommandRouter)(nil)

// Register registers a handler. Earlier registrations win on overlapping verbs.
func (r *CommandRouter) Register(handler usecase.CommandHandler) {
	r.handlers = append(r.handlers, handler)
	r.logger.Debug("Registered handler", "handler", fmt.Sprintf("%T", handler))
}

// GetHandler returns the handler for verb, or nil when none accepts it
func (r *CommandRouter) GetHandler(verb string) usecase.CommandHandler {
	for _, handler := range r.handlers {
		if handler.CanHandle(verb) {
			return handler
		}
	}
	return nil
}
