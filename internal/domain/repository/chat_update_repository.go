package repository

import (
	"context"

	"fare-tracker-service/internal/domain/entity"
)

// ChatUpdateRepository fetches incoming chat messages after offset
type ChatUpdateRepository interface {
	GetUpdates(ctx context.Context, offset int64) ([]entity.ChatMessage, error)
}
