package repository

import "context"

// NotifierRepository delivers a text message to a chat owner
type NotifierRepository interface {
	Send(ctx context.Context, ownerID int64, text string) error
}
