package ports

import (
	"context"

	"crowddelivery/internal/core/domain/model/chat"
)

// ChatRepository stores chat messages. Stored messages are never modified.
type ChatRepository interface {
	// Add persists the message and returns it with its store-assigned, monotonically
	// increasing ID and server timestamp.
	Add(ctx context.Context, message *chat.Message) (*chat.Message, error)
}
