package commands

import (
	"context"
	"log/slog"
	"time"

	"crowddelivery/internal/core/domain/model/chat"
	"crowddelivery/internal/core/ports"
	"crowddelivery/internal/pkg/errs"
)

// SendChatMessageCommandHandler stores a chat message and relays it to the
// participants of the order's conversation.
//
// Persisting and publishing messages of the same order happen under one stripe
// lock, so subscribers receive them in the order of their stored IDs.
type SendChatMessageCommandHandler struct {
	orders    ports.OrderRepository
	messages  ports.ChatRepository
	publisher ports.EventPublisher
	logger    *slog.Logger
	clock     func() time.Time
	stripes   *stripes
}

func NewSendChatMessageCommandHandler(
	orders ports.OrderRepository,
	messages ports.ChatRepository,
	publisher ports.EventPublisher,
	logger *slog.Logger,
	clock func() time.Time,
) SendChatMessageCommandHandler {
	if clock == nil {
		clock = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return SendChatMessageCommandHandler{
		orders:    orders,
		messages:  messages,
		publisher: publisher,
		logger:    logger,
		clock:     clock,
		stripes:   &stripes{},
	}
}

// Handle returns the stored message, ObjectNotFoundError for an unknown order or
// a validation error for an empty or malformed message.
func (h SendChatMessageCommandHandler) Handle(ctx context.Context, cmd SendChatMessageCommand) (chat.Snapshot, error) {
	if err := cmd.Validate(); err != nil {
		return chat.Snapshot{}, err
	}

	exists, err := h.orders.Exists(ctx, cmd.OrderID())
	if err != nil {
		return chat.Snapshot{}, err
	}
	if !exists {
		return chat.Snapshot{}, errs.NewObjectNotFoundError("order", cmd.OrderID())
	}

	unlock := h.stripes.lock(cmd.OrderID())
	defer unlock()

	msg, err := chat.NewMessage(cmd.OrderID(), cmd.SenderID(), cmd.Kind(), cmd.Text(), cmd.URL(), h.clock())
	if err != nil {
		return chat.Snapshot{}, err
	}

	stored, err := h.messages.Add(ctx, msg)
	if err != nil {
		return chat.Snapshot{}, err
	}

	s := stored.Snapshot()
	if err := h.publisher.Publish(ctx, ports.OrderChannel(s.OrderID), ports.EventChatMessage, s); err != nil {
		h.logger.WarnContext(ctx, "publish failed", "event", ports.EventChatMessage, "order_id", s.OrderID, "error", err)
	}

	return s, nil
}
