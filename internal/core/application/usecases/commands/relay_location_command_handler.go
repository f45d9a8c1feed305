package commands

import (
	"context"
	"log/slog"
	"time"

	"crowddelivery/internal/core/ports"
)

// RelayLocationCommandHandler remembers the latest position of a rider and
// forwards it to every connected client. Nothing is written to the database.
type RelayLocationCommandHandler struct {
	cache     ports.LocationCache
	publisher ports.EventPublisher
	logger    *slog.Logger
	clock     func() time.Time
}

func NewRelayLocationCommandHandler(
	cache ports.LocationCache,
	publisher ports.EventPublisher,
	logger *slog.Logger,
	clock func() time.Time,
) RelayLocationCommandHandler {
	if clock == nil {
		clock = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return RelayLocationCommandHandler{cache: cache, publisher: publisher, logger: logger, clock: clock}
}

// Handle stores the position, then publishes location:rider on the broadcast channel.
// A cache failure is returned and nothing is published.
func (h RelayLocationCommandHandler) Handle(ctx context.Context, cmd RelayLocationCommand) (ports.Position, error) {
	if err := cmd.Validate(); err != nil {
		return ports.Position{}, err
	}

	position := ports.Position{
		UserID:     cmd.UserID(),
		Lat:        cmd.Location().Lat(),
		Lng:        cmd.Location().Lng(),
		RecordedAt: h.clock().UTC(),
	}
	if err := h.cache.Put(ctx, position); err != nil {
		return ports.Position{}, err
	}

	if err := h.publisher.Publish(ctx, ports.BroadcastChannel, ports.EventLocationRider, position); err != nil {
		h.logger.WarnContext(ctx, "publish failed", "event", ports.EventLocationRider, "user_id", position.UserID, "error", err)
	}
	return position, nil
}
