package commands

import (
	"context"
	"log/slog"
	"time"

	"crowddelivery/internal/core/domain/model/order"
	"crowddelivery/internal/core/domain/services"
	"crowddelivery/internal/core/ports"
)

// CreateOrderCommandHandler prices and stores a new pending order, then announces
// it to every connected rider and to the merchant.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, calculator, bus, logger, nil)
//	created, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("order creation failed: %w", err)
//	}
//	// created.Status() == order.Pending, the order is in the dispatch pool
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	calculator services.PriceCalculator
	publisher  ports.EventPublisher
	logger     *slog.Logger
	clock      func() time.Time
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
// clock may be nil, in which case time.Now is used.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	calculator services.PriceCalculator,
	publisher ports.EventPublisher,
	logger *slog.Logger,
	clock func() time.Time,
) CreateOrderCommandHandler {
	if clock == nil {
		clock = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		calculator: calculator,
		publisher:  publisher,
		logger:     logger,
		clock:      clock,
	}
}

// Handle processes the order creation command.
// Uses a transaction so that the order is either fully stored or not at all;
// order:new is published only after the commit.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	price, err := h.calculator.Calculate(cmd.Distance(), cmd.Weight())
	if err != nil {
		return nil, err
	}

	draft := cmd.Draft()
	draft.Price = price
	pending, err := order.NewOrder(draft, h.clock())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	stored, err := uow.OrderRepository().Add(ctx, pending)
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	s := stored.Snapshot()
	for _, ch := range []string{ports.BroadcastChannel, ports.UserChannel(s.MerchantID)} {
		if err := h.publisher.Publish(ctx, ch, ports.EventOrderNew, s); err != nil {
			h.logger.WarnContext(ctx, "publish failed", "event", ports.EventOrderNew, "channel", ch, "order_id", s.ID, "error", err)
		}
	}

	return stored, nil
}
