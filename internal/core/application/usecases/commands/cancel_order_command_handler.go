package commands

import (
	"context"

	"crowddelivery/internal/core/domain/model/order"
)

// CancelOrderCommandHandler withdraws a dispatchable order. Orders held by a rider
// cannot be cancelled.
type CancelOrderCommandHandler struct {
	d dispatcher
}

func NewCancelOrderCommandHandler(deps DispatchDeps) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{d: newDispatcher(deps)}
}

// Handle returns the committed order or the reason the cancellation was rejected.
func (h CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	t, err := order.NewCancelTransition(cmd.OrderID(), cmd.MerchantID())
	if err != nil {
		return nil, err
	}

	return h.d.applyOrReject(ctx, t)
}
