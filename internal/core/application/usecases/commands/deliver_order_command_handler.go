package commands

import (
	"context"

	"crowddelivery/internal/core/domain/model/order"
)

// DeliverOrderCommandHandler completes a picked up order.
type DeliverOrderCommandHandler struct {
	d dispatcher
}

func NewDeliverOrderCommandHandler(deps DispatchDeps) DeliverOrderCommandHandler {
	return DeliverOrderCommandHandler{d: newDispatcher(deps)}
}

// Handle returns the committed order or the reason the delivery was rejected.
func (h DeliverOrderCommandHandler) Handle(ctx context.Context, cmd DeliverOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	t, err := order.NewDeliverTransition(cmd.OrderID(), cmd.RiderID(), h.d.now())
	if err != nil {
		return nil, err
	}

	return h.d.applyOrReject(ctx, t)
}
