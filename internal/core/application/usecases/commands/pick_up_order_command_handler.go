package commands

import (
	"context"

	"crowddelivery/internal/core/domain/model/order"
)

// PickUpOrderCommandHandler moves an accepted order to picked_up. The write only
// matches while the accept window is open and the caller holds the order, so a
// pickup racing the deadline either wins completely or loses to the expiry.
type PickUpOrderCommandHandler struct {
	d dispatcher
}

func NewPickUpOrderCommandHandler(deps DispatchDeps) PickUpOrderCommandHandler {
	return PickUpOrderCommandHandler{d: newDispatcher(deps)}
}

// Handle returns the committed order, TransitionRejectedError when the order is
// not accepted by this rider or its window has closed, or ObjectNotFoundError.
func (h PickUpOrderCommandHandler) Handle(ctx context.Context, cmd PickUpOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	t, err := order.NewPickUpTransition(cmd.OrderID(), cmd.RiderID(), h.d.now())
	if err != nil {
		return nil, err
	}

	o, err := h.d.applyOrReject(ctx, t)
	if err != nil {
		return nil, err
	}

	h.d.cancelTimer(cmd.OrderID())
	return o, nil
}
