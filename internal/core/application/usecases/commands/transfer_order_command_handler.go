package commands

import (
	"context"

	"crowddelivery/internal/core/domain/model/order"
)

// TransferOrderCommandHandler lets the rider holding an accepted order give it up.
// The order goes straight back to the dispatch pool as transferring.
type TransferOrderCommandHandler struct {
	d dispatcher
}

func NewTransferOrderCommandHandler(deps DispatchDeps) TransferOrderCommandHandler {
	return TransferOrderCommandHandler{d: newDispatcher(deps)}
}

// Handle returns the committed order or the reason the transfer was rejected.
func (h TransferOrderCommandHandler) Handle(ctx context.Context, cmd TransferOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	t, err := order.NewTransferTransition(cmd.OrderID(), cmd.RiderID())
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
