package commands

import (
	"errors"

	"crowddelivery/internal/pkg/guard"
)

var ErrTransferOrderCommandIsNotConstructed = errors.New(
	"TransferOrderCommand must be created via NewTransferOrderCommand constructor",
)

// TransferOrderCommand releases an accepted order back to the dispatch pool at its rider's request.
type TransferOrderCommand struct {
	orderID int64
	riderID int64

	guard guard.ConstructorGuard
}

// NewTransferOrderCommand validates both identifiers.
func NewTransferOrderCommand(orderID, riderID int64) (TransferOrderCommand, error) {
	if err := errors.Join(validateID("orderId", orderID), validateID("riderId", riderID)); err != nil {
		return TransferOrderCommand{}, err
	}
	return TransferOrderCommand{orderID: orderID, riderID: riderID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through the constructor.
func (c TransferOrderCommand) Validate() error {
	return c.guard.Validate(ErrTransferOrderCommandIsNotConstructed)
}

func (c TransferOrderCommand) OrderID() int64 { return c.orderID }
func (c TransferOrderCommand) RiderID() int64 { return c.riderID }
