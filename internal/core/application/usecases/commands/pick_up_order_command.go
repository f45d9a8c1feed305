package commands

import (
	"errors"

	"crowddelivery/internal/pkg/guard"
)

var ErrPickUpOrderCommandIsNotConstructed = errors.New(
	"PickUpOrderCommand must be created via NewPickUpOrderCommand constructor",
)

// PickUpOrderCommand confirms that the assigned rider collected the goods.
type PickUpOrderCommand struct {
	orderID int64
	riderID int64

	guard guard.ConstructorGuard
}

// NewPickUpOrderCommand validates both identifiers.
func NewPickUpOrderCommand(orderID, riderID int64) (PickUpOrderCommand, error) {
	if err := errors.Join(validateID("orderId", orderID), validateID("riderId", riderID)); err != nil {
		return PickUpOrderCommand{}, err
	}
	return PickUpOrderCommand{orderID: orderID, riderID: riderID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through the constructor.
func (c PickUpOrderCommand) Validate() error {
	return c.guard.Validate(ErrPickUpOrderCommandIsNotConstructed)
}

func (c PickUpOrderCommand) OrderID() int64 { return c.orderID }
func (c PickUpOrderCommand) RiderID() int64 { return c.riderID }
