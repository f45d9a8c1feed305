package commands

import (
	"errors"

	"crowddelivery/internal/pkg/guard"
)

var ErrDeliverOrderCommandIsNotConstructed = errors.New(
	"DeliverOrderCommand must be created via NewDeliverOrderCommand constructor",
)

// DeliverOrderCommand confirms that the assigned rider handed the goods to the customer.
type DeliverOrderCommand struct {
	orderID int64
	riderID int64

	guard guard.ConstructorGuard
}

// NewDeliverOrderCommand validates both identifiers.
func NewDeliverOrderCommand(orderID, riderID int64) (DeliverOrderCommand, error) {
	if err := errors.Join(validateID("orderId", orderID), validateID("riderId", riderID)); err != nil {
		return DeliverOrderCommand{}, err
	}
	return DeliverOrderCommand{orderID: orderID, riderID: riderID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through the constructor.
func (c DeliverOrderCommand) Validate() error {
	return c.guard.Validate(ErrDeliverOrderCommandIsNotConstructed)
}

func (c DeliverOrderCommand) OrderID() int64 { return c.orderID }
func (c DeliverOrderCommand) RiderID() int64 { return c.riderID }
