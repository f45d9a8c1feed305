package commands

import (
	"errors"

	"crowddelivery/internal/pkg/guard"
)

var ErrAcceptOrderCommandIsNotConstructed = errors.New(
	"AcceptOrderCommand must be created via NewAcceptOrderCommand constructor",
)

// AcceptOrderCommand is a rider's attempt to claim an order from the dispatch pool.
//
// Example:
//
//	cmd, err := NewAcceptOrderCommand(orderID, riderID)
//	if err != nil {
//	    return err
//	}
//	result, err := handler.Handle(ctx, cmd)
//	if result.Outcome == AcceptLost {
//	    // another rider was faster
//	}
type AcceptOrderCommand struct {
	orderID int64
	riderID int64

	guard guard.ConstructorGuard
}

// NewAcceptOrderCommand validates both identifiers.
func NewAcceptOrderCommand(orderID, riderID int64) (AcceptOrderCommand, error) {
	if err := errors.Join(validateID("orderId", orderID), validateID("riderId", riderID)); err != nil {
		return AcceptOrderCommand{}, err
	}
	return AcceptOrderCommand{orderID: orderID, riderID: riderID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through the constructor.
func (c AcceptOrderCommand) Validate() error {
	return c.guard.Validate(ErrAcceptOrderCommandIsNotConstructed)
}

func (c AcceptOrderCommand) OrderID() int64 { return c.orderID }
func (c AcceptOrderCommand) RiderID() int64 { return c.riderID }
