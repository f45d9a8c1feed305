package commands

import (
	"errors"

	"crowddelivery/internal/pkg/guard"
)

var ErrCancelOrderCommandIsNotConstructed = errors.New(
	"CancelOrderCommand must be created via NewCancelOrderCommand constructor",
)

// CancelOrderCommand withdraws an order that no rider holds, on behalf of its merchant.
type CancelOrderCommand struct {
	orderID    int64
	merchantID int64

	guard guard.ConstructorGuard
}

// NewCancelOrderCommand validates both identifiers.
func NewCancelOrderCommand(orderID, merchantID int64) (CancelOrderCommand, error) {
	if err := errors.Join(validateID("orderId", orderID), validateID("merchantId", merchantID)); err != nil {
		return CancelOrderCommand{}, err
	}
	return CancelOrderCommand{orderID: orderID, merchantID: merchantID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}

func (c CancelOrderCommand) OrderID() int64 { return c.orderID }
func (c CancelOrderCommand) MerchantID() int64 { return c.merchantID }
