package queries

import (
	"errors"

	"crowddelivery/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery fetches the full record of one order.
type GetOrderQuery struct {
	orderID int64

	guard guard.ConstructorGuard
}

func NewGetOrderQuery(orderID int64) (GetOrderQuery, error) {
	if err := validateID("orderId", orderID); err != nil {
		return GetOrderQuery{}, err
	}
	return GetOrderQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) OrderID() int64 { return q.orderID }
