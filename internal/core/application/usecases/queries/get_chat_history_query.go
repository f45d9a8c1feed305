package queries

import (
	"errors"

	"crowddelivery/internal/pkg/guard"
)

var ErrGetChatHistoryQueryIsNotConstructed = errors.New(
	"GetChatHistoryQuery must be created via NewGetChatHistoryQuery constructor",
)

// GetChatHistoryQuery loads the conversation of an order. Clients call it after
// joining the order channel to catch up on messages sent before they joined.
type GetChatHistoryQuery struct {
	orderID int64

	guard guard.ConstructorGuard
}

func NewGetChatHistoryQuery(orderID int64) (GetChatHistoryQuery, error) {
	if err := validateID("orderId", orderID); err != nil {
		return GetChatHistoryQuery{}, err
	}
	return GetChatHistoryQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetChatHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetChatHistoryQueryIsNotConstructed)
}

func (q GetChatHistoryQuery) OrderID() int64 { return q.orderID }
