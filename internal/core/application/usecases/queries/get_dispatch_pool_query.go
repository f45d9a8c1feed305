package queries

import (
	"errors"

	"crowddelivery/internal/pkg/guard"
)

var (
	ErrGetDispatchPoolQueryIsNotConstructed = errors.New(
		"GetDispatchPoolQuery must be created via NewGetDispatchPoolQuery constructor",
	)
)

// GetDispatchPoolQuery lists the orders riders can currently accept: pending
// orders and orders handed back by a transfer or an expired accept window.
//
// Example:
//
//	query := NewGetDispatchPoolQuery()
//	handler := NewGetDispatchPoolQueryHandler(db)
//
//	hall, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to load dispatch pool: %w", err)
//	}
//	for _, o := range hall {
//	    fmt.Printf("%s %s -> %s\n", o.OrderNumber, o.Price, o.DestinationAddress)
//	}
type GetDispatchPoolQuery struct {
	guard guard.ConstructorGuard
}

// NewGetDispatchPoolQuery creates a parameterless dispatch pool query.
func NewGetDispatchPoolQuery() GetDispatchPoolQuery {
	return GetDispatchPoolQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetDispatchPoolQueryIsNotConstructed if validation fails.
func (q GetDispatchPoolQuery) Validate() error {
	return q.guard.Validate(ErrGetDispatchPoolQueryIsNotConstructed)
}
