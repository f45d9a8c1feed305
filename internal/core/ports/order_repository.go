// Package ports defines the contracts between the dispatch core and its infrastructure:
// persistence, real-time publication, the position cache and deadline scheduling.
package ports

import (
	"context"
	"time"

	"crowddelivery/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
//
// Every status change goes through Apply. Implementations must execute a transition
// as one conditional write on the stored row and must not read-then-write, so that
// concurrent callers are serialized by the store itself.
type OrderRepository interface {
	// Add persists a new pending order and returns it with its store-assigned ID.
	// A duplicate order number yields a ValueIsInvalidError.
	Add(ctx context.Context, aggregate *order.Order) (*order.Order, error)

	// Get retrieves an order by ID. Returns ObjectNotFoundError when it does not exist.
	Get(ctx context.Context, id int64) (*order.Order, error)

	// Exists reports whether an order with the ID is stored.
	Exists(ctx context.Context, id int64) (bool, error)

	// Apply performs the transition if and only if the stored row satisfies its guard.
	// Returns true when exactly one row changed and false when the guard did not match,
	// including when the order does not exist.
	Apply(ctx context.Context, transition order.Transition) (bool, error)

	// ListDueForExpiry returns accepted orders whose transfer deadline is at or before now.
	ListDueForExpiry(ctx context.Context, now time.Time) ([]*order.Order, error)

	// ListAccepted returns every accepted order, oldest deadline first.
	ListAccepted(ctx context.Context) ([]*order.Order, error)
}
