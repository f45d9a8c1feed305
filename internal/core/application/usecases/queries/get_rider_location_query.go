package queries

import (
	"context"
	"errors"

	"crowddelivery/internal/core/ports"
	"crowddelivery/internal/pkg/guard"
)

var ErrGetRiderLocationQueryIsNotConstructed = errors.New(
	"GetRiderLocationQuery must be created via NewGetRiderLocationQuery constructor",
)

// GetRiderLocationQuery asks for the last known position of a rider.
type GetRiderLocationQuery struct {
	riderID int64

	guard guard.ConstructorGuard
}

func NewGetRiderLocationQuery(riderID int64) (GetRiderLocationQuery, error) {
	if err := validateID("riderId", riderID); err != nil {
		return GetRiderLocationQuery{}, err
	}
	return GetRiderLocationQuery{riderID: riderID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetRiderLocationQuery) Validate() error {
	return q.guard.Validate(ErrGetRiderLocationQueryIsNotConstructed)
}

func (q GetRiderLocationQuery) RiderID() int64 { return q.riderID }

// GetRiderLocationQueryHandler answers from the location cache only.
type GetRiderLocationQueryHandler struct {
	cache ports.LocationCache
}

func NewGetRiderLocationQueryHandler(cache ports.LocationCache) GetRiderLocationQueryHandler {
	return GetRiderLocationQueryHandler{cache: cache}
}

// Handle returns ObjectNotFoundError when the rider has not reported a position
// within the cache TTL.
func (h GetRiderLocationQueryHandler) Handle(ctx context.Context, query GetRiderLocationQuery) (ports.Position, error) {
	if err := query.Validate(); err != nil {
		return ports.Position{}, err
	}
	return h.cache.Get(ctx, query.RiderID())
}
