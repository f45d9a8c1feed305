package ports

import (
	"context"
	"time"
)

// Position is the last reported location of a user, normally a rider.
type Position struct {
	UserID     int64     `json:"userId"`
	Lat        float64   `json:"lat"`
	Lng        float64   `json:"lng"`
	RecordedAt time.Time `json:"recordedAt"`
}

// LocationCache keeps the latest position per user. A newer Put overwrites the
// previous value; entries expire after a TTL and no history is kept.
type LocationCache interface {
	Put(ctx context.Context, position Position) error

	// Get returns ObjectNotFoundError when no fresh position is known.
	Get(ctx context.Context, userID int64) (Position, error)
}
