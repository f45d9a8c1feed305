package order

import (
	"fmt"

	"crowddelivery/internal/pkg/errs"
)

// Type distinguishes orders to be delivered now from orders booked for a later time.
type Type string

const (
	// Instant orders enter the dispatch pool immediately.
	Instant Type = "instant"
	// Scheduled orders carry the time the customer expects delivery.
	Scheduled Type = "scheduled"
)

// Validate checks that the type is instant or scheduled.
func (t Type) Validate() error {
	if t != Instant && t != Scheduled {
		return errs.NewValueIsInvalidErrorWithCause("type is invalid", fmt.Errorf("%q is not a valid order type", string(t)))
	}
	return nil
}

// String returns the persisted representation of the type.
func (t Type) String() string {
	return string(t)
}
