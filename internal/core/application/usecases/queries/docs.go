// Package queries contains read-only operations of the dispatch core.
// Implements the Query side of the CQRS architecture: handlers read the store (or
// the location cache) directly and never change state or publish events.
package queries

import (
	"fmt"

	"crowddelivery/internal/pkg/errs"
)

func validateID(name string, id int64) error {
	if id <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(name, fmt.Errorf("%d is not a positive identifier", id))
	}
	return nil
}
