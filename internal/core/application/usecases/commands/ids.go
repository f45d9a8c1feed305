package commands

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
