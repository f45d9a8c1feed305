// Package gormerr maps gorm and driver failures onto the errs vocabulary shared by
// every repository.
package gormerr

import (
	"errors"
	"fmt"

	"crowddelivery/internal/pkg/errs"

	"gorm.io/gorm"
)

// Translate converts a storage error for resource.
//
//   - nil and gorm.ErrRecordNotFound are returned unchanged, callers decide what "missing" means
//   - a unique constraint violation becomes ValueIsInvalidError
//   - anything else, including context cancellation, becomes UnavailableError
func Translate(resource string, err error) error {
	switch {
	case err == nil, errors.Is(err, gorm.ErrRecordNotFound):
		return err
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return errs.NewValueIsInvalidErrorWithCause(resource, fmt.Errorf("duplicate key: %w", err))
	default:
		return errs.NewUnavailableError(resource, err)
	}
}
