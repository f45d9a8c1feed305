package errs_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"crowddelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("orderId", "123")

		assert.Equal(t, "orderId", err.ParamName)
		assert.Equal(t, "123", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: 123", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("record not found")
		err := errs.NewObjectNotFoundErrorWithCause("orderId", "123", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: orderId, ID is: 123 (cause: record not found)",
			err.Error())
	})

	t.Run("numeric IDs are printed plainly", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("orderId", int64(456))
		assert.Equal(t, "object not found: 456", err.Error())
	})
}

func TestValueIsInvalidError(t *testing.T) {
	t.Run("NewValueIsInvalidError", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("weight")

		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: weight", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})

	t.Run("NewValueIsInvalidErrorWithCause", func(t *testing.T) {
		cause := errors.New("must be positive")
		err := errs.NewValueIsInvalidErrorWithCause("weight", cause)

		assert.Equal(t, "value is invalid: weight (cause: must be positive)", err.Error())
	})
}

func TestValueIsOutOfRangeError(t *testing.T) {
	t.Run("NewValueIsOutOfRangeError", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("lat", 95.5, -90, 90)

		assert.Equal(t, 95.5, err.Value)
		assert.Equal(t, "value is invalid: 95.5 is lat, min value is -90, max value is 90", err.Error())
		assert.Equal(t, errs.ErrValueIsOutOfRange, err.Unwrap())
	})

	t.Run("NewValueIsOutOfRangeErrorWithCause", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeErrorWithCause("lng", -181, -180, 180, errors.New("bad gps fix"))
		assert.Equal(t,
			"value is invalid: -181 is lng, min value is -180, max value is 180 (cause: bad gps fix)",
			err.Error())
	})

	t.Run("newlines are flattened", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("text", "hello\nworld", 0, 10)
		assert.Contains(t, err.Error(), "hello world")
		assert.NotContains(t, err.Error(), "\n")
	})
}

func TestValueIsRequiredError(t *testing.T) {
	err := errs.NewValueIsRequiredError("customerName")
	assert.Equal(t, "value is required: customerName", err.Error())
	assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())

	withCause := errs.NewValueIsRequiredErrorWithCause("url", errors.New("photo needs a url"))
	assert.Equal(t, "value is required: url (cause: photo needs a url)", withCause.Error())
}

func TestTransitionRejectedError(t *testing.T) {
	t.Run("with reason", func(t *testing.T) {
		err := errs.NewTransitionRejectedError("pick_up", int64(7), "order is not accepted by this rider")

		assert.Equal(t,
			"transition rejected: pick_up on 7: order is not accepted by this rider",
			err.Error())
		require.ErrorIs(t, err, errs.ErrTransitionRejected)
	})

	t.Run("with cause", func(t *testing.T) {
		err := errs.NewTransitionRejectedErrorWithCause("deliver", int64(7), "", errors.New("status is picked_up"))
		assert.Equal(t, "transition rejected: deliver on 7 (cause: status is picked_up)", err.Error())
	})
}

func TestUnavailableError(t *testing.T) {
	err := errs.NewUnavailableError("orders", context.DeadlineExceeded)

	require.ErrorIs(t, err, errs.ErrUnavailable)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, "temporarily unavailable: orders (cause: context deadline exceeded)", err.Error())

	wrapped := fmt.Errorf("accept: %w", errs.NewUnavailableError("orders", nil))
	require.ErrorIs(t, wrapped, errs.ErrUnavailable)
}

func TestErrorsCanBeUnwrapped(t *testing.T) {
	require.ErrorIs(t, errs.NewObjectNotFoundError("orderId", "1"), errs.ErrObjectNotFound)
	require.ErrorIs(t, errs.NewValueIsInvalidError("kind"), errs.ErrValueIsInvalid)
	require.ErrorIs(t, errs.NewValueIsOutOfRangeError("lat", 100, -90, 90), errs.ErrValueIsOutOfRange)
	require.ErrorIs(t, errs.NewValueIsRequiredError("message"), errs.ErrValueIsRequired)

	var rejected *errs.TransitionRejectedError
	err := fmt.Errorf("handler: %w", errs.NewTransitionRejectedError("accept", 1, "cancelled"))
	require.ErrorAs(t, err, &rejected)
	assert.Equal(t, "accept", rejected.Action)
}
