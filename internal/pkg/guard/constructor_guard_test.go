package guard_test

import (
	"errors"
	"testing"

	"crowddelivery/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("properly_constructed_guard_returns_nil", func(t *testing.T) {
		// Given
		g := guard.NewConstructorGuard()

		// When
		err := g.Validate(errors.New("not constructed"))

		// Then
		require.NoError(t, err)
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero_value_guard_returns_custom_error", func(t *testing.T) {
		// Given
		var g guard.ConstructorGuard
		expectedError := errors.New("command not constructed")

		// When
		err := g.Validate(expectedError)

		// Then
		require.Error(t, err)
		assert.Equal(t, expectedError, err)
	})

	t.Run("zero_value_guard_returns_default_error_when_nil", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(nil)

		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
	})
}

func TestConstructorGuard_EmbeddedInValueObject(t *testing.T) {
	type sample struct {
		value int
		guard guard.ConstructorGuard
	}
	errSampleNotConstructed := errors.New("sample must be created via newSample")
	newSample := func(v int) sample {
		return sample{value: v, guard: guard.NewConstructorGuard()}
	}

	built := newSample(1)
	require.NoError(t, built.guard.Validate(errSampleNotConstructed))

	literal := sample{value: 1}
	require.ErrorIs(t, literal.guard.Validate(errSampleNotConstructed), errSampleNotConstructed)

	copied := built
	require.NoError(t, copied.guard.Validate(errSampleNotConstructed), "copies keep the constructed flag")
}
