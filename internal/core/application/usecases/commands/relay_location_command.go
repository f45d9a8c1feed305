package commands

import (
	"errors"

	"crowddelivery/internal/core/domain/model/kernel"
	"crowddelivery/internal/pkg/guard"
)

var ErrRelayLocationCommandIsNotConstructed = errors.New(
	"RelayLocationCommand must be created via NewRelayLocationCommand constructor",
)

// RelayLocationCommand carries a position update from a rider device.
type RelayLocationCommand struct {
	userID   int64
	location kernel.Location

	guard guard.ConstructorGuard
}

func NewRelayLocationCommand(userID int64, lat, lng float64) (RelayLocationCommand, error) {
	if err := validateID("userId", userID); err != nil {
		return RelayLocationCommand{}, err
	}
	location, err := kernel.NewLocation(lat, lng)
	if err != nil {
		return RelayLocationCommand{}, err
	}

	return RelayLocationCommand{
		userID:   userID,
		location: location,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RelayLocationCommand) Validate() error {
	return c.guard.Validate(ErrRelayLocationCommandIsNotConstructed)
}

func (c RelayLocationCommand) UserID() int64             { return c.userID }
func (c RelayLocationCommand) Location() kernel.Location { return c.location }
