package commands

import (
	"errors"

	"crowddelivery/internal/pkg/guard"
)

var (
	ErrExpireAcceptWindowCommandIsNotConstructed = errors.New(
		"ExpireAcceptWindowCommand must be created via NewExpireAcceptWindowCommand constructor",
	)
	ErrExpireAcceptWindowsCommandIsNotConstructed = errors.New(
		"ExpireAcceptWindowsCommand must be created via NewExpireAcceptWindowsCommand constructor",
	)
)

// ExpireAcceptWindowCommand reclaims one accepted order whose deadline has passed.
// Issued by the deadline timer of that order.
type ExpireAcceptWindowCommand struct {
	orderID int64

	guard guard.ConstructorGuard
}

func NewExpireAcceptWindowCommand(orderID int64) (ExpireAcceptWindowCommand, error) {
	if err := validateID("orderId", orderID); err != nil {
		return ExpireAcceptWindowCommand{}, err
	}
	return ExpireAcceptWindowCommand{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through the constructor.
func (c ExpireAcceptWindowCommand) Validate() error {
	return c.guard.Validate(ErrExpireAcceptWindowCommandIsNotConstructed)
}

func (c ExpireAcceptWindowCommand) OrderID() int64 { return c.orderID }

// ExpireAcceptWindowsCommand reclaims every accepted order whose deadline has passed.
// This is a parameterless command issued by the sweep job and by startup recovery.
type ExpireAcceptWindowsCommand struct {
	guard guard.ConstructorGuard
}

func NewExpireAcceptWindowsCommand() ExpireAcceptWindowsCommand {
	return ExpireAcceptWindowsCommand{guard: guard.NewConstructorGuard()}
}

// Validate ensures the command was created through the constructor.
func (c ExpireAcceptWindowsCommand) Validate() error {
	return c.guard.Validate(ErrExpireAcceptWindowsCommandIsNotConstructed)
}
