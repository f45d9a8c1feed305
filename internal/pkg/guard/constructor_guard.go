// Package guard holds the constructor guard used by commands, queries and
// value objects to tell constructed values apart from zero values.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded into types that must only be built by their
// constructor. Its zero value fails validation.
//
// Example usage:
//
//	type AcceptOrderCommand struct {
//	    orderID int64
//	    guard   guard.ConstructorGuard
//	}
//
//	func (c AcceptOrderCommand) Validate() error {
//	    return c.guard.Validate(ErrAcceptOrderCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard marks the owning value as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil)
// if the owning value was not created through its constructor.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
