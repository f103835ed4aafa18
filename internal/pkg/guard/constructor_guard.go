// Package guard provides ConstructorGuard, a marker embedded in commands, queries
// and entities so that zero-value instances can be told apart from ones built by
// their constructor.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard records whether its owner was created by a constructor.
// The zero value is "not constructed". It is immutable and safe to copy.
//
// Example:
//
//	type RequestNextOrderCommand struct {
//	    technicianID kernel.UUID
//	    guard        guard.ConstructorGuard
//	}
//
//	func (c RequestNextOrderCommand) Validate() error {
//	    return c.guard.Validate(ErrRequestNextOrderCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marked as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil for a constructed guard. Otherwise it returns validationError,
// or ErrDefaultConstructorGuard when validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if g.isConstructed {
		return nil
	}
	if validationError == nil {
		return ErrDefaultConstructorGuard
	}
	return validationError
}
