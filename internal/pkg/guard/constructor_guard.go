// Package guard holds the constructor guard shared by commands, queries and aggregates.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks a value as built through its constructor. Embed it in a struct and
// call Validate from the struct's own Validate method: a zero-value struct fails.
//
//	type NotifyProducersCommand struct {
//	    orderCycleID kernel.UUID
//	    guard        guard.ConstructorGuard
//	}
//
//	func (c NotifyProducersCommand) Validate() error {
//	    return c.guard.Validate(ErrNotifyProducersCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard that passes validation.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil) unless
// the guard was created by NewConstructorGuard.
func (g ConstructorGuard) Validate(validationError error) error {
	if g.isConstructed {
		return nil
	}
	if validationError == nil {
		return ErrDefaultConstructorGuard
	}
	return validationError
}
