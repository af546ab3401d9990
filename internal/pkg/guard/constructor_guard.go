// Package guard lets value objects, commands and queries tell a constructed instance
// apart from a zero value.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the caller passes no error of its own.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded in types whose zero value is not a valid instance.
// Only constructors call NewConstructorGuard, so a zero-value guard means the
// struct was built with a literal and must be rejected.
//
//	type Speed struct {
//	    value int
//	    guard guard.ConstructorGuard
//	}
//
//	func (s Speed) Validate() error {
//	    return s.guard.Validate(ErrSpeedIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil)
// if the guard is a zero value.
func (g ConstructorGuard) Validate(validationError error) error {
	if g.isConstructed {
		return nil
	}
	if validationError == nil {
		return ErrDefaultConstructorGuard
	}
	return validationError
}
