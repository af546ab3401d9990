package order

import (
	"errors"
	"fmt"

	"dispatch/internal/pkg/errs"
)

// ErrInvalidStatusTransition is wrapped by every rejected status change.
var ErrInvalidStatusTransition = errors.New("invalid status transition")

// Status is the lifecycle state of an order. Transitions only go forward:
//
//	Created ──> Assigned ──> Completed
//
// The zero value Unknown is never a valid persisted state.
type Status int

const (
	Unknown Status = iota
	Created
	Assigned
	Completed
)

var statusNames = map[Status]string{
	Unknown:   "Unknown",
	Created:   "Created",
	Assigned:  "Assigned",
	Completed: "Completed",
}

// Validate rejects Unknown and any value outside the enumeration,
// e.g. a corrupt integer read from the database.
func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok || s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return statusNames[Unknown]
}

// ParseStatus maps a status name back to its value. It is case-sensitive.
func ParseStatus(name string) (Status, error) {
	for s, n := range statusNames {
		if n == name && s != Unknown {
			return s, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", name))
}

// HasCourier reports whether an order in this status must reference a courier.
func (s Status) HasCourier() bool {
	return s == Assigned || s == Completed
}

// Assign returns Assigned when called on Created.
func (s Status) Assign() (Status, error) {
	if s != Created {
		return Unknown, transitionError(s, Assigned)
	}
	return Assigned, nil
}

// Complete returns Completed when called on Assigned.
func (s Status) Complete() (Status, error) {
	if s != Assigned {
		return Unknown, transitionError(s, Completed)
	}
	return Completed, nil
}

func transitionError(from, to Status) error {
	return errs.NewValueIsInvalidErrorWithCause(
		"status",
		fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, from, to),
	)
}
