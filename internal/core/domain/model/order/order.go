package order

import (
	"errors"
	"fmt"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrOrderIsNotConstructed = errs.NewValueIsRequiredError("order")

// Order is the aggregate root for a single delivery.
//
// Invariants:
//   - id, location and volume are always present
//   - status only moves forward: Created, Assigned, Completed
//   - courierID is set if and only if status is Assigned or Completed
//
// Example:
//
//	loc, _ := kernel.NewLocation(5, 7)
//	vol, _ := kernel.NewVolume(5)
//	o, err := order.NewOrder(kernel.NewUUID(), loc, vol)
//	if err != nil {
//	    return err
//	}
//	_ = o.Assign(courierID)
type Order struct {
	kernel.Entity[kernel.UUID]

	courierID *kernel.UUID
	location  kernel.Location
	volume    kernel.Volume
	status    Status

	events []StatusChanged
	guard  guard.ConstructorGuard
}

// NewOrder creates an order in Created status with no courier.
//
// Parameters:
//   - id: identity supplied by the caller (the basket id upstream)
//   - location: delivery destination
//   - volume: size of the parcel
//
// Returns:
//   - *Order: the new aggregate
//   - error: joined validation errors for every absent argument
func NewOrder(id kernel.UUID, location kernel.Location, volume kernel.Volume) (*Order, error) {
	o := &Order{
		status: Created,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setLocation(location),
		o.setVolume(volume),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder rebuilds an order from persisted state. It enforces the same
// invariants as the domain operations, including the courier/status pairing,
// so corrupt rows are rejected instead of loaded.
func RestoreOrder(
	id kernel.UUID,
	courierID *kernel.UUID,
	location kernel.Location,
	volume kernel.Volume,
	status Status,
) (*Order, error) {
	o := &Order{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setLocation(location),
		o.setVolume(volume),
		o.setStatus(status, courierID),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate reports ErrOrderIsNotConstructed for a nil or zero-value order.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares orders by identity.
func (o *Order) IsEqual(other *Order) bool {
	if o == nil || other == nil {
		return false
	}
	return o.SameIdentityAs(other.Entity)
}

func (o *Order) Location() kernel.Location {
	return o.location
}

func (o *Order) Volume() kernel.Volume {
	return o.volume
}

func (o *Order) Status() Status {
	return o.status
}

// CourierID returns a copy of the assigned courier id, or nil while the order is Created.
func (o *Order) CourierID() *kernel.UUID {
	if o.courierID == nil {
		return nil
	}
	id := *o.courierID
	return &id
}

// Assign binds the order to a courier. Only a Created order can be assigned;
// anything else fails with ErrInvalidStatusTransition and leaves the order untouched.
func (o *Order) Assign(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("courierID", err)
	}

	next, err := o.status.Assign()
	if err != nil {
		return err
	}

	from := o.status
	o.courierID = &courierID
	o.status = next
	o.events = append(o.events, newStatusChanged(o, from))
	return nil
}

// Complete marks an Assigned order as delivered. The courier id is kept.
func (o *Order) Complete() error {
	next, err := o.status.Complete()
	if err != nil {
		return err
	}

	from := o.status
	o.status = next
	o.events = append(o.events, newStatusChanged(o, from))
	return nil
}

// Events returns the status changes recorded since the last ClearEvents.
func (o *Order) Events() []StatusChanged {
	return append([]StatusChanged(nil), o.events...)
}

func (o *Order) ClearEvents() {
	o.events = nil
}

func (o *Order) String() string {
	return fmt.Sprintf("Order(%s, %s, %s, %s)", o.ID(), o.status, o.location, o.volume)
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("id", err)
	}
	o.Entity = kernel.NewEntity(id)
	return nil
}

func (o *Order) setLocation(location kernel.Location) error {
	if err := location.Validate(); err != nil {
		return err
	}
	o.location = location
	return nil
}

func (o *Order) setVolume(volume kernel.Volume) error {
	if err := volume.Validate(); err != nil {
		return err
	}
	o.volume = volume
	return nil
}

func (o *Order) setStatus(status Status, courierID *kernel.UUID) error {
	if err := status.Validate(); err != nil {
		return err
	}

	if status.HasCourier() != (courierID != nil) {
		return errs.NewValueIsInvalidErrorWithCause(
			"courierID",
			fmt.Errorf("courier assignment does not match status %s", status),
		)
	}

	if courierID != nil {
		if err := courierID.Validate(); err != nil {
			return errs.NewValueIsRequiredErrorWithCause("courierID", err)
		}
		id := *courierID
		o.courierID = &id
	}

	o.status = status
	return nil
}
