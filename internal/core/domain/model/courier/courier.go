package courier

import (
	"errors"
	"fmt"
	"strings"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

const (
	DefaultStoragePlaceName   = "Bag"
	DefaultStoragePlaceVolume = 10
)

var (
	ErrNoAvailableStorage      = errors.New("no storage place can hold the order")
	ErrOrderNotInStorage       = errors.New("order is not stored by the courier")
	ErrCourierIsNotConstructed = errs.NewValueIsRequiredError("courier")
)

// Courier is the aggregate root for a delivery person and the storage they carry.
//
// Invariants:
//   - name is not blank and speed is positive
//   - location is always on the grid
//   - there is at least one storage place and each holds at most one order
//
// Example:
//
//	speed, _ := kernel.NewSpeed(2)
//	c, err := courier.NewCourier("Alice", speed, kernel.MinLocation())
//	if err != nil {
//	    return err
//	}
//	if ok, _ := c.CanTakeOrder(o); ok {
//	    err = c.TakeOrder(o)
//	}
type Courier struct {
	kernel.Entity[kernel.UUID]

	name          string
	speed         kernel.Speed
	location      kernel.Location
	storagePlaces []*StoragePlace

	guard guard.ConstructorGuard
}

// NewCourier creates a courier with a fresh id and a single default bag
// (DefaultStoragePlaceName, DefaultStoragePlaceVolume).
//
// Parameters:
//   - name: display name, must not be blank
//   - speed: cells covered per movement tick
//   - location: starting cell
//
// Returns:
//   - *Courier: the new aggregate
//   - error: joined validation errors for every bad argument
func NewCourier(name string, speed kernel.Speed, location kernel.Location) (*Courier, error) {
	bagVolume, err := kernel.NewVolume(DefaultStoragePlaceVolume)
	if err != nil {
		return nil, err
	}
	bag, err := NewStoragePlace(DefaultStoragePlaceName, bagVolume)
	if err != nil {
		return nil, err
	}

	return RestoreCourier(kernel.NewUUID(), name, speed, location, []*StoragePlace{bag})
}

// RestoreCourier rebuilds a courier from persisted state. The storage places keep
// the given order, which is the order TakeOrder scans them in.
func RestoreCourier(
	id kernel.UUID,
	name string,
	speed kernel.Speed,
	location kernel.Location,
	storagePlaces []*StoragePlace,
) (*Courier, error) {
	c := &Courier{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(id),
		c.setName(name),
		c.setSpeed(speed),
		c.setLocation(location),
		c.setStoragePlaces(storagePlaces),
	); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Courier) Validate() error {
	if c == nil {
		return ErrCourierIsNotConstructed
	}
	return c.guard.Validate(ErrCourierIsNotConstructed)
}

// IsEqual compares couriers by identity.
func (c *Courier) IsEqual(other *Courier) bool {
	if c == nil || other == nil {
		return false
	}
	return c.SameIdentityAs(other.Entity)
}

func (c *Courier) Name() string {
	return c.name
}

func (c *Courier) Speed() kernel.Speed {
	return c.speed
}

func (c *Courier) Location() kernel.Location {
	return c.location
}

// StoragePlaces returns the courier's places in scan order. The slice is a copy;
// the places themselves are shared and must only be changed through the courier.
func (c *Courier) StoragePlaces() []*StoragePlace {
	out := make([]*StoragePlace, len(c.storagePlaces))
	copy(out, c.storagePlaces)
	return out
}

// AddStoragePlace appends a new empty place. There is no upper bound on the count.
func (c *Courier) AddStoragePlace(name string, volume kernel.Volume) error {
	place, err := NewStoragePlace(name, volume)
	if err != nil {
		return err
	}

	c.storagePlaces = append(c.storagePlaces, place)
	return nil
}

// IsFree reports whether every storage place is empty.
func (c *Courier) IsFree() bool {
	for _, place := range c.storagePlaces {
		if place.IsOccupied() {
			return false
		}
	}
	return true
}

// CanTakeOrder reports whether some storage place can hold the order's volume.
func (c *Courier) CanTakeOrder(o *order.Order) (bool, error) {
	if err := o.Validate(); err != nil {
		return false, err
	}

	place, err := c.findStorageForVolume(o.Volume())
	if err != nil {
		return false, err
	}

	return place != nil, nil
}

// TakeOrder stores the order in the first place, in list order, that can hold it.
// It only touches the courier; assigning the order is the caller's job.
//
// Returns:
//   - error: ErrNoAvailableStorage when nothing fits, validation error for an absent order
func (c *Courier) TakeOrder(o *order.Order) error {
	if err := o.Validate(); err != nil {
		return err
	}

	place, err := c.findStorageForVolume(o.Volume())
	if err != nil {
		return err
	}
	if place == nil {
		return fmt.Errorf("%w: order %s, volume %s", ErrNoAvailableStorage, o.ID(), o.Volume())
	}

	return place.Store(o.ID(), o.Volume())
}

// CompleteOrder frees the storage place that holds the order.
func (c *Courier) CompleteOrder(o *order.Order) error {
	if err := o.Validate(); err != nil {
		return err
	}

	for _, place := range c.storagePlaces {
		if place.Holds(o.ID()) {
			return place.Clear()
		}
	}

	return fmt.Errorf("%w: order %s, courier %s", ErrOrderNotInStorage, o.ID(), c.ID())
}

// CalculateTimeToLocation returns the number of whole ticks needed to reach target,
// i.e. ceil(distance / speed). Zero means the courier is already there.
//
// Example:
//
//	// courier at (1,1) with speed 2, target (4,5): distance 7, 4 ticks
//	ticks, err := c.CalculateTimeToLocation(target)
func (c *Courier) CalculateTimeToLocation(target kernel.Location) (int, error) {
	distance, err := c.location.Distance(target)
	if err != nil {
		return 0, err
	}

	return c.speed.TicksToCover(distance)
}

// Move advances one tick toward target. The x axis is covered first, at most
// speed cells; the remaining budget is spent on y. The courier never overshoots.
func (c *Courier) Move(target kernel.Location) error {
	next, err := c.location.StepToward(target, c.speed.Int())
	if err != nil {
		return err
	}

	return c.setLocation(next)
}

// IsAt reports whether the courier stands on target.
func (c *Courier) IsAt(target kernel.Location) (bool, error) {
	return c.location.IsEqual(target)
}

func (c *Courier) String() string {
	return fmt.Sprintf("Courier(%s, %q, %s, %s)", c.ID(), c.name, c.speed, c.location)
}

func (c *Courier) findStorageForVolume(volume kernel.Volume) (*StoragePlace, error) {
	for _, place := range c.storagePlaces {
		ok, err := place.CanStore(volume)
		if err != nil {
			return nil, err
		}
		if ok {
			return place, nil
		}
	}

	return nil, nil //nolint:nilnil // nothing fits and nothing failed
}

func (c *Courier) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("id", err)
	}
	c.Entity = kernel.NewEntity(id)
	return nil
}

func (c *Courier) setName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errs.NewValueIsRequiredError("name")
	}
	c.name = name
	return nil
}

func (c *Courier) setSpeed(speed kernel.Speed) error {
	if err := speed.Validate(); err != nil {
		return err
	}
	c.speed = speed
	return nil
}

func (c *Courier) setLocation(location kernel.Location) error {
	if err := location.Validate(); err != nil {
		return err
	}
	c.location = location
	return nil
}

func (c *Courier) setStoragePlaces(storagePlaces []*StoragePlace) error {
	if len(storagePlaces) == 0 {
		return errs.NewValueIsRequiredError("storagePlaces")
	}

	for _, place := range storagePlaces {
		if err := place.Validate(); err != nil {
			return err
		}
	}

	c.storagePlaces = make([]*StoragePlace, len(storagePlaces))
	copy(c.storagePlaces, storagePlaces)
	return nil
}
