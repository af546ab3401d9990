package courier

import (
	"errors"
	"fmt"
	"strings"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var (
	ErrStoragePlaceIsOccupied       = errors.New("storage place is occupied")
	ErrStoragePlaceIsEmpty          = errors.New("storage place is empty")
	ErrOrderVolumeExceedsCapacity   = errors.New("order volume exceeds storage place capacity")
	ErrStoragePlaceIsNotConstructed = errs.NewValueIsRequiredError("storage place")
)

// StoragePlace is a slot in a courier's kit (bag, trunk, ...) that can carry one order.
//
// Example:
//
//	vol, _ := kernel.NewVolume(10)
//	bag, err := courier.NewStoragePlace("Bag", vol)
//	if err != nil {
//	    return err
//	}
//	if ok, _ := bag.CanStore(orderVolume); ok {
//	    err = bag.Store(orderID, orderVolume)
//	}
type StoragePlace struct {
	kernel.Entity[kernel.UUID]

	name        string
	totalVolume kernel.Volume
	orderID     *kernel.UUID

	guard guard.ConstructorGuard
}

// NewStoragePlace creates an empty storage place with a fresh id.
//
// Parameters:
//   - name: display name, must not be blank
//   - totalVolume: capacity of the place
//
// Returns:
//   - *StoragePlace: the empty place
//   - error: joined validation errors
func NewStoragePlace(name string, totalVolume kernel.Volume) (*StoragePlace, error) {
	return RestoreStoragePlace(kernel.NewUUID(), name, totalVolume, nil)
}

// RestoreStoragePlace rebuilds a storage place from persisted state, including the
// order it currently holds.
func RestoreStoragePlace(
	id kernel.UUID,
	name string,
	totalVolume kernel.Volume,
	orderID *kernel.UUID,
) (*StoragePlace, error) {
	place := &StoragePlace{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		place.setID(id),
		place.setName(name),
		place.setTotalVolume(totalVolume),
		place.setOrderID(orderID),
	); err != nil {
		return nil, err
	}

	return place, nil
}

func (s *StoragePlace) Validate() error {
	if s == nil {
		return ErrStoragePlaceIsNotConstructed
	}
	return s.guard.Validate(ErrStoragePlaceIsNotConstructed)
}

func (s *StoragePlace) IsEqual(other *StoragePlace) bool {
	if s == nil || other == nil {
		return false
	}
	return s.SameIdentityAs(other.Entity)
}

func (s *StoragePlace) Name() string {
	return s.name
}

func (s *StoragePlace) TotalVolume() kernel.Volume {
	return s.totalVolume
}

// OrderID returns a copy of the stored order id, or nil when empty.
func (s *StoragePlace) OrderID() *kernel.UUID {
	if s.orderID == nil {
		return nil
	}
	id := *s.orderID
	return &id
}

func (s *StoragePlace) IsOccupied() bool {
	return s.orderID != nil
}

// Holds reports whether the place currently carries orderID.
func (s *StoragePlace) Holds(orderID kernel.UUID) bool {
	return s.orderID != nil && s.orderID.IsEqual(orderID)
}

// CanStore is false for an occupied place; otherwise it compares capacity.
func (s *StoragePlace) CanStore(orderVolume kernel.Volume) (bool, error) {
	if err := orderVolume.Validate(); err != nil {
		return false, err
	}
	if s.IsOccupied() {
		return false, nil
	}

	return s.totalVolume.CanAccommodate(orderVolume)
}

// Store puts orderID into the place. It fails without changing anything when the
// place is occupied or too small.
func (s *StoragePlace) Store(orderID kernel.UUID, orderVolume kernel.Volume) error {
	if err := errors.Join(orderID.Validate(), orderVolume.Validate()); err != nil {
		return err
	}
	if s.IsOccupied() {
		return fmt.Errorf("%w: %s holds order %s", ErrStoragePlaceIsOccupied, s.name, s.orderID)
	}

	fits, err := s.totalVolume.CanAccommodate(orderVolume)
	if err != nil {
		return err
	}
	if !fits {
		return fmt.Errorf("%w: %s > %s", ErrOrderVolumeExceedsCapacity, orderVolume, s.totalVolume)
	}

	s.orderID = &orderID
	return nil
}

// Clear empties the place. Clearing an empty place is an error.
func (s *StoragePlace) Clear() error {
	if !s.IsOccupied() {
		return fmt.Errorf("%w: %s", ErrStoragePlaceIsEmpty, s.name)
	}

	s.orderID = nil
	return nil
}

func (s *StoragePlace) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("id", err)
	}
	s.Entity = kernel.NewEntity(id)
	return nil
}

func (s *StoragePlace) setName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errs.NewValueIsRequiredError("name")
	}
	s.name = name
	return nil
}

func (s *StoragePlace) setTotalVolume(totalVolume kernel.Volume) error {
	if err := totalVolume.Validate(); err != nil {
		return err
	}
	s.totalVolume = totalVolume
	return nil
}

func (s *StoragePlace) setOrderID(orderID *kernel.UUID) error {
	if orderID == nil {
		s.orderID = nil
		return nil
	}
	if err := orderID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("orderID", err)
	}
	id := *orderID
	s.orderID = &id
	return nil
}
