package kernel

import (
	"errors"
	"fmt"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var (
	ErrVolumeIsNotConstructed = errs.NewValueIsRequiredError("volume")
	ErrVolumeMustBePositive   = errors.New("volume must be greater than zero")
)

// Volume is the size of an order or the capacity of a storage place, in abstract units.
type Volume struct {
	value int
	guard guard.ConstructorGuard
}

// NewVolume returns a Volume for a strictly positive value.
func NewVolume(value int) (Volume, error) {
	if value <= 0 {
		return Volume{}, errs.NewValueIsInvalidErrorWithCause("volume", ErrVolumeMustBePositive)
	}

	return Volume{value: value, guard: guard.NewConstructorGuard()}, nil
}

func (v Volume) Validate() error {
	return v.guard.Validate(ErrVolumeIsNotConstructed)
}

func (v Volume) Int() int {
	return v.value
}

// CanAccommodate reports whether something of size other fits into v.
func (v Volume) CanAccommodate(other Volume) (bool, error) {
	if err := errors.Join(v.Validate(), other.Validate()); err != nil {
		return false, err
	}

	return v.value >= other.value, nil
}

func (v Volume) String() string {
	return fmt.Sprintf("Volume(%d)", v.value)
}
